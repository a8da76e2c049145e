// Package input describes the logical controls of the game and the
// per-tick snapshot a frontend hands to the simulation.
package input

import "strings"

// Key is a logical control, independent of any physical keyboard layout.
type Key uint8

const (
	Left Key = iota
	Right
	Up
	Down
	Fire
	Restart

	keyCount
)

var keyNames = [keyCount]string{"left", "right", "up", "down", "space", "r"}

// String returns the binding name of the key.
func (k Key) String() string {
	if k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// Keys returns every logical key in declaration order.
func Keys() []Key {
	keys := make([]Key, 0, keyCount)
	for k := Key(0); k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// ParseKey maps a binding name back to its key.
func ParseKey(name string) (Key, bool) {
	for k, n := range keyNames {
		if n == name {
			return Key(k), true
		}
	}
	return 0, false
}

// KeySet is a set of keys.
type KeySet uint8

// NewKeySet builds a set from keys.
func NewKeySet(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s = s.With(k)
	}
	return s
}

// Has reports whether k is in the set.
func (s KeySet) Has(k Key) bool {
	return s&(1<<k) != 0
}

// With returns the set plus k.
func (s KeySet) With(k Key) KeySet {
	return s | 1<<k
}

// Without returns the set minus k.
func (s KeySet) Without(k Key) KeySet {
	return s &^ (1 << k)
}

// Empty reports whether no key is in the set.
func (s KeySet) Empty() bool {
	return s == 0
}

func (s KeySet) String() string {
	var names []string
	for _, k := range Keys() {
		if s.Has(k) {
			names = append(names, k.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Snapshot is the input state for one tick. Pressed and Released hold the
// edges since the previous tick.
type Snapshot struct {
	Held     KeySet
	Pressed  KeySet
	Released KeySet
}

// IsDown reports whether k is held this tick.
func (s Snapshot) IsDown(k Key) bool {
	return s.Held.Has(k)
}

// JustPressed reports whether k went down this tick.
func (s Snapshot) JustPressed(k Key) bool {
	return s.Pressed.Has(k)
}

// JustReleased reports whether k came up this tick.
func (s Snapshot) JustReleased(k Key) bool {
	return s.Released.Has(k)
}

// Tracker turns a stream of held-key sets into snapshots with edges, for
// frontends that can only observe which keys are down.
type Tracker struct {
	prev KeySet
}

// Next returns the snapshot for a tick in which held is down.
func (t *Tracker) Next(held KeySet) Snapshot {
	snap := Snapshot{
		Held:     held,
		Pressed:  held &^ t.prev,
		Released: t.prev &^ held,
	}
	t.prev = held
	return snap
}

// Reset forgets the previous tick so every held key reads as a new press.
func (t *Tracker) Reset() {
	t.prev = 0
}

package engine

import "sort"

// TimerID identifies a pending timer.
type TimerID uint64

type timer struct {
	id  TimerID
	due float64
	fn  func()
}

// Timers schedules one-shot callbacks against simulation time. Time only
// moves when Advance is called, so callbacks run on the tick goroutine.
type Timers struct {
	now     float64
	last    TimerID
	pending []timer
}

// After schedules fn to run once seconds from now and returns its ID.
func (t *Timers) After(seconds float64, fn func()) TimerID {
	t.last++
	t.pending = append(t.pending, timer{id: t.last, due: t.now + seconds, fn: fn})
	return t.last
}

// Cancel drops a pending timer. It reports whether the timer was pending.
func (t *Timers) Cancel(id TimerID) bool {
	for i, p := range t.pending {
		if p.id == id {
			t.pending = append(t.pending[:i], t.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Remaining returns the seconds left on a pending timer.
func (t *Timers) Remaining(id TimerID) (float64, bool) {
	for _, p := range t.pending {
		if p.id == id {
			return max(p.due-t.now, 0), true
		}
	}
	return 0, false
}

// Advance moves time forward by dt and runs every callback that has come
// due, earliest first; timers due at the same moment run in the order they
// were scheduled. Timers scheduled by a callback wait for a later Advance.
// It returns the number of callbacks run.
func (t *Timers) Advance(dt float64) int {
	t.now += dt

	var due []timer
	kept := t.pending[:0]
	for _, p := range t.pending {
		if p.due <= t.now {
			due = append(due, p)
		} else {
			kept = append(kept, p)
		}
	}
	t.pending = kept

	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })
	for _, p := range due {
		p.fn()
	}
	return len(due)
}

// Clear drops every pending timer.
func (t *Timers) Clear() {
	t.pending = nil
}

// Len returns the number of pending timers.
func (t *Timers) Len() int {
	return len(t.pending)
}

// Now returns the simulation time in seconds.
func (t *Timers) Now() float64 {
	return t.now
}

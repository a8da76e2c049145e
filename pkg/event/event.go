// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Gameplay event types
const (
	MatchStarted      Type = "match_started"
	BulletFired       Type = "bullet_fired"
	ThrusterFired     Type = "thruster_fired"
	AsteroidDestroyed Type = "asteroid_destroyed"
	AsteroidsBounced  Type = "asteroids_bounced"
	ShipDamaged       Type = "ship_damaged"
	ShipDestroyed     Type = "ship_destroyed"
	ScoreChanged      Type = "score_changed"
	GameOver          Type = "game_over"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// SubscriptionID identifies a handler registered on a Bus.
type SubscriptionID uint64

// Subscription is returned by Subscribe. Cancel removes the handler.
type Subscription struct {
	ID     SubscriptionID
	Cancel func()
}

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine, in subscription order.
type Bus struct {
	handlers map[Type][]subscription
	nextID   SubscriptionID
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscription),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})
	return &Subscription{
		ID:     id,
		Cancel: func() { b.Unsubscribe(id) },
	}
}

// Unsubscribe removes a previously registered handler. Unknown IDs are
// ignored.
func (b *Bus) Unsubscribe(id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.handlers {
		for i, s := range subs {
			if s.id != id {
				continue
			}
			rest := make([]subscription, 0, len(subs)-1)
			rest = append(rest, subs[:i]...)
			rest = append(rest, subs[i+1:]...)
			if len(rest) == 0 {
				delete(b.handlers, eventType)
			} else {
				b.handlers[eventType] = rest
			}
			return
		}
	}
}

// HandlerCount returns the number of handlers registered for eventType.
func (b *Bus) HandlerCount(eventType Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	// Unsubscribe never mutates a published slice in place, so iterating
	// without the lock is safe even if a handler unsubscribes.
	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// MatchEvent announces a new match.
type MatchEvent struct {
	BaseEvent
	MatchID string
}

// NewMatchEvent creates a MatchStarted event.
func NewMatchEvent(source interface{}, matchID string) *MatchEvent {
	return &MatchEvent{
		BaseEvent: BaseEvent{EventType: MatchStarted, Source: source},
		MatchID:   matchID,
	}
}

// ShipEvent contains information about ship-related events
type ShipEvent struct {
	BaseEvent
	ShipID uint64
	Lives  int
}

// NewShipEvent creates a new ship event
func NewShipEvent(eventType Type, source interface{}, shipID uint64, lives int) *ShipEvent {
	return &ShipEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		ShipID:    shipID,
		Lives:     lives,
	}
}

// BulletEvent is published when the ship fires.
type BulletEvent struct {
	BaseEvent
	BulletID uint64
	ShipID   uint64
}

// NewBulletEvent creates a BulletFired event.
func NewBulletEvent(source interface{}, bulletID, shipID uint64) *BulletEvent {
	return &BulletEvent{
		BaseEvent: BaseEvent{EventType: BulletFired, Source: source},
		BulletID:  bulletID,
		ShipID:    shipID,
	}
}

// ThrusterEvent is published every tick the ship's engine is in use.
type ThrusterEvent struct {
	BaseEvent
	ShipID  uint64
	Reverse bool
}

// NewThrusterEvent creates a ThrusterFired event.
func NewThrusterEvent(source interface{}, shipID uint64, reverse bool) *ThrusterEvent {
	return &ThrusterEvent{
		BaseEvent: BaseEvent{EventType: ThrusterFired, Source: source},
		ShipID:    shipID,
		Reverse:   reverse,
	}
}

// AsteroidEvent is published when a bullet destroys an asteroid.
type AsteroidEvent struct {
	BaseEvent
	AsteroidID uint64
	BulletID   uint64
}

// NewAsteroidEvent creates an AsteroidDestroyed event.
func NewAsteroidEvent(source interface{}, asteroidID, bulletID uint64) *AsteroidEvent {
	return &AsteroidEvent{
		BaseEvent:  BaseEvent{EventType: AsteroidDestroyed, Source: source},
		AsteroidID: asteroidID,
		BulletID:   bulletID,
	}
}

// CollisionEvent contains information about entity collisions
type CollisionEvent struct {
	BaseEvent
	EntityA uint64
	EntityB uint64
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(eventType Type, source interface{}, entityA, entityB uint64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		EntityA:   entityA,
		EntityB:   entityB,
	}
}

// ScoreEvent carries the current score. It is used for ScoreChanged and
// GameOver.
type ScoreEvent struct {
	BaseEvent
	Score int
}

// NewScoreEvent creates a score event
func NewScoreEvent(eventType Type, source interface{}, score int) *ScoreEvent {
	return &ScoreEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		Score:     score,
	}
}

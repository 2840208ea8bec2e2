package engine

import "github.com/lixenwraith/fullkning/core"

// EventType identifies a simulation transition observable outside the engine
type EventType int

const (
	// EventSpawned: a block was unhooked below the builder
	EventSpawned EventType = iota
	// EventSettled: a falling block left the flight registry
	EventSettled
	// EventShadowed: a falling block evicted a Target and moved onto its cell
	EventShadowed
	// EventUnshadowed: a shadowing block moved on and the Target was restored above it
	EventUnshadowed
	// EventSwapped: a shadowing block met a second Target and pushed it up one row
	EventSwapped
	// EventFixedCancelled: the player released the fixed block slot
	EventFixedCancelled
	// EventVictory: every target is covered
	EventVictory
)

// String returns the event name used in logs and the journal
func (t EventType) String() string {
	switch t {
	case EventSpawned:
		return "spawned"
	case EventSettled:
		return "settled"
	case EventShadowed:
		return "shadowed"
	case EventUnshadowed:
		return "unshadowed"
	case EventSwapped:
		return "swapped"
	case EventFixedCancelled:
		return "fixed_cancelled"
	case EventVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// GameEvent is a single transition record
type GameEvent struct {
	Type   EventType
	Entity core.Entity
	Pos    core.Point
	Tick   uint64
}

// EventQueue buffers events produced during a tick until the shell drains them
// Single producer (simulation) and single consumer (main loop), both on the same goroutine
type EventQueue struct {
	events []GameEvent
}

// NewEventQueue creates a queue with the given initial capacity
func NewEventQueue(capacity int) *EventQueue {
	return &EventQueue{events: make([]GameEvent, 0, capacity)}
}

// Push appends an event
func (q *EventQueue) Push(ev GameEvent) {
	q.events = append(q.events, ev)
}

// Consume returns all pending events in FIFO order and empties the queue
func (q *EventQueue) Consume() []GameEvent {
	if len(q.events) == 0 {
		return nil
	}
	out := make([]GameEvent, len(q.events))
	copy(out, q.events)
	q.events = q.events[:0]
	return out
}

// Len returns the number of pending events
func (q *EventQueue) Len() int {
	return len(q.events)
}

package constants

import "time"

// Game Loop & Engine Timing
const (
	// TickInterval is the simulation step
	TickInterval = 300 * time.Millisecond

	// FrameUpdateInterval is the redraw cadence for the clock and cooldown readouts
	FrameUpdateInterval = 50 * time.Millisecond

	// EventQueueSize is the initial capacity of the per-tick game event queue
	EventQueueSize = 64
)

// System Execution Priorities (lower runs first)
// A tick is: cooldown, loose blocks, fixed block, victory scan
const (
	PriorityCooldown = 10
	PriorityFall     = 20
	PriorityVictory  = 30
)

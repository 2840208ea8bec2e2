package engine

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/fullkning/components"
)

// GameState holds the player-facing counters
// Mutated only on the simulation goroutine; atomics let the renderer and
// metrics read without coordinating with the tick
type GameState struct {
	Score    atomic.Int64  // Signed: may go below zero with wasteful play
	Cooldown atomic.Int64  // Ticks remaining before the next unhook
	Selected atomic.Uint32 // components.BlockKind of the next unhook
	Ticks    atomic.Uint64 // Completed simulation ticks
	Drops    atomic.Int64  // Successful unhooks
	Victory  atomic.Bool

	StartTime time.Time
}

// NewGameState creates state with the initial score and sand selected
func NewGameState(initialScore int64, start time.Time) *GameState {
	gs := &GameState{StartTime: start}
	gs.Score.Store(initialScore)
	gs.Selected.Store(uint32(components.KindLoose))
	return gs
}

// GetScore returns the current score
func (gs *GameState) GetScore() int64 {
	return gs.Score.Load()
}

// ChargeDrop subtracts the drop cost and counts the drop
func (gs *GameState) ChargeDrop(cost int64) {
	gs.Score.Add(-cost)
	gs.Drops.Add(1)
}

// GetCooldown returns the remaining cooldown, never negative
func (gs *GameState) GetCooldown() int64 {
	if c := gs.Cooldown.Load(); c > 0 {
		return c
	}
	return 0
}

// ResetCooldown arms the cooldown after a drop
func (gs *GameState) ResetCooldown(ticks int64) {
	gs.Cooldown.Store(ticks)
}

// DecrementCooldown counts the cooldown down by one tick, clamped at zero
func (gs *GameState) DecrementCooldown() {
	if gs.Cooldown.Load() > 0 {
		gs.Cooldown.Add(-1)
	}
}

// GetSelected returns the block kind the next unhook will create
func (gs *GameState) GetSelected() components.BlockKind {
	return components.BlockKind(gs.Selected.Load())
}

// SelectNext toggles between sand and stone and returns the new selection
func (gs *GameState) SelectNext() components.BlockKind {
	next := components.KindLoose
	if gs.GetSelected() == components.KindLoose {
		next = components.KindFixed
	}
	gs.Selected.Store(uint32(next))
	return next
}

// IncrementTicks advances the tick counter and returns the new value
func (gs *GameState) IncrementTicks() uint64 {
	return gs.Ticks.Add(1)
}

// GetTicks returns the number of completed ticks
func (gs *GameState) GetTicks() uint64 {
	return gs.Ticks.Load()
}

// GetDrops returns the number of successful unhooks
func (gs *GameState) GetDrops() int64 {
	return gs.Drops.Load()
}

// IsVictory reports whether every target has been covered
func (gs *GameState) IsVictory() bool {
	return gs.Victory.Load()
}

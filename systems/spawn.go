package systems

import (
	"github.com/lixenwraith/fullkning/components"
	"github.com/lixenwraith/fullkning/constants"
	"github.com/lixenwraith/fullkning/core"
	"github.com/lixenwraith/fullkning/engine"
)

// SpawnSystem owns the builder and the drop controls
// Update runs the cooldown; the remaining methods are player actions applied between ticks
type SpawnSystem struct {
	ctx *engine.GameContext
}

// NewSpawnSystem creates a spawn system bound to ctx
func NewSpawnSystem(ctx *engine.GameContext) *SpawnSystem {
	return &SpawnSystem{ctx: ctx}
}

// Priority returns the system's priority
func (s *SpawnSystem) Priority() int {
	return constants.PriorityCooldown
}

// Update counts the drop cooldown down by one tick
func (s *SpawnSystem) Update() {
	s.ctx.State.DecrementCooldown()
}

// Unhook drops the selected block below the builder
// A Target in the spawn cell is evicted and the new block starts out shadowing
// it. Returns false without side effects while cooling down, while a stone is
// already falling, or when a solid block holds the spawn cell
func (s *SpawnSystem) Unhook() bool {
	state := s.ctx.State
	if state.GetCooldown() > 0 {
		return false
	}

	kind := state.GetSelected()
	if kind == components.KindFixed && s.ctx.Flight.FixedInFlight() {
		return false
	}

	world := s.ctx.World
	p := s.ctx.BuilderPos().Below()
	target, occupant, taken := world.At(p)
	if taken && occupant.Kind.Solid() {
		return false
	}
	if taken {
		world.Destroy(target)
	}
	e, err := world.Spawn(kind, p)
	if err != nil {
		return false
	}

	if kind == components.KindFixed {
		s.ctx.Flight.Fixed = e
	} else {
		s.ctx.Flight.Loose = append(s.ctx.Flight.Loose, e)
	}

	state.ChargeDrop(s.ctx.Settings.DropCost)
	state.ResetCooldown(s.ctx.Settings.Cooldown)
	s.ctx.PushEvent(engine.EventSpawned, e, p)
	if taken {
		b, _ := world.Block(e)
		b.Shadowing = true
		s.ctx.PushEvent(engine.EventShadowed, e, p)
	}
	return true
}

// SelectNext switches the block type of the next drop
func (s *SpawnSystem) SelectNext() components.BlockKind {
	return s.ctx.State.SelectNext()
}

// CancelFixed releases the stone slot; the stone stays where it is
func (s *SpawnSystem) CancelFixed() bool {
	flight := &s.ctx.Flight
	if !flight.FixedInFlight() {
		return false
	}
	e := flight.Fixed
	flight.Fixed = 0

	pos := core.Point{}
	if b, ok := s.ctx.World.Block(e); ok {
		b.Shadowing = false
		pos = b.Pos
	}
	s.ctx.PushEvent(engine.EventFixedCancelled, e, pos)
	return true
}

// MoveBuilder shifts the builder by (dx, dy)
// Horizontal moves wrap when enabled; blocked or out-of-field moves are ignored
func (s *SpawnSystem) MoveBuilder(dx, dy int) bool {
	ctx := s.ctx
	pos := ctx.BuilderPos()
	dest := core.Point{Row: pos.Row + dy, Col: pos.Col + dx}

	if ctx.Settings.BuilderWrap {
		w := ctx.Settings.Width
		dest.Col = ((dest.Col % w) + w) % w
	}

	delta := core.Point{Row: dest.Row - pos.Row, Col: dest.Col - pos.Col}
	return ctx.World.MoveBy(ctx.Builder, delta).Outcome == engine.Moved
}

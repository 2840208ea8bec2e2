package systems

import (
	"log"

	"github.com/lixenwraith/fullkning/components"
	"github.com/lixenwraith/fullkning/constants"
	"github.com/lixenwraith/fullkning/core"
	"github.com/lixenwraith/fullkning/engine"
)

// FallSystem advances every block in flight by one row per tick
// Loose blocks move in insertion order, then the fixed block
type FallSystem struct {
	ctx *engine.GameContext
}

// NewFallSystem creates a fall system bound to ctx
func NewFallSystem(ctx *engine.GameContext) *FallSystem {
	return &FallSystem{ctx: ctx}
}

// Priority returns the system's priority
func (s *FallSystem) Priority() int {
	return constants.PriorityFall
}

// Update moves each in-flight block once and drops settled handles from the registry
func (s *FallSystem) Update() {
	flight := &s.ctx.Flight

	// Filter in place: write index never passes read index
	kept := flight.Loose[:0]
	for _, e := range flight.Loose {
		if s.step(e) {
			kept = append(kept, e)
		}
	}
	flight.Loose = kept

	if flight.Fixed != 0 && !s.step(flight.Fixed) {
		flight.Fixed = 0
	}
}

// step advances e one row and reports whether it is still in flight
func (s *FallSystem) step(e core.Entity) bool {
	world := s.ctx.World
	b, ok := world.Block(e)
	if !ok {
		return false
	}

	res := world.MoveBy(e, core.Down)
	switch res.Outcome {
	case engine.Moved:
		if b.Shadowing {
			s.unshadow(e, b)
		}
		return true

	case engine.HitBoundary:
		s.settle(e, b)
		return false

	case engine.HitOccupant:
		occupant, ok := world.Block(res.Occupant)
		if !ok || occupant.Kind.Solid() {
			s.settle(e, b)
			return false
		}
		if !b.Shadowing {
			return s.shadow(e, b, res.Occupant)
		}
		return s.swap(e, b)
	}
	return true
}

// shadow evicts the target below e and pulls e onto its cell
func (s *FallSystem) shadow(e core.Entity, b *components.Block, target core.Entity) bool {
	world := s.ctx.World
	world.Destroy(target)
	b.Shadowing = true

	if res := world.MoveBy(e, core.Down); res.Outcome != engine.Moved {
		// Cell was just freed; anything else means grid and records disagree
		log.Printf("[fall] entity %d could not enter evicted target cell: %s", e, res.Outcome)
		s.settle(e, b)
		return false
	}
	s.ctx.PushEvent(engine.EventShadowed, e, b.Pos)
	return true
}

// unshadow restores the target e just left, one row above its new position
func (s *FallSystem) unshadow(e core.Entity, b *components.Block) {
	above := b.Pos.Above()
	b.Shadowing = false
	if _, err := s.ctx.World.Spawn(components.KindTarget, above); err != nil {
		log.Printf("[fall] restore target above entity %d: %v", e, err)
		return
	}
	s.ctx.PushEvent(engine.EventUnshadowed, e, above)
}

// swap handles a shadowing block meeting a second target: the target below is
// pushed up into the cell e is leaving and e takes its place
func (s *FallSystem) swap(e core.Entity, b *components.Block) bool {
	world := s.ctx.World
	from := b.Pos
	to := from.Below()

	world.Unplace(e)
	if err := world.Relocate(to, from); err != nil {
		log.Printf("[fall] swap entity %d: %v", e, err)
		_ = world.Place(e, from)
		s.settle(e, b)
		return false
	}
	if err := world.Place(e, to); err != nil {
		log.Printf("[fall] swap entity %d: %v", e, err)
		s.settle(e, b)
		return false
	}
	s.ctx.PushEvent(engine.EventSwapped, e, to)

	if s.ctx.Settings.SwapMode == constants.SwapFallthrough {
		// Still shadowing the target it just displaced
		return true
	}
	s.settle(e, b)
	return false
}

// settle turns e into a static occupant
func (s *FallSystem) settle(e core.Entity, b *components.Block) {
	b.Shadowing = false
	s.ctx.PushEvent(engine.EventSettled, e, b.Pos)
}

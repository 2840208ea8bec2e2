package systems

import (
	"testing"

	"github.com/lixenwraith/fullkning/components"
	"github.com/lixenwraith/fullkning/core"
	"github.com/lixenwraith/fullkning/engine"
)

func TestUnhookChargesAndArmsCooldown(t *testing.T) {
	s := newSim(t, engine.DefaultSettings(), core.Point{Row: 19, Col: 0}, core.Point{Row: 19, Col: 1})
	start := s.ctx.State.GetScore()
	if start != 6 {
		t.Fatalf("initial score = %d, want 6", start)
	}

	if !s.spawn.Unhook() {
		t.Fatal("first unhook refused")
	}
	if got := s.ctx.State.GetScore(); got != start-1 {
		t.Errorf("score = %d, want %d", got, start-1)
	}
	if s.ctx.State.GetCooldown() != 3 {
		t.Errorf("cooldown = %d, want 3", s.ctx.State.GetCooldown())
	}
	if len(s.ctx.Flight.Loose) != 1 {
		t.Fatalf("loose in flight = %d", len(s.ctx.Flight.Loose))
	}
	b, _ := s.ctx.World.Block(s.ctx.Flight.Loose[0])
	if b.Pos != (core.Point{Row: 2, Col: 5}) {
		t.Errorf("spawned at %+v, want below builder", b.Pos)
	}

	// Refused during cooldown, without side effects
	for i := 0; i < 3; i++ {
		if s.spawn.Unhook() {
			t.Fatalf("unhook accepted with cooldown %d", s.ctx.State.GetCooldown())
		}
		if s.ctx.State.GetScore() != start-1 {
			t.Fatal("refused unhook changed the score")
		}
		s.ticks(1)
	}
	if !s.spawn.Unhook() {
		t.Error("unhook refused after cooldown elapsed")
	}
	if s.ctx.State.GetDrops() != 2 {
		t.Errorf("drops = %d, want 2", s.ctx.State.GetDrops())
	}
}

func TestSecondFixedSpawnIsNoop(t *testing.T) {
	settings := engine.DefaultSettings()
	settings.Cooldown = 0
	s := newSim(t, settings)
	s.spawn.SelectNext()

	if !s.spawn.Unhook() {
		t.Fatal("first stone refused")
	}
	fixed := s.ctx.Flight.Fixed
	score := s.ctx.State.GetScore()
	s.ticks(1)

	if s.spawn.Unhook() {
		t.Fatal("second stone accepted while one is falling")
	}
	if s.ctx.Flight.Fixed != fixed {
		t.Error("fixed slot changed")
	}
	if s.ctx.State.GetScore() != score {
		t.Error("score changed on refused stone")
	}

	// Sand is still allowed
	s.spawn.SelectNext()
	if !s.spawn.Unhook() {
		t.Error("sand refused while a stone is falling")
	}
}

func TestUnhookIntoOccupiedCellIsNoop(t *testing.T) {
	settings := engine.DefaultSettings()
	settings.Cooldown = 0
	s := newSim(t, settings)

	if !s.spawn.Unhook() {
		t.Fatal("unhook refused")
	}
	if s.spawn.Unhook() {
		t.Fatal("unhook accepted onto the block below the builder")
	}
	if s.ctx.State.GetDrops() != 1 || s.ctx.State.GetScore() != -1 {
		t.Errorf("drops %d score %d after blocked unhook", s.ctx.State.GetDrops(), s.ctx.State.GetScore())
	}
}

func TestUnhookOntoTargetShadowsIt(t *testing.T) {
	target := core.Point{Row: 2, Col: 5}
	s := newSim(t, engine.DefaultSettings(), target)

	if !s.spawn.Unhook() {
		t.Fatal("unhook refused with a target in the spawn cell")
	}
	if s.ctx.State.GetDrops() != 1 {
		t.Errorf("drops = %d, want 1", s.ctx.State.GetDrops())
	}
	e := s.ctx.Flight.Loose[0]
	b, _ := s.ctx.World.Block(e)
	if b.Pos != target || !b.Shadowing {
		t.Fatalf("spawned at %+v shadowing %v", b.Pos, b.Shadowing)
	}
	if s.ctx.World.Count(components.KindTarget) != 0 {
		t.Error("evicted target record still alive")
	}
	evs := s.eventTypes()
	if !containsEvent(evs, engine.EventSpawned) || !containsEvent(evs, engine.EventShadowed) {
		t.Errorf("events = %v", evs)
	}

	s.ticks(1)
	if b.Pos != target.Below() || b.Shadowing {
		t.Fatalf("after 1 tick: %+v shadowing %v", b.Pos, b.Shadowing)
	}
	if k, ok := s.kindAt(target); !ok || k != components.KindTarget {
		t.Fatalf("target not restored at %+v", target)
	}
	if !containsEvent(s.eventTypes(), engine.EventUnshadowed) {
		t.Error("no unshadowed event")
	}
	if err := s.ctx.CheckInvariants(); err != nil {
		t.Error(err)
	}
}

// TestSpawnCellTargetIsWinnable stacks the column below the spawn cell until a
// drop settles onto it
func TestSpawnCellTargetIsWinnable(t *testing.T) {
	settings := engine.DefaultSettings()
	settings.Height = 5
	settings.Cooldown = 0
	target := core.Point{Row: 2, Col: 5}
	s := newSim(t, settings, target)

	for i := 0; i < 10 && !s.ctx.State.IsVictory(); i++ {
		if s.ctx.Flight.Len() == 0 && !s.spawn.Unhook() {
			t.Fatalf("drop %d refused", i)
		}
		s.ticks(5)
		if err := s.ctx.CheckInvariants(); err != nil {
			t.Fatal(err)
		}
	}
	if !s.ctx.State.IsVictory() {
		t.Fatal("spawn cell target never covered")
	}
	if k, _ := s.kindAt(target); k != components.KindLoose {
		t.Errorf("target cell holds %v", k)
	}
}

func TestCancelFixedLeavesStoneInPlace(t *testing.T) {
	s := newSim(t, engine.DefaultSettings())
	s.spawn.SelectNext()
	s.spawn.Unhook()
	stone := s.ctx.Flight.Fixed
	s.ticks(3)

	if !s.spawn.CancelFixed() {
		t.Fatal("cancel refused with a stone in flight")
	}
	if s.ctx.Flight.FixedInFlight() {
		t.Fatal("slot still held")
	}
	b, _ := s.ctx.World.Block(stone)
	pos := b.Pos
	s.ticks(5)
	if b.Pos != pos {
		t.Errorf("cancelled stone moved from %+v to %+v", pos, b.Pos)
	}
	if b.Kind != components.KindFixed {
		t.Errorf("cancelled stone became %s", b.Kind)
	}
	if s.spawn.CancelFixed() {
		t.Error("cancel accepted with nothing in flight")
	}
}

func TestMoveBuilder(t *testing.T) {
	tests := []struct {
		name   string
		wrap   bool
		start  core.Point
		dx, dy int
		want   core.Point
		moved  bool
	}{
		{"right", true, core.Point{Row: 1, Col: 5}, 1, 0, core.Point{Row: 1, Col: 6}, true},
		{"wrap left edge", true, core.Point{Row: 1, Col: 0}, -1, 0, core.Point{Row: 1, Col: 9}, true},
		{"wrap right edge", true, core.Point{Row: 1, Col: 9}, 1, 0, core.Point{Row: 1, Col: 0}, true},
		{"no wrap at edge", false, core.Point{Row: 1, Col: 0}, -1, 0, core.Point{Row: 1, Col: 0}, false},
		{"above field", true, core.Point{Row: 0, Col: 5}, 0, -1, core.Point{Row: 0, Col: 5}, false},
		{"down", true, core.Point{Row: 1, Col: 5}, 0, 1, core.Point{Row: 2, Col: 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := engine.DefaultSettings()
			settings.BuilderWrap = tt.wrap
			settings.BuilderStart = tt.start
			s := newSim(t, settings)

			if got := s.spawn.MoveBuilder(tt.dx, tt.dy); got != tt.moved {
				t.Errorf("MoveBuilder = %v, want %v", got, tt.moved)
			}
			if s.ctx.BuilderPos() != tt.want {
				t.Errorf("builder at %+v, want %+v", s.ctx.BuilderPos(), tt.want)
			}
		})
	}
}

func TestMoveBuilderIntoBlockIsIgnored(t *testing.T) {
	s := newSim(t, engine.DefaultSettings(), core.Point{Row: 1, Col: 6})
	if s.spawn.MoveBuilder(1, 0) {
		t.Error("builder moved onto a target")
	}
	if s.ctx.BuilderPos() != (core.Point{Row: 1, Col: 5}) {
		t.Errorf("builder at %+v", s.ctx.BuilderPos())
	}
}

func TestSelectNextToggles(t *testing.T) {
	s := newSim(t, engine.DefaultSettings())
	if s.spawn.SelectNext() != components.KindFixed {
		t.Error("first toggle did not select stone")
	}
	if s.spawn.SelectNext() != components.KindLoose {
		t.Error("second toggle did not select sand")
	}
}

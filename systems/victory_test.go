package systems

import (
	"testing"

	"github.com/lixenwraith/fullkning/components"
	"github.com/lixenwraith/fullkning/core"
	"github.com/lixenwraith/fullkning/engine"
)

func TestCheckVictory(t *testing.T) {
	a := core.Point{Row: 19, Col: 2}
	b := core.Point{Row: 19, Col: 7}

	tests := []struct {
		name  string
		setup func(s *sim)
		want  bool
	}{
		{"all targets present", func(s *sim) {}, false},
		{"one covered", func(s *sim) {
			coverWith(s, a, components.KindLoose)
		}, false},
		{"all covered", func(s *sim) {
			coverWith(s, a, components.KindLoose)
			coverWith(s, b, components.KindFixed)
		}, true},
		{"empty target cell is lenient", func(s *sim) {
			coverWith(s, a, components.KindLoose)
			e, _, _ := s.ctx.World.At(b)
			s.ctx.World.Destroy(e)
		}, true},
		{"shadowing block covers", func(s *sim) {
			coverWith(s, a, components.KindLoose)
			coverWith(s, b, components.KindLoose)
			_, blk, _ := s.ctx.World.At(b)
			blk.Shadowing = true
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSim(t, engine.DefaultSettings(), a, b)
			tt.setup(s)
			if got := s.victory.CheckVictory(); got != tt.want {
				t.Errorf("CheckVictory = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVictoryEventFiresOnce(t *testing.T) {
	p := core.Point{Row: 19, Col: 5}
	s := newSim(t, engine.DefaultSettings(), p)
	coverWith(s, p, components.KindLoose)

	s.ticks(3)
	if !s.ctx.State.IsVictory() {
		t.Fatal("victory flag not set")
	}
	n := 0
	for _, et := range s.eventTypes() {
		if et == engine.EventVictory {
			n++
		}
	}
	if n != 1 {
		t.Errorf("victory events = %d, want 1", n)
	}
}

// coverWith replaces the Target at p by a static block of kind
func coverWith(s *sim, p core.Point, kind components.BlockKind) {
	if e, _, ok := s.ctx.World.At(p); ok {
		s.ctx.World.Destroy(e)
	}
	_, _ = s.ctx.World.Spawn(kind, p)
}

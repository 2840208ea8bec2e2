package systems

import (
	"testing"
	"time"

	"github.com/lixenwraith/fullkning/components"
	"github.com/lixenwraith/fullkning/core"
	"github.com/lixenwraith/fullkning/engine"
)

// sim bundles a context with its three systems registered
type sim struct {
	ctx     *engine.GameContext
	spawn   *SpawnSystem
	fall    *FallSystem
	victory *VictorySystem
}

func newSim(t *testing.T, settings engine.Settings, targets ...core.Point) *sim {
	t.Helper()
	tp := engine.NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx, err := engine.NewGameContext(settings, targets, tp)
	if err != nil {
		t.Fatalf("NewGameContext: %v", err)
	}
	s := &sim{
		ctx:     ctx,
		spawn:   NewSpawnSystem(ctx),
		fall:    NewFallSystem(ctx),
		victory: NewVictorySystem(ctx),
	}
	ctx.AddSystem(s.victory)
	ctx.AddSystem(s.fall)
	ctx.AddSystem(s.spawn)
	return s
}

func (s *sim) ticks(n int) {
	for i := 0; i < n; i++ {
		s.ctx.Tick()
	}
}

// kindAt returns the kind occupying p, ok=false when empty
func (s *sim) kindAt(p core.Point) (components.BlockKind, bool) {
	_, b, ok := s.ctx.World.At(p)
	if !ok {
		return 0, false
	}
	return b.Kind, true
}

func (s *sim) eventTypes() []engine.EventType {
	var out []engine.EventType
	for _, ev := range s.ctx.Events.Consume() {
		out = append(out, ev.Type)
	}
	return out
}

func containsEvent(evs []engine.EventType, want engine.EventType) bool {
	for _, e := range evs {
		if e == want {
			return true
		}
	}
	return false
}

package systems

import (
	"github.com/lixenwraith/fullkning/constants"
	"github.com/lixenwraith/fullkning/engine"
)

// VictorySystem scans the target coordinates after movement
type VictorySystem struct {
	ctx *engine.GameContext
}

// NewVictorySystem creates a victory system bound to ctx
func NewVictorySystem(ctx *engine.GameContext) *VictorySystem {
	return &VictorySystem{ctx: ctx}
}

// Priority returns the system's priority
func (s *VictorySystem) Priority() int {
	return constants.PriorityVictory
}

// Update latches the victory flag the first tick every target is covered
func (s *VictorySystem) Update() {
	if s.ctx.State.IsVictory() || !s.CheckVictory() {
		return
	}
	s.ctx.State.Victory.Store(true)
	s.ctx.PushEvent(engine.EventVictory, s.ctx.Builder, s.ctx.BuilderPos())
}

// CheckVictory reports whether no target coordinate still holds a Target
// A block falling through a target covers it; an empty target cell does not
// block victory
func (s *VictorySystem) CheckVictory() bool {
	for _, p := range s.ctx.Targets {
		if s.ctx.Uncovered(p) {
			return false
		}
	}
	return true
}

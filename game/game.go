package game

import (
	"time"

	"github.com/lixenwraith/fullkning/components"
	"github.com/lixenwraith/fullkning/core"
	"github.com/lixenwraith/fullkning/engine"
	"github.com/lixenwraith/fullkning/systems"
)

// Recorder observes every simulated action with the number of ticks completed before it
type Recorder func(tick uint64, a Action)

// Game is the boundary between the engine and the shell
// Input drives it through the action hooks; renderer and HUD use the read-only accessors.
// Not safe for concurrent mutation: call hooks and Tick from one goroutine
type Game struct {
	ctx     *engine.GameContext
	spawn   *systems.SpawnSystem
	fall    *systems.FallSystem
	victory *systems.VictorySystem
	router  *engine.EventRouter

	recorder Recorder
}

// New builds a game over a fresh field with one Target per coordinate
func New(settings engine.Settings, targets []core.Point, tp engine.TimeProvider) (*Game, error) {
	ctx, err := engine.NewGameContext(settings, targets, tp)
	if err != nil {
		return nil, err
	}

	g := &Game{
		ctx:     ctx,
		spawn:   systems.NewSpawnSystem(ctx),
		fall:    systems.NewFallSystem(ctx),
		victory: systems.NewVictorySystem(ctx),
		router:  engine.NewEventRouter(ctx.Events),
	}
	ctx.AddSystem(g.spawn)
	ctx.AddSystem(g.fall)
	ctx.AddSystem(g.victory)
	return g, nil
}

// Context exposes the simulation context for debug checks and tooling
func (g *Game) Context() *engine.GameContext { return g.ctx }

// Subscribe registers an observer for game events
func (g *Game) Subscribe(h engine.EventHandler) {
	g.router.Register(h)
}

// SetRecorder installs the action observer; nil disables recording
func (g *Game) SetRecorder(r Recorder) {
	g.recorder = r
}

// ===== INPUT BOUNDARY =====

// SelectNextBlockType toggles the block type of the next drop
func (g *Game) SelectNextBlockType() components.BlockKind {
	return g.spawn.SelectNext()
}

// AttemptUnhook drops the selected block below the builder
func (g *Game) AttemptUnhook() bool {
	return g.spawn.Unhook()
}

// MoveBuilder shifts the builder; blocked moves are ignored
func (g *Game) MoveBuilder(dx, dy int) bool {
	return g.spawn.MoveBuilder(dx, dy)
}

// CancelFixedFlight frees the stone slot without settling the stone
func (g *Game) CancelFixedFlight() bool {
	return g.spawn.CancelFixed()
}

// Tick advances the simulation one step and delivers its events
func (g *Game) Tick() uint64 {
	n := g.ctx.Tick()
	g.router.DispatchAll()
	return n
}

// Apply performs a by-name action and reports whether it changed anything
func (g *Game) Apply(a Action) bool {
	if !a.Simulated() {
		return false
	}
	if g.recorder != nil {
		g.recorder(g.ctx.State.GetTicks(), a)
	}

	var changed bool
	switch a {
	case ActionSelectNext:
		g.SelectNextBlockType()
		changed = true
	case ActionUnhook:
		changed = g.AttemptUnhook()
	case ActionMoveLeft:
		changed = g.MoveBuilder(-1, 0)
	case ActionMoveRight:
		changed = g.MoveBuilder(1, 0)
	case ActionMoveUp:
		changed = g.MoveBuilder(0, -1)
	case ActionMoveDown:
		changed = g.MoveBuilder(0, 1)
	case ActionCancelFixed:
		changed = g.CancelFixedFlight()
	}
	g.router.DispatchAll()
	return changed
}

// ===== GAME-STATE BOUNDARY =====

// Score returns the signed score
func (g *Game) Score() int64 {
	return g.ctx.State.GetScore()
}

// CooldownRemaining returns ticks until the next drop is allowed
func (g *Game) CooldownRemaining() int64 {
	return g.ctx.State.GetCooldown()
}

// SelectedBlockType returns the kind the next drop creates
func (g *Game) SelectedBlockType() components.BlockKind {
	return g.ctx.State.GetSelected()
}

// TargetsRemainingCount returns the number of uncovered targets
func (g *Game) TargetsRemainingCount() int {
	return g.ctx.TargetsRemaining()
}

// IsVictory reports whether every target is covered
func (g *Game) IsVictory() bool {
	return g.ctx.State.IsVictory()
}

// Elapsed returns wall time since the game started
func (g *Game) Elapsed() time.Duration {
	return g.ctx.Elapsed()
}

// TickCount returns the number of completed ticks
func (g *Game) TickCount() uint64 {
	return g.ctx.State.GetTicks()
}

// Drops returns the number of successful unhooks
func (g *Game) Drops() int64 {
	return g.ctx.State.GetDrops()
}

// InFlight returns the number of falling blocks
func (g *Game) InFlight() int {
	return g.ctx.Flight.Len()
}

// Width returns the field width in cells
func (g *Game) Width() int {
	return g.ctx.Settings.Width
}

// Height returns the field height in cells
func (g *Game) Height() int {
	return g.ctx.Settings.Height
}

// Targets returns the level's target coordinates in file order
func (g *Game) Targets() []core.Point {
	return g.ctx.Targets
}

// Blocks yields a copy of every occupant in creation order
func (g *Game) Blocks(fn func(b components.Block)) {
	g.ctx.World.Each(func(_ core.Entity, b *components.Block) {
		fn(*b)
	})
}

// CheckInvariants reports the first broken occupancy invariant
func (g *Game) CheckInvariants() error {
	return g.ctx.CheckInvariants()
}

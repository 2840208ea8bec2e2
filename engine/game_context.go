package engine

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/lixenwraith/fullkning/components"
	"github.com/lixenwraith/fullkning/constants"
	"github.com/lixenwraith/fullkning/core"
)

// ErrInvariant reports a broken occupancy invariant found by CheckInvariants
var ErrInvariant = errors.New("invariant violated")

// Settings are the rules of one game, resolved from configuration
type Settings struct {
	Width          int
	Height         int
	Cooldown       int64
	DropCost       int64
	ScorePerTarget int64
	BuilderStart   core.Point
	BuilderWrap    bool   // Horizontal builder moves wrap around the field edges
	SwapMode       string // constants.SwapSettle or constants.SwapFallthrough
}

// DefaultSettings returns the classic rules: 10x20 field, cooldown 3, three points per target
func DefaultSettings() Settings {
	return Settings{
		Width:          constants.FieldWidth,
		Height:         constants.FieldHeight,
		Cooldown:       constants.DropCooldown,
		DropCost:       constants.DropCost,
		ScorePerTarget: constants.ScorePerTarget,
		BuilderStart:   core.Point{Row: constants.BuilderStartRow, Col: constants.BuilderStartCol},
		BuilderWrap:    true,
		SwapMode:       constants.SwapSettle,
	}
}

// Flight is the simulator's working set
// Handles are non-owning; the records stay in World after they leave flight
type Flight struct {
	Loose []core.Entity // Insertion order
	Fixed core.Entity   // 0 when no stone is falling
}

// FixedInFlight reports whether the single fixed slot is taken
func (f *Flight) FixedInFlight() bool {
	return f.Fixed != 0
}

// Len returns the number of blocks in flight
func (f *Flight) Len() int {
	n := len(f.Loose)
	if f.Fixed != 0 {
		n++
	}
	return n
}

// GameContext is the single simulation context: it owns the world (and through
// it the grid), the flight registry, the counters and the tick pipeline
type GameContext struct {
	Settings Settings
	World    *World
	State    *GameState
	Flight   Flight
	Targets  []core.Point // Level order, immutable
	Builder  core.Entity
	Events   *EventQueue

	TimeProvider TimeProvider

	systems []System
}

// NewGameContext builds a field with the builder and one Target per coordinate
// The initial score is ScorePerTarget * len(targets)
func NewGameContext(settings Settings, targets []core.Point, tp TimeProvider) (*GameContext, error) {
	if settings.Width <= 0 || settings.Height <= 0 {
		return nil, fmt.Errorf("field %dx%d: %w", settings.Width, settings.Height, ErrOutOfBounds)
	}
	if tp == nil {
		tp = NewMonotonicTimeProvider()
	}

	world := NewWorld(settings.Width, settings.Height)

	builder, err := world.Spawn(components.KindBuilder, settings.BuilderStart)
	if err != nil {
		return nil, fmt.Errorf("builder: %w", err)
	}

	owned := make([]core.Point, len(targets))
	copy(owned, targets)
	for _, p := range owned {
		if _, err := world.Spawn(components.KindTarget, p); err != nil {
			return nil, fmt.Errorf("target (%d,%d): %w", p.Row, p.Col, err)
		}
	}

	ctx := &GameContext{
		Settings:     settings,
		World:        world,
		State:        NewGameState(settings.ScorePerTarget*int64(len(owned)), tp.Now()),
		Targets:      owned,
		Builder:      builder,
		Events:       NewEventQueue(constants.EventQueueSize),
		TimeProvider: tp,
	}
	return ctx, nil
}

// AddSystem registers a tick participant and keeps systems sorted by priority
func (ctx *GameContext) AddSystem(s System) {
	ctx.systems = append(ctx.systems, s)
	sort.SliceStable(ctx.systems, func(i, j int) bool {
		return ctx.systems[i].Priority() < ctx.systems[j].Priority()
	})
}

// Tick runs every system once, in priority order, and returns the tick number
// Nothing else mutates the world while a tick runs
func (ctx *GameContext) Tick() uint64 {
	for _, s := range ctx.systems {
		s.Update()
	}
	return ctx.State.IncrementTicks()
}

// PushEvent records a transition for the shell, stamped with the tick being processed
func (ctx *GameContext) PushEvent(t EventType, e core.Entity, p core.Point) {
	ctx.Events.Push(GameEvent{Type: t, Entity: e, Pos: p, Tick: ctx.State.GetTicks() + 1})
}

// Elapsed returns wall time since the game started
func (ctx *GameContext) Elapsed() time.Duration {
	return ctx.TimeProvider.Now().Sub(ctx.State.StartTime)
}

// BuilderPos returns the builder's coordinate
func (ctx *GameContext) BuilderPos() core.Point {
	if b, ok := ctx.World.Block(ctx.Builder); ok {
		return b.Pos
	}
	return ctx.Settings.BuilderStart
}

// Uncovered reports whether target coordinate p still holds a Target
// Any other occupant covers it, including a block still falling through; an
// empty cell counts as covered
func (ctx *GameContext) Uncovered(p core.Point) bool {
	_, b, ok := ctx.World.At(p)
	if !ok {
		return false
	}
	return b.Kind == components.KindTarget
}

// TargetsRemaining counts target coordinates still holding a Target
func (ctx *GameContext) TargetsRemaining() int {
	n := 0
	for _, p := range ctx.Targets {
		if ctx.Uncovered(p) {
			n++
		}
	}
	return n
}

// CheckInvariants verifies the occupancy invariants the simulator relies on:
// every target coordinate is occupied, grid and records agree, and every
// in-flight handle is a live falling block
func (ctx *GameContext) CheckInvariants() error {
	for _, p := range ctx.Targets {
		if _, ok := ctx.World.Grid.Lookup(p); !ok {
			return fmt.Errorf("target (%d,%d) has no occupant: %w", p.Row, p.Col, ErrInvariant)
		}
	}

	var err error
	ctx.World.Each(func(e core.Entity, b *components.Block) {
		if err != nil {
			return
		}
		if held, _ := ctx.World.Grid.Lookup(b.Pos); held != e {
			err = fmt.Errorf("entity %d records (%d,%d) but cell holds %d: %w", e, b.Pos.Row, b.Pos.Col, held, ErrInvariant)
		}
	})
	if err != nil {
		return err
	}
	if ctx.World.Grid.Count() != ctx.World.Len() {
		return fmt.Errorf("grid holds %d entities, world %d: %w", ctx.World.Grid.Count(), ctx.World.Len(), ErrInvariant)
	}

	// Loose handles must be Sand, the fixed slot Stone
	check := func(e core.Entity, fixed bool) error {
		b, ok := ctx.World.Block(e)
		if !ok || !b.Kind.Falls() || (b.Kind == components.KindFixed) != fixed {
			return fmt.Errorf("flight handle %d (fixed=%t) is not a live falling block: %w", e, fixed, ErrInvariant)
		}
		return nil
	}
	for _, e := range ctx.Flight.Loose {
		if err := check(e, false); err != nil {
			return err
		}
	}
	if ctx.Flight.Fixed != 0 {
		if err := check(ctx.Flight.Fixed, true); err != nil {
			return err
		}
	}
	return nil
}

// LogInvariants logs the first invariant violation, if any; used in debug builds of the loop
func (ctx *GameContext) LogInvariants() {
	if err := ctx.CheckInvariants(); err != nil {
		log.Printf("[engine] tick %d: %v", ctx.State.GetTicks(), err)
	}
}

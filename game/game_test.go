package game

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/fullkning/components"
	"github.com/lixenwraith/fullkning/core"
	"github.com/lixenwraith/fullkning/engine"
)

type eventLog struct {
	events []engine.GameEvent
}

func (l *eventLog) HandleEvent(ev engine.GameEvent) { l.events = append(l.events, ev) }
func (l *eventLog) EventTypes() []engine.EventType  { return engine.AllEventTypes() }

func newTestGame(t *testing.T, targets ...core.Point) (*Game, *engine.MockTimeProvider) {
	t.Helper()
	tp := engine.NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	g, err := New(engine.DefaultSettings(), targets, tp)
	require.NoError(t, err)
	return g, tp
}

func TestNewGameBoundary(t *testing.T) {
	g, tp := newTestGame(t, core.Point{Row: 19, Col: 0}, core.Point{Row: 19, Col: 9}, core.Point{Row: 10, Col: 4})

	assert.Equal(t, int64(9), g.Score())
	assert.Equal(t, int64(0), g.CooldownRemaining())
	assert.Equal(t, components.KindLoose, g.SelectedBlockType())
	assert.Equal(t, 3, g.TargetsRemainingCount())
	assert.False(t, g.IsVictory())
	assert.Equal(t, uint64(0), g.TickCount())
	assert.Equal(t, 10, g.Width())
	assert.Equal(t, 20, g.Height())

	tp.Advance(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, g.Elapsed())

	kinds := map[components.BlockKind]int{}
	g.Blocks(func(b components.Block) { kinds[b.Kind]++ })
	assert.Equal(t, 3, kinds[components.KindTarget])
	assert.Equal(t, 1, kinds[components.KindBuilder])
}

func TestNewGameRejectsBadTargets(t *testing.T) {
	_, err := New(engine.DefaultSettings(), []core.Point{{Row: -1, Col: 0}}, nil)
	assert.True(t, errors.Is(err, engine.ErrOutOfBounds))
}

func TestApplyDispatchesAndRecords(t *testing.T) {
	g, _ := newTestGame(t)
	log := &eventLog{}
	g.Subscribe(log)

	type rec struct {
		tick uint64
		a    Action
	}
	var recorded []rec
	g.SetRecorder(func(tick uint64, a Action) { recorded = append(recorded, rec{tick, a}) })

	assert.True(t, g.Apply(ActionUnhook))
	require.Len(t, log.events, 1, "spawn event delivered with the action")
	assert.Equal(t, engine.EventSpawned, log.events[0].Type)

	g.Tick()
	assert.True(t, g.Apply(ActionMoveLeft))
	assert.False(t, g.Apply(ActionUnhook), "cooldown still running")
	assert.False(t, g.Apply(ActionQuit))
	assert.False(t, g.Apply(ActionPause))
	assert.False(t, g.Apply(ActionNone))

	assert.Equal(t, []rec{{0, ActionUnhook}, {1, ActionMoveLeft}, {1, ActionUnhook}}, recorded)
}

func TestApplyMovesBuilder(t *testing.T) {
	g, _ := newTestGame(t)
	start := g.Context().BuilderPos()

	g.Apply(ActionMoveRight)
	assert.Equal(t, start.Add(core.Right), g.Context().BuilderPos())
	g.Apply(ActionMoveDown)
	assert.Equal(t, start.Add(core.Right).Add(core.Down), g.Context().BuilderPos())
	g.Apply(ActionMoveUp)
	g.Apply(ActionMoveLeft)
	assert.Equal(t, start, g.Context().BuilderPos())
}

func TestApplySelectAndCancel(t *testing.T) {
	g, _ := newTestGame(t)

	assert.True(t, g.Apply(ActionSelectNext))
	assert.Equal(t, components.KindFixed, g.SelectedBlockType())
	assert.False(t, g.Apply(ActionCancelFixed), "nothing to cancel")

	require.True(t, g.Apply(ActionUnhook))
	assert.Equal(t, 1, g.InFlight())
	assert.True(t, g.Apply(ActionCancelFixed))
	assert.Equal(t, 0, g.InFlight())
}

func TestPlayToVictory(t *testing.T) {
	g, _ := newTestGame(t, core.Point{Row: 19, Col: 5})
	log := &eventLog{}
	g.Subscribe(log)

	require.True(t, g.AttemptUnhook())
	for i := 0; i < 30 && !g.IsVictory(); i++ {
		g.Tick()
	}
	require.True(t, g.IsVictory())
	assert.Equal(t, int64(2), g.Score())
	assert.Equal(t, 0, g.TargetsRemainingCount())
	assert.NoError(t, g.CheckInvariants())

	var last engine.EventType
	for _, ev := range log.events {
		last = ev.Type
	}
	assert.Equal(t, engine.EventVictory, last)
}

func TestParseAction(t *testing.T) {
	for a := ActionNone; a <= ActionQuit; a++ {
		got, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	_, err := ParseAction("jump")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

package journal

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/fullkning/core"
	"github.com/lixenwraith/fullkning/engine"
	"github.com/lixenwraith/fullkning/game"
)

var start = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// play records a short game: two sand drops into column 5 and a stone drop into column 4
func play(t *testing.T, path string) *game.Game {
	t.Helper()
	settings := engine.DefaultSettings()
	targets := []core.Point{{Row: 19, Col: 5}, {Row: 19, Col: 4}}

	g, err := game.New(settings, targets, engine.NewMockTimeProvider(start))
	require.NoError(t, err)
	w, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteHeader("test", settings, targets, start))
	g.SetRecorder(w.Recorder())

	script := map[uint64][]game.Action{
		0:  {game.ActionUnhook},
		4:  {game.ActionUnhook},
		5:  {game.ActionMoveLeft, game.ActionSelectNext},
		8:  {game.ActionUnhook},
		12: {game.ActionMoveRight},
	}
	for g.TickCount() < 40 {
		for _, a := range script[g.TickCount()] {
			g.Apply(a)
		}
		g.Tick()
	}

	require.NoError(t, w.Finish(g))
	require.NoError(t, w.Close())
	return g
}

func TestReplayReproducesGame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game"+Extension)
	live := play(t, path)

	records, err := ReadAll(path)
	require.NoError(t, err)
	require.Len(t, records, 8)
	assert.Equal(t, KindHeader, records[0].Kind)
	assert.Equal(t, Version, records[0].Version)
	assert.Equal(t, KindEnd, records[len(records)-1].Kind)
	assert.Equal(t, "unhook", records[1].Action)

	sum, err := Verify(path)
	require.NoError(t, err)
	assert.Equal(t, "test", sum.Level)
	assert.Equal(t, uint64(40), sum.Ticks)
	assert.Equal(t, 6, sum.Actions)
	assert.Equal(t, live.Score(), sum.Score)
	assert.Equal(t, live.IsVictory(), sum.Won)
	assert.Equal(t, Digest(live), sum.Digest)
}

func TestReplayDetectsTampering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game"+Extension)
	play(t, path)
	records, err := ReadAll(path)
	require.NoError(t, err)

	// Dropping the stone changes the final field
	var tampered []Record
	for _, r := range records {
		if r.Kind == KindAction && r.Tick == 8 {
			continue
		}
		tampered = append(tampered, r)
	}
	_, _, err = Replay(tampered)
	assert.True(t, errors.Is(err, ErrDigestMismatch), "got %v", err)
}

func TestReplayErrors(t *testing.T) {
	_, _, err := Replay(nil)
	assert.True(t, errors.Is(err, ErrNoHeader))

	_, _, err = Replay([]Record{{Kind: KindAction, Action: "unhook"}})
	assert.True(t, errors.Is(err, ErrNoHeader))

	s := engine.DefaultSettings()
	head := Record{Kind: KindHeader, Version: Version, Settings: &s}

	g, sum, err := Replay([]Record{head, {Kind: KindAction, Tick: 3, Action: "unhook"}})
	assert.True(t, errors.Is(err, ErrTruncated))
	require.NotNil(t, g)
	assert.Equal(t, uint64(3), sum.Ticks)
	assert.Equal(t, 1, sum.Actions)

	_, _, err = Replay([]Record{head, {Kind: KindAction, Action: "fly"}})
	assert.True(t, errors.Is(err, game.ErrUnknownAction))

	_, _, err = Replay([]Record{head, {Kind: KindAction, Tick: 5, Action: "unhook"}, {Kind: KindAction, Tick: 2, Action: "unhook"}})
	assert.Error(t, err)
}

func TestDigestTracksState(t *testing.T) {
	g, err := game.New(engine.DefaultSettings(), []core.Point{{Row: 19, Col: 5}}, nil)
	require.NoError(t, err)
	before := Digest(g)
	assert.Len(t, before, 64)
	assert.Equal(t, before, Digest(g))

	g.Apply(game.ActionSelectNext)
	assert.NotEqual(t, before, Digest(g))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write([]byte("{\"kind\":\"header\"}\nnot json\n"))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	records, err := Decode(&buf)
	assert.Error(t, err)
	assert.Len(t, records, 1)
}

func TestWriterClosed(t *testing.T) {
	w, err := Create(filepath.Join(t.TempDir(), "nested", "j"+Extension))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.True(t, errors.Is(w.Write(Record{Kind: KindEnd}), ErrClosed))
}

func TestPath(t *testing.T) {
	p := Path("journal", "1", start)
	assert.Equal(t, filepath.Join("journal", "1-20240301-120000.jsonl.zst"), p)
}

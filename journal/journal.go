package journal

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/lixenwraith/fullkning/components"
	"github.com/lixenwraith/fullkning/core"
	"github.com/lixenwraith/fullkning/engine"
	"github.com/lixenwraith/fullkning/game"
)

// Version of the record layout
const Version = 1

// Extension of journal files
const Extension = ".jsonl.zst"

// Record kinds
const (
	KindHeader = "header"
	KindAction = "action"
	KindEnd    = "end"
)

var (
	ErrNoHeader       = errors.New("journal has no header")
	ErrTruncated      = errors.New("journal has no end record")
	ErrDigestMismatch = errors.New("replay digest mismatch")
	ErrClosed         = errors.New("journal closed")
)

// Record is one JSON line. Header fields are set only on the first line,
// Action only on action lines, Digest/Score/Won only on the last
type Record struct {
	Kind     string           `json:"kind"`
	Tick     uint64           `json:"tick"`
	Version  int              `json:"version,omitempty"`
	Level    string           `json:"level,omitempty"`
	Settings *engine.Settings `json:"settings,omitempty"`
	Targets  []core.Point     `json:"targets,omitempty"`
	Started  *time.Time       `json:"started,omitempty"`
	Action   string           `json:"action,omitempty"`
	Digest   string           `json:"digest,omitempty"`
	Score    int64            `json:"score,omitempty"`
	Won      bool             `json:"won,omitempty"`
}

// Path returns the journal file for a game of level started at t
func Path(dir, level string, t time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%s%s", level, t.UTC().Format("20060102-150405"), Extension))
}

// Writer appends records to a zstd-compressed JSONL file
type Writer struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
	err error // First recorder failure, reported by Close
}

// Create opens a new journal at path, creating parent directories
func Create(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Writer{f: f, enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}, nil
}

// Write appends one record
func (w *Writer) Write(r Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writeLocked(r)
}

func (w *Writer) writeLocked(r Record) error {
	if w.w == nil {
		return ErrClosed
	}
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// WriteHeader records what is needed to rebuild the starting field
func (w *Writer) WriteHeader(level string, settings engine.Settings, targets []core.Point, started time.Time) error {
	s := settings
	return w.Write(Record{
		Kind:     KindHeader,
		Version:  Version,
		Level:    level,
		Settings: &s,
		Targets:  targets,
		Started:  &started,
	})
}

// Recorder adapts the writer to the game's action observer
// Write failures are kept and returned by Close
func (w *Writer) Recorder() game.Recorder {
	return func(tick uint64, a game.Action) {
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.err != nil {
			return
		}
		w.err = w.writeLocked(Record{Kind: KindAction, Tick: tick, Action: a.String()})
	}
}

// Finish writes the end record for g
func (w *Writer) Finish(g *game.Game) error {
	return w.Write(Record{
		Kind:   KindEnd,
		Tick:   g.TickCount(),
		Digest: Digest(g),
		Score:  g.Score(),
		Won:    g.IsVictory(),
	})
}

// Close flushes and closes the file
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return nil
	}
	flushErr := w.w.Flush()
	encErr := w.enc.Close()
	fileErr := w.f.Close()
	w.w, w.enc, w.f = nil, nil, nil
	return errors.Join(w.err, flushErr, encErr, fileErr)
}

// ReadAll decodes every record of the journal at path
func ReadAll(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads zstd-compressed JSONL records from r
func Decode(r io.Reader) ([]Record, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)
	var out []Record
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return out, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	return out, sc.Err()
}

// Digest hashes the observable state of g: counters, selection and every
// occupant in creation order. Entity handles and wall time are excluded
func Digest(g *game.Game) string {
	h := sha256.New()
	fmt.Fprintf(h, "t=%d s=%d d=%d c=%d k=%s v=%t\n",
		g.TickCount(), g.Score(), g.Drops(), g.CooldownRemaining(), g.SelectedBlockType(), g.IsVictory())
	g.Blocks(func(b components.Block) {
		fmt.Fprintf(h, "%s %d %d %t\n", b.Kind, b.Pos.Row, b.Pos.Col, b.Shadowing)
	})
	return hex.EncodeToString(h.Sum(nil))
}

// Summary describes a verified journal
type Summary struct {
	Level   string
	Ticks   uint64
	Actions int
	Score   int64
	Won     bool
	Digest  string
}

// Replay rebuilds the game from the header and applies every action at its tick
// The returned game is left at the end record's tick, or at the last action when truncated
func Replay(records []Record) (*game.Game, Summary, error) {
	if len(records) == 0 || records[0].Kind != KindHeader || records[0].Settings == nil {
		return nil, Summary{}, ErrNoHeader
	}
	head := records[0]
	start := time.Time{}
	if head.Started != nil {
		start = *head.Started
	}
	g, err := game.New(*head.Settings, head.Targets, engine.NewMockTimeProvider(start))
	if err != nil {
		return nil, Summary{}, fmt.Errorf("rebuild: %w", err)
	}

	sum := Summary{Level: head.Level}
	var end *Record
	for i := 1; i < len(records); i++ {
		rec := records[i]
		switch rec.Kind {
		case KindAction:
			a, err := game.ParseAction(rec.Action)
			if err != nil {
				return g, sum, fmt.Errorf("record %d: %w", i, err)
			}
			if rec.Tick < g.TickCount() {
				return g, sum, fmt.Errorf("record %d: tick %d before %d", i, rec.Tick, g.TickCount())
			}
			for g.TickCount() < rec.Tick {
				g.Tick()
			}
			g.Apply(a)
			sum.Actions++
		case KindEnd:
			end = &records[i]
		default:
			return g, sum, fmt.Errorf("record %d: unexpected kind %q", i, rec.Kind)
		}
		if end != nil {
			break
		}
	}

	if end == nil {
		sum.Ticks, sum.Score, sum.Won, sum.Digest = g.TickCount(), g.Score(), g.IsVictory(), Digest(g)
		return g, sum, ErrTruncated
	}
	for g.TickCount() < end.Tick {
		g.Tick()
	}
	sum.Ticks, sum.Score, sum.Won, sum.Digest = g.TickCount(), g.Score(), g.IsVictory(), Digest(g)
	if sum.Digest != end.Digest {
		return g, sum, fmt.Errorf("tick %d: got %s want %s: %w", sum.Ticks, sum.Digest, end.Digest, ErrDigestMismatch)
	}
	return g, sum, nil
}

// Verify replays the journal at path
func Verify(path string) (Summary, error) {
	records, err := ReadAll(path)
	if err != nil {
		return Summary{}, err
	}
	_, sum, err := Replay(records)
	return sum, err
}

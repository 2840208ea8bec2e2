package scores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrClosed is returned when using a store after Close
var ErrClosed = errors.New("scores store closed")

// Result is one finished game
type Result struct {
	Level      string
	Won        bool
	Score      int64
	Drops      int64
	Ticks      uint64
	Elapsed    time.Duration
	Targets    int
	RecordedAt time.Time
}

// Store keeps game results in a SQLite database
type Store struct {
	db *sql.DB
}

// Open creates or opens the results database at path
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL,
			won INTEGER NOT NULL,
			score INTEGER NOT NULL,
			drops INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			targets INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS results_level ON results(level, won, score);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Record appends a result; a zero RecordedAt is stamped with the current time
func (s *Store) Record(ctx context.Context, r Result) error {
	if s.db == nil {
		return ErrClosed
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results(level, won, score, drops, ticks, elapsed_ms, targets, recorded_at)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Level, boolToInt(r.Won), r.Score, r.Drops, int64(r.Ticks), r.Elapsed.Milliseconds(), r.Targets,
		r.RecordedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	return nil
}

// Best returns the highest-scoring win on level; fewer ticks break ties
func (s *Store) Best(ctx context.Context, level string) (Result, bool, error) {
	if s.db == nil {
		return Result{}, false, ErrClosed
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT level, won, score, drops, ticks, elapsed_ms, targets, recorded_at
		 FROM results WHERE level = ? AND won = 1
		 ORDER BY score DESC, ticks ASC, id ASC LIMIT 1`, level)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, false, nil
	}
	if err != nil {
		return Result{}, false, err
	}
	return r, true, nil
}

// History returns up to limit results on level, most recent first
func (s *Store) History(ctx context.Context, level string, limit int) ([]Result, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT level, won, score, drops, ticks, elapsed_ms, targets, recorded_at
		 FROM results WHERE level = ? ORDER BY id DESC LIMIT ?`, level, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close releases the database
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(sc scanner) (Result, error) {
	var (
		r         Result
		won       int
		ticks     int64
		elapsedMs int64
		at        string
	)
	if err := sc.Scan(&r.Level, &won, &r.Score, &r.Drops, &ticks, &elapsedMs, &r.Targets, &at); err != nil {
		return Result{}, err
	}
	r.Won = won != 0
	r.Ticks = uint64(ticks)
	r.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	t, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return Result{}, fmt.Errorf("recorded_at %q: %w", at, err)
	}
	r.RecordedAt = t
	return r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

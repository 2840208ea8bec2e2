package level

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/lixenwraith/fullkning/core"
)

const (
	// Extension of level files
	Extension = ".level"
	// DefaultDir holds the bundled levels
	DefaultDir = "levels"
	// DefaultName is the level loaded when none is given
	DefaultName = "1"
	// CommentPrefix starts a line ignored by the parser
	CommentPrefix = "#"
)

var (
	// ErrMalformed is returned for level text that is not a list of in-bounds, distinct row/col pairs
	ErrMalformed = errors.New("malformed level")

	// ErrExists is returned when writing a level that is already on disk
	ErrExists = errors.New("level already exists")
)

// token is a whitespace-separated field with its source line for error reports
type token struct {
	text string
	line int
}

// Path returns the file path of the named level under dir
func Path(dir, name string) string {
	return filepath.Join(dir, name+Extension)
}

// Parse reads whitespace-separated "row col" pairs, one target per pair, in file order
// Pairs may span lines; lines starting with CommentPrefix are skipped
func Parse(r io.Reader, width, height int) ([]core.Point, error) {
	var tokens []token
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, CommentPrefix) {
			continue
		}
		for _, f := range strings.Fields(line) {
			tokens = append(tokens, token{text: f, line: lineNum})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading level: %w", err)
	}

	if len(tokens)%2 != 0 {
		last := tokens[len(tokens)-1]
		return nil, fmt.Errorf("line %d: %q has no column: %w", last.line, last.text, ErrMalformed)
	}

	points := make([]core.Point, 0, len(tokens)/2)
	seen := make(map[core.Point]int, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		row, err := strconv.Atoi(tokens[i].text)
		if err != nil {
			return nil, fmt.Errorf("line %d: row %q: %w", tokens[i].line, tokens[i].text, ErrMalformed)
		}
		col, err := strconv.Atoi(tokens[i+1].text)
		if err != nil {
			return nil, fmt.Errorf("line %d: col %q: %w", tokens[i+1].line, tokens[i+1].text, ErrMalformed)
		}

		p := core.Point{Row: row, Col: col}
		if row < 0 || row >= height || col < 0 || col >= width {
			return nil, fmt.Errorf("line %d: (%d,%d) outside %dx%d field: %w", tokens[i].line, row, col, width, height, ErrMalformed)
		}
		if first, dup := seen[p]; dup {
			return nil, fmt.Errorf("line %d: (%d,%d) repeats line %d: %w", tokens[i].line, row, col, first, ErrMalformed)
		}
		seen[p] = tokens[i].line
		points = append(points, p)
	}
	return points, nil
}

// Load parses the level file at path
func Load(path string, width, height int) ([]core.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open level: %w", err)
	}
	defer f.Close()

	points, err := Parse(f, width, height)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("[level] loaded %d targets from %s", len(points), path)
	return points, nil
}

// Save writes one "row col" pair per line
func Save(w io.Writer, points []core.Point) error {
	bw := bufio.NewWriter(w)
	for _, p := range points {
		if _, err := fmt.Fprintf(bw, "%d %d\n", p.Row, p.Col); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Create writes a new level file, refusing to replace an existing one
func Create(path string, points []core.Point) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create level dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s: %w", path, ErrExists)
		}
		return fmt.Errorf("create level: %w", err)
	}
	if err := Save(f, points); err != nil {
		f.Close()
		return fmt.Errorf("write level: %w", err)
	}
	return f.Close()
}

// Exists reports whether a level file is present at path
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Discover lists level names in dir, sorted; hidden files are skipped
// A missing directory yields no levels rather than an error
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read level directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, Extension) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, Extension))
	}
	sort.Strings(names)
	return names, nil
}

package engine

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/fullkning/core"
)

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the field
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrOccupied is returned when a cell already holds another entity
	ErrOccupied = errors.New("cell occupied")

	// ErrEmptyCell is returned when relocating from a cell that holds nothing
	ErrEmptyCell = errors.New("cell empty")
)

// MoveOutcome classifies the result of a single move attempt
type MoveOutcome uint8

const (
	Moved       MoveOutcome = iota // Coordinate updated
	HitBoundary                    // Destination outside the field, entity unchanged
	HitOccupant                    // Destination held by another entity, entity unchanged
)

// String returns a log-friendly name
func (o MoveOutcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case HitBoundary:
		return "boundary"
	case HitOccupant:
		return "occupied"
	default:
		return "unknown"
	}
}

// MoveResult is the three-way outcome of a move; Occupant is set only for HitOccupant
type MoveResult struct {
	Outcome  MoveOutcome
	Occupant core.Entity
}

// Grid is a dense bounded surface mapping each cell to at most one entity
// It only indexes handles; entity records are owned by World
type Grid struct {
	Width  int
	Height int
	cells  []core.Entity // 1D array: index = row*Width + col, 0 = empty
}

// NewGrid creates an empty grid with the specified dimensions
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make([]core.Entity, width*height),
	}
}

// InBounds reports whether p lies inside the field
func (g *Grid) InBounds(p core.Point) bool {
	return p.Row >= 0 && p.Row < g.Height && p.Col >= 0 && p.Col < g.Width
}

func (g *Grid) index(p core.Point) int {
	return p.Row*g.Width + p.Col
}

// Lookup returns the occupant at p; out of bounds reads as empty
func (g *Grid) Lookup(p core.Point) (core.Entity, bool) {
	if !g.InBounds(p) {
		return 0, false
	}
	e := g.cells[g.index(p)]
	return e, e != 0
}

// Place puts e at p
// Fails with ErrOutOfBounds or ErrOccupied, leaving the grid unchanged
func (g *Grid) Place(e core.Entity, p core.Point) error {
	if !g.InBounds(p) {
		return fmt.Errorf("place entity %d at (%d,%d): %w", e, p.Row, p.Col, ErrOutOfBounds)
	}
	idx := g.index(p)
	if existing := g.cells[idx]; existing != 0 && existing != e {
		return fmt.Errorf("place entity %d at (%d,%d) held by %d: %w", e, p.Row, p.Col, existing, ErrOccupied)
	}
	g.cells[idx] = e
	return nil
}

// Remove clears p and returns what was there
func (g *Grid) Remove(p core.Point) core.Entity {
	if !g.InBounds(p) {
		return 0
	}
	idx := g.index(p)
	e := g.cells[idx]
	g.cells[idx] = 0
	return e
}

// Count returns the number of occupied cells
func (g *Grid) Count() int {
	n := 0
	for _, e := range g.cells {
		if e != 0 {
			n++
		}
	}
	return n
}

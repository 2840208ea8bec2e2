package engine

import (
	"fmt"

	"github.com/kamstrup/intmap"

	"github.com/lixenwraith/fullkning/components"
	"github.com/lixenwraith/fullkning/core"
)

// World owns every block record and keeps the grid index consistent with them
// Records are addressed by entity handle; the grid maps coordinates to handles
type World struct {
	nextEntityID core.Entity
	records      *intmap.Map[core.Entity, *components.Block]
	order        []core.Entity // Creation order, for deterministic iteration
	Grid         *Grid
}

// NewWorld creates an empty world over a width x height field
func NewWorld(width, height int) *World {
	return &World{
		nextEntityID: 1,
		records:      intmap.New[core.Entity, *components.Block](width * height),
		order:        make([]core.Entity, 0, 64),
		Grid:         NewGrid(width, height),
	}
}

// reserveEntityID allocates a handle that has never been used in this world
func (w *World) reserveEntityID() core.Entity {
	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// Spawn creates a block of kind at p and places it on the grid
// No record is kept when placement fails
func (w *World) Spawn(kind components.BlockKind, p core.Point) (core.Entity, error) {
	e := w.reserveEntityID()
	if err := w.Grid.Place(e, p); err != nil {
		return 0, fmt.Errorf("spawn %s: %w", kind, err)
	}
	b := components.NewBlock(kind, p)
	w.records.Put(e, &b)
	w.order = append(w.order, e)
	return e, nil
}

// Block returns the record for e
func (w *World) Block(e core.Entity) (*components.Block, bool) {
	if e == 0 {
		return nil, false
	}
	return w.records.Get(e)
}

// At returns the handle and record occupying p
func (w *World) At(p core.Point) (core.Entity, *components.Block, bool) {
	e, ok := w.Grid.Lookup(p)
	if !ok {
		return 0, nil, false
	}
	b, ok := w.records.Get(e)
	if !ok {
		return 0, nil, false
	}
	return e, b, true
}

// Destroy removes e from the grid and drops its record
func (w *World) Destroy(e core.Entity) {
	b, ok := w.records.Get(e)
	if !ok {
		return
	}
	if held, _ := w.Grid.Lookup(b.Pos); held == e {
		w.Grid.Remove(b.Pos)
	}
	w.records.Del(e)
	for i, id := range w.order {
		if id == e {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Unplace frees the cell held by e without dropping its record
func (w *World) Unplace(e core.Entity) {
	b, ok := w.records.Get(e)
	if !ok {
		return
	}
	if held, _ := w.Grid.Lookup(b.Pos); held == e {
		w.Grid.Remove(b.Pos)
	}
}

// Place puts an existing record on the grid at p and updates its coordinate
func (w *World) Place(e core.Entity, p core.Point) error {
	b, ok := w.records.Get(e)
	if !ok {
		return fmt.Errorf("place entity %d: unknown entity", e)
	}
	if err := w.Grid.Place(e, p); err != nil {
		return err
	}
	b.Pos = p
	return nil
}

// MoveBy attempts to shift e by delta
// Boundary and collision are reported as outcomes; the entity is untouched unless Moved
func (w *World) MoveBy(e core.Entity, delta core.Point) MoveResult {
	b, ok := w.records.Get(e)
	if !ok {
		return MoveResult{Outcome: HitBoundary}
	}
	dest := b.Pos.Add(delta)
	if !w.Grid.InBounds(dest) {
		return MoveResult{Outcome: HitBoundary}
	}
	if occupant, taken := w.Grid.Lookup(dest); taken && occupant != e {
		return MoveResult{Outcome: HitOccupant, Occupant: occupant}
	}
	w.Grid.Remove(b.Pos)
	// Destination verified empty above
	_ = w.Grid.Place(e, dest)
	b.Pos = dest
	return MoveResult{Outcome: Moved}
}

// Relocate moves whatever occupies from to the empty cell to
func (w *World) Relocate(from, to core.Point) error {
	e, ok := w.Grid.Lookup(from)
	if !ok {
		return fmt.Errorf("relocate (%d,%d): %w", from.Row, from.Col, ErrEmptyCell)
	}
	if from == to {
		return nil
	}
	if err := w.Grid.Place(e, to); err != nil {
		return fmt.Errorf("relocate (%d,%d): %w", from.Row, from.Col, err)
	}
	w.Grid.Remove(from)
	if b, ok := w.records.Get(e); ok {
		b.Pos = to
	}
	return nil
}

// Each calls fn for every record in creation order
func (w *World) Each(fn func(e core.Entity, b *components.Block)) {
	for _, e := range w.order {
		if b, ok := w.records.Get(e); ok {
			fn(e, b)
		}
	}
}

// Count returns the number of records of the given kind
func (w *World) Count(kind components.BlockKind) int {
	n := 0
	w.Each(func(_ core.Entity, b *components.Block) {
		if b.Kind == kind {
			n++
		}
	})
	return n
}

// Len returns the number of live records
func (w *World) Len() int {
	return w.records.Len()
}

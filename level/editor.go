package level

import "github.com/lixenwraith/fullkning/core"

// Editor is the level maker's model: a cursor over the field and the targets placed so far
// Targets go one row below the cursor, leaving the cursor row free like the builder row in play
type Editor struct {
	Width  int
	Height int
	Cursor core.Point

	targets []core.Point
}

// NewEditor creates an empty editor with the cursor in the top-left corner
func NewEditor(width, height int) *Editor {
	return &Editor{Width: width, Height: height}
}

// MoveCursor shifts the cursor, clamped to the field
func (ed *Editor) MoveCursor(dx, dy int) {
	ed.Cursor.Col = clamp(ed.Cursor.Col+dx, 0, ed.Width-1)
	ed.Cursor.Row = clamp(ed.Cursor.Row+dy, 0, ed.Height-1)
}

// Place adds a target below the cursor; false when off the field or already present
func (ed *Editor) Place() bool {
	p := ed.Cursor.Below()
	if p.Row >= ed.Height || ed.Has(p) {
		return false
	}
	ed.targets = append(ed.targets, p)
	return true
}

// Remove deletes the target below the cursor, if any
func (ed *Editor) Remove() bool {
	p := ed.Cursor.Below()
	for i, t := range ed.targets {
		if t == p {
			ed.targets = append(ed.targets[:i], ed.targets[i+1:]...)
			return true
		}
	}
	return false
}

// Has reports whether p is a target
func (ed *Editor) Has(p core.Point) bool {
	for _, t := range ed.targets {
		if t == p {
			return true
		}
	}
	return false
}

// Targets returns the placed targets in placement order
func (ed *Editor) Targets() []core.Point {
	out := make([]core.Point, len(ed.targets))
	copy(out, ed.targets)
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package level

import (
	"testing"

	"github.com/lixenwraith/fullkning/core"
)

func TestEditorCursorClamps(t *testing.T) {
	ed := NewEditor(10, 20)
	ed.MoveCursor(-1, -1)
	if ed.Cursor != (core.Point{}) {
		t.Errorf("cursor left the field: %+v", ed.Cursor)
	}
	ed.MoveCursor(50, 50)
	if ed.Cursor != (core.Point{Row: 19, Col: 9}) {
		t.Errorf("cursor = %+v, want bottom-right", ed.Cursor)
	}
}

func TestEditorPlaceAndRemove(t *testing.T) {
	ed := NewEditor(10, 20)
	ed.MoveCursor(3, 4)

	if !ed.Place() {
		t.Fatal("Place refused")
	}
	if !ed.Has(core.Point{Row: 5, Col: 3}) {
		t.Error("target not placed below the cursor")
	}
	if ed.Place() {
		t.Error("duplicate target accepted")
	}

	ed.MoveCursor(1, 0)
	ed.Place()
	if got := ed.Targets(); len(got) != 2 || got[1] != (core.Point{Row: 5, Col: 4}) {
		t.Errorf("targets = %v", got)
	}

	ed.MoveCursor(-1, 0)
	if !ed.Remove() {
		t.Error("Remove found nothing")
	}
	if ed.Remove() {
		t.Error("second Remove succeeded")
	}
	if got := ed.Targets(); len(got) != 1 || got[0] != (core.Point{Row: 5, Col: 4}) {
		t.Errorf("targets after remove = %v", got)
	}
}

func TestEditorPlaceOnBottomRowRefused(t *testing.T) {
	ed := NewEditor(10, 20)
	ed.MoveCursor(0, 19)
	if ed.Place() {
		t.Error("placed a target below the floor")
	}
}

package components

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/fullkning/core"
)

// BlockKind discriminates the grid occupant variants
type BlockKind uint8

const (
	KindTarget  BlockKind = iota // Cell the player must cover
	KindLoose                    // Sand: any number may fall at once
	KindFixed                    // Stone: at most one in flight
	KindBuilder                  // Player avatar, never falls
)

// String returns the display name used in the HUD and logs
func (k BlockKind) String() string {
	switch k {
	case KindTarget:
		return "Target"
	case KindLoose:
		return "Sand"
	case KindFixed:
		return "Stone"
	case KindBuilder:
		return "Builder"
	default:
		return "Unknown"
	}
}

// Solid reports whether a falling block comes to rest on this kind
func (k BlockKind) Solid() bool {
	return k != KindTarget
}

// Falls reports whether the kind is advanced by the fall system
func (k BlockKind) Falls() bool {
	return k == KindLoose || k == KindFixed
}

// Block is the single record type for every grid occupant
// Shadowing is only meaningful for falling kinds: the block sits on a target
// coordinate whose Target record was evicted and must be restored when it moves on
type Block struct {
	Kind      BlockKind
	Glyph     rune
	Style     tcell.Style
	Pos       core.Point
	Shadowing bool
}

// Display styles: sand is white on yellow, stone white on black
var (
	SandStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorOlive).Bold(true)
	StoneStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack).Bold(true)
	TargetStyle  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorTeal).Blink(true)
	BuilderStyle = tcell.StyleDefault.Foreground(tcell.ColorPurple).Background(tcell.ColorBlack).Reverse(true)
)

const (
	BlockGlyph   = '#'
	BuilderGlyph = '$'
)

// NewBlock builds the record for kind at pos with its glyph and style
func NewBlock(kind BlockKind, pos core.Point) Block {
	b := Block{Kind: kind, Pos: pos}
	switch kind {
	case KindTarget:
		b.Glyph = TargetGlyph(pos.Col)
		b.Style = TargetStyle
	case KindLoose:
		b.Glyph = BlockGlyph
		b.Style = SandStyle
	case KindFixed:
		b.Glyph = BlockGlyph
		b.Style = StoneStyle
	case KindBuilder:
		b.Glyph = BuilderGlyph
		b.Style = BuilderStyle
	}
	return b
}

// TargetGlyph labels a target with its column digit so columns are readable on wide fields
func TargetGlyph(col int) rune {
	if col < 0 {
		return ' '
	}
	return rune('0' + col%10)
}

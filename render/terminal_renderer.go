package render

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/fullkning/components"
	"github.com/lixenwraith/fullkning/constants"
	"github.com/lixenwraith/fullkning/game"
)

// TerminalRenderer draws the field, its frame and the HUD
// Screen layout, top to bottom: ruler, border, field rows, border, ruler;
// HUD lines to the right of the field
type TerminalRenderer struct {
	screen Surface
}

// NewTerminalRenderer creates a renderer drawing to screen
func NewTerminalRenderer(screen Surface) *TerminalRenderer {
	return &TerminalRenderer{screen: screen}
}

// FieldCell returns the screen position of a field coordinate
func FieldCell(row, col int) (x, y int) {
	return constants.FieldOriginX + col, constants.FieldOriginY + row
}

// RenderFrame renders the entire game frame; debugLine is shown under the field when non-empty
func (r *TerminalRenderer) RenderFrame(g *game.Game, debugLine string) {
	r.screen.Clear()
	r.drawField(g)
	r.drawStatus(g)
	if debugLine != "" {
		drawText(r.screen, constants.FieldOriginX-1, r.belowField(g.Height()), debugLine, DebugStyle)
	}
	r.screen.Show()
}

// RenderMessage draws the final frame with message lines under it
func (r *TerminalRenderer) RenderMessage(g *game.Game, lines ...string) {
	r.screen.Clear()
	r.drawField(g)
	r.drawStatus(g)
	y := r.belowField(g.Height())
	for _, line := range lines {
		drawText(r.screen, constants.FieldOriginX-1, y, line, MsgStyle)
		y++
	}
	r.screen.Show()
}

// belowField returns the first free screen row under the bottom ruler
func (r *TerminalRenderer) belowField(height int) int {
	return constants.FieldOriginY + height + 3
}

func (r *TerminalRenderer) drawField(g *game.Game) {
	drawFrame(r.screen, g.Width(), g.Height())
	g.Blocks(func(b components.Block) {
		x, y := FieldCell(b.Pos.Row, b.Pos.Col)
		r.screen.SetContent(x, y, b.Glyph, nil, b.Style)
	})
}

// drawFrame draws the border and the column rulers around a width x height field
func drawFrame(s Surface, width, height int) {
	left := constants.FieldOriginX - 1
	right := constants.FieldOriginX + width
	top := constants.FieldOriginY - 1
	bottom := constants.FieldOriginY + height

	for col := 0; col < width; col++ {
		x := constants.FieldOriginX + col
		digit := components.TargetGlyph(col)
		s.SetContent(x, top-1, digit, nil, RulerStyle)
		s.SetContent(x, bottom+1, digit, nil, RulerStyle)
	}
	for x := left; x <= right; x++ {
		s.SetContent(x, top, constants.BorderRune, nil, BorderStyle)
		s.SetContent(x, bottom, constants.BorderRune, nil, BorderStyle)
	}
	for y := top + 1; y < bottom; y++ {
		s.SetContent(left, y, constants.BorderRune, nil, BorderStyle)
		s.SetContent(right, y, constants.BorderRune, nil, BorderStyle)
	}
}

// drawStatus draws the HUD lines right of the field
func (r *TerminalRenderer) drawStatus(g *game.Game) {
	x := constants.FieldOriginX + g.Width() + 1 + constants.HUDOffsetX
	y := constants.FieldOriginY

	scoreStyle := ValueStyle
	if g.Score() < 0 {
		scoreStyle = scoreStyle.Foreground(RgbNegativeScore)
	}
	cooldown := g.CooldownRemaining()

	r.drawStatusLine(x, y, "Time: ", fmt.Sprintf("%dms", g.Elapsed().Milliseconds()), ValueStyle)
	y += constants.HUDLineSpacing
	r.drawStatusLine(x, y, "Score: ", strconv.FormatInt(g.Score(), 10), scoreStyle)
	y += constants.HUDLineSpacing
	r.drawStatusLine(x, y, "Targets: ", strconv.Itoa(g.TargetsRemainingCount()), ValueStyle)
	y += constants.HUDLineSpacing
	r.drawStatusLine(x, y, "Cooldown: ", strconv.FormatInt(cooldown, 10), ValueStyle.Foreground(CooldownColor(cooldown)))
	y += constants.HUDLineSpacing
	r.drawStatusLine(x, y, "Selected: ", g.SelectedBlockType().String(), selectedStyle(g.SelectedBlockType()))
}

func (r *TerminalRenderer) drawStatusLine(x, y int, label, value string, style tcell.Style) {
	x = drawText(r.screen, x, y, label, LabelStyle)
	drawText(r.screen, x, y, value, style)
}

// selectedStyle shows the selection in the block's own colors
func selectedStyle(kind components.BlockKind) tcell.Style {
	if kind == components.KindFixed {
		return components.StoneStyle
	}
	return components.SandStyle
}

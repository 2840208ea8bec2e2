package render

import (
	"github.com/lixenwraith/fullkning/components"
	"github.com/lixenwraith/fullkning/constants"
	"github.com/lixenwraith/fullkning/level"
)

var editorHelp = []string{
	"Use {W, A, S, D} to move the cursor",
	"Use {P, R} to place and remove a target",
	"Use {Q} to save and quit",
}

// RenderEditor draws the level maker: frame, placed targets, cursor and help
func RenderEditor(s Surface, ed *level.Editor, status string) {
	s.Clear()
	drawFrame(s, ed.Width, ed.Height)

	for _, p := range ed.Targets() {
		x, y := FieldCell(p.Row, p.Col)
		s.SetContent(x, y, components.TargetGlyph(p.Col), nil, components.TargetStyle)
	}
	x, y := FieldCell(ed.Cursor.Row, ed.Cursor.Col)
	s.SetContent(x, y, components.BuilderGlyph, nil, components.BuilderStyle.Foreground(RgbEditorCursor))

	y = constants.FieldOriginY + ed.Height + 3
	for _, line := range editorHelp {
		drawText(s, constants.FieldOriginX-1, y, line, LabelStyle)
		y++
	}
	if status != "" {
		drawText(s, constants.FieldOriginX-1, y+1, status, MsgStyle)
	}
	s.Show()
}

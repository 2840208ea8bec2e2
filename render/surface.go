package render

import "github.com/gdamore/tcell/v2"

// Surface is the drawing subset of tcell.Screen the renderers use
type Surface interface {
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
	Clear()
	Show()
}

// drawText writes s starting at (x, y) and returns the column after the last rune
func drawText(s Surface, x, y int, text string, style tcell.Style) int {
	for _, ch := range text {
		s.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

package render

import "github.com/gdamore/tcell/v2"

// RGB color definitions for the frame and HUD
var (
	RgbBorder          = tcell.NewRGBColor(180, 180, 180) // Light gray
	RgbColumnIndicator = tcell.NewRGBColor(120, 120, 120) // Gray
	RgbStatusLabel     = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbStatusValue     = tcell.NewRGBColor(255, 255, 255) // White
	RgbCooldownReady   = tcell.NewRGBColor(144, 238, 144) // Light grass green
	RgbCooldownWait    = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbNegativeScore   = tcell.NewRGBColor(255, 80, 80)   // Normal red
	RgbDebugText       = tcell.NewRGBColor(100, 100, 100) // Dim gray
	RgbMessage         = tcell.NewRGBColor(255, 255, 0)   // Bright yellow
	RgbEditorCursor    = tcell.NewRGBColor(255, 0, 255)   // Magenta
)

// Shared styles
var (
	BorderStyle = tcell.StyleDefault.Foreground(RgbBorder)
	RulerStyle  = tcell.StyleDefault.Foreground(RgbColumnIndicator)
	LabelStyle  = tcell.StyleDefault.Foreground(RgbStatusLabel)
	ValueStyle  = tcell.StyleDefault.Foreground(RgbStatusValue).Bold(true)
	DebugStyle  = tcell.StyleDefault.Foreground(RgbDebugText)
	MsgStyle    = tcell.StyleDefault.Foreground(RgbMessage).Bold(true)
)

// CooldownColor returns the HUD color for the remaining cooldown
func CooldownColor(remaining int64) tcell.Color {
	if remaining > 0 {
		return RgbCooldownWait
	}
	return RgbCooldownReady
}

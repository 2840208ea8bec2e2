package constants

// Layout of the play screen
const (
	// FieldOriginX is the screen column of grid column 0
	FieldOriginX = 2

	// FieldOriginY is the screen row of grid row 0; the column ruler sits one row above
	FieldOriginY = 3

	// HUDOffsetX is the gap between the field's right border and the HUD
	HUDOffsetX = 4

	// HUDLineSpacing is the vertical distance between HUD lines
	HUDLineSpacing = 2

	// BorderRune frames the play field
	BorderRune = '&'
)

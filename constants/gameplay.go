package constants

// Field
const (
	// FieldWidth is the number of columns of the play field
	FieldWidth = 10

	// FieldHeight is the number of rows of the play field
	FieldHeight = 20

	// BuilderStartRow is the builder's initial row
	BuilderStartRow = 1

	// BuilderStartCol is the builder's initial column
	BuilderStartCol = 5
)

// Spawn & Score
const (
	// DropCooldown is the number of ticks between two unhooks
	DropCooldown = 3

	// DropCost is subtracted from the score on every successful unhook
	DropCost = 1

	// ScorePerTarget seeds the initial score: ScorePerTarget * len(targets)
	ScorePerTarget = 3
)

// Smart swap behaviour when a shadowing block meets a second target
const (
	// SwapSettle places the block on the second target and retires it
	SwapSettle = "settle"

	// SwapFallthrough keeps the block in flight so a whole column of targets is passed and restored
	SwapFallthrough = "fallthrough"
)

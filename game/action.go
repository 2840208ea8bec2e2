package game

import (
	"errors"
	"fmt"
)

// ErrUnknownAction is returned when parsing an action name that does not exist
var ErrUnknownAction = errors.New("unknown action")

// Action is a player command understood by the game
type Action uint8

const (
	ActionNone Action = iota
	ActionSelectNext
	ActionUnhook
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionCancelFixed
	ActionPause
	ActionQuit
)

var actionNames = map[Action]string{
	ActionNone:        "none",
	ActionSelectNext:  "select_next",
	ActionUnhook:      "unhook",
	ActionMoveLeft:    "move_left",
	ActionMoveRight:   "move_right",
	ActionMoveUp:      "move_up",
	ActionMoveDown:    "move_down",
	ActionCancelFixed: "cancel_fixed",
	ActionPause:       "pause",
	ActionQuit:        "quit",
}

// String returns the name used in keymaps and the journal
func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return fmt.Sprintf("action(%d)", a)
}

// ParseAction resolves a name produced by String
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("%q: %w", name, ErrUnknownAction)
}

// Simulated reports whether the action changes simulation state
// Pause, Quit and None are shell concerns and never reach the journal
func (a Action) Simulated() bool {
	return a != ActionNone && a != ActionPause && a != ActionQuit
}

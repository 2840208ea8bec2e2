package input

import (
	"sort"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/fullkning/game"
)

// KeyTable maps terminal keys to game actions
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Esc)
	SpecialKeys map[tcell.Key]game.Action

	// Printable key bindings, matched case-insensitively
	Runes map[rune]game.Action
}

// DefaultKeyTable returns the w/a/s/d/space/p/q bindings plus arrow keys
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]game.Action{
			tcell.KeyCtrlC:  game.ActionQuit,
			tcell.KeyEscape: game.ActionQuit,
			tcell.KeyLeft:   game.ActionMoveLeft,
			tcell.KeyRight:  game.ActionMoveRight,
			tcell.KeyDown:   game.ActionUnhook,
			tcell.KeyUp:     game.ActionSelectNext,
		},

		Runes: map[rune]game.Action{
			'w': game.ActionSelectNext,
			'a': game.ActionMoveLeft,
			'd': game.ActionMoveRight,
			's': game.ActionUnhook,
			' ': game.ActionCancelFixed,
			'p': game.ActionPause,
			'q': game.ActionQuit,
		},
	}
}

// Resolve returns the action bound to a key event, ActionNone when unbound
func (kt *KeyTable) Resolve(key tcell.Key, r rune) game.Action {
	if key != tcell.KeyRune {
		return kt.SpecialKeys[key]
	}
	if a, ok := kt.Runes[r]; ok {
		return a
	}
	return kt.Runes[unicode.ToLower(r)]
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	out := &KeyTable{
		SpecialKeys: make(map[tcell.Key]game.Action, len(kt.SpecialKeys)),
		Runes:       make(map[rune]game.Action, len(kt.Runes)),
	}
	for k, v := range kt.SpecialKeys {
		out.SpecialKeys[k] = v
	}
	for k, v := range kt.Runes {
		out.Runes[k] = v
	}
	return out
}

// Bindings lists the keys bound to a, for help text
func (kt *KeyTable) Bindings(a game.Action) []string {
	var out []string
	for r, bound := range kt.Runes {
		if bound == a {
			out = append(out, runeName(r))
		}
	}
	for k, bound := range kt.SpecialKeys {
		if bound == a {
			out = append(out, tcell.KeyNames[k])
		}
	}
	sort.Strings(out)
	return out
}

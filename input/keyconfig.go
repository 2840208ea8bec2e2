package input

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/fullkning/game"
)

// Rune aliases for keys that can't be bare single-char YAML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// LoadKeyConfig parses the config keys section into a sparse override KeyTable
// Keys are single characters, rune aliases or tcell key names ("Left", "Ctrl-C")
// Returns error on unknown action names or invalid key names
func LoadKeyConfig(bindings map[string]string) (*KeyTable, error) {
	kt := &KeyTable{
		SpecialKeys: make(map[tcell.Key]game.Action),
		Runes:       make(map[rune]game.Action),
	}

	for keyStr, actionName := range bindings {
		action, err := resolveAction(actionName)
		if err != nil {
			return nil, fmt.Errorf("[keys] key %q: %w", keyStr, err)
		}

		if r, err := resolveRune(keyStr); err == nil {
			kt.Runes[r] = action
			continue
		}
		if k, ok := resolveSpecialKey(keyStr); ok {
			kt.SpecialKeys[k] = action
			continue
		}
		return nil, fmt.Errorf("[keys] unknown key name: %q", keyStr)
	}

	return kt, nil
}

// resolveRune converts a config key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return unicode.ToLower(runes[0]), nil
	}

	return 0, fmt.Errorf("invalid rune key: %q (expected single character or alias)", s)
}

// resolveSpecialKey matches tcell key names case-insensitively
func resolveSpecialKey(s string) (tcell.Key, bool) {
	for k, name := range tcell.KeyNames {
		if strings.EqualFold(name, s) {
			return k, true
		}
	}
	return 0, false
}

// resolveAction converts an action name string to an action
func resolveAction(name string) (game.Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	return game.ParseAction(name)
}

// MergeKeyTable returns a new KeyTable with base values overridden by override
// Override entries bound to "none" delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	if override == nil {
		return result
	}

	for k, v := range override.Runes {
		if v == game.ActionNone {
			delete(result.Runes, k)
		} else {
			result.Runes[k] = v
		}
	}
	for k, v := range override.SpecialKeys {
		if v == game.ActionNone {
			delete(result.SpecialKeys, k)
		} else {
			result.SpecialKeys[k] = v
		}
	}

	return result
}

// NewKeyTable builds the effective table from the config keys section
func NewKeyTable(bindings map[string]string) (*KeyTable, error) {
	if len(bindings) == 0 {
		return DefaultKeyTable(), nil
	}
	override, err := LoadKeyConfig(bindings)
	if err != nil {
		return nil, err
	}
	return MergeKeyTable(DefaultKeyTable(), override), nil
}

func runeName(r rune) string {
	for name, alias := range runeAliases {
		if alias == r {
			return name
		}
	}
	return string(r)
}

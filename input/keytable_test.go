package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/fullkning/game"
)

func TestDefaultKeyTableResolve(t *testing.T) {
	kt := DefaultKeyTable()

	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want game.Action
	}{
		{"w selects", tcell.KeyRune, 'w', game.ActionSelectNext},
		{"uppercase W selects", tcell.KeyRune, 'W', game.ActionSelectNext},
		{"a left", tcell.KeyRune, 'a', game.ActionMoveLeft},
		{"d right", tcell.KeyRune, 'd', game.ActionMoveRight},
		{"s unhooks", tcell.KeyRune, 's', game.ActionUnhook},
		{"space cancels stone", tcell.KeyRune, ' ', game.ActionCancelFixed},
		{"p pauses", tcell.KeyRune, 'p', game.ActionPause},
		{"q quits", tcell.KeyRune, 'q', game.ActionQuit},
		{"ctrl-c quits", tcell.KeyCtrlC, 0, game.ActionQuit},
		{"arrow left", tcell.KeyLeft, 0, game.ActionMoveLeft},
		{"unbound rune", tcell.KeyRune, 'z', game.ActionNone},
		{"unbound key", tcell.KeyF5, 0, game.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kt.Resolve(tt.key, tt.r); got != tt.want {
				t.Errorf("Resolve(%v, %q) = %s, want %s", tt.key, tt.r, got, tt.want)
			}
		})
	}
}

func TestNewKeyTableOverrides(t *testing.T) {
	kt, err := NewKeyTable(map[string]string{
		"j":     "move_left",
		"L":     "move_right",
		"space": "unhook",
		"q":     "none",
		"Enter": "cancel_fixed",
	})
	if err != nil {
		t.Fatalf("NewKeyTable: %v", err)
	}

	checks := []struct {
		key  tcell.Key
		r    rune
		want game.Action
	}{
		{tcell.KeyRune, 'j', game.ActionMoveLeft},
		{tcell.KeyRune, 'l', game.ActionMoveRight},
		{tcell.KeyRune, ' ', game.ActionUnhook},
		{tcell.KeyRune, 'q', game.ActionNone},
		{tcell.KeyEnter, 0, game.ActionCancelFixed},
		{tcell.KeyRune, 'a', game.ActionMoveLeft}, // untouched default
	}
	for _, c := range checks {
		if got := kt.Resolve(c.key, c.r); got != c.want {
			t.Errorf("Resolve(%v, %q) = %s, want %s", c.key, c.r, got, c.want)
		}
	}

	// Defaults are not mutated by merging
	if DefaultKeyTable().Resolve(tcell.KeyRune, 'q') != game.ActionQuit {
		t.Error("default table changed")
	}
}

func TestLoadKeyConfigErrors(t *testing.T) {
	if _, err := LoadKeyConfig(map[string]string{"w": "jump"}); err == nil {
		t.Error("unknown action accepted")
	}
	if _, err := LoadKeyConfig(map[string]string{"hyperkey": "quit"}); err == nil {
		t.Error("unknown key name accepted")
	}
}

func TestNewKeyTableEmptyIsDefault(t *testing.T) {
	kt, err := NewKeyTable(nil)
	if err != nil {
		t.Fatal(err)
	}
	if kt.Resolve(tcell.KeyRune, 's') != game.ActionUnhook {
		t.Error("empty bindings did not yield defaults")
	}
}

func TestBindings(t *testing.T) {
	kt := DefaultKeyTable()
	got := kt.Bindings(game.ActionCancelFixed)
	if len(got) != 1 || got[0] != "space" {
		t.Errorf("Bindings(cancel) = %v", got)
	}
}

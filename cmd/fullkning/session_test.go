package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/fullkning/core"
	"github.com/lixenwraith/fullkning/engine"
	"github.com/lixenwraith/fullkning/game"
	"github.com/lixenwraith/fullkning/input"
)

func newTestSession(t *testing.T, targets ...core.Point) (*session, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(80, 40)
	t.Cleanup(screen.Fini)

	g, err := game.New(engine.DefaultSettings(), targets, nil)
	if err != nil {
		t.Fatalf("game: %v", err)
	}
	return newSession(screen, g, input.DefaultKeyTable(), 5*time.Millisecond, true), screen
}

func TestSessionQuitKey(t *testing.T) {
	s, screen := newTestSession(t, core.Point{Row: 19, Col: 5})

	screen.InjectKey(tcell.KeyRune, 'd', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	if quit := s.play(); !quit {
		t.Fatal("expected quit")
	}
	if got := s.game.Context().BuilderPos(); got.Col != 6 {
		t.Errorf("builder col = %d, want 6", got.Col)
	}
	if s.game.IsVictory() {
		t.Error("unexpected victory")
	}

	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	s.finish(true)
}

func TestSessionPauseHoldsTicks(t *testing.T) {
	s, screen := newTestSession(t, core.Point{Row: 19, Col: 5})

	screen.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
	done := make(chan bool, 1)
	go func() { done <- s.play() }()

	// Ticks every 5ms when running
	time.Sleep(100 * time.Millisecond)
	screen.InjectKey(tcell.KeyRune, 's', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case quit := <-done:
		if !quit {
			t.Fatal("expected quit")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("play did not return")
	}
	if !s.paused {
		t.Error("session not paused")
	}
	if n := s.game.TickCount(); n > 1 {
		t.Errorf("%d ticks while paused", n)
	}
	if s.game.Drops() != 0 {
		t.Error("unhook applied while paused")
	}
}

func TestSessionEndsOnVictory(t *testing.T) {
	// No targets: the first tick wins
	s, screen := newTestSession(t)

	done := make(chan bool, 1)
	go func() { done <- s.play() }()

	select {
	case quit := <-done:
		if quit {
			t.Fatal("expected victory, got quit")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("play did not end on victory")
	}
	if !s.game.IsVictory() {
		t.Error("game not won")
	}

	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	s.finish(false)
}

func TestEndMessage(t *testing.T) {
	g, err := game.New(engine.DefaultSettings(), []core.Point{{Row: 19, Col: 5}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := endMessage(g, true); got != "Game terminated by the user." {
		t.Errorf("quit message = %q", got)
	}

	won, err := game.New(engine.DefaultSettings(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	won.Tick()
	if got := endMessage(won, false); got != "You won with 0 points!" {
		t.Errorf("victory message = %q", got)
	}
}

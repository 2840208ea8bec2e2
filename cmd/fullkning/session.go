package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/fullkning/constants"
	"github.com/lixenwraith/fullkning/core"
	"github.com/lixenwraith/fullkning/engine"
	"github.com/lixenwraith/fullkning/game"
	"github.com/lixenwraith/fullkning/input"
	"github.com/lixenwraith/fullkning/render"
	"github.com/lixenwraith/fullkning/status"
)

// session drives one game on a terminal screen
// All game mutation happens on the goroutine running play
type session struct {
	screen   tcell.Screen
	game     *game.Game
	keys     *input.KeyTable
	renderer *render.TerminalRenderer
	metrics  *status.Registry
	interval time.Duration
	debug    bool
	paused   bool

	events chan tcell.Event
}

func newSession(screen tcell.Screen, g *game.Game, keys *input.KeyTable, interval time.Duration, debug bool) *session {
	s := &session{
		screen:   screen,
		game:     g,
		keys:     keys,
		renderer: render.NewTerminalRenderer(screen),
		metrics:  status.NewRegistry(),
		interval: interval,
		debug:    debug,
		events:   make(chan tcell.Event, 64),
	}
	g.Subscribe(status.NewEventMetrics(s.metrics))

	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(s.events)
				return
			}
			s.events <- ev
		}
	})
	return s
}

// play runs the tick/input loop until victory or quit; it reports whether the user quit
// While paused no ticks arrive and simulated actions are dropped
func (s *session) play() bool {
	sched := engine.NewClockScheduler(s.interval)
	sched.Start()
	defer sched.Stop()

	// Redraws the elapsed-time readout between ticks
	frames := time.NewTicker(constants.FrameUpdateInterval)
	defer frames.Stop()

	last := time.Now()
	s.render()
	for !s.game.IsVictory() {
		select {
		case ev, ok := <-s.events:
			if !ok {
				return true
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				s.screen.Sync()
			case *tcell.EventKey:
				switch a := s.keys.Resolve(ev.Key(), ev.Rune()); {
				case a == game.ActionQuit:
					log.Printf("[main] quit at tick %d", s.game.TickCount())
					return true
				case a == game.ActionPause:
					s.togglePause(sched)
				case !s.paused:
					s.game.Apply(a)
				}
			}

		case <-sched.Ticks():
			now := time.Now()
			s.metrics.Gauges.Get("tick_ms").Smooth(float64(now.Sub(last).Microseconds())/1000, 0.2)
			last = now
			s.game.Tick()
			if s.debug {
				s.game.Context().LogInvariants()
			}

		case <-frames.C:
		}
		s.render()
	}
	log.Printf("[main] victory at tick %d, score %d", s.game.TickCount(), s.game.Score())
	return false
}

func (s *session) togglePause(sched *engine.ClockScheduler) {
	s.paused = !s.paused
	if s.paused {
		sched.Pause()
	} else {
		sched.Resume()
	}
	log.Printf("[main] paused=%t at tick %d", s.paused, s.game.TickCount())
}

func (s *session) render() {
	line := ""
	switch {
	case s.paused:
		line = "Paused, press P to resume"
	case s.debug:
		s.metrics.Ints.Get("ticks").Store(int64(s.game.TickCount()))
		s.metrics.Ints.Get("flight").Store(int64(s.game.InFlight()))
		line = s.metrics.Format()
	}
	s.renderer.RenderFrame(s.game, line)
}

// finish shows the end message, plus extra lines when given, and waits for any key
func (s *session) finish(quit bool, extra ...string) {
	lines := []string{endMessage(s.game, quit)}
	for _, l := range extra {
		if l != "" {
			lines = append(lines, l)
		}
	}
	lines = append(lines, "Press any key to exit")
	s.renderer.RenderMessage(s.game, lines...)
	for ev := range s.events {
		if _, ok := ev.(*tcell.EventKey); ok {
			return
		}
	}
}

func endMessage(g *game.Game, quit bool) string {
	if quit && !g.IsVictory() {
		return "Game terminated by the user."
	}
	return fmt.Sprintf("You won with %d points!", g.Score())
}

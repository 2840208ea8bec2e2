package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/fullkning/audio"
	"github.com/lixenwraith/fullkning/config"
	"github.com/lixenwraith/fullkning/core"
	"github.com/lixenwraith/fullkning/game"
	"github.com/lixenwraith/fullkning/input"
	"github.com/lixenwraith/fullkning/journal"
	"github.com/lixenwraith/fullkning/level"
	"github.com/lixenwraith/fullkning/scores"
)

var (
	configPath = flag.String("config", "fullkning.yaml", "config file (defaults are used when missing)")
	levelDir   = flag.String("levels", "", "level directory, overrides config")
	debugFlag  = flag.Bool("debug", false, "log to logs/fullkning.log and show the metrics line")
	dbPath     = flag.String("db", "", "results database, overrides config")
	journalDir = flag.String("journal", "", "write a replay journal into this directory")
	noAudio    = flag.Bool("no-audio", false, "disable sound")
	history    = flag.Int("history", 0, "print the last N results for the level and exit")
	dumpFlag   = flag.Bool("dump-config", false, "print the effective configuration as YAML and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [level]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	cfg.ApplyEnv(os.Getenv)
	applyFlags(cfg)

	if *dumpFlag {
		if err := dumpConfig(os.Stdout, cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if f := setupLogging(cfg.Debug); f != nil {
		defer f.Close()
	}

	name := level.DefaultName
	if flag.NArg() > 0 {
		name = flag.Arg(0)
	}

	if *history > 0 {
		if err := printHistory(os.Stdout, cfg.DBPath, name, *history); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg, name); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "levels":
			cfg.LevelDir = *levelDir
		case "debug":
			cfg.Debug = *debugFlag
		case "db":
			cfg.DBPath = *dbPath
		case "journal":
			cfg.JournalDir = *journalDir
		case "no-audio":
			cfg.Audio.Enabled = !*noAudio
		}
	})
}

// dumpConfig writes cfg after file, environment and flag overrides, in the
// format config.Load reads back
func dumpConfig(w io.Writer, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	fmt.Fprintln(w, "# fullkning effective configuration")
	return cfg.Encode(w)
}

func run(cfg *config.Config, name string) error {
	settings := cfg.EngineSettings()
	targets, err := level.Load(level.Path(cfg.LevelDir, name), settings.Width, settings.Height)
	if err != nil {
		if names, _ := level.Discover(cfg.LevelDir); len(names) > 0 {
			return fmt.Errorf("level %s: %w (available: %s)", name, err, strings.Join(names, ", "))
		}
		return fmt.Errorf("level %s: %w", name, err)
	}
	keys, err := input.NewKeyTable(cfg.Keys)
	if err != nil {
		return fmt.Errorf("keys: %w", err)
	}
	g, err := game.New(settings, targets, nil)
	if err != nil {
		return fmt.Errorf("level %s: %w", name, err)
	}
	log.Printf("[main] level %s: %d targets, %dx%d", name, len(targets), settings.Width, settings.Height)

	var jw *journal.Writer
	if cfg.JournalDir != "" {
		path := journal.Path(cfg.JournalDir, name, time.Now())
		if jw, err = journal.Create(path); err != nil {
			return fmt.Errorf("journal: %w", err)
		}
		if err := jw.WriteHeader(name, settings, targets, time.Now()); err != nil {
			_ = jw.Close()
			return fmt.Errorf("journal: %w", err)
		}
		g.SetRecorder(jw.Recorder())
		log.Printf("[main] journal %s", path)
	}

	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager(cfg.Audio.Volume)
		if err := sm.Initialize(); err != nil {
			log.Printf("[audio] init failed, continuing without sound: %v", err)
		} else {
			g.Subscribe(sm)
			defer sm.Cleanup()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	core.SetCrashCleanup(screen.Fini)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	s := newSession(screen, g, keys, cfg.TickInterval(), cfg.Debug)
	quit := s.play()

	if jw != nil {
		if err := jw.Finish(g); err != nil {
			log.Printf("[journal] finish: %v", err)
		}
		if err := jw.Close(); err != nil {
			log.Printf("[journal] close: %v", err)
		}
	}
	best := recordResult(cfg.DBPath, name, g)

	s.finish(quit, best)
	screen.Fini()
	return nil
}

// recordResult stores the outcome and returns a line describing the level's best win
// Failures are logged, the game is already over
func recordResult(path, name string, g *game.Game) string {
	if path == "" {
		return ""
	}
	store, err := scores.Open(path)
	if err != nil {
		log.Printf("[scores] open %s: %v", path, err)
		return ""
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err = store.Record(ctx, scores.Result{
		Level:      name,
		Won:        g.IsVictory(),
		Score:      g.Score(),
		Drops:      g.Drops(),
		Ticks:      g.TickCount(),
		Elapsed:    g.Elapsed(),
		Targets:    len(g.Targets()),
		RecordedAt: time.Now(),
	})
	if err != nil {
		log.Printf("[scores] record: %v", err)
		return ""
	}

	best, ok, err := store.Best(ctx, name)
	if err != nil || !ok {
		return ""
	}
	return fmt.Sprintf("Best on level %s: %d points in %d ticks", name, best.Score, best.Ticks)
}

func printHistory(w io.Writer, path, name string, limit int) error {
	store, err := scores.Open(path)
	if err != nil {
		return fmt.Errorf("scores: %w", err)
	}
	defer store.Close()

	results, err := store.History(context.Background(), name, limit)
	if err != nil {
		return fmt.Errorf("scores: %w", err)
	}
	if len(results) == 0 {
		fmt.Fprintf(w, "no results for level %s\n", name)
		return nil
	}
	for _, r := range results {
		outcome := "quit"
		if r.Won {
			outcome = "won"
		}
		fmt.Fprintf(w, "%s  %-4s score=%d drops=%d ticks=%d time=%s\n",
			r.RecordedAt.Local().Format("2006-01-02 15:04"), outcome, r.Score, r.Drops, r.Ticks, r.Elapsed.Round(time.Millisecond))
	}
	return nil
}

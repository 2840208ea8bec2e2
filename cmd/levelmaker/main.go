package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/fullkning/config"
	"github.com/lixenwraith/fullkning/core"
	"github.com/lixenwraith/fullkning/level"
	"github.com/lixenwraith/fullkning/render"
)

var (
	configPath = flag.String("config", "fullkning.yaml", "config file; field size is taken from it")
	levelDir   = flag.String("levels", "", "level directory, overrides config")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] name\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	name := flag.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	if *levelDir != "" {
		cfg.LevelDir = *levelDir
	}

	path := level.Path(cfg.LevelDir, name)
	if level.Exists(path) {
		fmt.Fprintf(os.Stderr, "level %s already exists at %s\n", name, path)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "terminal:", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "terminal:", err)
		os.Exit(1)
	}
	core.SetCrashCleanup(screen.Fini)

	ed := level.NewEditor(cfg.Field.Width, cfg.Field.Height)
	save := edit(screen, ed)
	screen.Fini()

	if !save {
		fmt.Println("level discarded")
		return
	}
	if err := level.Create(path, ed.Targets()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("saved %d targets to %s\n", len(ed.Targets()), path)
}

// edit runs the editor until q (save) or Esc/Ctrl-C (discard)
func edit(screen tcell.Screen, ed *level.Editor) bool {
	status := ""
	for {
		render.RenderEditor(screen, ed, status)
		status = ""

		ev := screen.PollEvent()
		if ev == nil {
			return false
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return false
			case tcell.KeyRune:
			default:
				continue
			}
			switch ev.Rune() {
			case 'w', 'W':
				ed.MoveCursor(0, -1)
			case 's', 'S':
				ed.MoveCursor(0, 1)
			case 'a', 'A':
				ed.MoveCursor(-1, 0)
			case 'd', 'D':
				ed.MoveCursor(1, 0)
			case 'p', 'P':
				if !ed.Place() {
					status = "cannot place a target here"
				}
			case 'r', 'R':
				if !ed.Remove() {
					status = "no target below the cursor"
				}
			case 'q', 'Q':
				return true
			}
		}
	}
}

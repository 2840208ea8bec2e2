package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lixenwraith/fullkning/journal"
)

func main() {
	var (
		dir     = flag.String("dir", "", "verify every journal in this directory")
		verbose = flag.Bool("v", false, "print the final digest")
	)
	flag.Parse()

	paths := flag.Args()
	if *dir != "" {
		found, err := listJournals(*dir)
		if err != nil {
			fmt.Fprintln(os.Stderr, "list journals:", err)
			os.Exit(1)
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: fullkning-replay [-dir journals] [file.jsonl.zst ...]")
		os.Exit(2)
	}

	failed := 0
	for _, path := range paths {
		sum, err := journal.Verify(path)
		switch {
		case err == nil:
			fmt.Printf("ok   %s level=%s ticks=%d actions=%d score=%d won=%t\n",
				path, sum.Level, sum.Ticks, sum.Actions, sum.Score, sum.Won)
		case errors.Is(err, journal.ErrTruncated):
			fmt.Printf("part %s level=%s ticks=%d actions=%d (no end record)\n",
				path, sum.Level, sum.Ticks, sum.Actions)
		default:
			failed++
			fmt.Printf("FAIL %s: %v\n", path, err)
		}
		if *verbose && sum.Digest != "" {
			fmt.Printf("     digest %s\n", sum.Digest)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func listJournals(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), journal.Extension) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

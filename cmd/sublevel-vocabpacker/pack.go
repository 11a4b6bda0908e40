package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sublevel/internal/core/vocab"
)

// report summarizes a packing run
type report struct {
	Files     []string
	Rows      int
	Words     int
	Conflicts int
	ByLevel   map[string]int
}

// findFragments lists vocabulary fragments under root in a stable order
func findFragments(root, out string) ([]string, error) {
	absOut, _ := filepath.Abs(out)
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if abs, _ := filepath.Abs(path); abs == absOut {
			return nil
		}
		if _, err := vocab.FormatFromPath(path); err == nil {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

// assemble merges fragments; a word listed at several levels keeps the lowest
func assemble(paths []string) ([]vocab.Entry, report, error) {
	rep := report{Files: paths, ByLevel: map[string]int{}}
	if len(paths) == 0 {
		return nil, rep, errors.New("no vocabulary fragments found")
	}

	seen := map[string]vocab.Level{}
	var all []vocab.Entry
	for _, p := range paths {
		rows, err := readFragment(p)
		if err != nil {
			return nil, rep, err
		}
		for _, r := range rows {
			w := strings.ToLower(strings.TrimSpace(r.Word))
			if w == "" {
				continue
			}
			if prev, ok := seen[w]; ok && prev != r.Level {
				rep.Conflicts++
			}
			if prev, ok := seen[w]; !ok || r.Level < prev {
				seen[w] = r.Level
			}
		}
		rep.Rows += len(rows)
		all = append(all, rows...)
	}

	out := vocab.New(all).Entries()
	rep.Words = len(out)
	for _, e := range out {
		rep.ByLevel[e.Level.String()]++
	}
	return out, rep, nil
}

func readFragment(path string) ([]vocab.Entry, error) {
	f, err := vocab.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	rows, err := vocab.ReadEntries(fh, f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

func (r report) print(w io.Writer) {
	_, _ = fmt.Fprintf(w, "fragments: %d, rows: %d, words: %d, conflicts: %d\n", len(r.Files), r.Rows, r.Words, r.Conflicts)
	for _, l := range vocab.SixLevel.Levels() {
		_, _ = fmt.Fprintf(w, "  %s: %d\n", l, r.ByLevel[l.String()])
	}
}

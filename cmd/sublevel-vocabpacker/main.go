// Command sublevel-vocabpacker merges vocabulary fragments (csv, json, yaml)
// into one canonical JSON list of {word, level} rows
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func must(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	var (
		flagRoot = flag.String("root", "", "directory of vocabulary fragments (default $SUBLEVEL_VOCAB_ROOT or ./vocab)")
		out      = flag.String("out", "./vocab.json", "output path or '-' for stdout")
		pretty   = flag.Bool("pretty", false, "pretty-print JSON")
		verbose  = flag.Bool("v", false, "print a per-level summary")
	)
	flag.Parse()

	root := strings.TrimSpace(*flagRoot)
	if root == "" {
		root = strings.TrimSpace(os.Getenv("SUBLEVEL_VOCAB_ROOT"))
	}
	if root == "" {
		root = "./vocab"
	}

	paths := flag.Args()
	if len(paths) == 0 {
		found, err := findFragments(root, *out)
		must(err)
		paths = found
	}

	entries, rep, err := assemble(paths)
	must(err)

	var enc []byte
	if *pretty {
		enc, err = json.MarshalIndent(entries, "", "  ")
	} else {
		enc, err = json.Marshal(entries)
	}
	must(err)

	if *verbose {
		rep.print(os.Stderr)
	}

	if *out == "-" {
		_, err := os.Stdout.Write(append(enc, '\n'))
		must(err)
		return
	}
	must(os.MkdirAll(filepath.Dir(*out), 0o755))
	must(os.WriteFile(*out, enc, 0o644))
	if *verbose {
		_, _ = fmt.Fprintf(os.Stderr, "wrote %s (%d bytes)\n", *out, len(enc))
	}
}

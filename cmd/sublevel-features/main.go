// Command sublevel-features extracts CEFR feature records from subtitle files
// and writes one JSON line per file. With -watch it keeps processing files
// dropped into a directory until interrupted
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"sublevel/internal/adapters/watch"
	modkit "sublevel/internal/modkit"
	"sublevel/internal/platform/config"
	"sublevel/internal/platform/logger"
	"sublevel/internal/services/level/domain"
	levelmod "sublevel/internal/services/level/module"
)

// line is one output record
type line struct {
	File   string                 `json:"file"`
	Result *domain.FeaturesResult `json:"result,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

// emitter serializes JSON lines from concurrent workers
type emitter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func (e *emitter) emit(l line) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enc.Encode(l)
}

// runner extracts one file through the level service
type runner struct {
	svc    domain.ServicePort
	schema string
	out    *emitter
}

func (r *runner) file(ctx context.Context, path string) error {
	body, err := os.ReadFile(path)
	if err != nil {
		return r.out.emit(line{File: path, Error: err.Error()})
	}
	res, err := r.svc.ExtractBytes(ctx, domain.RawInput{
		Name:    filepath.Base(path),
		Body:    body,
		Options: domain.OptionsInput{Schema: r.schema},
	})
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("file", path).Msg("extraction failed")
		return r.out.emit(line{File: path, Error: err.Error()})
	}
	return r.out.emit(line{File: path, Result: &res})
}

func main() {
	opts := levelmod.FromConfig(config.New())

	var (
		vocabPath = flag.String("vocab", opts.VocabPath, "vocabulary file (csv, json, yaml)")
		schema    = flag.String("schema", opts.Schema, "level schema: five|six")
		tagger    = flag.String("tagger", opts.Tagger, "tagger: prose|simple")
		workers   = flag.Int("workers", opts.Workers, "files processed concurrently")
		watchDir  = flag.String("watch", "", "directory to watch for new subtitle files")
		outPath   = flag.String("out", "-", "output path or '-' for stdout")
	)
	flag.Parse()

	opts.VocabPath, opts.Schema, opts.Tagger, opts.Workers = *vocabPath, *schema, *tagger, *workers

	l := logger.Get()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := levelmod.NewService(modkit.Deps{Log: *l}, opts)
	if err != nil {
		l.Fatal().Err(err).Msg("pipeline setup failed")
	}

	var w io.Writer = os.Stdout
	if *outPath != "-" {
		f, err := os.OpenFile(*outPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			l.Fatal().Err(err).Msg("open output")
		}
		defer func() { _ = f.Close() }()
		w = f
	}
	r := &runner{svc: svc, schema: opts.Schema, out: &emitter{enc: json.NewEncoder(w)}}

	if *watchDir != "" {
		wt, err := watch.New(watch.Options{Dir: *watchDir, Workers: opts.Workers}, r.file)
		if err != nil {
			l.Fatal().Err(err).Msg("watcher setup failed")
		}
		defer func() { _ = wt.Close() }()
		if err := wt.Run(ctx); err != nil && ctx.Err() == nil {
			l.Error().Err(err).Msg("watcher stopped")
			os.Exit(1)
		}
		return
	}

	files := flag.Args()
	if len(files) == 0 {
		_, _ = fmt.Fprintln(os.Stderr, "usage: sublevel-features [flags] file... | -watch dir")
		os.Exit(2)
	}
	if failed := r.all(ctx, files, opts.Workers); failed > 0 {
		l.Warn().Int("failed", failed).Int("files", len(files)).Msg("some files could not be written")
		os.Exit(1)
	}
}

// all processes files with at most workers in flight and returns the write failures
func (r *runner) all(ctx context.Context, files []string, workers int) int {
	if workers <= 0 {
		workers = 1
	}
	var (
		sem    = make(chan struct{}, workers)
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed int
	)
	for _, f := range files {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(path string) {
			defer func() { <-sem; wg.Done() }()
			if err := r.file(ctx, path); err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(f)
	}
	wg.Wait()
	return failed
}

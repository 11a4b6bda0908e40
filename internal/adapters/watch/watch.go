// Package watch feeds subtitle files dropped into a directory to a handler
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	perr "sublevel/internal/platform/errors"
	"sublevel/internal/platform/logger"

	"github.com/fsnotify/fsnotify"
)

// Handler processes one settled subtitle file
type Handler func(ctx context.Context, path string) error

// Extensions lists the subtitle formats the watcher picks up
var Extensions = []string{".srt", ".vtt", ".ssa", ".ass"}

// Options configure a Watcher
type Options struct {
	Dir     string
	Workers int
	// Settle is how long a file must stay quiet before it is handed over
	Settle time.Duration
}

// Watcher monitors a directory for new subtitle files
type Watcher struct {
	dir     string
	handler Handler
	settle  time.Duration
	fs      *fsnotify.Watcher
	sem     chan struct{}
	wg      sync.WaitGroup

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a Watcher on o.Dir
func New(o Options, h Handler) (*Watcher, error) {
	if h == nil {
		return nil, perr.InvalidArgf("watch: nil handler")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "watch: create watcher")
	}
	if err := fw.Add(o.Dir); err != nil {
		_ = fw.Close()
		return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "watch: add %s", o.Dir)
	}
	if o.Workers <= 0 {
		o.Workers = 2
	}
	if o.Settle <= 0 {
		o.Settle = 500 * time.Millisecond
	}
	return &Watcher{
		dir:     o.Dir,
		handler: h,
		settle:  o.Settle,
		fs:      fw,
		sem:     make(chan struct{}, o.Workers),
		pending: map[string]*time.Timer{},
	}, nil
}

// Run blocks until ctx is done, then waits for in-flight handlers
func (w *Watcher) Run(ctx context.Context) error {
	log := logger.Named("watch")
	log.Info().Str("dir", w.dir).Int("workers", cap(w.sem)).Msg("watching for subtitle files")

	ready := make(chan string)
	defer func() {
		w.stopTimers()
		w.wg.Wait()
		log.Info().Msg("watcher stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fs.Events:
			if !ok {
				return perr.Unavailablef("watch: events channel closed")
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 || !IsSubtitle(ev.Name) {
				continue
			}
			w.touch(ctx, ev.Name, ready)

		case path := <-ready:
			select {
			case w.sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			w.wg.Add(1)
			go func(path string) {
				defer func() { <-w.sem; w.wg.Done() }()
				if err := w.handler(ctx, path); err != nil {
					log.Error().Err(err).Str("path", path).Msg("subtitle processing failed")
				}
			}(path)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return perr.Unavailablef("watch: errors channel closed")
			}
			log.Warn().Err(err).Msg("watcher error")
		}
	}
}

// touch (re)arms the settle timer of path; writes in progress push it back
func (w *Watcher) touch(ctx context.Context, path string, ready chan<- string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Reset(w.settle)
		return
	}
	w.pending[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		select {
		case ready <- path:
		case <-ctx.Done():
		}
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for p, t := range w.pending {
		t.Stop()
		delete(w.pending, p)
	}
}

// Close releases the underlying fsnotify watcher
func (w *Watcher) Close() error { return w.fs.Close() }

// IsSubtitle reports whether path has a supported subtitle extension
func IsSubtitle(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

package watcher

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"go.uber.org/zap"

	"sgf_engine/internal/observability"
)

// Watcher reports SGF files created or written under a directory tree.
// Bursts of events are coalesced: onChange runs once the tree has been
// quiet for the debounce interval.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	log       *zap.SugaredLogger
	debounce  time.Duration
	pattern   glob.Glob
	onChange  func([]string)

	callbackMu sync.Mutex

	pendingMu sync.Mutex
	pending   map[string]struct{}
	timer     *time.Timer
}

func New(log *zap.SugaredLogger, debounce time.Duration, pattern string, onChange func([]string)) (*Watcher, error) {
	if onChange == nil {
		return nil, os.ErrInvalid
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsw,
		log:       log,
		debounce:  debounce,
		pattern:   g,
		onChange:  onChange,
		pending:   make(map[string]struct{}),
	}, nil
}

// Run watches root until ctx is done.
func (w *Watcher) Run(ctx context.Context, root string) error {
	if err := w.watchRecursive(root); err != nil {
		return err
	}
	w.log.Infow("watching for sgf files", "root", root)

	for {
		select {
		case <-ctx.Done():
			return w.Close()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			observability.WatcherEventsTotal.Inc()
			w.handle(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.log.Errorw("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		info, err := os.Stat(event.Name)
		if err == nil && info.IsDir() {
			if err := w.watchRecursive(event.Name); err != nil {
				w.log.Warnw("failed to watch new directory", "path", event.Name, "error", err)
				return
			}
			w.enqueueExisting(event.Name)
			return
		}
	}

	if !w.pattern.Match(filepath.Base(event.Name)) {
		return
	}
	if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
		w.schedule(event.Name)
	}
}

func (w *Watcher) watchRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsWatcher.Add(path)
		}
		return nil
	})
}

// enqueueExisting picks up files that landed in a new directory before
// it was watched.
func (w *Watcher) enqueueExisting(dir string) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() && w.pattern.Match(d.Name()) {
			w.schedule(path)
		}
		return nil
	})
}

func (w *Watcher) schedule(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending[path] = struct{}{}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)

	w.callbackMu.Lock()
	defer w.callbackMu.Unlock()
	w.onChange(paths)
}

func (w *Watcher) Close() error {
	w.pendingMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pendingMu.Unlock()

	err := w.fsWatcher.Close()
	if errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}

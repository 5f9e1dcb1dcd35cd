// Package watch reruns a callback when any of a fixed set of files changes.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/example/doc-buildr/internal/errors"
)

// DefaultDebounce is how long the watcher waits for a burst of events to
// settle before calling OnChange.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches the parent directories of its files, since editors often
// replace a file instead of writing to it.
type Watcher struct {
	OnChange func(ctx context.Context) error
	Debounce time.Duration
	Logger   logrus.FieldLogger

	files   map[string]struct{}
	dirs    map[string]struct{}
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	changed []string
}

// New creates a watcher for files. Call Run to start delivering changes.
func New(files []string, onChange func(ctx context.Context) error) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.KindInternal, "create file watcher")
	}

	w := &Watcher{
		OnChange: onChange,
		Debounce: DefaultDebounce,
		Logger:   logrus.StandardLogger(),
		files:    make(map[string]struct{}, len(files)),
		dirs:     make(map[string]struct{}),
		watcher:  fw,
	}

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fw.Close()
			return nil, errors.Attr(errors.Wrap(err, errors.KindInputUnavailable, "resolve watched file"), "file", f)
		}
		w.files[abs] = struct{}{}

		dir := filepath.Dir(abs)
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, errors.Attr(errors.Wrap(err, errors.KindInputUnavailable, "watch directory"), "dir", dir)
		}
		w.dirs[dir] = struct{}{}
	}

	return w, nil
}

// Run delivers debounced changes to OnChange until ctx is done. An OnChange
// error is logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.Logger.WithFields(logrus.Fields{"file": event.Name, "op": event.Op.String()}).Debug("Input changed")
			w.mark(event.Name)

			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.Debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			changed := w.drain()
			w.Logger.WithField("files", changed).Info("Regenerating documentation")
			if err := w.OnChange(ctx); err != nil {
				w.Logger.WithError(err).Error("Regeneration failed")
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.WithError(err).Warn("Watcher error")
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}

func (w *Watcher) mark(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.changed = append(w.changed, name)
}

func (w *Watcher) drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	changed := w.changed
	w.changed = nil
	return changed
}

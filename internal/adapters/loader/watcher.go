package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/okian/stagetally/pkg/logger"
	"github.com/okian/stagetally/pkg/metrics"
)

// Watcher calls a handler after the groups file or a performance file
// changes. Bursts of events within the debounce window fire once.
type Watcher struct {
	fsw      *fsnotify.Watcher
	loader   *Loader
	debounce time.Duration
	onChange func(context.Context)
	log      logger.Logger

	wg       sync.WaitGroup
	stopChan chan struct{}
	once     sync.Once
}

// Watch starts watching the directories holding the loader's files.
func (l *Loader) Watch(ctx context.Context, debounce time.Duration, onChange func(context.Context)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatch, err)
	}

	dirs := map[string]struct{}{
		filepath.Dir(l.groupsPath): {},
		filepath.Dir(l.glob):       {},
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("%w: %s: %w", ErrWatch, dir, err)
		}
	}

	w := &Watcher{
		fsw:      fsw,
		loader:   l,
		debounce: debounce,
		onChange: onChange,
		log:      l.log,
		stopChan: make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run(ctx)

	l.log.Info(ctx, "watching data files",
		logger.String("groups", l.groupsPath),
		logger.String("glob", l.glob),
		logger.Duration("debounce", debounce),
	)
	return w, nil
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			metrics.RecordWatcherEvent()
			w.log.Debug(ctx, "data file changed",
				logger.String("path", ev.Name),
				logger.String("op", ev.Op.String()),
			)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error(ctx, "watcher error", logger.Error(err))
		case <-fire:
			fire = nil
			w.onChange(ctx)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(ev.Name)
	if name == w.loader.groupsPath {
		return true
	}
	ok, err := filepath.Match(w.loader.glob, name)
	return err == nil && ok
}

// Close stops the watch loop and releases the underlying watcher.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stopChan)
		w.wg.Wait()
		err = w.fsw.Close()
	})
	return err
}

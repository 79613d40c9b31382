package storefront

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher reports the endpoint stored in a config file every time the file
// changes.
type Watcher struct {
	path     string
	onChange func(endpoint string)
	debounce time.Duration

	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewWatcher(path string, onChange func(endpoint string)) *Watcher {
	return &Watcher{
		path:     filepath.Clean(path),
		onChange: onChange,
		debounce: defaultDebounce,
	}
}

// Start watches the file's directory; editors often replace files by rename,
// which a watch on the file itself would miss.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return errors.Wrapf(err, "watch %s", filepath.Dir(w.path))
	}
	w.watcher = watcher

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	go w.loop(watchCtx)
	return nil
}

// Close stops the watcher and waits for the loop to exit.
func (w *Watcher) Close() error {
	if w.cancel != nil {
		w.cancel()
	}
	var err error
	if w.watcher != nil {
		err = w.watcher.Close()
	}
	w.wg.Wait()
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			zap.S().Warnw("storefront config watch error", "path", w.path, "error", err)
		case <-timerC:
			timerC = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	endpoint, err := ReadEndpoint(w.path)
	if err != nil {
		// half-written files are common mid-save; the next event retries
		zap.S().Debugw("storefront config not readable", "path", w.path, "error", err)
		return
	}
	zap.S().Infow("storefront config changed", "path", w.path, "endpoint", endpoint)
	w.onChange(endpoint)
}

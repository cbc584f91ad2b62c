package browse

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"loupe/internal/logging"
)

const watchSettle = 250 * time.Millisecond

// Watcher follows the directory behind the current filesystem backend and
// publishes one event per settled burst of changes, so rapid file operations
// coalesce into a single reload.
type Watcher struct {
	fsw    *fsnotify.Watcher
	events chan string
	done   chan struct{}

	mu      sync.Mutex
	current string
}

// NewWatcher starts a directory watcher. It initially watches nothing; call
// Watch when navigation lands on a directory.
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:    fsw,
		events: make(chan string, 1),
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Events delivers the directory path that changed. The channel closes when
// the watcher stops.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Watch switches the watched directory. An empty path (archives, documents,
// synthetic roots) just drops the previous watch.
func (w *Watcher) Watch(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current == dir {
		return
	}
	if w.current != "" {
		if err := w.fsw.Remove(w.current); err != nil {
			logging.Error(err)
		}
		w.current = ""
	}
	if dir == "" {
		return
	}
	if err := w.fsw.Add(dir); err != nil {
		logging.Error(err)
		return
	}
	w.current = dir
}

// Stop shuts the watcher down and closes the event channel.
func (w *Watcher) Stop() {
	close(w.done)
	if err := w.fsw.Close(); err != nil {
		logging.Error(err)
	}
}

func (w *Watcher) run() {
	defer close(w.events)
	var (
		pending string
		timer   *time.Timer
		settle  <-chan time.Time
	)
	for {
		select {
		case <-w.done:
			return
		case evt, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if evt.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
				continue
			}
			w.mu.Lock()
			pending = w.current
			w.mu.Unlock()
			if pending == "" {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchSettle)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(watchSettle)
			}
			settle = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Error(err)
		case <-settle:
			settle = nil
			select {
			case w.events <- pending:
			default:
			}
		}
	}
}

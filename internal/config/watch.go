package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce collapses the burst of events editors produce on save.
const debounce = 150 * time.Millisecond

// Watcher reports changes to config files.
// Parent directories are watched rather than the files themselves so that
// atomic-rename saves and not-yet-created files are both seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	onChange func()

	mu    sync.Mutex
	timer *time.Timer

	done chan struct{}
	once sync.Once
}

// NewWatcher starts watching paths and calls onChange after each change.
// Empty paths are skipped; directories that do not exist yet are ignored.
func NewWatcher(paths []string, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		files:    make(map[string]bool),
		onChange: onChange,
		done:     make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		// Missing directories are fine: the file cannot change until it exists.
		_ = fw.Add(dir)
	}

	go w.run()

	return w, nil
}

// WatchedPaths returns the default user and project config paths.
func WatchedPaths() []string {
	paths := []string{GetUserConfigPath()}
	if p := GetProjectConfigPath(); p != "" {
		paths = append(paths, p)
	}
	return paths
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.schedule()
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Ignore errors, keep watching
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounce, func() {
		select {
		case <-w.done:
		default:
			w.onChange()
		}
	})
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}

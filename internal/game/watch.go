package game

import (
	"log"
	"os"
	"time"
)

// FileWatcher polls file modification times and triggers a callback on change.
type FileWatcher struct {
	Paths     []string
	Interval  time.Duration
	onChange  func(string) // called with path that changed
	stopCh    chan struct{}
	lastMTime map[string]time.Time
}

// NewFileWatcher creates a watcher for given paths and interval.
func NewFileWatcher(paths []string, interval time.Duration, onChange func(string)) *FileWatcher {
	return &FileWatcher{
		Paths:     paths,
		Interval:  interval,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// Start records the current mtimes, then polls in a goroutine.
func (w *FileWatcher) Start() {
	w.scanAll(true)
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.scanAll(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher.
func (w *FileWatcher) Stop() {
	close(w.stopCh)
}

// scanAll checks mtimes and invokes onChange for files that changed since last scan.
// A file that appears after priming counts as a change.
func (w *FileWatcher) scanAll(prime bool) {
	for _, p := range w.Paths {
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}
		mt := fi.ModTime()
		last, ok := w.lastMTime[p]
		if ok && !mt.After(last) {
			continue
		}
		w.lastMTime[p] = mt
		if !prime && w.onChange != nil {
			w.onChange(p)
		}
	}
}

// WatchGame reloads game whenever one of its files changes and passes the
// new settings to apply. A reload that fails validation is logged and the
// previous settings stay in effect.
func (l *Loader) WatchGame(game string, interval time.Duration, apply func(Settings)) *FileWatcher {
	w := NewFileWatcher(l.paths.Watched(game), interval, func(path string) {
		l.Invalidate()
		s, err := l.Load(game)
		if err != nil {
			log.Printf("config reload of %s rejected: %v", path, err)
			return
		}
		log.Printf("config reloaded from %s (version=%q)", path, s.Version)
		apply(s)
	})
	w.Start()
	return w
}

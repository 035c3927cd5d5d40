package codebase

import (
	"os"
	"sync"
	"time"
)

// FileWatcher polls the project for added, modified and removed source
// files and keeps the codebase in step with them.
type FileWatcher struct {
	codebase     *Codebase
	stopCh       chan struct{}
	stopOnce     sync.Once
	pollInterval time.Duration
	modTimes     map[string]time.Time

	// OnChange, if set, is called after a file has been reparsed or
	// removed.
	OnChange func(path string, removed bool)

	// Skip, if set, reports paths whose cached contents belong to someone
	// else, such as documents open in an editor. Their changes on disk are
	// noted but neither reparsed nor removed.
	Skip func(path string) bool
}

func NewFileWatcher(c *Codebase, pollInterval time.Duration) *FileWatcher {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &FileWatcher{
		codebase:     c,
		stopCh:       make(chan struct{}),
		pollInterval: pollInterval,
		modTimes:     make(map[string]time.Time),
	}
}

func (w *FileWatcher) Start() {
	go w.run()
}

func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})
}

func (w *FileWatcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.Poll()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Poll()
		}
	}
}

// Poll runs one scan and reports the paths that changed. It must not be
// called concurrently with a running watcher.
func (w *FileWatcher) Poll() (changed, removed []string) {
	paths, err := w.codebase.Project().SourceFiles()
	if err != nil {
		log.Warningf("watch %s: %s", w.codebase.RootDir(), err)
		return nil, nil
	}

	current := make(map[string]bool, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		current[path] = true

		lastMod, known := w.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			continue
		}
		w.modTimes[path] = info.ModTime()
		if w.skip(path) {
			continue
		}
		if err := w.codebase.ScanFile(path); err != nil {
			log.Warningf("%s", err)
			continue
		}
		changed = append(changed, path)
		if w.OnChange != nil {
			w.OnChange(path, false)
		}
	}

	for path := range w.modTimes {
		if current[path] {
			continue
		}
		delete(w.modTimes, path)
		if w.skip(path) {
			continue
		}
		w.codebase.RemoveFile(path)
		removed = append(removed, path)
		if w.OnChange != nil {
			w.OnChange(path, true)
		}
	}
	return changed, removed
}

func (w *FileWatcher) skip(path string) bool {
	return w.Skip != nil && w.Skip(path)
}

// Package watch re-reads an inventory file each time it is rewritten.
package watch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/LanS10t/geminiMiner/internal/mineral"
)

// Debounce is how long the file must stay quiet before it is re-read.
const Debounce = 100 * time.Millisecond

// Update carries the freshly parsed inventory, or the error from parsing a
// partially written or malformed file.
type Update struct {
	Inventory mineral.Inventory
	Err       error
}

// Watcher monitors one inventory file. The parent directory is watched so
// editors and games that replace the file by rename are still seen.
type Watcher struct {
	Path    string
	Updates <-chan Update

	updates chan Update
	stop    chan struct{}
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// New creates a watcher for the inventory file at path.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	ch := make(chan Update, 4)
	return &Watcher{
		Path:    abs,
		Updates: ch,
		updates: ch,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		watcher: fw,
	}, nil
}

// Start begins watching. On error the Watcher is closed and must not be
// restarted.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		w.watcher.Close()
		return fmt.Errorf("watch: add %s: %w", filepath.Dir(w.Path), err)
	}
	go w.loop()
	return nil
}

// Stop ends the watch and closes Updates. Undelivered updates are dropped.
func (w *Watcher) Stop() {
	close(w.stop)
	w.watcher.Close()
	<-w.done
	close(w.updates)
}

func (w *Watcher) loop() {
	defer close(w.done)

	ticker := time.NewTicker(Debounce / 2)
	defer ticker.Stop()

	var pending time.Time
	for {
		select {
		case <-w.stop:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= Debounce {
				pending = time.Time{}
				w.emit()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; the next write retries.
		}
	}
}

func (w *Watcher) emit() {
	inv, err := mineral.LoadInventory(w.Path)
	select {
	case w.updates <- Update{Inventory: inv, Err: err}:
	case <-w.stop:
	}
}

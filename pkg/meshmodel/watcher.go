package meshmodel

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports mesh names whose files changed on disk.
//
// Names arrive on Changes from the watcher goroutine. The consumer decides
// when to reload, typically between frames on the render thread.
type Watcher struct {
	Changes <-chan string

	watcher *fsnotify.Watcher
	changes chan string
	done    chan struct{}
}

// Watch starts watching the loader's directory.
func Watch(l *Loader) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(l.Dir()); err != nil {
		fw.Close()
		return nil, err
	}

	changes := make(chan string, 16)
	w := &Watcher{
		Changes: changes,
		watcher: fw,
		changes: changes,
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.changes)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			name, ok := meshName(event)
			if !ok {
				continue
			}
			select {
			case w.changes <- name:
			default:
				// Consumer is behind; it will pick the file up on a later write.
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("mesh watcher: %v", err)
		case <-w.done:
			return
		}
	}
}

func meshName(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return "", false
	}
	base := filepath.Base(event.Name)
	if !strings.HasSuffix(base, ".json") {
		return "", false
	}
	return strings.TrimSuffix(base, ".json"), true
}

// Close stops the watcher. Changes is closed once the goroutine exits.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

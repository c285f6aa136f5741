package config

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes of the config file.
type Watcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watch calls onChange every time cfile is written or (re)created. The
// directory is watched instead of the file because editors usually replace
// the file instead of writing into it.
func Watch(cfile string, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	abs, err := filepath.Abs(cfile)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to resolve config path %s: %w", cfile, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{watcher: fw, done: make(chan struct{})}
	go func() {
		defer close(w.done)
		for {
			select {
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				name, err := filepath.Abs(ev.Name)
				if err != nil || name != abs {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					slog.Info("Config file changed", "file", cfile, "op", ev.Op.String())
					onChange()
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				slog.Error("Config watcher error", "error", err)
			}
		}
	}()
	return w, nil
}

// Close stops watching and waits for the event goroutine to end.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

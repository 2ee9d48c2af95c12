package terminal

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"

	"flowedit/diagram"
)

// reloadEvent carries the new contents of the watched file into the event
// loop, so reloads apply in order with input.
type reloadEvent struct {
	tcell.EventTime
	data []byte
	err  error
}

func newReloadEvent(data []byte, err error) *reloadEvent {
	ev := &reloadEvent{data: data, err: err}
	ev.SetEventNow()
	return ev
}

// watch follows the backing file. The directory is watched because editors
// often replace files by renaming over them.
func (a *App) watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", a.path, err)
	}
	if err := w.Add(filepath.Dir(a.path)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", a.path, err)
	}
	a.watcher = w
	go a.watchLoop(w)
	return nil
}

func (a *App) watchLoop(w *fsnotify.Watcher) {
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != a.path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			data, err := os.ReadFile(a.path)
			if err := a.screen.PostEvent(newReloadEvent(data, err)); err != nil {
				a.log.Warn("reload dropped", "path", a.path, "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			a.log.Warn("watch error", "path", a.path, "error", err)
		}
	}
}

// reload applies a changed file. Content identical to our last save is ignored.
func (a *App) reload(ev *reloadEvent) {
	if ev.err != nil {
		a.log.Warn("reload failed", "path", a.path, "error", ev.err)
		a.setStatus("reload failed: %v", ev.err)
		return
	}
	if bytes.Equal(ev.data, a.written) {
		return
	}
	d, err := diagram.Decode(ev.data)
	if err != nil {
		// editors may write in several steps; the next event retries
		a.log.Debug("reload skipped", "path", a.path, "error", err)
		a.setStatus("reload failed: %v", err)
		return
	}
	a.meta = d.Metadata
	a.written = ev.data
	a.editor.ReplaceDiagram(d)
	a.log.Info("reloaded", "path", a.path, "nodes", len(d.Nodes), "edges", len(d.Edges))
	a.setStatus("reloaded %s", filepath.Base(a.path))
}

// Package terminal runs the editor full screen with tcell. Mouse input is
// turned into pointer events on the editor's bus, one character cell
// standing for CellWidth by CellHeight screen pixels.
package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"

	"flowedit/canvas"
	"flowedit/diagram"
	"flowedit/editor"
	"flowedit/export"
)

// Screen pixels per character cell.
const (
	CellWidth  = canvas.DefaultCellWidth
	CellHeight = canvas.DefaultCellHeight
)

// Config configures an App.
type Config struct {
	// Path is the file saves go to and reloads come from. Empty means the
	// diagram is not backed by a file.
	Path string
	// Watch reloads the diagram when Path changes on disk.
	Watch  bool
	Logger *slog.Logger
	// Copy writes text to the system clipboard; clipboard.WriteAll by default.
	Copy func(string) error
}

// App is the full-screen editor.
type App struct {
	screen tcell.Screen
	editor *editor.Editor
	meta   diagram.Metadata
	path   string
	log    *slog.Logger
	copy   func(string) error

	mouse       mouseState
	clicks      clickTracker
	connectFrom string // node the next click connects from
	status      string
	written     []byte // last content saved, so our own writes are not reloaded
	watcher     *fsnotify.Watcher
}

// New creates an app drawing to screen. The screen must already be
// initialised.
func New(screen tcell.Screen, d *diagram.Diagram, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	a := &App{
		screen: screen,
		meta:   d.Metadata,
		log:    logger,
		copy:   cfg.Copy,
		clicks: clickTracker{interval: DoubleClickInterval},
	}
	if a.copy == nil {
		a.copy = clipboard.WriteAll
	}
	if cfg.Path != "" {
		abs, err := filepath.Abs(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", cfg.Path, err)
		}
		a.path = abs
	}

	w, h := screen.Size()
	a.editor = editor.New(d.Nodes, d.Edges, editor.Options{
		OnSave:     a.save,
		Logger:     logger,
		ViewWidth:  float64(w) * CellWidth,
		ViewHeight: float64(max(h-1, 1)) * CellHeight,
	})

	if cfg.Watch && a.path != "" {
		if err := a.watch(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Editor returns the editor the app drives.
func (a *App) Editor() *editor.Editor {
	return a.editor
}

// Status returns the current status message.
func (a *App) Status() string {
	return a.status
}

func (a *App) setStatus(format string, args ...any) {
	a.status = fmt.Sprintf(format, args...)
}

// Run draws and dispatches events until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	a.screen.EnableFocus()
	defer a.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		a.Draw()
		a.screen.Show()

		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !a.HandleEvent(ev) {
			return ctx.Err()
		}
	}
}

// Close stops watching the file.
func (a *App) Close() {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
}

// HandleEvent applies one event. It returns false when the app should exit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		a.editor.SetViewSize(float64(w)*CellWidth, float64(max(h-1, 1))*CellHeight)
		a.screen.Sync()
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventFocus:
		if !ev.Focused {
			a.cancelPointer()
		}
	case *reloadEvent:
		a.reload(ev)
	case *tcell.EventInterrupt:
		return false
	}
	return true
}

// save writes the document to the backing file.
func (a *App) save(nodes []diagram.Node, edges []diagram.Edge) {
	if a.path == "" {
		a.setStatus("no file to save to")
		return
	}
	data, err := export.NewJSONExporter().Export(&diagram.Diagram{Nodes: nodes, Edges: edges, Metadata: a.meta})
	if err == nil {
		err = os.WriteFile(a.path, data, 0o644)
	}
	if err != nil {
		a.log.Error("save failed", "path", a.path, "error", err)
		a.setStatus("save failed: %v", err)
		return
	}
	a.written = data
	a.setStatus("saved %s", filepath.Base(a.path))
}

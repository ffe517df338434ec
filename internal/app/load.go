package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/azario0/prototypes-txt-reader/internal/document"
	"github.com/azario0/prototypes-txt-reader/internal/log"
	"github.com/azario0/prototypes-txt-reader/internal/pubsub"
	"github.com/azario0/prototypes-txt-reader/internal/reader"
	"github.com/azario0/prototypes-txt-reader/internal/ui/toaster"
	"github.com/azario0/prototypes-txt-reader/internal/watcher"
)

// loadedMsg carries the result of reading a file off the UI goroutine.
type loadedMsg struct {
	path    string
	doc     *document.Document
	reload  bool
	elapsed time.Duration
	err     error
}

// load reads path in a command; the document is adopted in Update.
func (m Model) load(path string, reload bool) tea.Cmd {
	ctx, tracer := m.ctx, m.session.Tracer()
	return func() tea.Msg {
		start := time.Now()
		doc, err := reader.Load(ctx, tracer, path)
		return loadedMsg{path: path, doc: doc, reload: reload, elapsed: time.Since(start), err: err}
	}
}

func (m Model) handleLoaded(msg loadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		if msg.reload && errors.Is(msg.err, fs.ErrNotExist) {
			return m.toast("File no longer exists", toaster.StyleWarn)
		}
		m.dialog = m.dialog.ShowError(msg.err)
		return m, nil
	}
	// a reload that raced with opening another file is stale
	if msg.reload && msg.path != m.session.Document().Path() {
		return m, nil
	}

	xOffset := m.text.XOffset()
	loaded := m.session.Adopt(msg.doc, msg.reload)
	log.Debug(log.CatDoc, "load finished", "path", msg.path, "elapsed", msg.elapsed)

	m.text = m.text.SetDocument(loaded.Doc, loaded.Gutter)
	m.search = m.search.SetMatchCount("", -1, false)
	if loaded.GutterChanged {
		m = m.layout()
	}
	if msg.reload {
		m.text = m.text.ScrollRight(xOffset, m.frame.state)
		return m, nil
	}
	return m, m.watchFile(msg.path)
}

// handleAdopted reacts to the session's LoadedEvent.
func (m Model) handleAdopted(loaded reader.Loaded) (tea.Model, tea.Cmd) {
	relisten := m.loadedListener.Listen()
	name := filepath.Base(loaded.Doc.Path())
	text := fmt.Sprintf("Opened %s (%d lines)", name, loaded.Doc.LineCount())
	if loaded.Reload {
		text = fmt.Sprintf("Reloaded %s", name)
	}
	model, cmd := m.toast(text, toaster.StyleSuccess)
	return model, tea.Batch(relisten, cmd)
}

func (m Model) openDir() string {
	if path := m.session.Document().Path(); path != "" {
		return filepath.Dir(path)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// watchState is shared by all copies of the Model.
type watchState struct {
	w        *watcher.Watcher
	cancel   context.CancelFunc
	listener *pubsub.ContinuousListener[watcher.Event]
}

func (ws *watchState) stop() error {
	if ws.w == nil {
		return nil
	}
	ws.cancel()
	err := ws.w.Stop()
	ws.w, ws.cancel, ws.listener = nil, nil, nil
	return err
}

// watchFile starts watching path, replacing any previous watcher.
func (m Model) watchFile(path string) tea.Cmd {
	if !m.cfg.Watch.Enabled {
		return nil
	}
	if abs, err := filepath.Abs(path); err == nil && m.watch.w != nil && m.watch.w.Path() == abs {
		return nil
	}
	if err := m.watch.stop(); err != nil {
		log.Warn(log.CatWatcher, "stopping watcher", "error", err)
	}

	w, err := watcher.New(path, m.cfg.Watch.Debounce)
	if err != nil {
		log.Warn(log.CatWatcher, "watcher unavailable", "path", path, "error", err)
		return nil
	}
	if err := w.Start(); err != nil {
		log.Warn(log.CatWatcher, "watcher unavailable", "path", path, "error", err)
		_ = w.Stop()
		return nil
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.watch.w = w
	m.watch.cancel = cancel
	m.watch.listener = pubsub.NewContinuousListener[watcher.Event](ctx, w)
	return m.watch.listener.Listen()
}

func (m Model) handleWatchEvent(msg pubsub.Event[watcher.Event]) (tea.Model, tea.Cmd) {
	// events from a watcher that has since been replaced
	if m.watch.w == nil || msg.Payload.Path != m.watch.w.Path() {
		return m, nil
	}
	relisten := m.watch.listener.Listen()

	switch msg.Type {
	case pubsub.ChangedEvent:
		m.loading = true
		return m, tea.Batch(relisten, m.load(m.session.Document().Path(), true))
	case pubsub.RemovedEvent:
		model, cmd := m.toast("File was removed from disk", toaster.StyleWarn)
		return model, tea.Batch(relisten, cmd)
	case pubsub.FailedEvent:
		log.Warn(log.CatWatcher, "watch error", "path", msg.Payload.Path, "error", msg.Payload.Err)
	}
	return m, relisten
}

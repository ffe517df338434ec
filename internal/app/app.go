// Package app contains the root application model.
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/trace"

	"github.com/azario0/prototypes-txt-reader/internal/config"
	"github.com/azario0/prototypes-txt-reader/internal/keys"
	"github.com/azario0/prototypes-txt-reader/internal/log"
	"github.com/azario0/prototypes-txt-reader/internal/pubsub"
	"github.com/azario0/prototypes-txt-reader/internal/reader"
	"github.com/azario0/prototypes-txt-reader/internal/search"
	"github.com/azario0/prototypes-txt-reader/internal/ui/dialog"
	"github.com/azario0/prototypes-txt-reader/internal/ui/help"
	"github.com/azario0/prototypes-txt-reader/internal/ui/logoverlay"
	"github.com/azario0/prototypes-txt-reader/internal/ui/opendialog"
	"github.com/azario0/prototypes-txt-reader/internal/ui/searchbar"
	"github.com/azario0/prototypes-txt-reader/internal/ui/slider"
	"github.com/azario0/prototypes-txt-reader/internal/ui/textview"
	"github.com/azario0/prototypes-txt-reader/internal/ui/toaster"
	"github.com/azario0/prototypes-txt-reader/internal/viewport"
	"github.com/azario0/prototypes-txt-reader/internal/watcher"
)

const (
	horizontalStep = 8
	sliderStep     = 5
	wheelLines     = 3
)

// Options configure the application.
type Options struct {
	Config config.Config
	// Path is opened on start when set.
	Path string
	// Debug enables the log overlay (ctrl+x).
	Debug  bool
	Tracer trace.Tracer
	// HelpStyle is the glamour style for the help overlay; empty means auto.
	HelpStyle string
}

// frame receives viewport updates for the renderers.
type frame struct {
	state viewport.State
}

func (f *frame) OnViewport(s viewport.State) { f.state = s }

// Model is the root application state.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg     config.Config
	keys    keys.KeyMap
	session *reader.Session
	frame   *frame

	text     textview.Model
	slider   slider.Model
	search   searchbar.Model
	toaster  toaster.Model
	dialog   dialog.Model
	open     opendialog.Model
	help     help.Model
	showHelp bool

	debugMode   bool
	logOverlay  logoverlay.Model
	logListener *log.Listener

	loadedListener *pubsub.ContinuousListener[reader.Loaded]
	watch          *watchState

	initialPath string
	loading     bool
	width       int
	height      int
}

// New creates the application model.
func New(opts Options) Model {
	cfg := opts.Config
	ctx, cancel := context.WithCancel(context.Background())

	session := reader.New(reader.Options{
		Search: search.Options{
			IgnoreCase:   cfg.Search.IgnoreCase,
			MatchTimeout: cfg.Search.MatchTimeout,
			CacheTTL:     cfg.Search.CacheTTL,
		},
		CountLimit: cfg.Search.CountLimit,
		ViewHeight: 1,
		Tracer:     opts.Tracer,
	})
	f := &frame{state: session.Viewport().State()}
	session.Viewport().Subscribe(f)

	m := Model{
		ctx:            ctx,
		cancel:         cancel,
		cfg:            cfg,
		keys:           keys.DefaultKeyMap(),
		session:        session,
		frame:          f,
		text:           textview.New(cfg.UI.TabWidth, cfg.UI.ShowGutter),
		slider:         slider.New(),
		search:         searchbar.New().SetIgnoreCase(cfg.Search.IgnoreCase),
		toaster:        toaster.New(),
		dialog:         dialog.New(),
		open:           opendialog.New(),
		help:           help.New(opts.HelpStyle),
		debugMode:      opts.Debug,
		logOverlay:     logoverlay.New(),
		loadedListener: pubsub.NewContinuousListener(ctx, session.Events()),
		watch:          &watchState{},
		initialPath:    opts.Path,
		loading:        opts.Path != "",
	}
	m.text = m.text.SetDocument(session.Document(), session.Gutter())
	if opts.Debug {
		m.logListener = log.NewListener(ctx)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadedListener.Listen()}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	if m.initialPath != "" {
		cmds = append(cmds, m.load(m.initialPath, false))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.layout(), nil

	case loadedMsg:
		return m.handleLoaded(msg)

	case pubsub.Event[reader.Loaded]:
		return m.handleAdopted(msg.Payload)

	case pubsub.Event[watcher.Event]:
		return m.handleWatchEvent(msg)

	case pubsub.Event[string]:
		if m.logListener == nil {
			return m, nil
		}
		m.logOverlay.Refresh()
		return m, m.logListener.Listen()

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case dialog.CloseMsg, opendialog.CloseMsg:
		return m, nil

	case logoverlay.CloseMsg:
		m.logOverlay.Hide()
		return m, nil

	case opendialog.SelectMsg:
		m.loading = true
		return m, m.load(msg.Path, false)

	case searchbar.SubmitMsg:
		return m.runSearch(msg.Term, msg.Backward)

	case searchbar.ToggleIgnoreCaseMsg:
		return m.toggleIgnoreCase()

	case searchbar.BlurMsg:
		return m, nil

	case tea.MouseMsg:
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}
		if m.overlayOpen() {
			return m, nil
		}
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// everything else belongs to the components that issued it
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.open, cmd = m.open.Update(msg)
	cmds = append(cmds, cmd)
	m.search, cmd = m.search.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) overlayOpen() bool {
	return m.dialog.Visible() || m.open.Visible() || m.showHelp
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.debugMode && key.Matches(msg, m.keys.Logs) {
		m.logOverlay.Toggle()
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case m.logOverlay.Visible():
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	case m.dialog.Visible():
		m.dialog, cmd = m.dialog.Update(msg)
		return m, cmd
	case m.open.Visible():
		m.open, cmd = m.open.Update(msg)
		return m, cmd
	case m.showHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Escape) {
			m.showHelp = false
		} else if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	case m.search.Focused():
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	view := m.session.Viewport()
	step := max(m.cfg.UI.ScrollStep, 1)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Open):
		m.open, cmd = m.open.Open(m.openDir())
		return m, cmd
	case key.Matches(msg, m.keys.Reload):
		if path := m.session.Document().Path(); path != "" {
			m.loading = true
			return m, m.load(path, true)
		}
	case key.Matches(msg, m.keys.Search):
		m.search, cmd = m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Next):
		return m.runSearch(m.search.Value(), false)
	case key.Matches(msg, m.keys.Prev):
		return m.runSearch(m.search.Value(), true)
	case key.Matches(msg, m.keys.IgnoreCase):
		return m.toggleIgnoreCase()
	case key.Matches(msg, m.keys.Up):
		view.ScrollLines(-step)
	case key.Matches(msg, m.keys.Down):
		view.ScrollLines(step)
	case key.Matches(msg, m.keys.PageUp):
		view.ScrollPages(-1)
	case key.Matches(msg, m.keys.PageDown):
		view.ScrollPages(1)
	case key.Matches(msg, m.keys.Top):
		view.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		view.GotoBottom()
	case key.Matches(msg, m.keys.Left):
		m.text = m.text.ScrollLeft(horizontalStep)
	case key.Matches(msg, m.keys.Right):
		m.text = m.text.ScrollRight(horizontalStep, m.frame.state)
	case key.Matches(msg, m.keys.SliderUp):
		m.session.OnSliderDrag(float64(viewport.SliderValue(m.frame.state) - sliderStep))
	case key.Matches(msg, m.keys.SliderDown):
		m.session.OnSliderDrag(float64(viewport.SliderValue(m.frame.state) + sliderStep))
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if m.cfg.UI.ShowSlider {
		var changed bool
		m.slider, changed = m.slider.Update(msg)
		if changed {
			m.session.OnSliderDrag(float64(m.slider.Value()))
			return m
		}
	}
	if msg.Action != tea.MouseActionPress {
		return m
	}
	step := max(m.cfg.UI.ScrollStep, 1) * wheelLines
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.session.Viewport().ScrollLines(-step)
	case tea.MouseButtonWheelDown:
		m.session.Viewport().ScrollLines(step)
	case tea.MouseButtonWheelLeft:
		m.text = m.text.ScrollLeft(horizontalStep)
	case tea.MouseButtonWheelRight:
		m.text = m.text.ScrollRight(horizontalStep, m.frame.state)
	}
	return m
}

func (m Model) runSearch(term string, backward bool) (tea.Model, tea.Cmd) {
	if term == "" {
		return m, nil
	}
	var (
		out search.Outcome
		err error
	)
	if backward {
		out, err = m.session.SearchPrevious(m.ctx, term)
	} else {
		out, err = m.session.SearchNext(m.ctx, term)
	}
	m.text = m.text.SetHighlight(m.session.Highlight())
	if err != nil {
		m.dialog = m.dialog.ShowError(err)
		return m, nil
	}
	if m.cfg.Search.CountLimit > 0 {
		n, capped := m.session.MatchCount()
		m.search = m.search.SetMatchCount(term, n, capped)
	}
	if !out.Found {
		return m.toast(fmt.Sprintf("No matches for %q", term), toaster.StyleInfo)
	}
	m.text = m.text.Reveal(out.Match)
	if out.Wrapped {
		where := "top"
		if backward {
			where = "bottom"
		}
		return m.toast("Search wrapped to "+where, toaster.StyleWarn)
	}
	return m, nil
}

func (m Model) toggleIgnoreCase() (tea.Model, tea.Cmd) {
	ignore := !m.session.IgnoreCase()
	m.session.SetIgnoreCase(ignore)
	m.search = m.search.SetIgnoreCase(ignore).SetMatchCount("", -1, false)
	m.text = m.text.SetHighlight(m.session.Highlight())
	log.Info(log.CatSearch, "ignore case toggled", "ignore", ignore)
	if ignore {
		return m.toast("Ignoring case", toaster.StyleInfo)
	}
	return m.toast("Matching case", toaster.StyleInfo)
}

func (m Model) toast(text string, style toaster.Style) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(text, style, toaster.DefaultDuration)
	return m, cmd
}

// Session exposes the reader session.
func (m Model) Session() *reader.Session { return m.session }

// Close releases resources held by the application.
func (m *Model) Close() error {
	m.cancel()
	err := m.watch.stop()
	m.session.Close()
	return err
}

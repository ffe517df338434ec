package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azario0/prototypes-txt-reader/internal/config"
	"github.com/azario0/prototypes-txt-reader/internal/pubsub"
	"github.com/azario0/prototypes-txt-reader/internal/ui/searchbar"
	"github.com/azario0/prototypes-txt-reader/internal/viewport"
	"github.com/azario0/prototypes-txt-reader/internal/watcher"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
	zone.NewGlobal()
}

func testConfig() config.Config {
	cfg := config.Defaults()
	cfg.Watch.Enabled = false
	return cfg
}

func writeFile(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func numbered(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func press(m Model, s string) (Model, tea.Cmd) {
	return update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// newLoaded returns a model sized 80x12 (10 text rows) with text loaded.
func newLoaded(t *testing.T, cfg config.Config, text string) (Model, string) {
	t.Helper()
	path := writeFile(t, text)
	m := New(Options{Config: cfg, HelpStyle: "notty"})
	t.Cleanup(func() { _ = m.Close() })

	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 12})
	m, _ = update(m, m.load(path, false)())
	return m, path
}

// searchFor types term into the search bar and submits it.
func searchFor(t *testing.T, m Model, term string) Model {
	t.Helper()
	m, _ = press(m, "/")
	require.True(t, m.search.Focused())
	for _, r := range term {
		m, _ = press(m, string(r))
	}
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, searchbar.SubmitMsg{}, msg)
	m, _ = update(m, msg)
	return m
}

func TestLoad_AdoptsDocument(t *testing.T) {
	m, path := newLoaded(t, testConfig(), "alpha\nbeta\ngamma")

	require.Equal(t, path, m.session.Document().Path())
	require.False(t, m.loading)

	view := m.View()
	assert.Contains(t, view, "1 │ alpha")
	assert.Contains(t, view, "3 │ gamma")
	assert.Contains(t, view, "Ln 1-3/3")
}

func TestLoad_ErrorShowsDialogAndKeepsDocument(t *testing.T) {
	m, path := newLoaded(t, testConfig(), "still here")

	m, _ = update(m, m.load(filepath.Join(t.TempDir(), "missing.txt"), false)())

	require.True(t, m.dialog.Visible())
	require.Contains(t, m.View(), "Could not read file")
	require.Equal(t, path, m.session.Document().Path())

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.dialog.Visible())
}

func TestLoad_DecodeErrorDialog(t *testing.T) {
	m, _ := newLoaded(t, testConfig(), "ok")
	bad := filepath.Join(t.TempDir(), "bin.dat")
	require.NoError(t, os.WriteFile(bad, []byte{'a', 0xff, 0xfe}, 0o644))

	m, _ = update(m, m.load(bad, false)())

	require.Contains(t, m.View(), "Unsupported encoding")
}

func TestReload_KeepsScrollPosition(t *testing.T) {
	m, path := newLoaded(t, testConfig(), numbered(100))
	m, _ = press(m, "G")
	require.Equal(t, 91, m.frame.state.TopLine)

	require.NoError(t, os.WriteFile(path, []byte(numbered(100)+"\nline 101"), 0o644))
	m, _ = update(m, m.load(path, true)())

	require.Equal(t, 101, m.session.Document().LineCount())
	require.InDelta(t, 1.0, m.frame.state.Fraction, 1e-9)
}

func TestReload_MissingFileToasts(t *testing.T) {
	m, path := newLoaded(t, testConfig(), "x")
	require.NoError(t, os.Remove(path))

	m, _ = update(m, m.load(path, true)())

	require.False(t, m.dialog.Visible())
	require.True(t, m.toaster.Visible())
	require.Contains(t, m.toaster.Message(), "no longer exists")
}

func TestSearch_FindsAndHighlights(t *testing.T) {
	m, _ := newLoaded(t, testConfig(), "alpha\nbeta\ngamma beta")

	m = searchFor(t, m, "beta")

	span, ok := m.session.Highlight()
	require.True(t, ok)
	require.Equal(t, 2, span.Start.Line)
	require.Contains(t, m.search.View(), "2 matches")
	require.Contains(t, m.View(), "match 2:1")

	// n continues from the text view
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = press(m, "n")
	span, _ = m.session.Highlight()
	require.Equal(t, 3, span.Start.Line)

	m, _ = press(m, "n")
	require.True(t, m.toaster.Visible())
	require.Contains(t, m.toaster.Message(), "wrapped")
}

func TestSearch_NotFoundToast(t *testing.T) {
	m, _ := newLoaded(t, testConfig(), "alpha")

	m = searchFor(t, m, "zzz")

	_, ok := m.session.Highlight()
	require.False(t, ok)
	require.Contains(t, m.toaster.Message(), `No matches for "zzz"`)
}

func TestSearch_BadPatternDialog(t *testing.T) {
	m, _ := newLoaded(t, testConfig(), "alpha")

	m = searchFor(t, m, "(")

	require.True(t, m.dialog.Visible())
	require.Contains(t, m.View(), "Invalid pattern")
}

func TestSearch_JumpScrollsMatchIntoView(t *testing.T) {
	m, _ := newLoaded(t, testConfig(), numbered(100)+"\nneedle")

	m = searchFor(t, m, "needle")

	require.True(t, m.frame.state.Visible(101))
	require.Equal(t, viewport.OriginJump, m.frame.state.Origin)
}

func TestIgnoreCaseToggle(t *testing.T) {
	m, _ := newLoaded(t, testConfig(), "Alpha")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}, Alt: true})
	require.True(t, m.session.IgnoreCase())
	require.Contains(t, m.search.View(), "[aA]")

	m = searchFor(t, m, "alpha")
	_, ok := m.session.Highlight()
	require.True(t, ok)
}

func TestScrollKeys(t *testing.T) {
	m, _ := newLoaded(t, testConfig(), numbered(100))

	m, _ = press(m, "j")
	require.Equal(t, 2, m.frame.state.TopLine)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyPgDown})
	require.Equal(t, 11, m.frame.state.TopLine)

	m, _ = press(m, "G")
	require.Equal(t, 91, m.frame.state.TopLine)
	require.Contains(t, m.View(), "100%")

	m, _ = press(m, "g")
	require.Equal(t, 1, m.frame.state.TopLine)
}

func TestSliderKeysAndMouseWheel(t *testing.T) {
	m, _ := newLoaded(t, testConfig(), numbered(100))

	m, _ = press(m, "]")
	require.Equal(t, 5, viewport.SliderValue(m.frame.state))
	require.Equal(t, viewport.OriginSlider, m.frame.state.Origin)

	m, _ = press(m, "[")
	require.Equal(t, 0, viewport.SliderValue(m.frame.state))

	m, _ = update(m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	require.Equal(t, 4, m.frame.state.TopLine)
}

func TestHorizontalScroll(t *testing.T) {
	m, _ := newLoaded(t, testConfig(), strings.Repeat("x", 200))

	m, _ = press(m, "l")
	require.Equal(t, horizontalStep, m.text.XOffset())

	m, _ = press(m, "h")
	require.Equal(t, 0, m.text.XOffset())
}

func TestHelpOverlay(t *testing.T) {
	m, _ := newLoaded(t, testConfig(), "text")

	m, _ = press(m, "?")
	require.True(t, m.showHelp)
	require.Contains(t, m.View(), "Navigation")

	// keys do not reach the reader while help is open
	m, _ = press(m, "j")
	require.True(t, m.showHelp)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.showHelp)
}

func TestOpenDialogKey(t *testing.T) {
	m, path := newLoaded(t, testConfig(), "text")

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlO})

	require.True(t, m.open.Visible())
	require.NotNil(t, cmd)
	require.Equal(t, filepath.Dir(path), m.open.Dir())
}

func TestLogsKeyOnlyInDebugMode(t *testing.T) {
	m, _ := newLoaded(t, testConfig(), "text")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlX})
	require.False(t, m.logOverlay.Visible())

	m.debugMode = true
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlX})
	require.True(t, m.logOverlay.Visible())
}

func TestWatchEvent_IgnoresOtherPaths(t *testing.T) {
	m, _ := newLoaded(t, testConfig(), "text")

	m, cmd := update(m, pubsub.Event[watcher.Event]{Type: pubsub.ChangedEvent, Payload: watcher.Event{Path: "/elsewhere"}})

	require.Nil(t, cmd)
	require.False(t, m.loading)
}

func TestWatchFile_StartsWhenEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.Watch.Enabled = true
	cfg.Watch.Debounce = 10 * time.Millisecond
	m, path := newLoaded(t, cfg, "text")

	require.NotNil(t, m.watch.w)
	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	require.Equal(t, abs, m.watch.w.Path())

	m, cmd := update(m, pubsub.Event[watcher.Event]{Type: pubsub.ChangedEvent, Payload: watcher.Event{Path: abs}})
	require.NotNil(t, cmd)
	require.True(t, m.loading)
}

func TestProgram_OpensFileAndQuits(t *testing.T) {
	path := writeFile(t, "first line of the file\nsecond line")
	m := New(Options{Config: testConfig(), Path: path, HelpStyle: "notty"})
	t.Cleanup(func() { _ = m.Close() })

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 12))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("first line of the file"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)
	require.Equal(t, path, final.session.Document().Path())
}

// Package logoverlay shows recent log entries over the reader.
package logoverlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/azario0/prototypes-txt-reader/internal/log"
	"github.com/azario0/prototypes-txt-reader/internal/ui/overlay"
	"github.com/azario0/prototypes-txt-reader/internal/ui/styles"
)

const (
	viewportMaxHeight = 25
	viewportMinHeight = 5
	boxMaxWidth       = 160
	boxMinWidth       = 40
)

// CloseMsg is sent when the overlay closes itself.
type CloseMsg struct{}

// Model is the log overlay state.
type Model struct {
	visible  bool
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden overlay showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Update handles keys while visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		if mm, ok := msg.(tea.MouseMsg); ok {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(mm)
			return m, cmd
		}
		return m, nil
	}

	switch k.String() {
	case "c":
		log.ClearBuffer()
	case "d":
		m.minLevel = log.LevelDebug
	case "i":
		m.minLevel = log.LevelInfo
	case "w":
		m.minLevel = log.LevelWarn
	case "e":
		m.minLevel = log.LevelError
	case "j", "down":
		m.viewport.ScrollDown(1)
		return m, nil
	case "k", "up":
		m.viewport.ScrollUp(1)
		return m, nil
	case "g":
		m.viewport.GotoTop()
		return m, nil
	case "G":
		m.viewport.GotoBottom()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+x", "esc":
		m.visible = false
		return m, func() tea.Msg { return CloseMsg{} }
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

// Refresh reloads entries, following the tail if the view was at the
// bottom. Call it when a new entry is logged.
func (m *Model) Refresh() {
	if !m.visible {
		return
	}
	follow := m.viewport.AtBottom()
	offset := m.viewport.YOffset
	m.refresh()
	if !follow {
		m.viewport.SetYOffset(offset)
	}
}

func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	// header, footer and borders take six rows
	h := max(min(viewportMaxHeight, m.height-6), viewportMinHeight)
	m.viewport = viewport.New(m.contentWidth(), h)
	m.viewport.SetContent(m.content())
	m.viewport.GotoBottom()
}

func (m Model) content() string {
	var lines []string
	for _, entry := range log.Recent(-1) {
		if log.EntryLevel(entry) >= m.minLevel {
			lines = append(lines, colorize(entry, m.contentWidth()))
		}
	}
	if len(lines) == 0 {
		return lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true).Render("No logs to display")
	}
	return strings.Join(lines, "\n")
}

func colorize(entry string, maxWidth int) string {
	entry = strings.TrimSuffix(entry, "\n")
	if ansi.StringWidth(entry) > maxWidth {
		entry = ansi.Truncate(entry, maxWidth-3, "...")
	}
	var color lipgloss.TerminalColor
	switch log.EntryLevel(entry) {
	case log.LevelError:
		color = styles.StatusErrorColor
	case log.LevelWarn:
		color = styles.StatusWarningColor
	case log.LevelInfo:
		color = styles.ToastBorderInfoColor
	default:
		color = styles.TextMutedColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}

// View renders the overlay box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	w := m.boxWidth()
	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", w))
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor).PaddingLeft(1).Render("Logs")

	body := strings.Join([]string{title, divider, m.viewport.View(), divider, m.filterHint()}, "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(w).
		Render(body)
}

func (m Model) filterHint() string {
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	parts := []string{hint.Render("[c] Clear")}
	for _, f := range []struct {
		label string
		level log.Level
	}{
		{"[d] Debug", log.LevelDebug},
		{"[i] Info", log.LevelInfo},
		{"[w] Warn", log.LevelWarn},
		{"[e] Error", log.LevelError},
	} {
		if f.level == m.minLevel {
			parts = append(parts, active.Render(f.label))
		} else {
			parts = append(parts, hint.Render(f.label))
		}
	}
	return strings.Join(parts, "  ")
}

// Overlay renders the box centred on bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// Visible reports whether the overlay is shown.
func (m Model) Visible() bool { return m.visible }

// MinLevel is the lowest level shown.
func (m Model) MinLevel() log.Level { return m.minLevel }

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m Model) contentWidth() int {
	return m.boxWidth() - 2
}

// Toggle flips visibility.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.refresh()
	}
}

// Hide closes the overlay.
func (m *Model) Hide() {
	m.visible = false
}

// SetSize updates the screen size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.refresh()
}

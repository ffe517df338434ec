package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/azario0/prototypes-txt-reader/internal/paths"
	"github.com/azario0/prototypes-txt-reader/internal/ui/slider"
	"github.com/azario0/prototypes-txt-reader/internal/ui/styles"
	"github.com/azario0/prototypes-txt-reader/internal/viewport"
)

// layout sizes every component for the current window.
func (m Model) layout() Model {
	bodyHeight := m.height - 1 // search bar
	if m.cfg.UI.ShowStatusBar {
		bodyHeight--
	}
	bodyHeight = max(bodyHeight, 1)

	textWidth := m.width
	if m.cfg.UI.ShowSlider {
		textWidth -= slider.Width + 1
	}

	m.session.Resize(bodyHeight)
	m.text = m.text.SetSize(max(textWidth, 1), bodyHeight)
	m.slider = m.slider.SetHeight(bodyHeight)
	m.search = m.search.SetWidth(m.width)
	m.dialog = m.dialog.SetSize(m.width, m.height)
	m.open = m.open.SetSize(m.width, m.height)
	m.help = m.help.SetSize(m.width, m.height)
	m.logOverlay.SetSize(m.width, m.height)
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	state := m.frame.state

	body := m.text.View(state)
	if m.cfg.UI.ShowSlider {
		track := m.slider.SetValue(viewport.SliderValue(state)).View()
		body = lipgloss.JoinHorizontal(lipgloss.Top, track, " ", body)
	}

	rows := []string{m.search.View(), body}
	if m.cfg.UI.ShowStatusBar {
		rows = append(rows, m.statusBar(state))
	}
	view := strings.Join(rows, "\n")

	view = m.toaster.Overlay(view, m.width, m.height)
	view = m.dialog.Overlay(view)
	view = m.open.Overlay(view)
	if m.showHelp {
		view = m.help.Overlay(view)
	}
	if m.debugMode {
		view = m.logOverlay.Overlay(view)
	}
	return zone.Scan(view)
}

// statusBar renders path, visible lines, match position and scroll percent.
func (m Model) statusBar(s viewport.State) string {
	doc := m.session.Document()

	var right []string
	if m.loading {
		right = append(right, "loading…")
	}
	right = append(right, fmt.Sprintf("Ln %d-%d/%d", s.TopLine, s.BottomLine(), s.Lines))
	if span, ok := m.session.Highlight(); ok {
		right = append(right, fmt.Sprintf("match %d:%d", span.Start.Line, span.Start.Column+1))
	}
	right = append(right, fmt.Sprintf("%3d%%", s.Percent()), "? help")
	rightText := " " + strings.Join(right, " · ") + " "

	left := paths.Abbrev(doc.Path())
	if left == "" {
		left = "no file · ctrl+o to open"
	}
	room := m.width - runewidth.StringWidth(rightText) - 1
	switch w := runewidth.StringWidth(left); {
	case room < 1:
		left = ""
	case w > room:
		// keep the file name, drop leading directories
		left = runewidth.TruncateLeft(left, w-room+1, "…")
	}
	left = " " + left
	gap := max(m.width-runewidth.StringWidth(left)-runewidth.StringWidth(rightText), 0)

	return styles.StatusBar().Render(left + strings.Repeat(" ", gap) + rightText)
}

// Package dialog shows errors in a modal box over the reader.
package dialog

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/azario0/prototypes-txt-reader/internal/document"
	"github.com/azario0/prototypes-txt-reader/internal/search"
	"github.com/azario0/prototypes-txt-reader/internal/ui/overlay"
	"github.com/azario0/prototypes-txt-reader/internal/ui/styles"
)

const (
	boxMaxWidth = 64
	boxMinWidth = 30
)

// CloseMsg is sent when the dialog is dismissed.
type CloseMsg struct{}

var closeKeys = key.NewBinding(key.WithKeys("esc", "enter", " "))

// Model is the error dialog state.
type Model struct {
	title   string
	message string
	visible bool
	width   int
	height  int
}

// New creates a hidden dialog.
func New() Model {
	return Model{}
}

// ShowError opens the dialog for err with a title chosen by error kind.
func (m Model) ShowError(err error) Model {
	m.title = Title(err)
	m.message = err.Error()
	m.visible = true
	return m
}

// Title names the kind of failure for the dialog header.
func Title(err error) string {
	switch {
	case errors.Is(err, document.ErrDecode):
		return "Unsupported encoding"
	case errors.Is(err, document.ErrIO):
		return "Could not read file"
	case errors.Is(err, search.ErrTimeout):
		return "Search timed out"
	case errors.Is(err, search.ErrPattern):
		return "Invalid pattern"
	default:
		return "Error"
	}
}

// SetSize updates the screen size.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Visible reports whether the dialog is open.
func (m Model) Visible() bool { return m.visible }

// Update closes the dialog on esc, enter or space.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, closeKeys) {
		m.visible = false
		return m, func() tea.Msg { return CloseMsg{} }
	}
	return m, nil
}

// View renders the dialog box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	width := max(min(m.width-4, boxMaxWidth), boxMinWidth)
	inner := width - 4

	title := lipgloss.NewStyle().Bold(true).Foreground(styles.StatusErrorColor).Render(m.title)
	body := wordwrap.String(m.message, inner)
	// wordwrap keeps words longer than the limit intact
	body = lipgloss.NewStyle().Width(inner).Render(body)
	footer := styles.Muted().Render("enter or esc to dismiss")

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(footer)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.StatusErrorColor).
		Padding(0, 1).
		Render(b.String())
}

// Overlay renders the dialog centred on bg.
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

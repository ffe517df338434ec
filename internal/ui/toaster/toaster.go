// Package toaster shows short-lived notifications at the bottom of the screen.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/azario0/prototypes-txt-reader/internal/ui/overlay"
	"github.com/azario0/prototypes-txt-reader/internal/ui/styles"
)

// Style determines the toast's border colour and icon.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 3 * time.Second

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	seq     int
}

// New creates a hidden toaster.
func New() Model {
	return Model{}
}

// Show displays message and returns a command that dismisses it after d.
// A newer toast is not hidden by an older toast's timer.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.visible = true
	m.seq++
	seq := m.seq
	return m, tea.Tick(d, func(time.Time) tea.Msg { return DismissMsg{seq: seq} })
}

// Update hides the toast when its dismiss timer fires.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.seq == m.seq {
		return m.Hide()
	}
	return m
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the text of the visible toast.
func (m Model) Message() string {
	return m.message
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}
	style := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())

	var icon string
	switch m.style {
	case StyleError:
		style = style.BorderForeground(styles.ToastBorderErrorColor)
		icon = "✗ "
	case StyleInfo:
		style = style.BorderForeground(styles.ToastBorderInfoColor)
		icon = "ℹ "
	case StyleWarn:
		style = style.BorderForeground(styles.ToastBorderWarnColor)
		icon = "! "
	default:
		style = style.BorderForeground(styles.ToastBorderSuccessColor)
		icon = "✓ "
	}
	return style.Render(icon + m.message)
}

// Overlay draws the toast near the bottom of bg.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible || m.message == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}

// DismissMsg hides the toast it was scheduled for.
type DismissMsg struct {
	seq int
}

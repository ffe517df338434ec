// Package opendialog lets the user pick a file to read.
package opendialog

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/azario0/prototypes-txt-reader/internal/ui/overlay"
	"github.com/azario0/prototypes-txt-reader/internal/ui/styles"
)

const (
	boxMaxWidth  = 80
	boxMaxHeight = 20
)

// SelectMsg carries the chosen file.
type SelectMsg struct {
	Path string
}

// CloseMsg is sent when the dialog is cancelled.
type CloseMsg struct{}

var cancelKey = key.NewBinding(key.WithKeys("esc", "ctrl+o"))

// Model wraps a filepicker in a bordered overlay.
type Model struct {
	picker  filepicker.Model
	visible bool
	width   int
	height  int
}

// New creates a hidden dialog.
func New() Model {
	fp := filepicker.New()
	fp.ShowHidden = false
	fp.ShowSize = true
	fp.ShowPermissions = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	// esc cancels the dialog instead of going up a directory
	fp.KeyMap.Back = key.NewBinding(key.WithKeys("h", "backspace", "left"), key.WithHelp("h", "back"))
	fp.Styles.Selected = fp.Styles.Selected.Foreground(styles.SliderThumbColor)
	fp.Styles.Cursor = fp.Styles.Cursor.Foreground(styles.SliderThumbColor)
	return Model{picker: fp}
}

// Open shows the dialog listing dir.
func (m Model) Open(dir string) (Model, tea.Cmd) {
	if dir == "" {
		dir = "."
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	m.picker.CurrentDirectory = dir
	m.picker.SetHeight(m.listHeight())
	m.visible = true
	return m, m.picker.Init()
}

// Visible reports whether the dialog is open.
func (m Model) Visible() bool { return m.visible }

// Dir is the directory being listed.
func (m Model) Dir() string { return m.picker.CurrentDirectory }

// SetSize updates the screen size.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.picker.SetHeight(m.listHeight())
	return m
}

func (m Model) listHeight() int {
	return max(min(m.height-6, boxMaxHeight), 3)
}

// Update forwards input to the picker while open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		// directory listings can arrive after the dialog closed
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, cancelKey) {
		m.visible = false
		return m, func() tea.Msg { return CloseMsg{} }
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.visible = false
		return m, func() tea.Msg { return SelectMsg{Path: path} }
	}
	return m, cmd
}

// View renders the dialog box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	width := max(min(m.width-4, boxMaxWidth), 30)
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor).Render("Open file")
	dir := styles.Muted().Render(m.picker.CurrentDirectory)
	footer := styles.Muted().Render("enter open · h back · esc cancel")

	body := lipgloss.JoinVertical(lipgloss.Left, title, dir, "", m.picker.View(), footer)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Padding(0, 1).
		Width(width).
		Render(body)
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

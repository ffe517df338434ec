// Package help contains the keybinding help overlay.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/azario0/prototypes-txt-reader/internal/keys"
	"github.com/azario0/prototypes-txt-reader/internal/log"
	"github.com/azario0/prototypes-txt-reader/internal/ui/markdown"
	"github.com/azario0/prototypes-txt-reader/internal/ui/overlay"
	"github.com/azario0/prototypes-txt-reader/internal/ui/styles"
)

const (
	boxMaxWidth = 72
	boxMinWidth = 36
)

var sectionNames = []string{"Navigation", "Slider", "Search", "File", "General"}

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.OverlayBorderColor).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor)
)

// Model holds the help view state.
type Model struct {
	keys       keys.KeyMap
	searchKeys keys.SearchKeyMap
	style      string
	width      int
	height     int
	rendered   string
}

// New creates a help overlay. style is passed to glamour; empty means auto.
func New(style string) Model {
	return Model{
		keys:       keys.DefaultKeyMap(),
		searchKeys: keys.DefaultSearchKeyMap(),
		style:      style,
	}
}

// SetSize updates dimensions and re-renders the content.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.rendered = m.render()
	return m
}

// Markdown is the help text before rendering.
func (m Model) Markdown() string {
	var b strings.Builder
	b.WriteString("# txtreader\n")
	for i, group := range m.keys.FullHelp() {
		writeSection(&b, sectionNames[i], group)
	}
	writeSection(&b, "Search bar", m.searchKeys.ShortHelp())
	b.WriteString("\nMouse wheel scrolls the text. Click or drag the slider to jump.\n")
	return b.String()
}

func writeSection(b *strings.Builder, title string, bindings []key.Binding) {
	fmt.Fprintf(b, "\n## %s\n\n", title)
	for _, kb := range bindings {
		h := kb.Help()
		fmt.Fprintf(b, "- `%s` %s\n", h.Key, h.Desc)
	}
}

func (m Model) contentWidth() int {
	return max(min(m.width-6, boxMaxWidth), boxMinWidth)
}

func (m Model) render() string {
	md := m.Markdown()
	r, err := markdown.New(m.contentWidth(), m.style)
	if err != nil {
		log.ErrorErr(log.CatUI, "help renderer failed", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		log.ErrorErr(log.CatUI, "help render failed", err)
		return md
	}
	return strings.TrimRight(out, "\n")
}

// View renders the help box on its own.
func (m Model) View() string {
	body := m.rendered
	if body == "" {
		body = m.render()
	}
	// keep the box inside the screen; the keys at the end matter least
	if m.height > 0 {
		lines := strings.Split(body, "\n")
		if limit := m.height - 4; limit > 0 && len(lines) > limit {
			body = strings.Join(lines[:limit], "\n")
		}
	}
	footer := footerStyle.Render("? or esc to close")
	return boxStyle.Render(body + "\n\n" + footer)
}

// Overlay renders the help box centred on a background view.
func (m Model) Overlay(background string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), background)
}

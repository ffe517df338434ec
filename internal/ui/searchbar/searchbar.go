// Package searchbar provides the regex search input shown above the text.
package searchbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/azario0/prototypes-txt-reader/internal/keys"
	"github.com/azario0/prototypes-txt-reader/internal/ui/styles"
)

// SubmitMsg asks the app to search for Term.
type SubmitMsg struct {
	Term     string
	Backward bool
}

// ToggleIgnoreCaseMsg asks the app to flip case sensitivity.
type ToggleIgnoreCaseMsg struct{}

// BlurMsg is sent when the bar gives focus back to the text.
type BlurMsg struct{}

// Model is the search bar state.
type Model struct {
	input      textinput.Model
	keys       keys.SearchKeyMap
	ignoreCase bool
	width      int

	count  int
	capped bool
	term   string // term the count belongs to
}

// New creates an unfocused search bar.
func New() Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.SearchPromptColor).Bold(true)
	ti.Placeholder = "regular expression"
	ti.CharLimit = 1024
	return Model{input: ti, keys: keys.DefaultSearchKeyMap(), count: -1}
}

// SetWidth sets the rendered width.
func (m Model) SetWidth(w int) Model {
	m.width = w
	return m.fit()
}

// fit sizes the input around the indicator, whose width changes with the
// match count and case mode.
func (m Model) fit() Model {
	if m.width == 0 {
		return m
	}
	prompt := lipgloss.Width(m.input.Prompt)
	// one cell for the cursor, one for the gap
	w := m.width - prompt - lipgloss.Width(m.indicator()) - 2
	if w < 1 {
		w = max(m.width-prompt-1, 1)
	}
	if w != m.input.Width {
		m.input.Width = w
		m.input.SetCursor(m.input.Position())
	}
	return m
}

// Focus gives the bar keyboard focus.
func (m Model) Focus() (Model, tea.Cmd) {
	cmd := m.input.Focus()
	return m, cmd
}

// Blur releases focus.
func (m Model) Blur() Model {
	m.input.Blur()
	return m
}

// Focused reports whether the bar has focus.
func (m Model) Focused() bool { return m.input.Focused() }

// Value is the current search term.
func (m Model) Value() string { return m.input.Value() }

// SetValue replaces the term.
func (m Model) SetValue(v string) Model {
	m.input.SetValue(v)
	return m.fit()
}

// SetIgnoreCase updates the case indicator.
func (m Model) SetIgnoreCase(ignore bool) Model {
	m.ignoreCase = ignore
	return m.fit()
}

// SetMatchCount shows how many matches term has. A negative count hides
// the counter.
func (m Model) SetMatchCount(term string, count int, capped bool) Model {
	m.term = term
	m.count = count
	m.capped = capped
	return m.fit()
}

// Update handles input while focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.input.Focused() {
		return m, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Submit):
			term := m.input.Value()
			return m, func() tea.Msg { return SubmitMsg{Term: term} }
		case key.Matches(msg, m.keys.Prev):
			term := m.input.Value()
			return m, func() tea.Msg { return SubmitMsg{Term: term, Backward: true} }
		case key.Matches(msg, m.keys.IgnoreCase):
			return m, func() tea.Msg { return ToggleIgnoreCaseMsg{} }
		case key.Matches(msg, m.keys.Blur):
			m.input.Blur()
			return m, func() tea.Msg { return BlurMsg{} }
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m.fit(), cmd
}

// View renders the bar on one line. The indicator is dropped when the
// bar is too narrow for it.
func (m Model) View() string {
	left := m.input.View()
	right := m.indicator()
	if m.width == 0 {
		return left + " " + right
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) indicator() string {
	muted := styles.Muted()
	var parts []string
	if m.count >= 0 && m.term != "" && m.term == m.input.Value() {
		switch {
		case m.capped:
			parts = append(parts, fmt.Sprintf("%d+ matches", m.count))
		case m.count == 1:
			parts = append(parts, "1 match")
		default:
			parts = append(parts, fmt.Sprintf("%d matches", m.count))
		}
	}
	if m.ignoreCase {
		parts = append(parts, "[aA]")
	} else {
		parts = append(parts, "[Aa]")
	}
	return muted.Render(strings.Join(parts, " "))
}

package dialog

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/azario0/prototypes-txt-reader/internal/document"
	"github.com/azario0/prototypes-txt-reader/internal/search"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestTitle(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&document.IOError{Op: "open", Path: "x", Err: errors.New("boom")}, "Could not read file"},
		{&document.DecodeError{Path: "x", Offset: 3}, "Unsupported encoding"},
		{&search.PatternError{Term: "(", Err: errors.New("bad")}, "Invalid pattern"},
		{&search.PatternError{Term: "a", Timeout: true, Err: search.ErrTimeout}, "Search timed out"},
		{fmt.Errorf("other"), "Error"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Title(tt.err), tt.err.Error())
	}
}

func TestShowAndDismiss(t *testing.T) {
	m := New().SetSize(80, 24).ShowError(&document.DecodeError{Path: "bin.dat", Offset: 12})

	require.True(t, m.Visible())
	require.Contains(t, m.View(), "Unsupported encoding")
	require.Contains(t, m.View(), "bin.dat")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.Visible())
	require.Equal(t, CloseMsg{}, cmd())
	require.Empty(t, m.View())
}

func TestView_WrapsLongMessages(t *testing.T) {
	msg := strings.Repeat("word ", 40)
	m := New().SetSize(40, 24).ShowError(errors.New(msg))

	for _, line := range strings.Split(m.View(), "\n") {
		require.LessOrEqual(t, lipgloss.Width(line), 40)
	}
}

func TestOverlay_HiddenPassesThrough(t *testing.T) {
	require.Equal(t, "bg", New().Overlay("bg"))
}

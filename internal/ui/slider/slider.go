// Package slider renders the vertical navigation slider and maps mouse
// clicks and drags on it to slider values.
package slider

import (
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/azario0/prototypes-txt-reader/internal/ui/styles"
	"github.com/azario0/prototypes-txt-reader/internal/viewport"
)

// Width is the number of columns the slider occupies.
const Width = 1

// Model is the slider state. Value runs 0..viewport.SliderMax.
type Model struct {
	zoneID   string
	height   int
	value    int
	dragging bool
}

// New creates a slider with its own mouse zone.
func New() Model {
	return Model{zoneID: zone.NewPrefix() + "slider"}
}

// SetHeight sets the track length in rows.
func (m Model) SetHeight(h int) Model {
	m.height = max(h, 0)
	return m
}

// SetValue moves the thumb, clamped to the slider range.
func (m Model) SetValue(v int) Model {
	m.value = min(max(v, 0), viewport.SliderMax)
	return m
}

// Value is the current slider value.
func (m Model) Value() int { return m.value }

// Dragging reports whether a drag is in progress.
func (m Model) Dragging() bool { return m.dragging }

// ZoneID is the bubblezone id wrapping the track.
func (m Model) ZoneID() string { return m.zoneID }

// ThumbRow is the row (0-indexed) the thumb is drawn on.
func (m Model) ThumbRow() int {
	if m.height <= 1 {
		return 0
	}
	return int(math.Round(float64(m.value) * float64(m.height-1) / viewport.SliderMax))
}

// ValueForRow maps a track row to a slider value. Rows outside the track
// clamp to its ends.
func ValueForRow(row, height int) int {
	if height <= 1 {
		return 0
	}
	row = min(max(row, 0), height-1)
	return int(math.Round(float64(row) * viewport.SliderMax / float64(height-1)))
}

// Update handles mouse input. It reports the new value and whether the
// value was set by this message.
func (m Model) Update(msg tea.MouseMsg) (Model, bool) {
	z := zone.Get(m.zoneID)
	if z == nil || z.IsZero() {
		return m, false
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !z.InBounds(msg) {
			return m, false
		}
		m.dragging = true
	case tea.MouseActionMotion:
		if !m.dragging {
			return m, false
		}
	case tea.MouseActionRelease:
		if !m.dragging {
			return m, false
		}
		m.dragging = false
	default:
		return m, false
	}
	m.value = ValueForRow(msg.Y-z.StartY, m.height)
	return m, true
}

// View renders the track with the thumb. The result is zone-marked; the
// caller must pass the final frame through zone.Scan.
func (m Model) View() string {
	if m.height == 0 {
		return ""
	}
	track := lipgloss.NewStyle().Foreground(styles.SliderTrackColor)
	thumb := lipgloss.NewStyle().Foreground(styles.SliderThumbColor)
	thumbRow := m.ThumbRow()

	rows := make([]string, m.height)
	for i := range rows {
		if i == thumbRow {
			rows[i] = thumb.Render("█")
		} else {
			rows[i] = track.Render("│")
		}
	}
	return zone.Mark(m.zoneID, strings.Join(rows, "\n"))
}

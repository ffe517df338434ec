// Package overlay draws modal content on top of a rendered background
// without clearing it.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where to place the overlay content.
type Position int

const (
	Center Position = iota
	Top
	Bottom
)

// Config controls overlay placement.
type Config struct {
	Width    int
	Height   int
	Position Position
	PadY     int // distance from the edge for Top and Bottom
}

// Place renders fg on top of bg. Both may carry ANSI styling; cuts are made
// on cell boundaries so the background keeps its colours either side.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	x, y := origin(cfg, lipgloss.Width(fg), len(fgLines))

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLine := bgLines[row]

		left := ansi.Truncate(bgLine, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ""
		if end := x + ansi.StringWidth(line); end < ansi.StringWidth(bgLine) {
			right = ansi.TruncateLeft(bgLine, end, "")
		}
		bgLines[row] = left + line + right
	}
	return strings.Join(bgLines, "\n")
}

func origin(cfg Config, w, h int) (x, y int) {
	x = (cfg.Width - w) / 2
	switch cfg.Position {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = cfg.Height - h - cfg.PadY
	default:
		y = (cfg.Height - h) / 2
	}
	return max(x, 0), max(y, 0)
}

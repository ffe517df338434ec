package viewport

import "math"

// Origin records what caused a viewport change.
type Origin int

const (
	OriginLoad Origin = iota
	OriginScroll
	OriginSlider
	OriginJump
	OriginResize
)

func (o Origin) String() string {
	switch o {
	case OriginLoad:
		return "load"
	case OriginScroll:
		return "scroll"
	case OriginSlider:
		return "slider"
	case OriginJump:
		return "jump"
	case OriginResize:
		return "resize"
	default:
		return "unknown"
	}
}

// State is the single source of truth for what is on screen.
//
// Fraction is the top of the view as a fraction of the scrollable extent:
// 0 shows the first line at the top, 1 shows the last line at the bottom.
// TopLine (1-indexed) is derived from Fraction, Lines and Height.
type State struct {
	Fraction float64
	TopLine  int
	Lines    int
	Height   int
	Origin   Origin
}

func newState(fraction float64, lines, height int, origin Origin) State {
	s := State{
		Fraction: clamp01(fraction),
		Lines:    max(lines, 1),
		Height:   max(height, 1),
		Origin:   origin,
	}
	s.TopLine = int(math.Round(s.Fraction*float64(s.MaxTop()))) + 1
	return s
}

// MaxTop is how many lines the view can scroll.
func (s State) MaxTop() int {
	return max(0, s.Lines-s.Height)
}

// BottomLine is the last line on screen.
func (s State) BottomLine() int {
	return min(s.Lines, s.TopLine+s.Height-1)
}

// Visible reports whether line is on screen.
func (s State) Visible(line int) bool {
	return line >= s.TopLine && line <= s.BottomLine()
}

// Percent is the fraction as a whole percentage for status display.
func (s State) Percent() int {
	return int(math.Round(s.Fraction * 100))
}

// fractionForTop converts a 0-indexed top line to a fraction.
func (s State) fractionForTop(top int) float64 {
	maxTop := s.MaxTop()
	if maxTop == 0 {
		return 0
	}
	return float64(min(max(top, 0), maxTop)) / float64(maxTop)
}

func clamp01(f float64) float64 {
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

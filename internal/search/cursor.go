package search

import (
	"fmt"

	"github.com/azario0/prototypes-txt-reader/internal/document"
)

// MatchSpan locates one match. Offsets are in characters, EndOffset is
// exclusive, and End is Start advanced by Length characters.
type MatchSpan struct {
	Start     document.Position
	End       document.Position
	Offset    int
	EndOffset int
	Length    int
}

// Empty reports a zero-length match.
func (m MatchSpan) Empty() bool { return m.Length == 0 }

func (m MatchSpan) String() string {
	return fmt.Sprintf("%s-%s", m.Start, m.End)
}

// resume is where a forward scan continues after m.
func (m MatchSpan) resume() int {
	if m.Empty() {
		return m.EndOffset + 1
	}
	return m.EndOffset
}

// Anchor says where the next scan starts from.
type Anchor int

const (
	AnchorIdle Anchor = iota
	AnchorStart
	AnchorEnd
	AnchorMatch
)

func (a Anchor) String() string {
	switch a {
	case AnchorIdle:
		return "idle"
	case AnchorStart:
		return "start"
	case AnchorEnd:
		return "end"
	case AnchorMatch:
		return "match"
	default:
		return "unknown"
	}
}

// Direction of the last search step.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Cursor is the search state between steps. It is a value: the engine
// returns an updated copy instead of mutating it.
type Cursor struct {
	Term      string
	Anchor    Anchor
	Match     MatchSpan // valid when Anchor == AnchorMatch
	Direction Direction
	// Wrapped is set when the last step ran off the document and reset the
	// anchor; the next Found reports it.
	Wrapped bool
}

// NewCursor returns an idle cursor with no term.
func NewCursor() Cursor {
	return Cursor{Anchor: AnchorIdle}
}

// Current returns the anchor match, if any.
func (c Cursor) Current() (MatchSpan, bool) {
	return c.Match, c.Anchor == AnchorMatch
}

func (c Cursor) forTerm(term string, dir Direction) Cursor {
	if c.Term == term && c.Anchor != AnchorIdle {
		c.Direction = dir
		return c
	}
	anchor := AnchorStart
	if dir == Backward {
		anchor = AnchorEnd
	}
	return Cursor{Term: term, Anchor: anchor, Direction: dir}
}

func (c Cursor) at(span MatchSpan) Cursor {
	c.Anchor = AnchorMatch
	c.Match = span
	c.Wrapped = false
	return c
}

func (c Cursor) exhausted(reset Anchor) Cursor {
	c.Anchor = reset
	c.Match = MatchSpan{}
	c.Wrapped = true
	return c
}

// Outcome is the result of one search step. NotFound is Found == false.
type Outcome struct {
	Found bool
	Match MatchSpan
	// Wrapped marks the first Found after the previous step hit the end
	// (or start) of the document.
	Wrapped bool
}

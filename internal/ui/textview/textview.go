// Package textview renders the visible window of a document with a
// line-number gutter and the current search match highlighted.
package textview

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/azario0/prototypes-txt-reader/internal/document"
	"github.com/azario0/prototypes-txt-reader/internal/search"
	"github.com/azario0/prototypes-txt-reader/internal/ui/styles"
	"github.com/azario0/prototypes-txt-reader/internal/viewport"
)

// gutterSep follows the line number in the gutter.
const gutterSep = " │ "

// cell is one grapheme as it appears on screen.
type cell struct {
	text  string
	width int
	char  int // character index within the line
	hl    bool
}

// Model renders a document. It holds no scroll state of its own except the
// horizontal offset; vertical position comes from the viewport State.
type Model struct {
	doc        *document.Document
	gutter     viewport.Gutter
	width      int
	height     int
	xOffset    int
	tabWidth   int
	showGutter bool

	hl    search.MatchSpan
	hasHL bool
}

// New creates an empty text view.
func New(tabWidth int, showGutter bool) Model {
	if tabWidth < 1 {
		tabWidth = 4
	}
	return Model{tabWidth: tabWidth, showGutter: showGutter, gutter: viewport.Gutter{Lines: 1, Width: 1}}
}

// SetDocument swaps the document and scrolls back to the left edge.
func (m Model) SetDocument(doc *document.Document, g viewport.Gutter) Model {
	m.doc = doc
	m.gutter = g
	m.xOffset = 0
	m.hasHL = false
	return m
}

// SetSize sets the outer size, gutter included.
func (m Model) SetSize(width, height int) Model {
	m.width = max(width, 0)
	m.height = max(height, 0)
	return m
}

// SetHighlight sets or clears the highlighted span.
func (m Model) SetHighlight(span search.MatchSpan, ok bool) Model {
	m.hl = span
	m.hasHL = ok
	return m
}

// SetShowGutter toggles the line-number column.
func (m Model) SetShowGutter(show bool) Model {
	m.showGutter = show
	return m
}

// XOffset is the first display column shown.
func (m Model) XOffset() int { return m.xOffset }

// TextWidth is the width available for text after the gutter.
func (m Model) TextWidth() int {
	return max(m.width-m.gutterWidth(), 1)
}

func (m Model) gutterWidth() int {
	if !m.showGutter {
		return 0
	}
	return m.gutter.Width + len([]rune(gutterSep))
}

// ScrollLeft moves the view n columns left.
func (m Model) ScrollLeft(n int) Model {
	m.xOffset = max(m.xOffset-n, 0)
	return m
}

// ScrollRight moves the view n columns right, stopping once the longest
// line in s is fully visible.
func (m Model) ScrollRight(n int, s viewport.State) Model {
	widest := 0
	for line := s.TopLine; line <= s.BottomLine(); line++ {
		widest = max(widest, m.lineWidth(line))
	}
	limit := max(widest-m.TextWidth(), 0)
	if m.xOffset < limit {
		m.xOffset = min(m.xOffset+n, limit)
	}
	return m
}

// Reveal adjusts the horizontal offset so the start of span is on screen.
func (m Model) Reveal(span search.MatchSpan) Model {
	col := m.displayColumn(span.Start.Line, span.Start.Column)
	tw := m.TextWidth()
	if col >= m.xOffset && col < m.xOffset+tw {
		return m
	}
	m.xOffset = max(col-tw/3, 0)
	return m
}

// View renders the rows visible in s.
func (m Model) View(s viewport.State) string {
	if m.height == 0 || m.width == 0 {
		return ""
	}
	gutterStyle := styles.Gutter()
	muted := styles.Muted()
	tw := m.TextWidth()

	rows := make([]string, 0, m.height)
	for i := 0; i < m.height; i++ {
		line := s.TopLine + i
		var b strings.Builder
		if m.showGutter {
			label := strings.Repeat(" ", m.gutter.Width)
			if m.doc != nil && line <= m.doc.LineCount() {
				label = m.gutter.Label(line)
			}
			b.WriteString(gutterStyle.Render(label + gutterSep))
		}
		if m.doc == nil || line > m.doc.LineCount() {
			b.WriteString(muted.Render("~"))
			b.WriteString(strings.Repeat(" ", tw-1))
		} else {
			b.WriteString(m.renderLine(line, tw))
		}
		rows = append(rows, b.String())
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderLine(line, tw int) string {
	visible := crop(m.cells(line), m.xOffset, tw)
	hlStyle := styles.Highlight()

	var b strings.Builder
	var run strings.Builder
	runHL := false
	used := 0
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runHL {
			b.WriteString(hlStyle.Render(run.String()))
		} else {
			b.WriteString(run.String())
		}
		run.Reset()
	}
	for _, c := range visible {
		if c.hl != runHL {
			flush()
			runHL = c.hl
		}
		run.WriteString(c.text)
		used += c.width
	}
	flush()
	if used < tw {
		b.WriteString(strings.Repeat(" ", tw-used))
	}
	return b.String()
}

// crop keeps the cells between display columns from and from+width. A wide
// grapheme cut by either edge is replaced by spaces.
func crop(cells []cell, from, width int) []cell {
	out := make([]cell, 0, len(cells))
	col := 0
	for _, c := range cells {
		start, end := col, col+c.width
		col = end
		switch {
		case end <= from:
			continue
		case start >= from+width:
			return out
		case start < from || end > from+width:
			visible := min(end, from+width) - max(start, from)
			out = append(out, cell{text: strings.Repeat(" ", visible), width: visible, char: c.char, hl: c.hl})
		default:
			out = append(out, c)
		}
	}
	return out
}

// cells lays line out as screen cells with tabs expanded and control
// characters made visible.
func (m Model) cells(line int) []cell {
	if m.doc == nil {
		return nil
	}
	runes := m.doc.LineRunes(line)
	hlFrom, hlTo := m.highlightRange(line, len(runes))

	text := string(runes)
	out := make([]cell, 0, len(runes))
	col, char := 0, 0
	state := -1
	for len(text) > 0 {
		cluster, rest, boundaries, newState := uniseg.StepString(text, state)
		text, state = rest, newState
		n := utf8.RuneCountInString(cluster)
		c := cell{text: cluster, width: boundaries >> uniseg.ShiftWidth, char: char}

		r, _ := utf8.DecodeRuneInString(cluster)
		switch {
		case r == '\t':
			c.width = m.tabWidth - col%m.tabWidth
			c.text = strings.Repeat(" ", c.width)
		case r == '\r' && len(text) == 0:
			c.text, c.width = "", 0
		case unicode.IsControl(r):
			c.text, c.width = caret(r)
		}
		c.hl = char < hlTo && char+n > hlFrom
		out = append(out, c)
		col += c.width
		char += n
	}
	// The match runs over the line break or is an empty match at line end.
	if hlFrom <= len(runes) && hlTo > len(runes) {
		out = append(out, cell{text: " ", width: 1, char: len(runes), hl: true})
	}
	return out
}

// highlightRange returns the highlighted characters of line as a half-open
// range relative to the line start. Empty matches cover one cell.
func (m Model) highlightRange(line, length int) (from, to int) {
	if !m.hasHL {
		return -1, -1
	}
	start, err := m.doc.LineStart(line)
	if err != nil {
		return -1, -1
	}
	from = m.hl.Offset - start
	to = m.hl.EndOffset - start
	if m.hl.Empty() {
		to = from + 1
	}
	if to <= 0 || from > length {
		return -1, -1
	}
	return from, to
}

func (m Model) lineWidth(line int) int {
	w := 0
	for _, c := range m.cells(line) {
		w += c.width
	}
	return w
}

// displayColumn is the screen column where character index char of line
// starts.
func (m Model) displayColumn(line, char int) int {
	col := 0
	for _, c := range m.cells(line) {
		if c.char >= char {
			break
		}
		col += c.width
	}
	return col
}

// caret renders a control character in ^X notation.
func caret(r rune) (string, int) {
	switch {
	case r == 0x7f:
		return "^?", 2
	case r < 0x20:
		return "^" + string(r+'@'), 2
	default:
		return string(utf8.RuneError), 1
	}
}

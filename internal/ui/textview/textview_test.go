package textview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/azario0/prototypes-txt-reader/internal/document"
	"github.com/azario0/prototypes-txt-reader/internal/search"
	"github.com/azario0/prototypes-txt-reader/internal/viewport"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newView(text string, width, height int) (Model, viewport.State) {
	doc := document.FromString("t.txt", text)
	m := New(4, true).SetDocument(doc, viewport.RecomputeGutter(doc)).SetSize(width, height)
	c := viewport.NewController(doc.LineCount(), height)
	return m, c.State()
}

func span(t *testing.T, doc *document.Document, offset, length int) search.MatchSpan {
	t.Helper()
	start, err := doc.OffsetToPosition(offset)
	require.NoError(t, err)
	end, err := doc.OffsetToPosition(offset + length)
	require.NoError(t, err)
	return search.MatchSpan{Start: start, End: end, Offset: offset, EndOffset: offset + length, Length: length}
}

func highlighted(cells []cell) string {
	var b strings.Builder
	for _, c := range cells {
		if c.hl {
			b.WriteString(c.text)
		}
	}
	return b.String()
}

func TestView_GutterAndFiller(t *testing.T) {
	m, s := newView("alpha\nbeta", 12, 3)

	rows := strings.Split(m.View(s), "\n")

	require.Len(t, rows, 3)
	require.Equal(t, "1 │ alpha   ", rows[0])
	require.Equal(t, "2 │ beta    ", rows[1])
	require.Equal(t, "  │ ~       ", rows[2])
}

func TestView_NoGutter(t *testing.T) {
	m, s := newView("abc", 5, 1)
	m = m.SetShowGutter(false)

	require.Equal(t, "abc  ", m.View(s))
}

func TestView_RendersOnlyVisibleLines(t *testing.T) {
	doc := document.FromString("t.txt", "1\n2\n3\n4\n5\n6\n7\n8\n9\n10")
	m := New(4, true).SetDocument(doc, viewport.RecomputeGutter(doc)).SetSize(8, 2)
	c := viewport.NewController(doc.LineCount(), 2)
	s := c.GotoBottom()

	rows := strings.Split(m.View(s), "\n")

	require.Equal(t, []string{" 9 │ 9  ", "10 │ 10 "}, rows)
}

func TestCells_TabExpansion(t *testing.T) {
	m, _ := newView("a\tb\n\tc", 20, 2)

	var first, second strings.Builder
	for _, c := range m.cells(1) {
		first.WriteString(c.text)
	}
	for _, c := range m.cells(2) {
		second.WriteString(c.text)
	}

	require.Equal(t, "a   b", first.String())
	require.Equal(t, "    c", second.String())
}

func TestCells_WideAndCombining(t *testing.T) {
	m, _ := newView("日e\u0301x", 20, 1)

	cells := m.cells(1)

	require.Len(t, cells, 3)
	require.Equal(t, 2, cells[0].width)
	require.Equal(t, "e\u0301", cells[1].text)
	require.Equal(t, 1, cells[1].char)
	require.Equal(t, 3, cells[2].char)
}

func TestCells_TrailingCarriageReturnHidden(t *testing.T) {
	m, _ := newView("dos\r\nline", 20, 2)

	require.Equal(t, 3, m.lineWidth(1))
}

func TestCells_ControlCharactersVisible(t *testing.T) {
	m, _ := newView("a\x01b", 20, 1)

	var b strings.Builder
	for _, c := range m.cells(1) {
		b.WriteString(c.text)
	}
	require.Equal(t, "a^Ab", b.String())
}

func TestCells_HighlightSpansLines(t *testing.T) {
	doc := document.FromString("t.txt", "hello world\nsecond line")
	m := New(4, true).SetDocument(doc, viewport.RecomputeGutter(doc)).SetSize(30, 2)
	// "world\nsec"
	m = m.SetHighlight(span(t, doc, 6, 9), true)

	require.Equal(t, "world ", highlighted(m.cells(1)))
	require.Equal(t, "sec", highlighted(m.cells(2)))
}

func TestCells_EmptyMatchMarksOneCell(t *testing.T) {
	doc := document.FromString("t.txt", "abc")
	m := New(4, false).SetDocument(doc, viewport.RecomputeGutter(doc)).SetSize(10, 1)

	m = m.SetHighlight(span(t, doc, 1, 0), true)
	require.Equal(t, "b", highlighted(m.cells(1)))

	m = m.SetHighlight(span(t, doc, 3, 0), true)
	require.Equal(t, " ", highlighted(m.cells(1)))
}

func TestCrop_SplitsWideGrapheme(t *testing.T) {
	cells := []cell{{text: "日", width: 2}, {text: "x", width: 1, char: 1}}

	out := crop(cells, 1, 5)

	require.Len(t, out, 2)
	require.Equal(t, " ", out[0].text)
	require.Equal(t, "x", out[1].text)
}

func TestHorizontalScroll(t *testing.T) {
	m, s := newView(strings.Repeat("x", 30), 14, 1) // text width 10

	m = m.ScrollRight(5, s)
	require.Equal(t, 5, m.XOffset())

	m = m.ScrollRight(100, s)
	require.Equal(t, 20, m.XOffset())

	m = m.ScrollLeft(100)
	require.Equal(t, 0, m.XOffset())
}

func TestReveal_ScrollsToMatch(t *testing.T) {
	doc := document.FromString("t.txt", strings.Repeat("x", 50)+"needle")
	m := New(4, true).SetDocument(doc, viewport.RecomputeGutter(doc)).SetSize(24, 1) // text width 20

	m = m.Reveal(span(t, doc, 50, 6))
	require.Equal(t, 50-20/3, m.XOffset())

	// already visible: no change
	before := m.XOffset()
	m = m.Reveal(span(t, doc, 52, 1))
	require.Equal(t, before, m.XOffset())
}

package viewport

import (
	"fmt"
	"strconv"
)

// LineCounter is anything with a line count, typically a document.
type LineCounter interface {
	LineCount() int
}

// Gutter describes the line-number column.
type Gutter struct {
	Lines int
	Width int // digits in the largest line number
}

// RecomputeGutter sizes the gutter for doc.
func RecomputeGutter(doc LineCounter) Gutter {
	lines := 1
	if doc != nil {
		lines = max(doc.LineCount(), 1)
	}
	return Gutter{Lines: lines, Width: len(strconv.Itoa(lines))}
}

// Changed reports whether the gutter needs a new width.
func (g Gutter) Changed(prev Gutter) bool {
	return g.Width != prev.Width
}

// Label renders line right-aligned to the gutter width.
func (g Gutter) Label(line int) string {
	return fmt.Sprintf("%*d", g.Width, line)
}

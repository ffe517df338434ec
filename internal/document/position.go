package document

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Position addresses a character by line (1-indexed) and column
// (0-indexed, in characters).
type Position struct {
	Line   int
	Column int
}

// String renders the position as line.column.
func (p Position) String() string {
	return fmt.Sprintf("%d.%d", p.Line, p.Column)
}

// Before reports whether p comes strictly before q.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// Start is the first position of every document.
var Start = Position{Line: 1, Column: 0}

// End is the position just past the last character.
func (d *Document) End() Position {
	return Position{Line: d.LineCount(), Column: d.LineLength(d.LineCount())}
}

// OffsetToPosition converts a character offset in [0, Len()] to a Position.
func (d *Document) OffsetToPosition(offset int) (Position, error) {
	if offset < 0 || offset > len(d.runes) {
		return Position{}, &OutOfRangeError{What: "offset", Value: offset, Max: len(d.runes)}
	}
	// index of the first line starting after offset == 1-indexed line
	line := sort.Search(len(d.lineChars), func(i int) bool {
		return d.lineChars[i] > offset
	})
	return Position{Line: line, Column: offset - d.lineChars[line-1]}, nil
}

// PositionToOffset converts a valid Position to its character offset.
func (d *Document) PositionToOffset(p Position) (int, error) {
	start, end, ok := d.lineSpan(p.Line)
	if !ok {
		return 0, &OutOfRangeError{What: "line", Value: p.Line, Max: d.LineCount()}
	}
	if p.Column < 0 || p.Column > end-start {
		return 0, &OutOfRangeError{What: "column", Value: p.Column, Max: end - start}
	}
	return start + p.Column, nil
}

// Advance moves count characters forward; a newline counts as one.
// A negative count moves backward.
func (d *Document) Advance(p Position, count int) (Position, error) {
	off, err := d.PositionToOffset(p)
	if err != nil {
		return Position{}, err
	}
	return d.OffsetToPosition(off + count)
}

// Retreat moves count characters backward.
func (d *Document) Retreat(p Position, count int) (Position, error) {
	return d.Advance(p, -count)
}

// ByteToOffset converts a byte offset into the decoded text to a character
// offset. Byte offsets inside a multi-byte character round down.
func (d *Document) ByteToOffset(b int) (int, error) {
	if b < 0 || b > len(d.text) {
		return 0, &OutOfRangeError{What: "byte", Value: b, Max: len(d.text)}
	}
	for b > 0 && b < len(d.text) && !utf8.RuneStart(d.text[b]) {
		b--
	}
	line := sort.Search(len(d.lineBytes), func(i int) bool {
		return d.lineBytes[i] > b
	})
	start := d.lineBytes[line-1]
	return d.lineChars[line-1] + utf8.RuneCountInString(d.text[start:b]), nil
}

// OffsetToByte converts a character offset to a byte offset into the
// decoded text.
func (d *Document) OffsetToByte(offset int) (int, error) {
	p, err := d.OffsetToPosition(offset)
	if err != nil {
		return 0, err
	}
	b := d.lineBytes[p.Line-1]
	for _, r := range d.runes[d.lineChars[p.Line-1]:offset] {
		b += utf8.RuneLen(r)
	}
	return b, nil
}

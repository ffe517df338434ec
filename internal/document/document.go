// Package document holds the text of an opened file: a decoded,
// line-indexed and immutable buffer plus character/position addressing.
package document

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Document is immutable after construction and safe for concurrent readers.
//
// Lines are separated by '\n'. The newline belongs to the line it ends and
// counts as one character, so a document with n newlines has n+1 lines and
// an empty document has a single empty line.
type Document struct {
	id       string
	path     string
	loadedAt time.Time
	byteLen  int

	text  string
	runes []rune

	// lineChars[i] and lineBytes[i] are the character and byte offsets at
	// which line i+1 starts. Both always begin with 0.
	lineChars []int
	lineBytes []int
}

// FromString builds a document from in-memory text.
func FromString(path, text string) *Document {
	return build(path, text, len(text))
}

func build(path, text string, byteLen int) *Document {
	d := &Document{
		id:        uuid.NewString(),
		path:      path,
		loadedAt:  time.Now(),
		byteLen:   byteLen,
		text:      text,
		runes:     make([]rune, 0, utf8.RuneCountInString(text)),
		lineChars: []int{0},
		lineBytes: []int{0},
	}
	for i, r := range text {
		d.runes = append(d.runes, r)
		if r == '\n' {
			d.lineChars = append(d.lineChars, len(d.runes))
			d.lineBytes = append(d.lineBytes, i+1)
		}
	}
	return d
}

// ID identifies this load of the file.
func (d *Document) ID() string { return d.id }

// Path is the file the document was read from.
func (d *Document) Path() string { return d.path }

// LoadedAt is when the document was built.
func (d *Document) LoadedAt() time.Time { return d.loadedAt }

// ByteLen is the size of the source file in bytes.
func (d *Document) ByteLen() int { return d.byteLen }

// Len is the number of characters.
func (d *Document) Len() int { return len(d.runes) }

// Runes returns the decoded characters. Callers must not modify the slice.
func (d *Document) Runes() []rune { return d.runes }

// Text returns the decoded text.
func (d *Document) Text() string { return d.text }

// LineCount is always at least 1.
func (d *Document) LineCount() int { return len(d.lineChars) }

// LineText returns line (1-indexed) without its newline, or "" when the
// line does not exist.
func (d *Document) LineText(line int) string {
	if line < 1 || line > d.LineCount() {
		return ""
	}
	start := d.lineBytes[line-1]
	end := len(d.text)
	if line < d.LineCount() {
		end = d.lineBytes[line] - 1
	}
	return d.text[start:end]
}

// LineRunes returns line (1-indexed) as characters without its newline.
func (d *Document) LineRunes(line int) []rune {
	start, end, ok := d.lineSpan(line)
	if !ok {
		return nil
	}
	return d.runes[start:end]
}

// LineLength is the number of characters on line, newline excluded.
func (d *Document) LineLength(line int) int {
	start, end, _ := d.lineSpan(line)
	return end - start
}

// LineStart is the character offset at which line begins.
func (d *Document) LineStart(line int) (int, error) {
	if line < 1 || line > d.LineCount() {
		return 0, &OutOfRangeError{What: "line", Value: line, Max: d.LineCount()}
	}
	return d.lineChars[line-1], nil
}

// lineSpan returns the character range of line, newline excluded.
func (d *Document) lineSpan(line int) (start, end int, ok bool) {
	if line < 1 || line > d.LineCount() {
		return 0, 0, false
	}
	start = d.lineChars[line-1]
	end = len(d.runes)
	if line < d.LineCount() {
		end = d.lineChars[line] - 1
	}
	return start, end, true
}

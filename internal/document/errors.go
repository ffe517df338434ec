package document

import (
	"errors"
	"fmt"
)

var (
	// ErrIO matches every failure to open, stat or map a file.
	ErrIO = errors.New("document: io error")
	// ErrDecode matches content that is not valid UTF-8.
	ErrDecode = errors.New("document: invalid utf-8")
	// ErrOutOfRange matches offsets and positions outside the document.
	ErrOutOfRange = errors.New("document: position out of range")
)

// IOError reports a failed file operation.
type IOError struct {
	Op   string // open, stat, mmap
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes both ErrIO and the underlying cause, so
// errors.Is(err, fs.ErrNotExist) keeps working.
func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

// DecodeError reports the first invalid UTF-8 sequence in a file.
type DecodeError struct {
	Path   string
	Offset int // byte offset into the file
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: invalid utf-8 at byte %d", e.Path, e.Offset)
}

func (e *DecodeError) Unwrap() error { return ErrDecode }

// OutOfRangeError reports an address outside the document.
type OutOfRangeError struct {
	What  string // offset, line, column
	Value int
	Max   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %d out of range [0, %d]", e.What, e.Value, e.Max)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

package search

import (
	"errors"
	"fmt"
)

var (
	// ErrPattern matches every search term the engine could not run.
	ErrPattern = errors.New("search: bad pattern")
	// ErrTimeout is the cause of a PatternError raised by a match timeout.
	ErrTimeout = errors.New("match timeout")
)

// PatternError reports a term that failed to compile or ran past the
// match timeout.
type PatternError struct {
	Term    string
	Timeout bool
	Err     error
}

func (e *PatternError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("search for %q timed out", e.Term)
	}
	return fmt.Sprintf("invalid pattern %q: %v", e.Term, e.Err)
}

func (e *PatternError) Unwrap() []error {
	return []error{ErrPattern, e.Err}
}

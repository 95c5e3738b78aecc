package patgen

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a Generate call named a pattern the registry does
// not hold.
var ErrNotFound = errors.New("patgen: pattern not found")

// CompileError reports a malformed pattern. Pos is the byte offset of the
// offending character, or the pattern length when the problem is at end
// of input.
type CompileError struct {
	Pos int
	Msg string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error at %d: %s", e.Pos, e.Msg)
}

// LineError reports a malformed definition line.
type LineError struct {
	Line int
	Msg  string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

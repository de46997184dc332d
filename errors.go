// SPDX-License-Identifier: MIT

package almanac

import (
	"errors"
	"fmt"
)

// Sentinel errors carried by ParseError.Err.
var (
	// ErrMalformedNumber indicates a field that is not a base-10 int64, a rule
	// without exactly three fields, or a seed range or rule that overflows int64.
	ErrMalformedNumber = errors.New("almanac: malformed number")

	// ErrMalformedHeader indicates a block key other than "seeds" or
	// "<from>-to-<to> map", or a line outside any block.
	ErrMalformedHeader = errors.New("almanac: malformed header")

	// ErrOddSeeds indicates a seed line that cannot be paired into ranges.
	ErrOddSeeds = errors.New("almanac: odd number of seed values")

	// ErrMissingSeeds indicates an input without a seeds block.
	ErrMissingSeeds = errors.New("almanac: missing seeds")
)

// ParseError locates a problem in the input. Line is 1-based; 0 means the
// problem concerns the input as a whole.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%v: %s", e.Err, e.Msg)
	}

	return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(line int, err error, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...), Err: err}
}

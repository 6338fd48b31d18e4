package parser

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrSyntax matches every *SyntaxError through errors.Is.
	ErrSyntax = errors.New("syntax error")

	// ErrRange matches every *RangeError through errors.Is.
	ErrRange = errors.New("range error")
)

// SyntaxError reports a token that does not fit the grammar.
type SyntaxError struct {
	Expected string // name of the expected token kind(s)
	Found    string // literal of the offending token, empty at end of input
	Input    string
	Position int // byte offset of the offending token, -1 at end of input
	AtEnd    bool
}

func (e *SyntaxError) Error() string {
	found := "end of string."
	if !e.AtEnd {
		found = `"` + e.Found + `"`
	}

	return fmt.Sprintf(`[Syntax Error] line 0, col %d: Error: Expected %s, got %s in value "%s"`,
		e.Position, e.Expected, found, e.Input)
}

// Is makes errors.Is(err, ErrSyntax) true.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// RangeError reports a well formed value outside of its legal bounds.
type RangeError struct {
	Field   string // Degrees, Minutes or Seconds
	Input   string
	Low     float64
	High    float64
	HasLow  bool
	HasHigh bool
}

func (e *RangeError) Error() string {
	var bound string
	switch {
	case e.HasLow && e.HasHigh:
		bound = "out of range " + formatBound(e.Low) + " to " + formatBound(e.High)
	case e.HasHigh:
		bound = "greater than " + formatBound(e.High)
	default:
		bound = "out of range"
	}

	return fmt.Sprintf(`[Range Error] Error: %s %s in value "%s"`, e.Field, bound, e.Input)
}

// Is makes errors.Is(err, ErrRange) true.
func (e *RangeError) Is(target error) bool {
	return target == ErrRange
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

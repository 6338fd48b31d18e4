// Package coordparse converts geographic coordinate text into signed
// decimal degrees.
//
// Accepted forms include decimal degrees (40.4738°), degrees, minutes and
// seconds (40° 26' 46" N), colon notation (40:26:46N), a leading sign
// (-79.5852) and pairs separated by a comma or whitespace
// (40° N 79° W, "40, 79").
package coordparse

import (
	"github.com/woozymasta/coordparse/internal/lexer"
	"github.com/woozymasta/coordparse/internal/parser"
)

type (
	// Coordinate is a parsed value together with the axis its cardinal letter implied.
	Coordinate = parser.Coordinate

	// Axis identifies latitude or longitude.
	Axis = parser.Axis

	// SyntaxError reports input that does not follow the coordinate grammar.
	SyntaxError = parser.SyntaxError

	// RangeError reports minutes, seconds or degrees outside their bounds.
	RangeError = parser.RangeError

	// Kind is the type of a lexical token.
	Kind = lexer.Kind
)

const (
	AxisUnknown   = parser.AxisUnknown
	AxisLatitude  = parser.AxisLatitude
	AxisLongitude = parser.AxisLongitude
)

// Token kinds named in syntax errors.
const (
	KindNone        = lexer.KindNone
	KindInteger     = lexer.KindInteger
	KindFloat       = lexer.KindFloat
	KindCardinalLat = lexer.KindCardinalLat
	KindCardinalLon = lexer.KindCardinalLon
	KindComma       = lexer.KindComma
	KindPlus        = lexer.KindPlus
	KindMinus       = lexer.KindMinus
	KindPeriod      = lexer.KindPeriod
	KindColon       = lexer.KindColon
	KindApostrophe  = lexer.KindApostrophe
	KindQuote       = lexer.KindQuote
	KindDegree      = lexer.KindDegree
)

var (
	ErrSyntax = parser.ErrSyntax
	ErrRange  = parser.ErrRange
)

// Parse returns one value, or two for a pair, in signed decimal degrees.
func Parse(input string) ([]float64, error) {
	return parser.Parse(input)
}

// ParseCoordinates is like Parse but also reports the axis of each value.
func ParseCoordinates(input string) ([]Coordinate, error) {
	return parser.ParseCoordinates(input)
}

// Literal returns the name of a token kind as used in syntax errors.
func Literal(kind Kind) string {
	return lexer.Literal(kind)
}

// Package parser turns coordinate text into signed decimal degrees.
//
// The grammar accepts decimal degrees, degrees-minutes-seconds with
// symbols (40° 26' 46"), sexagesimal colon notation (40:26:46), an
// optional sign or cardinal letter, and either one value or a pair:
//
//	point      := coordinate (","? coordinate)?
//	coordinate := sign? degrees cardinal?
//	degrees    := FLOAT "°"? | INTEGER symbol? minutes?
//	minutes    := INTEGER symbol seconds? | FLOAT "'"
//	seconds    := (INTEGER | FLOAT) symbol?
//
// A pair is either annotated with cardinal letters on both values, one
// per axis, or not at all.
package parser

import (
	"strings"

	"github.com/woozymasta/coordparse/internal/lexer"
)

// Axis is the geographic axis a coordinate was bound to by its cardinal letter.
type Axis uint8

const (
	AxisUnknown Axis = iota
	AxisLatitude
	AxisLongitude
)

func (a Axis) String() string {
	switch a {
	case AxisLatitude:
		return "latitude"
	case AxisLongitude:
		return "longitude"
	default:
		return "unknown"
	}
}

// Limit returns the largest legal magnitude on the axis, or 0 if unknown.
func (a Axis) Limit() float64 {
	switch a {
	case AxisLatitude:
		return 90
	case AxisLongitude:
		return 180
	default:
		return 0
	}
}

// Coordinate is a single parsed value in signed decimal degrees.
type Coordinate struct {
	Value float64
	Axis  Axis
}

// cardinalRule constrains the cardinal letter of the next coordinate.
type cardinalRule uint8

const (
	cardinalAny cardinalRule = iota
	cardinalForbidden
	cardinalLat
	cardinalLon
)

func (r cardinalRule) required() bool {
	return r == cardinalLat || r == cardinalLon
}

// symbolRule tracks which separator the next number must be followed by.
type symbolRule uint8

const (
	symbolAny symbolRule = iota
	symbolForbidden
	symbolColon
	symbolDegree
	symbolApostrophe
	symbolQuote
)

// Parser is a recursive descent parser over a single input string.
// It is not safe for concurrent use.
type Parser struct {
	lexer *lexer.Lexer
	input string

	nextCardinal cardinalRule
	nextSymbol   symbolRule
}

// New creates a parser for input.
func New(input string) *Parser {
	return &Parser{
		input: input,
		lexer: lexer.New(input),
	}
}

// Parse consumes the whole input and returns one or two coordinates.
// Errors are *SyntaxError or *RangeError.
func (p *Parser) Parse() ([]Coordinate, error) {
	p.lexer.SetInput(p.input)
	p.nextCardinal = cardinalAny
	p.nextSymbol = symbolAny

	return p.point()
}

// Parse returns the signed decimal degree values found in input.
func Parse(input string) ([]float64, error) {
	coords, err := New(input).Parse()
	if err != nil {
		return nil, err
	}

	values := make([]float64, len(coords))
	for i, c := range coords {
		values[i] = c.Value
	}

	return values, nil
}

// ParseCoordinates is like Parse but keeps the axis of each value.
func ParseCoordinates(input string) ([]Coordinate, error) {
	return New(input).Parse()
}

func (p *Parser) point() ([]Coordinate, error) {
	x, err := p.coordinate()
	if err != nil {
		return nil, err
	}

	if _, ok := p.lexer.Peek(); !ok {
		return []Coordinate{x}, nil
	}

	if p.lexer.IsNext(lexer.KindComma) {
		p.lexer.MoveNext()
	}

	y, err := p.coordinate()
	if err != nil {
		return nil, err
	}

	if _, ok := p.lexer.Peek(); ok {
		return nil, p.syntaxError("end of string")
	}

	return []Coordinate{x, y}, nil
}

func (p *Parser) coordinate() (Coordinate, error) {
	var sign float64

	// a required cardinal letter carries the sign
	if !p.nextCardinal.required() && p.lexer.IsNextAny(lexer.KindPlus, lexer.KindMinus) {
		sign = 1
		if p.lexer.IsNext(lexer.KindMinus) {
			sign = -1
		}
		p.lexer.MoveNext()
	}

	degrees, err := p.degrees()
	if err != nil {
		return Coordinate{}, err
	}

	if sign == 0 {
		if p.nextCardinal.required() ||
			(p.nextCardinal == cardinalAny && p.lexer.IsNextAny(lexer.KindCardinalLat, lexer.KindCardinalLon)) {
			return p.cardinal(degrees)
		}
		sign = 1
	}

	p.nextCardinal = cardinalForbidden

	return Coordinate{Value: sign * degrees}, nil
}

func (p *Parser) degrees() (float64, error) {
	// each value of a pair restarts the degree, minute, second progression
	if p.nextSymbol == symbolApostrophe || p.nextSymbol == symbolQuote {
		p.nextSymbol = symbolDegree
	}

	// fractional degrees can't have minutes
	if p.lexer.IsNext(lexer.KindFloat) {
		tok, _ := p.match(lexer.KindFloat)
		if p.lexer.IsNext(lexer.KindDegree) {
			p.lexer.MoveNext()
			p.nextSymbol = symbolDegree
		}

		return tok.Number, nil
	}

	tok, err := p.match(lexer.KindInteger)
	if err != nil {
		return 0, err
	}
	degrees := tok.Number

	matched, err := p.symbol()
	if err != nil {
		return 0, err
	}
	if !matched {
		return degrees, nil
	}

	// "40° 79.5°": the number belongs to the next value of a space separated pair
	if p.nextSymbol != symbolColon && p.startsNextCoordinate() {
		return degrees, nil
	}

	minutes, err := p.minutes()
	if err != nil {
		return 0, err
	}

	return degrees + minutes, nil
}

func (p *Parser) minutes() (float64, error) {
	if p.nextSymbol == symbolColon || p.lexer.IsNext(lexer.KindInteger) {
		tok, err := p.match(lexer.KindInteger)
		if err != nil {
			return 0, err
		}
		if tok.Number > 60 {
			return 0, p.rangeError("Minutes", 60)
		}
		minutes := tok.Number / 60

		// 40:26 has no seconds
		if p.nextSymbol == symbolColon && !p.lexer.IsNext(lexer.KindColon) {
			return minutes, nil
		}

		if _, err := p.symbol(); err != nil {
			return 0, err
		}

		seconds, err := p.seconds()
		if err != nil {
			return 0, err
		}

		return minutes + seconds, nil
	}

	if p.lexer.IsNext(lexer.KindFloat) {
		tok, _ := p.match(lexer.KindFloat)
		if tok.Number > 60 {
			return 0, p.rangeError("Minutes", 60)
		}

		if _, err := p.match(lexer.KindApostrophe); err != nil {
			return 0, err
		}

		return tok.Number / 60, nil
	}

	return 0, nil
}

func (p *Parser) seconds() (float64, error) {
	if !p.lexer.IsNextAny(lexer.KindInteger, lexer.KindFloat) || p.startsNextCoordinate() {
		return 0, nil
	}

	tok := p.number()
	if tok.Number > 60 {
		return 0, p.rangeError("Seconds", 60)
	}

	if p.nextSymbol != symbolColon {
		if _, err := p.symbol(); err != nil {
			return 0, err
		}
	}

	return tok.Number / 3600, nil
}

// symbol matches the separator required by the current notation.
// It reports false when no symbol is expected.
func (p *Parser) symbol() (bool, error) {
	switch p.nextSymbol {
	case symbolColon:
		return p.expect(lexer.KindColon)

	case symbolDegree:
		p.nextSymbol = symbolApostrophe
		return p.expect(lexer.KindDegree)

	case symbolApostrophe:
		p.nextSymbol = symbolQuote
		return p.expect(lexer.KindApostrophe)

	case symbolQuote:
		return p.expect(lexer.KindQuote)

	case symbolAny:
		if p.lexer.IsNext(lexer.KindColon) {
			p.nextSymbol = symbolColon
			p.lexer.MoveNext()
			return true, nil
		}

		if p.lexer.IsNext(lexer.KindDegree) {
			p.nextSymbol = symbolApostrophe
			p.lexer.MoveNext()
			return true, nil
		}

		p.nextSymbol = symbolForbidden
	}

	return false, nil
}

func (p *Parser) cardinal(degrees float64) (Coordinate, error) {
	kind := lexer.KindCardinalLat
	switch p.nextCardinal {
	case cardinalLon:
		kind = lexer.KindCardinalLon
	case cardinalAny:
		if p.lexer.IsNext(lexer.KindCardinalLon) {
			kind = lexer.KindCardinalLon
		}
	}

	tok, err := p.match(kind)
	if err != nil {
		return Coordinate{}, err
	}

	sign := 1.0
	axis := AxisLatitude
	p.nextCardinal = cardinalLon

	switch strings.ToUpper(tok.Value) {
	case "S":
		sign = -1
	case "W":
		sign = -1
		axis = AxisLongitude
		p.nextCardinal = cardinalLat
	case "E":
		axis = AxisLongitude
		p.nextCardinal = cardinalLat
	}

	if limit := axis.Limit(); degrees > limit {
		return Coordinate{}, &RangeError{
			Field:   "Degrees",
			Input:   p.input,
			Low:     -limit,
			High:    limit,
			HasLow:  true,
			HasHigh: true,
		}
	}

	return Coordinate{Value: sign * degrees, Axis: axis}, nil
}

func (p *Parser) number() lexer.Token {
	if p.lexer.IsNext(lexer.KindFloat) {
		tok, _ := p.match(lexer.KindFloat)
		return tok
	}

	tok, _ := p.match(lexer.KindInteger)
	return tok
}

// startsNextCoordinate reports whether the lookahead is a number followed
// by a degree symbol.
func (p *Parser) startsNextCoordinate() bool {
	next, ok := p.lexer.Peek()
	if !ok || !next.IsNumber() {
		return false
	}

	after, ok := p.lexer.Glimpse()

	return ok && after.Kind == lexer.KindDegree
}

func (p *Parser) match(kind lexer.Kind) (lexer.Token, error) {
	if !p.lexer.IsNext(kind) {
		return lexer.Token{}, p.syntaxError(lexer.Literal(kind))
	}

	p.lexer.MoveNext()

	return p.lexer.Token(), nil
}

func (p *Parser) expect(kind lexer.Kind) (bool, error) {
	if _, err := p.match(kind); err != nil {
		return false, err
	}

	return true, nil
}

func (p *Parser) syntaxError(expected string) error {
	tok, ok := p.lexer.Peek()

	return &SyntaxError{
		Expected: expected,
		Found:    tok.Value,
		Position: tok.Position,
		AtEnd:    !ok,
		Input:    p.input,
	}
}

func (p *Parser) rangeError(field string, high float64) error {
	return &RangeError{
		Field:   field,
		Input:   p.input,
		High:    high,
		HasHigh: true,
	}
}

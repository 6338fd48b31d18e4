// Package lexer tokenizes geographic coordinate strings.
package lexer

// Kind identifies the type of a token.
type Kind uint8

const (
	KindNone Kind = iota
	KindInteger
	KindFloat
	KindCardinalLat // N, S
	KindCardinalLon // E, W
	KindComma
	KindPlus
	KindMinus
	KindPeriod
	KindColon
	KindApostrophe // ' or prime
	KindQuote      // " or double prime
	KindDegree
)

var kindNames = [...]string{
	KindNone:        "KindNone",
	KindInteger:     "KindInteger",
	KindFloat:       "KindFloat",
	KindCardinalLat: "KindCardinalLat",
	KindCardinalLon: "KindCardinalLon",
	KindComma:       "KindComma",
	KindPlus:        "KindPlus",
	KindMinus:       "KindMinus",
	KindPeriod:      "KindPeriod",
	KindColon:       "KindColon",
	KindApostrophe:  "KindApostrophe",
	KindQuote:       "KindQuote",
	KindDegree:      "KindDegree",
}

// String returns the qualified name of the kind, e.g. "lexer.KindDegree".
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return "lexer." + kindNames[k]
	}

	return "lexer.Kind(?)"
}

// Literal returns the human readable name of a token kind.
// It is only used to build error messages.
func Literal(k Kind) string {
	return k.String()
}

// Token is a lexical unit of the input.
type Token struct {
	Value    string  // source text
	Number   float64 // parsed value of KindInteger and KindFloat
	Position int     // byte offset in input
	Kind     Kind
}

// IsNumber reports whether the token is an integer or float literal.
func (t Token) IsNumber() bool {
	return t.Kind == KindInteger || t.Kind == KindFloat
}

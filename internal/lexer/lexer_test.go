package lexer_test

import (
	"testing"

	"github.com/woozymasta/coordparse/internal/lexer"
)

type tokenCase struct {
	name     string
	input    string
	expected []lexer.Token
}

func tok(kind lexer.Kind, value string, pos int) lexer.Token {
	return lexer.Token{Kind: kind, Value: value, Position: pos}
}

func num(kind lexer.Kind, value string, n float64, pos int) lexer.Token {
	return lexer.Token{Kind: kind, Value: value, Number: n, Position: pos}
}

var tokenCases = []tokenCase{
	{
		name:     "integer",
		input:    "15",
		expected: []lexer.Token{num(lexer.KindInteger, "15", 15, 0)},
	},
	{
		name:     "exponent upper",
		input:    "1E5",
		expected: []lexer.Token{num(lexer.KindFloat, "1E5", 100000, 0)},
	},
	{
		name:     "exponent lower",
		input:    "1e5",
		expected: []lexer.Token{num(lexer.KindFloat, "1e5", 100000, 0)},
	},
	{
		name:     "fraction and exponent",
		input:    "1.5E5",
		expected: []lexer.Token{num(lexer.KindFloat, "1.5E5", 150000, 0)},
	},
	{
		name:     "negative exponent",
		input:    "1E-5",
		expected: []lexer.Token{num(lexer.KindFloat, "1E-5", 0.00001, 0)},
	},
	{
		name:  "east is not an exponent",
		input: "79E",
		expected: []lexer.Token{
			num(lexer.KindInteger, "79", 79, 0),
			tok(lexer.KindCardinalLon, "E", 2),
		},
	},
	{
		name:  "dms with spaces",
		input: `40° 26' 46" N`,
		expected: []lexer.Token{
			num(lexer.KindInteger, "40", 40, 0),
			tok(lexer.KindDegree, "°", 2),
			num(lexer.KindInteger, "26", 26, 5),
			tok(lexer.KindApostrophe, "'", 7),
			num(lexer.KindInteger, "46", 46, 9),
			tok(lexer.KindQuote, `"`, 11),
			tok(lexer.KindCardinalLat, "N", 13),
		},
	},
	{
		name:  "dms pair",
		input: `40° 26' 46" N 79° 58' 56" W`,
		expected: []lexer.Token{
			num(lexer.KindInteger, "40", 40, 0),
			tok(lexer.KindDegree, "°", 2),
			num(lexer.KindInteger, "26", 26, 5),
			tok(lexer.KindApostrophe, "'", 7),
			num(lexer.KindInteger, "46", 46, 9),
			tok(lexer.KindQuote, `"`, 11),
			tok(lexer.KindCardinalLat, "N", 13),
			num(lexer.KindInteger, "79", 79, 15),
			tok(lexer.KindDegree, "°", 17),
			num(lexer.KindInteger, "58", 58, 20),
			tok(lexer.KindApostrophe, "'", 22),
			num(lexer.KindInteger, "56", 56, 24),
			tok(lexer.KindQuote, `"`, 26),
			tok(lexer.KindCardinalLon, "W", 28),
		},
	},
	{
		name:  "dms pair with comma and no spaces",
		input: `40°26'46"N, 79°58'56"W`,
		expected: []lexer.Token{
			num(lexer.KindInteger, "40", 40, 0),
			tok(lexer.KindDegree, "°", 2),
			num(lexer.KindInteger, "26", 26, 4),
			tok(lexer.KindApostrophe, "'", 6),
			num(lexer.KindInteger, "46", 46, 7),
			tok(lexer.KindQuote, `"`, 9),
			tok(lexer.KindCardinalLat, "N", 10),
			tok(lexer.KindComma, ",", 11),
			num(lexer.KindInteger, "79", 79, 13),
			tok(lexer.KindDegree, "°", 15),
			num(lexer.KindInteger, "58", 58, 17),
			tok(lexer.KindApostrophe, "'", 19),
			num(lexer.KindInteger, "56", 56, 20),
			tok(lexer.KindQuote, `"`, 22),
			tok(lexer.KindCardinalLon, "W", 23),
		},
	},
	{
		name:  "decimal degrees with sign and tab",
		input: "40.4738° \t -79.553°",
		expected: []lexer.Token{
			num(lexer.KindFloat, "40.4738", 40.4738, 0),
			tok(lexer.KindDegree, "°", 7),
			tok(lexer.KindMinus, "-", 12),
			num(lexer.KindFloat, "79.553", 79.553, 13),
			tok(lexer.KindDegree, "°", 19),
		},
	},
	{
		name:  "primes",
		input: "40°26′46″s",
		expected: []lexer.Token{
			num(lexer.KindInteger, "40", 40, 0),
			tok(lexer.KindDegree, "°", 2),
			num(lexer.KindInteger, "26", 26, 4),
			tok(lexer.KindApostrophe, "′", 6),
			num(lexer.KindInteger, "46", 46, 9),
			tok(lexer.KindQuote, "″", 11),
			tok(lexer.KindCardinalLat, "s", 14),
		},
	},
	{
		name:  "colon form",
		input: "+79:56:55w",
		expected: []lexer.Token{
			tok(lexer.KindPlus, "+", 0),
			num(lexer.KindInteger, "79", 79, 1),
			tok(lexer.KindColon, ":", 3),
			num(lexer.KindInteger, "56", 56, 4),
			tok(lexer.KindColon, ":", 6),
			num(lexer.KindInteger, "55", 55, 7),
			tok(lexer.KindCardinalLon, "w", 9),
		},
	},
	{
		name:  "unknown runs",
		input: "40 xyz.5 ?",
		expected: []lexer.Token{
			num(lexer.KindInteger, "40", 40, 0),
			tok(lexer.KindNone, "xyz", 3),
			tok(lexer.KindPeriod, ".", 6),
			num(lexer.KindInteger, "5", 5, 7),
			tok(lexer.KindNone, "?", 9),
		},
	},
	{
		name:     "blank",
		input:    "  \t ",
		expected: nil,
	},
}

func collect(l *lexer.Lexer) []lexer.Token {
	var out []lexer.Token
	for l.MoveNext() {
		out = append(out, l.Token())
	}
	return out
}

func assertTokens(t *testing.T, expected, got []lexer.Token) {
	t.Helper()

	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("token %d: expected %+v, got %+v", i, expected[i], got[i])
		}
	}
}

func TestLexer(t *testing.T) {
	for _, tt := range tokenCases {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, tt.expected, collect(lexer.New(tt.input)))
		})
	}
}

func TestLexerReuse(t *testing.T) {
	l := lexer.New("")

	for _, tt := range tokenCases {
		l.SetInput(tt.input)
		assertTokens(t, tt.expected, collect(l))
	}
}

func TestLexerResetDropsLookahead(t *testing.T) {
	l := lexer.New("40 79")
	if _, ok := l.Glimpse(); !ok {
		t.Fatal("expected a second token")
	}

	l.SetInput("N")
	got, ok := l.Peek()
	if !ok || got.Kind != lexer.KindCardinalLat || got.Position != 0 {
		t.Fatalf("unexpected lookahead after reset: %+v", got)
	}
	if _, ok := l.Glimpse(); ok {
		t.Fatal("expected no second token after reset")
	}
	if l.Token().Position != -1 {
		t.Errorf("expected no consumed token after reset, got %+v", l.Token())
	}
}

func TestPeekAndGlimpse(t *testing.T) {
	l := lexer.New(`40° 26'`)

	for i := 0; i < 3; i++ {
		peek, _ := l.Peek()
		glimpse, _ := l.Glimpse()
		if peek.Kind != lexer.KindInteger || glimpse.Kind != lexer.KindDegree {
			t.Fatalf("peek/glimpse must not consume: %v %v", peek.Kind, glimpse.Kind)
		}
	}

	if !l.MoveNext() || l.Token().Number != 40 {
		t.Fatalf("expected to consume 40, got %+v", l.Token())
	}
	if !l.IsNext(lexer.KindDegree) {
		t.Error("expected degree lookahead")
	}
	if !l.IsNextAny(lexer.KindColon, lexer.KindDegree) {
		t.Error("expected degree among lookahead kinds")
	}

	l.MoveNext()
	l.MoveNext()
	if glimpse, ok := l.Glimpse(); ok {
		t.Errorf("expected end of input after apostrophe, got %+v", glimpse)
	}
	if peek, ok := l.Peek(); !ok || peek.Kind != lexer.KindApostrophe {
		t.Errorf("expected apostrophe lookahead, got %+v", peek)
	}

	l.MoveNext()
	if l.MoveNext() {
		t.Error("MoveNext past end of input must report false")
	}
	if l.IsNext(lexer.KindNone) {
		t.Error("IsNext must be false at end of input")
	}
}

func TestLiteral(t *testing.T) {
	tests := map[lexer.Kind]string{
		lexer.KindCardinalLon: "lexer.KindCardinalLon",
		lexer.KindDegree:      "lexer.KindDegree",
		lexer.KindInteger:     "lexer.KindInteger",
		lexer.Kind(200):       "lexer.Kind(?)",
	}

	for kind, want := range tests {
		if got := lexer.Literal(kind); got != want {
			t.Errorf("Literal(%d) = %q, want %q", kind, got, want)
		}
	}
}

func TestLexerZeroAlloc(t *testing.T) {
	const src = `40° 26' 46" N, 79:58:56.5W`
	l := lexer.New(src)

	allocs := testing.AllocsPerRun(10, func() {
		l.SetInput(src)
		for l.MoveNext() {
			_, _ = l.Glimpse()
		}
	})

	if allocs > 0 {
		t.Errorf("expected 0 allocations, got %f", allocs)
	}
}

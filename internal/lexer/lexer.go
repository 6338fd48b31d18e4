package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// lookahead is the number of tokens the lexer can buffer ahead of the cursor.
const lookahead = 2

// Lexer produces tokens on demand from a coordinate string.
// At most two tokens are buffered: the lookahead and the one after it.
type Lexer struct {
	input  string
	cursor int

	ring [lookahead]Token
	head int // ring index of the lookahead token
	size int // buffered tokens

	token Token // last consumed token
}

// New creates a lexer over input.
func New(input string) *Lexer {
	l := &Lexer{}
	l.SetInput(input)
	return l
}

// SetInput re-arms the lexer with a new input, dropping any buffered tokens.
func (l *Lexer) SetInput(input string) {
	l.input = input
	l.cursor = 0
	l.head = 0
	l.size = 0
	l.token = Token{Position: -1}
}

// Input returns the string being tokenized.
func (l *Lexer) Input() string {
	return l.input
}

// Peek returns the next unconsumed token.
// The second return value is false at the end of input.
func (l *Lexer) Peek() (Token, bool) {
	if l.fill(1) < 1 {
		return Token{Position: -1}, false
	}

	return l.ring[l.head], true
}

// Glimpse returns the token after the lookahead without consuming anything.
func (l *Lexer) Glimpse() (Token, bool) {
	if l.fill(2) < 2 {
		return Token{Position: -1}, false
	}

	return l.ring[(l.head+1)%lookahead], true
}

// MoveNext consumes the lookahead token, which then becomes available
// through Token. It returns false if the input is exhausted.
func (l *Lexer) MoveNext() bool {
	if l.fill(1) < 1 {
		return false
	}

	l.token = l.ring[l.head]
	l.head = (l.head + 1) % lookahead
	l.size--

	return true
}

// Token returns the most recently consumed token.
func (l *Lexer) Token() Token {
	return l.token
}

// IsNext reports whether the lookahead token is of the given kind.
func (l *Lexer) IsNext(kind Kind) bool {
	tok, ok := l.Peek()
	return ok && tok.Kind == kind
}

// IsNextAny reports whether the lookahead token is of any of the given kinds.
func (l *Lexer) IsNextAny(kinds ...Kind) bool {
	tok, ok := l.Peek()
	if !ok {
		return false
	}

	for _, kind := range kinds {
		if tok.Kind == kind {
			return true
		}
	}

	return false
}

// fill scans until n tokens are buffered or the input ends.
func (l *Lexer) fill(n int) int {
	for l.size < n {
		tok, ok := l.scan()
		if !ok {
			break
		}

		l.ring[(l.head+l.size)%lookahead] = tok
		l.size++
	}

	return l.size
}

// scan reads one token at the cursor.
func (l *Lexer) scan() (Token, bool) {
	for l.cursor < len(l.input) {
		r, w := utf8.DecodeRuneInString(l.input[l.cursor:])
		if !unicode.IsSpace(r) {
			break
		}
		l.cursor += w
	}

	if l.cursor >= len(l.input) {
		return Token{}, false
	}

	start := l.cursor
	r, w := utf8.DecodeRuneInString(l.input[start:])

	if isDigit(l.input[start]) {
		return l.scanNumber(start), true
	}

	if kind, ok := symbolKind(r); ok {
		l.cursor += w
		return Token{Kind: kind, Value: l.input[start:l.cursor], Position: start}, true
	}

	// Anything else is swallowed up to the next recognizable character.
	l.cursor += w
	for l.cursor < len(l.input) {
		r, w = utf8.DecodeRuneInString(l.input[l.cursor:])
		if unicode.IsSpace(r) || isDigit(l.input[l.cursor]) {
			break
		}
		if _, ok := symbolKind(r); ok {
			break
		}
		l.cursor += w
	}

	return Token{Kind: KindNone, Value: l.input[start:l.cursor], Position: start}, true
}

// scanNumber matches [0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?
func (l *Lexer) scanNumber(start int) Token {
	kind := KindInteger
	l.skipDigits()

	if l.cursor+1 < len(l.input) && l.input[l.cursor] == '.' && isDigit(l.input[l.cursor+1]) {
		l.cursor++
		l.skipDigits()
		kind = KindFloat
	}

	if l.cursor < len(l.input) && (l.input[l.cursor] == 'e' || l.input[l.cursor] == 'E') {
		i := l.cursor + 1
		if i < len(l.input) && (l.input[i] == '+' || l.input[i] == '-') {
			i++
		}
		// without digits the letter is a cardinal direction (E)
		if i < len(l.input) && isDigit(l.input[i]) {
			l.cursor = i
			l.skipDigits()
			kind = KindFloat
		}
	}

	text := l.input[start:l.cursor]
	// the text is well formed, only overflow can fail and that yields ±Inf
	n, _ := strconv.ParseFloat(text, 64)

	return Token{Kind: kind, Value: text, Number: n, Position: start}
}

func (l *Lexer) skipDigits() {
	for l.cursor < len(l.input) && isDigit(l.input[l.cursor]) {
		l.cursor++
	}
}

func symbolKind(r rune) (Kind, bool) {
	switch r {
	case '\'', '′':
		return KindApostrophe, true
	case '"', '″':
		return KindQuote, true
	case ',':
		return KindComma, true
	case '-':
		return KindMinus, true
	case '+':
		return KindPlus, true
	case ':':
		return KindColon, true
	case '.':
		return KindPeriod, true
	case '°':
		return KindDegree, true
	case 'N', 'n', 'S', 's':
		return KindCardinalLat, true
	case 'E', 'e', 'W', 'w':
		return KindCardinalLon, true
	}

	return KindNone, false
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

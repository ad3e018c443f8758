package json

import (
	"github.com/mabhi256/havbench/internal/diag"
)

// Tokenizer scans a ByteView into a sequence of Tokens. It never
// throws: failures come back as a diag.Error, which Next wraps in a
// diag.Result.
type Tokenizer struct {
	view ByteView
	loc  Location
}

// NewTokenizer starts scanning view from the beginning.
func NewTokenizer(view ByteView) *Tokenizer {
	return &Tokenizer{view: view, loc: StartLocation()}
}

// Location returns the tokenizer's current position.
func (t *Tokenizer) Location() Location {
	return t.loc
}

// Next scans and returns the next token, advancing internal state.
func (t *Tokenizer) Next() diag.Result[Token] {
	tok, next, err := NextToken(t.view, t.loc)
	if err != nil {
		return diag.Fail[Token](err)
	}
	t.loc = next
	return diag.Ok(tok)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\f'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func skipWhitespace(view ByteView, loc Location) Location {
	for loc.Position < view.Len() && isSpace(view.At(loc.Position)) {
		loc = loc.Advance(view.At(loc.Position))
	}
	return loc
}

// NextToken implements the tokenizer contract of spec §4.C: given a
// view and a starting location, it returns either one token and the
// location just past it, or a diagnostic error. Whitespace is skipped
// before the token is scanned.
func NextToken(view ByteView, loc Location) (Token, Location, *diag.Error) {
	loc = skipWhitespace(view, loc)

	if !view.InBounds(loc.Position) {
		return Token{}, loc, diag.Newf("Unexpected end of input at location %s", loc)
	}

	start := loc
	b := view.At(loc.Position)

	switch b {
	case '{':
		return singleByteToken(OpenObject, b, start), loc.Advance(b), nil
	case '}':
		return singleByteToken(CloseObject, b, start), loc.Advance(b), nil
	case '[':
		return singleByteToken(OpenArray, b, start), loc.Advance(b), nil
	case ']':
		return singleByteToken(CloseArray, b, start), loc.Advance(b), nil
	case ':':
		return singleByteToken(Assign, b, start), loc.Advance(b), nil
	case ',':
		return singleByteToken(Separator, b, start), loc.Advance(b), nil
	case '"':
		return scanString(view, start)
	case '-':
		return scanNumber(view, start)
	case 't', 'f', 'n':
		return scanKeyword(view, start)
	default:
		if isDigit(b) {
			return scanNumber(view, start)
		}
		return Token{}, loc, diag.Newf("Invalid character '%c' at location %s", b, start)
	}
}

func singleByteToken(kind TokenKind, b byte, start Location) Token {
	return Token{Kind: kind, Start: start, End: start.Advance(b), Op: b}
}

func scanString(view ByteView, start Location) (Token, Location, *diag.Error) {
	i := start.Position + 1 // skip opening quote
	var runes []byte

	for {
		if !view.InBounds(i) {
			return Token{}, start, diag.Newf("Unterminated string starting at location %s", start)
		}
		b := view.At(i)
		switch {
		case b == '"':
			i++
			end := start.AdvanceColumns(i - start.Position)
			return Token{Kind: StringLiteral, Start: start, End: end, Str: string(runes)}, end, nil
		case b == '\\':
			i++
			if !view.InBounds(i) {
				return Token{}, start, diag.Newf("Unterminated escape sequence starting at location %s", start)
			}
			e := view.At(i)
			decoded, ok := decodeEscape(e)
			if !ok {
				loc := start.AdvanceColumns(i - start.Position)
				return Token{}, start, diag.Newf("Invalid escape sequence '\\%c' at location %s", e, loc)
			}
			runes = append(runes, decoded)
			i++
		case isSpace(b) || b == 0x08:
			loc := start.AdvanceColumns(i - start.Position)
			return Token{}, start, diag.Newf("Invalid whitespace byte 0x%02x inside string at location %s", b, loc)
		default:
			runes = append(runes, b)
			i++
		}
	}
}

func decodeEscape(e byte) (byte, bool) {
	switch e {
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	default:
		return 0, false
	}
}

func scanNumber(view ByteView, start Location) (Token, Location, *diag.Error) {
	i := start.Position
	negative := false
	if view.InBounds(i) && view.At(i) == '-' {
		negative = true
		i++
	}

	digitsStart := i
	for view.InBounds(i) && isDigit(view.At(i)) {
		i++
	}
	if i == digitsStart {
		loc := start.AdvanceColumns(i - start.Position)
		return Token{}, start, diag.Newf("Invalid number literal: expected a digit at location %s", loc)
	}

	mantissa := 0.0
	for j := digitsStart; j < i; j++ {
		mantissa = mantissa*10 + float64(view.At(j)-'0')
	}

	kind := IntegerLiteral
	if view.InBounds(i) && view.At(i) == '.' {
		kind = DecimalLiteral
		i++
		fracStart := i
		factor := 0.1
		for view.InBounds(i) && isDigit(view.At(i)) {
			mantissa += factor * float64(view.At(i)-'0')
			factor /= 10
			i++
		}
		if i == fracStart {
			loc := start.AdvanceColumns(i - start.Position)
			return Token{}, start, diag.Newf("Invalid number literal: expected a digit after '.' at location %s", loc)
		}
	}

	if negative {
		mantissa = -mantissa
	}

	end := start.AdvanceColumns(i - start.Position)
	return Token{Kind: kind, Start: start, End: end, Number: mantissa}, end, nil
}

var keywords = []struct {
	literal string
	kind    TokenKind
}{
	{"true", TrueLiteral},
	{"false", FalseLiteral},
	{"null", NullLiteral},
}

func scanKeyword(view ByteView, start Location) (Token, Location, *diag.Error) {
	for _, kw := range keywords {
		if matchesLiteral(view, start.Position, kw.literal) {
			end := start.AdvanceColumns(len(kw.literal))
			return Token{Kind: kw.kind, Start: start, End: end}, end, nil
		}
	}

	end := start.Position
	limit := start.Position + 5
	for end < view.Len() && end < limit && isKeywordByte(view.At(end)) {
		end++
	}
	return Token{}, start, diag.Newf("Unknown keyword '%s' at location %s", string(view.Slice(start.Position, end)), start)
}

func isKeywordByte(b byte) bool {
	return b >= 'a' && b <= 'z'
}

func matchesLiteral(view ByteView, pos int, literal string) bool {
	if pos+len(literal) > view.Len() {
		return false
	}
	for i := 0; i < len(literal); i++ {
		if view.At(pos+i) != literal[i] {
			return false
		}
	}
	return true
}

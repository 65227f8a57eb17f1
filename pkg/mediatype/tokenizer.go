package mediatype

import (
	"fmt"
	"strings"
)

// MaxLength is the hard cap on raw input length in bytes. Longer input is
// rejected before any parsing work so that worst-case validation cost stays
// bounded.
const MaxLength = 255

// Tokenize parses a raw media-type string into a Parsed value. The grammar
// is
//
//	type "/" subtype *( OWS ";" OWS attribute "=" value )
//
// where type, subtype, and attribute are non-empty runs of token
// characters, and value is either a bare token or a double-quoted string
// with backslash escaping of `"` and `\`. Trailing optional whitespace is
// tolerated; leading whitespace is not.
//
// Tokenize never accepts a duplicate attribute name (compared
// case-insensitively). All failures are *RejectError values.
func Tokenize(raw string) (*Parsed, error) {
	if len(raw) > MaxLength {
		return nil, &RejectError{
			Kind:    RejectTooLong,
			Message: fmt.Sprintf("input is %d bytes, limit is %d", len(raw), MaxLength),
		}
	}

	lx := &lexer{input: raw}

	typ, err := lx.readToken("type")
	if err != nil {
		return nil, err
	}
	if lx.eof() {
		return nil, &RejectError{Kind: RejectMalformed, Message: `missing "/" separator`, Token: typ}
	}
	if lx.peek() != '/' {
		return nil, &RejectError{
			Kind:    RejectMalformed,
			Message: `expected "/" after type`,
			Token:   string(lx.peek()),
		}
	}
	lx.pos++

	sub, err := lx.readToken("subtype")
	if err != nil {
		return nil, err
	}

	parsed := &Parsed{Type: typ, Subtype: sub}
	seen := make(map[string]struct{})

	for {
		lx.skipOWS()
		if lx.eof() {
			return parsed, nil
		}
		if lx.peek() != ';' {
			return nil, &RejectError{
				Kind:    RejectMalformed,
				Message: `expected ";" before parameter`,
				Token:   string(lx.peek()),
			}
		}
		lx.pos++
		lx.skipOWS()

		name, err := lx.readToken("parameter name")
		if err != nil {
			return nil, err
		}
		if lx.eof() || lx.peek() != '=' {
			return nil, &RejectError{
				Kind:    RejectMalformed,
				Message: `expected "=" after parameter name`,
				Token:   name,
			}
		}
		lx.pos++

		value, err := lx.readValue(name)
		if err != nil {
			return nil, err
		}

		key := lowerASCII(name)
		if _, dup := seen[key]; dup {
			return nil, &RejectError{
				Kind:    RejectDuplicateParameter,
				Message: "parameter appears more than once",
				Token:   key,
			}
		}
		seen[key] = struct{}{}
		parsed.Params = append(parsed.Params, Param{Name: name, Value: value})
	}
}

// lexer is a byte-level cursor over the raw input. Media types are ASCII;
// the lexer never decodes UTF-8.
type lexer struct {
	input string
	pos   int
}

func (l *lexer) eof() bool  { return l.pos >= len(l.input) }
func (l *lexer) peek() byte { return l.input[l.pos] }

func (l *lexer) skipOWS() {
	for !l.eof() && isOWS(l.peek()) {
		l.pos++
	}
}

// readToken consumes a non-empty run of token characters. what names the
// grammar production for error messages ("type", "subtype", ...).
func (l *lexer) readToken(what string) (string, error) {
	start := l.pos
	for !l.eof() && isTokenChar(l.peek()) {
		l.pos++
	}
	tok := l.input[start:l.pos]
	if tok == "" {
		if !l.eof() && !isDelim(l.peek()) {
			return "", &RejectError{
				Kind:    RejectMalformed,
				Message: "illegal character in " + what,
				Token:   string(l.peek()),
			}
		}
		return "", &RejectError{Kind: RejectMalformed, Message: "empty " + what}
	}
	return tok, nil
}

// readValue consumes a parameter value: a bare token or a quoted string.
func (l *lexer) readValue(name string) (string, error) {
	if !l.eof() && l.peek() == '"' {
		return l.readQuoted(name)
	}
	return l.readToken("parameter value")
}

// readQuoted consumes a double-quoted value starting at the opening quote.
// Backslash escapes the next byte; the closing quote must appear before end
// of input. Only printable ASCII is allowed inside quotes.
func (l *lexer) readQuoted(name string) (string, error) {
	l.pos++ // opening quote
	var sb strings.Builder
	for !l.eof() {
		c := l.peek()
		switch {
		case c == '"':
			l.pos++
			return sb.String(), nil
		case c == '\\':
			l.pos++
			if l.eof() {
				break
			}
			sb.WriteByte(l.peek())
			l.pos++
		case c < 0x20 || c > 0x7e:
			return "", &RejectError{
				Kind:    RejectMalformed,
				Message: "illegal character in quoted value",
				Token:   name,
			}
		default:
			sb.WriteByte(c)
			l.pos++
		}
	}
	return "", &RejectError{
		Kind:    RejectMalformed,
		Message: "unterminated quoted value",
		Token:   name,
	}
}

// isTokenChar reports whether c belongs to the token alphabet: ASCII
// letters, digits, and !#$&-^_.+
func isTokenChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '!', '#', '$', '&', '-', '^', '_', '.', '+':
		return true
	}
	return false
}

func isOWS(c byte) bool { return c == ' ' || c == '\t' }

// isDelim reports whether c is structural punctuation rather than a stray
// byte, used to pick between "empty X" and "illegal character in X".
func isDelim(c byte) bool {
	switch c {
	case '/', ';', '=', '"', ' ', '\t':
		return true
	}
	return false
}

// Package scanner implements a simple lexical scanner for SQL statements
// that contain named placeholders.
//
// The scanner does not understand SQL grammar. It knows just enough
// about quoted literals, delimited identifiers and comments to tell
// whether text that looks like a placeholder is one.
package scanner

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a lexical token for SQL.
type Token int

// Tokens
const (
	ILLEGAL     Token = iota // unexpected character
	EOF                      // End of input
	WS                       // White space
	COMMENT                  // SQL comment
	IDENT                    // identifer, which may be quoted
	LITERAL                  // string or numeric literal
	OP                       // operator
	PLACEHOLDER              // positional placeholder, eg ? or $1
	NAMED                    // named placeholder, eg #{name}
)

func (t Token) String() string {
	switch t {
	case ILLEGAL:
		return "ILLEGAL"
	case EOF:
		return "EOF"
	case WS:
		return "WS"
	case COMMENT:
		return "COMMENT"
	case IDENT:
		return "IDENT"
	case LITERAL:
		return "LITERAL"
	case OP:
		return "OP"
	case PLACEHOLDER:
		return "PLACEHOLDER"
	case NAMED:
		return "NAMED"
	default:
		return fmt.Sprintf("Token-%d", t)
	}
}

const (
	eof                 = rune(0)
	multiCharOperators  = "%&*+-/:<=>^|@!~#"
	singleCharOperators = "(),;{}"
)

// Scanner is a simple lexical scanner for SQL statements.
// Concatenating the text of every token reproduces the input.
type Scanner struct {
	input string
	pos   int
	err   error
}

// New returns a new scanner for the SQL text.
func New(sql string) *Scanner {
	return &Scanner{input: sql}
}

// Err returns the first error encountered by the Scanner.
func (s *Scanner) Err() error {
	return s.err
}

// Scan returns the next SQL token and its text.
func (s *Scanner) Scan() (Token, string) {
	start := s.pos
	ch := s.read()
	switch {
	case ch == eof:
		return EOF, ""
	case isWhitespace(ch):
		return s.scanWhile(start, WS, isWhitespace)
	case ch == '-' && s.peek() == '-':
		return s.scanLineComment(start)
	case ch == '/' && s.peek() == '*':
		return s.scanBlockComment(start)
	case ch == '#' && s.peek() == '{':
		return s.scanNamed(start)
	case ch == '[':
		return s.scanDelimited(start, IDENT, ']')
	case ch == '`' || ch == '"':
		return s.scanDelimited(start, IDENT, ch)
	case ch == '\'':
		return s.scanDelimited(start, LITERAL, ch)
	case strings.ContainsRune("NnXxBb", ch) && s.peek() == '\'':
		s.read()
		return s.scanDelimited(start, LITERAL, '\'')
	case isStartIdent(ch):
		return s.scanWhile(start, IDENT, isIdent)
	case isDigit(ch), ch == '.' && isDigit(s.peek()):
		return s.scanNumber(start)
	case ch == '$' || ch == '?':
		return s.scanPlaceholder(start, ch)
	case strings.ContainsRune(singleCharOperators, ch), ch == '.':
		return OP, s.input[start:s.pos]
	case strings.ContainsRune(multiCharOperators, ch):
		return s.scanOperator(start)
	}
	return s.illegal(start)
}

func (s *Scanner) illegal(start int) (Token, string) {
	text := s.input[start:s.pos]
	if s.err == nil {
		s.err = fmt.Errorf("unrecognised input near %q", text)
	}
	return ILLEGAL, text
}

func (s *Scanner) scanWhile(start int, tok Token, match func(rune) bool) (Token, string) {
	for match(s.peek()) {
		s.read()
	}
	return tok, s.input[start:s.pos]
}

func (s *Scanner) scanLineComment(start int) (Token, string) {
	for {
		ch := s.read()
		if ch == eof || ch == '\n' {
			break
		}
	}
	return COMMENT, s.input[start:s.pos]
}

func (s *Scanner) scanBlockComment(start int) (Token, string) {
	s.read() // '*'
	for {
		ch := s.read()
		if ch == eof {
			return s.illegal(start)
		}
		if ch == '*' && s.peek() == '/' {
			s.read()
			return COMMENT, s.input[start:s.pos]
		}
	}
}

// scanDelimited scans a quoted literal or identifier. A doubled end
// character is an escape.
func (s *Scanner) scanDelimited(start int, tok Token, endCh rune) (Token, string) {
	for {
		ch := s.read()
		if ch == eof {
			return s.illegal(start)
		}
		if ch == endCh {
			if s.peek() != endCh {
				break
			}
			s.read()
		}
	}
	return tok, s.input[start:s.pos]
}

// scanNamed scans a named placeholder, whose name may be surrounded by
// white space.
func (s *Scanner) scanNamed(start int) (Token, string) {
	s.read() // '{'
	for {
		ch := s.read()
		if ch == eof {
			return s.illegal(start)
		}
		if ch == '}' {
			break
		}
	}
	text := s.input[start:s.pos]
	if !isName(Name(text)) {
		return s.illegal(start)
	}
	return NAMED, text
}

// Name returns the name of a named placeholder token.
func Name(text string) string {
	text = strings.TrimPrefix(text, "#{")
	text = strings.TrimSuffix(text, "}")
	return strings.TrimSpace(text)
}

func isName(name string) bool {
	if name == "" {
		return false
	}
	for i, ch := range name {
		if i == 0 && !isStartIdent(ch) {
			return false
		}
		if !isIdent(ch) && ch != '.' {
			return false
		}
	}
	return true
}

func (s *Scanner) scanOperator(start int) (Token, string) {
	for {
		ch := s.peek()
		if !strings.ContainsRune(multiCharOperators, ch) {
			break
		}
		if ch == '#' && s.peekAt(1) == '{' {
			// the operator ends before a named placeholder
			break
		}
		if ch == '-' && s.peekAt(1) == '-' {
			break
		}
		s.read()
	}
	return OP, s.input[start:s.pos]
}

func (s *Scanner) scanNumber(start int) (Token, string) {
	seenPeriod := s.input[start] == '.'
	for {
		ch := s.peek()
		if ch == '.' && !seenPeriod {
			seenPeriod = true
		} else if !isDigit(ch) {
			break
		}
		s.read()
	}
	return LITERAL, s.input[start:s.pos]
}

func (s *Scanner) scanPlaceholder(start int, startCh rune) (Token, string) {
	if startCh == '?' {
		// postgres has the following geometric operators
		//  which look a bit like placeholders:
		// ?- ?# ?| ?-| ?||
		if ch := s.peek(); ch == '-' || ch == '#' || ch == '|' {
			return s.scanOperator(start)
		}
	}
	for isDigit(s.peek()) {
		s.read()
	}
	if startCh == '$' && s.pos == start+1 {
		return OP, s.input[start:s.pos]
	}
	return PLACEHOLDER, s.input[start:s.pos]
}

func (s *Scanner) read() rune {
	if s.pos >= len(s.input) {
		return eof
	}
	ch, size := utf8.DecodeRuneInString(s.input[s.pos:])
	s.pos += size
	return ch
}

func (s *Scanner) peek() rune {
	return s.peekAt(0)
}

// peekAt returns the rune n runes after the current position.
func (s *Scanner) peekAt(n int) rune {
	pos := s.pos
	for ; n >= 0; n-- {
		if pos >= len(s.input) {
			return eof
		}
		ch, size := utf8.DecodeRuneInString(s.input[pos:])
		if n == 0 {
			return ch
		}
		pos += size
	}
	return eof
}

func isWhitespace(ch rune) bool {
	return ch != eof && unicode.IsSpace(ch)
}

func isDigit(ch rune) bool {
	return unicode.IsDigit(ch)
}

func isStartIdent(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdent(ch rune) bool {
	return isStartIdent(ch) || unicode.IsDigit(ch)
}

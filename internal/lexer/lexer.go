// Package lexer implements the lexical analysis (tokenization) for slate.
package lexer

import (
	"slate-lang/internal/diag"
	"slate-lang/internal/span"
	"slate-lang/internal/token"
)

// Lexer tokenizes source code into a sequence of tokens.
type Lexer struct {
	source   string
	filename string

	pos  int // current read position in source
	line int // current line (1-based)
	col  int // current column (1-based)

	err *diag.Diagnostic
}

// New creates a new Lexer for the given source text.
func New(source, filename string) *Lexer {
	return &Lexer{
		source:   source,
		filename: filename,
		pos:      0,
		line:     1,
		col:      1,
	}
}

// Tokenize scans the entire source and returns the tokens. Scanning stops at
// the first lexical error; the returned diagnostic is non-nil in that case and
// the token stream is not guaranteed complete.
func (l *Lexer) Tokenize() ([]token.Token, *diag.Diagnostic) {
	var tokens []token.Token
	for {
		tok := l.nextToken()
		tokens = append(tokens, tok)
		if l.err != nil {
			return tokens, l.err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, nil
}

// ---- internal helpers ----

// peek returns the current character without advancing, or 0 if at end.
func (l *Lexer) peek() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	return l.source[l.pos]
}

// peekNext returns the character after current, or 0 if at end.
func (l *Lexer) peekNext() byte {
	if l.pos+1 >= len(l.source) {
		return 0
	}
	return l.source[l.pos+1]
}

// advance consumes the current character and returns it.
func (l *Lexer) advance() byte {
	ch := l.source[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

// curPos returns the current position as a span.Position.
func (l *Lexer) curPos() span.Position {
	return span.Position{Offset: l.pos, Line: l.line, Column: l.col}
}

// makeSpan returns a span from start to current position.
func (l *Lexer) makeSpan(start span.Position) span.Span {
	return span.Span{Start: start, End: l.curPos()}
}

// skipWhitespace skips spaces, tabs and newlines. Newlines are not tokens in
// this grammar; semicolons are the only statement separators.
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.advance()
		} else {
			break
		}
	}
}

// skipLineComment skips from // to end of line.
func (l *Lexer) skipLineComment() {
	for l.pos < len(l.source) && l.source[l.pos] != '\n' {
		l.advance()
	}
}

// fail records the first lexical error; later reads produce no further tokens.
func (l *Lexer) fail(code string, s span.Span, format string, args ...interface{}) {
	if l.err == nil {
		l.err = diag.Errorf(code, s, format, args...)
	}
}

// ---- token reading ----

func (l *Lexer) nextToken() token.Token {
	l.skipWhitespace()

	if l.pos >= len(l.source) {
		return token.Token{Kind: token.EOF, Lexeme: "", Span: l.makeSpan(l.curPos())}
	}

	start := l.curPos()
	ch := l.peek()

	// Line comment: //
	if ch == '/' && l.peekNext() == '/' {
		l.skipLineComment()
		return l.nextToken()
	}

	// String literal
	if ch == '\'' {
		return l.readString(start)
	}

	// Number literal
	if isDigit(ch) {
		return l.readNumber(start)
	}

	// Identifier or keyword
	if isIdentStart(ch) {
		return l.readIdentifier(start)
	}

	// Operators and delimiters
	return l.readOperator(start)
}

// readString reads a single-quoted string literal.
func (l *Lexer) readString(start span.Position) token.Token {
	l.advance() // skip opening '
	var value []byte

	for l.pos < len(l.source) {
		ch := l.peek()
		if ch == '\'' {
			l.advance() // skip closing '
			return token.Token{
				Kind:   token.STRING,
				Lexeme: string(value),
				Span:   l.makeSpan(start),
			}
		}
		if ch == '\\' {
			l.advance()
			if l.pos >= len(l.source) {
				break
			}
			esc := l.advance()
			switch esc {
			case 'n':
				value = append(value, '\n')
			case 't':
				value = append(value, '\t')
			case 'r':
				value = append(value, '\r')
			case '\\':
				value = append(value, '\\')
			case '\'':
				value = append(value, '\'')
			default:
				value = append(value, esc)
			}
			continue
		}
		value = append(value, ch)
		l.advance()
	}

	l.fail("E1001", l.makeSpan(start), "unterminated string literal")
	return token.Token{Kind: token.STRING, Lexeme: string(value), Span: l.makeSpan(start)}
}

// readNumber reads an integer or double literal. A '.' only starts the
// fractional part when a digit follows, so a range like 1..5 lexes as three
// tokens. An 'e' exponent with optional sign also makes the literal a double.
func (l *Lexer) readNumber(start span.Position) token.Token {
	isDouble := false
	numStart := l.pos

	for l.pos < len(l.source) && isDigit(l.peek()) {
		l.advance()
	}

	if l.pos < len(l.source) && l.peek() == '.' && isDigit(l.peekNext()) {
		isDouble = true
		l.advance() // skip '.'
		for l.pos < len(l.source) && isDigit(l.peek()) {
			l.advance()
		}
	}

	if l.pos < len(l.source) && l.peek() == 'e' {
		next := l.peekNext()
		if isDigit(next) || ((next == '-' || next == '+') && l.pos+2 < len(l.source) && isDigit(l.source[l.pos+2])) {
			isDouble = true
			l.advance() // skip 'e'
			if l.peek() == '-' || l.peek() == '+' {
				l.advance()
			}
			for l.pos < len(l.source) && isDigit(l.peek()) {
				l.advance()
			}
		}
	}

	lexeme := l.source[numStart:l.pos]
	kind := token.INT
	if isDouble {
		kind = token.DOUBLE
	}
	return token.Token{Kind: kind, Lexeme: lexeme, Span: l.makeSpan(start)}
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier(start span.Position) token.Token {
	identStart := l.pos

	for l.pos < len(l.source) && isIdentPart(l.peek()) {
		l.advance()
	}

	lexeme := l.source[identStart:l.pos]
	kind := token.LookupIdent(lexeme)
	return token.Token{Kind: kind, Lexeme: lexeme, Span: l.makeSpan(start)}
}

// readOperator reads an operator or delimiter token.
func (l *Lexer) readOperator(start span.Position) token.Token {
	ch := l.advance()

	two := func(kind token.Kind, lexeme string) token.Token {
		l.advance()
		return token.Token{Kind: kind, Lexeme: lexeme, Span: l.makeSpan(start)}
	}
	one := func(kind token.Kind) token.Token {
		return token.Token{Kind: kind, Lexeme: kind.String(), Span: l.makeSpan(start)}
	}

	switch ch {
	case '(':
		return one(token.LPAREN)
	case ')':
		return one(token.RPAREN)
	case '{':
		return one(token.LBRACE)
	case '}':
		return one(token.RBRACE)
	case ',':
		return one(token.COMMA)
	case ';':
		return one(token.SEMICOLON)
	case '^':
		return one(token.BITXOR)
	case '*':
		return one(token.STAR)
	case '/':
		return one(token.SLASH)
	case '%':
		return one(token.PERCENT)
	case '+':
		if l.peek() == '=' {
			return two(token.PLUS_ASSIGN, "+=")
		}
		return one(token.PLUS)
	case '-':
		if l.peek() == '=' {
			return two(token.MINUS_ASSIGN, "-=")
		}
		return one(token.MINUS)
	case '!':
		if l.peek() == '=' {
			return two(token.NEQ, "!=")
		}
		return one(token.BANG)
	case '=':
		if l.peek() == '=' {
			return two(token.EQ, "==")
		}
		return one(token.ASSIGN)
	case '<':
		if l.peek() == '=' {
			return two(token.LTE, "<=")
		}
		return one(token.LT)
	case '>':
		if l.peek() == '=' {
			return two(token.GTE, ">=")
		}
		return one(token.GT)
	case '&':
		if l.peek() == '&' {
			return two(token.AND, "&&")
		}
		return one(token.BITAND)
	case '|':
		if l.peek() == '|' {
			return two(token.OR, "||")
		}
		return one(token.BITOR)
	case '.':
		if l.peek() == '.' {
			return two(token.RANGE, "..")
		}
		l.fail("E1002", l.makeSpan(start), "unexpected character: '.', did you mean '..'?")
		return token.Token{Kind: token.ILLEGAL, Lexeme: ".", Span: l.makeSpan(start)}
	default:
		l.fail("E1002", l.makeSpan(start), "unexpected character: %q", string(ch))
		return token.Token{Kind: token.ILLEGAL, Lexeme: string(ch), Span: l.makeSpan(start)}
	}
}

// ---- character classification ----

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

package lexer

import (
	"testing"

	"slate-lang/internal/token"
)

func tokenizeOK(t *testing.T, source string) []token.Token {
	t.Helper()
	tokens, err := New(source, "test.sl").Tokenize()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	return tokens
}

func checkKinds(t *testing.T, tokens []token.Token, expected []token.Kind) {
	t.Helper()
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, exp := range expected {
		if tokens[i].Kind != exp {
			t.Errorf("token[%d]: expected %s, got %s (%q)", i, exp, tokens[i].Kind, tokens[i].Lexeme)
		}
	}
}

func TestTokenizeSimple(t *testing.T) {
	tokens := tokenizeOK(t, `int x = 1 + 2;`)
	checkKinds(t, tokens, []token.Kind{
		token.KW_INT, token.IDENT, token.ASSIGN,
		token.INT, token.PLUS, token.INT, token.SEMICOLON, token.EOF,
	})
}

func TestTokenizeKeywords(t *testing.T) {
	tokens := tokenizeOK(t, `int double string void if else while for in print function native return`)
	checkKinds(t, tokens, []token.Kind{
		token.KW_INT, token.KW_DOUBLE, token.KW_STRING, token.KW_VOID,
		token.KW_IF, token.KW_ELSE, token.KW_WHILE, token.KW_FOR, token.KW_IN,
		token.KW_PRINT, token.KW_FUNCTION, token.KW_NATIVE, token.KW_RETURN,
		token.EOF,
	})
}

func TestTokenizeOperators(t *testing.T) {
	tokens := tokenizeOK(t, `= == != < <= > >= + - * / % ! && || & | ^ .. += -=`)
	checkKinds(t, tokens, []token.Kind{
		token.ASSIGN, token.EQ, token.NEQ,
		token.LT, token.LTE, token.GT, token.GTE,
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.BANG, token.AND, token.OR,
		token.BITAND, token.BITOR, token.BITXOR,
		token.RANGE, token.PLUS_ASSIGN, token.MINUS_ASSIGN,
		token.EOF,
	})
}

func TestTokenizeDelimiters(t *testing.T) {
	tokens := tokenizeOK(t, `( ) { } , ;`)
	checkKinds(t, tokens, []token.Kind{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.COMMA, token.SEMICOLON,
		token.EOF,
	})
}

func TestTokenizeString(t *testing.T) {
	tokens := tokenizeOK(t, `'hello' 'line1\nline2' 'it\'s'`)
	if len(tokens) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(tokens))
	}
	if tokens[0].Lexeme != "hello" {
		t.Errorf("expected 'hello', got %q", tokens[0].Lexeme)
	}
	if tokens[1].Lexeme != "line1\nline2" {
		t.Errorf("escape not applied: %q", tokens[1].Lexeme)
	}
	if tokens[2].Lexeme != "it's" {
		t.Errorf("quote escape not applied: %q", tokens[2].Lexeme)
	}
}

func TestTokenizeNumbers(t *testing.T) {
	cases := []struct {
		source string
		kind   token.Kind
		lexeme string
	}{
		{"0", token.INT, "0"},
		{"42", token.INT, "42"},
		{"3.14", token.DOUBLE, "3.14"},
		{"1e5", token.DOUBLE, "1e5"},
		{"1e-5", token.DOUBLE, "1e-5"},
		{"2.5e+3", token.DOUBLE, "2.5e+3"},
	}
	for _, tc := range cases {
		tokens := tokenizeOK(t, tc.source)
		if tokens[0].Kind != tc.kind {
			t.Errorf("%q: expected %s, got %s", tc.source, tc.kind, tokens[0].Kind)
		}
		if tokens[0].Lexeme != tc.lexeme {
			t.Errorf("%q: expected lexeme %q, got %q", tc.source, tc.lexeme, tokens[0].Lexeme)
		}
	}
}

func TestTokenizeRange(t *testing.T) {
	// A '.' only starts a fractional part when a digit follows, so 1..5 is a
	// range, not a pair of malformed doubles.
	tokens := tokenizeOK(t, `1..5`)
	checkKinds(t, tokens, []token.Kind{
		token.INT, token.RANGE, token.INT, token.EOF,
	})
}

func TestTokenizeComments(t *testing.T) {
	tokens := tokenizeOK(t, "1 // a comment\n2")
	checkKinds(t, tokens, []token.Kind{token.INT, token.INT, token.EOF})
}

func TestTokenizePositions(t *testing.T) {
	tokens := tokenizeOK(t, "int x = 1;\nx = 2;")
	// 'x' on the second line
	last := tokens[5]
	if last.Kind != token.IDENT {
		t.Fatalf("expected IDENT, got %s", last.Kind)
	}
	if last.Span.Start.Line != 2 || last.Span.Start.Column != 1 {
		t.Errorf("expected position 2:1, got %s", last.Span.Start)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, err := New(`'oops`, "test.sl").Tokenize()
	if err == nil {
		t.Fatal("expected a lex error")
	}
	if err.Code != "E1001" {
		t.Errorf("expected code E1001, got %s", err.Code)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	tokens, err := New(`int x = @;`, "test.sl").Tokenize()
	if err == nil {
		t.Fatal("expected a lex error")
	}
	if err.Code != "E1002" {
		t.Errorf("expected code E1002, got %s", err.Code)
	}
	// Scanning stops at the first error.
	last := tokens[len(tokens)-1]
	if last.Kind != token.ILLEGAL {
		t.Errorf("expected trailing ILLEGAL token, got %s", last.Kind)
	}
}

func TestLoneDotFails(t *testing.T) {
	_, err := New(`1 . 5`, "test.sl").Tokenize()
	if err == nil {
		t.Fatal("expected a lex error for a lone '.'")
	}
}

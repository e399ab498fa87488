// Package token defines the token types produced by the lexer.
package token

import (
	"fmt"

	"slate-lang/internal/span"
)

// Kind represents the type of a token.
type Kind int

const (
	// Special tokens. ILLEGAL doubles as the "undefined token" sentinel the
	// parser receives when it reads past the recorded end of a token stream;
	// it is distinct from EOF.
	ILLEGAL Kind = iota
	EOF

	// Literals
	IDENT  // identifiers: x, foo, my_var
	INT    // integer literals: 123
	DOUBLE // floating-point literals: 3.14, 1e-5
	STRING // string literals: 'hello'

	// Operators
	OR      // ||
	AND     // &&
	BITOR   // |
	BITAND  // &
	BITXOR  // ^
	EQ      // ==
	NEQ     // !=
	LT      // <
	LTE     // <=
	GT      // >
	GTE     // >=
	RANGE   // ..
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	BANG    // !

	// Assignment class
	ASSIGN       // =
	PLUS_ASSIGN  // +=
	MINUS_ASSIGN // -=

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	COMMA     // ,
	SEMICOLON // ;

	// Keywords
	KW_INT
	KW_DOUBLE
	KW_STRING
	KW_VOID
	KW_IF
	KW_ELSE
	KW_WHILE
	KW_FOR
	KW_IN
	KW_PRINT
	KW_FUNCTION
	KW_NATIVE
	KW_RETURN
)

var kindNames = map[Kind]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT:  "IDENT",
	INT:    "INT",
	DOUBLE: "DOUBLE",
	STRING: "STRING",

	OR:      "||",
	AND:     "&&",
	BITOR:   "|",
	BITAND:  "&",
	BITXOR:  "^",
	EQ:      "==",
	NEQ:     "!=",
	LT:      "<",
	LTE:     "<=",
	GT:      ">",
	GTE:     ">=",
	RANGE:   "..",
	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	BANG:    "!",

	ASSIGN:       "=",
	PLUS_ASSIGN:  "+=",
	MINUS_ASSIGN: "-=",

	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	COMMA:     ",",
	SEMICOLON: ";",

	KW_INT:      "int",
	KW_DOUBLE:   "double",
	KW_STRING:   "string",
	KW_VOID:     "void",
	KW_IF:       "if",
	KW_ELSE:     "else",
	KW_WHILE:    "while",
	KW_FOR:      "for",
	KW_IN:       "in",
	KW_PRINT:    "print",
	KW_FUNCTION: "function",
	KW_NATIVE:   "native",
	KW_RETURN:   "return",
}

// String returns the human-readable name for a token kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// precedences holds the binding power of each infix operator; kinds that are
// not infix operators carry precedence 0.
var precedences = map[Kind]int{
	OR:      4,
	BITOR:   4,
	AND:     5,
	BITAND:  5,
	BITXOR:  5,
	EQ:      9,
	NEQ:     9,
	RANGE:   9,
	LT:      10,
	LTE:     10,
	GT:      10,
	GTE:     10,
	PLUS:    12,
	MINUS:   12,
	STAR:    13,
	SLASH:   13,
	PERCENT: 13,
}

// Precedence returns the binding power of an infix operator, or 0 if the kind
// is not an infix operator.
func Precedence(k Kind) int {
	return precedences[k]
}

// IsBinaryOp returns true if the kind can appear as an infix operator.
func IsBinaryOp(k Kind) bool {
	return precedences[k] > 0
}

// IsKeyword returns true if the kind is a keyword.
func (k Kind) IsKeyword() bool {
	return k >= KW_INT && k <= KW_RETURN
}

// IsTypename returns true for the type-name keywords.
func IsTypename(k Kind) bool {
	switch k {
	case KW_INT, KW_DOUBLE, KW_STRING, KW_VOID:
		return true
	}
	return false
}

// IsAssignment returns true for the assignment-class operators.
func IsAssignment(k Kind) bool {
	switch k {
	case ASSIGN, PLUS_ASSIGN, MINUS_ASSIGN:
		return true
	}
	return false
}

var keywords = map[string]Kind{
	"int":      KW_INT,
	"double":   KW_DOUBLE,
	"string":   KW_STRING,
	"void":     KW_VOID,
	"if":       KW_IF,
	"else":     KW_ELSE,
	"while":    KW_WHILE,
	"for":      KW_FOR,
	"in":       KW_IN,
	"print":    KW_PRINT,
	"function": KW_FUNCTION,
	"native":   KW_NATIVE,
	"return":   KW_RETURN,
}

// LookupIdent returns the keyword Kind for ident, or IDENT if it is not a keyword.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return IDENT
}

// Token represents a lexical token with its kind, text, and source location.
type Token struct {
	Kind   Kind      `json:"kind"`
	Lexeme string    `json:"lexeme"`
	Span   span.Span `json:"span"`
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s %q %s", t.Kind, t.Lexeme, t.Span.Start)
}

package ast

import (
	"testing"

	"slate-lang/internal/span"
	"slate-lang/internal/token"
)

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected a panic", name)
		}
	}()
	fn()
}

func TestCheckedConstructors(t *testing.T) {
	v := NewVariable(Int, "x", span.NoSpan)
	lit := &IntLit{Value: 1}

	// Valid constructions.
	if s := NewStore(v, token.PLUS_ASSIGN, lit, span.NoSpan); s.Op != token.PLUS_ASSIGN {
		t.Error("store op not recorded")
	}
	if b := NewBinary(token.RANGE, lit, lit, span.NoSpan); b.Op != token.RANGE {
		t.Error("binary op not recorded")
	}
	if u := NewUnary(token.BANG, lit, span.NoSpan); u.Op != token.BANG {
		t.Error("unary op not recorded")
	}

	// Contract violations panic: these catch parser bugs, not bad input.
	mustPanic(t, "store with non-assignment op", func() { NewStore(v, token.PLUS, lit, span.NoSpan) })
	mustPanic(t, "store without value", func() { NewStore(v, token.ASSIGN, nil, span.NoSpan) })
	mustPanic(t, "binary with assignment op", func() { NewBinary(token.ASSIGN, lit, lit, span.NoSpan) })
	mustPanic(t, "binary with missing operand", func() { NewBinary(token.PLUS, lit, nil, span.NoSpan) })
	mustPanic(t, "unary with infix op", func() { NewUnary(token.STAR, lit, span.NoSpan) })
}

func TestTypeFromToken(t *testing.T) {
	cases := []struct {
		kind token.Kind
		want Type
	}{
		{token.KW_INT, Int},
		{token.KW_DOUBLE, Double},
		{token.KW_STRING, String},
		{token.KW_VOID, Void},
		{token.IDENT, Invalid},
		{token.PLUS, Invalid},
	}
	for _, tc := range cases {
		if got := TypeFromToken(tc.kind); got != tc.want {
			t.Errorf("TypeFromToken(%s): expected %s, got %s", tc.kind, tc.want, got)
		}
	}
}

func TestSignatureString(t *testing.T) {
	sig := &Signature{
		Ret:    Int,
		Name:   "add",
		Params: []Param{{Int, "a"}, {Int, "b"}},
	}
	want := "int add(int a, int b)"
	if got := sig.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

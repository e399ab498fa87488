package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"slate-lang/internal/diag"
	"slate-lang/internal/token"
)

// ---- output helpers ----

var (
	errColor  = color.New(color.FgRed)
	warnColor = color.New(color.FgYellow)
	noteColor = color.New(color.FgCyan)
)

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "error: JSON encoding failed: %v\n", err)
		os.Exit(1)
	}
}

// printDiag prints an error value; diagnostics are colored by severity.
func printDiag(w io.Writer, err error) {
	d, ok := err.(*diag.Diagnostic)
	if !ok {
		fmt.Fprintln(w, err)
		return
	}
	switch d.Severity {
	case diag.Warning:
		warnColor.Fprintln(w, d.String())
	case diag.Note:
		noteColor.Fprintln(w, d.String())
	default:
		errColor.Fprintln(w, d.String())
	}
}

func diagToMap(err error) map[string]interface{} {
	d, ok := err.(*diag.Diagnostic)
	if !ok {
		return map[string]interface{}{"message": err.Error()}
	}
	result := map[string]interface{}{
		"code":     d.Code,
		"severity": d.Severity.String(),
		"message":  d.Message,
		"line":     d.Span.Start.Line,
		"column":   d.Span.Start.Column,
		"offset":   d.Span.Start.Offset,
	}
	if d.Hint != "" {
		result["hint"] = d.Hint
	}
	return result
}

// ---- token output helpers ----

func printTokensText(tokens []token.Token, lexErr *diag.Diagnostic) {
	for _, tok := range tokens {
		fmt.Printf("%-12s %-20s %d:%d\n", tok.Kind, tok.Lexeme, tok.Span.Start.Line, tok.Span.Start.Column)
	}
	if lexErr != nil {
		printDiag(os.Stderr, lexErr)
	}
}

func printTokensJSON(tokens []token.Token, lexErr *diag.Diagnostic) {
	type tokenJSON struct {
		Kind   string `json:"kind"`
		Lexeme string `json:"lexeme"`
		Line   int    `json:"line"`
		Column int    `json:"column"`
		Offset int    `json:"offset"`
	}

	var toks []tokenJSON
	for _, tok := range tokens {
		toks = append(toks, tokenJSON{
			Kind:   tok.Kind.String(),
			Lexeme: tok.Lexeme,
			Line:   tok.Span.Start.Line,
			Column: tok.Span.Start.Column,
			Offset: tok.Span.Start.Offset,
		})
	}

	diags := []interface{}{}
	if lexErr != nil {
		diags = append(diags, diagToMap(lexErr))
	}
	printJSON(map[string]interface{}{
		"tokens":      toks,
		"diagnostics": diags,
	})
}

// Package span provides source position and span types used across the front end.
package span

import "fmt"

// Position represents a position in source code.
type Position struct {
	Offset int `json:"offset"` // byte offset from beginning of source
	Line   int `json:"line"`   // 1-based line number
	Column int `json:"column"` // 1-based column number
}

// NoPos is the reserved "not applicable" position. Its Line is zero, which no
// real position carries.
var NoPos = Position{Offset: -1, Line: 0, Column: 0}

// IsValid reports whether p refers to an actual source location.
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span represents a range in source code [Start, End).
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// NoSpan is the sentinel span for nodes with no source location.
var NoSpan = Span{Start: NoPos, End: NoPos}

func (s Span) String() string {
	return fmt.Sprintf("%s..%s", s.Start, s.End)
}

// Len returns the byte length of the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

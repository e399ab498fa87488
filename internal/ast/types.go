package ast

import (
	"fmt"

	"slate-lang/internal/token"
)

// Type is the closed set of value types a declaration or signature can carry.
// Invalid never appears in a successfully parsed tree; it exists only as an
// error sentinel.
type Type int

const (
	Invalid Type = iota
	Void
	Int
	Double
	String
)

func (t Type) String() string {
	switch t {
	case Void:
		return "void"
	case Int:
		return "int"
	case Double:
		return "double"
	case String:
		return "string"
	default:
		return "invalid"
	}
}

// TypeFromToken maps a type-name keyword to its Type, or Invalid for any
// other kind.
func TypeFromToken(k token.Kind) Type {
	switch k {
	case token.KW_INT:
		return Int
	case token.KW_DOUBLE:
		return Double
	case token.KW_STRING:
		return String
	case token.KW_VOID:
		return Void
	default:
		return Invalid
	}
}

// Param is a single signature parameter.
type Param struct {
	Type Type
	Name string
}

// Signature describes a function: its return type, name and ordered
// parameters. Parameter-name uniqueness is enforced by the parser.
type Signature struct {
	Ret    Type
	Name   string
	Params []Param
}

func (s *Signature) String() string {
	str := fmt.Sprintf("%s %s(", s.Ret, s.Name)
	for i, p := range s.Params {
		if i > 0 {
			str += ", "
		}
		str += fmt.Sprintf("%s %s", p.Type, p.Name)
	}
	return str + ")"
}

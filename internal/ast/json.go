package ast

import (
	"slate-lang/internal/span"
)

// ProgramToMap converts a parsed program to a map suitable for JSON
// serialization. Functions registered in a block's scope are emitted with the
// block, in name order, so the dump is deterministic.
func ProgramToMap(p *Program) map[string]interface{} {
	if p == nil {
		return nil
	}
	return funcDeclToMap(p.Top)
}

// NodeToMap converts an AST node to a tagged-union map: every node carries a
// "kind" field.
func NodeToMap(node Node) map[string]interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {

	// ---- Expressions ----
	case *IntLit:
		return m("IntLit", n.Span, "value", n.Value)
	case *DoubleLit:
		return m("DoubleLit", n.Span, "value", n.Value)
	case *StringLit:
		return m("StringLit", n.Span, "value", n.Value)
	case *Load:
		return m("Load", n.Span, "name", n.Var.Name, "type", n.Var.Type.String())
	case *Unary:
		return m("Unary", n.Span, "op", n.Op.String(), "operand", NodeToMap(n.Operand))
	case *Binary:
		return m("Binary", n.Span,
			"op", n.Op.String(),
			"left", NodeToMap(n.Left),
			"right", NodeToMap(n.Right))
	case *Call:
		return m("Call", n.Span,
			"name", n.Name,
			"args", exprSlice(n.Args))

	// ---- Statements ----
	case *Store:
		return m("Store", n.Span,
			"name", n.Target.Name,
			"op", n.Op.String(),
			"value", NodeToMap(n.Value))
	case *Print:
		return m("Print", n.Span, "args", exprSlice(n.Args))
	case *Block:
		return blockToMap(n)
	case *If:
		result := m("If", n.Span,
			"cond", NodeToMap(n.Cond),
			"then", NodeToMap(n.Then))
		if n.Else != nil {
			result["else"] = NodeToMap(n.Else)
		}
		return result
	case *While:
		return m("While", n.Span,
			"cond", NodeToMap(n.Cond),
			"body", NodeToMap(n.Body))
	case *For:
		return m("For", n.Span,
			"var", n.Var.Name,
			"iterable", NodeToMap(n.Iterable),
			"body", NodeToMap(n.Body))
	case *Return:
		result := m("Return", n.Span)
		if n.Value != nil {
			result["value"] = NodeToMap(n.Value)
		}
		return result

	// ---- Declarations ----
	case *NativeDecl:
		return m("NativeDecl", n.Span, "signature", sigToMap(n.Sig))
	case *FuncDecl:
		return funcDeclToMap(n)

	default:
		return map[string]interface{}{"kind": "Unknown"}
	}
}

func blockToMap(b *Block) map[string]interface{} {
	result := m("Block", b.Span, "stmts", nodeSlice(b.Stmts))
	var funcs []interface{}
	for _, f := range b.Scope.Functions() {
		if f.IsNative() {
			continue // natives already appear as NativeDecl statements
		}
		funcs = append(funcs, funcDeclToMap(f.Decl()))
	}
	if len(funcs) > 0 {
		result["functions"] = funcs
	}
	return result
}

func funcDeclToMap(fn *FuncDecl) map[string]interface{} {
	return m("FuncDecl", fn.Span,
		"signature", sigToMap(fn.Sig),
		"body", blockToMap(fn.Body))
}

// ---- helpers ----

func sigToMap(sig *Signature) map[string]interface{} {
	params := make([]interface{}, len(sig.Params))
	for i, p := range sig.Params {
		params[i] = map[string]interface{}{
			"type": p.Type.String(),
			"name": p.Name,
		}
	}
	return map[string]interface{}{
		"return": sig.Ret.String(),
		"name":   sig.Name,
		"params": params,
	}
}

// m builds a map with kind, span, and extra key-value pairs.
func m(kind string, s span.Span, kvs ...interface{}) map[string]interface{} {
	result := map[string]interface{}{
		"kind": kind,
		"span": spanToMap(s),
	}
	for i := 0; i+1 < len(kvs); i += 2 {
		key := kvs[i].(string)
		result[key] = kvs[i+1]
	}
	return result
}

func spanToMap(s span.Span) map[string]interface{} {
	return map[string]interface{}{
		"start": map[string]interface{}{
			"offset": s.Start.Offset,
			"line":   s.Start.Line,
			"column": s.Start.Column,
		},
		"end": map[string]interface{}{
			"offset": s.End.Offset,
			"line":   s.End.Line,
			"column": s.End.Column,
		},
	}
}

func nodeSlice(nodes []Node) []interface{} {
	result := make([]interface{}, len(nodes))
	for i, n := range nodes {
		result[i] = NodeToMap(n)
	}
	return result
}

func exprSlice(exprs []Expr) []interface{} {
	result := make([]interface{}, len(exprs))
	for i, e := range exprs {
		result[i] = NodeToMap(e)
	}
	return result
}

// Package ast defines the abstract syntax tree and symbol tables for slate.
package ast

import (
	"fmt"

	"slate-lang/internal/span"
	"slate-lang/internal/token"
)

// TopLevelName is the name of the synthetic function wrapping the top-level
// statements of a program.
const TopLevelName = "_start"

// ============================================================
// Node interfaces
// ============================================================

// Node is the interface implemented by all AST nodes.
type Node interface {
	nodeNode()
	GetSpan() span.Span
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// ============================================================
// Base types (embedded to provide common fields)
// ============================================================

// NodeBase provides the common Span field for all AST nodes.
type NodeBase struct {
	Span span.Span
}

func (n NodeBase) nodeNode()          {}
func (n NodeBase) GetSpan() span.Span { return n.Span }

// ExprBase is embedded by all expression nodes.
type ExprBase struct{ NodeBase }

func (ExprBase) exprNode() {}

// StmtBase is embedded by all statement nodes.
type StmtBase struct{ NodeBase }

func (StmtBase) stmtNode() {}

func MakeExprBase(sp span.Span) ExprBase {
	return ExprBase{NodeBase: NodeBase{Span: sp}}
}

func MakeStmtBase(sp span.Span) StmtBase {
	return StmtBase{NodeBase: NodeBase{Span: sp}}
}

// ============================================================
// Expressions
// ============================================================

// IntLit represents an integer literal.
type IntLit struct {
	ExprBase
	Value int64
}

// DoubleLit represents a floating-point literal.
type DoubleLit struct {
	ExprBase
	Value float64
}

// StringLit represents a string literal.
type StringLit struct {
	ExprBase
	Value string
}

// Load reads a resolved variable. The variable is owned by its scope; the
// node only references it.
type Load struct {
	ExprBase
	Var *Variable
}

// Unary represents a prefix operation: !x or -x.
type Unary struct {
	ExprBase
	Op      token.Kind
	Operand Expr
}

// Binary represents an infix operation: a + b, x == y, 0 .. n.
type Binary struct {
	ExprBase
	Op    token.Kind
	Left  Expr
	Right Expr
}

// Call represents a function call resolved against the enclosing function
// table. Fn is owned by its scope.
type Call struct {
	ExprBase
	Name string
	Fn   *Function
	Args []Expr
}

// ============================================================
// Statements
// ============================================================

// Store assigns to a resolved variable. Op is one of = += -=.
type Store struct {
	StmtBase
	Target *Variable
	Op     token.Kind
	Value  Expr
}

// Print represents: print(expr, ...).
type Print struct {
	StmtBase
	Args []Expr
}

// Block is the unit of lexical nesting: an ordered statement list owning
// exactly one scope. Statements may be bare expressions (e.g. a call used for
// its effect), so the list holds Nodes.
type Block struct {
	StmtBase
	Scope *Scope
	Stmts []Node
}

// If represents: if (cond) block [else block].
type If struct {
	StmtBase
	Cond Expr
	Then *Block
	Else *Block // may be nil
}

// While represents: while (cond) block.
type While struct {
	StmtBase
	Cond Expr
	Body *Block
}

// For represents: for (ident in expr) block. Var references a pre-existing
// variable; the loop does not declare one.
type For struct {
	StmtBase
	Var      *Variable
	Iterable Expr
	Body     *Block
}

// Return represents: return [expr].
type Return struct {
	StmtBase
	Value Expr // may be nil
}

// ============================================================
// Declarations
// ============================================================

// NativeDecl declares an externally-implemented function: it has a signature
// and no body.
type NativeDecl struct {
	StmtBase
	Sig *Signature
}

// FuncDecl is a user-defined function: its parameters live in a dedicated
// scope that encloses the body block's scope, so the body may shadow them
// while they stay visible throughout.
type FuncDecl struct {
	NodeBase
	Sig        *Signature
	ParamScope *Scope
	Body       *Block
}

// ============================================================
// Program
// ============================================================

// Program is the parse result: a synthetic top-level function whose body
// holds the top-level statements and whose parameter scope is the root scope.
// Scopes and nodes are never mutated after parsing completes.
type Program struct {
	Top  *FuncDecl
	Root *Scope
}

// ============================================================
// Checked constructors
// ============================================================
//
// These enforce grammar-level invariants at construction time. A violation is
// a parser bug, not malformed input (malformed input is rejected earlier,
// during token matching), so they panic.

// NewStore builds a Store and checks the assignment kind.
func NewStore(target *Variable, op token.Kind, value Expr, sp span.Span) *Store {
	if !token.IsAssignment(op) {
		panic(fmt.Sprintf("ast: invalid store operator %s", op))
	}
	if target == nil || value == nil {
		panic("ast: store requires a target and a value")
	}
	return &Store{StmtBase: MakeStmtBase(sp), Target: target, Op: op, Value: value}
}

// NewBinary builds a Binary and checks that op is a recognized infix kind.
func NewBinary(op token.Kind, left, right Expr, sp span.Span) *Binary {
	if !token.IsBinaryOp(op) {
		panic(fmt.Sprintf("ast: invalid binary operator %s", op))
	}
	if left == nil || right == nil {
		panic("ast: binary requires two operands")
	}
	return &Binary{ExprBase: MakeExprBase(sp), Op: op, Left: left, Right: right}
}

// NewUnary builds a Unary and checks that op is ! or -.
func NewUnary(op token.Kind, operand Expr, sp span.Span) *Unary {
	if op != token.BANG && op != token.MINUS {
		panic(fmt.Sprintf("ast: invalid unary operator %s", op))
	}
	if operand == nil {
		panic("ast: unary requires an operand")
	}
	return &Unary{ExprBase: MakeExprBase(sp), Op: op, Operand: operand}
}

package ast

import (
	"fmt"
	"sort"

	"slate-lang/internal/span"
)

// Variable is a declared variable or parameter. It is created exactly once,
// when its declaration is parsed, and its owner scope is set exactly once at
// definition time.
type Variable struct {
	Type Type
	Name string
	Span span.Span

	owner *Scope
}

// NewVariable creates a Variable not yet bound to a scope.
func NewVariable(t Type, name string, sp span.Span) *Variable {
	return &Variable{Type: t, Name: name, Span: sp}
}

// Owner returns the scope the variable was defined in, or nil before
// definition.
func (v *Variable) Owner() *Scope {
	return v.owner
}

// Function is a scope-level function entity: a user-defined function wrapping
// its definition node, or a body-less native declaration.
type Function struct {
	decl   *FuncDecl
	native *NativeDecl

	owner *Scope
}

// NewFunction creates a function entity for a user-defined function.
func NewFunction(decl *FuncDecl) *Function {
	return &Function{decl: decl}
}

// NewNativeFunction creates a function entity for a native declaration.
func NewNativeFunction(decl *NativeDecl) *Function {
	return &Function{native: decl}
}

// Sig returns the function's signature.
func (f *Function) Sig() *Signature {
	if f.native != nil {
		return f.native.Sig
	}
	return f.decl.Sig
}

// Name returns the declared function name.
func (f *Function) Name() string {
	return f.Sig().Name
}

// IsNative reports whether the function is externally implemented.
func (f *Function) IsNative() bool {
	return f.native != nil
}

// Decl returns the definition node for a user-defined function, nil for a
// native one.
func (f *Function) Decl() *FuncDecl {
	return f.decl
}

// NativeDecl returns the declaration node for a native function, nil for a
// user-defined one.
func (f *Function) NativeDecl() *NativeDecl {
	return f.native
}

// Owner returns the scope the function was defined in.
func (f *Function) Owner() *Scope {
	return f.owner
}

// Scope is a symbol table tied to one lexical block. Variables and functions
// occupy separate namespaces; lookups search this scope first and then climb
// the owner chain. The scope tree mirrors the lexical-block nesting of the
// source.
type Scope struct {
	vars  map[string]*Variable
	funcs map[string]*Function
	owner *Scope
}

// NewScope creates a scope enclosed by owner (nil for the root scope).
func NewScope(owner *Scope) *Scope {
	return &Scope{
		vars:  make(map[string]*Variable),
		funcs: make(map[string]*Function),
		owner: owner,
	}
}

// Owner returns the enclosing scope, or nil for the root.
func (s *Scope) Owner() *Scope {
	return s.owner
}

// LookupVariable returns the nearest visible variable definition, or nil.
func (s *Scope) LookupVariable(name string) *Variable {
	for sc := s; sc != nil; sc = sc.owner {
		if v, ok := sc.vars[name]; ok {
			return v
		}
	}
	return nil
}

// LookupFunction returns the nearest visible function definition, or nil.
func (s *Scope) LookupFunction(name string) *Function {
	for sc := s; sc != nil; sc = sc.owner {
		if f, ok := sc.funcs[name]; ok {
			return f
		}
	}
	return nil
}

// DefineVariable inserts v into this scope. A name already defined in this
// scope (not an ancestor) is rejected; shadowing an ancestor's definition is
// implicitly permitted because lookup is scope-local-first.
func (s *Scope) DefineVariable(v *Variable) error {
	if _, exists := s.vars[v.Name]; exists {
		return fmt.Errorf("variable '%s' already declared in this scope", v.Name)
	}
	s.vars[v.Name] = v
	v.owner = s
	return nil
}

// DefineFunction inserts f into this scope; analogous to DefineVariable.
func (s *Scope) DefineFunction(f *Function) error {
	if _, exists := s.funcs[f.Name()]; exists {
		return fmt.Errorf("function '%s' already declared in this scope", f.Name())
	}
	s.funcs[f.Name()] = f
	f.owner = s
	return nil
}

// Variables returns the variables defined in this scope (not ancestors),
// sorted by name for deterministic iteration.
func (s *Scope) Variables() []*Variable {
	out := make([]*Variable, 0, len(s.vars))
	for _, v := range s.vars {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Functions returns the functions defined in this scope (not ancestors),
// sorted by name for deterministic iteration.
func (s *Scope) Functions() []*Function {
	out := make([]*Function, 0, len(s.funcs))
	for _, f := range s.funcs {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

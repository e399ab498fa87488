// Package parser implements the syntax analysis for slate: recursive descent
// for statements and declarations, precedence climbing for expressions.
// Variable and function references are resolved against the scope chain as
// they are parsed; the first error of any kind aborts the whole parse.
package parser

import (
	"strconv"

	"slate-lang/internal/ast"
	"slate-lang/internal/diag"
	"slate-lang/internal/lexer"
	"slate-lang/internal/span"
	"slate-lang/internal/token"
)

// Parser performs syntax analysis and inline name resolution on a stream of
// tokens.
type Parser struct {
	tokens []token.Token
	pos    int
	scope  *ast.Scope
}

// New creates a new parser from a token slice.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, pos: 0}
}

// Parse scans and parses source in one step. On failure the returned error is
// a *diag.Diagnostic carrying a message and location; no program is returned.
func Parse(source, filename string) (*ast.Program, error) {
	tokens, lexErr := lexer.New(source, filename).Tokenize()
	if lexErr != nil {
		return nil, lexErr
	}
	return New(tokens).ParseProgram()
}

// ParseProgram parses the whole token stream into a program: a synthetic
// top-level void function whose body holds the top-level statements and whose
// parameter scope is the root scope.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	root := ast.NewScope(nil)
	p.scope = root
	start := p.peek(0).Span.Start

	body, err := p.parseTopLevelBlock()
	if err != nil {
		return nil, err
	}

	sig := &ast.Signature{Ret: ast.Void, Name: ast.TopLevelName}
	top := &ast.FuncDecl{
		NodeBase:   ast.NodeBase{Span: span.Span{Start: start, End: p.prevEnd()}},
		Sig:        sig,
		ParamScope: root,
		Body:       body,
	}
	return &ast.Program{Top: top, Root: root}, nil
}

// parseTopLevelBlock parses statements and declarations until end of input.
// Like any function body, the top-level block owns a scope enclosed by the
// parameter (root) scope.
func (p *Parser) parseTopLevelBlock() (*ast.Block, error) {
	p.pushScope()
	defer p.popScope()

	start := p.peek(0).Span.Start
	blk := &ast.Block{Scope: p.scope}
	if err := p.parseStmts(blk, token.EOF); err != nil {
		return nil, err
	}
	blk.Span = span.Span{Start: start, End: p.peek(0).Span.End}
	return blk, nil
}

// ---- navigation helpers ----

// peek returns the token at the given offset from the cursor. Reading exactly
// at the recorded end yields EOF; reading beyond it yields the ILLEGAL
// sentinel. Both reads are safe for any offset.
func (p *Parser) peek(off int) token.Token {
	idx := p.pos + off
	if idx < len(p.tokens) {
		return p.tokens[idx]
	}
	if idx == len(p.tokens) {
		return token.Token{Kind: token.EOF, Span: span.NoSpan}
	}
	return token.Token{Kind: token.ILLEGAL, Span: span.NoSpan}
}

func (p *Parser) peekKind() token.Kind {
	return p.peek(0).Kind
}

func (p *Parser) advance() token.Token {
	tok := p.peek(0)
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	if p.peekKind() == kind {
		return p.advance(), nil
	}
	tok := p.peek(0)
	return tok, p.errf("E2001", tok.Span, "expected '%s', got '%s'", kind, tokenText(tok))
}

func (p *Parser) prevEnd() span.Position {
	if p.pos > 0 && p.pos-1 < len(p.tokens) {
		return p.tokens[p.pos-1].Span.End
	}
	return p.peek(0).Span.Start
}

func (p *Parser) errf(code string, s span.Span, format string, args ...interface{}) error {
	return diag.Errorf(code, s, format, args...)
}

// tokenText renders a token for an error message; kinds with no lexeme (EOF,
// punctuation sentinels) fall back to the kind name.
func tokenText(tok token.Token) string {
	if tok.Lexeme != "" {
		return tok.Lexeme
	}
	return tok.Kind.String()
}

// ---- scope stack ----
//
// The scope stack is the owner chain itself. Every push is paired with a
// deferred pop so no error return can leak the current scope.

func (p *Parser) pushScope() *ast.Scope {
	p.scope = ast.NewScope(p.scope)
	return p.scope
}

func (p *Parser) popScope() {
	p.scope = p.scope.Owner()
}

// ============================================================
// Blocks and statement lists
// ============================================================

// parseBlock parses: { stmts } with its own lexical scope.
func (p *Parser) parseBlock() (*ast.Block, error) {
	lb, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}

	p.pushScope()
	defer p.popScope()

	blk := &ast.Block{Scope: p.scope}
	if err := p.parseStmts(blk, token.RBRACE); err != nil {
		return nil, err
	}

	rb, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	blk.Span = span.Span{Start: lb.Span.Start, End: rb.Span.End}
	return blk, nil
}

// parseStmts fills blk until the terminator. Stray semicolons are skipped.
// Function and native declarations are registered into the block's scope;
// natives additionally appear as statements so back ends see them in source
// order.
func (p *Parser) parseStmts(blk *ast.Block, term token.Kind) error {
	for p.peekKind() != term && p.peekKind() != token.EOF {
		switch p.peekKind() {
		case token.SEMICOLON:
			p.advance()
		case token.KW_FUNCTION:
			if err := p.parseFuncDecl(); err != nil {
				return err
			}
		case token.KW_NATIVE:
			decl, err := p.parseNativeDecl()
			if err != nil {
				return err
			}
			blk.Stmts = append(blk.Stmts, decl)
		default:
			stmt, err := p.parseStmt()
			if err != nil {
				return err
			}
			blk.Stmts = append(blk.Stmts, stmt)
		}
	}
	return nil
}

// ============================================================
// Statements
// ============================================================

func (p *Parser) parseStmt() (ast.Node, error) {
	tok := p.peek(0)
	switch tok.Kind {
	case token.KW_IF:
		return p.parseIf()
	case token.KW_WHILE:
		return p.parseWhile()
	case token.KW_FOR:
		return p.parseFor()
	case token.KW_RETURN:
		return p.parseReturn()
	case token.KW_PRINT:
		return p.parsePrint()
	case token.KW_INT, token.KW_DOUBLE, token.KW_STRING:
		return p.parseDecl()
	case token.LBRACE:
		return p.parseBlock()
	}

	if tok.Kind.IsKeyword() {
		return nil, p.errf("E2002", tok.Span, "unexpected token '%s'", tokenText(tok))
	}

	if tok.Kind == token.IDENT && token.IsAssignment(p.peek(1).Kind) {
		return p.parseAssignment()
	}

	return p.parseExpression()
}

// parseDecl parses: type IDENT = expr. The initializer is parsed before the
// variable is defined, so a declaration never sees itself; redeclaring a name
// already defined in this scope is an error.
func (p *Parser) parseDecl() (*ast.Store, error) {
	tp := p.advance()
	typ := ast.TypeFromToken(tp.Kind)

	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	v := ast.NewVariable(typ, name.Lexeme, name.Span)
	if err := p.scope.DefineVariable(v); err != nil {
		return nil, p.errf("E3003", name.Span, "variable '%s' already declared in this scope", name.Lexeme)
	}

	sp := span.Span{Start: tp.Span.Start, End: value.GetSpan().End}
	return ast.NewStore(v, token.ASSIGN, value, sp), nil
}

// parseAssignment parses: IDENT (= | += | -=) expr. The target must already
// be a defined variable.
func (p *Parser) parseAssignment() (*ast.Store, error) {
	name := p.advance()
	v := p.scope.LookupVariable(name.Lexeme)
	if v == nil {
		return nil, p.errf("E3001", name.Span, "unknown variable '%s'", name.Lexeme)
	}

	op := p.advance()

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	sp := span.Span{Start: name.Span.Start, End: value.GetSpan().End}
	return ast.NewStore(v, op.Kind, value, sp), nil
}

// parseIf parses: if (expr) block [else block].
func (p *Parser) parseIf() (*ast.If, error) {
	start := p.advance()

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseBlk *ast.Block
	if p.peekKind() == token.KW_ELSE {
		p.advance()
		elseBlk, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return &ast.If{
		StmtBase: ast.MakeStmtBase(span.Span{Start: start.Span.Start, End: p.prevEnd()}),
		Cond:     cond,
		Then:     then,
		Else:     elseBlk,
	}, nil
}

// parseWhile parses: while (expr) block.
func (p *Parser) parseWhile() (*ast.While, error) {
	start := p.advance()

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.While{
		StmtBase: ast.MakeStmtBase(span.Span{Start: start.Span.Start, End: p.prevEnd()}),
		Cond:     cond,
		Body:     body,
	}, nil
}

// parseFor parses: for (IDENT in expr) block. The loop variable must already
// be defined; the loop does not declare one.
func (p *Parser) parseFor() (*ast.For, error) {
	start := p.advance()

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	v := p.scope.LookupVariable(name.Lexeme)
	if v == nil {
		return nil, p.errf("E3001", name.Span, "unknown variable '%s'", name.Lexeme)
	}

	if _, err := p.expect(token.KW_IN); err != nil {
		return nil, err
	}

	iter, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.For{
		StmtBase: ast.MakeStmtBase(span.Span{Start: start.Span.Start, End: p.prevEnd()}),
		Var:      v,
		Iterable: iter,
		Body:     body,
	}, nil
}

// parseReturn parses: return [expr].
func (p *Parser) parseReturn() (*ast.Return, error) {
	start := p.advance()

	switch p.peekKind() {
	case token.SEMICOLON, token.RBRACE, token.EOF:
		return &ast.Return{StmtBase: ast.MakeStmtBase(start.Span)}, nil
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.Return{
		StmtBase: ast.MakeStmtBase(span.Span{Start: start.Span.Start, End: value.GetSpan().End}),
		Value:    value,
	}, nil
}

// parsePrint parses: print(expr, ...).
func (p *Parser) parsePrint() (*ast.Print, error) {
	start := p.advance()

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, err
	}

	return &ast.Print{
		StmtBase: ast.MakeStmtBase(span.Span{Start: start.Span.Start, End: end.Span.End}),
		Args:     args,
	}, nil
}

// parseArgs parses a comma-separated expression list terminated by ')'. The
// closing parenthesis is left for the caller to consume.
func (p *Parser) parseArgs() ([]ast.Expr, error) {
	var args []ast.Expr
	for p.peekKind() != token.RPAREN {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.peekKind() == token.COMMA {
			p.advance()
			continue
		}
		if p.peekKind() != token.RPAREN {
			tok := p.peek(0)
			return nil, p.errf("E2001", tok.Span, "expected ',' or ')', got '%s'", tokenText(tok))
		}
	}
	return args, nil
}

// ============================================================
// Declarations
// ============================================================

// parseFuncDecl parses: function type IDENT ( params ) block.
//
// The signature is registered into the enclosing scope before the body is
// parsed, so the function is visible to its own body (self-recursion
// resolves). Parameters live in a dedicated scope enclosing the body block's
// scope: the body may shadow a parameter, but parameters stay visible
// throughout.
func (p *Parser) parseFuncDecl() error {
	start := p.advance()

	sig, err := p.parseSignature()
	if err != nil {
		return err
	}

	fn := &ast.FuncDecl{Sig: sig}
	if err := p.scope.DefineFunction(ast.NewFunction(fn)); err != nil {
		return p.errf("E3005", start.Span, "function '%s' already declared in this scope", sig.Name)
	}

	paramScope := p.pushScope()
	defer p.popScope()
	for _, prm := range sig.Params {
		v := ast.NewVariable(prm.Type, prm.Name, start.Span)
		if err := paramScope.DefineVariable(v); err != nil {
			return p.errf("E3004", start.Span, "duplicate parameter '%s' in function '%s'", prm.Name, sig.Name)
		}
	}
	fn.ParamScope = paramScope

	body, err := p.parseBlock()
	if err != nil {
		return err
	}
	fn.Body = body
	fn.Span = span.Span{Start: start.Span.Start, End: body.Span.End}
	return nil
}

// parseNativeDecl parses: native type IDENT ( params ). The declaration is
// registered like a function but carries no body.
func (p *Parser) parseNativeDecl() (*ast.NativeDecl, error) {
	start := p.advance()

	sig, err := p.parseSignature()
	if err != nil {
		return nil, err
	}

	decl := &ast.NativeDecl{
		StmtBase: ast.MakeStmtBase(span.Span{Start: start.Span.Start, End: p.prevEnd()}),
		Sig:      sig,
	}
	if err := p.scope.DefineFunction(ast.NewNativeFunction(decl)); err != nil {
		return nil, p.errf("E3005", start.Span, "function '%s' already declared in this scope", sig.Name)
	}
	return decl, nil
}

// parseSignature parses: type IDENT ( [type IDENT {, type IDENT}] ) and
// enforces pairwise-distinct parameter names.
func (p *Parser) parseSignature() (*ast.Signature, error) {
	tp := p.advance()
	if !token.IsTypename(tp.Kind) {
		return nil, p.errf("E2001", tp.Span, "expected type name, got '%s'", tokenText(tp))
	}

	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	sig := &ast.Signature{Ret: ast.TypeFromToken(tp.Kind), Name: name.Lexeme}
	for p.peekKind() != token.RPAREN {
		ptp := p.advance()
		if !token.IsTypename(ptp.Kind) {
			return nil, p.errf("E2001", ptp.Span, "expected type name or ')', got '%s'", tokenText(ptp))
		}
		pname, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		for _, prm := range sig.Params {
			if prm.Name == pname.Lexeme {
				return nil, p.errf("E3004", pname.Span, "duplicate parameter '%s' in function '%s'", pname.Lexeme, sig.Name)
			}
		}
		sig.Params = append(sig.Params, ast.Param{Type: ast.TypeFromToken(ptp.Kind), Name: pname.Lexeme})

		if p.peekKind() == token.COMMA {
			p.advance()
			continue
		}
		if p.peekKind() != token.RPAREN {
			tok := p.peek(0)
			return nil, p.errf("E2001", tok.Span, "expected ',' or ')', got '%s'", tokenText(tok))
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return sig, nil
}

// ============================================================
// Expressions (precedence climbing)
// ============================================================

func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseBinary(1)
}

// parseBinary parses a left operand, then absorbs infix operators whose
// precedence is at least minPrec. The right operand is parsed one level
// tighter, which makes operators of equal precedence left-associative.
func (p *Parser) parseBinary(minPrec int) (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		op := p.peek(0)
		prec := token.Precedence(op.Kind)
		if prec < minPrec {
			break
		}
		p.advance()

		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}

		sp := span.Span{Start: left.GetSpan().Start, End: right.GetSpan().End}
		left = ast.NewBinary(op.Kind, left, right, sp)
	}

	return left, nil
}

// parseUnary parses the prefix operators ! and -, right-recursively; they
// bind tighter than any infix operator.
func (p *Parser) parseUnary() (ast.Expr, error) {
	tok := p.peek(0)
	if tok.Kind == token.BANG || tok.Kind == token.MINUS {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		sp := span.Span{Start: tok.Span.Start, End: operand.GetSpan().End}
		return ast.NewUnary(tok.Kind, operand, sp), nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.peek(0)

	switch tok.Kind {
	case token.INT:
		p.advance()
		val, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, p.errf("E2003", tok.Span, "malformed integer literal '%s'", tok.Lexeme)
		}
		return &ast.IntLit{ExprBase: ast.MakeExprBase(tok.Span), Value: val}, nil

	case token.DOUBLE:
		p.advance()
		val, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.errf("E2003", tok.Span, "malformed double literal '%s'", tok.Lexeme)
		}
		return &ast.DoubleLit{ExprBase: ast.MakeExprBase(tok.Span), Value: val}, nil

	case token.STRING:
		p.advance()
		return &ast.StringLit{ExprBase: ast.MakeExprBase(tok.Span), Value: tok.Lexeme}, nil

	case token.IDENT:
		if p.peek(1).Kind == token.LPAREN {
			return p.parseCall()
		}
		p.advance()
		v := p.scope.LookupVariable(tok.Lexeme)
		if v == nil {
			return nil, p.errf("E3001", tok.Span, "unknown variable '%s'", tok.Lexeme)
		}
		return &ast.Load{ExprBase: ast.MakeExprBase(tok.Span), Var: v}, nil

	case token.LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		return nil, p.errf("E2002", tok.Span, "unexpected token '%s'", tokenText(tok))
	}
}

// parseCall parses: IDENT ( args ), resolving the callee against the
// enclosing function table.
func (p *Parser) parseCall() (*ast.Call, error) {
	name := p.advance()
	fn := p.scope.LookupFunction(name.Lexeme)
	if fn == nil {
		return nil, p.errf("E3002", name.Span, "unknown function '%s'", name.Lexeme)
	}

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, err
	}

	return &ast.Call{
		ExprBase: ast.MakeExprBase(span.Span{Start: name.Span.Start, End: end.Span.End}),
		Name:     name.Lexeme,
		Fn:       fn,
		Args:     args,
	}, nil
}

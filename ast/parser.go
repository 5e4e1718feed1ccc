package ast

import (
	"fmt"
	"strconv"
	"strings"

	"brane/lexer"
)

// Parser is a hand-written recursive-descent front end producing the
// parse tree package compiler builds the AOT graph from. It is one concrete
// realization of the parser contract in spec.md §6.1, not part of the
// specified core (§1 treats "the concrete grammar and parser generator"
// as an external collaborator); it exists so the compiler is runnable
// end to end from source text.
type Parser struct {
	lex     *lexer.Lexer
	current lexer.Token
	peek    lexer.Token
	errors  []error
}

// New creates a Parser reading from src.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src)}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.current = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, fmt.Errorf("%d:%d: %s", p.current.Pos.Line, p.current.Pos.Column, fmt.Sprintf(format, args...)))
}

// Errors returns every syntax error accumulated while parsing.
func (p *Parser) Errors() []error { return p.errors }

func (p *Parser) expect(tt lexer.TokenType, what string) lexer.Token {
	tok := p.current
	if tok.Type != tt {
		p.errorf("expected %s, got %q", what, tok.Literal)
	}
	p.next()
	return tok
}

// ParseProgram parses a full compilation unit.
func (p *Parser) ParseProgram() *Program {
	prog := &Program{base: base{P: p.current.Pos}}
	for p.current.Type != lexer.EOF {
		switch p.current.Type {
		case lexer.KwStruct, lexer.KwPacked:
			prog.Structs = append(prog.Structs, p.parseStructDecl())
		case lexer.KwLink, lexer.KwInclude:
			prog.Links = append(prog.Links, p.parseLinkDecl())
		default:
			prog.Functions = append(prog.Functions, p.parseFuncDecl())
		}
	}
	return prog
}

func (p *Parser) parseLinkDecl() *LinkDecl {
	pos := p.current.Pos
	p.next() // 'link' or 'include'
	lib := p.expect(lexer.STRING, "library name")
	decl := &LinkDecl{base: base{P: pos}, Library: lib.Literal, Alias: lib.Literal}
	if p.current.Type == lexer.KwAs {
		p.next()
		alias := p.expect(lexer.IDENT, "alias")
		decl.Alias = alias.Literal
	}
	p.expect(lexer.SEMI, ";")
	return decl
}

func (p *Parser) parseStructDecl() *StructDecl {
	pos := p.current.Pos
	packed := false
	if p.current.Type == lexer.KwPacked {
		packed = true
		p.next()
	}
	p.expect(lexer.KwStruct, "struct")
	name := p.expect(lexer.IDENT, "struct name")
	p.expect(lexer.LBRACE, "{")
	decl := &StructDecl{base: base{P: pos}, Name: name.Literal, Packed: packed}
	for p.current.Type != lexer.RBRACE && p.current.Type != lexer.EOF {
		decl.Members = append(decl.Members, p.parseFieldDecl())
		p.expect(lexer.SEMI, ";")
	}
	p.expect(lexer.RBRACE, "}")
	return decl
}

// parseFieldDecl parses `[const] [ref] type name` or `[const] type ref name`.
func (p *Parser) parseFieldDecl() *FieldDecl {
	pos := p.current.Pos
	f := &FieldDecl{base: base{P: pos}}
	if p.current.Type == lexer.KwConst {
		f.IsConst = true
		p.next()
	}
	if p.current.Type == lexer.KwRef {
		f.IsRef = true
		p.next()
	}
	typ := p.expect(lexer.IDENT, "type name")
	if typ.Literal == "" && p.current.Type == lexer.KwVoid {
		typ.Literal = "void"
	}
	f.Type = typ.Literal
	if p.current.Type == lexer.KwRef {
		f.IsRef = true
		p.next()
	}
	name := p.expect(lexer.IDENT, "field name")
	f.Name = name.Literal
	return f
}

func (p *Parser) parseTypeName() string {
	if p.current.Type == lexer.KwVoid {
		p.next()
		return "void"
	}
	tok := p.expect(lexer.IDENT, "type name")
	return tok.Literal
}

func (p *Parser) parseFuncDecl() *FuncDecl {
	pos := p.current.Pos
	ret := p.parseTypeName()
	name := p.expect(lexer.IDENT, "function name")
	p.expect(lexer.LPAREN, "(")
	fn := &FuncDecl{base: base{P: pos}, Name: name.Literal, ReturnType: ret}
	for p.current.Type != lexer.RPAREN {
		fn.Args = append(fn.Args, p.parseFieldDecl())
		if p.current.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RPAREN, ")")
	p.expect(lexer.LBRACE, "{")
	for p.current.Type != lexer.RBRACE && p.current.Type != lexer.EOF {
		fn.Body = append(fn.Body, p.parseStmt())
	}
	p.expect(lexer.RBRACE, "}")
	return fn
}

// isTypeStart reports whether the current token can begin a local
// declaration: `const`, `ref`, or an identifier that is immediately
// followed by another identifier or `ref` (`Type name`, `Type ref name`).
// Primitive type names are ordinary identifiers, not keywords.
func (p *Parser) isTypeStart() bool {
	if p.current.Type == lexer.KwConst || p.current.Type == lexer.KwRef {
		return true
	}
	if p.current.Type != lexer.IDENT {
		return false
	}
	return p.peek.Type == lexer.IDENT || p.peek.Type == lexer.KwRef
}

func (p *Parser) parseStmt() Stmt {
	pos := p.current.Pos
	switch p.current.Type {
	case lexer.LBRACE:
		return p.parseScopeStmt()
	case lexer.KwIf:
		return p.parseIfStmt()
	case lexer.KwWhile:
		return p.parseWhileStmt()
	case lexer.KwReturn:
		p.next()
		if p.current.Type == lexer.SEMI {
			p.next()
			return &ReturnVoidStmt{base: base{P: pos}}
		}
		val := p.parseExpr()
		p.expect(lexer.SEMI, ";")
		return &ReturnValStmt{base: base{P: pos}, Value: val}
	default:
		if p.isTypeStart() {
			return p.parseDeclStmt()
		}
		x := p.parseExpr()
		p.expect(lexer.SEMI, ";")
		return &ExprStmt{base: base{P: pos}, X: x}
	}
}

func (p *Parser) parseScopeStmt() *ScopeStmt {
	pos := p.current.Pos
	p.expect(lexer.LBRACE, "{")
	s := &ScopeStmt{base: base{P: pos}}
	for p.current.Type != lexer.RBRACE && p.current.Type != lexer.EOF {
		s.Stmts = append(s.Stmts, p.parseStmt())
	}
	p.expect(lexer.RBRACE, "}")
	return s
}

func (p *Parser) parseIfStmt() *IfStmt {
	pos := p.current.Pos
	p.expect(lexer.KwIf, "if")
	p.expect(lexer.LPAREN, "(")
	cond := p.parseExpr()
	p.expect(lexer.RPAREN, ")")
	body := p.parseStmt()
	return &IfStmt{base: base{P: pos}, Cond: cond, Body: body}
}

func (p *Parser) parseWhileStmt() *WhileStmt {
	pos := p.current.Pos
	p.expect(lexer.KwWhile, "while")
	p.expect(lexer.LPAREN, "(")
	cond := p.parseExpr()
	p.expect(lexer.RPAREN, ")")
	body := p.parseStmt()
	return &WhileStmt{base: base{P: pos}, Cond: cond, Body: body}
}

func (p *Parser) parseDeclStmt() *DeclStmt {
	pos := p.current.Pos
	field := p.parseFieldDecl()
	d := &DeclStmt{base: base{P: pos}, Field: field}
	if p.current.Type == lexer.ASSIGN {
		p.next()
		d.Init = p.parseExpr()
	}
	p.expect(lexer.SEMI, ";")
	return d
}

// ---- expressions, lowest to highest precedence ----
// assignment > comparison > addsub > muldiv > cast > unary/primary

func (p *Parser) parseExpr() Expr { return p.parseAssignment() }

func (p *Parser) parseAssignment() Expr {
	left := p.parseComparison()
	if p.current.Type == lexer.ASSIGN {
		pos := p.current.Pos
		p.next()
		right := p.parseAssignment()
		return &Assignment{base: base{P: pos}, Dest: left, X: right}
	}
	return left
}

func (p *Parser) parseComparison() Expr {
	left := p.parseAddSub()
	for isComparisonOp(p.current.Type) {
		op := p.current
		p.next()
		right := p.parseAddSub()
		left = &Comparison{base: base{P: op.Pos}, Left: left, Op: op.Literal, Right: right}
	}
	return left
}

func isComparisonOp(tt lexer.TokenType) bool {
	switch tt {
	case lexer.EQ, lexer.NEQ, lexer.LT, lexer.LE, lexer.GT, lexer.GE:
		return true
	default:
		return false
	}
}

func (p *Parser) parseAddSub() Expr {
	left := p.parseMulDiv()
	for p.current.Type == lexer.PLUS || p.current.Type == lexer.MINUS {
		op := p.current
		p.next()
		right := p.parseMulDiv()
		left = &AddSub{base: base{P: op.Pos}, Left: left, Op: op.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseMulDiv() Expr {
	left := p.parseCast()
	for p.current.Type == lexer.STAR || p.current.Type == lexer.SLASH {
		op := p.current
		p.next()
		right := p.parseCast()
		left = &MulDiv{base: base{P: op.Pos}, Left: left, Op: op.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseCast() Expr {
	x := p.parsePrimary()
	for p.current.Type == lexer.KwAs {
		pos := p.current.Pos
		p.next()
		typ := p.parseTypeName()
		x = &Cast{base: base{P: pos}, X: x, TypeName: typ}
	}
	return x
}

func (p *Parser) parsePrimary() Expr {
	pos := p.current.Pos
	switch p.current.Type {
	case lexer.INT:
		v, err := strconv.ParseInt(p.current.Literal, 10, 64)
		if err != nil {
			p.errorf("bad integer literal %q: %v", p.current.Literal, err)
		}
		p.next()
		return &IntLit{base: base{P: pos}, Value: v}
	case lexer.FLOAT:
		raw := p.current.Literal
		lit := strings.TrimSuffix(raw, "f")
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			p.errorf("bad float literal %q: %v", raw, err)
		}
		p.next()
		return &FloatLit{base: base{P: pos}, Value: v, Is32Bit: strings.HasSuffix(raw, "f")}
	case lexer.STRING:
		v := p.current.Literal
		p.next()
		return &StringLit{base: base{P: pos}, Value: v}
	case lexer.CHAR:
		v := p.current.Literal
		p.next()
		var b byte
		if len(v) > 0 {
			b = v[0]
		}
		return &CharLit{base: base{P: pos}, Value: b}
	case lexer.KwTrue:
		p.next()
		return &BoolLit{base: base{P: pos}, Value: true}
	case lexer.KwFalse:
		p.next()
		return &BoolLit{base: base{P: pos}, Value: false}
	case lexer.KwNew:
		p.next()
		typ := p.expect(lexer.IDENT, "type name")
		return &NewExpr{base: base{P: pos}, TypeName: typ.Literal}
	case lexer.KwDelete:
		p.next()
		ptr := p.parseExpr()
		return &DeleteExpr{base: base{P: pos}, Ptr: ptr}
	case lexer.LPAREN:
		p.next()
		x := p.parseExpr()
		p.expect(lexer.RPAREN, ")")
		return x
	case lexer.IDENT:
		return p.parseIdentOrCall()
	default:
		p.errorf("unexpected token %q", p.current.Literal)
		p.next()
		return &IntLit{base: base{P: pos}, Value: 0}
	}
}

// parseIdentOrCall parses an identifier, then any chain of `.member`,
// `::name(args)`, or `(args)` suffixes.
func (p *Parser) parseIdentOrCall() Expr {
	pos := p.current.Pos
	name := p.current.Literal
	p.next()

	if p.current.Type == lexer.COLONCOLON {
		p.next()
		fname := p.expect(lexer.IDENT, "function name")
		return p.finishCall(pos, name, fname.Literal)
	}
	if p.current.Type == lexer.LPAREN {
		return p.finishCall(pos, "", name)
	}

	var x Expr = &Ident{base: base{P: pos}, Name: name}
	for p.current.Type == lexer.DOT {
		p.next()
		member := p.expect(lexer.IDENT, "member name")
		x = &MemberAccess{base: base{P: pos}, Base: x, Member: member.Literal}
	}
	return x
}

func (p *Parser) finishCall(pos lexer.Position, namespace, name string) Expr {
	p.expect(lexer.LPAREN, "(")
	call := &FunctionCall{base: base{P: pos}, Namespace: namespace, Name: name}
	for p.current.Type != lexer.RPAREN {
		call.Args = append(call.Args, p.parseExpr())
		if p.current.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RPAREN, ")")
	return call
}

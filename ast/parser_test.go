package ast

import "testing"

func TestParseFunctionDecl(t *testing.T) {
	src := `int add(int a, int b) { return a + b; }`
	p := New(src)
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	if len(prog.Functions) != 1 {
		t.Fatalf("got %d functions, want 1", len(prog.Functions))
	}
	fn := prog.Functions[0]
	if fn.Name != "add" || fn.ReturnType != "int" || len(fn.Args) != 2 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("got %d statements, want 1", len(fn.Body))
	}
	ret, ok := fn.Body[0].(*ReturnValStmt)
	if !ok {
		t.Fatalf("body[0] = %T, want *ReturnValStmt", fn.Body[0])
	}
	if _, ok := ret.Value.(*AddSub); !ok {
		t.Fatalf("return value = %T, want *AddSub", ret.Value)
	}
}

func TestParseStructDecl(t *testing.T) {
	src := `packed struct P { char a; int b; float c; }`
	p := New(src)
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	if len(prog.Structs) != 1 {
		t.Fatalf("got %d structs, want 1", len(prog.Structs))
	}
	s := prog.Structs[0]
	if s.Name != "P" || !s.Packed || len(s.Members) != 3 {
		t.Fatalf("unexpected struct shape: %+v", s)
	}
}

func TestParseDeclAndWhile(t *testing.T) {
	src := `int testWhile(int a, int b) {
		int i = 0;
		while (i < b) {
			i = i + a;
		}
		return i;
	}`
	p := New(src)
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	fn := prog.Functions[0]
	if len(fn.Body) != 3 {
		t.Fatalf("got %d statements, want 3", len(fn.Body))
	}
	if _, ok := fn.Body[0].(*DeclStmt); !ok {
		t.Fatalf("body[0] = %T, want *DeclStmt", fn.Body[0])
	}
	if _, ok := fn.Body[1].(*WhileStmt); !ok {
		t.Fatalf("body[1] = %T, want *WhileStmt", fn.Body[1])
	}
}

func TestParseLinkDecl(t *testing.T) {
	src := `link "mathlib" as math;
	int useIt() { return math::sqrt(4); }`
	p := New(src)
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	if len(prog.Links) != 1 || prog.Links[0].Alias != "math" {
		t.Fatalf("unexpected links: %+v", prog.Links)
	}
	ret := prog.Functions[0].Body[0].(*ReturnValStmt)
	call, ok := ret.Value.(*FunctionCall)
	if !ok || call.Namespace != "math" || call.Name != "sqrt" {
		t.Fatalf("unexpected call: %+v", ret.Value)
	}
}

func TestParseNewDelete(t *testing.T) {
	src := `void run() {
		S ref p = new S;
		delete p;
	}`
	p := New(src)
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	decl := prog.Functions[0].Body[0].(*DeclStmt)
	if !decl.Field.IsRef || decl.Field.Type != "S" {
		t.Fatalf("unexpected field decl: %+v", decl.Field)
	}
	if _, ok := decl.Init.(*NewExpr); !ok {
		t.Fatalf("init = %T, want *NewExpr", decl.Init)
	}
	stmt := prog.Functions[0].Body[1].(*ExprStmt)
	if _, ok := stmt.X.(*DeleteExpr); !ok {
		t.Fatalf("stmt.X = %T, want *DeleteExpr", stmt.X)
	}
}

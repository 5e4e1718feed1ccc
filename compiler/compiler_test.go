package compiler

import (
	"testing"

	"brane/ast"
	"brane/types"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := ast.New(src)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return prog
}

func TestCompileMissingReturn(t *testing.T) {
	prog := mustParse(t, `int noReturn(int a) { int x = a; }`)
	res := Compile(prog, NewStaticLinker())
	if len(res.Errors) != 1 || res.Errors[0].Kind != types.ErrMissingReturn {
		t.Fatalf("Errors = %v, want a single MissingReturn", res.Errors)
	}
}

func TestCompileOverloadsMangleDistinctly(t *testing.T) {
	prog := mustParse(t, `
		int pick(int a) { return a; }
		int pick(int a, int b) { return a + b; }
	`)
	res := Compile(prog, NewStaticLinker())
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if idx := res.Script.FindFunction("pick(int)"); idx < 0 {
		t.Errorf("pick(int) not found")
	}
	if idx := res.Script.FindFunction("pick(int,int)"); idx < 0 {
		t.Errorf("pick(int,int) not found")
	}
}

func TestCompileDuplicateOverloadIsNameInUse(t *testing.T) {
	prog := mustParse(t, `
		int dup(int a) { return a; }
		int dup(int a) { return a; }
	`)
	res := Compile(prog, NewStaticLinker())
	if len(res.Errors) != 1 || res.Errors[0].Kind != types.ErrNameInUse {
		t.Fatalf("Errors = %v, want a single NameInUse", res.Errors)
	}
}

func TestCompilePaddedStructLayout(t *testing.T) {
	prog := mustParse(t, `
		struct S { char a; int b; float c; }
		int useS(int x) { return x; }
	`)
	res := Compile(prog, NewStaticLinker())
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Script.LocalStructs) != 1 {
		t.Fatalf("got %d structs, want 1", len(res.Script.LocalStructs))
	}
	sd := res.Script.LocalStructs[0]
	if sd.Packed {
		t.Errorf("S should not be packed")
	}
	if sd.Size != 12 {
		t.Errorf("padded size = %d, want 12", sd.Size)
	}
}

func TestCompilePackedStructLayout(t *testing.T) {
	prog := mustParse(t, `
		packed struct P { char a; int b; float c; }
		int useP(int x) { return x; }
	`)
	res := Compile(prog, NewStaticLinker())
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	sd := res.Script.LocalStructs[0]
	if !sd.Packed {
		t.Errorf("P should be packed")
	}
	if sd.Size != 9 {
		t.Errorf("packed size = %d, want 9", sd.Size)
	}
}

func TestCompileConstantFoldingPoolsSingleConst(t *testing.T) {
	prog := mustParse(t, `int fold() { return 1 + 2 * 3; }`)
	res := Compile(prog, NewStaticLinker())
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	idx := res.Script.FindFunction("fold()")
	if idx < 0 {
		t.Fatalf("fold() not found")
	}
	fn := res.Script.LocalFunctions[idx]
	if len(fn.Constants) != 1 {
		t.Fatalf("got %d pooled constants, want 1", len(fn.Constants))
	}
}

func TestCompileNumericMismatchOnDeclInitIsRejected(t *testing.T) {
	prog := mustParse(t, `float badFloatInit() { float x = 3; return x; }`)
	res := Compile(prog, NewStaticLinker())
	if len(res.Errors) != 1 || res.Errors[0].Kind != types.ErrTypeMismatch {
		t.Fatalf("Errors = %v, want a single TypeMismatch", res.Errors)
	}
}

func TestCompileNumericMismatchOnAssignmentIsRejected(t *testing.T) {
	prog := mustParse(t, `
		float badFloatAssign() {
			float x = 1.0f;
			int y = 3;
			x = y;
			return x;
		}
	`)
	res := Compile(prog, NewStaticLinker())
	if len(res.Errors) != 1 || res.Errors[0].Kind != types.ErrTypeMismatch {
		t.Fatalf("Errors = %v, want a single TypeMismatch", res.Errors)
	}
}

func TestCompileRefOnPrimitiveIsInvalidQualifier(t *testing.T) {
	prog := mustParse(t, `int badRef() { ref int x = 0; return 0; }`)
	res := Compile(prog, NewStaticLinker())
	if len(res.Errors) != 1 || res.Errors[0].Kind != types.ErrInvalidRefQualifier {
		t.Fatalf("Errors = %v, want a single InvalidRefQualifier", res.Errors)
	}
}

func TestCompileShadowingInNestedScope(t *testing.T) {
	prog := mustParse(t, `
		int shadow(int a) {
			while (a < 10) {
				int a = 1;
				a = a + 1;
			}
			return a;
		}
	`)
	res := Compile(prog, NewStaticLinker())
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
}

func TestCompileNewAndDeleteOnStructRoundTrip(t *testing.T) {
	prog := mustParse(t, `
		struct Pair { int x; int y; }
		int makePair(int seed) {
			ref Pair p = new Pair;
			p.x = seed;
			p.y = seed;
			int total = p.x + p.y;
			delete p;
			return total;
		}
	`)
	res := Compile(prog, NewStaticLinker())
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
}

func TestCompileNonObjectDeleteRejected(t *testing.T) {
	prog := mustParse(t, `
		int badDelete(int a) {
			delete a;
			return a;
		}
	`)
	res := Compile(prog, NewStaticLinker())
	if len(res.Errors) != 1 || res.Errors[0].Kind != types.ErrNonObjectDelete {
		t.Fatalf("Errors = %v, want a single NonObjectDelete", res.Errors)
	}
}

func TestCompileLinkWithoutLinkerIsRejected(t *testing.T) {
	prog := mustParse(t, `
		link "libm" as math;
		int useMath(int a) { return a; }
	`)
	res := Compile(prog, nil)
	if len(res.Errors) != 1 || res.Errors[0].Kind != types.ErrLinkerUnset {
		t.Fatalf("Errors = %v, want a single LinkerUnset", res.Errors)
	}
}

func TestCompileExternalCallThroughLinker(t *testing.T) {
	lib := NewStaticLibrary("libm")
	lib.Declare("abs(int)", "int")
	linker := NewStaticLinker()
	linker.Register("libm", lib)

	prog := mustParse(t, `
		link "libm" as math;
		int useAbs(int a) { return math::abs(a); }
	`)
	res := Compile(prog, linker)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Script.LinkedLibraries) != 1 || res.Script.LinkedLibraries[0] != "libm" {
		t.Errorf("LinkedLibraries = %v, want [libm]", res.Script.LinkedLibraries)
	}
}

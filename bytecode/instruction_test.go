package bytecode

import (
	"reflect"
	"testing"

	"brane/types"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ins := Instruction{
		Op:   ADD,
		Kind: types.Int32,
		Operands: []Operand{
			{Storage: types.StorageReg, Kind: types.Int32, Index: 1},
			{Storage: types.StorageReg, Kind: types.Int32, Index: 2},
			{Storage: types.StorageReg, Kind: types.Int32, Index: 3},
		},
	}
	buf := Encode(nil, ins)
	got, next := Decode(buf, 0, 3)
	if !reflect.DeepEqual(got, ins) {
		t.Fatalf("decoded %+v, want %+v", got, ins)
	}
	if next != len(buf) {
		t.Fatalf("next offset = %d, want %d", next, len(buf))
	}
}

func TestRegisterRecycling(t *testing.T) {
	fn := NewScriptFunction("f()", "int", nil)
	a := fn.NewReg(types.Int32)
	b := fn.NewReg(types.Int32)
	if a == b {
		t.Fatalf("expected distinct registers, got %d twice", a)
	}
	fn.ReleaseReg(types.Int32, a)
	c := fn.NewReg(types.Int32)
	if c != a {
		t.Fatalf("expected recycled register %d, got %d", a, c)
	}
}

func TestIRScriptFindFunction(t *testing.T) {
	s := NewIRScript()
	s.AddFunction(NewScriptFunction("add(int,int)", "int", []string{"int", "int"}))
	if idx := s.FindFunction("add(int,int)"); idx != 0 {
		t.Fatalf("FindFunction = %d, want 0", idx)
	}
	if idx := s.FindFunction("missing()"); idx != -1 {
		t.Fatalf("FindFunction(missing) = %d, want -1", idx)
	}
}

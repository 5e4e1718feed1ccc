package aot

import (
	"brane/types"
	"testing"
)

func TestArithNodeOptimizeFoldsConstants(t *testing.T) {
	// 1 + 2 * 3 should collapse to a single Const 7 before Emit ever runs.
	n := &ArithNode{
		Op:   ArithAdd,
		Left: NewConstNode(NewIntLiteral(types.Int32, 1)),
		Right: &ArithNode{
			Op:    ArithMul,
			Left:  NewConstNode(NewIntLiteral(types.Int32, 2)),
			Right: NewConstNode(NewIntLiteral(types.Int32, 3)),
		},
	}
	folded := n.Optimize()
	c, ok := folded.(*ConstNode)
	if !ok {
		t.Fatalf("Optimize() = %T, want *ConstNode", folded)
	}
	if c.Lit.I != 7 {
		t.Errorf("folded value = %d, want 7", c.Lit.I)
	}
}

func TestArithNodeOptimizeLeavesNonConstAlone(t *testing.T) {
	n := &ArithNode{
		Op:    ArithAdd,
		Left:  &ValueRefNode{Index: 0, Def: types.NewPrimitive(types.Int32)},
		Right: NewConstNode(NewIntLiteral(types.Int32, 1)),
	}
	folded := n.Optimize()
	if _, ok := folded.(*ConstNode); ok {
		t.Fatalf("Optimize() folded a non-constant subtree")
	}
}

func TestCastNodeOptimizeFoldsConstant(t *testing.T) {
	n := &CastNode{
		X:      NewConstNode(NewIntLiteral(types.Int32, 3)),
		Target: types.NewPrimitive(types.Float64),
	}
	folded := n.Optimize()
	c, ok := folded.(*ConstNode)
	if !ok {
		t.Fatalf("Optimize() = %T, want *ConstNode", folded)
	}
	if c.Lit.Kind != types.Float64 || c.Lit.F != 3.0 {
		t.Errorf("folded literal = %+v, want Float64 3.0", c.Lit)
	}
	if c.ResultType().Kind() != types.Float64 {
		t.Errorf("ResultType() = %v, want Float64", c.ResultType().Kind())
	}
}

func TestCompareModeInvert(t *testing.T) {
	tests := []struct {
		mode CompareMode
		want CompareMode
	}{
		{CmpEqual, CmpNotEqual},
		{CmpNotEqual, CmpEqual},
		{CmpGreater, CmpGreaterEqual},
		{CmpGreaterEqual, CmpGreater},
	}
	for _, tt := range tests {
		if got := tt.mode.invert(); got != tt.want {
			t.Errorf("%v.invert() = %v, want %v", tt.mode, got, tt.want)
		}
		if got := tt.mode.invert().invert(); got != tt.mode {
			t.Errorf("invert() is not its own inverse for %v: got %v", tt.mode, got)
		}
	}
}

func TestNewCompareNodeSwapsForLessThan(t *testing.T) {
	left := NewConstNode(NewIntLiteral(types.Int32, 1))
	right := NewConstNode(NewIntLiteral(types.Int32, 2))

	n := NewCompareNode(left, "<", right)
	if n.Mode != CmpGreater {
		t.Errorf("mode = %v, want CmpGreater", n.Mode)
	}
	if n.Left != right || n.Right != left {
		t.Errorf("operands not swapped for '<'")
	}
}

func TestWidenPrefersFloatThenWiderInt(t *testing.T) {
	if got := widen(types.Int32, types.Float32); got != types.Float64 {
		t.Errorf("widen(Int32, Float32) = %v, want Float64", got)
	}
	if got := widen(types.Int32, types.Int64); got != types.Int64 {
		t.Errorf("widen(Int32, Int64) = %v, want Int64", got)
	}
	if got := widen(types.Int32, types.Int32); got != types.Int32 {
		t.Errorf("widen(Int32, Int32) = %v, want Int32", got)
	}
}

package aot

import (
	"brane/bytecode"
	"brane/types"
)

// CompareMode is the four-way comparison mode a CompareNode is built with.
// `<` and `<=` are not distinct modes: the graph builder swaps operands and
// builds Greater/GreaterEqual instead (§4.5).
type CompareMode int

const (
	CmpEqual CompareMode = iota
	CmpNotEqual
	CmpGreater
	CmpGreaterEqual
)

func (m CompareMode) compareType() types.CompareType {
	switch m {
	case CmpEqual:
		return types.CompareEqual
	case CmpNotEqual:
		return types.CompareNotEqual
	case CmpGreater:
		return types.CompareGreater
	case CmpGreaterEqual:
		return types.CompareGreaterEqual
	default:
		return types.CompareNone
	}
}

// invert returns the mode that is true exactly when m is false, given
// operands are also swapped (see emitBranch in if_node.go for why this
// pairing — Equal/NotEqual are symmetric and swapping is a no-op for them,
// Greater/GreaterEqual require the swap to stay correct with only forward
// Jcc opcodes available, §9).
func (m CompareMode) invert() CompareMode {
	switch m {
	case CmpEqual:
		return CmpNotEqual
	case CmpNotEqual:
		return CmpEqual
	case CmpGreater:
		return CmpGreaterEqual
	case CmpGreaterEqual:
		return CmpGreater
	default:
		return m
	}
}

// CompareNode is a deferred comparison flag (§3.3 Compare, §9). Its result
// is Bool but nothing is materialized until reification (castReg) or a
// direct branch.
type CompareNode struct {
	Mode        CompareMode
	Left, Right Node
}

// NewCompareNode builds a Compare node for op ∈ {"==","!=","<","<=",">",">="},
// normalizing `<`/`<=` by swapping operands into `>`/`>=` (§4.5).
func NewCompareNode(left Node, op string, right Node) *CompareNode {
	switch op {
	case "==":
		return &CompareNode{Mode: CmpEqual, Left: left, Right: right}
	case "!=":
		return &CompareNode{Mode: CmpNotEqual, Left: left, Right: right}
	case ">":
		return &CompareNode{Mode: CmpGreater, Left: left, Right: right}
	case ">=":
		return &CompareNode{Mode: CmpGreaterEqual, Left: left, Right: right}
	case "<":
		return &CompareNode{Mode: CmpGreater, Left: right, Right: left}
	case "<=":
		return &CompareNode{Mode: CmpGreaterEqual, Left: right, Right: left}
	default:
		panic("aot: unknown comparison operator " + op)
	}
}

func (n *CompareNode) ResultType() *types.TypeDef { return types.NewPrimitive(types.Bool) }

func (n *CompareNode) Optimize() Node {
	n.Left = n.Left.Optimize()
	n.Right = n.Right.Optimize()
	return n
}

// forceOperands emits both sides into matching-width registers, inserting
// an implicit widening Cast when the two sides' kinds differ (§4.5 Arith
// widening table, reused here for comparisons).
func (n *CompareNode) forceOperands(ctx *Context) (types.AotValue, types.AotValue) {
	left := n.Left.Emit(ctx)
	right := n.Right.Emit(ctx)
	lk, rk := left.Def.Kind(), right.Def.Kind()
	if lk != rk && left.Def.IsNumeric() && right.Def.IsNumeric() {
		target := widen(lk, rk)
		if lk != target {
			left = emitImplicitCast(ctx, left, target)
		}
		if rk != target {
			right = emitImplicitCast(ctx, right, target)
		}
	}
	return castReg(ctx, left), castReg(ctx, right)
}

// Emit forces both operands to registers, emits CMP, and returns a
// deferred comparison flag (§4.5).
func (n *CompareNode) Emit(ctx *Context) types.AotValue {
	left, right := n.forceOperands(ctx)
	emit(ctx, bytecode.CMP, left.Def.Kind(), left.Index, right.Index)
	return types.AotValue{Def: n.ResultType(), CompareType: n.Mode.compareType()}
}

// emitInverseBranch emits CMP with swapped operands and the inverted mode,
// then a conditional jump to mark — taken exactly when the original
// comparison is false. This is the "otherwise CMP against zero"-adjacent
// path §4.5 describes for If/While: a single CMP realizes the skip branch
// without ever materializing the flag into a register.
func (n *CompareNode) emitInverseBranch(ctx *Context, mark uint32) {
	left, right := n.forceOperands(ctx)
	emit(ctx, bytecode.CMP, left.Def.Kind(), right.Index, left.Index)
	op, _ := bytecode.JumpOpcodeFor(n.Mode.invert().compareType())
	emitJump(ctx, op, mark)
}

package aot

import (
	"brane/bytecode"
	"brane/types"
)

// ArithOp is the four binary arithmetic operators (§3.3 Arith).
type ArithOp int

const (
	ArithAdd ArithOp = iota
	ArithSub
	ArithMul
	ArithDiv
)

func (op ArithOp) opcode() bytecode.OpCode {
	switch op {
	case ArithAdd:
		return bytecode.ADD
	case ArithSub:
		return bytecode.SUB
	case ArithMul:
		return bytecode.MUL
	default:
		return bytecode.DIV
	}
}

func (op ArithOp) symbol() string {
	switch op {
	case ArithAdd:
		return "+"
	case ArithSub:
		return "-"
	case ArithMul:
		return "*"
	default:
		return "/"
	}
}

// ArithNode is a binary arithmetic expression (§3.3 Arith).
type ArithNode struct {
	Op          ArithOp
	Left, Right Node
}

func (n *ArithNode) ResultType() *types.TypeDef {
	return types.NewPrimitive(widen(n.Left.ResultType().Kind(), n.Right.ResultType().Kind()))
}

// Optimize recurses into both operands, then folds Op(Const,Const) into a
// single Const (§4.4 property 3).
func (n *ArithNode) Optimize() Node {
	n.Left = n.Left.Optimize()
	n.Right = n.Right.Optimize()
	lc, lok := n.Left.(*ConstNode)
	rc, rok := n.Right.(*ConstNode)
	if lok && rok {
		return NewConstNode(FoldArith(lc.Lit, rc.Lit, n.Op.symbol()))
	}
	return n
}

// Emit realizes §4.5 Arith: force both operands to register form, widen the
// narrower side with an implicit Cast, allocate a result temp (reusing a
// Temp-flagged operand where possible), emit the typed opcode.
func (n *ArithNode) Emit(ctx *Context) types.AotValue {
	left := castReg(ctx, n.Left.Emit(ctx))
	right := castReg(ctx, n.Right.Emit(ctx))
	target := widen(left.Def.Kind(), right.Def.Kind())
	if left.Def.Kind() != target {
		left = emitImplicitCast(ctx, left, target)
	}
	if right.Def.Kind() != target {
		right = emitImplicitCast(ctx, right, target)
	}
	def := types.NewPrimitive(target)
	dest := takeTempOrFresh(ctx, def, left, right)
	emit(ctx, n.Op.opcode(), target, dest.Index, left.Index, right.Index)
	if dest.Index != left.Index {
		releaseIfTemp(ctx, left)
	}
	if dest.Index != right.Index {
		releaseIfTemp(ctx, right)
	}
	return dest
}

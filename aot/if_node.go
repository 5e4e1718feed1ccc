package aot

import (
	"brane/bytecode"
	"brane/types"
)

// IfNode is a one-armed conditional (§3.3 If). `else` is not part of the
// grammar: two-armed conditionals are written as two separate ifs (§8
// testIfElse).
type IfNode struct {
	Cond Node
	Body Node
}

func (n *IfNode) ResultType() *types.TypeDef { return types.NewPrimitive(types.Void) }

func (n *IfNode) Optimize() Node {
	n.Cond = n.Cond.Optimize()
	n.Body = n.Body.Optimize()
	return n
}

// emitBranch emits the inverse-condition jump to mark, taken when Cond is
// false. A *CompareNode branches directly off a swapped-operand CMP (§4.5);
// any other condition node is reified to a register and compared against
// zero, jumping to mark on NotEqual-to-zero inverted, i.e. Equal.
func emitBranch(ctx *Context, cond Node, mark uint32) {
	if cmp, ok := cond.(*CompareNode); ok {
		cmp.emitInverseBranch(ctx, mark)
		return
	}
	v := castReg(ctx, cond.Emit(ctx))
	zero := newConst(ctx, NewBoolLiteral(false), 0)
	emit(ctx, bytecode.CMP, v.Def.Kind(), v.Index, zero.Index)
	emitJump(ctx, bytecode.JE, mark)
}

// Emit realizes §4.5 If: emit the inverse conditional jump to Mend, emit
// the body, mark Mend.
func (n *IfNode) Emit(ctx *Context) types.AotValue {
	mend := ctx.Fn.NewMark()
	emitBranch(ctx, n.Cond, mend)
	n.Body.Emit(ctx)
	emitMark(ctx, mend)
	return types.NullValue(types.NewPrimitive(types.Void))
}

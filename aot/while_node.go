package aot

import (
	"brane/bytecode"
	"brane/types"
)

// WhileNode is a pre-tested loop (§3.3 While). break/continue are not part
// of the grammar (§9 Non-goals).
type WhileNode struct {
	Cond Node
	Body Node
}

func (n *WhileNode) ResultType() *types.TypeDef { return types.NewPrimitive(types.Void) }

func (n *WhileNode) Optimize() Node {
	n.Cond = n.Cond.Optimize()
	n.Body = n.Body.Optimize()
	return n
}

// Emit realizes §4.5 While: MARK Mcond; emit cond; inverse jump to Mend;
// emit body; JMP Mcond; MARK Mend.
func (n *WhileNode) Emit(ctx *Context) types.AotValue {
	mcond := ctx.Fn.NewMark()
	mend := ctx.Fn.NewMark()
	emitMark(ctx, mcond)
	emitBranch(ctx, n.Cond, mend)
	n.Body.Emit(ctx)
	emitJump(ctx, bytecode.JMP, mcond)
	emitMark(ctx, mend)
	return types.NullValue(types.NewPrimitive(types.Void))
}

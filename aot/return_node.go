package aot

import (
	"brane/bytecode"
	"brane/types"
)

// ReturnVoidNode terminates a void function (§3.3 ReturnVoid).
type ReturnVoidNode struct{}

func (n *ReturnVoidNode) ResultType() *types.TypeDef { return types.NewPrimitive(types.Void) }
func (n *ReturnVoidNode) Optimize() Node             { return n }

func (n *ReturnVoidNode) Emit(ctx *Context) types.AotValue {
	emit(ctx, bytecode.RET, types.Void)
	ctx.MarkReturned()
	return types.NullValue(types.NewPrimitive(types.Void))
}

// ReturnValueNode terminates a non-void function, yielding X (§3.3
// ReturnValue). X is wrapped in a CastNode by the graph builder when its
// type does not already match the declared return type (§4.3).
type ReturnValueNode struct {
	X Node
}

func (n *ReturnValueNode) ResultType() *types.TypeDef { return types.NewPrimitive(types.Void) }

func (n *ReturnValueNode) Optimize() Node {
	n.X = n.X.Optimize()
	return n
}

// Emit realizes §4.5 Return: emit the (possibly-cast) expression, MOV into
// the function's return slot, emit RETV.
func (n *ReturnValueNode) Emit(ctx *Context) types.AotValue {
	v := castReg(ctx, n.X.Emit(ctx))
	slot := ctx.ReturnSlot()
	emit(ctx, bytecode.MOV, slot.Kind, slot, v.Index)
	emit(ctx, bytecode.RETV, slot.Kind, slot)
	ctx.MarkReturned()
	return types.NullValue(types.NewPrimitive(types.Void))
}

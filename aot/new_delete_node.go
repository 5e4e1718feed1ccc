package aot

import (
	"brane/bytecode"
	"brane/types"
)

// NewNode allocates a fresh struct instance and returns an ObjectRef to it
// (§3.3 New). §7 NonObjectNew: TypeDef must be a struct type.
type NewNode struct {
	Def *types.TypeDef
}

func (n *NewNode) ResultType() *types.TypeDef { return types.NewObjectRefType(n.Def.StructDef()) }

func (n *NewNode) Optimize() Node { return n }

// Emit allocates a fresh temp of the object-ref kind and emits MALLOC of
// the struct's laid-out size.
func (n *NewNode) Emit(ctx *Context) types.AotValue {
	size := newConst(ctx, NewIntLiteral(types.Int32, int64(n.Def.Size())), 0)
	dest := newReg(ctx, n.ResultType(), types.FlagTemp)
	emit(ctx, bytecode.MALLOC, types.ObjectRef, dest.Index, size.Index)
	return dest
}

// DeleteNode releases an object previously obtained from New (§3.3 Delete).
// §7 NonObjectDelete: Ptr must resolve to an ObjectRef.
type DeleteNode struct {
	Ptr Node
	Line, Column int
}

func (n *DeleteNode) ResultType() *types.TypeDef { return types.NewPrimitive(types.Void) }

func (n *DeleteNode) Optimize() Node {
	n.Ptr = n.Ptr.Optimize()
	return n
}

func (n *DeleteNode) Emit(ctx *Context) types.AotValue {
	if n.Ptr.ResultType().Kind() != types.ObjectRef {
		ctx.errorf(types.ErrNonObjectDelete, n.Line, n.Column, "delete requires an object reference")
		return types.NullValue(types.NewPrimitive(types.Void))
	}
	v := castReg(ctx, n.Ptr.Emit(ctx))
	emit(ctx, bytecode.FREE, types.ObjectRef, v.Index)
	return types.NullValue(types.NewPrimitive(types.Void))
}

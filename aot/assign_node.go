package aot

import (
	"brane/bytecode"
	"brane/types"
)

// AssignNode stores a value into an lvalue (§3.3 Assign). Dest must be a
// *ValueRefNode or *DerefNode; any other node kind as a destination is
// reported at Emit as a TypeMismatch ("invalid assignment target").
type AssignNode struct {
	Dest Node
	X    Node
	Line, Column int
}

func (n *AssignNode) ResultType() *types.TypeDef { return types.NewPrimitive(types.Void) }

func (n *AssignNode) Optimize() Node {
	n.Dest = n.Dest.Optimize()
	n.X = n.X.Optimize()
	return n
}

func (n *AssignNode) Emit(ctx *Context) types.AotValue {
	switch dest := n.Dest.(type) {
	case *ValueRefNode:
		if dest.IsConst {
			ctx.errorf(types.ErrTypeMismatch, n.Line, n.Column, "cannot assign to const local")
			return types.NullValue(types.NewPrimitive(types.Void))
		}
		rhs := castReg(ctx, n.X.Emit(ctx))
		lhs := dest.Emit(ctx)
		emit(ctx, bytecode.MOV, dest.Def.Kind(), lhs.Index, rhs.Index)
	case *DerefNode:
		rhs := castReg(ctx, n.X.Emit(ctx))
		base := castReg(ctx, dest.Base.Emit(ctx))
		offset := newConst(ctx, NewIntLiteral(types.Int32, int64(dest.Offset)), 0)
		emit(ctx, bytecode.STORE, dest.FieldType.Kind(), base.Index, offset.Index, rhs.Index)
	default:
		ctx.errorf(types.ErrTypeMismatch, n.Line, n.Column, "invalid assignment target")
	}
	return types.NullValue(types.NewPrimitive(types.Void))
}

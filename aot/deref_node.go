package aot

import (
	"brane/bytecode"
	"brane/types"
)

// DerefNode reads a struct field through a base value at a fixed byte
// offset (§3.3 Deref).
type DerefNode struct {
	Base       Node
	FieldType  *types.TypeDef
	Offset     int
}

func (n *DerefNode) ResultType() *types.TypeDef { return n.FieldType }

func (n *DerefNode) Optimize() Node {
	n.Base = n.Base.Optimize()
	return n
}

// Emit loads the field into a fresh temp register (§4.5).
func (n *DerefNode) Emit(ctx *Context) types.AotValue {
	base := castReg(ctx, n.Base.Emit(ctx))
	dest := newReg(ctx, n.FieldType, types.FlagTemp)
	offset := NewIntLiteral(types.Int32, int64(n.Offset))
	offsetVal := newConst(ctx, offset, 0)
	emit(ctx, bytecode.LOAD, n.FieldType.Kind(), dest.Index, base.Index, offsetVal.Index)
	return dest
}

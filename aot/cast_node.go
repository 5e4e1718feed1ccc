package aot

import (
	"brane/bytecode"
	"brane/types"
)

// CastNode converts its inner node's value to Target (§3.3 Cast). The VM's
// MOV performs the numeric conversion; the node only selects the
// destination width and kind.
type CastNode struct {
	X      Node
	Target *types.TypeDef
}

func (n *CastNode) ResultType() *types.TypeDef { return n.Target }

// Optimize folds Cast(Const) into a retyped Const (§4.4).
func (n *CastNode) Optimize() Node {
	n.X = n.X.Optimize()
	if c, ok := n.X.(*ConstNode); ok {
		return NewConstNode(FoldCast(c.Lit, n.Target.Kind()))
	}
	return n
}

func (n *CastNode) Emit(ctx *Context) types.AotValue {
	v := castReg(ctx, n.X.Emit(ctx))
	if v.Def.Kind() == n.Target.Kind() {
		return v
	}
	dest := newReg(ctx, n.Target, types.FlagTemp)
	emit(ctx, bytecode.MOV, n.Target.Kind(), dest.Index, v.Index)
	releaseIfTemp(ctx, v)
	return dest
}

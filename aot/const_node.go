package aot

import "brane/types"

// ConstNode is a typed literal (§3.3 Const).
type ConstNode struct {
	Lit Literal
	def *types.TypeDef
}

// NewConstNode wraps a literal as a leaf node.
func NewConstNode(lit Literal) *ConstNode {
	return &ConstNode{Lit: lit, def: types.NewPrimitive(lit.Kind)}
}

func (n *ConstNode) ResultType() *types.TypeDef { return n.def }

// Optimize returns the node unchanged: a Const is already maximally
// folded.
func (n *ConstNode) Optimize() Node { return n }

// Emit allocates a constant-pool slot and emits no code (§4.5).
func (n *ConstNode) Emit(ctx *Context) types.AotValue {
	return newConst(ctx, n.Lit, types.FlagConstexpr)
}

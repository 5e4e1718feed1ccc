package aot

import "brane/types"

// ScopeNode is an ordered block of statements executed for effect
// (§3.3 Scope). It does not itself push a lexical scope onto the
// Context — callers (If/While bodies, function bodies) that need block
// scoping call ctx.BeginScope/EndScope around construction, matching
// §4.6 step 4's single function-argument scope plus any nested block
// scopes introduced by the parse tree.
type ScopeNode struct {
	Stmts []Node
}

func (n *ScopeNode) ResultType() *types.TypeDef { return types.NewPrimitive(types.Void) }

func (n *ScopeNode) Optimize() Node {
	for i, s := range n.Stmts {
		n.Stmts[i] = s.Optimize()
	}
	return n
}

func (n *ScopeNode) Emit(ctx *Context) types.AotValue {
	for _, s := range n.Stmts {
		s.Emit(ctx)
	}
	return types.NullValue(types.NewPrimitive(types.Void))
}

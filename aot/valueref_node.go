package aot

import "brane/types"

// ValueRefNode is a reference to a declared local (§3.3 ValueRef).
type ValueRefNode struct {
	Index   uint32
	Def     *types.TypeDef
	IsConst bool
	IsRef   bool
}

func (n *ValueRefNode) ResultType() *types.TypeDef { return n.Def }

func (n *ValueRefNode) Optimize() Node { return n }

// Emit returns the local's storage: Ptr for ref-qualified locals,
// StackPtr for by-value struct locals (whose fields are reached at a
// runtime-managed stack address, not packed into a single register), Reg
// otherwise (§4.5, §3.2).
func (n *ValueRefNode) Emit(ctx *Context) types.AotValue {
	storage := types.StorageReg
	switch {
	case n.IsRef:
		storage = types.StoragePtr
	case n.Def.Kind() == types.Struct:
		storage = types.StorageStackPtr
	}
	return types.AotValue{
		Def:   n.Def,
		Index: types.ValueIndex{Storage: storage, Kind: n.Def.Kind(), Index: n.Index},
	}
}

// ValueRefFor resolves an identifier to a ValueRef node bound to its
// innermost scope binding (§4.1 getValueNode), or false when unresolved.
func (c *Context) ValueRefFor(name string) (*ValueRefNode, bool) {
	b, ok := c.LookupLocal(name)
	if !ok {
		return nil, false
	}
	return &ValueRefNode{Index: b.index, Def: b.def, IsConst: b.isConst, IsRef: b.isRef}, true
}

package aot

import "brane/types"

// Node is the base of the AOT expression-node graph (§3.3). Every node
// exclusively owns its operand nodes; there is no sharing.
type Node interface {
	// ResultType returns the type this node's Emit produces (Void for
	// statements).
	ResultType() *types.TypeDef
	// Optimize returns either the node itself or a folded replacement
	// (§4.4). Callers must discard their reference to the receiver and use
	// the returned node instead.
	Optimize() Node
	// Emit lowers the node to bytecode against ctx and returns its result
	// descriptor.
	Emit(ctx *Context) types.AotValue
}

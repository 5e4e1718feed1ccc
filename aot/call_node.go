package aot

import (
	"brane/bytecode"
	"brane/types"
)

// FunctionCallNode calls a function defined in the same compilation unit
// (§3.3 FunctionCall). Mangled is resolved once, during graph construction,
// from Name and each argument's static result type (§6.2).
type FunctionCallNode struct {
	Name    string
	Mangled string
	Args    []Node
	RetDef  *types.TypeDef
	Line, Column int
}

func (n *FunctionCallNode) ResultType() *types.TypeDef { return n.RetDef }

func (n *FunctionCallNode) Optimize() Node {
	for i, a := range n.Args {
		n.Args[i] = a.Optimize()
	}
	return n
}

// Emit realizes §4.5 FunctionCall: emit arguments in declaration order,
// each reified to a register, and append CALL localIndex, retSlot, args…
func (n *FunctionCallNode) Emit(ctx *Context) types.AotValue {
	idx, ok := ctx.LocalFunctionIndex(n.Mangled)
	if !ok {
		ctx.errorf(types.ErrUnknownFunction, n.Line, n.Column, "undefined function %q", n.Mangled)
		return types.NullValue(n.RetDef)
	}
	target := types.ValueIndex{Storage: types.StorageConst, Kind: types.Int32, Index: uint32(idx)}
	operands := []types.ValueIndex{target}
	var ret types.AotValue
	if n.RetDef.Kind() == types.Void {
		ret = types.NullValue(n.RetDef)
	} else {
		ret = newReg(ctx, n.RetDef, types.FlagTemp)
	}
	operands = append(operands, ret.Index)
	for _, a := range n.Args {
		v := castReg(ctx, a.Emit(ctx))
		operands = append(operands, v.Index)
	}
	emit(ctx, bytecode.CALL, n.RetDef.Kind(), operands...)
	return ret
}

// ExternalFunctionCallNode calls a function exported by a linked library
// through an alias (§3.3 ExternalFunctionCall, §6.2). The mangled name is
// stored as a raw-bytes constant-pool entry: the instruction set has no
// dedicated string operand kind, so the lookup key travels the same way a
// numeric literal would, tagged Char to mark it as opaque bytes rather than
// a numeric value.
type ExternalFunctionCallNode struct {
	Alias   string
	Name    string
	Mangled string
	Args    []Node
	RetDef  *types.TypeDef
	Line, Column int
}

func (n *ExternalFunctionCallNode) ResultType() *types.TypeDef { return n.RetDef }

func (n *ExternalFunctionCallNode) Optimize() Node {
	for i, a := range n.Args {
		n.Args[i] = a.Optimize()
	}
	return n
}

func (n *ExternalFunctionCallNode) Emit(ctx *Context) types.AotValue {
	libIdx, ok := ctx.LibraryAliasIndex(n.Alias)
	if !ok {
		ctx.errorf(types.ErrUnknownLibrary, n.Line, n.Column, "unlinked library alias %q", n.Alias)
		return types.NullValue(n.RetDef)
	}
	nameConst := ctx.Fn.NewConst(bytecode.Constant{Kind: types.Char, Bytes: []byte(n.Mangled)})
	operands := []types.ValueIndex{
		{Storage: types.StorageConst, Kind: types.Int32, Index: uint32(libIdx)},
		{Storage: types.StorageConst, Kind: types.Char, Index: nameConst},
	}
	var ret types.AotValue
	if n.RetDef.Kind() == types.Void {
		ret = types.NullValue(n.RetDef)
	} else {
		ret = newReg(ctx, n.RetDef, types.FlagTemp)
	}
	operands = append(operands, ret.Index)
	for _, a := range n.Args {
		v := castReg(ctx, a.Emit(ctx))
		operands = append(operands, v.Index)
	}
	emit(ctx, bytecode.EXT_CALL, n.RetDef.Kind(), operands...)
	return ret
}

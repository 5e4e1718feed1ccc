package aot

import (
	"brane/bytecode"
	"brane/types"
)

// newReg allocates a fresh virtual register of the given type (§4.5).
// Void types return a Null-storage value and allocate nothing.
func newReg(ctx *Context, def *types.TypeDef, flags types.Flag) types.AotValue {
	if def.Kind() == types.Void {
		return types.NullValue(def)
	}
	idx := ctx.Fn.NewReg(def.Kind())
	return types.AotValue{
		Def:   def,
		Flags: flags,
		Index: types.ValueIndex{Storage: types.StorageReg, Kind: def.Kind(), Index: idx},
	}
}

// newConst returns the AotValue for lit's constant-pool slot (§4.5). The
// slot is not always fresh: a literal equal in kind and encoded bytes to an
// existing pool entry reuses that entry's slot (ScriptFunction.NewConst).
func newConst(ctx *Context, lit Literal, flags types.Flag) types.AotValue {
	idx := ctx.Fn.NewConst(lit.Encode())
	def := types.NewPrimitive(lit.Kind)
	return types.AotValue{
		Def:   def,
		Flags: flags | types.FlagConstexpr,
		Index: types.ValueIndex{Storage: types.StorageConst, Kind: lit.Kind, Index: idx},
	}
}

func emit(ctx *Context, op bytecode.OpCode, kind types.Kind, operands ...types.ValueIndex) {
	ins := bytecode.Instruction{Op: op, Kind: kind}
	for _, o := range operands {
		ins.Operands = append(ins.Operands, bytecode.OperandFromValueIndex(o))
	}
	ctx.Fn.Emit(ins)
}

// releaseIfTemp returns v's register to the free list when v is a
// Temp-flagged register, so a subsequent newReg of the same kind recycles
// it (§12 register recycling).
func releaseIfTemp(ctx *Context, v types.AotValue) {
	if v.Flags.Has(types.FlagTemp) && v.Index.Storage == types.StorageReg {
		ctx.Fn.ReleaseReg(v.Index.Kind, v.Index.Index)
	}
}

// castReg forces v into register form: returns v unchanged if it is
// already Reg/Ptr/StackPtr, otherwise materializes it into a temp register
// via MOV, or via the appropriate SET* opcode if v is a deferred
// comparison flag (§4.5).
func castReg(ctx *Context, v types.AotValue) types.AotValue {
	if v.IsDeferredCompare() {
		dest := newReg(ctx, types.NewPrimitive(types.Bool), types.FlagTemp)
		op, _ := bytecode.SetOpcodeFor(v.CompareType)
		emit(ctx, op, types.Bool, dest.Index)
		return dest
	}
	if v.IsReg() {
		return v
	}
	dest := newReg(ctx, v.Def, types.FlagTemp)
	emit(ctx, bytecode.MOV, v.Def.Kind(), dest.Index, v.Index)
	return dest
}

// castTemp is idempotent for Temp-flagged values; otherwise it MOVs v into
// a fresh temp so the caller may clobber it freely (§4.5).
func castTemp(ctx *Context, v types.AotValue) types.AotValue {
	reg := castReg(ctx, v)
	if reg.Flags.Has(types.FlagTemp) {
		return reg
	}
	dest := newReg(ctx, reg.Def, types.FlagTemp)
	emit(ctx, bytecode.MOV, reg.Def.Kind(), dest.Index, reg.Index)
	return dest
}

// takeTempOrFresh returns a Temp-flagged operand for reuse as an
// arithmetic result register, or allocates a fresh one when neither
// operand is reusable (§4.5 Arith: "allocate a result temp (or reuse a
// Temp-flagged operand)").
func takeTempOrFresh(ctx *Context, def *types.TypeDef, candidates ...types.AotValue) types.AotValue {
	for _, c := range candidates {
		if c.Flags.Has(types.FlagTemp) && c.Index.Storage == types.StorageReg && c.Def.Kind() == def.Kind() {
			return c
		}
	}
	return newReg(ctx, def, types.FlagTemp)
}

// emitImplicitCast converts v to target via a typed MOV into a fresh temp
// register (§4.5 Arith: "insert an implicit Cast of the narrower to the
// wider"). The VM's MOV performs the numeric conversion; the compiler only
// needs to select the destination width.
func emitImplicitCast(ctx *Context, v types.AotValue, target types.Kind) types.AotValue {
	src := castReg(ctx, v)
	if src.Def.Kind() == target {
		return src
	}
	dest := newReg(ctx, types.NewPrimitive(target), types.FlagTemp)
	emit(ctx, bytecode.MOV, target, dest.Index, src.Index)
	releaseIfTemp(ctx, src)
	return dest
}

func emitMark(ctx *Context, mark uint32) {
	emit(ctx, bytecode.MARK, types.Void, types.ValueIndex{Storage: types.StorageNull, Kind: types.Void, Index: mark})
}

func emitJump(ctx *Context, op bytecode.OpCode, mark uint32) {
	emit(ctx, op, types.Void, types.ValueIndex{Storage: types.StorageNull, Kind: types.Void, Index: mark})
}

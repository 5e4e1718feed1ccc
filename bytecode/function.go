package bytecode

import "brane/types"

// ScriptFunction is one function under construction (§3.5) or, once
// compilation finishes, one entry of an IRScript's localFunctions.
type ScriptFunction struct {
	MangledName string     `yaml:"mangledName"`
	ReturnType  string     `yaml:"returnType"`
	ArgTypes    []string   `yaml:"argTypes"`
	Code        []byte     `yaml:"code"`
	Constants   []Constant `yaml:"constants"`

	nextReg   uint32
	nextConst uint32
	nextMark  uint32
	freeRegs  map[types.Kind][]uint32 // Temp-flagged registers retired and available for reuse
}

// Constant is one entry of a function's constant pool, tagged with its
// value kind so the runtime can decode Const-storage operands without a
// side table.
type Constant struct {
	Kind  types.Kind `yaml:"kind"`
	Bytes []byte     `yaml:"bytes"` // native little-endian encoding of the literal
}

// NewScriptFunction begins a function with the given mangled name,
// return-type name, and ordered argument type names (§3.5, §4.6 step 3).
func NewScriptFunction(mangledName, returnType string, argTypes []string) *ScriptFunction {
	return &ScriptFunction{
		MangledName: mangledName,
		ReturnType:  returnType,
		ArgTypes:    argTypes,
		Code:        make([]byte, 0, 64),
		freeRegs:    make(map[types.Kind][]uint32),
	}
}

// NewReg allocates a fresh virtual register slot of the given kind,
// preferring one retired by ReleaseReg over growing the counter.
func (f *ScriptFunction) NewReg(kind types.Kind) uint32 {
	if free := f.freeRegs[kind]; len(free) > 0 {
		idx := free[len(free)-1]
		f.freeRegs[kind] = free[:len(free)-1]
		return idx
	}
	idx := f.nextReg
	f.nextReg++
	return idx
}

// ReleaseReg returns a register to the free list so a later NewReg of the
// same kind can recycle it (§12: Temp-flagged register recycling).
func (f *ScriptFunction) ReleaseReg(kind types.Kind, idx uint32) {
	f.freeRegs[kind] = append(f.freeRegs[kind], idx)
}

// NewConst returns the index of an existing pool entry equal to c by kind
// and encoded bytes, or appends c and returns its new index. Deduplication
// is by exact literal value, not by the AOT node or source text that
// produced it, so `1 + 1` and a literal `2` elsewhere in the same function
// share one slot once both have folded to the same Constant.
func (f *ScriptFunction) NewConst(c Constant) uint32 {
	for i, existing := range f.Constants {
		if existing.Kind == c.Kind && string(existing.Bytes) == string(c.Bytes) {
			return uint32(i)
		}
	}
	idx := f.nextConst
	f.nextConst++
	f.Constants = append(f.Constants, c)
	return idx
}

// NewMark allocates a fresh symbolic branch-target id.
func (f *ScriptFunction) NewMark() uint32 {
	idx := f.nextMark
	f.nextMark++
	return idx
}

// Emit appends one instruction to the function's code buffer.
func (f *ScriptFunction) Emit(ins Instruction) {
	f.Code = Encode(f.Code, ins)
}

// NumLocals reports how many distinct register slots this function's body
// used across its lifetime (peak, not counting recycling).
func (f *ScriptFunction) NumLocals() int { return int(f.nextReg) }

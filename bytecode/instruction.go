package bytecode

import "brane/types"

// Operand is the wire form of a ValueIndex: which pool it lives in, the
// value kind, and the numeric slot (§6.4).
type Operand struct {
	Storage types.StorageType
	Kind    types.Kind
	Index   uint32
}

// OperandFromValueIndex packs a types.ValueIndex into its wire Operand.
func OperandFromValueIndex(vi types.ValueIndex) Operand {
	return Operand{Storage: vi.Storage, Kind: vi.Kind, Index: vi.Index}
}

// Instruction is one decoded entry in a function's code buffer: an opcode,
// the value type it operates on, and its operands.
type Instruction struct {
	Op       OpCode
	Kind     types.Kind
	Operands []Operand
}

// Encode appends the wire form of an instruction to buf, following §6.4:
// (u8 opcode, u8 valueType, operands...) where each operand is a
// (u8 storageType, u8 valueType, u32 index) triple, index little-endian.
func Encode(buf []byte, ins Instruction) []byte {
	buf = append(buf, byte(ins.Op), byte(ins.Kind))
	for _, op := range ins.Operands {
		buf = append(buf, byte(op.Storage), byte(op.Kind))
		buf = append(buf,
			byte(op.Index),
			byte(op.Index>>8),
			byte(op.Index>>16),
			byte(op.Index>>24),
		)
	}
	return buf
}

// operandSize is the encoded byte length of one Operand: 2 tag bytes plus
// a 4-byte little-endian index.
const operandSize = 6

// instructionHeaderSize is the encoded byte length of an instruction's
// opcode and value-type bytes, before any operands.
const instructionHeaderSize = 2

// Decode reads one instruction starting at offset, returning it and the
// offset of the next instruction. numOperands must be supplied by the
// caller from the opcode's known arity (the encoding carries no operand
// count of its own, matching a fixed-arity instruction set).
func Decode(buf []byte, offset int, numOperands int) (Instruction, int) {
	op := OpCode(buf[offset])
	kind := types.Kind(buf[offset+1])
	pos := offset + instructionHeaderSize
	operands := make([]Operand, numOperands)
	for i := 0; i < numOperands; i++ {
		storage := types.StorageType(buf[pos])
		k := types.Kind(buf[pos+1])
		idx := uint32(buf[pos+2]) | uint32(buf[pos+3])<<8 | uint32(buf[pos+4])<<16 | uint32(buf[pos+5])<<24
		operands[i] = Operand{Storage: storage, Kind: k, Index: idx}
		pos += operandSize
	}
	return Instruction{Op: op, Kind: kind, Operands: operands}, pos
}

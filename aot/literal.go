package aot

import (
	"encoding/binary"
	"math"

	"brane/bytecode"
	"brane/types"
)

// Literal is the payload of a Const node: a typed scalar value known at
// compile time. Integers and Bool/Char are carried in I; Float32/Float64
// are carried in F.
type Literal struct {
	Kind types.Kind
	I    int64
	F    float64
}

// NewBoolLiteral wraps a boolean constant.
func NewBoolLiteral(v bool) Literal {
	if v {
		return Literal{Kind: types.Bool, I: 1}
	}
	return Literal{Kind: types.Bool, I: 0}
}

// NewCharLiteral wraps a char constant.
func NewCharLiteral(v byte) Literal { return Literal{Kind: types.Char, I: int64(v)} }

// NewIntLiteral wraps a signed integer constant of the given width kind
// (Int32 or Int64), truncating to that width's two's-complement range.
func NewIntLiteral(kind types.Kind, v int64) Literal {
	if kind == types.Int32 {
		v = int64(int32(v))
	}
	return Literal{Kind: kind, I: v}
}

// NewFloatLiteral wraps a floating-point constant of the given width kind.
func NewFloatLiteral(kind types.Kind, v float64) Literal {
	if kind == types.Float32 {
		v = float64(float32(v))
	}
	return Literal{Kind: kind, F: v}
}

// AsFloat64 returns the literal's value coerced to float64, regardless of
// its native kind — used by the widening table (§4.4).
func (l Literal) AsFloat64() float64 {
	if l.Kind == types.Float32 || l.Kind == types.Float64 {
		return l.F
	}
	return float64(l.I)
}

// widen picks the unified numeric kind for a binary operation over a, b
// per §4.4: Float64 if either operand is float, else the wider integer
// width.
func widen(a, b types.Kind) types.Kind {
	af := a == types.Float32 || a == types.Float64
	bf := b == types.Float32 || b == types.Float64
	if af || bf {
		return types.Float64
	}
	if a == types.Int64 || b == types.Int64 {
		return types.Int64
	}
	return types.Int32
}

// FoldArith computes the exact native-arithmetic result of op over two
// literals on their widened common type (§4.4, §8 property 3). op is one
// of "+", "-", "*", "/".
func FoldArith(a, b Literal, op string) Literal {
	kind := widen(a.Kind, b.Kind)
	if kind == types.Float64 {
		x, y := a.AsFloat64(), b.AsFloat64()
		var r float64
		switch op {
		case "+":
			r = x + y
		case "-":
			r = x - y
		case "*":
			r = x * y
		case "/":
			r = x / y
		}
		return NewFloatLiteral(types.Float64, r)
	}
	x, y := a.I, b.I
	var r int64
	switch op {
	case "+":
		r = x + y
	case "-":
		r = x - y
	case "*":
		r = x * y
	case "/":
		if y == 0 {
			r = 0
		} else {
			r = x / y
		}
	}
	return NewIntLiteral(kind, r)
}

// FoldCast converts a literal to the given target kind at compile time,
// in place of the typed MOV a CastNode would otherwise emit.
func FoldCast(l Literal, target types.Kind) Literal {
	switch target {
	case types.Bool:
		if l.AsFloat64() != 0 {
			return NewBoolLiteral(true)
		}
		return NewBoolLiteral(false)
	case types.Char:
		return NewCharLiteral(byte(l.I))
	case types.Int32, types.Int64:
		if l.Kind == types.Float32 || l.Kind == types.Float64 {
			return NewIntLiteral(target, int64(l.F))
		}
		return NewIntLiteral(target, l.I)
	case types.Float32, types.Float64:
		return NewFloatLiteral(target, l.AsFloat64())
	default:
		return l
	}
}

// Encode serializes a literal into the little-endian native encoding
// stored in the function's constant pool (§6.4).
func (l Literal) Encode() bytecode.Constant {
	buf := make([]byte, 8)
	switch l.Kind {
	case types.Bool, types.Char:
		buf = buf[:1]
		buf[0] = byte(l.I)
	case types.Int32:
		binary.LittleEndian.PutUint32(buf, uint32(int32(l.I)))
		buf = buf[:4]
	case types.Int64:
		binary.LittleEndian.PutUint64(buf, uint64(l.I))
	case types.Float32:
		binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(l.F)))
		buf = buf[:4]
	case types.Float64:
		binary.LittleEndian.PutUint64(buf, math.Float64bits(l.F))
	}
	return bytecode.Constant{Kind: l.Kind, Bytes: buf}
}

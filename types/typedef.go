// Package types implements the BraneScript type and symbol environment:
// primitive and struct type descriptors, struct layout, and the value
// categories produced by the bytecode emitter.
package types

// Kind enumerates the primitive and aggregate categories a TypeDef can be.
type Kind int

const (
	Void Kind = iota
	Bool
	Char
	Int32
	Int64
	Float32
	Float64
	Struct
	ObjectRef
)

// primitiveSizes gives the storage size in bytes of every non-struct kind.
// ObjectRef is a heap pointer; it is sized like Int64 on the target VM.
var primitiveSizes = map[Kind]int{
	Void:      0,
	Bool:      1,
	Char:      1,
	Int32:     4,
	Int64:     8,
	Float32:   4,
	Float64:   8,
	ObjectRef: 8,
}

var primitiveNames = map[Kind]string{
	Void:      "void",
	Bool:      "bool",
	Char:      "char",
	Int32:     "int",
	Int64:     "long",
	Float32:   "float",
	Float64:   "double",
	ObjectRef: "objref",
}

// TypeDef is a resolved type: a primitive kind, or a Struct/ObjectRef
// pointing at a StructDef.
type TypeDef struct {
	kind   Kind
	name   string   // reserved keyword for primitives, declared name for structs
	strukt *StructDef // non-nil when kind is Struct or ObjectRef
}

// NewPrimitive returns the canonical TypeDef for a primitive kind.
func NewPrimitive(k Kind) *TypeDef {
	if k == Struct || k == ObjectRef {
		panic("types: NewPrimitive called with aggregate kind")
	}
	return &TypeDef{kind: k, name: primitiveNames[k]}
}

// NewStructType returns the in-place aggregate TypeDef for a declared struct.
func NewStructType(def *StructDef) *TypeDef {
	return &TypeDef{kind: Struct, name: def.Name, strukt: def}
}

// NewObjectRefType returns the heap-reference TypeDef pointing at a struct.
func NewObjectRefType(def *StructDef) *TypeDef {
	return &TypeDef{kind: ObjectRef, name: def.Name, strukt: def}
}

func (t *TypeDef) Kind() Kind { return t.kind }
func (t *TypeDef) Name() string { return t.name }

// StructDef returns the backing struct for Struct/ObjectRef kinds, or nil.
func (t *TypeDef) StructDef() *StructDef { return t.strukt }

// Size returns the storage size in bytes: the struct's laid-out size for
// Struct, a fixed pointer size for ObjectRef, or the primitive's size.
func (t *TypeDef) Size() int {
	switch t.kind {
	case Struct:
		return t.strukt.Size
	case ObjectRef:
		return primitiveSizes[ObjectRef]
	default:
		return primitiveSizes[t.kind]
	}
}

// IsNumeric reports whether the type participates in arithmetic and the
// widening table of §4.4.
func (t *TypeDef) IsNumeric() bool {
	switch t.kind {
	case Int32, Int64, Float32, Float64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether the type is one of the two float kinds.
func (t *TypeDef) IsFloat() bool {
	return t.kind == Float32 || t.kind == Float64
}

// IntWidth returns the integer width in bits for Int32/Int64, or 0.
func (t *TypeDef) IntWidth() int {
	switch t.kind {
	case Int32:
		return 32
	case Int64:
		return 64
	default:
		return 0
	}
}

// Equal reports whether two TypeDefs denote the same type: same kind and,
// for aggregates, the same underlying StructDef.
func (t *TypeDef) Equal(other *TypeDef) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.kind != other.kind {
		return false
	}
	if t.kind == Struct || t.kind == ObjectRef {
		return t.strukt == other.strukt
	}
	return true
}

func (t *TypeDef) String() string { return t.name }

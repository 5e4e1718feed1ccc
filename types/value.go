package types

// StorageType identifies which pool an AotValue's index refers into.
type StorageType int

const (
	StorageNull StorageType = iota
	StorageReg
	StoragePtr
	StorageStackPtr
	StorageDerefPtr
	StorageConst
)

func (s StorageType) String() string {
	switch s {
	case StorageNull:
		return "Null"
	case StorageReg:
		return "Reg"
	case StoragePtr:
		return "Ptr"
	case StorageStackPtr:
		return "StackPtr"
	case StorageDerefPtr:
		return "DerefPtr"
	case StorageConst:
		return "Const"
	default:
		return "Unknown"
	}
}

// CompareType identifies the deferred comparison mode carried by a
// flag-valued AotValue. See §3.2 and §9: a value with CompareType != None
// has StorageType == StorageNull and must be reified before use as
// anything but a branch condition.
type CompareType int

const (
	CompareNone CompareType = iota
	CompareEqual
	CompareNotEqual
	CompareAbove
	CompareGreater
	CompareAboveEqual
	CompareGreaterEqual
)

// Flag is a bitset of properties attached to an AotValue.
type Flag int

const (
	FlagTemp Flag = 1 << iota
	FlagConstexpr
)

func (f Flag) Has(bit Flag) bool { return f&bit != 0 }

// ValueIndex is the (storage, kind, index) triple that locates an
// AotValue's storage: which pool, what element kind, and the numeric slot
// within it.
type ValueIndex struct {
	Storage StorageType
	Kind    Kind
	Index   uint32
}

// AotValue is the result descriptor returned by every node's emit step: a
// type, a flag set, a storage location, and (for deferred comparisons) the
// comparison mode instead of a location.
type AotValue struct {
	Def         *TypeDef
	Flags       Flag
	Index       ValueIndex
	CompareType CompareType
}

// NullValue is the result of emitting a Void-typed expression: nothing was
// produced, and no storage was allocated.
func NullValue(def *TypeDef) AotValue {
	return AotValue{Def: def, Index: ValueIndex{Storage: StorageNull}}
}

// IsDeferredCompare reports whether this value is a comparison flag that
// has not yet been reified into a register.
func (v AotValue) IsDeferredCompare() bool { return v.CompareType != CompareNone }

// IsReg reports whether the value already lives in a register or a
// register-like storage (Ptr, StackPtr) that castReg can treat as one.
func (v AotValue) IsReg() bool {
	switch v.Index.Storage {
	case StorageReg, StoragePtr, StorageStackPtr:
		return true
	default:
		return false
	}
}

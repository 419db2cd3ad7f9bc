package core

import "fmt"

// RawConstKind enumerates the constants the parser can produce: generic
// literals whose width is not yet known, and the primitive type names.
type RawConstKind int

const (
	RawInt RawConstKind = iota
	RawFloat
	RawString
	RawChar
	RawStringType
	RawCharType
	RawU8Type
	RawU16Type
	RawU32Type
	RawU64Type
	RawI8Type
	RawI16Type
	RawI32Type
	RawI64Type
	RawF32Type
	RawF64Type
)

// RawConstant is a literal or primitive type name before elaboration.
// Integer literals are held as uint64 and reinterpreted during checking.
type RawConstant struct {
	Kind  RawConstKind
	Int   uint64
	Float float64
	Str   string
	Char  rune
}

func (c RawConstant) String() string {
	switch c.Kind {
	case RawInt:
		return fmt.Sprintf("%d", c.Int)
	case RawFloat:
		return fmt.Sprintf("%g", c.Float)
	case RawString:
		return fmt.Sprintf("%q", c.Str)
	case RawChar:
		return fmt.Sprintf("%q", c.Char)
	}
	return rawTypeNames[c.Kind]
}

var rawTypeNames = map[RawConstKind]string{
	RawStringType: "String",
	RawCharType:   "Char",
	RawU8Type:     "U8",
	RawU16Type:    "U16",
	RawU32Type:    "U32",
	RawU64Type:    "U64",
	RawI8Type:     "I8",
	RawI16Type:    "I16",
	RawI32Type:    "I32",
	RawI64Type:    "I64",
	RawF32Type:    "F32",
	RawF64Type:    "F64",
}

// PrimitiveTypeName maps an identifier to the raw constant kind of the
// primitive type it names, if any.
func PrimitiveTypeName(ident string) (RawConstKind, bool) {
	for kind, name := range rawTypeNames {
		if name == ident {
			return kind, true
		}
	}
	return 0, false
}

// ConstKind enumerates elaborated constants: literals with a specific width
// and signedness, plus the primitive type names.
type ConstKind int

const (
	ConstString ConstKind = iota
	ConstChar
	ConstU8
	ConstU16
	ConstU32
	ConstU64
	ConstI8
	ConstI16
	ConstI32
	ConstI64
	ConstF32
	ConstF64
	ConstStringType
	ConstCharType
	ConstU8Type
	ConstU16Type
	ConstU32Type
	ConstU64Type
	ConstI8Type
	ConstI16Type
	ConstI32Type
	ConstI64Type
	ConstF32Type
	ConstF64Type
)

// Constant is an elaborated constant.
type Constant struct {
	Kind  ConstKind
	Str   string
	Char  rune
	Uint  uint64
	Int   int64
	Float float64
}

// IsType reports whether the constant is a primitive type name.
func (c Constant) IsType() bool { return c.Kind >= ConstStringType }

// Eq decides constant equality, comparing the payload relevant to the kind.
func (c Constant) Eq(other Constant) bool {
	if c.Kind != other.Kind {
		return false
	}
	switch c.Kind {
	case ConstString:
		return c.Str == other.Str
	case ConstChar:
		return c.Char == other.Char
	case ConstU8, ConstU16, ConstU32, ConstU64:
		return c.Uint == other.Uint
	case ConstI8, ConstI16, ConstI32, ConstI64:
		return c.Int == other.Int
	case ConstF32, ConstF64:
		return c.Float == other.Float
	}
	return true
}

var constTypeNames = map[ConstKind]string{
	ConstStringType: "String",
	ConstCharType:   "Char",
	ConstU8Type:     "U8",
	ConstU16Type:    "U16",
	ConstU32Type:    "U32",
	ConstU64Type:    "U64",
	ConstI8Type:     "I8",
	ConstI16Type:    "I16",
	ConstI32Type:    "I32",
	ConstI64Type:    "I64",
	ConstF32Type:    "F32",
	ConstF64Type:    "F64",
}

func (c Constant) String() string {
	switch c.Kind {
	case ConstString:
		return fmt.Sprintf("%q", c.Str)
	case ConstChar:
		return fmt.Sprintf("%q", c.Char)
	case ConstU8, ConstU16, ConstU32, ConstU64:
		return fmt.Sprintf("%d", c.Uint)
	case ConstI8, ConstI16, ConstI32, ConstI64:
		return fmt.Sprintf("%d", c.Int)
	case ConstF32, ConstF64:
		return fmt.Sprintf("%g", c.Float)
	}
	return constTypeNames[c.Kind]
}

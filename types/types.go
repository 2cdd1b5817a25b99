package types

import "strings"

// Type represents a Sprig data type.
type Type interface {
	// Returns whether this type is equal to the other type.  This should only
	// be called through Equals.
	equals(other Type) bool

	// Returns the representative string for this type.
	Repr() string
}

// -----------------------------------------------------------------------------

// PrimitiveType represents a primitive type.  This must be one of the
// enumerated primitive type values below.
type PrimitiveType int

// Enumeration of the different primitive types.
const (
	PrimTypeVoid PrimitiveType = iota
	PrimTypeInteger
	PrimTypeFloat
	PrimTypeBoolean
	PrimTypeString
	PrimTypeChar
)

func (pt PrimitiveType) equals(other Type) bool {
	if opt, ok := other.(PrimitiveType); ok {
		return pt == opt
	}

	return false
}

func (pt PrimitiveType) Repr() string {
	switch pt {
	case PrimTypeVoid:
		return "Void"
	case PrimTypeInteger:
		return "Integer"
	case PrimTypeFloat:
		return "Float"
	case PrimTypeBoolean:
		return "Boolean"
	case PrimTypeString:
		return "String"
	default:
		return "Char"
	}
}

// -----------------------------------------------------------------------------

// StructType represents a user-defined structure type.  Struct types are
// nominal: two struct types are equal only if they are the same declaration.
type StructType struct {
	// The struct's name.
	Name string

	// The list of fields of the struct in order.
	Fields []StructField

	// A mapping between field names and their index within the struct.
	Indices map[string]int
}

// StructField represents a field of a structure type.
type StructField struct {
	// The field's name.
	Name string

	// The field's type.
	Type Type
}

// NewStructType creates a new struct type with no fields.  The fields are
// added with AddField once the declaration is fully parsed.
func NewStructType(name string) *StructType {
	return &StructType{Name: name, Indices: make(map[string]int)}
}

// AddField appends a field to the struct.  It returns false if a field by the
// same name already exists.
func (st *StructType) AddField(name string, typ Type) bool {
	if _, ok := st.Indices[name]; ok {
		return false
	}

	st.Indices[name] = len(st.Fields)
	st.Fields = append(st.Fields, StructField{Name: name, Type: typ})
	return true
}

// FieldIndex returns the index of the field with the given name.
func (st *StructType) FieldIndex(name string) (int, bool) {
	ndx, ok := st.Indices[name]
	return ndx, ok
}

func (st *StructType) equals(other Type) bool {
	if ost, ok := other.(*StructType); ok {
		return st == ost
	}

	return false
}

func (st *StructType) Repr() string {
	return st.Name
}

// -----------------------------------------------------------------------------

// EnumType represents a user-defined enumeration.  Each variant is represented
// by its index in the declaration.
type EnumType struct {
	// The enum's name.
	Name string

	// The names of the variants in declaration order.
	Variants []string
}

// VariantIndex returns the index of the variant with the given name.
func (et *EnumType) VariantIndex(name string) (int, bool) {
	for i, variant := range et.Variants {
		if variant == name {
			return i, true
		}
	}

	return -1, false
}

func (et *EnumType) equals(other Type) bool {
	if oet, ok := other.(*EnumType); ok {
		return et == oet
	}

	return false
}

func (et *EnumType) Repr() string {
	return et.Name
}

// -----------------------------------------------------------------------------

// FuncType represents the signature of a function.  It is never the type of a
// value since functions are not first-class: it is only used to describe
// function symbols.
type FuncType struct {
	// The parameter types of the function.
	ParamTypes []Type

	// The return type of the function.
	ReturnType Type
}

func (ft *FuncType) equals(other Type) bool {
	if oft, ok := other.(*FuncType); ok {
		if len(ft.ParamTypes) != len(oft.ParamTypes) {
			return false
		}

		for i, paramtyp := range ft.ParamTypes {
			if !Equals(paramtyp, oft.ParamTypes[i]) {
				return false
			}
		}

		return Equals(ft.ReturnType, oft.ReturnType)
	}

	return false
}

func (ft *FuncType) Repr() string {
	sb := strings.Builder{}

	sb.WriteString("fn(")
	for i, paramtyp := range ft.ParamTypes {
		if i != 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(paramtyp.Repr())
	}
	sb.WriteString("): ")

	if ft.ReturnType == nil {
		sb.WriteString("?")
	} else {
		sb.WriteString(ft.ReturnType.Repr())
	}

	return sb.String()
}

package types

// Equals returns whether two types are equal.  A nil type is only equal to
// another nil type.
func Equals(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return a.equals(b)
}

// Repr returns the representative string of typ, allowing for a nil type.
func Repr(typ Type) string {
	if typ == nil {
		return "<unknown>"
	}

	return typ.Repr()
}

// IsVoid returns whether the given type is the void type.
func IsVoid(typ Type) bool {
	return Equals(typ, PrimTypeVoid)
}

// IsIntegral returns whether the given type is represented as an integer and
// supports the integral operators: bitwise operators, shifts, and modulo.
func IsIntegral(typ Type) bool {
	return Equals(typ, PrimTypeInteger)
}

// IsNumeric returns whether the given type supports the arithmetic operators.
func IsNumeric(typ Type) bool {
	return Equals(typ, PrimTypeInteger) || Equals(typ, PrimTypeFloat)
}

// IsOrdered returns whether values of the given type can be compared using the
// ordering operators: `<`, `>`, etc.
func IsOrdered(typ Type) bool {
	return IsNumeric(typ) || Equals(typ, PrimTypeChar)
}

// IsComparable returns whether values of the given type can be compared using
// the equality operators: `==` and `!=`.
func IsComparable(typ Type) bool {
	switch v := typ.(type) {
	case PrimitiveType:
		return v != PrimTypeVoid && v != PrimTypeString
	case *EnumType:
		return true
	default:
		return false
	}
}

// IsMatchable returns whether values of the given type can be the scrutinee of
// a match expression.
func IsMatchable(typ Type) bool {
	return IsComparable(typ) && !Equals(typ, PrimTypeFloat)
}

// PrimTypeByName maps the names of primitive types as they appear in source
// text to their primitive types.
var PrimTypeByName = map[string]PrimitiveType{
	"Integer": PrimTypeInteger,
	"Float":   PrimTypeFloat,
	"Boolean": PrimTypeBoolean,
	"String":  PrimTypeString,
	"Char":    PrimTypeChar,
	"Void":    PrimTypeVoid,
}

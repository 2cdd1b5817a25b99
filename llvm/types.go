package llvm

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Type is used to represent all LLVM types.
type Type = types.Type

// Value is used to represent all LLVM values: constants, instructions,
// parameters, globals, and functions.
type Value = value.Value

// Context is the handle through which all LLVM types are created.  It carries
// no state of its own: it exists so that the code generator never refers to
// the backend's type constructors directly.
type Context struct{}

// NewContext creates a new LLVM context.
func NewContext() Context {
	return Context{}
}

// Int1Type returns the `i1` type.
func (Context) Int1Type() Type { return types.I1 }

// Int8Type returns the `i8` type.
func (Context) Int8Type() Type { return types.I8 }

// Int32Type returns the `i32` type.
func (Context) Int32Type() Type { return types.I32 }

// Int64Type returns the `i64` type.
func (Context) Int64Type() Type { return types.I64 }

// DoubleType returns the `double` type.
func (Context) DoubleType() Type { return types.Double }

// VoidType returns the `void` type.
func (Context) VoidType() Type { return types.Void }

// PointerType returns a pointer type to elem.
func (Context) PointerType(elem Type) Type { return types.NewPointer(elem) }

// -----------------------------------------------------------------------------

// ConstInt returns an integer constant of the given integer type.
func (Context) ConstInt(typ Type, n int64) Value {
	return constant.NewInt(typ.(*types.IntType), n)
}

// ConstFloat returns a `double` constant.
func (Context) ConstFloat(x float64) Value {
	return constant.NewFloat(types.Double, x)
}

// ConstBool returns an `i1` constant.
func (Context) ConstBool(b bool) Value {
	return constant.NewBool(b)
}

// ConstZero returns the zero value of the given type.
func (Context) ConstZero(typ Type) Value {
	return zeroValue(typ)
}

// zeroValue returns the zero constant of typ.
func zeroValue(typ Type) constant.Constant {
	switch v := typ.(type) {
	case *types.IntType:
		return constant.NewInt(v, 0)
	case *types.FloatType:
		return constant.NewFloat(v, 0)
	case *types.PointerType:
		return constant.NewNull(v)
	default:
		return constant.NewZeroInitializer(typ)
	}
}

// -----------------------------------------------------------------------------

// IsFloat returns whether the given type is a floating-point type.
func IsFloat(typ Type) bool {
	_, ok := typ.(*types.FloatType)
	return ok
}

// IsVoid returns whether the given type is the void type.
func IsVoid(typ Type) bool {
	_, ok := typ.(*types.VoidType)
	return ok
}

// ElemType returns the element type of a pointer type.
func ElemType(typ Type) Type {
	return typ.(*types.PointerType).ElemType
}

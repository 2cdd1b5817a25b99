package depm

import (
	"sprigc/llvm"
	"sprigc/report"
	"sprigc/types"
)

// SymbolInfo represents a semantic symbol: a named value or definition.
type SymbolInfo struct {
	// The name of the symbol.
	Name string

	// Where the symbol was defined.
	DefSpan report.TextSpan

	// The symbol's kind: what kind of thing the symbol represents. This must
	// be one the enumerated symbol kinds.
	Kind int

	// The type of the value stored in the symbol.  For type definitions, this
	// is the defined type.  For functions, this is nil: the signature is stored
	// in Params and Returns instead.  This may be nil for a variable whose type
	// is inferred from its initializer until that initializer is checked.
	Type types.Type

	// The parameter types of a function symbol.
	Params []types.Type

	// The return type of a function symbol.  This is nil for a function with
	// no annotated return type until the return type is inferred.
	Returns types.Type

	// Whether the symbol is defined at the top level of the program.
	Global bool

	// The storage slot of a variable or parameter: the pointer produced by the
	// allocation of its storage.  This is populated when the symbol's storage
	// is first emitted, never before.
	Slot llvm.Value

	// The LLVM function of a function symbol.  Like Slot, it is populated
	// during code generation.
	Func *llvm.Function
}

// Enumeration of different symbol kinds.
const (
	SymbolVariable = iota
	SymbolParameter
	SymbolFunction
	SymbolTypeDef
)

// IsValue returns whether the symbol names a value that can be read and
// assigned: ie. a variable or parameter.
func (sym *SymbolInfo) IsValue() bool {
	return sym.Kind == SymbolVariable || sym.Kind == SymbolParameter
}

// Signature returns the function type of a function symbol.
func (sym *SymbolInfo) Signature() *types.FuncType {
	return &types.FuncType{ParamTypes: sym.Params, ReturnType: sym.Returns}
}

// KindName returns a human-readable name for the symbol's kind.
func (sym *SymbolInfo) KindName() string {
	switch sym.Kind {
	case SymbolVariable:
		return "variable"
	case SymbolParameter:
		return "parameter"
	case SymbolFunction:
		return "function"
	default:
		return "type"
	}
}

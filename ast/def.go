package ast

import (
	"sprigc/depm"
	"sprigc/report"
	"sprigc/types"
)

// Program is the root of the AST: the top-level items of a translation unit.
type Program struct {
	ASTBase

	// The top-level items: function declarations, let bindings, struct
	// declarations, and enum declarations.
	Items []Node
}

func (*Program) Element() SyntaxElement { return ElemProgram }

// FuncDecl represents a function declaration.
type FuncDecl struct {
	ASTBase

	// The function's name.
	Name string

	// The span of the function's name.
	NameSpan report.TextSpan

	// The function's parameters.
	Params []*Param

	// The annotated return type.  This is nil if the return type is omitted
	// in which case it is inferred from the function's return statements.
	ReturnType types.Type

	// The function's body.
	Body *Block

	// The function's symbol.
	Sym *depm.SymbolInfo
}

func (*FuncDecl) Element() SyntaxElement { return ElemFuncDecl }

// Param represents a function parameter.
type Param struct {
	Name string
	Type types.Type
	Span report.TextSpan

	// The parameter's symbol.
	Sym *depm.SymbolInfo
}

// StructDecl represents a struct declaration.
type StructDecl struct {
	ASTBase

	// The declared struct type: its fields are in declaration order.
	Type *types.StructType
}

func (*StructDecl) Element() SyntaxElement { return ElemStructDecl }

// EnumDecl represents an enum declaration.
type EnumDecl struct {
	ASTBase

	// The declared enum type.
	Type *types.EnumType
}

func (*EnumDecl) Element() SyntaxElement { return ElemEnumDecl }

package ast

import (
	"sprigc/depm"
	"sprigc/report"
)

// BinaryExpr represents a binary operator application.
type BinaryExpr struct {
	ExprBase

	Op          Oper
	Left, Right Expr
}

func (*BinaryExpr) Element() SyntaxElement { return ElemBinaryExpr }

// UnaryExpr represents a prefix unary operator application.
type UnaryExpr struct {
	ExprBase

	Op      Oper
	Operand Expr
}

func (*UnaryExpr) Element() SyntaxElement { return ElemUnaryExpr }

// Call represents a function call.  Functions are always called by name.
type Call struct {
	ExprBase

	Name     string
	NameSpan report.TextSpan
	Args     []Expr

	// The called function's symbol.
	Sym *depm.SymbolInfo
}

func (*Call) Element() SyntaxElement { return ElemCall }

// Variable represents a usage of a variable or parameter.
type Variable struct {
	ExprBase

	Name string

	// The symbol the variable refers to.  This is set when the variable is
	// resolved.
	Sym *depm.SymbolInfo
}

func (*Variable) Element() SyntaxElement { return ElemVariable }

// Literal represents a literal value.  The value is stored as text: numeric
// parsing is deferred until code generation.
type Literal struct {
	ExprBase

	// The literal's kind.  This must be one of the enumerated literal kinds.
	Kind int

	// The literal's value: the digits of a numeric literal, `true` or `false`
	// for a boolean literal, and the decoded contents of a string or char
	// literal.
	Value string
}

// Enumeration of literal kinds.
const (
	LitInt = iota
	LitFloat
	LitBool
	LitString
	LitChar
)

func (*Literal) Element() SyntaxElement { return ElemLiteral }

// FieldAccess represents an access to a field of a struct value.
type FieldAccess struct {
	ExprBase

	Root      Expr
	Field     string
	FieldSpan report.TextSpan

	// The index of the field within the struct.  This is set when the access
	// is checked.
	Index int
}

func (*FieldAccess) Element() SyntaxElement { return ElemFieldAccess }

// StructLit represents a struct literal: `Name { field: value, ... }`.
type StructLit struct {
	ExprBase

	Name   string
	Fields []*FieldInit
}

// FieldInit is a single field initializer of a struct literal.
type FieldInit struct {
	Name  string
	Span  report.TextSpan
	Value Expr

	// The index of the field within the struct.  This is set when the literal
	// is checked.
	Index int
}

func (*StructLit) Element() SyntaxElement { return ElemStructLit }

// EnumValue represents a reference to an enum variant: `Enum::Variant`.
type EnumValue struct {
	ExprBase

	Enum    string
	Variant string

	// The index of the variant.  This is set when the value is checked.
	Index int
}

func (*EnumValue) Element() SyntaxElement { return ElemEnumValue }

// -----------------------------------------------------------------------------

// Match represents a match expression.  A match used as a statement is
// wrapped in an ExprStmt.
type Match struct {
	ExprBase

	Scrutinee Expr
	Arms      []*MatchArm
}

func (*Match) Element() SyntaxElement { return ElemMatch }

// MatchArm is a single arm of a match expression.
type MatchArm struct {
	ASTBase

	// The pattern: a literal, enum value, or nil for the wildcard `_`.
	Pattern Expr

	// The guard condition or nil.
	Guard Expr

	// The arm's body: either an Expr or a *Block.
	Body Node
}

// IsWildcard returns whether the arm matches any value.
func (ma *MatchArm) IsWildcard() bool {
	return ma.Pattern == nil
}

// ValueArms returns whether every arm of the match has an expression body so
// that the match can yield a value.
func (m *Match) ValueArms() bool {
	for _, arm := range m.Arms {
		if _, ok := arm.Body.(Expr); !ok {
			return false
		}
	}

	return true
}

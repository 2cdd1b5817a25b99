package ast

import (
	"sprigc/report"
	"sprigc/types"
)

// Node is the abstract interface for all AST nodes.
type Node interface {
	// The text span of the AST.
	Span() report.TextSpan

	// The syntactic variant of the node.
	Element() SyntaxElement
}

// SyntaxElement identifies the variant of an AST node.  It must be one of the
// enumerated syntax elements below.
type SyntaxElement int

// Enumeration of syntax elements.
const (
	ElemProgram SyntaxElement = iota
	ElemFuncDecl
	ElemStructDecl
	ElemEnumDecl
	ElemBlock
	ElemLet
	ElemAssignment
	ElemIf
	ElemWhile
	ElemFor
	ElemDo
	ElemBreak
	ElemContinue
	ElemReturn
	ElemExprStmt
	ElemMatch
	ElemBinaryExpr
	ElemUnaryExpr
	ElemCall
	ElemVariable
	ElemLiteral
	ElemFieldAccess
	ElemStructLit
	ElemEnumValue
)

var elemNames = [...]string{
	ElemProgram:     "Program",
	ElemFuncDecl:    "FunctionDecl",
	ElemStructDecl:  "StructDecl",
	ElemEnumDecl:    "EnumDecl",
	ElemBlock:       "Block",
	ElemLet:         "Let",
	ElemAssignment:  "Assignment",
	ElemIf:          "If",
	ElemWhile:       "While",
	ElemFor:         "For",
	ElemDo:          "Do",
	ElemBreak:       "Break",
	ElemContinue:    "Continue",
	ElemReturn:      "Return",
	ElemExprStmt:    "ExprStmt",
	ElemMatch:       "Match",
	ElemBinaryExpr:  "BinaryExpr",
	ElemUnaryExpr:   "UnaryExpr",
	ElemCall:        "Call",
	ElemVariable:    "Variable",
	ElemLiteral:     "Literal",
	ElemFieldAccess: "FieldAccess",
	ElemStructLit:   "StructLit",
	ElemEnumValue:   "EnumValue",
}

func (se SyntaxElement) String() string {
	return elemNames[se]
}

// -----------------------------------------------------------------------------

// ASTBase is a utility base struct for all AST nodes.
type ASTBase struct {
	// The span over which the AST node occurs.
	span report.TextSpan
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

// NewASTBaseOver creates a new AST base spanning over two spans.
func NewASTBaseOver(start, end report.TextSpan) ASTBase {
	return ASTBase{span: report.NewSpanOver(start, end)}
}

func (ab *ASTBase) Span() report.TextSpan {
	return ab.span
}

// -----------------------------------------------------------------------------

// Expr represents an expression.  All expression nodes implement this
// interface.
type Expr interface {
	Node

	// Type returns the type of the value the expression yields.  This is nil
	// until the expression is checked.
	Type() types.Type

	// SetType sets the type of the expression.
	SetType(types.Type)
}

// ExprBase is the base struct for all expressions.
type ExprBase struct {
	ASTBase

	typ types.Type
}

// NewExprBase creates a new expression base with the given span.
func NewExprBase(span report.TextSpan) ExprBase {
	return ExprBase{ASTBase: NewASTBaseOn(span)}
}

func (eb *ExprBase) Type() types.Type {
	return eb.typ
}

func (eb *ExprBase) SetType(typ types.Type) {
	eb.typ = typ
}

// Oper is an operator used in the AST.
type Oper struct {
	// The operator's symbol as it appears in source text: eg. `+`.
	Name string

	// The span of the operator token.
	Span report.TextSpan
}

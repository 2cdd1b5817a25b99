package ast

import (
	"sprigc/depm"
	"sprigc/report"
	"sprigc/types"
)

// Block represents a braced list of statements.  Every block is its own
// scope.
type Block struct {
	ASTBase

	// The statements of the block.
	Stmts []Node
}

func (*Block) Element() SyntaxElement { return ElemBlock }

// Let represents a variable declaration.
type Let struct {
	ASTBase

	// The name of the variable.
	Name string

	// The span of the variable's name.
	NameSpan report.TextSpan

	// The annotated type of the variable.  This is nil if the type is to be
	// inferred from the initializer.
	TypeLabel types.Type

	// The variable's initializer.
	Init Expr

	// The variable's symbol.
	Sym *depm.SymbolInfo
}

func (*Let) Element() SyntaxElement { return ElemLet }

// Assignment represents an assignment statement.
type Assignment struct {
	ASTBase

	// The assigned location: a variable or field access.
	Target Expr

	// The value being assigned.
	Value Expr
}

func (*Assignment) Element() SyntaxElement { return ElemAssignment }

// -----------------------------------------------------------------------------

// If represents an if statement.  An `elif` is represented as an If nested as
// the else branch of the preceding If.
type If struct {
	ASTBase

	Cond Expr
	Then *Block

	// The else branch: nil, a *Block, or an *If.
	Else Node
}

func (*If) Element() SyntaxElement { return ElemIf }

// While represents a while loop.
type While struct {
	ASTBase

	Cond Expr
	Body *Block
}

func (*While) Element() SyntaxElement { return ElemWhile }

// For represents a C-style for loop.  Any of its three header clauses may be
// omitted: a missing condition is always true.
type For struct {
	ASTBase

	// The initializer: a *Let, *Assignment, *ExprStmt, or nil.
	Init Node

	// The loop condition or nil.
	Cond Expr

	// The step statement: an *Assignment, *ExprStmt, or nil.
	Step Node

	Body *Block
}

func (*For) Element() SyntaxElement { return ElemFor }

// Do represents a do-while loop.
type Do struct {
	ASTBase

	Body *Block
	Cond Expr
}

func (*Do) Element() SyntaxElement { return ElemDo }

// KeywordStmt represents a single keyword control flow statement: `break` or
// `continue`.
type KeywordStmt struct {
	ASTBase

	// The element of the keyword: ElemBreak or ElemContinue.
	Kind SyntaxElement
}

func (ks *KeywordStmt) Element() SyntaxElement { return ks.Kind }

// Return represents a return statement.
type Return struct {
	ASTBase

	// The returned value or nil.
	Value Expr
}

func (*Return) Element() SyntaxElement { return ElemReturn }

// ExprStmt represents an expression used as a statement.
type ExprStmt struct {
	ASTBase

	Expr Expr
}

func (*ExprStmt) Element() SyntaxElement { return ElemExprStmt }

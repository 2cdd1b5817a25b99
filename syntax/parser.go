package syntax

import (
	"sprigc/ast"
	"sprigc/depm"
	"sprigc/report"
	"sprigc/types"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse as well as any
// semantic actions they perform during parsing.

// Parser is the parser for a Sprig source file.  It performs syntax analysis
// and AST generation.  It declares every symbol it parses into the symbol
// table stack it is given, but it does NOT resolve any symbol usages: that is
// left to the walker.  The parser is a recursive descent parser which uses
// precedence climbing for binary operators.  All parsing functions assume
// that they begin with the parser centered on the first token of their
// production and must consume all tokens (including the last) of their
// production, leaving the parser on the next token.
//
// Syntax errors are raised as panics and recovered at the nearest statement or
// top-level item boundary: the parser then skips ahead to a synchronization
// point and continues so that all syntax errors in a file are reported.
type Parser struct {
	// The tokens being parsed.  This always ends in an EOF token.
	input []Token

	// The index of the current token.
	current int

	// The current token.
	tok Token

	// The token before the current token.
	lookbehind Token

	// The symbol table stack symbols are declared into.
	stack *depm.SymbolTableStack

	// The size of the stack at the top level of the file.
	globalDepth int

	// The struct and enum types declared in the file by name.
	typeNames map[string]types.Type

	// The types created for each struct or enum declaration keyed by the
	// index of the token naming the declaration.
	typeDecls map[int]types.Type

	// Whether struct literals are currently disallowed: this is true inside
	// the condition of an if, while or for and the scrutinee of a match.
	noStructLit bool

	// The list of errors encountered during parsing.
	errors []report.CompileError
}

// Parse parses a token stream into a program, declaring all the symbols it
// encounters in the given symbol table stack.  The bottom table of the stack
// is used as the global scope.  If the stack is empty, a global table is
// pushed onto it.  The returned program should only be used if no errors are
// returned.
func Parse(tokens []Token, stack *depm.SymbolTableStack) (*ast.Program, []report.CompileError) {
	p := NewParser(tokens, stack)
	prog := p.parseProgram()
	return prog, p.errors
}

// NewParser creates a new parser over the given tokens.
func NewParser(tokens []Token, stack *depm.SymbolTableStack) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TOK_EOF {
		var eofSpan report.TextSpan
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1].Span
			eofSpan = report.TextSpan{StartLine: last.EndLine, StartCol: last.EndCol, EndLine: last.EndLine, EndCol: last.EndCol}
		}

		tokens = append(tokens, Token{Kind: TOK_EOF, Span: eofSpan})
	}

	if stack.IsEmpty() {
		stack.Push(depm.NewSymbolTable())
	}

	return &Parser{
		input:       tokens,
		tok:         tokens[0],
		stack:       stack,
		globalDepth: stack.Size(),
		typeNames:   make(map[string]types.Type),
		typeDecls:   make(map[int]types.Type),
	}
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.  The parser never moves past the
// EOF token.
func (p *Parser) next() {
	p.lookbehind = p.tok

	if p.current < len(p.input)-1 {
		p.current++
	}

	p.tok = p.input[p.current]
}

// peek returns the token after the current token.
func (p *Parser) peek() Token {
	if p.current < len(p.input)-1 {
		return p.input[p.current+1]
	}

	return p.tok
}

// has returns whether the parser is on a token of the given kind.
func (p *Parser) has(kind int) bool {
	return p.tok.Kind == kind
}

// hasOneOf returns whether the parser is on a token of one of the given kinds.
func (p *Parser) hasOneOf(kinds ...int) bool {
	for _, kind := range kinds {
		if p.tok.Kind == kind {
			return true
		}
	}

	return false
}

// want asserts that the parser is on a token of the given kind, rejecting it
// if not.  It moves the parser forward and returns the matched token.
func (p *Parser) want(kind int) Token {
	if !p.has(kind) {
		p.reject(kindDisplay(kind))
	}

	tok := p.tok
	p.next()
	return tok
}

// -----------------------------------------------------------------------------

// reject raises an unexpected token error on the current token.
func (p *Parser) reject(expected string) {
	panic(report.UnexpectedToken{
		Expected: expected,
		Found:    tokenDisplay(p.tok),
		Span:     p.tok.Span,
	})
}

// recError records a compile error without aborting the current production.
func (p *Parser) recError(span report.TextSpan, msg string, args ...interface{}) {
	p.errors = append(p.errors, report.Raise(span, msg, args...))
}

// parserState is the state of the parser which must be restored when it
// recovers from an error.
type parserState struct {
	depth       int
	noStructLit bool
}

// save returns the current recoverable state of the parser.
func (p *Parser) save() parserState {
	return parserState{depth: p.stack.Size(), noStructLit: p.noStructLit}
}

// recoverWith recovers from a syntax error raised within a production,
// records the error, restores the parser's state, and calls sync to move the
// parser to the next synchronization point.  It must be deferred.  Panics
// which are not compile errors are propagated.
func (p *Parser) recoverWith(state parserState, sync func()) {
	if x := recover(); x != nil {
		cerr, ok := x.(report.CompileError)
		if !ok {
			panic(x)
		}

		p.errors = append(p.errors, cerr)

		for p.stack.Size() > state.depth {
			p.stack.Pop()
		}
		p.noStructLit = state.noStructLit

		sync()
	}
}

// syncStmt skips to the end of the current statement: past the next `;` or
// up to the next `}`.
func (p *Parser) syncStmt() {
	for !p.hasOneOf(TOK_RBRACKET, TOK_EOF) {
		if p.has(TOK_SEMI) {
			p.next()
			return
		}

		p.next()
	}
}

// syncTopLevel skips to the beginning of the next top-level item.
func (p *Parser) syncTopLevel() {
	for !p.hasOneOf(TOK_FUNC, TOK_LET, TOK_STRUCT, TOK_ENUM, TOK_EOF) {
		p.next()
	}
}

// -----------------------------------------------------------------------------

// pushScope pushes a new local scope onto the symbol table stack.
func (p *Parser) pushScope() {
	p.stack.Push(depm.NewSymbolTable())
}

// popScope pops the innermost local scope.
func (p *Parser) popScope() {
	p.stack.Pop()
}

// declare declares a symbol in the innermost scope.  Redeclarations are
// recorded as errors but do not abort parsing.
func (p *Parser) declare(sym *depm.SymbolInfo) {
	if err := p.stack.InsertInTop(sym); err != nil {
		if cerr, ok := err.(report.CompileError); ok {
			p.errors = append(p.errors, cerr)
			return
		}

		panic(report.RaiseDev(sym.DefSpan, "failed to declare `%s`: %s", sym.Name, err))
	}
}

// atGlobalScope returns whether the parser is currently parsing at the top
// level of the file.
func (p *Parser) atGlobalScope() bool {
	return p.stack.Size() == p.globalDepth
}

package walk

import (
	"sprigc/ast"
	"sprigc/depm"
	"sprigc/report"
	"sprigc/types"
)

// Walker is responsible for walking the AST of a program and performing all
// of its semantic checks: name resolution, type checking, type inference, and
// control flow checking.  Resolved symbols and types are attached directly to
// the AST as it is walked.
type Walker struct {
	// The global symbol table: the table of all top-level symbols.
	global *depm.SymbolTable

	// The declarations of each function and global variable in the program
	// keyed by their symbols.  Definitions may be walked out of order when
	// another definition needs their type before it has been inferred.
	funcs   map[*depm.SymbolInfo]*ast.FuncDecl
	globals map[*depm.SymbolInfo]*ast.Let

	// The declaration order of each global variable.
	globalOrder map[*depm.SymbolInfo]int

	// The walk state of each function and global variable.
	states map[*depm.SymbolInfo]walkState

	// The context of the definition currently being walked.
	ctx walkContext

	// The list of errors produced during walking.
	errors []report.CompileError
}

// walkState indicates how far along the walker is in checking a definition.
type walkState int

// Enumeration of walk states.
const (
	unwalked walkState = iota
	walking
	walked
	failed
)

// walkContext is the state specific to the definition being walked.
type walkContext struct {
	// The scoped environment of the definition: the bottom table is always
	// the global table.
	stack *depm.SymbolTableStack

	// The function being walked.  This is nil in global initializers.
	fn *ast.FuncDecl

	// The stack of enclosing loops: the innermost loop is last.
	loops []*loopInfo

	// The declaration order of the global whose initializer is being walked.
	// This is -1 outside of global initializers.
	globalIndex int
}

// loopInfo tracks information about an enclosing loop.
type loopInfo struct {
	// Whether the loop contains a `break` which exits it.
	broken bool
}

// abortWalk is panicked to abandon the current definition without reporting
// an error: it is used when the definition depends on one which has already
// failed and whose errors have already been reported.
type abortWalk struct{}

// NewWalker creates a new walker over the given global symbol table.
func NewWalker(global *depm.SymbolTable) *Walker {
	return &Walker{
		global:      global,
		funcs:       make(map[*depm.SymbolInfo]*ast.FuncDecl),
		globals:     make(map[*depm.SymbolInfo]*ast.Let),
		globalOrder: make(map[*depm.SymbolInfo]int),
		states:      make(map[*depm.SymbolInfo]walkState),
		ctx:         walkContext{globalIndex: -1},
	}
}

// WalkProgram walks a parsed program.  The bottom table of stack must be the
// global table produced by parsing the program.  It returns the list of
// semantic errors found.  An error inside a definition aborts the walking of
// that definition only.
func WalkProgram(prog *ast.Program, stack *depm.SymbolTableStack) []report.CompileError {
	global, ok := stack.Global()
	if !ok {
		return []report.CompileError{report.RaiseDev(prog.Span(), "walker given an empty symbol table stack")}
	}

	w := NewWalker(global)

	for _, item := range prog.Items {
		switch v := item.(type) {
		case *ast.FuncDecl:
			w.funcs[v.Sym] = v
		case *ast.Let:
			w.globalOrder[v.Sym] = len(w.globals)
			w.globals[v.Sym] = v
		}
	}

	for _, item := range prog.Items {
		switch v := item.(type) {
		case *ast.FuncDecl:
			w.walkFuncDecl(v)
		case *ast.Let:
			w.walkGlobalLet(v)
		case *ast.StructDecl:
			w.walkStructDecl(v)
		}
	}

	return w.errors
}

// -----------------------------------------------------------------------------

// enter switches the walker into the context of a new definition.  It returns
// the previous context which must be restored when the definition is done.
func (w *Walker) enter(fn *ast.FuncDecl, globalIndex int) walkContext {
	prev := w.ctx
	w.ctx = walkContext{
		stack:       depm.NewSymbolTableStack(w.global),
		fn:          fn,
		globalIndex: globalIndex,
	}

	return prev
}

// finish catches any error raised while walking the definition of sym and
// records whether the definition was successfully walked.
// NB: This function must ALWAYS be deferred.
func (w *Walker) finish(sym *depm.SymbolInfo) {
	if x := recover(); x != nil {
		w.states[sym] = failed

		switch v := x.(type) {
		case report.CompileError:
			w.errors = append(w.errors, v)
		case abortWalk:
		default:
			panic(x)
		}

		return
	}

	w.states[sym] = walked
}

// pushScope pushes a new local scope.
func (w *Walker) pushScope() {
	w.ctx.stack.Push(depm.NewSymbolTable())
}

// popScope pops the innermost local scope.
func (w *Walker) popScope() {
	w.ctx.stack.Pop()
}

// defineLocal defines a local symbol in the innermost scope.
func (w *Walker) defineLocal(sym *depm.SymbolInfo) {
	if err := w.ctx.stack.InsertInTop(sym); err != nil {
		if cerr, ok := err.(report.CompileError); ok {
			panic(cerr)
		}

		panic(report.RaiseDev(sym.DefSpan, "%s", err))
	}
}

// -----------------------------------------------------------------------------

// error raises a semantic error, aborting the current definition.
func (w *Walker) error(span report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(span, msg, args...))
}

// mustEqual asserts that found is the same type as expected.
func (w *Walker) mustEqual(expected, found types.Type, span report.TextSpan) {
	if !types.Equals(expected, found) {
		panic(report.TypeMismatch{
			Expected: types.Repr(expected),
			Found:    types.Repr(found),
			Span:     span,
		})
	}
}

// mustBeValue asserts that an expression yields a usable value.
func (w *Walker) mustBeValue(expr ast.Expr) {
	if types.IsVoid(expr.Type()) {
		w.error(expr.Span(), "expression does not yield a value")
	}
}

package walk

import (
	"sprigc/ast"
	"sprigc/report"
	"sprigc/types"
)

// controlMode describes how control leaves a statement.
type controlMode int

// Enumeration of control modes.
const (
	// Control may continue to the next statement.
	controlNone controlMode = iota

	// Control always jumps out of the enclosing loop: via `break` or
	// `continue`.
	controlLoop

	// Control always returns from the enclosing function.
	controlReturn

	// Control never leaves the statement: eg. an infinite loop.
	controlNoExit
)

// joinModes returns the control mode of a branching statement given the
// control modes of two of its branches.
func joinModes(a, b controlMode) controlMode {
	switch {
	case a == controlNone || b == controlNone:
		return controlNone
	case a == controlLoop || b == controlLoop:
		return controlLoop
	case a == b:
		return a
	default:
		return controlReturn
	}
}

// walkBlock walks a block in its own scope and returns its control mode.
// Statements following a statement which does not fall through are still
// checked but do not affect the block's control mode.
func (w *Walker) walkBlock(block *ast.Block) controlMode {
	w.pushScope()
	defer w.popScope()

	mode := controlNone
	for _, stmt := range block.Stmts {
		stmtMode := w.walkStmt(stmt)

		if mode == controlNone {
			mode = stmtMode
		}
	}

	return mode
}

// walkStmt walks a statement and returns its control mode.
func (w *Walker) walkStmt(stmt ast.Node) controlMode {
	switch v := stmt.(type) {
	case *ast.Block:
		return w.walkBlock(v)
	case *ast.Let:
		w.walkLocalLet(v)
	case *ast.Assignment:
		w.walkAssignment(v)
	case *ast.If:
		return w.walkIf(v)
	case *ast.While:
		return w.walkWhile(v)
	case *ast.For:
		return w.walkFor(v)
	case *ast.Do:
		return w.walkDo(v)
	case *ast.KeywordStmt:
		return w.walkKeywordStmt(v)
	case *ast.Return:
		w.walkReturn(v)
		return controlReturn
	case *ast.ExprStmt:
		if match, ok := v.Expr.(*ast.Match); ok {
			return w.walkMatch(match, false)
		}

		w.walkExpr(v.Expr)
	default:
		panic(report.RaiseDev(stmt.Span(), "unknown statement: %T", stmt))
	}

	return controlNone
}

// -----------------------------------------------------------------------------

// checkLet checks the initializer of a let binding against its type label and
// determines the type of the bound variable.
func (w *Walker) checkLet(let *ast.Let) {
	if let.TypeLabel != nil && types.IsVoid(let.TypeLabel) {
		w.error(let.NameSpan, "variable `%s` cannot be of type `Void`", let.Name)
	}

	w.walkExpr(let.Init)
	w.mustBeValue(let.Init)

	if let.TypeLabel != nil {
		w.mustEqual(let.TypeLabel, let.Init.Type(), let.Init.Span())
		let.Sym.Type = let.TypeLabel
	} else {
		let.Sym.Type = let.Init.Type()
	}
}

// walkLocalLet walks a local let binding.  The variable is defined after its
// initializer is checked so the initializer can not refer to it.
func (w *Walker) walkLocalLet(let *ast.Let) {
	w.checkLet(let)
	w.defineLocal(let.Sym)
}

// walkAssignment walks an assignment statement.
func (w *Walker) walkAssignment(asn *ast.Assignment) {
	w.walkExpr(asn.Target)

	if !isAssignable(asn.Target) {
		w.error(asn.Target.Span(), "cannot assign to a field of a temporary value")
	}

	w.walkExpr(asn.Value)
	w.mustEqual(asn.Target.Type(), asn.Value.Type(), asn.Value.Span())
}

// isAssignable returns whether an expression denotes a storage location: a
// variable or a field of a storage location.
func isAssignable(expr ast.Expr) bool {
	switch v := expr.(type) {
	case *ast.Variable:
		return true
	case *ast.FieldAccess:
		return isAssignable(v.Root)
	default:
		return false
	}
}

// walkCond walks a condition which must be Boolean.
func (w *Walker) walkCond(cond ast.Expr) {
	w.walkExpr(cond)
	w.mustEqual(types.PrimTypeBoolean, cond.Type(), cond.Span())
}

// -----------------------------------------------------------------------------

// walkIf walks an if statement along with all its elif and else branches.
func (w *Walker) walkIf(ifStmt *ast.If) controlMode {
	w.walkCond(ifStmt.Cond)

	mode := w.walkBlock(ifStmt.Then)

	switch v := ifStmt.Else.(type) {
	case *ast.If:
		return joinModes(mode, w.walkIf(v))
	case *ast.Block:
		return joinModes(mode, w.walkBlock(v))
	default:
		return controlNone
	}
}

// walkLoopBody walks the body of a loop and reports whether the loop can be
// exited by a `break`.
func (w *Walker) walkLoopBody(body *ast.Block) (controlMode, bool) {
	loop := &loopInfo{}
	w.ctx.loops = append(w.ctx.loops, loop)

	mode := w.walkBlock(body)

	w.ctx.loops = w.ctx.loops[:len(w.ctx.loops)-1]
	return mode, loop.broken
}

// walkWhile walks a while loop.
func (w *Walker) walkWhile(loop *ast.While) controlMode {
	w.walkCond(loop.Cond)

	if _, broken := w.walkLoopBody(loop.Body); !broken && isConstTrue(loop.Cond) {
		return controlNoExit
	}

	return controlNone
}

// walkFor walks a for loop.  The loop header has its own scope which encloses
// the loop body.
func (w *Walker) walkFor(loop *ast.For) controlMode {
	w.pushScope()
	defer w.popScope()

	switch v := loop.Init.(type) {
	case nil:
	case *ast.Let:
		w.walkLocalLet(v)
	default:
		w.walkStmt(v)
	}

	if loop.Cond != nil {
		w.walkCond(loop.Cond)
	}

	if loop.Step != nil {
		w.walkStmt(loop.Step)
	}

	_, broken := w.walkLoopBody(loop.Body)
	if !broken && (loop.Cond == nil || isConstTrue(loop.Cond)) {
		return controlNoExit
	}

	return controlNone
}

// walkDo walks a do-while loop.  The body runs at least once so a body which
// always returns makes the whole loop return.
func (w *Walker) walkDo(loop *ast.Do) controlMode {
	mode, broken := w.walkLoopBody(loop.Body)

	w.walkCond(loop.Cond)

	switch {
	case mode == controlReturn:
		return controlReturn
	case !broken && isConstTrue(loop.Cond):
		return controlNoExit
	default:
		return controlNone
	}
}

// isConstTrue returns whether a condition is the literal `true`.
func isConstTrue(cond ast.Expr) bool {
	lit, ok := cond.(*ast.Literal)
	return ok && lit.Kind == ast.LitBool && lit.Value == "true"
}

// walkKeywordStmt walks a `break` or `continue` statement.
func (w *Walker) walkKeywordStmt(stmt *ast.KeywordStmt) controlMode {
	if len(w.ctx.loops) == 0 {
		if stmt.Kind == ast.ElemBreak {
			w.error(stmt.Span(), "`break` outside of a loop")
		} else {
			w.error(stmt.Span(), "`continue` outside of a loop")
		}
	}

	if stmt.Kind == ast.ElemBreak {
		w.ctx.loops[len(w.ctx.loops)-1].broken = true
	}

	return controlLoop
}

// walkReturn walks a return statement.  The first return statement of a
// function with no annotated return type determines its return type.
func (w *Walker) walkReturn(ret *ast.Return) {
	fn := w.ctx.fn
	if fn == nil {
		w.error(ret.Span(), "`return` outside of a function")
	}

	var typ types.Type = types.PrimTypeVoid
	span := ret.Span()
	if ret.Value != nil {
		w.walkExpr(ret.Value)
		typ = ret.Value.Type()
		span = ret.Value.Span()
	}

	if fn.Sym.Returns == nil {
		fn.Sym.Returns = typ
		return
	}

	w.mustEqual(fn.Sym.Returns, typ, span)
}

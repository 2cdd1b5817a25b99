package walk

import (
	"strconv"

	"sprigc/ast"
	"sprigc/depm"
	"sprigc/report"
	"sprigc/types"
)

// walkExpr walks an expression in a value position and sets its type.
func (w *Walker) walkExpr(expr ast.Expr) {
	switch v := expr.(type) {
	case *ast.Literal:
		w.walkLiteral(v)
	case *ast.Variable:
		w.walkVariable(v)
	case *ast.Call:
		w.walkCall(v)
	case *ast.BinaryExpr:
		w.walkBinaryExpr(v)
	case *ast.UnaryExpr:
		w.walkUnaryExpr(v)
	case *ast.FieldAccess:
		w.walkFieldAccess(v)
	case *ast.StructLit:
		w.walkStructLit(v)
	case *ast.EnumValue:
		w.walkEnumValue(v)
	case *ast.Match:
		w.walkMatch(v, true)
	default:
		panic(report.RaiseDev(expr.Span(), "unknown expression: %T", expr))
	}
}

// walkLiteral determines the type of a literal.
func (w *Walker) walkLiteral(lit *ast.Literal) {
	switch lit.Kind {
	case ast.LitInt:
		if _, err := strconv.ParseInt(lit.Value, 10, 64); err != nil {
			w.error(lit.Span(), "integer literal `%s` is out of range", lit.Value)
		}

		lit.SetType(types.PrimTypeInteger)
	case ast.LitFloat:
		lit.SetType(types.PrimTypeFloat)
	case ast.LitBool:
		lit.SetType(types.PrimTypeBoolean)
	case ast.LitString:
		lit.SetType(types.PrimTypeString)
	case ast.LitChar:
		lit.SetType(types.PrimTypeChar)
	}
}

// walkVariable resolves a variable reference.
func (w *Walker) walkVariable(v *ast.Variable) {
	sym := w.lookup(v.Name, v.Span())

	if !sym.IsValue() {
		w.error(v.Span(), "`%s` is a %s, not a value", v.Name, sym.KindName())
	}

	if sym.Global {
		if let, ok := w.globals[sym]; ok {
			if w.ctx.globalIndex >= 0 && w.globalOrder[sym] >= w.ctx.globalIndex {
				w.error(v.Span(), "global `%s` is used before it is initialized", v.Name)
			}

			w.requireGlobalType(v, let)
		}
	}

	v.Sym = sym
	v.SetType(sym.Type)
}

// lookup resolves a name in the current scope.
func (w *Walker) lookup(name string, span report.TextSpan) *depm.SymbolInfo {
	sym, ok := w.ctx.stack.Lookup(name)
	if !ok {
		panic(report.UndefinedSymbol{Name: name, Span: span})
	}

	return sym
}

// walkCall walks a function call.  Functions are always resolved in the
// global scope.
func (w *Walker) walkCall(call *ast.Call) {
	sym, ok := w.global.Get(call.Name)
	if !ok {
		panic(report.UndefinedSymbol{Name: call.Name, Span: call.NameSpan})
	}

	if sym.Kind != depm.SymbolFunction {
		w.error(call.NameSpan, "`%s` is a %s, not a function", call.Name, sym.KindName())
	}

	if len(call.Args) != len(sym.Params) {
		w.error(
			call.Span(),
			"function `%s` expects %d arguments but got %d",
			call.Name,
			len(sym.Params),
			len(call.Args),
		)
	}

	for i, arg := range call.Args {
		w.walkExpr(arg)
		w.mustEqual(sym.Params[i], arg.Type(), arg.Span())
	}

	if fd, ok := w.funcs[sym]; ok {
		w.requireReturnType(call, fd)
	}

	call.Sym = sym
	call.SetType(sym.Returns)
}

// -----------------------------------------------------------------------------

// walkFieldAccess walks a struct field access.
func (w *Walker) walkFieldAccess(fa *ast.FieldAccess) {
	w.walkExpr(fa.Root)

	st, ok := fa.Root.Type().(*types.StructType)
	if !ok {
		w.error(fa.FieldSpan, "type `%s` has no fields", types.Repr(fa.Root.Type()))
	}

	ndx, ok := st.FieldIndex(fa.Field)
	if !ok {
		w.error(fa.FieldSpan, "struct `%s` has no field named `%s`", st.Name, fa.Field)
	}

	fa.Index = ndx
	fa.SetType(st.Fields[ndx].Type)
}

// lookupType resolves the name of a user-defined type.
func (w *Walker) lookupType(name string, span report.TextSpan) types.Type {
	sym, ok := w.global.Get(name)
	if !ok {
		panic(report.UndefinedSymbol{Name: name, Span: span})
	}

	if sym.Kind != depm.SymbolTypeDef {
		w.error(span, "`%s` is a %s, not a type", name, sym.KindName())
	}

	return sym.Type
}

// walkStructLit walks a struct literal.  Every field of the struct must be
// initialized exactly once.
func (w *Walker) walkStructLit(sl *ast.StructLit) {
	st, ok := w.lookupType(sl.Name, sl.Span()).(*types.StructType)
	if !ok {
		w.error(sl.Span(), "`%s` is not a struct type", sl.Name)
	}

	initialized := make([]bool, len(st.Fields))
	for _, field := range sl.Fields {
		ndx, ok := st.FieldIndex(field.Name)
		if !ok {
			w.error(field.Span, "struct `%s` has no field named `%s`", st.Name, field.Name)
		}

		if initialized[ndx] {
			w.error(field.Span, "field `%s` is initialized more than once", field.Name)
		}
		initialized[ndx] = true

		w.walkExpr(field.Value)
		w.mustEqual(st.Fields[ndx].Type, field.Value.Type(), field.Value.Span())

		field.Index = ndx
	}

	for i, ok := range initialized {
		if !ok {
			w.error(sl.Span(), "missing field `%s` in literal of struct `%s`", st.Fields[i].Name, st.Name)
		}
	}

	sl.SetType(st)
}

// walkEnumValue walks an enum variant reference.
func (w *Walker) walkEnumValue(ev *ast.EnumValue) {
	et, ok := w.lookupType(ev.Enum, ev.Span()).(*types.EnumType)
	if !ok {
		w.error(ev.Span(), "`%s` is not an enum type", ev.Enum)
	}

	ndx, ok := et.VariantIndex(ev.Variant)
	if !ok {
		w.error(ev.Span(), "enum `%s` has no variant named `%s`", et.Name, ev.Variant)
	}

	ev.Index = ndx
	ev.SetType(et)
}

// -----------------------------------------------------------------------------

// walkMatch walks a match expression.  If isValue is true, the match must
// yield a value: all its arms must be expressions of the same type and it must
// have an unguarded wildcard arm.  It returns the control mode of the match
// when it is used as a statement.
func (w *Walker) walkMatch(match *ast.Match, isValue bool) controlMode {
	w.walkExpr(match.Scrutinee)

	scrutType := match.Scrutinee.Type()
	if !types.IsMatchable(scrutType) {
		w.error(match.Scrutinee.Span(), "cannot match over a value of type `%s`", types.Repr(scrutType))
	}

	hasWildcard := false
	for _, arm := range match.Arms {
		if arm.IsWildcard() && arm.Guard == nil {
			hasWildcard = true
		}
	}

	if isValue {
		if !match.ValueArms() {
			w.error(match.Span(), "match used as a value must have an expression in every arm")
		}

		if !hasWildcard {
			w.error(match.Span(), "match used as a value must have a wildcard arm `_`")
		}
	}

	var mode controlMode
	for i, arm := range match.Arms {
		if !arm.IsWildcard() {
			w.walkExpr(arm.Pattern)
			w.mustEqual(scrutType, arm.Pattern.Type(), arm.Pattern.Span())
		}

		if arm.Guard != nil {
			w.walkCond(arm.Guard)
		}

		var armMode controlMode
		switch v := arm.Body.(type) {
		case *ast.Block:
			armMode = w.walkBlock(v)
		case ast.Expr:
			w.walkExpr(v)

			if isValue {
				w.mustBeValue(v)

				if i > 0 {
					w.mustEqual(match.Arms[0].Body.(ast.Expr).Type(), v.Type(), v.Span())
				}
			}
		}

		if i == 0 {
			mode = armMode
		} else {
			mode = joinModes(mode, armMode)
		}
	}

	if isValue {
		match.SetType(match.Arms[0].Body.(ast.Expr).Type())
	} else {
		match.SetType(types.PrimTypeVoid)
	}

	if !hasWildcard {
		return controlNone
	}

	return mode
}

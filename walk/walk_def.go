package walk

import (
	"sprigc/ast"
	"sprigc/report"
	"sprigc/types"
)

// walkFuncDecl walks a function definition.  If the function has no return
// type annotation, its return type is inferred from the first `return`
// statement in its body, or Void if there is none.
func (w *Walker) walkFuncDecl(fd *ast.FuncDecl) {
	if w.states[fd.Sym] != unwalked {
		return
	}

	w.states[fd.Sym] = walking

	prev := w.enter(fd, -1)
	defer func() { w.ctx = prev }()
	defer w.finish(fd.Sym)

	for _, param := range fd.Params {
		if types.IsVoid(param.Type) {
			w.error(param.Span, "parameter `%s` cannot be of type `Void`", param.Name)
		}
	}

	if fd.ReturnType != nil {
		fd.Sym.Returns = fd.ReturnType
	}

	// Parameters have their own scope enclosing the body.
	w.pushScope()
	for _, param := range fd.Params {
		w.defineLocal(param.Sym)
	}

	mode := w.walkBlock(fd.Body)

	w.popScope()

	if fd.Sym.Returns == nil {
		fd.Sym.Returns = types.PrimTypeVoid
	}

	if !types.IsVoid(fd.Sym.Returns) && mode != controlReturn && mode != controlNoExit {
		w.error(fd.Body.Span(), "missing return statement in function `%s`", fd.Name)
	}
}

// walkGlobalLet walks the initializer of a global variable.  A global
// initializer may only refer to globals declared before it.
func (w *Walker) walkGlobalLet(let *ast.Let) {
	if w.states[let.Sym] != unwalked {
		return
	}

	w.states[let.Sym] = walking

	prev := w.enter(nil, w.globalOrder[let.Sym])
	defer func() { w.ctx = prev }()
	defer w.finish(let.Sym)

	w.checkLet(let)
}

// requireReturnType ensures the return type of the function fd is known,
// walking the function ahead of order if necessary.
func (w *Walker) requireReturnType(call *ast.Call, fd *ast.FuncDecl) {
	if fd.Sym.Returns != nil {
		return
	}

	w.walkFuncDecl(fd)

	if fd.Sym.Returns != nil {
		return
	}

	if w.states[fd.Sym] == walking {
		w.error(
			call.Span(),
			"cannot infer the return type of `%s` before it returns a value: annotate its return type",
			fd.Name,
		)
	}

	panic(abortWalk{})
}

// requireGlobalType ensures the type of the global variable sym is known,
// walking its initializer ahead of order if necessary.
func (w *Walker) requireGlobalType(v *ast.Variable, let *ast.Let) {
	if let.Sym.Type != nil {
		return
	}

	w.walkGlobalLet(let)

	if let.Sym.Type != nil {
		return
	}

	if w.states[let.Sym] == walking {
		w.error(v.Span(), "the type of `%s` depends on its own initializer", v.Name)
	}

	panic(abortWalk{})
}

// -----------------------------------------------------------------------------

// walkStructDecl checks the field types of a struct declaration.
func (w *Walker) walkStructDecl(sd *ast.StructDecl) {
	defer report.CatchErrors(&w.errors)

	for _, field := range sd.Type.Fields {
		if types.IsVoid(field.Type) {
			w.error(sd.Span(), "field `%s` of struct `%s` cannot be of type `Void`", field.Name, sd.Type.Name)
		}
	}

	if containsStruct(sd.Type, sd.Type, make(map[*types.StructType]struct{})) {
		w.error(sd.Span(), "struct `%s` cannot contain itself", sd.Type.Name)
	}
}

// containsStruct returns whether st contains a field of type target either
// directly or through one of its nested struct fields.
func containsStruct(target, st *types.StructType, visited map[*types.StructType]struct{}) bool {
	visited[st] = struct{}{}

	for _, field := range st.Fields {
		if fst, ok := field.Type.(*types.StructType); ok {
			if fst == target {
				return true
			}

			if _, ok := visited[fst]; !ok && containsStruct(target, fst, visited) {
				return true
			}
		}
	}

	return false
}

package codegen

import (
	"fmt"

	"sprigc/ast"
	"sprigc/common"
	"sprigc/depm"
	"sprigc/llvm"
	"sprigc/report"
	"sprigc/types"
)

// Generator is responsible for converting a walked Sprig program into an LLVM
// module.  All names and types in the program must already be resolved: any
// inconsistency found during generation is an internal error.
type Generator struct {
	// The LLVM context used to create types and constants.
	ctx llvm.Context

	// The LLVM module being generated.
	mod *llvm.Module

	// The IR builder for this generator.
	irb *llvm.IRBuilder

	// The global symbol table of the program.  Callees are always resolved
	// through it.
	global *depm.SymbolTable

	// The LLVM types of all the struct types in the program.
	structTypes map[*types.StructType]llvm.Type

	// The global variable initialization function.  This is nil if the
	// program has no global variables.
	initFunc *llvm.Function

	// The lazily generated exponentiation helpers.
	ipowFunc *llvm.Function
	fpowFunc *llvm.Function

	// The loop-target stack: the innermost loop is last.
	loops []loopTarget

	// The return type of the function being generated.
	returnType types.Type
}

// loopTarget holds the blocks an enclosing loop's `break` and `continue`
// statements jump to.
type loopTarget struct {
	breakBlock    llvm.BasicBlock
	continueBlock llvm.BasicBlock
}

// Generate generates a walked program into an LLVM module named name.  The
// bottom table of stack must be the program's global table.  Generation is
// assumed to always succeed: any error returned is an internal error.
func Generate(prog *ast.Program, stack *depm.SymbolTableStack, name string) (mod *llvm.Module, err error) {
	global, ok := stack.Global()
	if !ok {
		return nil, report.RaiseDev(prog.Span(), "no global symbol table on the stack")
	}

	ctx := llvm.NewContext()

	g := &Generator{
		ctx:         ctx,
		mod:         ctx.NewModule(name),
		irb:         ctx.NewBuilder(),
		global:      global,
		structTypes: make(map[*types.StructType]llvm.Type),
	}

	defer func() {
		if x := recover(); x != nil {
			mod = nil

			switch v := x.(type) {
			case report.DevError:
				err = v
			case error:
				err = report.RaiseDev(prog.Span(), "%s", v)
			default:
				err = report.RaiseDev(prog.Span(), "%v", x)
			}
		}
	}()

	g.generateProgram(prog)
	return g.mod, nil
}

// generateProgram generates all the items of a program.  All types and
// function signatures are declared before any bodies are generated so items
// can refer to each other regardless of their order.
func (g *Generator) generateProgram(prog *ast.Program) {
	var (
		funcs   []*ast.FuncDecl
		globals []*ast.Let
	)

	for _, item := range prog.Items {
		switch v := item.(type) {
		case *ast.StructDecl:
			g.structTypes[v.Type] = g.mod.NewStructType(v.Type.Name)
		case *ast.FuncDecl:
			funcs = append(funcs, v)
		case *ast.Let:
			globals = append(globals, v)
		}
	}

	for st, llType := range g.structTypes {
		fieldTypes := make([]llvm.Type, len(st.Fields))
		for i, field := range st.Fields {
			fieldTypes[i] = g.convType(field.Type)
		}

		llvm.SetStructBody(llType, fieldTypes...)
	}

	for _, fd := range funcs {
		g.declareFunc(fd)
	}

	for _, let := range globals {
		let.Sym.Slot = g.mod.NewGlobal(let.Name, g.convType(let.Sym.Type))
	}

	if len(globals) > 0 {
		g.generateGlobalInit(globals)
	}

	for _, fd := range funcs {
		g.generateFuncBody(fd)
	}
}

// -----------------------------------------------------------------------------

// ice raises an internal compiler error at the given node.
func (g *Generator) ice(node ast.Node, msg string, args ...interface{}) {
	panic(report.RaiseDev(node.Span(), msg, args...))
}

// convType converts a Sprig type to its LLVM type.
func (g *Generator) convType(typ types.Type) llvm.Type {
	switch v := typ.(type) {
	case types.PrimitiveType:
		switch v {
		case types.PrimTypeInteger:
			return g.ctx.Int64Type()
		case types.PrimTypeFloat:
			return g.ctx.DoubleType()
		case types.PrimTypeBoolean:
			return g.ctx.Int1Type()
		case types.PrimTypeString:
			return g.ctx.PointerType(g.ctx.Int8Type())
		case types.PrimTypeChar:
			return g.ctx.Int32Type()
		default:
			return g.ctx.VoidType()
		}
	case *types.StructType:
		if llType, ok := g.structTypes[v]; ok {
			return llType
		}
	case *types.EnumType:
		return g.ctx.Int32Type()
	}

	panic(report.DevError{Message: fmt.Sprintf("no LLVM type for `%s`", types.Repr(typ))})
}

// callHelper calls one of the compiler's helper functions.
func (g *Generator) callHelper(name string, args ...llvm.Value) llvm.Value {
	var fn *llvm.Function
	switch name {
	case common.IPowFuncName:
		fn = g.getIPowFunc()
	case common.FPowIntrinsicName:
		fn = g.getFPowFunc()
	}

	return g.irb.BuildCall(fn, args, "powtmp")
}

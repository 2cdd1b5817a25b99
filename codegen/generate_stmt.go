package codegen

import (
	"sprigc/ast"
	"sprigc/types"
)

// irRouter generates any statement or expression node.  Expressions return
// their value; statements return nil.
func (g *Generator) irRouter(node ast.Node) interface{} {
	switch v := node.(type) {
	case *ast.Block:
		g.generateBlock(v)
	case *ast.Let:
		g.generateLet(v)
	case *ast.Assignment:
		g.generateAssignment(v)
	case *ast.If:
		g.generateIf(v)
	case *ast.While:
		g.generateWhile(v)
	case *ast.For:
		g.generateFor(v)
	case *ast.Do:
		g.generateDo(v)
	case *ast.KeywordStmt:
		g.generateKeywordStmt(v)
	case *ast.Return:
		g.generateReturn(v)
	case *ast.ExprStmt:
		if match, ok := v.Expr.(*ast.Match); ok {
			g.generateMatch(match)
		} else {
			g.generateExpr(v.Expr)
		}
	case ast.Expr:
		return g.generateExpr(v)
	default:
		g.ice(node, "codegen for %s not implemented", node.Element())
	}

	return nil
}

// generateLet generates a local variable declaration.
func (g *Generator) generateLet(let *ast.Let) {
	// The initializer is generated before the slot is bound so that it cannot
	// observe the variable it initializes.
	llInit := g.generateExpr(let.Init)

	slot := g.irb.BuildAlloca(g.convType(let.Sym.Type), let.Name)
	g.irb.BuildStore(llInit, slot)
	let.Sym.Slot = slot
}

// generateAssignment generates an assignment to a variable or field.
func (g *Generator) generateAssignment(asn *ast.Assignment) {
	llValue := g.generateExpr(asn.Value)

	ptr, ok := g.generateAddress(asn.Target)
	if !ok {
		g.ice(asn.Target, "assignment target is not addressable")
	}

	g.irb.BuildStore(llValue, ptr)
}

// generateReturn generates a return statement.
func (g *Generator) generateReturn(ret *ast.Return) {
	if ret.Value == nil {
		g.irb.BuildRetVoid()
		return
	}

	llValue := g.generateExpr(ret.Value)

	// A Void value can be returned from a Void function: its evaluation is
	// kept for its side effects.
	if types.IsVoid(g.returnType) {
		g.irb.BuildRetVoid()
	} else {
		g.irb.BuildRet(llValue)
	}
}

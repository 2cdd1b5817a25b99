package codegen

import (
	"strconv"
	"unicode/utf8"

	"sprigc/ast"
	"sprigc/common"
	"sprigc/llvm"
	"sprigc/types"
)

// generateExpr generates an expression and returns its value.
func (g *Generator) generateExpr(expr ast.Expr) llvm.Value {
	switch v := expr.(type) {
	case *ast.BinaryExpr:
		return g.generateBinaryExpr(v)
	case *ast.UnaryExpr:
		return g.generateUnaryExpr(v)
	case *ast.Call:
		return g.generateCall(v)
	case *ast.Variable:
		if v.Sym == nil || v.Sym.Slot == nil {
			g.ice(v, "variable `%s` has no storage", v.Name)
		}

		return g.irb.BuildLoad(g.convType(v.Sym.Type), v.Sym.Slot, v.Name+".load")
	case *ast.Literal:
		return g.generateLiteral(v)
	case *ast.FieldAccess:
		return g.generateFieldAccess(v)
	case *ast.StructLit:
		return g.generateStructLit(v)
	case *ast.EnumValue:
		return g.ctx.ConstInt(g.ctx.Int32Type(), int64(v.Index))
	case *ast.Match:
		return g.generateMatch(v)
	}

	g.ice(expr, "codegen for %s not implemented", expr.Element())
	return nil
}

// generateLiteral generates a literal value.
func (g *Generator) generateLiteral(lit *ast.Literal) llvm.Value {
	switch lit.Kind {
	case ast.LitInt:
		n, err := strconv.ParseInt(lit.Value, 10, 64)
		if err != nil {
			g.ice(lit, "invalid integer literal: %s", err)
		}

		return g.ctx.ConstInt(g.ctx.Int64Type(), n)
	case ast.LitFloat:
		x, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			g.ice(lit, "invalid float literal: %s", err)
		}

		return g.ctx.ConstFloat(x)
	case ast.LitBool:
		return g.ctx.ConstBool(lit.Value == "true")
	case ast.LitString:
		return g.mod.NewStringConstant(lit.Value)
	case ast.LitChar:
		c, size := utf8.DecodeRuneInString(lit.Value)
		if c == utf8.RuneError && size == 1 {
			// A `\xHH` escape above 0x7F.
			return g.ctx.ConstInt(g.ctx.Int32Type(), int64(lit.Value[0]))
		}

		return g.ctx.ConstInt(g.ctx.Int32Type(), int64(c))
	}

	g.ice(lit, "unknown literal kind")
	return nil
}

// generateCall generates a function call.  Arguments are evaluated from left
// to right before the call.
func (g *Generator) generateCall(call *ast.Call) llvm.Value {
	sym, ok := g.global.Get(call.Name)
	if !ok || sym.Func == nil {
		g.ice(call, "call to undeclared function `%s`", call.Name)
	}

	if len(call.Args) != len(sym.Params) {
		g.ice(call, "call to `%s` has %d arguments but %d were expected", call.Name, len(call.Args), len(sym.Params))
	}

	args := make([]llvm.Value, len(call.Args))
	for i, arg := range call.Args {
		args[i] = g.generateExpr(arg)
	}

	return g.irb.BuildCall(sym.Func, args, "calltmp")
}

// -----------------------------------------------------------------------------

// generateBinaryExpr generates a binary operator application.
func (g *Generator) generateBinaryExpr(bin *ast.BinaryExpr) llvm.Value {
	if (bin.Op.Name == "&&" || bin.Op.Name == "||") && mustGuard(bin.Right) {
		return g.generateShortCircuit(bin)
	}

	lhs := g.generateExpr(bin.Left)
	rhs := g.generateExpr(bin.Right)

	switch bin.Op.Name {
	case "+":
		return g.irb.BuildAdd(lhs, rhs, "addtmp")
	case "-":
		return g.irb.BuildSub(lhs, rhs, "subtmp")
	case "*":
		return g.irb.BuildMul(lhs, rhs, "multmp")
	case "/":
		return g.irb.BuildDiv(lhs, rhs, "divtmp")
	case "%":
		return g.irb.BuildRem(lhs, rhs, "remtmp")
	case "**":
		if types.Equals(bin.Left.Type(), types.PrimTypeFloat) {
			return g.callHelper(common.FPowIntrinsicName, lhs, rhs)
		}

		return g.callHelper(common.IPowFuncName, lhs, rhs)
	case "&", "&&":
		return g.irb.BuildAnd(lhs, rhs, "andtmp")
	case "|", "||":
		return g.irb.BuildOr(lhs, rhs, "ortmp")
	case "^":
		return g.irb.BuildXor(lhs, rhs, "xortmp")
	case "<<":
		return g.irb.BuildShl(lhs, rhs, "shltmp")
	case ">>":
		return g.irb.BuildShr(lhs, rhs, "shrtmp")
	case "==":
		return g.irb.BuildICmp(llvm.PredEQ, lhs, rhs, "eqtmp")
	case "!=":
		return g.irb.BuildICmp(llvm.PredNE, lhs, rhs, "netmp")
	case "<":
		return g.irb.BuildICmp(llvm.PredLT, lhs, rhs, "lttmp")
	case "<=":
		return g.irb.BuildICmp(llvm.PredLE, lhs, rhs, "letmp")
	case ">":
		return g.irb.BuildICmp(llvm.PredGT, lhs, rhs, "gttmp")
	case ">=":
		return g.irb.BuildICmp(llvm.PredGE, lhs, rhs, "getmp")
	}

	g.ice(bin, "unknown binary operator `%s`", bin.Op.Name)
	return nil
}

// generateShortCircuit generates a `&&` or `||` whose right operand is only
// evaluated when the left operand does not already decide the result.
func (g *Generator) generateShortCircuit(bin *ast.BinaryExpr) llvm.Value {
	isAnd := bin.Op.Name == "&&"

	prefix := "lor"
	if isAnd {
		prefix = "land"
	}

	lhs := g.generateExpr(bin.Left)
	lhsBlock := g.irb.Block()

	rhsBlock := g.irb.AppendBlock(prefix + ".rhs")
	endBlock := g.irb.AppendBlock(prefix + ".end")

	if isAnd {
		g.irb.BuildCondBr(lhs, rhsBlock, endBlock)
	} else {
		g.irb.BuildCondBr(lhs, endBlock, rhsBlock)
	}

	g.irb.MoveToEnd(rhsBlock)
	rhs := g.generateExpr(bin.Right)

	// The right operand may itself have created blocks.
	rhsEndBlock := g.irb.Block()
	g.irb.BuildBr(endBlock)

	g.irb.MoveToEnd(endBlock)
	return g.irb.BuildPhi(
		prefix+"tmp",
		llvm.Incoming{Value: g.ctx.ConstBool(!isAnd), Block: lhsBlock},
		llvm.Incoming{Value: rhs, Block: rhsEndBlock},
	)
}

// mustGuard returns whether expr may call a function or trap and so must only
// be evaluated when the left operand of `&&` or `||` does not decide the result.
func mustGuard(expr ast.Expr) bool {
	switch v := expr.(type) {
	case *ast.Call:
		return true
	case *ast.BinaryExpr:
		if (v.Op.Name == "/" || v.Op.Name == "%") && !types.Equals(v.Type(), types.PrimTypeFloat) {
			return true
		}

		return mustGuard(v.Left) || mustGuard(v.Right)
	case *ast.UnaryExpr:
		return mustGuard(v.Operand)
	case *ast.FieldAccess:
		return mustGuard(v.Root)
	case *ast.StructLit:
		for _, field := range v.Fields {
			if mustGuard(field.Value) {
				return true
			}
		}
	case *ast.Match:
		if mustGuard(v.Scrutinee) {
			return true
		}

		for _, arm := range v.Arms {
			if arm.Guard != nil && mustGuard(arm.Guard) {
				return true
			}

			body, ok := arm.Body.(ast.Expr)
			if !ok || mustGuard(body) {
				return true
			}
		}
	}

	return false
}

// generateUnaryExpr generates a unary operator application.
func (g *Generator) generateUnaryExpr(un *ast.UnaryExpr) llvm.Value {
	operand := g.generateExpr(un.Operand)

	switch un.Op.Name {
	case "-":
		return g.irb.BuildNeg(operand, "negtmp")
	case "~":
		return g.irb.BuildNot(operand, "nottmp")
	case "!":
		return g.irb.BuildLogicalNot(g.ctx, operand, "lnottmp")
	}

	g.ice(un, "unknown unary operator `%s`", un.Op.Name)
	return nil
}

// -----------------------------------------------------------------------------

// generateFieldAccess generates a struct field access.  Fields of values with
// storage are loaded through their address; fields of temporaries are
// extracted from the aggregate.
func (g *Generator) generateFieldAccess(fa *ast.FieldAccess) llvm.Value {
	if ptr, ok := g.generateAddress(fa); ok {
		return g.irb.BuildLoad(g.convType(fa.Type()), ptr, fa.Field+".load")
	}

	return g.irb.BuildExtractValue(g.generateExpr(fa.Root), fa.Index, fa.Field+".val")
}

// generateAddress returns the address of an expression if it has storage:
// variables and fields of values with storage.
func (g *Generator) generateAddress(expr ast.Expr) (llvm.Value, bool) {
	switch v := expr.(type) {
	case *ast.Variable:
		if v.Sym == nil || v.Sym.Slot == nil {
			g.ice(v, "variable `%s` has no storage", v.Name)
		}

		return v.Sym.Slot, true
	case *ast.FieldAccess:
		if rootPtr, ok := g.generateAddress(v.Root); ok {
			return g.irb.BuildStructGEP(g.convType(v.Root.Type()), rootPtr, v.Index, v.Field+".addr"), true
		}
	}

	return nil, false
}

// generateStructLit generates a struct literal as an aggregate value.
func (g *Generator) generateStructLit(lit *ast.StructLit) llvm.Value {
	agg := g.ctx.ConstZero(g.convType(lit.Type()))

	for _, field := range lit.Fields {
		agg = g.irb.BuildInsertValue(agg, g.generateExpr(field.Value), field.Index, "structtmp")
	}

	return agg
}

package codegen

import (
	"sprigc/ast"
	"sprigc/common"
	"sprigc/llvm"
	"sprigc/types"
)

// declareFunc declares the LLVM function of a function declaration.  Its body
// is generated later by generateFuncBody.
func (g *Generator) declareFunc(fd *ast.FuncDecl) {
	llParams := make([]llvm.Param, len(fd.Params))
	for i, param := range fd.Params {
		llParams[i] = llvm.Param{Name: param.Name, Type: g.convType(param.Type)}
	}

	fd.Sym.Func = g.mod.NewFunction(fd.Name, g.convType(fd.Sym.Returns), llParams...)
}

// generateFuncBody generates the body of a declared function.
func (g *Generator) generateFuncBody(fd *ast.FuncDecl) {
	llFunc := fd.Sym.Func
	if llFunc == nil {
		g.ice(fd, "function `%s` was never declared", fd.Name)
	}

	g.irb.MoveToEnd(llFunc.NewBlock("entry"))
	g.returnType = fd.Sym.Returns
	g.loops = nil

	// Parameters are copied into stack slots so that they can be treated
	// exactly like local variables.
	for i, llParam := range llFunc.Params() {
		param := fd.Params[i]

		slot := g.irb.BuildAlloca(g.convType(param.Type), param.Name+".addr")
		g.irb.BuildStore(llParam, slot)
		param.Sym.Slot = slot
	}

	if fd.Name == "main" && g.initFunc != nil {
		g.irb.BuildCall(g.initFunc, nil, "")
	}

	g.generateBlock(fd.Body)

	// Falling off the end of the body is only possible for Void functions:
	// the walker rejects it for everything else.
	if !g.irb.Block().Terminated() {
		if types.IsVoid(fd.Sym.Returns) {
			g.irb.BuildRetVoid()
		} else {
			g.irb.BuildUnreachable()
		}
	}

	g.terminateBlocks(llFunc)
}

// terminateBlocks terminates every block of llFunc left without a terminator:
// such blocks are never reached.
func (g *Generator) terminateBlocks(llFunc *llvm.Function) {
	for _, block := range llFunc.Blocks() {
		if !block.Terminated() {
			g.irb.MoveToEnd(block)
			g.irb.BuildUnreachable()
		}
	}
}

// generateGlobalInit generates the global initialization function which
// stores the initial value of every global variable in declaration order.
func (g *Generator) generateGlobalInit(globals []*ast.Let) {
	g.initFunc = g.mod.NewFunction(common.InitFuncName, g.ctx.VoidType())

	g.irb.MoveToEnd(g.initFunc.NewBlock("entry"))
	g.returnType = types.PrimTypeVoid

	for _, let := range globals {
		g.irb.BuildStore(g.generateExpr(let.Init), let.Sym.Slot)
	}

	g.irb.BuildRetVoid()
	g.terminateBlocks(g.initFunc)
}

// -----------------------------------------------------------------------------

// getIPowFunc returns the integer exponentiation helper, generating it on
// first use.  The helper uses exponentiation by squaring; negative exponents
// produce zero.
func (g *Generator) getIPowFunc() *llvm.Function {
	if g.ipowFunc != nil {
		return g.ipowFunc
	}

	i64 := g.ctx.Int64Type()
	fn := g.mod.NewFunction(
		common.IPowFuncName,
		i64,
		llvm.Param{Name: "base", Type: i64},
		llvm.Param{Name: "exp", Type: i64},
	)
	g.ipowFunc = fn

	// The helper may be requested in the middle of another function.
	prevBlock := g.irb.Block()
	defer g.irb.MoveToEnd(prevBlock)

	params := fn.Params()
	zero, one := g.ctx.ConstInt(i64, 0), g.ctx.ConstInt(i64, 1)

	entry := fn.NewBlock("entry")
	g.irb.MoveToEnd(entry)

	result := g.irb.BuildAlloca(i64, "result")
	base := g.irb.BuildAlloca(i64, "base.addr")
	exp := g.irb.BuildAlloca(i64, "exp.addr")
	g.irb.BuildStore(one, result)
	g.irb.BuildStore(params[0], base)
	g.irb.BuildStore(params[1], exp)

	negBlock := fn.NewBlock("neg")
	headerBlock := fn.NewBlock("loop.header")
	bodyBlock := fn.NewBlock("loop.body")
	oddBlock := fn.NewBlock("odd")
	stepBlock := fn.NewBlock("loop.step")
	exitBlock := fn.NewBlock("loop.exit")

	isNeg := g.irb.BuildICmp(llvm.PredLT, params[1], zero, "negtmp")
	g.irb.BuildCondBr(isNeg, negBlock, headerBlock)

	g.irb.MoveToEnd(negBlock)
	g.irb.BuildRet(zero)

	g.irb.MoveToEnd(headerBlock)
	expVal := g.irb.BuildLoad(i64, exp, "exp.load")
	g.irb.BuildCondBr(g.irb.BuildICmp(llvm.PredGT, expVal, zero, "gttmp"), bodyBlock, exitBlock)

	g.irb.MoveToEnd(bodyBlock)
	expVal = g.irb.BuildLoad(i64, exp, "exp.load")
	isOdd := g.irb.BuildICmp(llvm.PredNE, g.irb.BuildAnd(expVal, one, "andtmp"), zero, "netmp")
	g.irb.BuildCondBr(isOdd, oddBlock, stepBlock)

	g.irb.MoveToEnd(oddBlock)
	resultVal := g.irb.BuildLoad(i64, result, "result.load")
	baseVal := g.irb.BuildLoad(i64, base, "base.load")
	g.irb.BuildStore(g.irb.BuildMul(resultVal, baseVal, "multmp"), result)
	g.irb.BuildBr(stepBlock)

	g.irb.MoveToEnd(stepBlock)
	baseVal = g.irb.BuildLoad(i64, base, "base.load")
	g.irb.BuildStore(g.irb.BuildMul(baseVal, baseVal, "multmp"), base)
	expVal = g.irb.BuildLoad(i64, exp, "exp.load")
	g.irb.BuildStore(g.irb.BuildShr(expVal, one, "shrtmp"), exp)
	g.irb.BuildBr(headerBlock)

	g.irb.MoveToEnd(exitBlock)
	g.irb.BuildRet(g.irb.BuildLoad(i64, result, "result.load"))

	return fn
}

// getFPowFunc returns the declaration of the floating-point power intrinsic.
func (g *Generator) getFPowFunc() *llvm.Function {
	if g.fpowFunc == nil {
		double := g.ctx.DoubleType()
		g.fpowFunc = g.mod.DeclareFunction(
			common.FPowIntrinsicName,
			double,
			llvm.Param{Name: "x", Type: double},
			llvm.Param{Name: "y", Type: double},
		)
	}

	return g.fpowFunc
}

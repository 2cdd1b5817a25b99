package codegen

import (
	"sprigc/ast"
	"sprigc/llvm"
)

// generateBlock generates a block of statements.
func (g *Generator) generateBlock(block *ast.Block) {
	for _, stmt := range block.Stmts {
		g.irRouter(stmt)

		// Once the current block has a terminator, everything after it in the
		// source block is dead code.
		if g.irb.Block().Terminated() {
			return
		}
	}
}

// -----------------------------------------------------------------------------

// generateIf generates an if statement along with its elif chain.
func (g *Generator) generateIf(ifStmt *ast.If) {
	llCond := g.generateExpr(ifStmt.Cond)

	thenBlock := g.irb.AppendBlock("then")

	var elseBlock llvm.BasicBlock
	if ifStmt.Else != nil {
		elseBlock = g.irb.AppendBlock("else")
	}

	mergeBlock := g.irb.AppendBlock("merge")

	if elseBlock.Exists() {
		g.irb.BuildCondBr(llCond, thenBlock, elseBlock)
	} else {
		g.irb.BuildCondBr(llCond, thenBlock, mergeBlock)
	}

	g.irb.MoveToEnd(thenBlock)
	g.generateBlock(ifStmt.Then)
	g.branchTo(mergeBlock)

	if elseBlock.Exists() {
		g.irb.MoveToEnd(elseBlock)

		switch v := ifStmt.Else.(type) {
		case *ast.Block:
			g.generateBlock(v)
		case *ast.If:
			g.generateIf(v)
		default:
			g.ice(ifStmt, "invalid else branch")
		}

		g.branchTo(mergeBlock)
	}

	// The merge block is left in place even when it is unreachable: it is
	// terminated once the function is complete.
	g.irb.MoveToEnd(mergeBlock)
}

// branchTo builds a branch to dest if the current block is not terminated.
func (g *Generator) branchTo(dest llvm.BasicBlock) {
	if !g.irb.Block().Terminated() {
		g.irb.BuildBr(dest)
	}
}

// -----------------------------------------------------------------------------

// generateWhile generates a while loop.
func (g *Generator) generateWhile(loop *ast.While) {
	headerBlock := g.irb.AppendBlock("while.header")
	bodyBlock := g.irb.AppendBlock("while.body")
	exitBlock := g.irb.AppendBlock("while.exit")

	g.irb.BuildBr(headerBlock)

	g.irb.MoveToEnd(headerBlock)
	g.irb.BuildCondBr(g.generateExpr(loop.Cond), bodyBlock, exitBlock)

	g.irb.MoveToEnd(bodyBlock)
	g.generateLoopBody(loop.Body, exitBlock, headerBlock)
	g.branchTo(headerBlock)

	g.irb.MoveToEnd(exitBlock)
}

// generateFor generates a C-style for loop.  The initializer is generated in
// the enclosing block.
func (g *Generator) generateFor(loop *ast.For) {
	if loop.Init != nil {
		g.irRouter(loop.Init)
	}

	headerBlock := g.irb.AppendBlock("for.header")
	bodyBlock := g.irb.AppendBlock("for.body")
	stepBlock := g.irb.AppendBlock("for.step")
	exitBlock := g.irb.AppendBlock("for.exit")

	g.irb.BuildBr(headerBlock)

	g.irb.MoveToEnd(headerBlock)
	if loop.Cond != nil {
		g.irb.BuildCondBr(g.generateExpr(loop.Cond), bodyBlock, exitBlock)
	} else {
		g.irb.BuildBr(bodyBlock)
	}

	g.irb.MoveToEnd(bodyBlock)
	g.generateLoopBody(loop.Body, exitBlock, stepBlock)
	g.branchTo(stepBlock)

	g.irb.MoveToEnd(stepBlock)
	if loop.Step != nil {
		g.irRouter(loop.Step)
	}
	g.irb.BuildBr(headerBlock)

	g.irb.MoveToEnd(exitBlock)
}

// generateDo generates a do-while loop: the body always runs once before the
// condition is first tested.
func (g *Generator) generateDo(loop *ast.Do) {
	bodyBlock := g.irb.AppendBlock("do.body")
	headerBlock := g.irb.AppendBlock("do.header")
	exitBlock := g.irb.AppendBlock("do.exit")

	g.irb.BuildBr(bodyBlock)

	g.irb.MoveToEnd(bodyBlock)
	g.generateLoopBody(loop.Body, exitBlock, headerBlock)
	g.branchTo(headerBlock)

	g.irb.MoveToEnd(headerBlock)
	g.irb.BuildCondBr(g.generateExpr(loop.Cond), bodyBlock, exitBlock)

	g.irb.MoveToEnd(exitBlock)
}

// generateLoopBody generates the body of a loop with the given loop targets
// pushed onto the loop-target stack.
func (g *Generator) generateLoopBody(body *ast.Block, breakBlock, continueBlock llvm.BasicBlock) {
	g.loops = append(g.loops, loopTarget{breakBlock: breakBlock, continueBlock: continueBlock})
	g.generateBlock(body)
	g.loops = g.loops[:len(g.loops)-1]
}

// generateKeywordStmt generates a `break` or `continue` statement.
func (g *Generator) generateKeywordStmt(ks *ast.KeywordStmt) {
	if len(g.loops) == 0 {
		g.ice(ks, "loop control statement outside of a loop")
	}

	target := g.loops[len(g.loops)-1]
	if ks.Kind == ast.ElemBreak {
		g.irb.BuildBreak(target.breakBlock)
	} else {
		g.irb.BuildContinue(target.continueBlock)
	}
}

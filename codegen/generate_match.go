package codegen

import (
	"sprigc/ast"
	"sprigc/llvm"
	"sprigc/types"
)

// generateMatch generates a match expression as a chain of equality tests.
// Each arm gets its own block and all arms that complete normally jump to a
// shared merge block.  If the match is used as a value, its value is joined
// in the merge block by a phi node; otherwise, nil is returned.
func (g *Generator) generateMatch(match *ast.Match) llvm.Value {
	isValue := !types.IsVoid(match.Type())

	scrut := g.generateExpr(match.Scrutinee)

	// The arm blocks which fall through to the merge block and the value each
	// produces.
	var incoming []llvm.Incoming

	exhaustive := false
	for _, arm := range match.Arms {
		armBlock := g.irb.AppendBlock("match.arm")

		var nextBlock llvm.BasicBlock
		if !arm.IsWildcard() || arm.Guard != nil {
			nextBlock = g.irb.AppendBlock("match.next")
		}

		if !arm.IsWildcard() {
			cmp := g.irb.BuildICmp(llvm.PredEQ, scrut, g.generateExpr(arm.Pattern), "matchtmp")

			if arm.Guard != nil {
				guardBlock := g.irb.AppendBlock("match.guard")
				g.irb.BuildCondBr(cmp, guardBlock, nextBlock)
				g.irb.MoveToEnd(guardBlock)
			} else {
				g.irb.BuildCondBr(cmp, armBlock, nextBlock)
			}
		}

		if arm.Guard != nil {
			g.irb.BuildCondBr(g.generateExpr(arm.Guard), armBlock, nextBlock)
		} else if arm.IsWildcard() {
			g.irb.BuildBr(armBlock)
		}

		g.irb.MoveToEnd(armBlock)

		var armValue llvm.Value
		switch v := arm.Body.(type) {
		case *ast.Block:
			g.generateBlock(v)
		case ast.Expr:
			armValue = g.generateExpr(v)
		default:
			g.ice(match, "invalid match arm body")
		}

		if !g.irb.Block().Terminated() {
			incoming = append(incoming, llvm.Incoming{Value: armValue, Block: g.irb.Block()})
		}

		// An unguarded wildcard matches everything: any arms after it are
		// never reached.
		if !nextBlock.Exists() {
			exhaustive = true
			break
		}

		g.irb.MoveToEnd(nextBlock)
	}

	if !exhaustive {
		if isValue {
			g.irb.BuildUnreachable()
		} else {
			incoming = append(incoming, llvm.Incoming{Block: g.irb.Block()})
		}
	}

	mergeBlock := g.irb.AppendBlock("match.end")
	for _, inc := range incoming {
		g.irb.MoveToEnd(inc.Block)
		g.irb.BuildBr(mergeBlock)
	}

	g.irb.MoveToEnd(mergeBlock)

	if !isValue {
		return nil
	}

	if len(incoming) == 0 {
		// Every arm leaves the function so the value is never used.
		return g.ctx.ConstZero(g.convType(match.Type()))
	}

	return g.irb.BuildPhi("matchval", incoming...)
}

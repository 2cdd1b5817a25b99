package syntax

import (
	"sprigc/ast"
	"sprigc/depm"
	"sprigc/report"
)

// block := '{' {stmt} '}' ;
func (p *Parser) parseBlock() *ast.Block {
	startSpan := p.want(TOK_LBRACKET).Span

	p.pushScope()

	var stmts []ast.Node
	for !p.hasOneOf(TOK_RBRACKET, TOK_EOF) {
		if stmt := p.parseStmtRecovering(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	p.popScope()

	endSpan := p.want(TOK_RBRACKET).Span

	return &ast.Block{
		ASTBase: ast.NewASTBaseOver(startSpan, endSpan),
		Stmts:   stmts,
	}
}

// parseStmtRecovering parses a statement, recovering from any syntax error in
// it by skipping to the end of the statement.
func (p *Parser) parseStmtRecovering() (stmt ast.Node) {
	defer p.recoverWith(p.save(), p.syncStmt)

	return p.parseStmt()
}

// stmt := block_stmt | simple_stmt ';' ;
// block_stmt := if_stmt | while_loop | for_loop | match_expr [';'] | block ;
// simple_stmt := let_stmt | do_while_loop | 'break' | 'continue' | 'return' [expr] | expr_assign_stmt ;
func (p *Parser) parseStmt() ast.Node {
	var stmt ast.Node

	switch p.tok.Kind {
	case TOK_LET:
		return p.parseLetStmt()
	case TOK_IF:
		return p.parseIfStmt()
	case TOK_WHILE:
		return p.parseWhileLoop()
	case TOK_FOR:
		return p.parseForLoop()
	case TOK_DO:
		stmt = p.parseDoWhileLoop()
	case TOK_LBRACKET:
		return p.parseBlock()
	case TOK_MATCH:
		match := p.parseMatchExpr()
		if p.has(TOK_SEMI) {
			p.next()
		}

		return &ast.ExprStmt{
			ASTBase: ast.NewASTBaseOn(match.Span()),
			Expr:    match,
		}
	case TOK_BREAK, TOK_CONTINUE:
		p.next()

		kind := ast.ElemBreak
		if p.lookbehind.Kind == TOK_CONTINUE {
			kind = ast.ElemContinue
		}

		stmt = &ast.KeywordStmt{
			ASTBase: ast.NewASTBaseOn(p.lookbehind.Span),
			Kind:    kind,
		}
	case TOK_RETURN:
		{
			p.next()
			startSpan := p.lookbehind.Span

			var value ast.Expr
			if !p.has(TOK_SEMI) {
				value = p.parseExpr()
			}

			stmt = &ast.Return{
				ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
				Value:   value,
			}
		}
	default:
		stmt = p.parseExprAssignStmt()
	}

	p.want(TOK_SEMI)
	return stmt
}

// let_stmt := let_decl ';' ;
func (p *Parser) parseLetStmt() *ast.Let {
	let := p.parseLetDecl()
	p.want(TOK_SEMI)
	return let
}

// let_decl := 'let' 'IDENTIFIER' [type_ext] initializer ;
// initializer := '=' expr ;
func (p *Parser) parseLetDecl() *ast.Let {
	startSpan := p.want(TOK_LET).Span
	nameTok := p.want(TOK_IDENT)

	let := &ast.Let{
		Name:     nameTok.Value,
		NameSpan: nameTok.Span,
	}

	if p.has(TOK_COLON) {
		let.TypeLabel = p.parseTypeExt()
	}

	p.want(TOK_ASSIGN)
	let.Init = p.parseExpr()
	let.ASTBase = ast.NewASTBaseOver(startSpan, let.Init.Span())

	// The variable is declared after its initializer so that the initializer
	// can not refer to it.
	let.Sym = &depm.SymbolInfo{
		Name:    nameTok.Value,
		DefSpan: nameTok.Span,
		Kind:    depm.SymbolVariable,
		Type:    let.TypeLabel,
		Global:  p.atGlobalScope(),
	}
	p.declare(let.Sym)

	return let
}

// expr_assign_stmt := expr ['=' expr] ;
func (p *Parser) parseExprAssignStmt() ast.Node {
	lhs := p.parseExpr()

	if !p.has(TOK_ASSIGN) {
		return &ast.ExprStmt{
			ASTBase: ast.NewASTBaseOn(lhs.Span()),
			Expr:    lhs,
		}
	}

	switch lhs.(type) {
	case *ast.Variable, *ast.FieldAccess:
	default:
		panic(report.Raise(lhs.Span(), "cannot assign to this expression"))
	}

	p.next()
	rhs := p.parseExpr()

	return &ast.Assignment{
		ASTBase: ast.NewASTBaseOver(lhs.Span(), rhs.Span()),
		Target:  lhs,
		Value:   rhs,
	}
}

// -----------------------------------------------------------------------------

// if_stmt := 'if' cond_expr block {'elif' cond_expr block} ['else' block] ;
func (p *Parser) parseIfStmt() *ast.If {
	// Both `if` and `elif` begin a conditional branch.
	startSpan := p.tok.Span
	if !p.hasOneOf(TOK_IF, TOK_ELIF) {
		p.reject("`if`")
	}
	p.next()

	cond := p.parseCondExpr()
	then := p.parseBlock()

	ifStmt := &ast.If{
		Cond: cond,
		Then: then,
	}

	switch p.tok.Kind {
	case TOK_ELIF:
		ifStmt.Else = p.parseIfStmt()
	case TOK_ELSE:
		p.next()
		ifStmt.Else = p.parseBlock()
	}

	if ifStmt.Else != nil {
		ifStmt.ASTBase = ast.NewASTBaseOver(startSpan, ifStmt.Else.Span())
	} else {
		ifStmt.ASTBase = ast.NewASTBaseOver(startSpan, then.Span())
	}

	return ifStmt
}

// while_loop := 'while' cond_expr block ;
func (p *Parser) parseWhileLoop() *ast.While {
	startSpan := p.want(TOK_WHILE).Span

	cond := p.parseCondExpr()
	body := p.parseBlock()

	return &ast.While{
		ASTBase: ast.NewASTBaseOver(startSpan, body.Span()),
		Cond:    cond,
		Body:    body,
	}
}

// for_loop := 'for' [for_init] ';' [cond_expr] ';' [expr_assign_stmt] block ;
// for_init := let_decl | expr_assign_stmt ;
func (p *Parser) parseForLoop() *ast.For {
	startSpan := p.want(TOK_FOR).Span

	// The loop header has its own scope for the iterator variable.
	p.pushScope()

	forLoop := &ast.For{}

	if p.has(TOK_LET) {
		forLoop.Init = p.parseLetDecl()
	} else if !p.has(TOK_SEMI) {
		forLoop.Init = p.parseExprAssignStmt()
	}

	p.want(TOK_SEMI)

	if !p.has(TOK_SEMI) {
		forLoop.Cond = p.parseCondExpr()
	}

	p.want(TOK_SEMI)

	if !p.has(TOK_LBRACKET) {
		prev := p.noStructLit
		p.noStructLit = true
		forLoop.Step = p.parseExprAssignStmt()
		p.noStructLit = prev
	}

	forLoop.Body = p.parseBlock()

	p.popScope()

	forLoop.ASTBase = ast.NewASTBaseOver(startSpan, forLoop.Body.Span())
	return forLoop
}

// do_while_loop := 'do' block 'while' expr ;
func (p *Parser) parseDoWhileLoop() *ast.Do {
	startSpan := p.want(TOK_DO).Span

	body := p.parseBlock()

	p.want(TOK_WHILE)
	cond := p.parseExpr()

	return &ast.Do{
		ASTBase: ast.NewASTBaseOver(startSpan, cond.Span()),
		Body:    body,
		Cond:    cond,
	}
}

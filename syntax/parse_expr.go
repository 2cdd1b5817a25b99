package syntax

import (
	"sprigc/ast"
	"sprigc/report"
)

// expr := unary_expr {binary_op unary_expr} ;
func (p *Parser) parseExpr() ast.Expr {
	return p.parseBinaryExpr(1)
}

// cond_expr := expr ;
//
// Struct literals are not allowed at the top level of a condition since the
// opening brace would be ambiguous with the block following the condition.
func (p *Parser) parseCondExpr() ast.Expr {
	prev := p.noStructLit
	p.noStructLit = true

	expr := p.parseExpr()

	p.noStructLit = prev
	return expr
}

// binaryPrecs is the precedence table for binary operators keyed by token
// kind.  Higher values bind more tightly.  All binary operators are
// left-associative except for `**` which is right-associative.  This must be
// kept in sync with ast.BinaryPrec.
var binaryPrecs = map[int]int{
	TOK_LOR:    1,
	TOK_LAND:   2,
	TOK_EQ:     3,
	TOK_NEQ:    3,
	TOK_LT:     4,
	TOK_GT:     4,
	TOK_LTEQ:   4,
	TOK_GTEQ:   4,
	TOK_BWOR:   5,
	TOK_CARET:  6,
	TOK_BWAND:  7,
	TOK_LSHIFT: 8,
	TOK_RSHIFT: 8,
	TOK_PLUS:   9,
	TOK_MINUS:  9,
	TOK_STAR:   10,
	TOK_DIV:    10,
	TOK_MOD:    10,
	TOK_POWER:  12,
}

// parseBinaryExpr parses a binary expression using precedence climbing: only
// operators with a precedence of at least minPrec are consumed.
func (p *Parser) parseBinaryExpr(minPrec int) ast.Expr {
	lhs := p.parseUnaryExpr()

	for {
		prec, ok := binaryPrecs[p.tok.Kind]
		if !ok || prec < minPrec {
			return lhs
		}

		opTok := p.tok
		p.next()

		// Left-associative operators only accept tighter operators on their
		// right hand side.
		nextMinPrec := prec + 1
		if opTok.Kind == TOK_POWER {
			nextMinPrec = prec
		}

		rhs := p.parseBinaryExpr(nextMinPrec)

		lhs = &ast.BinaryExpr{
			ExprBase: ast.NewExprBase(report.NewSpanOver(lhs.Span(), rhs.Span())),
			Op:       ast.Oper{Name: opTok.Value, Span: opTok.Span},
			Left:     lhs,
			Right:    rhs,
		}
	}
}

// unary_expr := ('-' | '~' | '!') power_expr | atom_expr ;
// power_expr := unary_expr {'**' unary_expr} ;
func (p *Parser) parseUnaryExpr() ast.Expr {
	switch p.tok.Kind {
	case TOK_MINUS, TOK_COMPL, TOK_NOT:
		opTok := p.tok
		p.next()

		// Prefix operators bind more loosely than `**`.
		operand := p.parseBinaryExpr(ast.PowerPrec)

		return &ast.UnaryExpr{
			ExprBase: ast.NewExprBase(report.NewSpanOver(opTok.Span, operand.Span())),
			Op:       ast.Oper{Name: opTok.Value, Span: opTok.Span},
			Operand:  operand,
		}
	default:
		return p.parseAtomExpr()
	}
}

// atom_expr := atom {'.' 'IDENTIFIER'} ;
func (p *Parser) parseAtomExpr() ast.Expr {
	atom := p.parseAtom()

	for p.has(TOK_DOT) {
		p.next()

		fieldTok := p.want(TOK_IDENT)

		atom = &ast.FieldAccess{
			ExprBase:  ast.NewExprBase(report.NewSpanOver(atom.Span(), fieldTok.Span)),
			Root:      atom,
			Field:     fieldTok.Value,
			FieldSpan: fieldTok.Span,
		}
	}

	return atom
}

// atom := literal | 'IDENTIFIER' | call | struct_lit | enum_value | match_expr | '(' expr ')' ;
func (p *Parser) parseAtom() ast.Expr {
	switch p.tok.Kind {
	case TOK_INT, TOK_FLOAT, TOK_TRUE, TOK_FALSE, TOK_STRING, TOK_CHAR:
		return p.parseLiteral()
	case TOK_IDENT:
		switch p.peek().Kind {
		case TOK_LPAREN:
			return p.parseCall()
		case TOK_COLONCOLON:
			return p.parseEnumValue()
		case TOK_LBRACKET:
			if _, ok := p.typeNames[p.tok.Value]; ok && !p.noStructLit {
				return p.parseStructLit()
			}
		}

		identTok := p.tok
		p.next()

		return &ast.Variable{
			ExprBase: ast.NewExprBase(identTok.Span),
			Name:     identTok.Value,
		}
	case TOK_MATCH:
		return p.parseMatchExpr()
	case TOK_LPAREN:
		{
			p.next()

			prev := p.noStructLit
			p.noStructLit = false

			expr := p.parseExpr()

			p.noStructLit = prev

			p.want(TOK_RPAREN)
			return expr
		}
	}

	p.reject("expression")
	return nil
}

// literal := 'INT' | 'FLOAT' | 'true' | 'false' | 'STRING' | 'CHAR' ;
func (p *Parser) parseLiteral() *ast.Literal {
	var kind int
	switch p.tok.Kind {
	case TOK_INT:
		kind = ast.LitInt
	case TOK_FLOAT:
		kind = ast.LitFloat
	case TOK_TRUE, TOK_FALSE:
		kind = ast.LitBool
	case TOK_STRING:
		kind = ast.LitString
	case TOK_CHAR:
		kind = ast.LitChar
	default:
		p.reject("literal")
	}

	litTok := p.tok
	p.next()

	return &ast.Literal{
		ExprBase: ast.NewExprBase(litTok.Span),
		Kind:     kind,
		Value:    litTok.Value,
	}
}

// call := 'IDENTIFIER' '(' [expr {',' expr}] ')' ;
func (p *Parser) parseCall() *ast.Call {
	nameTok := p.want(TOK_IDENT)
	p.want(TOK_LPAREN)

	prev := p.noStructLit
	p.noStructLit = false

	var args []ast.Expr
	if !p.has(TOK_RPAREN) {
		for {
			args = append(args, p.parseExpr())

			if p.has(TOK_COMMA) {
				p.next()
				continue
			}

			break
		}
	}

	p.noStructLit = prev

	endSpan := p.want(TOK_RPAREN).Span

	return &ast.Call{
		ExprBase: ast.NewExprBase(report.NewSpanOver(nameTok.Span, endSpan)),
		Name:     nameTok.Value,
		NameSpan: nameTok.Span,
		Args:     args,
	}
}

// enum_value := 'IDENTIFIER' '::' 'IDENTIFIER' ;
func (p *Parser) parseEnumValue() *ast.EnumValue {
	enumTok := p.want(TOK_IDENT)
	p.want(TOK_COLONCOLON)
	variantTok := p.want(TOK_IDENT)

	return &ast.EnumValue{
		ExprBase: ast.NewExprBase(report.NewSpanOver(enumTok.Span, variantTok.Span)),
		Enum:     enumTok.Value,
		Variant:  variantTok.Value,
	}
}

// struct_lit := 'IDENTIFIER' '{' [field_init {',' field_init} [',']] '}' ;
// field_init := 'IDENTIFIER' ':' expr ;
func (p *Parser) parseStructLit() *ast.StructLit {
	nameTok := p.want(TOK_IDENT)
	p.want(TOK_LBRACKET)

	var fields []*ast.FieldInit
	for !p.has(TOK_RBRACKET) {
		fieldTok := p.want(TOK_IDENT)
		p.want(TOK_COLON)
		value := p.parseExpr()

		fields = append(fields, &ast.FieldInit{
			Name:  fieldTok.Value,
			Span:  fieldTok.Span,
			Value: value,
		})

		if !p.has(TOK_COMMA) {
			break
		}

		p.next()
	}

	endSpan := p.want(TOK_RBRACKET).Span

	return &ast.StructLit{
		ExprBase: ast.NewExprBase(report.NewSpanOver(nameTok.Span, endSpan)),
		Name:     nameTok.Value,
		Fields:   fields,
	}
}

// -----------------------------------------------------------------------------

// match_expr := 'match' cond_expr '{' match_arm {',' match_arm} [','] '}' ;
// match_arm := pattern ['if' expr] '=>' (expr | block) ;
func (p *Parser) parseMatchExpr() *ast.Match {
	startSpan := p.want(TOK_MATCH).Span

	scrutinee := p.parseCondExpr()

	p.want(TOK_LBRACKET)

	prev := p.noStructLit
	p.noStructLit = false

	var arms []*ast.MatchArm
	for !p.has(TOK_RBRACKET) {
		arm := p.parseMatchArm()
		arms = append(arms, arm)

		if p.has(TOK_COMMA) {
			p.next()
		} else if _, ok := arm.Body.(*ast.Block); !ok {
			// Only arms with block bodies may omit the separating comma.
			break
		}
	}

	p.noStructLit = prev

	endSpan := p.want(TOK_RBRACKET).Span

	if len(arms) == 0 {
		p.recError(report.NewSpanOver(startSpan, endSpan), "match must have at least one arm")
	}

	return &ast.Match{
		ExprBase:  ast.NewExprBase(report.NewSpanOver(startSpan, endSpan)),
		Scrutinee: scrutinee,
		Arms:      arms,
	}
}

// match_arm := pattern ['if' expr] '=>' (expr | block) ;
func (p *Parser) parseMatchArm() *ast.MatchArm {
	startSpan := p.tok.Span

	pattern := p.parsePattern()

	var guard ast.Expr
	if p.has(TOK_IF) {
		p.next()
		guard = p.parseExpr()
	}

	p.want(TOK_FATARROW)

	var body ast.Node
	if p.has(TOK_LBRACKET) {
		body = p.parseBlock()
	} else {
		body = p.parseExpr()
	}

	return &ast.MatchArm{
		ASTBase: ast.NewASTBaseOver(startSpan, body.Span()),
		Pattern: pattern,
		Guard:   guard,
		Body:    body,
	}
}

// pattern := '_' | ['-'] ('INT' | 'FLOAT') | 'CHAR' | 'true' | 'false' | enum_value ;
//
// The wildcard pattern is represented as a nil pattern.
func (p *Parser) parsePattern() ast.Expr {
	switch p.tok.Kind {
	case TOK_IDENT:
		if p.tok.Value == "_" {
			p.next()
			return nil
		}

		return p.parseEnumValue()
	case TOK_MINUS:
		opTok := p.tok
		p.next()

		if !p.hasOneOf(TOK_INT, TOK_FLOAT) {
			p.reject("numeric literal")
		}

		operand := p.parseLiteral()
		return &ast.UnaryExpr{
			ExprBase: ast.NewExprBase(report.NewSpanOver(opTok.Span, operand.Span())),
			Op:       ast.Oper{Name: opTok.Value, Span: opTok.Span},
			Operand:  operand,
		}
	case TOK_INT, TOK_FLOAT, TOK_CHAR, TOK_TRUE, TOK_FALSE:
		return p.parseLiteral()
	}

	p.reject("pattern")
	return nil
}

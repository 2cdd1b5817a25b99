package syntax

import (
	"sprigc/ast"
	"sprigc/depm"
	"sprigc/report"
	"sprigc/types"
)

// program := {top_level_item} 'EOF' ;
func (p *Parser) parseProgram() *ast.Program {
	p.prescanTypeDefs()

	prog := &ast.Program{}
	for !p.has(TOK_EOF) {
		if item := p.parseTopLevelItem(); item != nil {
			prog.Items = append(prog.Items, item)
		}
	}

	if len(prog.Items) > 0 {
		prog.ASTBase = ast.NewASTBaseOver(prog.Items[0].Span(), prog.Items[len(prog.Items)-1].Span())
	}

	return prog
}

// prescanTypeDefs declares every struct and enum of the file before parsing
// begins so that types can be used before their declarations.
func (p *Parser) prescanTypeDefs() {
	for i := 0; i < len(p.input)-1; i++ {
		nameTok := p.input[i+1]
		if nameTok.Kind != TOK_IDENT {
			continue
		}

		var typ types.Type
		switch p.input[i].Kind {
		case TOK_STRUCT:
			typ = types.NewStructType(nameTok.Value)
		case TOK_ENUM:
			typ = &types.EnumType{Name: nameTok.Value}
		default:
			continue
		}

		p.typeDecls[i+1] = typ
		if _, ok := p.typeNames[nameTok.Value]; !ok {
			p.typeNames[nameTok.Value] = typ
		}

		p.declare(&depm.SymbolInfo{
			Name:    nameTok.Value,
			DefSpan: nameTok.Span,
			Kind:    depm.SymbolTypeDef,
			Type:    typ,
			Global:  true,
		})
	}
}

// top_level_item := func_decl | let_stmt | struct_decl | enum_decl ;
func (p *Parser) parseTopLevelItem() (item ast.Node) {
	defer p.recoverWith(p.save(), p.syncTopLevel)

	switch p.tok.Kind {
	case TOK_FUNC:
		return p.parseFuncDecl()
	case TOK_LET:
		return p.parseLetStmt()
	case TOK_STRUCT:
		return p.parseStructDecl()
	case TOK_ENUM:
		return p.parseEnumDecl()
	default:
		p.reject("`fn`, `let`, `struct`, or `enum`")
		return nil
	}
}

// -----------------------------------------------------------------------------

// func_decl := 'fn' 'IDENTIFIER' '(' [func_params] ')' [type_ext] block ;
func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	startSpan := p.want(TOK_FUNC).Span
	nameTok := p.want(TOK_IDENT)

	// The parameters have their own scope.
	p.pushScope()

	p.want(TOK_LPAREN)

	var params []*ast.Param
	if !p.has(TOK_RPAREN) {
		params = p.parseFuncParams()
	}

	p.want(TOK_RPAREN)

	var returnType types.Type
	if p.has(TOK_COLON) {
		returnType = p.parseTypeExt()
	}

	funcSym := &depm.SymbolInfo{
		Name:    nameTok.Value,
		DefSpan: nameTok.Span,
		Kind:    depm.SymbolFunction,
		Returns: returnType,
		Global:  true,
	}

	for _, param := range params {
		funcSym.Params = append(funcSym.Params, param.Type)
	}

	// The function is declared before its body is parsed so that it can
	// call itself.
	if global, ok := p.stack.Global(); ok && !global.Insert(funcSym) {
		p.errors = append(p.errors, report.Redeclared{Name: funcSym.Name, Span: funcSym.DefSpan})
	}

	body := p.parseBlock()

	p.popScope()

	return &ast.FuncDecl{
		ASTBase:    ast.NewASTBaseOver(startSpan, body.Span()),
		Name:       nameTok.Value,
		NameSpan:   nameTok.Span,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		Sym:        funcSym,
	}
}

// func_params := func_param {',' func_param} ;
// func_param := 'IDENTIFIER' type_ext ;
func (p *Parser) parseFuncParams() []*ast.Param {
	var params []*ast.Param

	for {
		nameTok := p.want(TOK_IDENT)
		typ := p.parseTypeExt()

		param := &ast.Param{
			Name: nameTok.Value,
			Type: typ,
			Span: report.NewSpanOver(nameTok.Span, p.lookbehind.Span),
			Sym: &depm.SymbolInfo{
				Name:    nameTok.Value,
				DefSpan: nameTok.Span,
				Kind:    depm.SymbolParameter,
				Type:    typ,
			},
		}

		p.declare(param.Sym)
		params = append(params, param)

		if p.has(TOK_COMMA) {
			p.next()
			continue
		}

		break
	}

	return params
}

// -----------------------------------------------------------------------------

// struct_decl := 'struct' 'IDENTIFIER' '{' [struct_field {',' struct_field} [',']] '}' ;
// struct_field := 'IDENTIFIER' type_ext ;
func (p *Parser) parseStructDecl() *ast.StructDecl {
	startSpan := p.want(TOK_STRUCT).Span

	nameNdx := p.current
	p.want(TOK_IDENT)

	st, ok := p.typeDecls[nameNdx].(*types.StructType)
	if !ok {
		panic(report.RaiseDev(p.lookbehind.Span, "struct declaration was not prescanned"))
	}

	p.want(TOK_LBRACKET)

	for !p.has(TOK_RBRACKET) {
		fieldTok := p.want(TOK_IDENT)
		fieldType := p.parseTypeExt()

		if !st.AddField(fieldTok.Value, fieldType) {
			p.recError(fieldTok.Span, "multiple fields named `%s`", fieldTok.Value)
		}

		if !p.has(TOK_COMMA) {
			break
		}

		p.next()
	}

	endSpan := p.want(TOK_RBRACKET).Span

	return &ast.StructDecl{
		ASTBase: ast.NewASTBaseOver(startSpan, endSpan),
		Type:    st,
	}
}

// enum_decl := 'enum' 'IDENTIFIER' '{' ident_list [','] '}' ;
func (p *Parser) parseEnumDecl() *ast.EnumDecl {
	startSpan := p.want(TOK_ENUM).Span

	nameNdx := p.current
	p.want(TOK_IDENT)

	et, ok := p.typeDecls[nameNdx].(*types.EnumType)
	if !ok {
		panic(report.RaiseDev(p.lookbehind.Span, "enum declaration was not prescanned"))
	}

	p.want(TOK_LBRACKET)

	for _, variantTok := range p.parseIdentList() {
		if _, ok := et.VariantIndex(variantTok.Value); ok {
			p.recError(variantTok.Span, "multiple variants named `%s`", variantTok.Value)
		} else {
			et.Variants = append(et.Variants, variantTok.Value)
		}
	}

	if p.has(TOK_COMMA) {
		p.next()
	}

	endSpan := p.want(TOK_RBRACKET).Span

	return &ast.EnumDecl{
		ASTBase: ast.NewASTBaseOver(startSpan, endSpan),
		Type:    et,
	}
}

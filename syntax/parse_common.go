package syntax

import (
	"fmt"

	"sprigc/types"
)

// type_ext := ':' type_label ;
func (p *Parser) parseTypeExt() types.Type {
	p.want(TOK_COLON)

	return p.parseTypeLabel()
}

// type_label := prim_type | 'IDENTIFIER' ;
// prim_type := 'Integer' | 'Float' | 'Boolean' | 'String' | 'Char' | 'Void' ;
func (p *Parser) parseTypeLabel() types.Type {
	switch p.tok.Kind {
	case TOK_TINTEGER, TOK_TFLOAT, TOK_TBOOLEAN, TOK_TSTRING, TOK_TCHAR, TOK_TVOID:
		pt := types.PrimTypeByName[p.tok.Value]
		p.next()
		return pt
	case TOK_IDENT:
		// Only declared struct and enum names are types.
		if typ, ok := p.typeNames[p.tok.Value]; ok {
			p.next()
			return typ
		}
	}

	p.reject("type")
	return nil
}

// ident_list := 'IDENTIFIER' {',' 'IDENTIFIER'} ;
func (p *Parser) parseIdentList() []Token {
	var idents []Token

	for {
		idents = append(idents, p.want(TOK_IDENT))

		if p.has(TOK_COMMA) && p.peek().Kind == TOK_IDENT {
			p.next()
			continue
		}

		break
	}

	return idents
}

// -----------------------------------------------------------------------------

// kindDisplay returns how a token kind is described to the user when it is the
// expected token in an error message.
func kindDisplay(kind int) string {
	switch kind {
	case TOK_IDENT:
		return "identifier"
	case TOK_INT:
		return "integer literal"
	case TOK_FLOAT:
		return "float literal"
	case TOK_STRING:
		return "string literal"
	case TOK_CHAR:
		return "char literal"
	case TOK_EOF:
		return "end of file"
	}

	for pattern, pkind := range keywordPatterns {
		if pkind == kind {
			return fmt.Sprintf("`%s`", pattern)
		}
	}

	for pattern, pkind := range symbolPatterns {
		if pkind == kind {
			return fmt.Sprintf("`%s`", pattern)
		}
	}

	// Division is lexed separately from the other symbols.
	if kind == TOK_DIV {
		return "`/`"
	}

	return tokenNames[kind]
}

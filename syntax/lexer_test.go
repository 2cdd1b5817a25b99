package syntax

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"sprigc/report"
)

// lexNames lexes src and returns the external names of the tokens produced.
func lexNames(t *testing.T, src string) []string {
	t.Helper()

	toks, errs := Lex(src)
	be.Equal(t, len(errs), 0)

	names := make([]string, len(toks))
	for i, tok := range toks {
		names[i] = tok.String()
	}

	return names
}

func TestLexTokenSequences(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"keywords", "let true false if else return fn", "LET TRUE FALSE IF ELSE RETURN FUNCTION EOF"},
		{"more keywords", "elif for while do break continue match struct enum", "ELIF FOR WHILE DO BREAK CONTINUE MATCH STRUCT ENUM EOF"},
		{"identifiers", "variable another_var", "IDENTIFIER(variable) IDENTIFIER(another_var) EOF"},
		{"int literals", "123 456", "INT(123) INT(456) EOF"},
		{"float literals", "1.5 0.25", "FLOAT(1.5) FLOAT(0.25) EOF"},
		{"int then dot", "5.x", "INT(5) DOT IDENTIFIER(x) EOF"},
		{"operators and special chars", "+ - = ; ( ) { } , :", "PLUS MINUS EQUAL SEMICOLON LPAREN RPAREN LBRACKET RBRACKET COMMA COLON EOF"},
		{"brackets and braces", "{ } [ ] ( )", "LBRACKET RBRACKET LBRACE RBRACE LPAREN RPAREN EOF"},
		{"type names", "Integer Float Boolean String Char Void", "TINTEGER TFLOAT TBOOLEAN TSTRING TCHAR TVOID EOF"},
		{"arithmetic", "+ - * / % ^", "PLUS MINUS MULTIPLY DIVIDE MOD EXPONENT EOF"},
		{"power", "2 ** 3", "INT(2) POWER INT(3) EOF"},
		{"logical", "&& || !", "LOGICALAND LOGICALOR LOGICALNOT EOF"},
		{"comparison", "< > <= >= == !=", "LESSTHAN GREATERTHAN LESSTHANEQUAL GREATERTHANEQUAL EQUALEQUAL NOTEQUAL EOF"},
		{"bitwise", "& | ~ << >>", "BITAND BITOR BITNOT SHL SHR EOF"},
		{"paths", ". ::", "DOT COLONCOLON EOF"},
		{"fat arrow", "_ => 1", "IDENTIFIER(_) FATARROW INT(1) EOF"},
		{"whitespace", "   let    x   = 5  ;  ", "LET IDENTIFIER(x) EQUAL INT(5) SEMICOLON EOF"},
		{"assignment", "let x: Integer = 5;", "LET IDENTIFIER(x) COLON TINTEGER EQUAL INT(5) SEMICOLON EOF"},
		{
			"complex expression",
			"let x = 5 + 10 / 5 % 3;",
			"LET IDENTIFIER(x) EQUAL INT(5) PLUS INT(10) DIVIDE INT(5) MOD INT(3) SEMICOLON EOF",
		},
		{
			"function declaration",
			"fn add(a: Integer, b: Integer): Integer { return a + b; }",
			"FUNCTION IDENTIFIER(add) LPAREN IDENTIFIER(a) COLON TINTEGER COMMA IDENTIFIER(b) COLON TINTEGER RPAREN " +
				"COLON TINTEGER LBRACKET RETURN IDENTIFIER(a) PLUS IDENTIFIER(b) SEMICOLON RBRACKET EOF",
		},
		{
			"logical operators and parentheses",
			"let result = (5 > 3) && (2 < 4);",
			"LET IDENTIFIER(result) EQUAL LPAREN INT(5) GREATERTHAN INT(3) RPAREN LOGICALAND " +
				"LPAREN INT(2) LESSTHAN INT(4) RPAREN SEMICOLON EOF",
		},
		{
			"nested calls",
			"let val = add(multiply(2, 3), 4);",
			"LET IDENTIFIER(val) EQUAL IDENTIFIER(add) LPAREN IDENTIFIER(multiply) LPAREN INT(2) COMMA INT(3) " +
				"RPAREN COMMA INT(4) RPAREN SEMICOLON EOF",
		},
		{"line comment", "let // a comment\nx", "LET IDENTIFIER(x) EOF"},
		{"block comment", "let /* a /* nested */ comment */ x", "LET IDENTIFIER(x) EOF"},
		{"division is not a comment", "a / b", "IDENTIFIER(a) DIVIDE IDENTIFIER(b) EOF"},
		{"char literal", "'c'", "CHAR(c) EOF"},
		{"unicode inside string", `"héllo"`, "STRING(héllo) EOF"},
		{"empty", "", "EOF"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			be.Equal(t, lexNames(t, test.src), strings.Fields(test.want))
		})
	}
}

func TestLexPayloadWithSpaces(t *testing.T) {
	be.Equal(t, lexNames(t, `"hello world" ' '`), []string{"STRING(hello world)", "CHAR( )", "EOF"})
}

func TestLexByteEscape(t *testing.T) {
	toks, errs := Lex(`"\xFF\x41" '\xE9'`)
	be.Equal(t, len(errs), 0)

	be.Equal(t, toks[0].Value, "\xffA")
	be.Equal(t, toks[1].Value, "\xe9")
}

func TestTokenStringEscapes(t *testing.T) {
	toks, errs := Lex(`"a\nb\t\\c\0" '\n' "\xFF\u{1}é"`)
	be.Equal(t, len(errs), 0)

	be.Equal(t, toks[0].String(), `STRING(a\nb\t\\c\0)`)
	be.Equal(t, toks[1].String(), `CHAR(\n)`)
	be.Equal(t, toks[2].String(), `STRING(\xFF\u{1}é)`)
}

func TestLexEscapeSequences(t *testing.T) {
	toks, errs := Lex(`"a\n\t\\\"\x41\u{e9}" '\'' '\0'`)
	be.Equal(t, len(errs), 0)
	be.Equal(t, len(toks), 4)

	be.Equal(t, toks[0].Kind, TOK_STRING)
	be.Equal(t, toks[0].Value, "a\n\t\\\"Aé")
	be.Equal(t, toks[1].Kind, TOK_CHAR)
	be.Equal(t, toks[1].Value, "'")
	be.Equal(t, toks[2].Value, "\x00")
}

func TestLexUnrecognizedToken(t *testing.T) {
	_, errs := Lex("let $invalid = 5;")

	be.Equal(t, errs, []report.CompileError{
		report.UnrecognizedToken{
			Token: "$",
			Span:  report.TextSpan{StartLine: 0, StartCol: 4, EndLine: 0, EndCol: 5},
		},
	})
}

func TestLexReportsEveryUnrecognizedCharacter(t *testing.T) {
	src := "let a = $ + @;\nlet é = 1;"
	_, errs := Lex(src)

	be.Equal(t, len(errs), 3)
	for i, want := range []string{"$", "@", "é"} {
		uerr, ok := errs[i].(report.UnrecognizedToken)
		be.True(t, ok)
		be.Equal(t, uerr.Token, want)
	}

	be.Equal(t, errs[2].Pos().StartLine, 1)
}

func TestLexMalformedLiterals(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"unclosed string", "\"abc\nlet", "unclosed string literal"},
		{"empty char", "''", "empty char literal"},
		{"multi char", "'ab'", "char literal cannot contain multiple characters"},
		{"bad escape", `"\q"`, "unknown escape sequence: `\\q`"},
		{"unclosed comment", "/* abc", "unclosed block comment"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			toks, errs := Lex(test.src)
			be.Equal(t, len(errs), 1)
			be.Equal(t, errs[0].Error(), test.msg)
			be.Equal(t, toks[len(toks)-1].Kind, TOK_EOF)
		})
	}
}

func TestLexSpans(t *testing.T) {
	toks, errs := Lex("let x\n  = 42;")
	be.Equal(t, len(errs), 0)

	be.Equal(t, toks[1].Span, report.TextSpan{StartLine: 0, StartCol: 4, EndLine: 0, EndCol: 5})
	be.Equal(t, toks[3].Span, report.TextSpan{StartLine: 1, StartCol: 4, EndLine: 1, EndCol: 6})
}

func TestLexTotality(t *testing.T) {
	inputs := []string{
		"fn main() { let x = 1; while x < 10 { x = x + 1; } }",
		"let a = 1 # 2 ` 3;",
		"???",
		"match x { 1 => 2, _ => 3 }",
	}

	for _, src := range inputs {
		toks, errs := Lex(src)

		unrecognized := 0
		for _, c := range src {
			if c == '#' || c == '`' || c == '?' {
				unrecognized++
			}
		}

		be.Equal(t, len(errs), unrecognized)
		be.Equal(t, toks[len(toks)-1].Kind, TOK_EOF)
	}
}

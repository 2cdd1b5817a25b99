package syntax

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"sprigc/report"
)

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The string value of the token.  For string and char literals, this is
	// the decoded contents of the literal without its quotes.  For all other
	// tokens, it is the lexeme as it appears in the source text.
	Value string

	// The text span over which the token exists.
	Span report.TextSpan
}

// String returns the external representation of the token: its kind name
// followed by its payload in parentheses if it carries one.  This is the form
// used when tokens are emitted by the compiler.  String and char payloads are
// re-escaped so that every token stays on one line.
func (tok Token) String() string {
	switch tok.Kind {
	case TOK_INT, TOK_FLOAT, TOK_IDENT:
		return fmt.Sprintf("%s(%s)", tokenNames[tok.Kind], tok.Value)
	case TOK_STRING, TOK_CHAR:
		return fmt.Sprintf("%s(%s)", tokenNames[tok.Kind], escapePayload(tok.Value))
	default:
		return tokenNames[tok.Kind]
	}
}

// escapePayload re-encodes a decoded literal with the lexer's escape syntax so
// that it contains no control characters or raw bytes.
func escapePayload(value string) string {
	var sb strings.Builder

	for i := 0; i < len(value); {
		c, size := utf8.DecodeRuneInString(value[i:])

		switch {
		case c == utf8.RuneError && size == 1:
			fmt.Fprintf(&sb, "\\x%02X", value[i])
		case c == '\\':
			sb.WriteString("\\\\")
		case c == '\n':
			sb.WriteString("\\n")
		case c == '\t':
			sb.WriteString("\\t")
		case c == '\r':
			sb.WriteString("\\r")
		case c == 0:
			sb.WriteString("\\0")
		case unicode.IsControl(c):
			fmt.Fprintf(&sb, "\\u{%x}", c)
		default:
			sb.WriteRune(c)
		}

		i += size
	}

	return sb.String()
}

// KindName returns the external name of a token kind.
func KindName(kind int) string {
	return tokenNames[kind]
}

// Enumeration of token kinds.
const (
	TOK_LET = iota
	TOK_TRUE
	TOK_FALSE
	TOK_IF
	TOK_ELIF
	TOK_ELSE
	TOK_FOR
	TOK_WHILE
	TOK_DO
	TOK_BREAK
	TOK_CONTINUE
	TOK_RETURN
	TOK_FUNC
	TOK_MATCH
	TOK_STRUCT
	TOK_ENUM

	TOK_TINTEGER
	TOK_TFLOAT
	TOK_TBOOLEAN
	TOK_TSTRING
	TOK_TCHAR
	TOK_TVOID

	TOK_INT
	TOK_FLOAT
	TOK_IDENT
	TOK_STRING
	TOK_CHAR

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV
	TOK_MOD
	TOK_CARET
	TOK_POWER

	TOK_ASSIGN
	TOK_EQ
	TOK_NEQ
	TOK_LT
	TOK_GT
	TOK_LTEQ
	TOK_GTEQ

	TOK_LAND
	TOK_LOR
	TOK_NOT

	TOK_BWAND
	TOK_BWOR
	TOK_BWXOR
	TOK_COMPL
	TOK_LSHIFT
	TOK_RSHIFT

	TOK_SEMI
	TOK_COMMA
	TOK_COLON
	TOK_COLONCOLON
	TOK_DOT
	TOK_FATARROW

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_LBRACKET
	TOK_RBRACKET

	TOK_EOF
)

// tokenNames maps each token kind to its external name.  Curly braces are
// named brackets and square brackets are named braces.
var tokenNames = [...]string{
	TOK_LET:      "LET",
	TOK_TRUE:     "TRUE",
	TOK_FALSE:    "FALSE",
	TOK_IF:       "IF",
	TOK_ELIF:     "ELIF",
	TOK_ELSE:     "ELSE",
	TOK_FOR:      "FOR",
	TOK_WHILE:    "WHILE",
	TOK_DO:       "DO",
	TOK_BREAK:    "BREAK",
	TOK_CONTINUE: "CONTINUE",
	TOK_RETURN:   "RETURN",
	TOK_FUNC:     "FUNCTION",
	TOK_MATCH:    "MATCH",
	TOK_STRUCT:   "STRUCT",
	TOK_ENUM:     "ENUM",

	TOK_TINTEGER: "TINTEGER",
	TOK_TFLOAT:   "TFLOAT",
	TOK_TBOOLEAN: "TBOOLEAN",
	TOK_TSTRING:  "TSTRING",
	TOK_TCHAR:    "TCHAR",
	TOK_TVOID:    "TVOID",

	TOK_INT:    "INT",
	TOK_FLOAT:  "FLOAT",
	TOK_IDENT:  "IDENTIFIER",
	TOK_STRING: "STRING",
	TOK_CHAR:   "CHAR",

	TOK_PLUS:  "PLUS",
	TOK_MINUS: "MINUS",
	TOK_STAR:  "MULTIPLY",
	TOK_DIV:   "DIVIDE",
	TOK_MOD:   "MOD",
	TOK_CARET: "EXPONENT",
	TOK_POWER: "POWER",

	TOK_ASSIGN: "EQUAL",
	TOK_EQ:     "EQUALEQUAL",
	TOK_NEQ:    "NOTEQUAL",
	TOK_LT:     "LESSTHAN",
	TOK_GT:     "GREATERTHAN",
	TOK_LTEQ:   "LESSTHANEQUAL",
	TOK_GTEQ:   "GREATERTHANEQUAL",

	TOK_LAND: "LOGICALAND",
	TOK_LOR:  "LOGICALOR",
	TOK_NOT:  "LOGICALNOT",

	TOK_BWAND:  "BITAND",
	TOK_BWOR:   "BITOR",
	TOK_BWXOR:  "BITXOR",
	TOK_COMPL:  "BITNOT",
	TOK_LSHIFT: "SHL",
	TOK_RSHIFT: "SHR",

	TOK_SEMI:       "SEMICOLON",
	TOK_COMMA:      "COMMA",
	TOK_COLON:      "COLON",
	TOK_COLONCOLON: "COLONCOLON",
	TOK_DOT:        "DOT",
	TOK_FATARROW:   "FATARROW",

	TOK_LPAREN:   "LPAREN",
	TOK_RPAREN:   "RPAREN",
	TOK_LBRACE:   "LBRACE",
	TOK_RBRACE:   "RBRACE",
	TOK_LBRACKET: "LBRACKET",
	TOK_RBRACKET: "RBRACKET",

	TOK_EOF: "EOF",
}

// tokenDisplay returns how a token is described to the user in error
// messages.
func tokenDisplay(tok Token) string {
	switch tok.Kind {
	case TOK_EOF:
		return "end of file"
	case TOK_STRING:
		return fmt.Sprintf("string literal %q", tok.Value)
	case TOK_CHAR:
		return fmt.Sprintf("char literal %q", tok.Value)
	default:
		return fmt.Sprintf("`%s`", tok.Value)
	}
}

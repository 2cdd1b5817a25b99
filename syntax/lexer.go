package syntax

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"sprigc/report"
)

// Lex tokenizes the given source text.  Lexing is total: every unrecognized
// character and malformed literal is reported and lexing continues past it.
// The returned token list always ends in an EOF token, but it should only be
// used if no errors were returned.
func Lex(src string) ([]Token, []report.CompileError) {
	l := NewLexer(bufio.NewReader(strings.NewReader(src)))

	var toks []Token
	var errs []report.CompileError
	for {
		tok, err := l.NextToken()
		if err != nil {
			if cerr, ok := err.(report.CompileError); ok {
				errs = append(errs, cerr)
				continue
			}

			// Reading from a string can not fail.
			errs = append(errs, report.RaiseDev(l.getSpan(), "lexer read failed: %s", err))
			return toks, errs
		}

		toks = append(toks, tok)
		if tok.Kind == TOK_EOF {
			break
		}
	}

	return toks, errs
}

// -----------------------------------------------------------------------------

// Lexer is responsible for tokenizing a source file.
type Lexer struct {
	file    *bufio.Reader
	tokBuff *strings.Builder

	line, col           int
	startLine, startCol int
}

// NewLexer creates a new lexer for the given source file.
func NewLexer(file *bufio.Reader) *Lexer {
	return &Lexer{
		file:    file,
		tokBuff: &strings.Builder{},
	}
}

// NextToken retrieves the next token from the input file. If the file has
// ended, this will be an EOF token.  If the token can not be lexed, a compile
// error is returned and the lexer is positioned after the offending text so
// that lexing can continue.
func (l *Lexer) NextToken() (Token, error) {
	for {
		c, err := l.peek()
		if err != nil {
			return Token{}, err
		} else if c == -1 {
			break
		}

		switch c {
		case '\n', '\t', ' ', '\r':
			l.skip()
		case '/':
			if tok, ok, err := l.lexCommentOrDiv(); ok || err != nil {
				return tok, err
			}
		case '\'':
			return l.lexCharLit()
		case '"':
			return l.lexStringLit()
		default:
			if isDecimalDigit(c) {
				return l.lexNumericLit()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	l.mark()
	return l.makeToken(TOK_EOF), nil
}

// -----------------------------------------------------------------------------

// symbolPatterns maps symbol strings (patterns) to their punctuation/operator
// token kind.  Every prefix of a multi-character pattern is itself a pattern
// so that the longest match can be found one character at a time.
var symbolPatterns = map[string]int{
	"+": TOK_PLUS,
	"-": TOK_MINUS,
	"*": TOK_STAR,
	// Division operator is handled with comment logic.
	"%":  TOK_MOD,
	"^":  TOK_CARET,
	"**": TOK_POWER,

	"&":  TOK_BWAND,
	"|":  TOK_BWOR,
	"~":  TOK_COMPL,
	"<<": TOK_LSHIFT,
	">>": TOK_RSHIFT,

	"==": TOK_EQ,
	"!=": TOK_NEQ,
	"<":  TOK_LT,
	"<=": TOK_LTEQ,
	">":  TOK_GT,
	">=": TOK_GTEQ,

	"&&": TOK_LAND,
	"||": TOK_LOR,
	"!":  TOK_NOT,

	"=":  TOK_ASSIGN,
	"=>": TOK_FATARROW,

	"(":  TOK_LPAREN,
	")":  TOK_RPAREN,
	"{":  TOK_LBRACKET,
	"}":  TOK_RBRACKET,
	"[":  TOK_LBRACE,
	"]":  TOK_RBRACE,
	",":  TOK_COMMA,
	".":  TOK_DOT,
	";":  TOK_SEMI,
	":":  TOK_COLON,
	"::": TOK_COLONCOLON,
}

// lexPunctOrOper lexes a punctuation or operator symbol.
func (l *Lexer) lexPunctOrOper() (Token, error) {
	l.mark()
	c, _ := l.eat()

	kind, ok := symbolPatterns[l.tokBuff.String()]
	if !ok {
		l.tokBuff.Reset()
		return Token{}, report.UnrecognizedToken{Token: string(c), Span: l.getSpan()}
	}

	for {
		c, err := l.peek()
		if err != nil {
			return Token{}, err
		} else if c == -1 {
			break
		}

		if _kind, ok := symbolPatterns[l.tokBuff.String()+string(c)]; ok {
			l.eat()
			kind = _kind
		} else {
			break
		}
	}

	return l.makeToken(kind), nil
}

// -----------------------------------------------------------------------------

// keywordPatterns maps keyword strings (patterns) to their keyword token kind.
var keywordPatterns = map[string]int{
	"let":      TOK_LET,
	"true":     TOK_TRUE,
	"false":    TOK_FALSE,
	"if":       TOK_IF,
	"elif":     TOK_ELIF,
	"else":     TOK_ELSE,
	"for":      TOK_FOR,
	"while":    TOK_WHILE,
	"do":       TOK_DO,
	"break":    TOK_BREAK,
	"continue": TOK_CONTINUE,
	"return":   TOK_RETURN,
	"fn":       TOK_FUNC,
	"match":    TOK_MATCH,
	"struct":   TOK_STRUCT,
	"enum":     TOK_ENUM,

	"Integer": TOK_TINTEGER,
	"Float":   TOK_TFLOAT,
	"Boolean": TOK_TBOOLEAN,
	"String":  TOK_TSTRING,
	"Char":    TOK_TCHAR,
	"Void":    TOK_TVOID,
}

// lexIdentOrKeyword lexes an identifier or a keyword.
func (l *Lexer) lexIdentOrKeyword() (Token, error) {
	l.mark()
	l.eat()

	for {
		c, err := l.peek()
		if err != nil {
			return Token{}, err
		} else if !isFirstIdentChar(c) && !isDecimalDigit(c) {
			break
		}

		l.eat()
	}

	kind := TOK_IDENT
	if _kind, ok := keywordPatterns[l.tokBuff.String()]; ok {
		kind = _kind
	}

	return l.makeToken(kind), nil
}

// -----------------------------------------------------------------------------

// lexNumericLit lexes an integer or floating-point literal.  A `.` is only
// part of the literal if it is followed by a digit: `5.x` is an integer
// followed by a dot.
func (l *Lexer) lexNumericLit() (Token, error) {
	l.mark()
	l.eat()

	isFloat := false
	for {
		c, err := l.peek()
		if err != nil {
			return Token{}, err
		}

		if isDecimalDigit(c) {
			l.eat()
		} else if c == '.' && !isFloat {
			next, err := l.peekSecond()
			if err != nil {
				return Token{}, err
			} else if !isDecimalDigit(next) {
				break
			}

			l.eat()
			isFloat = true
		} else {
			break
		}
	}

	if isFloat {
		return l.makeToken(TOK_FLOAT), nil
	}

	return l.makeToken(TOK_INT), nil
}

// -----------------------------------------------------------------------------

// lexStringLit lexes a string literal.  The value of the token is the decoded
// contents of the string.
func (l *Lexer) lexStringLit() (Token, error) {
	l.mark()
	l.skip()

	var escapeErr error
	for {
		c, err := l.peek()
		if err != nil {
			return Token{}, err
		}

		switch c {
		case -1, '\n':
			l.tokBuff.Reset()
			return Token{}, l.malformed("unclosed string literal")
		case '"':
			l.skip()

			if escapeErr != nil {
				l.tokBuff.Reset()
				return Token{}, escapeErr
			}

			return l.makeToken(TOK_STRING), nil
		case '\\':
			l.skip()

			// Keep scanning after a bad escape so the rest of the string is
			// not lexed as source text.
			if err := l.eatEscapeSequence(); err != nil {
				if _, ok := err.(report.CompileError); !ok {
					return Token{}, err
				} else if escapeErr == nil {
					escapeErr = err
				}
			}
		default:
			l.eat()
		}
	}
}

// lexCharLit lexes a char literal.  The value of the token is the decoded
// character.
func (l *Lexer) lexCharLit() (Token, error) {
	l.mark()
	l.skip()

	c, err := l.peek()
	if err != nil {
		return Token{}, err
	}

	switch c {
	case -1, '\n':
		return Token{}, l.malformed("unclosed char literal")
	case '\'':
		l.skip()
		return Token{}, l.malformed("empty char literal")
	case '\\':
		l.skip()
		if err := l.eatEscapeSequence(); err != nil {
			l.tokBuff.Reset()
			l.skipRestOfCharLit()
			return Token{}, err
		}
	default:
		l.eat()
	}

	c, err = l.peek()
	if err != nil {
		return Token{}, err
	}

	switch c {
	case '\'':
		l.skip()
		return l.makeToken(TOK_CHAR), nil
	case -1, '\n':
		l.tokBuff.Reset()
		return Token{}, l.malformed("unclosed char literal")
	default:
		l.tokBuff.Reset()
		l.skipRestOfCharLit()
		return Token{}, l.malformed("char literal cannot contain multiple characters")
	}
}

// skipRestOfCharLit skips to the closing quote of a malformed char literal if
// it occurs before the end of the line.
func (l *Lexer) skipRestOfCharLit() {
	for {
		c, err := l.peek()
		if err != nil || c == -1 || c == '\n' {
			return
		}

		l.skip()

		if c == '\'' {
			return
		}
	}
}

// eatEscapeSequence consumes an escape sequence and writes the character it
// denotes to the token buffer.  This assumes the leading `\` has already been
// skipped.
func (l *Lexer) eatEscapeSequence() error {
	c, err := l.skip()
	if err != nil {
		return err
	}

	switch c {
	case -1:
		return l.malformed("expected escape sequence not end of file")
	case 'n':
		l.tokBuff.WriteRune('\n')
	case 't':
		l.tokBuff.WriteRune('\t')
	case 'r':
		l.tokBuff.WriteRune('\r')
	case '0':
		l.tokBuff.WriteRune(0)
	case '\\', '\'', '"':
		l.tokBuff.WriteRune(c)
	case 'x':
		// `\xHH`: exactly two hexadecimal digits.
		var digits strings.Builder
		for i := 0; i < 2; i++ {
			c, err := l.peek()
			if err != nil {
				return err
			} else if !isHexDigit(c) {
				return l.malformed("`\\x` escape must be followed by two hexadecimal digits")
			}

			l.skip()
			digits.WriteRune(c)
		}

		// The escape names a raw byte, not a code point.
		n, _ := strconv.ParseUint(digits.String(), 16, 8)
		l.tokBuff.WriteByte(byte(n))
	case 'u':
		// `\u{H...}`: one to six hexadecimal digits.
		if c, err := l.peek(); err != nil {
			return err
		} else if c != '{' {
			return l.malformed("`\\u` escape must be of the form `\\u{...}`")
		}
		l.skip()

		var digits strings.Builder
		for {
			c, err := l.peek()
			if err != nil {
				return err
			} else if c == '}' {
				l.skip()
				break
			} else if !isHexDigit(c) || digits.Len() == 6 {
				return l.malformed("invalid unicode escape sequence")
			}

			l.skip()
			digits.WriteRune(c)
		}

		n, err := strconv.ParseUint(digits.String(), 16, 32)
		if err != nil || n > 0x10FFFF {
			return l.malformed("invalid unicode escape sequence")
		}

		l.tokBuff.WriteRune(rune(n))
	default:
		return l.malformed("unknown escape sequence: `\\%c`", c)
	}

	return nil
}

// -----------------------------------------------------------------------------

// lexCommentOrDiv lexes a comment or a division token.  The returned flag is
// true if a token was produced: comments produce no token.
func (l *Lexer) lexCommentOrDiv() (Token, bool, error) {
	l.mark()
	l.skip()

	c, err := l.peek()
	if err != nil {
		return Token{}, false, err
	}

	switch c {
	case '/':
		for ; err == nil && c != '\n' && c != -1; c, err = l.skip() {
		}
	case '*':
		l.skip()

		// Block comments nest.
		depth := 1
		for depth > 0 {
			c, err = l.skip()
			if err != nil {
				return Token{}, false, err
			}

			switch c {
			case -1:
				return Token{}, true, l.malformed("unclosed block comment")
			case '*':
				if next, err := l.peek(); err != nil {
					return Token{}, false, err
				} else if next == '/' {
					l.skip()
					depth--
				}
			case '/':
				if next, err := l.peek(); err != nil {
					return Token{}, false, err
				} else if next == '*' {
					l.skip()
					depth++
				}
			}
		}
	default:
		tok := l.makeToken(TOK_DIV)
		tok.Value = "/"
		return tok, true, nil
	}

	return Token{}, false, err
}

// -----------------------------------------------------------------------------

// mark sets the lexer's stored start line and column to its current position.
func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
}

// makeToken produces a new token of the given kind from the lexer's state and
// resets the lexer to begin building the next token.
func (l *Lexer) makeToken(kind int) Token {
	value := l.tokBuff.String()
	l.tokBuff.Reset()

	return Token{
		Kind:  kind,
		Value: value,
		Span:  l.getSpan(),
	}
}

// malformed creates a malformed token error spanning from the start of the
// current token to the lexer's current position.
func (l *Lexer) malformed(msg string, args ...interface{}) report.MalformedToken {
	return report.MalformedToken{
		Message: fmt.Sprintf(msg, args...),
		Span:    l.getSpan(),
	}
}

// getSpan calculates a text span based on the lexer's current state.
func (l *Lexer) getSpan() report.TextSpan {
	return report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.line,
		EndCol:    l.col,
	}
}

// -----------------------------------------------------------------------------

// eat moves the lexer forward one rune and writes the rune to the token buffer.
// If the lexer encounters an EOF, -1 is returned as the rune value.
func (l *Lexer) eat() (rune, error) {
	c, err := l.skip()
	if err == nil && c != -1 {
		l.tokBuff.WriteRune(c)
	}

	return c, err
}

// skip moves the lexer forward one rune but does not write the rune to the
// token buffer.  If the lexer encounters an EOF, -1 is returned as the rune
// value.
func (l *Lexer) skip() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	l.updatePos(c)

	return c, nil
}

// peek returns the next rune in the file without moving the lexer forward or
// writing the rune to the token buffer.  If the lexer encounters an EOF, -1 is
// returned as rune value.
func (l *Lexer) peek() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	if err = l.file.UnreadRune(); err != nil {
		return 0, err
	}

	return c, nil
}

// peekSecond returns the byte after the next rune as a rune.  It must only be
// called when the next rune is known to be a single byte.  Since it is only
// used to look for ASCII digits, multi-byte runes never need to be decoded.
func (l *Lexer) peekSecond() (rune, error) {
	buf, err := l.file.Peek(2)
	if len(buf) < 2 {
		if err == nil || err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	return rune(buf[1]), nil
}

// updatePos updates the lexer's position based on input character.
func (l *Lexer) updatePos(c rune) {
	switch c {
	case '\n':
		l.line++
		l.col = 0
	case '\t':
		l.col += 4
	default:
		l.col++
	}
}

// -----------------------------------------------------------------------------

// isDecimalDigit returns whether c is a decimal digit.
func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

// isHexDigit returns whether c is a hexadecimal digit.
func isHexDigit(c rune) bool {
	return isDecimalDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// isFirstIdentChar returns whether c could be the first rune of an identifier.
// Identifiers are restricted to ASCII.
func isFirstIdentChar(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

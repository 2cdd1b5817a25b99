package report

import "fmt"

// TextSpan represents a range or "span" of source text.  The line and column
// numbers are zero-indexed.  The starting position is the position of the
// first character in the span and the ending column is one past the last
// character in the span.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end TextSpan) TextSpan {
	return TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

func (span TextSpan) String() string {
	return fmt.Sprintf("%d:%d", span.StartLine+1, span.StartCol+1)
}

// -----------------------------------------------------------------------------

// CompileError is a user-facing error produced by one of the compilation
// phases.  All compile errors are plain values so that two errors with the
// same contents compare equal.
type CompileError interface {
	error

	// Pos returns the span of source text the error refers to.
	Pos() TextSpan

	// Kind returns the short, human-readable category of the error: it is used
	// as the banner of the displayed message.
	Kind() string
}

// UnrecognizedToken is produced by the lexer for every character that can not
// begin any token.
type UnrecognizedToken struct {
	Token string
	Span  TextSpan
}

func (e UnrecognizedToken) Error() string {
	return fmt.Sprintf("unrecognized token: `%s`", e.Token)
}

func (e UnrecognizedToken) Pos() TextSpan { return e.Span }
func (e UnrecognizedToken) Kind() string  { return "Token" }

// MalformedToken is produced by the lexer when a literal is started but can not
// be completed: eg. an unclosed string.
type MalformedToken struct {
	Message string
	Span    TextSpan
}

func (e MalformedToken) Error() string {
	return e.Message
}

func (e MalformedToken) Pos() TextSpan { return e.Span }
func (e MalformedToken) Kind() string  { return "Token" }

// UnexpectedToken is produced by the parser when the token it finds is not
// one it can accept at the current position.
type UnexpectedToken struct {
	Expected string
	Found    string
	Span     TextSpan
}

func (e UnexpectedToken) Error() string {
	return fmt.Sprintf("expected %s but found %s", e.Expected, e.Found)
}

func (e UnexpectedToken) Pos() TextSpan { return e.Span }
func (e UnexpectedToken) Kind() string  { return "Syntax" }

// UndefinedSymbol is produced when a name is used that does not resolve to
// any visible declaration.
type UndefinedSymbol struct {
	Name string
	Span TextSpan
}

func (e UndefinedSymbol) Error() string {
	return fmt.Sprintf("undefined symbol: `%s`", e.Name)
}

func (e UndefinedSymbol) Pos() TextSpan { return e.Span }
func (e UndefinedSymbol) Kind() string  { return "Name" }

// Redeclared is produced when a name is declared twice in the same scope.
type Redeclared struct {
	Name string
	Span TextSpan
}

func (e Redeclared) Error() string {
	return fmt.Sprintf("multiple symbols named `%s` declared in the same scope", e.Name)
}

func (e Redeclared) Pos() TextSpan { return e.Span }
func (e Redeclared) Kind() string  { return "Name" }

// TypeMismatch is produced when a value of one type is used where another
// type is required.
type TypeMismatch struct {
	Expected string
	Found    string
	Span     TextSpan
}

func (e TypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: expected `%s` but got `%s`", e.Expected, e.Found)
}

func (e TypeMismatch) Pos() TextSpan { return e.Span }
func (e TypeMismatch) Kind() string  { return "Type" }

// SemanticError is any other user error detected after parsing: eg. a `break`
// outside of a loop.
type SemanticError struct {
	Message string
	Span    TextSpan
}

func (e SemanticError) Error() string {
	return e.Message
}

func (e SemanticError) Pos() TextSpan { return e.Span }
func (e SemanticError) Kind() string  { return "Usage" }

// DevError is an internal invariant violation: it indicates a bug in an
// earlier phase of the compiler rather than erroneous user code.
type DevError struct {
	Message string
	Span    TextSpan
}

func (e DevError) Error() string {
	return "internal compiler error: " + e.Message
}

func (e DevError) Pos() TextSpan { return e.Span }
func (e DevError) Kind() string  { return "Internal" }

// Raise creates a new semantic error.
func Raise(span TextSpan, msg string, args ...interface{}) SemanticError {
	return SemanticError{Message: fmt.Sprintf(msg, args...), Span: span}
}

// RaiseDev creates a new internal error.
func RaiseDev(span TextSpan, msg string, args ...interface{}) DevError {
	return DevError{Message: fmt.Sprintf(msg, args...), Span: span}
}

// -----------------------------------------------------------------------------

// CatchErrors catches any compile error thrown by a `panic` during a stage of
// compilation and appends it to errs.  Any other panic value continues
// unwinding.
// NB: This function must ALWAYS be deferred.
func CatchErrors(errs *[]CompileError) {
	if x := recover(); x != nil {
		if cerr, ok := x.(CompileError); ok {
			*errs = append(*errs, cerr)
		} else {
			panic(x)
		}
	}
}

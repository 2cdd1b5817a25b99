package report

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

// capture directs the reporter's output into a buffer at the given log level
// for the duration of the test.
func capture(t *testing.T, logLevel int) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	SetOutput(buf)
	SetColor(false)
	InitReporter(logLevel)

	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetColor(true)
		InitReporter(LogLevelError)
	})

	return buf
}

// assertContains fails the test if out does not contain every string in want.
func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()

	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output does not contain %q:\n%s", w, out)
		}
	}
}

func TestCompileErrorDisplay(t *testing.T) {
	buf := capture(t, LogLevelError)

	src := "fn f() {\n    let $x = 5;\n}"
	ReportCompileError("test.sp", src, UnrecognizedToken{
		Token: "$",
		Span:  TextSpan{StartLine: 1, StartCol: 8, EndLine: 1, EndCol: 9},
	})

	out := buf.String()
	assertContains(t, out,
		"Token Error",
		"test.sp:2:9:",
		"unrecognized token: `$`",
		"let $x = 5;",
		"    ^",
	)

	be.True(t, !strings.Contains(out, "fn f()"))
	be.True(t, AnyErrors())
	be.Equal(t, ErrorCount(), 1)
}

func TestMultilineSpan(t *testing.T) {
	buf := capture(t, LogLevelError)

	src := "let x = (1 +\n    2);"
	ReportCompileError("span.sp", src, Raise(
		TextSpan{StartLine: 0, StartCol: 8, EndLine: 1, EndCol: 6},
		"bad expression",
	))

	assertContains(t, buf.String(), "Usage Error", "span.sp:1:9:", "bad expression", "let x = (1 +", "2);")
}

func TestLogLevels(t *testing.T) {
	t.Run("silent", func(t *testing.T) {
		buf := capture(t, LogLevelSilent)

		ReportFatal("no input file")
		ReportStdError("a.sp", errors.New("permission denied"))
		ReportWarning("old profile")

		be.Equal(t, buf.String(), "")
		be.Equal(t, ErrorCount(), 2)
	})

	t.Run("internal errors always display", func(t *testing.T) {
		buf := capture(t, LogLevelSilent)

		ReportICE("bad state: %d", 3)
		assertContains(t, buf.String(), "Internal Error", "bad state: 3")
	})

	t.Run("warnings need warn", func(t *testing.T) {
		buf := capture(t, LogLevelError)
		ReportWarning("ignored")
		be.Equal(t, buf.String(), "")

		buf = capture(t, LogLevelWarn)
		ReportWarning("profile written for version %s", "0.1.0")
		assertContains(t, buf.String(), "Warning", "profile written for version 0.1.0")
		be.True(t, !AnyErrors())
	})

	t.Run("verbose messages", func(t *testing.T) {
		buf := capture(t, LogLevelWarn)
		ReportCompileHeader("0.3.0", "x86_64")
		ReportPhaseDone("Lexing", 0)
		ReportCompilationFinished("")
		be.Equal(t, buf.String(), "")

		buf = capture(t, LogLevelVerbose)
		ReportCompileHeader("0.3.0", "x86_64")
		ReportPhaseDone("Lexing", 0)
		ReportCompilationFinished("out.ll")
		assertContains(t, buf.String(), "sprigc", "v0.3.0", "x86_64", "Lexing", "All done!", "out.ll")
	})
}

func TestInitResetsErrors(t *testing.T) {
	capture(t, LogLevelSilent)

	ReportFatal("first")
	be.True(t, AnyErrors())

	InitReporter(LogLevelSilent)
	be.True(t, !AnyErrors())
	be.Equal(t, ErrorCount(), 0)
}

func TestCatchErrors(t *testing.T) {
	var errs []CompileError

	func() {
		defer CatchErrors(&errs)
		panic(Raise(TextSpan{}, "`%s` outside of a loop", "break"))
	}()

	be.Equal(t, len(errs), 1)
	be.Equal(t, errs[0].Error(), "`break` outside of a loop")
	be.Equal(t, errs[0].Kind(), "Usage")

	defer func() {
		be.Equal(t, recover(), interface{}("not a compile error"))
	}()

	func() {
		defer CatchErrors(&errs)
		panic("not a compile error")
	}()
}

func TestSpanString(t *testing.T) {
	span := NewSpanOver(
		TextSpan{StartLine: 2, StartCol: 4, EndLine: 2, EndCol: 5},
		TextSpan{StartLine: 3, StartCol: 0, EndLine: 3, EndCol: 7},
	)

	be.Equal(t, span, TextSpan{StartLine: 2, StartCol: 4, EndLine: 3, EndCol: 7})
	be.Equal(t, span.String(), "3:5")
	be.Equal(t, RaiseDev(span, "no slot for `%s`", "x").Error(), "internal compiler error: no slot for `x`")
}

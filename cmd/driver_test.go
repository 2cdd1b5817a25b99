package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"sprigc/ast"
)

// newTestCompiler writes the given files into a temporary directory and
// creates a silent compiler for the first of them with any extra arguments.
// Compiler output is collected in the returned buffer.
func newTestCompiler(t *testing.T, files map[string]string, input string, extra ...string) (*Compiler, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		be.Err(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644), nil)
	}

	args := []string{"sprigc", filepath.Join(dir, input), "--loglevel", "silent"}
	for _, arg := range extra {
		if strings.HasSuffix(arg, ".toml") {
			arg = filepath.Join(dir, arg)
		}

		args = append(args, arg)
	}

	c, code := NewCompilerFromArgs(args)
	be.Equal(t, code, ExitSuccess)

	out := &bytes.Buffer{}
	c.out = out
	return c, out
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		input string
		extra []string
		want  int
	}{
		{"success", map[string]string{"ok.sp": "fn main() {}"}, "ok.sp", nil, ExitSuccess},
		{"missing input", nil, "missing.sp", nil, ExitIOError},
		{"bad extension", map[string]string{"notes.txt": "let x = 1;"}, "notes.txt", nil, ExitUserError},
		{"lex error", map[string]string{"lex.sp": "let $x = 5;"}, "lex.sp", nil, ExitUserError},
		{"syntax error", map[string]string{"parse.sp": "let x = 1"}, "parse.sp", nil, ExitUserError},
		{"semantic error", map[string]string{"walk.sp": "fn f(): Integer { return y; }"}, "walk.sp", nil, ExitUserError},
		{
			"missing profile",
			map[string]string{"ok.sp": "fn main() {}"},
			"ok.sp",
			[]string{"--config", "missing.toml"},
			ExitIOError,
		},
		{
			"malformed profile",
			map[string]string{"ok.sp": "fn main() {}", "bad.toml": "name = "},
			"ok.sp",
			[]string{"--config", "bad.toml"},
			ExitUserError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, _ := newTestCompiler(t, test.files, test.input, test.extra...)
			be.Equal(t, c.RunCompiler(), test.want)
		})
	}
}

func TestSuccessWritesIR(t *testing.T) {
	c, out := newTestCompiler(t, map[string]string{
		"add.sp": "fn add(a: Integer, b: Integer): Integer { return a + b; }",
	}, "add.sp")

	be.Equal(t, c.RunCompiler(), ExitSuccess)
	be.True(t, strings.Contains(out.String(), "define i64 @add("))
}

func TestInternalErrorExitCode(t *testing.T) {
	c, out := newTestCompiler(t, map[string]string{
		"calls.sp": "fn one(): Integer { return 1; }\nlet x = one();",
	}, "calls.sp")

	be.Equal(t, c.LoadInput(), ExitSuccess)
	be.True(t, c.Lex())
	be.True(t, c.Parse())
	be.True(t, c.Walk())

	// Point the call at a function the generator never declared.
	let := c.prog.Items[1].(*ast.Let)
	let.Init.(*ast.Call).Name = "ghost"

	be.Equal(t, c.CodeGen(), ExitInternalError)
	be.Equal(t, out.Len(), 0)
}

func TestBadArguments(t *testing.T) {
	c, code := NewCompilerFromArgs([]string{"sprigc", "--loglevel", "silent"})
	be.True(t, c == nil)
	be.Equal(t, code, ExitUserError)
}

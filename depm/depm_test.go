package depm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"sprigc/report"
	"sprigc/types"
)

func TestSymbolTableStack(t *testing.T) {
	global := NewSymbolTable()
	stack := NewSymbolTableStack(global)

	x := &SymbolInfo{Name: "x", Kind: SymbolVariable, Type: types.PrimTypeInteger, Global: true}
	be.Err(t, stack.InsertInTop(x), nil)

	stack.Push(NewSymbolTable())

	innerX := &SymbolInfo{Name: "x", Kind: SymbolVariable, Type: types.PrimTypeFloat}
	be.Err(t, stack.InsertInTop(innerX), nil)

	sym, ok := stack.Lookup("x")
	be.True(t, ok)
	be.Equal(t, sym, innerX)

	err := stack.InsertInTop(&SymbolInfo{Name: "x", DefSpan: report.TextSpan{EndCol: 1}})
	be.Equal(t, err, error(report.Redeclared{Name: "x", Span: report.TextSpan{EndCol: 1}}))

	top, ok := stack.Pop()
	be.True(t, ok)
	be.Equal(t, top.Names(), []string{"x"})

	sym, ok = stack.Lookup("x")
	be.True(t, ok)
	be.Equal(t, sym, x)

	g, ok := stack.Global()
	be.True(t, ok)
	be.Equal(t, g, global)

	_, ok = stack.Lookup("y")
	be.True(t, !ok)

	stack.Pop()
	be.True(t, stack.IsEmpty())
	be.Err(t, stack.InsertInTop(x), ErrEmptyStack)
}

func TestSymbolKinds(t *testing.T) {
	fn := &SymbolInfo{
		Name:    "f",
		Kind:    SymbolFunction,
		Params:  []types.Type{types.PrimTypeInteger},
		Returns: types.PrimTypeBoolean,
	}

	be.True(t, !fn.IsValue())
	be.Equal(t, fn.KindName(), "function")
	be.Equal(t, fn.Signature().Repr(), "fn(Integer): Boolean")

	param := &SymbolInfo{Name: "p", Kind: SymbolParameter}
	be.True(t, param.IsValue())
	be.Equal(t, param.KindName(), "parameter")
}

// -----------------------------------------------------------------------------

// writeFile writes a file into a temporary directory and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	be.Err(t, os.WriteFile(path, []byte(content), 0o644), nil)
	return path
}

func TestLoadSourceFile(t *testing.T) {
	path := writeFile(t, "main.sp", "fn main() {}\n")

	sf, err := LoadSourceFile(path)
	be.Err(t, err, nil)
	be.Equal(t, sf.Src, "fn main() {}\n")
	be.Equal(t, sf.Dir(), filepath.Dir(path))
	be.True(t, filepath.IsAbs(sf.AbsPath))

	_, err = LoadSourceFile(writeFile(t, "main.txt", ""))
	be.Err(t, err, "must have the extension `.sp`")

	_, err = LoadSourceFile(filepath.Join(t.TempDir(), "missing.sp"))
	be.Err(t, err, os.ErrNotExist)
}

func TestLoadProfile(t *testing.T) {
	path := writeFile(t, "sprig.toml", `
name = "demo"
compiler-version = "0.3.1"
target-triple = "x86_64-pc-linux-gnu"
emit = "ast"
log-level = "verbose"
color = false
`)

	profile, warnings, err := LoadProfile(path, DefaultProfile("main"))
	be.Err(t, err, nil)
	be.Equal(t, len(warnings), 0)
	be.Equal(t, *profile, BuildProfile{
		Name:         "demo",
		TargetTriple: "x86_64-pc-linux-gnu",
		Emit:         "ast",
		LogLevel:     report.LogLevelVerbose,
		Color:        false,
	})

	dir, ok := FindProfile(filepath.Dir(path))
	be.True(t, ok)
	be.Equal(t, dir, path)

	_, ok = FindProfile(t.TempDir())
	be.True(t, !ok)
}

func TestLoadProfileDefaults(t *testing.T) {
	profile, _, err := LoadProfile(writeFile(t, "sprig.toml", "data-layout = \"e-m:e\"\n"), DefaultProfile("main"))
	be.Err(t, err, nil)
	be.Equal(t, profile.Name, "main")
	be.Equal(t, profile.Emit, "ir")
	be.Equal(t, profile.DataLayout, "e-m:e")
	be.True(t, profile.Color)
}

func TestLoadProfileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		msg     string
	}{
		{"bad toml", "name = ", "error parsing profile"},
		{"bad emit", `emit = "obj"`, "invalid emit format"},
		{"bad log level", `log-level = "loud"`, "invalid log level"},
		{"bad version", `compiler-version = "three"`, "invalid compiler version"},
		{"major mismatch", `compiler-version = "1.0.0"`, "incompatible"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := LoadProfile(writeFile(t, "sprig.toml", test.content), DefaultProfile("main"))
			be.True(t, err != nil && strings.Contains(err.Error(), test.msg))
		})
	}
}

func TestLoadProfileMinorMismatch(t *testing.T) {
	_, warnings, err := LoadProfile(writeFile(t, "sprig.toml", `compiler-version = "0.2.0"`), DefaultProfile("main"))
	be.Err(t, err, nil)
	be.Equal(t, len(warnings), 1)
	be.True(t, strings.Contains(warnings[0], "0.2.0"))
}

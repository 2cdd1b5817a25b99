package casefile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/nalgeon/be"

	"sprigc/ast"
	"sprigc/casefile"
	"sprigc/codegen"
	"sprigc/depm"
	"sprigc/report"
	"sprigc/syntax"
	"sprigc/walk"
)

// compilation holds the output of every stage a test case reached along with
// the errors reported by each stage.
type compilation struct {
	tokens []syntax.Token
	prog   *ast.Program
	ir     string

	lexErrs, parseErrs, walkErrs []report.CompileError
}

// errorsThrough returns the errors reported by every stage up to and including
// the one an assertion of type at depends on.
func (c *compilation) errorsThrough(at casefile.AssertionType) []report.CompileError {
	errs := append([]report.CompileError{}, c.lexErrs...)
	if at == casefile.AssertTokens {
		return errs
	}

	errs = append(errs, c.parseErrs...)
	if at == casefile.AssertAST {
		return errs
	}

	return append(errs, c.walkErrs...)
}

// compile runs src through the compiler pipeline, stopping at the first stage
// which reports errors.
func compile(t *testing.T, src string) *compilation {
	t.Helper()

	c := &compilation{}

	c.tokens, c.lexErrs = syntax.Lex(src)
	if len(c.lexErrs) != 0 {
		return c
	}

	stack := depm.NewSymbolTableStack()
	c.prog, c.parseErrs = syntax.Parse(c.tokens, stack)
	if len(c.parseErrs) != 0 {
		return c
	}

	if c.walkErrs = walk.WalkProgram(c.prog, stack); len(c.walkErrs) != 0 {
		return c
	}

	mod, err := codegen.Generate(c.prog, stack, "case.sp")
	be.Err(t, err, nil)
	c.ir = mod.String()

	return c
}

func TestCorpus(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.md"))
	be.Err(t, err, nil)
	be.True(t, len(files) > 0)

	for _, file := range files {
		data, err := os.ReadFile(file)
		be.Err(t, err, nil)

		cases, err := casefile.ExtractTestCases(string(data))
		if err != nil {
			t.Fatalf("%s: %s", file, err)
		}

		for _, tc := range cases {
			tc := tc
			t.Run(strings.TrimSuffix(filepath.Base(file), ".md")+"/"+tc.Name, func(t *testing.T) {
				c := compile(t, tc.Input)

				for _, a := range tc.Assertions {
					checkAssertion(t, c, a)
				}
			})
		}
	}
}

func TestTokensOnlyNeedLexing(t *testing.T) {
	c := compile(t, "a ** b ^ c")

	be.Equal(t, len(c.lexErrs), 0)
	be.Equal(t, len(c.parseErrs), 1)
	be.Equal(t, len(c.errorsThrough(casefile.AssertTokens)), 0)
	be.Equal(t, len(c.errorsThrough(casefile.AssertAST)), 1)
	be.Equal(t, len(c.errorsThrough(casefile.AssertIR)), 1)
}

// checkAssertion checks a single assertion against a compilation.
func checkAssertion(t *testing.T, c *compilation, a casefile.Assertion) {
	t.Helper()

	if a.Type != casefile.AssertErrors {
		if errs := c.errorsThrough(a.Type); len(errs) != 0 {
			t.Fatalf("line %d: unexpected errors: %# v", a.Line, pretty.Formatter(errs))
		}
	}

	switch a.Type {
	case casefile.AssertTokens:
		var got []string
		for _, tok := range c.tokens {
			got = append(got, tok.String())
		}

		be.Equal(t, got, a.Lines())
	case casefile.AssertAST:
		be.Equal(t, strings.TrimRight(ast.Dump(c.prog), "\n"), a.Content)
	case casefile.AssertIR:
		for _, line := range a.Lines() {
			if !strings.Contains(c.ir, line) {
				t.Errorf("line %d: IR does not contain %q:\n%s", a.Line, line, c.ir)
			}
		}
	case casefile.AssertErrors:
		errs := c.errorsThrough(casefile.AssertErrors)
		want := a.Lines()
		if len(errs) != len(want) {
			t.Fatalf("line %d: expected %d errors but got %# v", a.Line, len(want), pretty.Formatter(errs))
		}

		for i, line := range want {
			if msg := errs[i].Error(); !strings.Contains(msg, line) {
				t.Errorf("line %d: error %d is %q, expected it to contain %q", a.Line, i, msg, line)
			}
		}
	}
}

// Package casefile extracts compiler test cases from Markdown documents.  A
// test case begins at a heading of the form `Case: <name>` and consists of
// one `sprig` fence holding the input program followed by one or more
// assertion fences.
package casefile

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"sprigc/util"
)

// InputFence is the language of the fence holding a test case's input.
const InputFence = "sprig"

// AssertionType is the kind of an assertion fence.
type AssertionType string

// Enumeration of assertion types.
const (
	// The exact token stream: one token per line.
	AssertTokens AssertionType = "tokens"

	// The exact AST dump.
	AssertAST AssertionType = "ast"

	// Lines which must each appear somewhere in the generated IR.
	AssertIR AssertionType = "ir"

	// One line per expected compile error: each line must appear in the
	// message of the error at the same position.
	AssertErrors AssertionType = "errors"
)

// Assertion is a single assertion about the compilation of a test case.
type Assertion struct {
	Type    AssertionType
	Content string

	// The line of the document the assertion fence begins on.
	Line int
}

// Lines returns the non-blank lines of the assertion with surrounding
// whitespace removed.
func (a Assertion) Lines() []string {
	var lines []string
	for _, line := range strings.Split(a.Content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

// TestCase is a single test case extracted from a Markdown document.
type TestCase struct {
	Name       string
	Input      string
	Assertions []Assertion
}

// ExtractTestCases parses a Markdown document and extracts all the test cases
// in it in document order.
func ExtractTestCases(markdown string) ([]TestCase, error) {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var (
		cases   []TestCase
		current *TestCase
	)

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, source)
			if !strings.HasPrefix(heading, "Case: ") {
				return ast.WalkContinue, nil
			}

			if current != nil {
				if err := validateTestCase(current); err != nil {
					return ast.WalkStop, err
				}

				cases = append(cases, *current)
			}

			current = &TestCase{Name: strings.TrimPrefix(heading, "Case: ")}
		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			line := lineNumber(n, source)

			if current == nil {
				// Plain code blocks are allowed as documentation.
				if language == "" {
					return ast.WalkContinue, nil
				}

				return ast.WalkStop, fmt.Errorf("line %d: `%s` fence outside of a test case", line, language)
			}

			content := fenceContent(n, source)

			switch {
			case language == InputFence:
				if current.Input != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple input fences in case `%s`", line, current.Name)
				}

				current.Input = content
			case isAssertionType(language):
				current.Assertions = append(current.Assertions, Assertion{
					Type:    AssertionType(language),
					Content: strings.TrimRight(content, "\n"),
					Line:    line,
				})
			default:
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language `%s` in case `%s`", line, language, current.Name)
			}
		}

		return ast.WalkContinue, nil
	})

	if err != nil {
		return nil, err
	}

	if current != nil {
		if err := validateTestCase(current); err != nil {
			return nil, err
		}

		cases = append(cases, *current)
	}

	return cases, nil
}

// -----------------------------------------------------------------------------

// nodeText returns the plain text of a node.
func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer

	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}

		return ast.WalkContinue, nil
	})

	return buf.String()
}

// fenceContent returns the raw content of a fenced code block.
func fenceContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer

	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}

	return buf.String()
}

// lineNumber returns the one-based line of the document a node begins on.
func lineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}

	start := node.Lines().At(0).Start
	return bytes.Count(source[:start], []byte{'\n'}) + 1
}

// assertionTypes lists every valid assertion type.
var assertionTypes = []AssertionType{AssertTokens, AssertAST, AssertIR, AssertErrors}

// isAssertionType returns whether language names an assertion fence.
func isAssertionType(language string) bool {
	return util.Contains(assertionTypes, AssertionType(language))
}

// validateTestCase checks that a test case has an input and at least one
// assertion.
func validateTestCase(tc *TestCase) error {
	if tc.Input == "" {
		return fmt.Errorf("case `%s` has no `%s` fence", tc.Name, InputFence)
	}

	if len(tc.Assertions) == 0 {
		return fmt.Errorf("case `%s` has no assertion fences", tc.Name)
	}

	return nil
}

package cmd

import (
	"time"

	"sprigc/depm"
	"sprigc/report"
	"sprigc/syntax"
	"sprigc/walk"
)

// Lex lexes the input source file.  It returns whether lexing succeeded.
func (c *Compiler) Lex() bool {
	start := time.Now()

	tokens, errs := syntax.Lex(c.src.Src)
	if c.reportErrors(errs) {
		return false
	}

	c.tokens = tokens
	report.ReportPhaseDone("Lexing", time.Since(start))
	return true
}

// Parse parses the lexed tokens into a program.  It returns whether parsing
// succeeded.
func (c *Compiler) Parse() bool {
	start := time.Now()

	c.stack = depm.NewSymbolTableStack()

	prog, errs := syntax.Parse(c.tokens, c.stack)
	if c.reportErrors(errs) {
		return false
	}

	c.prog = prog
	report.ReportPhaseDone("Parsing", time.Since(start))
	return true
}

// Walk performs semantic analysis of the parsed program.  It returns whether
// the program is semantically valid.
func (c *Compiler) Walk() bool {
	start := time.Now()

	if c.reportErrors(walk.WalkProgram(c.prog, c.stack)) {
		return false
	}

	report.ReportPhaseDone("Checking", time.Since(start))
	return true
}

// reportErrors reports all the given compile errors against the input file.
// It returns whether there were any errors.
func (c *Compiler) reportErrors(errs []report.CompileError) bool {
	for _, err := range errs {
		report.ReportCompileError(c.src.ReprPath, c.src.Src, err)
	}

	return len(errs) > 0
}

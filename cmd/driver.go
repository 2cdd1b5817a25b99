// Package cmd is the top-level "driver" package for the Sprig compiler: it
// contains all the functionality for parsing command-line arguments, loading
// the build profile, and running all the various phases of the compiler.
package cmd

import (
	"io"
	"os"

	"sprigc/ast"
	"sprigc/depm"
	"sprigc/report"
	"sprigc/syntax"
)

// Compiler represents the overall state and configuration of compilation.
type Compiler struct {
	// The path to the input source file as given on the command line.
	inputPath string

	// The path to write output to.  If this is empty, output is written to
	// out instead.
	outputPath string

	// The path to the build profile given on the command line, if any.
	configPath string

	// The command-line overrides of the build profile.  These are empty if
	// they were not given.
	emitOverride     string
	logLevelOverride string

	// The build profile of this compilation.
	profile *depm.BuildProfile

	// The writer output is written to when no output path is given.
	out io.Writer

	// The source file being compiled.
	src *depm.SourceFile

	// The results of each phase of compilation.
	tokens []syntax.Token
	prog   *ast.Program

	// The symbol table stack of the translation unit.  It is created when
	// parsing begins and dropped when compilation ends.
	stack *depm.SymbolTableStack
}

// Enumeration of compiler exit codes.
const (
	ExitSuccess       = iota // Compilation succeeded.
	ExitUserError            // Bad arguments, bad profile, or erroneous source code.
	ExitIOError              // The input could not be read or the output written.
	ExitInternalError        // A bug in the compiler.
)

// RunCompiler runs every phase of compilation for the configured input and
// returns the exit code of the compiler.
func (c *Compiler) RunCompiler() (exitCode int) {
	// Internal errors anywhere in the compiler are reported rather than
	// crashing the compiler.
	defer func() {
		if x := recover(); x != nil {
			report.ReportICE("%v", x)
			exitCode = ExitInternalError
		}
	}()

	defer func() {
		c.stack = nil
	}()

	if code := c.LoadInput(); code != ExitSuccess {
		return code
	}

	if !c.Lex() {
		return ExitUserError
	}

	if c.profile.Emit == "tokens" {
		return c.EmitTokens()
	}

	if !c.Parse() {
		return ExitUserError
	}

	if c.profile.Emit == "ast" {
		return c.EmitAST()
	}

	if !c.Walk() {
		return ExitUserError
	}

	return c.CodeGen()
}

// Main is the main entry point for the Sprig compiler.  It returns the exit
// code of the compiler.
func Main() int {
	c, code := NewCompilerFromArgs(os.Args)
	if c == nil {
		return code
	}

	return c.RunCompiler()
}

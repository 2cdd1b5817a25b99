package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sprigc/ast"
	"sprigc/codegen"
	"sprigc/report"
)

// CodeGen generates the LLVM module of the walked program and emits it.  It
// returns the exit code of the compiler.
func (c *Compiler) CodeGen() int {
	start := time.Now()

	mod, err := codegen.Generate(c.prog, c.stack, filepath.Base(c.src.AbsPath))
	if err != nil {
		report.ReportICE("%s", err)
		return ExitInternalError
	}

	mod.SetTarget(c.profile.TargetTriple, c.profile.DataLayout)
	report.ReportPhaseDone("Codegen", time.Since(start))

	return c.emit(mod.String())
}

// EmitTokens emits the lexed tokens: one per line.
func (c *Compiler) EmitTokens() int {
	var sb strings.Builder
	for _, tok := range c.tokens {
		sb.WriteString(tok.String())
		sb.WriteRune('\n')
	}

	return c.emit(sb.String())
}

// EmitAST emits the parsed program as an indented tree.
func (c *Compiler) EmitAST() int {
	return c.emit(ast.Dump(c.prog))
}

// emit writes the compiler's output to the output path or to the compiler's
// output writer if there is no output path.
func (c *Compiler) emit(content string) int {
	if c.outputPath == "" {
		if _, err := fmt.Fprint(c.out, content); err != nil {
			report.ReportStdError("<stdout>", err)
			return ExitIOError
		}
	} else if err := writeOutputFile(c.outputPath, content); err != nil {
		report.ReportStdError(c.outputPath, err)
		return ExitIOError
	}

	report.ReportCompilationFinished(c.outputPath)
	return ExitSuccess
}

// writeOutputFile writes content to the file at fpath, creating or truncating
// it as necessary.
func writeOutputFile(fpath, content string) error {
	file, err := os.OpenFile(fpath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(content)
	return err
}

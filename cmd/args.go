package cmd

import (
	"os"

	"github.com/ComedicChimera/olive"

	"sprigc/report"
)

// parseArgs parses the command-line arguments of the compiler.  The first
// argument is the name of the program.
func parseArgs(args []string) (*olive.ArgParseResult, error) {
	cli := olive.NewCLI("sprigc", "sprigc compiles a Sprig source file to LLVM IR", true)

	cli.AddPrimaryArg("input-file", "the Sprig source file to compile", true)
	cli.AddStringArg("output", "o", "the path to write output to (default: standard out)", false)
	cli.AddSelectorArg("emit", "e", "the kind of output to emit", false, []string{"tokens", "ast", "ir"})
	cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	cli.AddStringArg("config", "c", "the path to the build profile to use", false)

	return olive.ParseArgs(cli, args)
}

// NewCompilerFromArgs creates a new compiler instance based on the given
// command-line arguments.  If the arguments are invalid, the returned
// compiler is nil and the exit code is returned instead.
func NewCompilerFromArgs(args []string) (*Compiler, int) {
	// Arguments are validated before any profile is loaded so the default log
	// level is used to report argument errors.
	report.InitReporter(report.LogLevelError)

	result, err := parseArgs(args)
	if err != nil {
		report.ReportFatal("argument error: %s", err)
		return nil, ExitUserError
	}

	inputPath, ok := result.PrimaryArg()
	if !ok || inputPath == "" {
		report.ReportFatal("argument error: an input file must be specified")
		return nil, ExitUserError
	}

	c := &Compiler{
		inputPath: inputPath,
		out:       os.Stdout,
	}

	if value, ok := result.Arguments["output"]; ok {
		c.outputPath = value.(string)
	}

	if value, ok := result.Arguments["emit"]; ok {
		c.emitOverride = value.(string)
	}

	if value, ok := result.Arguments["loglevel"]; ok {
		c.logLevelOverride = value.(string)
		report.InitReporter(report.LogLevelNames[c.logLevelOverride])
	}

	if value, ok := result.Arguments["config"]; ok {
		c.configPath = value.(string)
	}

	return c, ExitSuccess
}

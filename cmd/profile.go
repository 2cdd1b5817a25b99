package cmd

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"sprigc/common"
	"sprigc/depm"
	"sprigc/report"
)

// LoadInput loads the input source file and the build profile.  It returns
// the exit code to fail with or ExitSuccess if compilation can proceed.
func (c *Compiler) LoadInput() int {
	src, err := depm.LoadSourceFile(c.inputPath)
	if err != nil {
		report.ReportStdError(c.inputPath, err)
		return exitCodeOf(err)
	}
	c.src = src

	if code := c.loadProfile(); code != ExitSuccess {
		return code
	}

	report.ReportCompileHeader(common.SprigVersion, c.targetName())
	return ExitSuccess
}

// loadProfile loads the build profile of the compilation: the one given on
// the command line or else the one next to the input file if it exists.
// Command-line options override the values in the profile.  It returns the
// exit code to fail with or ExitSuccess.
func (c *Compiler) loadProfile() int {
	name := strings.TrimSuffix(filepath.Base(c.src.AbsPath), common.SprigFileExt)
	profile := depm.DefaultProfile(name)

	profilePath := c.configPath
	if profilePath == "" {
		profilePath, _ = depm.FindProfile(c.src.Dir())
	}

	var warnings []string
	if profilePath != "" {
		loaded, loadWarnings, err := depm.LoadProfile(profilePath, profile)
		if err != nil {
			report.ReportStdError(profilePath, err)
			return exitCodeOf(err)
		}

		profile, warnings = loaded, loadWarnings
	}

	if c.emitOverride != "" {
		profile.Emit = c.emitOverride
	}

	if c.logLevelOverride != "" {
		profile.LogLevel = report.LogLevelNames[c.logLevelOverride]
	}

	c.profile = profile

	report.InitReporter(profile.LogLevel)
	report.SetColor(profile.Color)

	for _, warning := range warnings {
		report.ReportWarning("%s", warning)
	}

	return ExitSuccess
}

// exitCodeOf returns the exit code for an error loading an input: I/O
// failures are distinguished from invalid contents.
func exitCodeOf(err error) int {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return ExitIOError
	}

	return ExitUserError
}

// targetName returns the name of the compilation target for display.
func (c *Compiler) targetName() string {
	if c.profile.TargetTriple == "" {
		return "default"
	}

	return c.profile.TargetTriple
}

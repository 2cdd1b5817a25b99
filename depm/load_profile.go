package depm

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"golang.org/x/mod/semver"

	"sprigc/common"
	"sprigc/report"
)

// BuildProfile represents the configuration of a compilation.
type BuildProfile struct {
	// The name of the program being built.
	Name string

	// The LLVM target triple and data layout of the generated module.  These
	// are omitted from the module when empty.
	TargetTriple string
	DataLayout   string

	// The output to emit: one of `tokens`, `ast`, or `ir`.
	Emit string

	// The reporter log level.  This must be one of the enumerated log levels.
	LogLevel int

	// Whether diagnostics are displayed in color.
	Color bool
}

// EmitFormats lists the valid output formats.
var EmitFormats = map[string]struct{}{
	"tokens": {},
	"ast":    {},
	"ir":     {},
}

// DefaultProfile returns the profile used when no profile file is given.
func DefaultProfile(name string) *BuildProfile {
	return &BuildProfile{
		Name:     name,
		Emit:     "ir",
		LogLevel: report.LogLevelError,
		Color:    true,
	}
}

// tomlProfile represents a build profile as it is encoded in TOML.
type tomlProfile struct {
	Name            string `toml:"name"`
	CompilerVersion string `toml:"compiler-version"`
	TargetTriple    string `toml:"target-triple"`
	DataLayout      string `toml:"data-layout"`
	Emit            string `toml:"emit"`
	LogLevel        string `toml:"log-level"`
	Color           bool   `toml:"color"`
}

// FindProfile returns the path to the profile file in dir if it exists.
func FindProfile(dir string) (string, bool) {
	path := filepath.Join(dir, common.SprigProfileFileName)

	if finfo, err := os.Stat(path); err == nil && !finfo.IsDir() {
		return path, true
	}

	return "", false
}

// LoadProfile loads and validates the build profile at path.  Values missing
// from the profile are taken from base.  It returns the loaded profile along
// with any warnings about its contents.
func LoadProfile(path string, base *BuildProfile) (*BuildProfile, []string, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to read profile: %w", err)
	}

	tree, err := toml.LoadBytes(buff)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing profile: %w", err)
	}

	tp := &tomlProfile{}
	if err := tree.Unmarshal(tp); err != nil {
		return nil, nil, fmt.Errorf("error parsing profile: %w", err)
	}

	profile := *base

	var warnings []string
	if tp.CompilerVersion != "" {
		warning, err := checkCompilerVersion(tp.CompilerVersion)
		if err != nil {
			return nil, nil, err
		}

		if warning != "" {
			warnings = append(warnings, warning)
		}
	}

	if tp.Name != "" {
		profile.Name = tp.Name
	}

	if tp.TargetTriple != "" {
		profile.TargetTriple = tp.TargetTriple
	}

	if tp.DataLayout != "" {
		profile.DataLayout = tp.DataLayout
	}

	if tp.Emit != "" {
		if _, ok := EmitFormats[tp.Emit]; !ok {
			return nil, nil, fmt.Errorf("invalid emit format in profile: `%s`", tp.Emit)
		}

		profile.Emit = tp.Emit
	}

	if tp.LogLevel != "" {
		logLevel, ok := report.LogLevelNames[tp.LogLevel]
		if !ok {
			return nil, nil, fmt.Errorf("invalid log level in profile: `%s`", tp.LogLevel)
		}

		profile.LogLevel = logLevel
	}

	if tree.Has("color") {
		profile.Color = tp.Color
	}

	return &profile, warnings, nil
}

// checkCompilerVersion checks the compiler version a profile was written for
// against the current compiler version.  A different major version is an
// error; a different minor version only produces a warning.
func checkCompilerVersion(version string) (string, error) {
	profileVersion := "v" + version
	if !semver.IsValid(profileVersion) {
		return "", fmt.Errorf("invalid compiler version in profile: `%s`", version)
	}

	currentVersion := "v" + common.SprigVersion
	if semver.Major(profileVersion) != semver.Major(currentVersion) {
		return "", fmt.Errorf(
			"profile requires compiler version %s which is incompatible with the current version (%s)",
			version,
			common.SprigVersion,
		)
	}

	if semver.MajorMinor(profileVersion) != semver.MajorMinor(currentVersion) {
		return fmt.Sprintf(
			"profile was written for compiler version %s but the current version is %s",
			version,
			common.SprigVersion,
		), nil
	}

	return "", nil
}

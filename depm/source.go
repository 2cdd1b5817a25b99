package depm

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sprigc/common"
)

// SourceFile represents a Sprig source file: a single translation unit.
type SourceFile struct {
	// The absolute path to the source file.
	AbsPath string

	// The path to the source file as it should be displayed to the user:
	// relative to the working directory where possible.
	ReprPath string

	// The source text of the file.
	Src string
}

// LoadSourceFile reads the source file at path.  The file must have the Sprig
// file extension.
func LoadSourceFile(path string) (*SourceFile, error) {
	if filepath.Ext(path) != common.SprigFileExt {
		return nil, fmt.Errorf("source file `%s` must have the extension `%s`", path, common.SprigFileExt)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	buff, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}

	return &SourceFile{
		AbsPath:  absPath,
		ReprPath: reprPath(absPath),
		Src:      string(buff),
	}, nil
}

// reprPath returns the display path of an absolute path.
func reprPath(absPath string) string {
	wd, err := os.Getwd()
	if err != nil {
		return absPath
	}

	if rel, err := filepath.Rel(wd, absPath); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}

	return absPath
}

// Dir returns the directory containing the source file.
func (sf *SourceFile) Dir() string {
	return filepath.Dir(sf.AbsPath)
}

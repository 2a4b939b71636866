package emit

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	KindTest = "test"
	KindUtil = "util"
)

// File is one rendered class. Path is slash separated and relative to the
// output directory.
type File struct {
	Path    string
	Package string
	Class   string
	Kind    string
	Content []byte
}

// SourcePath returns the conventional location of a class below a source
// root, e.g. com/esun/automation/login/LoginTest.java.
func SourcePath(pkg, class string) string {
	if pkg == "" {
		return class + ".java"
	}
	return path.Join(append(strings.Split(pkg, "."), class+".java")...)
}

// Write writes files below dir, creating package directories as needed.
func Write(dir string, files []File) error {
	for _, f := range files {
		dest := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
		}
		if err := os.WriteFile(dest, f.Content, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}
	}
	return nil
}

// Package helpers holds test helpers shared across restviz packages.
package helpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FileAssertions checks the files an extractor run leaves in a target directory.
type FileAssertions struct {
	t         *testing.T
	targetDir string
}

// NewFileAssertions creates a helper rooted at targetDir.
func NewFileAssertions(t *testing.T, targetDir string) *FileAssertions {
	return &FileAssertions{t: t, targetDir: targetDir}
}

// AssertDataFile validates that name exists below the target directory and
// holds exactly want.
func (fa *FileAssertions) AssertDataFile(name, want string) *FileAssertions {
	fa.t.Helper()
	got, ok := fa.read(name)
	if ok && got != want {
		fa.t.Errorf("Data file %s = %q, want %q", name, got, want)
	}
	return fa
}

// AssertDataFileContains validates that name contains fragment.
func (fa *FileAssertions) AssertDataFileContains(name, fragment string) *FileAssertions {
	fa.t.Helper()
	got, ok := fa.read(name)
	if ok && !strings.Contains(got, fragment) {
		fa.t.Errorf("Expected data file %s to contain %q\nActual content:\n%s", name, fragment, got)
	}
	return fa
}

// AssertNoDataFile validates that name was not written.
func (fa *FileAssertions) AssertNoDataFile(name string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.targetDir, name)
	if _, err := os.Stat(fullPath); err == nil {
		fa.t.Errorf("Expected no data file at %s", fullPath)
	}
	return fa
}

func (fa *FileAssertions) read(name string) (string, bool) {
	fa.t.Helper()
	fullPath := filepath.Join(fa.targetDir, name)
	// #nosec G304 - test helper, paths are controlled by test code
	content, err := os.ReadFile(fullPath)
	if err != nil {
		fa.t.Errorf("Failed to read data file %s: %v", fullPath, err)
		return "", false
	}
	return string(content), true
}

package testutil

import (
	"testing"

	"github.com/arthur-debert/latex-templates/pkg/errors"
	"github.com/arthur-debert/latex-templates/pkg/filesystem"
	"github.com/spf13/afero"
)

// AssertFileContent checks that path holds exactly expected
func AssertFileContent(t *testing.T, fsys afero.Fs, path, expected string) {
	t.Helper()

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Errorf("Expected file %s to be readable: %v", path, err)
		return
	}
	if string(data) != expected {
		t.Errorf("Content mismatch for %s\nExpected: %q\nActual: %q", path, expected, string(data))
	}
}

// AssertNoFile checks that nothing exists at path
func AssertNoFile(t *testing.T, fsys afero.Fs, path string) {
	t.Helper()

	if filesystem.Exists(fsys, path) {
		t.Errorf("Expected %s not to exist", path)
	}
}

// AssertErrorCode checks that err carries code
func AssertErrorCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()

	if err == nil {
		t.Errorf("Expected error with code %s, got nil", code)
		return
	}
	if got := errors.GetErrorCode(err); got != code {
		t.Errorf("Expected error code %s, got %s (%v)", code, got, err)
	}
}

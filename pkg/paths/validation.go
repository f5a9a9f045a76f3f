package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/latex-templates/pkg/errors"
)

// ValidateTemplateName ensures a template name designates a single directory
// entry below a search path directory.
func ValidateTemplateName(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "template name cannot be empty")
	}

	if strings.ContainsAny(name, `/\`) {
		return errors.Newf(errors.ErrInvalidInput, "template name %q cannot contain path separators", name).
			WithDetail("name", name)
	}

	if name == "." || name == ".." {
		return errors.New(errors.ErrInvalidInput, "template name cannot be '.' or '..'")
	}

	if strings.Contains(name, "\x00") {
		return errors.New(errors.ErrInvalidInput, "template name contains null bytes")
	}

	return nil
}

// IsWithin reports whether the relative path rel stays inside its root once
// cleaned. Absolute paths are never within.
func IsWithin(rel string) bool {
	if rel == "" || filepath.IsAbs(rel) {
		return false
	}
	cleaned := filepath.Clean(rel)
	return cleaned != ".." && !strings.HasPrefix(cleaned, ".."+string(filepath.Separator))
}

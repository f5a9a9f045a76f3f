package filesystem

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// NumberedName returns path if nothing exists there, otherwise the first free
// name of the form path.1, path.2, ...
//
//	config.yaml -> config.yaml.1 -> config.yaml.2
func NumberedName(fsys afero.Fs, path string) string {
	candidate := path
	for i := 1; Exists(fsys, candidate); i++ {
		candidate = fmt.Sprintf("%s.%d", path, i)
	}
	return candidate
}

// ParenthesizedName returns path if nothing exists there, otherwise the first
// free name with " (N)" inserted before the extension.
//
//	report.pdf -> report (1).pdf -> report (2).pdf
func ParenthesizedName(fsys afero.Fs, path string) string {
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)

	candidate := path
	for i := 1; Exists(fsys, candidate); i++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
	}
	return candidate
}

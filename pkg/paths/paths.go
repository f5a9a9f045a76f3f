package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvTemplatePath lists base directories, separated by os.PathListSeparator
	EnvTemplatePath = "LATEX_TEMPLATE_PATH"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Directory conventions. These are part of the on-disk contract of template
// collections and are not configurable.
const (
	// AppDirName is the directory name used under XDG and share directories
	AppDirName = "latex-templates"

	// TemplatesDir is the subdirectory of a base holding project templates
	TemplatesDir = "templates"

	// LibrariesDir is the subdirectory of a base holding shared fragments
	LibrariesDir = "libraries"
)

// SearchPaths is the resolved, ordered lookup configuration.
// The first match in Templates wins; Libraries is consulted in order after a
// template's own root.
type SearchPaths struct {
	Templates []string
	Libraries []string
}

// Resolve builds the template and library search paths for the given base
// directories, appending the bundled location last. An empty bundledDir is
// skipped.
func Resolve(bases []string, bundledDir string) SearchPaths {
	sp := SearchPaths{
		Templates: make([]string, 0, len(bases)+1),
		Libraries: make([]string, 0, len(bases)+1),
	}

	for _, base := range bases {
		base = expandHome(base)
		sp.Templates = append(sp.Templates, filepath.Join(base, TemplatesDir))
		sp.Libraries = append(sp.Libraries, filepath.Join(base, LibrariesDir))
	}

	if bundledDir != "" {
		bundledDir = expandHome(bundledDir)
		sp.Templates = append(sp.Templates, filepath.Join(bundledDir, TemplatesDir))
		sp.Libraries = append(sp.Libraries, filepath.Join(bundledDir, LibrariesDir))
	}

	return sp
}

// SplitList splits a LATEX_TEMPLATE_PATH style value, dropping empty elements
func SplitList(value string) []string {
	var bases []string
	for _, part := range strings.Split(value, string(os.PathListSeparator)) {
		if part = strings.TrimSpace(part); part != "" {
			bases = append(bases, part)
		}
	}
	return bases
}

// DefaultBases returns the base directories used when no search path is
// configured: the current directory, the user data directory and the system
// data directories.
func DefaultBases() []string {
	bases := []string{"./"}
	bases = append(bases, filepath.Join(xdg.DataHome, AppDirName))
	for _, dir := range xdg.DataDirs {
		bases = append(bases, filepath.Join(dir, AppDirName))
	}
	return bases
}

// DefaultBundledDir returns the location of the collection shipped with the
// binary: <exe dir>/../share/latex-templates. Empty if the executable path
// cannot be determined.
func DefaultBundledDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), "..", "share", AppDirName)
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

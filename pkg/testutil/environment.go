package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/latex-templates/pkg/filesystem"
	"github.com/arthur-debert/latex-templates/pkg/paths"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment holds a filesystem with a user base, a system base and a
// bundled directory, plus a scratch directory for outputs.
type TestEnvironment struct {
	FS afero.Fs

	Root       string
	UserBase   string
	SystemBase string
	BundledDir string
	WorkDir    string

	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.FS = filesystem.NewMemory()
		env.Root = "/virtual"
	case EnvIsolated:
		env.FS = filesystem.NewOS()
		env.Root = t.TempDir()
	}

	env.UserBase = filepath.Join(env.Root, "user")
	env.SystemBase = filepath.Join(env.Root, "system")
	env.BundledDir = filepath.Join(env.Root, "bundled")
	env.WorkDir = filepath.Join(env.Root, "work")

	for _, dir := range []string{env.UserBase, env.SystemBase, env.BundledDir, env.WorkDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	t.Setenv(paths.EnvTemplatePath, "")

	return env
}

// SearchPaths returns the resolved search paths for the user base, the
// system base and the bundled directory, in that order.
func (env *TestEnvironment) SearchPaths() paths.SearchPaths {
	return paths.Resolve([]string{env.UserBase, env.SystemBase}, env.BundledDir)
}

// Template starts a template directory under the user base.
func (env *TestEnvironment) Template(name string) *TemplateBuilder {
	return env.TemplateIn(env.UserBase, name)
}

// TemplateIn starts a template directory under base.
func (env *TestEnvironment) TemplateIn(base, name string) *TemplateBuilder {
	return &TemplateBuilder{
		env:   env,
		dir:   filepath.Join(base, paths.TemplatesDir, name),
		files: map[string]string{},
	}
}

// WriteFile writes content at path, creating parent directories.
func (env *TestEnvironment) WriteFile(path, content string) string {
	env.t.Helper()

	if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := afero.WriteFile(env.FS, path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// Library writes a shared library file under base.
func (env *TestEnvironment) Library(base, rel, content string) string {
	return env.WriteFile(filepath.Join(base, paths.LibrariesDir, filepath.FromSlash(rel)), content)
}

// ReadFile returns the content at path, failing the test if unreadable.
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()

	data, err := afero.ReadFile(env.FS, path)
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

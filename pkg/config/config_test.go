package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/latex-templates/pkg/config"
	"github.com/arthur-debert/latex-templates/pkg/errors"
	"github.com/arthur-debert/latex-templates/pkg/paths"
	"github.com/arthur-debert/latex-templates/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// isolate points XDG and the search path variables away from the user's.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	// Registered before Setenv so it runs after the environment is restored.
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	xdg.Reload()
	t.Setenv(paths.EnvTemplatePath, "")
	for _, name := range []string{
		"LATEX_TEMPLATES_SEARCH_PATH",
		"LATEX_TEMPLATES_SEARCH_BUNDLED_DIR",
		"LATEX_TEMPLATES_COMPILER_COMMAND",
		"LATEX_TEMPLATES_COMPILER_ARGS",
		"LATEX_TEMPLATES_COMPILER_OUTPUT_EXT",
		"LATEX_TEMPLATES_PROJECT_CONFIG_FILE",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	return dir
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	s := config.Default()

	assert.Empty(t, s.Search.Path)
	assert.Empty(t, s.Search.BundledDir)
	assert.Equal(t, "latexmk", s.Compiler.Command)
	assert.Equal(t, []string{"-pdf"}, s.Compiler.Args)
	assert.Equal(t, ".pdf", s.Compiler.OutputExt)
	assert.Equal(t, "./config.yaml", s.Project.ConfigFile)
}

func TestLoad(t *testing.T) {
	t.Run("defaults when nothing is configured", func(t *testing.T) {
		isolate(t)

		s, err := config.Load(config.LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, config.Default(), s)
	})

	t.Run("default settings file is read when present", func(t *testing.T) {
		dir := isolate(t)
		writeFile(t, filepath.Join(dir, "config", "latex-templates", "settings.yaml"),
			"compiler:\n  command: lualatex\n  args: [-interaction=nonstopmode]\n")

		s, err := config.Load(config.LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, "lualatex", s.Compiler.Command)
		assert.Equal(t, []string{"-interaction=nonstopmode"}, s.Compiler.Args)
		assert.Equal(t, ".pdf", s.Compiler.OutputExt)
	})

	t.Run("explicit toml settings file", func(t *testing.T) {
		dir := isolate(t)
		path := writeFile(t, filepath.Join(dir, "settings.toml"),
			"[search]\npath = [\"/opt/tex\"]\nbundled_dir = \"/opt/bundled\"\n")

		s, err := config.Load(config.LoadOptions{File: path})
		require.NoError(t, err)
		assert.Equal(t, []string{"/opt/tex"}, s.Search.Path)
		assert.Equal(t, "/opt/bundled", s.Search.BundledDir)
	})

	t.Run("explicit settings file must exist", func(t *testing.T) {
		dir := isolate(t)

		_, err := config.Load(config.LoadOptions{File: filepath.Join(dir, "missing.yaml")})
		testutil.AssertErrorCode(t, err, errors.ErrConfigParse)
	})

	t.Run("malformed settings file", func(t *testing.T) {
		dir := isolate(t)
		path := writeFile(t, filepath.Join(dir, "bad.yaml"), "compiler: [\n")

		_, err := config.Load(config.LoadOptions{File: path})
		testutil.AssertErrorCode(t, err, errors.ErrConfigParse)
		assert.Equal(t, path, errors.GetErrorDetails(err)["path"])
	})

	t.Run("environment overrides file", func(t *testing.T) {
		dir := isolate(t)
		path := writeFile(t, filepath.Join(dir, "settings.yaml"), "compiler:\n  command: lualatex\n")
		t.Setenv("LATEX_TEMPLATES_COMPILER_COMMAND", "xelatex")
		t.Setenv("LATEX_TEMPLATES_COMPILER_OUTPUT_EXT", ".dvi")
		t.Setenv("LATEX_TEMPLATES_COMPILER_ARGS", "-dvi,-quiet")

		s, err := config.Load(config.LoadOptions{File: path})
		require.NoError(t, err)
		assert.Equal(t, "xelatex", s.Compiler.Command)
		assert.Equal(t, ".dvi", s.Compiler.OutputExt)
		assert.Equal(t, []string{"-dvi", "-quiet"}, s.Compiler.Args)
	})

	t.Run("LATEX_TEMPLATE_PATH is a path list", func(t *testing.T) {
		isolate(t)
		t.Setenv(paths.EnvTemplatePath, "/a:/b::/c")

		s, err := config.Load(config.LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"/a", "/b", "/c"}, s.Search.Path)
	})

	t.Run("overrides win", func(t *testing.T) {
		isolate(t)
		t.Setenv(paths.EnvTemplatePath, "/from/env")

		s, err := config.Load(config.LoadOptions{Overrides: map[string]interface{}{
			"search.path":         "/x:/y",
			"project.config_file": "paper.yaml",
		}})
		require.NoError(t, err)
		assert.Equal(t, []string{"/x", "/y"}, s.Search.Path)
		assert.Equal(t, "paper.yaml", s.Project.ConfigFile)
	})
}

func TestSearchPaths(t *testing.T) {
	s := config.Default()
	s.Search.Path = []string{"/base"}
	s.Search.BundledDir = "/bundled"

	sp := s.SearchPaths()
	assert.Equal(t, []string{"/base/templates", "/bundled/templates"}, sp.Templates)
	assert.Equal(t, []string{"/base/libraries", "/bundled/libraries"}, sp.Libraries)

	s.Search.Path = nil
	assert.Equal(t, len(paths.DefaultBases())+1, len(s.SearchPaths().Templates))
}

func TestNewCompiler(t *testing.T) {
	s := config.Default()
	s.Compiler.Command = "tectonic"
	s.Compiler.Args = nil

	c := s.NewCompiler()
	assert.Equal(t, "tectonic", c.Name)
	assert.Empty(t, c.Args)
	assert.Equal(t, ".pdf", c.OutputExt())
}

func TestGenerateSettingsContent(t *testing.T) {
	content := config.GenerateSettingsContent()

	assert.Contains(t, content, "\ncompiler:\n")
	assert.Contains(t, content, "#   command: latexmk")
	assert.NotContains(t, content, "\n  command: latexmk")

	// Every value is commented out, leaving only empty sections.
	var parsed map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(content), &parsed))
	for key, value := range parsed {
		assert.Nil(t, value, key)
	}
}

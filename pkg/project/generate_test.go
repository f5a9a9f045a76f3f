package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/latex-templates/pkg/errors"
	"github.com/arthur-debert/latex-templates/pkg/filesystem"
	"github.com/arthur-debert/latex-templates/pkg/project"
	"github.com/arthur-debert/latex-templates/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plainMain = "\\documentclass{article}\n% 100% plain {{latex}}\n\\begin{document}\\input{cover}\\end{document}\n"

func TestGenerateReportScenario(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.Template("report").
		WithDefaultConfig("title: Untitled\n").
		WithManifest("- main.tex\n- src: cover.tex.j2\n  tgt: cover.tex\n  main: true\n").
		WithFile("main.tex", plainMain).
		WithFile("cover.tex.j2", "\\title{\\EXPR{ .title }}\n\\hypersetup{pdftitle={\\EXPR{ .title }}}\n").
		Build()

	tmpl, err := project.NewFinder(project.WithFS(env.FS)).Find("report", env.SearchPaths())
	require.NoError(t, err)

	out := filepath.Join(env.WorkDir, "out")
	entries, err := tmpl.Generate(map[string]any{"title": "My Paper"}, out)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	testutil.AssertFileContent(t, env.FS, filepath.Join(out, "main.tex"), plainMain)
	testutil.AssertFileContent(t, env.FS, filepath.Join(out, "cover.tex"),
		"\\title{My Paper}\n\\hypersetup{pdftitle={My Paper}}\n")
	testutil.AssertNoFile(t, env.FS, filepath.Join(out, "cover.tex.j2"))

	files, err := countEntries(env, out)
	require.NoError(t, err)
	assert.Equal(t, 2, files)
}

func TestGenerate(t *testing.T) {
	t.Run("raw files are byte identical and nested targets created", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		binary := "\x89PNG\r\n\x1a\n\\EXPR{ not rendered }"
		env.Template("report").
			WithDefaultConfig("{}").
			WithManifest("- src: logo.png\n  tgt: figures/deep/logo.png\n  raw: true\n").
			WithFile("logo.png", binary).
			Build()
		tmpl, err := project.NewFinder(project.WithFS(env.FS)).Find("report", env.SearchPaths())
		require.NoError(t, err)

		out := filepath.Join(env.WorkDir, "new", "project")
		_, err = tmpl.Generate(nil, out)
		require.NoError(t, err)

		testutil.AssertFileContent(t, env.FS, filepath.Join(out, "figures", "deep", "logo.png"), binary)
	})

	t.Run("templated files resolve libraries", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.Library(env.SystemBase, "letterhead.tex", "\\newcommand{\\org}{\\EXPR{ .org }}\n")
		env.Template("letter").
			WithDefaultConfig("org: ACME\n").
			WithManifest("- letterhead.tex\n- letter.tex\n").
			WithFile("letter.tex", "\\input{letterhead}\n\\EXPR{ include \"letterhead.tex\" }").
			Build()
		tmpl, err := project.NewFinder(project.WithFS(env.FS)).Find("letter", env.SearchPaths())
		require.NoError(t, err)

		out := filepath.Join(env.WorkDir, "out")
		_, err = tmpl.Generate(map[string]any{}, out)
		require.NoError(t, err)

		testutil.AssertFileContent(t, env.FS, filepath.Join(out, "letterhead.tex"), "\\newcommand{\\org}{ACME}\n")
		testutil.AssertFileContent(t, env.FS, filepath.Join(out, "letter.tex"), "\\input{letterhead}\n\\newcommand{\\org}{ACME}\n")
	})

	t.Run("cwd is visible to templates", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.Template("report").
			WithDefaultConfig("{}").
			WithManifest("- paths.tex\n").
			WithFile("paths.tex", "\\graphicspath{{\\EXPR{ .cwd }/figures/}}\n").
			Build()
		tmpl, err := project.NewFinder(project.WithFS(env.FS)).Find("report", env.SearchPaths())
		require.NoError(t, err)

		cfg, err := project.WithWorkingDir(map[string]any{}, "/home/user/paper/config.yaml")
		require.NoError(t, err)

		out := filepath.Join(env.WorkDir, "out")
		_, err = tmpl.Generate(cfg, out)
		require.NoError(t, err)
		testutil.AssertFileContent(t, env.FS, filepath.Join(out, "paths.tex"), "\\graphicspath{{/home/user/paper/figures/}}\n")
	})

	t.Run("existing files are overwritten", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.Template("report").WithDefaultConfig("{}").WithManifest("- a.tex\n").WithFile("a.tex", "new\n").Build()
		tmpl, err := project.NewFinder(project.WithFS(env.FS)).Find("report", env.SearchPaths())
		require.NoError(t, err)

		out := filepath.Join(env.WorkDir, "out")
		env.WriteFile(filepath.Join(out, "a.tex"), "old content that is longer\n")

		_, err = tmpl.Generate(nil, out)
		require.NoError(t, err)
		testutil.AssertFileContent(t, env.FS, filepath.Join(out, "a.tex"), "new\n")
	})

	t.Run("read-only raw sources can be generated twice", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
		root := env.Template("report").
			WithDefaultConfig("{}").
			WithManifest("- src: logo.png\n  raw: true\n").
			WithFile("logo.png", "PNG").
			Build()
		require.NoError(t, os.Chmod(filepath.Join(root, "logo.png"), 0444))
		tmpl, err := project.NewFinder(project.WithFS(env.FS)).Find("report", env.SearchPaths())
		require.NoError(t, err)

		out := filepath.Join(env.WorkDir, "out")
		_, err = tmpl.Generate(nil, out)
		require.NoError(t, err)
		_, err = tmpl.Generate(nil, out)
		require.NoError(t, err)

		info, err := os.Stat(filepath.Join(out, "logo.png"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
		testutil.AssertFileContent(t, env.FS, filepath.Join(out, "logo.png"), "PNG")
	})

	t.Run("failure leaves earlier entries written", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.Template("report").
			WithDefaultConfig("{}").
			WithManifest("- a.tex\n- b.tex\n- broken.tex\n- d.tex\n").
			WithFile("a.tex", "a").
			WithFile("b.tex", "b").
			WithFile("broken.tex", "\\EXPR{ .undefined }").
			WithFile("d.tex", "d").
			Build()
		tmpl, err := project.NewFinder(project.WithFS(env.FS)).Find("report", env.SearchPaths())
		require.NoError(t, err)

		out := filepath.Join(env.WorkDir, "out")
		_, err = tmpl.Generate(nil, out)
		testutil.AssertErrorCode(t, err, errors.ErrTemplateRender)

		testutil.AssertFileContent(t, env.FS, filepath.Join(out, "a.tex"), "a")
		testutil.AssertFileContent(t, env.FS, filepath.Join(out, "b.tex"), "b")
		testutil.AssertNoFile(t, env.FS, filepath.Join(out, "broken.tex"))
		testutil.AssertNoFile(t, env.FS, filepath.Join(out, "d.tex"))
	})

	t.Run("missing raw source", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.Template("report").WithDefaultConfig("{}").WithManifest("- src: gone.png\n  raw: true\n").Build()
		tmpl, err := project.NewFinder(project.WithFS(env.FS)).Find("report", env.SearchPaths())
		require.NoError(t, err)

		_, err = tmpl.Generate(nil, filepath.Join(env.WorkDir, "out"))
		testutil.AssertErrorCode(t, err, errors.ErrGenerationIO)
	})

	t.Run("manifest failure writes nothing", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.Template("report").WithDefaultConfig("{}").WithManifest("- \\EXPR{ .nope }\n").Build()
		tmpl, err := project.NewFinder(project.WithFS(env.FS)).Find("report", env.SearchPaths())
		require.NoError(t, err)

		out := filepath.Join(env.WorkDir, "out")
		_, err = tmpl.Generate(nil, out)
		testutil.AssertErrorCode(t, err, errors.ErrManifestRender)
		assert.False(t, filesystem.Exists(env.FS, out))
	})
}

func TestReadme(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	minimalTemplate(env.Template("plain"))
	env.Template("documented").WithDefaultConfig("{}").WithManifest("[]").WithFile("README.md", "# Documented\n").Build()
	finder := project.NewFinder(project.WithFS(env.FS))

	plain, err := finder.Find("plain", env.SearchPaths())
	require.NoError(t, err)
	_, ok := plain.Readme()
	assert.False(t, ok)

	documented, err := finder.Find("documented", env.SearchPaths())
	require.NoError(t, err)
	readme, ok := documented.Readme()
	assert.True(t, ok)
	assert.Equal(t, "# Documented\n", readme)
}

func countEntries(env *testutil.TestEnvironment, dir string) (int, error) {
	d, err := env.FS.Open(dir)
	if err != nil {
		return 0, err
	}
	defer func() { _ = d.Close() }()
	names, err := d.Readdirnames(-1)
	return len(names), err
}

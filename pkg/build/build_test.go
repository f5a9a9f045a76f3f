package build_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/latex-templates/pkg/build"
	"github.com/arthur-debert/latex-templates/pkg/errors"
	"github.com/arthur-debert/latex-templates/pkg/project"
	"github.com/arthur-debert/latex-templates/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompiler "compiles" by prefixing the main file's content.
type fakeCompiler struct {
	calls        []string
	err          error
	skipArtifact bool
	// toRoot writes the artifact in dir instead of next to the main file.
	toRoot bool
}

func (f *fakeCompiler) Compile(_ context.Context, dir, mainFile string) error {
	f.calls = append(f.calls, mainFile)
	if f.err != nil {
		return f.err
	}
	if f.skipArtifact {
		return nil
	}
	src, err := os.ReadFile(filepath.Join(dir, mainFile))
	if err != nil {
		return err
	}
	artifact := build.ReplaceExt(mainFile, ".pdf")
	if f.toRoot {
		artifact = filepath.Base(artifact)
	}
	return os.WriteFile(filepath.Join(dir, artifact), append([]byte("PDF:"), src...), 0644)
}

func (f *fakeCompiler) OutputExt() string { return ".pdf" }

func setup(t *testing.T, manifest string) (*testutil.TestEnvironment, *project.Template) {
	t.Helper()

	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	t.Setenv("TMPDIR", filepath.Join(env.Root, "tmp"))
	require.NoError(t, os.MkdirAll(filepath.Join(env.Root, "tmp"), 0755))

	env.Template("report").
		WithDefaultConfig("title: Untitled\n").
		WithManifest(manifest).
		WithFile("cover.tex", "\\title{\\EXPR{ .title }}\n").
		WithFile("logo.png", "PNG").
		Build()

	tmpl, err := project.NewFinder(project.WithFS(env.FS)).Find("report", env.SearchPaths())
	require.NoError(t, err)
	return env, tmpl
}

const reportManifest = "- src: logo.png\n  raw: true\n- src: cover.tex\n  tgt: paper.tex\n  main: true\n"

func assertTempDirClean(t *testing.T, env *testutil.TestEnvironment) {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(env.Root, "tmp"))
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary build directory left behind")
}

func TestBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("copies artifact into output directory", func(t *testing.T) {
		env, tmpl := setup(t, reportManifest)
		fake := &fakeCompiler{}

		out, err := build.New(fake).Build(ctx, tmpl, map[string]any{"title": "My Paper"}, build.Options{OutputPath: env.WorkDir})
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(env.WorkDir, "paper.pdf"), out)
		assert.Equal(t, []string{"paper.tex"}, fake.calls)
		testutil.AssertFileContent(t, env.FS, out, "PDF:\\title{My Paper}\n")
		assertTempDirClean(t, env)
	})

	t.Run("existing artifact gets a numbered name", func(t *testing.T) {
		env, tmpl := setup(t, reportManifest)
		env.WriteFile(filepath.Join(env.WorkDir, "paper.pdf"), "old")
		builder := build.New(&fakeCompiler{})

		first, err := builder.Build(ctx, tmpl, nil, build.Options{OutputPath: env.WorkDir})
		require.NoError(t, err)
		second, err := builder.Build(ctx, tmpl, nil, build.Options{OutputPath: filepath.Join(env.WorkDir, "paper.pdf")})
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(env.WorkDir, "paper (1).pdf"), first)
		assert.Equal(t, filepath.Join(env.WorkDir, "paper (2).pdf"), second)
		testutil.AssertFileContent(t, env.FS, filepath.Join(env.WorkDir, "paper.pdf"), "old")
	})

	t.Run("overwrite replaces the destination", func(t *testing.T) {
		env, tmpl := setup(t, reportManifest)
		dest := env.WriteFile(filepath.Join(env.WorkDir, "final.pdf"), "old")

		out, err := build.New(&fakeCompiler{}).Build(ctx, tmpl, nil, build.Options{OutputPath: dest, Overwrite: true})
		require.NoError(t, err)

		assert.Equal(t, dest, out)
		testutil.AssertFileContent(t, env.FS, dest, "PDF:\\title{Untitled}\n")
	})

	t.Run("build directory is kept", func(t *testing.T) {
		env, tmpl := setup(t, reportManifest)
		buildDir := filepath.Join(env.WorkDir, "build")

		out, err := build.New(&fakeCompiler{}).Build(ctx, tmpl, nil, build.Options{BuildDir: buildDir})
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(buildDir, "paper.pdf"), out)
		testutil.AssertFileContent(t, env.FS, filepath.Join(buildDir, "logo.png"), "PNG")
		testutil.AssertFileContent(t, env.FS, filepath.Join(buildDir, "paper.tex"), "\\title{Untitled}\n")
	})

	t.Run("requires an output path or a build directory", func(t *testing.T) {
		_, tmpl := setup(t, reportManifest)
		fake := &fakeCompiler{}

		_, err := build.New(fake).Build(ctx, tmpl, nil, build.Options{})
		testutil.AssertErrorCode(t, err, errors.ErrInvalidInput)
		assert.Empty(t, fake.calls)
	})

	t.Run("in-memory templates are refused", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.Template("report").WithFiles(testutil.ReportTemplate).Build()
		tmpl, err := project.NewFinder(project.WithFS(env.FS)).Find("report", env.SearchPaths())
		require.NoError(t, err)
		fake := &fakeCompiler{}

		_, err = build.New(fake).Build(ctx, tmpl, nil, build.Options{OutputPath: env.WorkDir})
		testutil.AssertErrorCode(t, err, errors.ErrInvalidInput)
		assert.Equal(t, "report", errors.GetErrorDetails(err)["template"])
		assert.Empty(t, fake.calls)
	})

	t.Run("no main file fails before compiling", func(t *testing.T) {
		env, tmpl := setup(t, "- cover.tex\n")
		fake := &fakeCompiler{}

		_, err := build.New(fake).Build(ctx, tmpl, nil, build.Options{OutputPath: env.WorkDir})
		testutil.AssertErrorCode(t, err, errors.ErrNoMainFile)
		assert.Equal(t, "report", errors.GetErrorDetails(err)["template"])
		assert.Empty(t, fake.calls)
		assertTempDirClean(t, env)
	})

	t.Run("compiler failure propagates and cleans up", func(t *testing.T) {
		env, tmpl := setup(t, reportManifest)
		failure := errors.New(errors.ErrCompilerFailure, "latexmk failed").WithDetail("output", "! LaTeX Error")

		_, err := build.New(&fakeCompiler{err: failure}).Build(ctx, tmpl, nil, build.Options{OutputPath: env.WorkDir})
		testutil.AssertErrorCode(t, err, errors.ErrCompilerFailure)
		assert.Equal(t, "! LaTeX Error", errors.GetErrorDetails(err)["output"])
		testutil.AssertNoFile(t, env.FS, filepath.Join(env.WorkDir, "paper.pdf"))
		assertTempDirClean(t, env)
	})

	t.Run("main file in a subdirectory", func(t *testing.T) {
		manifest := "- src: cover.tex\n  tgt: src/paper.tex\n  main: true\n"

		for _, toRoot := range []bool{false, true} {
			env, tmpl := setup(t, manifest)
			fake := &fakeCompiler{toRoot: toRoot}

			out, err := build.New(fake).Build(ctx, tmpl, nil, build.Options{OutputPath: env.WorkDir})
			require.NoError(t, err)

			assert.Equal(t, []string{"src/paper.tex"}, fake.calls)
			assert.Equal(t, filepath.Join(env.WorkDir, "paper.pdf"), out)
			testutil.AssertFileContent(t, env.FS, out, "PDF:\\title{Untitled}\n")
		}
	})

	t.Run("missing artifact is a compiler failure", func(t *testing.T) {
		env, tmpl := setup(t, reportManifest)

		_, err := build.New(&fakeCompiler{skipArtifact: true}).Build(ctx, tmpl, nil, build.Options{OutputPath: env.WorkDir})
		testutil.AssertErrorCode(t, err, errors.ErrCompilerFailure)
	})

	t.Run("generation failure cleans up", func(t *testing.T) {
		env, tmpl := setup(t, "- src: missing.png\n  raw: true\n  main: true\n")
		fake := &fakeCompiler{}

		_, err := build.New(fake).Build(ctx, tmpl, nil, build.Options{OutputPath: env.WorkDir})
		testutil.AssertErrorCode(t, err, errors.ErrGenerationIO)
		assert.Empty(t, fake.calls)
		assertTempDirClean(t, env)
	})
}

func TestReplaceExt(t *testing.T) {
	assert.Equal(t, "paper.pdf", build.ReplaceExt("paper.tex", ".pdf"))
	assert.Equal(t, filepath.Join("sub", "main.pdf"), build.ReplaceExt(filepath.Join("sub", "main.tex"), ".pdf"))
	assert.Equal(t, "README.pdf", build.ReplaceExt("README", ".pdf"))
}

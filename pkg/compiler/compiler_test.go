package compiler_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/latex-templates/pkg/compiler"
	"github.com/arthur-debert/latex-templates/pkg/errors"
	"github.com/arthur-debert/latex-templates/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	c := compiler.New("", nil, "")

	assert.Equal(t, "latexmk", c.Name)
	assert.Equal(t, []string{"-pdf"}, c.Args)
	assert.Equal(t, ".pdf", c.OutputExt())
}

func TestCompile(t *testing.T) {
	t.Run("runs in the build directory with the main file last", func(t *testing.T) {
		dir := t.TempDir()
		c := compiler.New("sh", []string{"-c", `touch "${1%.tex}.pdf"`, "sh"}, ".pdf")

		require.NoError(t, c.Compile(context.Background(), dir, "paper.tex"))
		assert.FileExists(t, filepath.Join(dir, "paper.pdf"))
	})

	t.Run("non-zero exit keeps the output", func(t *testing.T) {
		dir := t.TempDir()
		c := compiler.New("sh", []string{"-c", `echo "! Undefined control sequence."; echo warn >&2; exit 12`, "sh"}, ".pdf")

		err := c.Compile(context.Background(), dir, "paper.tex")
		testutil.AssertErrorCode(t, err, errors.ErrCompilerFailure)

		details := errors.GetErrorDetails(err)
		assert.Contains(t, details["output"], "! Undefined control sequence.")
		assert.Contains(t, details["output"], "warn")
		assert.Contains(t, details["command"], "paper.tex")
	})

	t.Run("missing program", func(t *testing.T) {
		c := compiler.New("latex-templates-no-such-compiler", nil, ".pdf")

		err := c.Compile(context.Background(), t.TempDir(), "paper.tex")
		testutil.AssertErrorCode(t, err, errors.ErrCompilerFailure)
	})

	t.Run("streams output when asked", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		c := compiler.New("sh", []string{"-c", "echo out; echo err >&2", "sh"}, ".pdf",
			compiler.WithOutput(&stdout, &stderr))

		require.NoError(t, c.Compile(context.Background(), t.TempDir(), "paper.tex"))
		assert.Equal(t, "out\n", stdout.String())
		assert.Equal(t, "err\n", stderr.String())
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		c := compiler.New("sh", []string{"-c", "sleep 5", "sh"}, ".pdf")

		err := c.Compile(ctx, t.TempDir(), "paper.tex")
		testutil.AssertErrorCode(t, err, errors.ErrCompilerFailure)
	})

	t.Run("missing directory", func(t *testing.T) {
		c := compiler.New("true", nil, ".pdf")

		err := c.Compile(context.Background(), filepath.Join(os.TempDir(), "latex-templates-missing-dir"), "x.tex")
		testutil.AssertErrorCode(t, err, errors.ErrCompilerFailure)
	})
}

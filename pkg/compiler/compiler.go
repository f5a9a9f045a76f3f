// Package compiler runs the external document compiler on a generated
// project.
package compiler

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/arthur-debert/latex-templates/pkg/errors"
	"github.com/arthur-debert/latex-templates/pkg/logging"
	"github.com/rs/zerolog"
)

// Default compiler invocation
const (
	DefaultCommand   = "latexmk"
	DefaultOutputExt = ".pdf"
)

// DefaultArgs are passed before the main file.
var DefaultArgs = []string{"-pdf"}

// Compiler compiles mainFile inside dir.
type Compiler interface {
	Compile(ctx context.Context, dir, mainFile string) error
	// OutputExt is the extension of the produced artifact, dot included.
	OutputExt() string
}

// Option configures a Command.
type Option func(*Command)

// WithOutput streams the compiler's stdout and stderr to the given writers
// in addition to capturing them.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(c *Command) {
		c.stdout = stdout
		c.stderr = stderr
	}
}

// Command is a Compiler running an external program as
// "name args... mainFile" in the build directory.
type Command struct {
	Name string
	Args []string
	Ext  string

	stdout io.Writer
	stderr io.Writer
	logger zerolog.Logger
}

// New creates a Command. Empty values fall back to latexmk -pdf.
func New(name string, args []string, ext string, opts ...Option) *Command {
	if name == "" {
		name, args = DefaultCommand, DefaultArgs
	}
	if ext == "" {
		ext = DefaultOutputExt
	}
	c := &Command{
		Name:   name,
		Args:   append([]string(nil), args...),
		Ext:    ext,
		logger: logging.GetLogger("compiler"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OutputExt implements Compiler.
func (c *Command) OutputExt() string {
	return c.Ext
}

// Compile implements Compiler. A non-zero exit is a COMPILER_FAILURE
// carrying the command line and its combined output.
func (c *Command) Compile(ctx context.Context, dir, mainFile string) error {
	args := append(append([]string(nil), c.Args...), mainFile)
	logging.LogCommand(c.logger, c.Name, args, dir)

	captured := &lockedBuffer{}
	cmd := exec.CommandContext(ctx, c.Name, args...)
	cmd.Dir = dir
	cmd.Stdout = captured
	cmd.Stderr = captured
	if c.stdout != nil {
		cmd.Stdout = io.MultiWriter(captured, c.stdout)
	}
	if c.stderr != nil {
		cmd.Stderr = io.MultiWriter(captured, c.stderr)
	}

	if err := cmd.Run(); err != nil {
		commandLine := strings.Join(append([]string{c.Name}, args...), " ")
		c.logger.Error().
			Err(err).
			Str("command", commandLine).
			Str("dir", dir).
			Msg("Compiler failed")
		return errors.Wrapf(err, errors.ErrCompilerFailure, "compiler %q failed", c.Name).
			WithDetail("command", commandLine).
			WithDetail("output", captured.String()).
			WithDetail("dir", dir)
	}

	c.logger.Info().Str("main", mainFile).Msg("Compilation finished")
	return nil
}

// lockedBuffer collects stdout and stderr, which exec copies from separate
// goroutines once either is wrapped.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

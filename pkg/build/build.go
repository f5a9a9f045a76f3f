package build

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/latex-templates/pkg/compiler"
	"github.com/arthur-debert/latex-templates/pkg/errors"
	"github.com/arthur-debert/latex-templates/pkg/filesystem"
	"github.com/arthur-debert/latex-templates/pkg/logging"
	"github.com/arthur-debert/latex-templates/pkg/project"
	"github.com/otiai10/copy"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Options controls where a build happens and where its artifact goes.
type Options struct {
	// OutputPath is the artifact destination. An existing directory means
	// "inside it, named after the main file".
	OutputPath string
	// BuildDir is generated into and kept. Empty means a temporary
	// directory removed after the build.
	BuildDir string
	// Overwrite replaces an existing destination instead of picking
	// "name (N).ext".
	Overwrite bool
}

// Builder generates and compiles templates. The compiler is an external
// process, so templates, build directories and artifacts all live on the OS
// filesystem.
type Builder struct {
	compiler compiler.Compiler
	fs       afero.Fs
	logger   zerolog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Builder) { b.logger = logger }
}

// New creates a Builder around c.
func New(c compiler.Compiler, opts ...Option) *Builder {
	b := &Builder{
		compiler: c,
		fs:       filesystem.NewOS(),
		logger:   logging.GetLogger("build"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build generates tmpl with cfg, compiles its main file and returns the
// artifact path: the copied destination when OutputPath is set, else the
// artifact inside BuildDir.
func (b *Builder) Build(ctx context.Context, tmpl *project.Template, cfg map[string]any, opts Options) (string, error) {
	if opts.OutputPath == "" && opts.BuildDir == "" {
		return "", errors.New(errors.ErrInvalidInput, "an output path or a build directory is required")
	}

	if _, ok := tmpl.FS().(*afero.OsFs); !ok {
		return "", errors.Newf(errors.ErrInvalidInput, "template %q is not on the OS filesystem and cannot be compiled", tmpl.Name).
			WithDetail("template", tmpl.Name)
	}

	done := logging.LogOperationStart(b.logger, "build")
	defer done()

	buildDir := opts.BuildDir
	if buildDir == "" {
		tmp, err := os.MkdirTemp("", "latex-templates-")
		if err != nil {
			return "", errors.Wrap(err, errors.ErrGenerationIO, "cannot create temporary build directory")
		}
		defer func() {
			if err := os.RemoveAll(tmp); err != nil {
				b.logger.Warn().Err(err).Str("path", tmp).Msg("Failed to remove build directory")
			}
		}()
		buildDir = tmp
	}
	b.logger.Debug().Str("buildDir", buildDir).Msg("Building")

	entries, err := tmpl.Generate(cfg, buildDir)
	if err != nil {
		return "", err
	}

	main, ok := tmpl.MainEntry(entries)
	if !ok {
		return "", errors.Newf(errors.ErrNoMainFile, "template %q does not specify a main file", tmpl.Name).
			WithDetail("template", tmpl.Name)
	}

	b.logger.Info().Str("main", main.Tgt).Msg("Building from main file")
	if err := b.compiler.Compile(ctx, buildDir, main.Tgt); err != nil {
		return "", err
	}

	artifact, ok := b.findArtifact(buildDir, main.Tgt)
	if !ok {
		return "", errors.New(errors.ErrCompilerFailure, "compiler produced no artifact").
			WithDetail("path", artifact)
	}

	if opts.OutputPath == "" {
		return artifact, nil
	}

	dest := opts.OutputPath
	if filesystem.IsDir(b.fs, dest) {
		dest = filepath.Join(dest, filepath.Base(artifact))
	}
	if !opts.Overwrite {
		dest = filesystem.ParenthesizedName(b.fs, dest)
	}

	if err := copy.Copy(artifact, dest); err != nil {
		return "", errors.Wrap(err, errors.ErrGenerationIO, "cannot copy artifact").
			WithDetail("path", dest).
			WithDetail("src", artifact)
	}

	b.logger.Info().Str("path", dest).Msg("Wrote artifact")
	return dest, nil
}

// findArtifact looks for the compiled main file next to it, then at the
// root of buildDir, where latexmk writes it for a main file in a
// subdirectory. The first candidate is returned when neither exists.
func (b *Builder) findArtifact(buildDir, mainTgt string) (string, bool) {
	rel := ReplaceExt(filepath.FromSlash(mainTgt), b.compiler.OutputExt())
	candidates := []string{filepath.Join(buildDir, rel)}
	if base := filepath.Base(rel); base != rel {
		candidates = append(candidates, filepath.Join(buildDir, base))
	}

	for _, candidate := range candidates {
		if filesystem.IsFile(b.fs, candidate) {
			return candidate, true
		}
	}
	return candidates[0], false
}

// ReplaceExt swaps the last extension of path for ext.
//
//	paper.tex -> paper.pdf
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

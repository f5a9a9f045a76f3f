package project

import (
	"iter"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/latex-templates/pkg/codec"
	"github.com/arthur-debert/latex-templates/pkg/errors"
	"github.com/arthur-debert/latex-templates/pkg/filesystem"
	"github.com/arthur-debert/latex-templates/pkg/logging"
	"github.com/arthur-debert/latex-templates/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Finder locates templates on a filesystem.
type Finder struct {
	fs     afero.Fs
	codec  codec.Codec
	logger zerolog.Logger
}

// Option configures a Finder.
type Option func(*Finder)

// WithFS sets the filesystem templates are read from and written to.
func WithFS(fsys afero.Fs) Option {
	return func(f *Finder) { f.fs = fsys }
}

// NewFinder returns a Finder on the OS filesystem using YAML.
func NewFinder(opts ...Option) *Finder {
	f := &Finder{
		fs:     filesystem.NewOS(),
		codec:  codec.YAML(),
		logger: logging.GetLogger("project"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// IsTemplate reports whether dir is a directory holding both
// default-conf.yaml and contents.yaml as regular files.
func (f *Finder) IsTemplate(dir string) bool {
	return filesystem.IsDir(f.fs, dir) &&
		filesystem.IsFile(f.fs, filepath.Join(dir, DefaultConfigFile)) &&
		filesystem.IsFile(f.fs, filepath.Join(dir, ManifestFile))
}

// Find returns the first template called name on sp.Templates. The template
// is bound to the whole sp.Libraries list.
func (f *Finder) Find(name string, sp paths.SearchPaths) (*Template, error) {
	if err := paths.ValidateTemplateName(name); err != nil {
		return nil, err
	}

	f.logger.Info().Str("name", name).Msg("Looking for template")
	for _, dir := range sp.Templates {
		candidate := filepath.Join(dir, name)
		if f.IsTemplate(candidate) {
			f.logger.Info().Str("path", candidate).Msg("Found template")
			return newTemplate(f, candidate, sp.Libraries), nil
		}
		f.logger.Info().Str("path", candidate).Msg("No template at candidate path")
	}

	return nil, errors.Newf(errors.ErrTemplateNotFound, "no project template named %q was found", name).
		WithDetail("name", name).
		WithDetail("searched", sp.Templates)
}

// FindAll yields the name of every template directly under each directory
// of templatePath, in path order then lexical order. Names are not
// deduplicated. Each iteration scans the filesystem again.
func (f *Finder) FindAll(templatePath []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		f.logger.Info().Msg("Listing all templates")

		for _, dir := range templatePath {
			if !filesystem.IsDir(f.fs, dir) {
				continue
			}
			f.logger.Info().Str("path", dir).Msg("Checking template directory")

			names, err := f.subdirNames(dir)
			if err != nil {
				f.logger.Warn().Err(err).Str("path", dir).Msg("Cannot read template directory, skipping")
				continue
			}

			for _, name := range names {
				if !f.IsTemplate(filepath.Join(dir, name)) {
					continue
				}
				if !yield(name) {
					return
				}
			}
		}
	}
}

func (f *Finder) subdirNames(dir string) ([]string, error) {
	d, err := f.fs.Open(dir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = d.Close() }()

	names, err := d.Readdirnames(-1)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

package project

import (
	"path/filepath"

	"github.com/arthur-debert/latex-templates/pkg/codec"
	"github.com/arthur-debert/latex-templates/pkg/errors"
	"github.com/arthur-debert/latex-templates/pkg/filesystem"
	"github.com/arthur-debert/latex-templates/pkg/render"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Fixed file names inside a template root
const (
	DefaultConfigFile = "default-conf.yaml"
	ManifestFile      = "contents.yaml"
	ReadmeFile        = "README.md"
)

// Template is a project template found on the search path.
type Template struct {
	Name    string
	Root    string
	LibPath []string

	fs     afero.Fs
	codec  codec.Codec
	engine render.Engine
	logger zerolog.Logger
}

func newTemplate(f *Finder, root string, libPath []string) *Template {
	t := &Template{
		Name:    filepath.Base(root),
		Root:    root,
		LibPath: append([]string(nil), libPath...),
		fs:      f.fs,
		codec:   f.codec,
		logger:  f.logger.With().Str("template", filepath.Base(root)).Logger(),
	}
	t.engine = render.New(f.fs, t.Roots(), render.WithLogger(t.logger))
	return t
}

// Roots returns the render lookup roots: the template root, then the
// library path.
func (t *Template) Roots() []string {
	return append([]string{t.Root}, t.LibPath...)
}

// FS returns the filesystem the template is read from.
func (t *Template) FS() afero.Fs {
	return t.fs
}

// DefaultConfigPath returns the path of default-conf.yaml.
func (t *Template) DefaultConfigPath() string {
	return filepath.Join(t.Root, DefaultConfigFile)
}

// LoadDefaultConfig parses default-conf.yaml. The file is read on every call.
func (t *Template) LoadDefaultConfig() (map[string]any, error) {
	path := t.DefaultConfigPath()

	data, err := afero.ReadFile(t.fs, path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "cannot read default configuration").
			WithDetail("path", path).
			WithDetail("template", t.Name)
	}

	cfg, err := codec.DecodeMapping(t.codec, data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid default configuration").
			WithDetail("path", path).
			WithDetail("template", t.Name)
	}
	return cfg, nil
}

// WriteDefaultConfig copies default-conf.yaml byte for byte to path, or to
// the first free path.N when path exists. It returns the written path.
func (t *Template) WriteDefaultConfig(path string) (string, error) {
	target := filesystem.NumberedName(t.fs, path)

	if dir := filepath.Dir(target); dir != "." {
		if err := filesystem.EnsureDir(t.fs, dir); err != nil {
			return "", errors.Wrap(err, errors.ErrGenerationIO, "cannot create directory").
				WithDetail("path", dir)
		}
	}

	if err := filesystem.CopyFile(t.fs, t.DefaultConfigPath(), target); err != nil {
		return "", errors.Wrap(err, errors.ErrGenerationIO, "cannot write default configuration").
			WithDetail("path", target).
			WithDetail("template", t.Name)
	}

	t.logger.Info().Str("path", target).Msg("Wrote default configuration")
	return target, nil
}

// Readme returns the template's README.md, if it has one.
func (t *Template) Readme() (string, bool) {
	data, err := afero.ReadFile(t.fs, filepath.Join(t.Root, ReadmeFile))
	if err != nil {
		return "", false
	}
	return string(data), true
}

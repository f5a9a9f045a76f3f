package project

import (
	"path/filepath"

	"github.com/arthur-debert/latex-templates/pkg/codec"
	"github.com/arthur-debert/latex-templates/pkg/errors"
	"github.com/spf13/afero"
)

// WorkingDirKey is the configuration key injected with the directory of
// the user configuration file.
const WorkingDirKey = "cwd"

// MergeConfig returns defaults overridden by override. The merge is
// shallow: a top-level key of override replaces the default value
// entirely. Neither input is modified.
func MergeConfig(defaults, override map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults)+len(override))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

// LoadUserConfig parses a user configuration file. Files ending in .toml
// are read as TOML, anything else as YAML.
func LoadUserConfig(fsys afero.Fs, path string) (map[string]any, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "cannot read configuration file").
			WithDetail("path", path)
	}

	cfg, err := codec.DecodeMapping(codec.ForPath(path), data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid configuration file").
			WithDetail("path", path)
	}
	return cfg, nil
}

// WithWorkingDir returns a copy of cfg with cwd set to the absolute
// directory containing configPath.
func WithWorkingDir(cfg map[string]any, configPath string) (map[string]any, error) {
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "cannot resolve configuration path").
			WithDetail("path", configPath)
	}
	return MergeConfig(cfg, map[string]any{WorkingDirKey: filepath.Dir(abs)}), nil
}

// mergedConfig merges the template defaults under cfg.
func (t *Template) mergedConfig(cfg map[string]any) (map[string]any, error) {
	defaults, err := t.LoadDefaultConfig()
	if err != nil {
		return nil, err
	}
	return MergeConfig(defaults, cfg), nil
}

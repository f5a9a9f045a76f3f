package config

import (
	_ "embed"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/latex-templates/pkg/compiler"
	"github.com/arthur-debert/latex-templates/pkg/paths"
)

//go:embed embedded/defaults.yaml
var defaultSettings []byte

// SettingsFileName is the settings file name under the XDG config directory
const SettingsFileName = "settings.yaml"

// EnvPrefix prefixes environment variables mapped onto settings keys
const EnvPrefix = "LATEX_TEMPLATES_"

// Settings is the decoded tool configuration.
type Settings struct {
	Search   Search   `koanf:"search"`
	Compiler Compiler `koanf:"compiler"`
	Project  Project  `koanf:"project"`
}

// Search configures template and library lookup.
type Search struct {
	Path       []string `koanf:"path"`
	BundledDir string   `koanf:"bundled_dir"`
}

// Compiler configures the external document compiler.
type Compiler struct {
	Command   string   `koanf:"command"`
	Args      []string `koanf:"args"`
	OutputExt string   `koanf:"output_ext"`
}

// Project configures project commands.
type Project struct {
	ConfigFile string `koanf:"config_file"`
}

// DefaultSettingsFile returns $XDG_CONFIG_HOME/latex-templates/settings.yaml
func DefaultSettingsFile() string {
	return filepath.Join(xdg.ConfigHome, paths.AppDirName, SettingsFileName)
}

// SearchPaths resolves the configured bases, falling back to the default
// bases and bundled location when unset.
func (s *Settings) SearchPaths() paths.SearchPaths {
	bases := s.Search.Path
	if len(bases) == 0 {
		bases = paths.DefaultBases()
	}
	bundled := s.Search.BundledDir
	if bundled == "" {
		bundled = paths.DefaultBundledDir()
	}
	return paths.Resolve(bases, bundled)
}

// NewCompiler builds the configured compiler.
func (s *Settings) NewCompiler(opts ...compiler.Option) *compiler.Command {
	return compiler.New(s.Compiler.Command, s.Compiler.Args, s.Compiler.OutputExt, opts...)
}

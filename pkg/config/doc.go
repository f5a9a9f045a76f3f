// Package config handles the tool's own settings.
//
// Settings are layered with koanf, later layers winning:
//
//  1. embedded defaults (embedded/defaults.yaml)
//  2. the settings file, $XDG_CONFIG_HOME/latex-templates/settings.yaml
//     unless another path is given (.toml files are read as TOML)
//  3. LATEX_TEMPLATES_<SECTION>_<KEY> environment variables, and
//     LATEX_TEMPLATE_PATH for search.path
//  4. overrides from command-line flags
//
// Settings are distinct from template configuration, which is never read
// from here.
package config

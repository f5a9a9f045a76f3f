package config

import (
	"errors"
	"os"
	"strings"

	lterrors "github.com/arthur-debert/latex-templates/pkg/errors"
	"github.com/arthur-debert/latex-templates/pkg/logging"
	"github.com/arthur-debert/latex-templates/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadOptions selects the settings file and command-line overrides.
type LoadOptions struct {
	// File is an explicit settings file; it must exist. Empty means the
	// default settings file, skipped when absent.
	File string
	// Overrides are dotted keys applied last, e.g. "search.path".
	Overrides map[string]interface{}
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Default returns the embedded defaults alone.
func Default() *Settings {
	k, err := defaults()
	if err == nil {
		var s *Settings
		if s, err = decode(k); err == nil {
			return s
		}
	}
	panic("embedded settings are invalid: " + err.Error())
}

func defaults() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, yaml.Parser()); err != nil {
		return nil, lterrors.Wrap(err, lterrors.ErrInternal, "failed to load default settings")
	}
	return k, nil
}

// Load layers defaults, the settings file, the environment and overrides.
func Load(opts LoadOptions) (*Settings, error) {
	logger := logging.GetLogger("config")

	// 1. Embedded defaults
	k, err := defaults()
	if err != nil {
		return nil, err
	}

	// 2. Settings file
	path, required := opts.File, true
	if path == "" {
		path, required = DefaultSettingsFile(), false
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, lterrors.Wrap(err, lterrors.ErrConfigParse, "failed to load settings file").
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded settings file")
	} else if required {
		return nil, lterrors.Wrap(err, lterrors.ErrConfigParse, "cannot read settings file").
			WithDetail("path", path)
	}

	// 3. Environment
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, lterrors.Wrap(err, lterrors.ErrConfigParse, "failed to load environment")
	}
	if value := os.Getenv(paths.EnvTemplatePath); value != "" {
		if err := k.Set("search.path", paths.SplitList(value)); err != nil {
			return nil, lterrors.Wrap(err, lterrors.ErrConfigParse, "failed to load search path")
		}
	}

	// 4. Command-line overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, lterrors.Wrap(err, lterrors.ErrConfigParse, "failed to apply overrides")
		}
	}

	// A search path given as one string is a path list, not a CSV list.
	if value, ok := k.Get("search.path").(string); ok {
		if err := k.Set("search.path", paths.SplitList(value)); err != nil {
			return nil, lterrors.Wrap(err, lterrors.ErrConfigParse, "invalid search path")
		}
	}

	s, err := decode(k)
	if err != nil {
		return nil, err
	}
	logger.Trace().Interface("settings", s).Msg("Settings loaded")
	return s, nil
}

func decode(k *koanf.Koanf) (*Settings, error) {
	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, lterrors.Wrap(err, lterrors.ErrConfigParse, "invalid settings")
	}
	return &s, nil
}

func parserFor(path string) koanf.Parser {
	if strings.HasSuffix(strings.ToLower(path), ".toml") {
		return toml.Parser()
	}
	return yaml.Parser()
}

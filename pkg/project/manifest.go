package project

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/latex-templates/pkg/codec"
	"github.com/arthur-debert/latex-templates/pkg/errors"
	"github.com/arthur-debert/latex-templates/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
)

// GeneratedFile is one normalized manifest entry.
type GeneratedFile struct {
	// Src is relative to the template root (raw) or the render roots.
	Src string `mapstructure:"src" json:"src"`
	// Tgt is relative to the output directory. Defaults to Src.
	Tgt string `mapstructure:"tgt" json:"tgt"`
	// IsRaw entries are copied verbatim instead of rendered.
	IsRaw bool `mapstructure:"raw" json:"raw"`
	// IsMain marks the compiler entry point.
	IsMain bool `mapstructure:"main" json:"main"`
}

// GeneratedFiles renders contents.yaml against the template defaults
// merged with cfg and returns its entries in order.
func (t *Template) GeneratedFiles(cfg map[string]any) ([]GeneratedFile, error) {
	merged, err := t.mergedConfig(cfg)
	if err != nil {
		return nil, err
	}
	return t.manifest(merged)
}

// MainFile returns the first entry marked main. When several are marked,
// the first wins and a warning is logged.
func (t *Template) MainFile(cfg map[string]any) (GeneratedFile, bool, error) {
	entries, err := t.GeneratedFiles(cfg)
	if err != nil {
		return GeneratedFile{}, false, err
	}
	main, ok := t.MainEntry(entries)
	return main, ok, nil
}

// MainEntry picks the main entry out of an already rendered manifest.
func (t *Template) MainEntry(entries []GeneratedFile) (GeneratedFile, bool) {
	var (
		main  GeneratedFile
		found bool
	)
	for _, entry := range entries {
		if !entry.IsMain {
			continue
		}
		if found {
			t.logger.Warn().
				Str("main", main.Tgt).
				Str("ignored", entry.Tgt).
				Msg("Several manifest entries are marked main, using the first")
			continue
		}
		main, found = entry, true
	}
	return main, found
}

func (t *Template) manifest(merged map[string]any) ([]GeneratedFile, error) {
	text, err := t.engine.Render(ManifestFile, merged)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestRender, "cannot render manifest").
			WithDetail("template", t.Name)
	}

	raw, err := codec.DecodeSequence(t.codec, []byte(text))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestInvalid, "manifest is not a sequence").
			WithDetail("template", t.Name)
	}

	entries := make([]GeneratedFile, 0, len(raw))
	for i, item := range raw {
		entry, err := normalizeEntry(item)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrManifestInvalid, "invalid manifest entry %d", i+1).
				WithDetail("template", t.Name).
				WithDetail("entry", item)
		}
		entries = append(entries, entry)
	}

	t.logger.Debug().Int("entries", len(entries)).Msg("Rendered manifest")
	return entries, nil
}

// normalizeEntry turns a string or mapping manifest item into a
// GeneratedFile. Unknown mapping keys are ignored.
func normalizeEntry(item any) (GeneratedFile, error) {
	var entry GeneratedFile

	switch v := item.(type) {
	case string:
		entry = GeneratedFile{Src: v, Tgt: v}
	case map[string]any:
		if _, ok := v["src"]; !ok {
			return GeneratedFile{}, fmt.Errorf("missing src")
		}
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &entry,
		})
		if err != nil {
			return GeneratedFile{}, err
		}
		if err := decoder.Decode(v); err != nil {
			return GeneratedFile{}, err
		}
		if entry.Tgt == "" {
			entry.Tgt = entry.Src
		}
	default:
		return GeneratedFile{}, fmt.Errorf("entry must be a string or a mapping, got %T", item)
	}

	if entry.Src == "" {
		return GeneratedFile{}, fmt.Errorf("empty src")
	}
	if !paths.IsWithin(filepath.FromSlash(entry.Src)) {
		return GeneratedFile{}, fmt.Errorf("src %q escapes the template root", entry.Src)
	}
	if !paths.IsWithin(filepath.FromSlash(entry.Tgt)) {
		return GeneratedFile{}, fmt.Errorf("tgt %q escapes the output directory", entry.Tgt)
	}
	return entry, nil
}

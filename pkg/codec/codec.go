// Package codec isolates the structured-data formats used for template
// configuration and manifests behind a small interface.
package codec

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Codec parses and dumps structured documents
type Codec interface {
	Name() string
	Unmarshal(data []byte, v any) error
	Marshal(v any) ([]byte, error)
}

type yamlCodec struct{}

// YAML returns the YAML codec
func YAML() Codec { return yamlCodec{} }

func (yamlCodec) Name() string { return "yaml" }

func (yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

func (yamlCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type tomlCodec struct{}

// TOML returns the TOML codec
func TOML() Codec { return tomlCodec{} }

func (tomlCodec) Name() string { return "toml" }

func (tomlCodec) Unmarshal(data []byte, v any) error {
	return toml.Unmarshal(data, v)
}

func (tomlCodec) Marshal(v any) ([]byte, error) {
	return toml.Marshal(v)
}

// ForPath picks a codec from a file extension. TOML for .toml, YAML for
// everything else (YAML also accepts JSON documents).
func ForPath(path string) Codec {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return TOML()
	}
	return YAML()
}

// DecodeMapping parses a document whose top level must be a mapping.
// An empty document yields an empty, non-nil map.
func DecodeMapping(c Codec, data []byte) (map[string]any, error) {
	var m map[string]any
	if err := c.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name(), err)
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

// DecodeSequence parses a document whose top level must be a sequence.
// An empty document yields an empty sequence.
func DecodeSequence(c Codec, data []byte) ([]any, error) {
	var s []any
	if err := c.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name(), err)
	}
	return s, nil
}

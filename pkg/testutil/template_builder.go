package testutil

import (
	"path/filepath"
)

// TemplateBuilder declares a template directory's files.
type TemplateBuilder struct {
	env   *TestEnvironment
	dir   string
	files map[string]string
}

// WithManifest sets the contents.yaml manifest.
func (b *TemplateBuilder) WithManifest(content string) *TemplateBuilder {
	return b.WithFile("contents.yaml", content)
}

// WithDefaultConfig sets default-conf.yaml.
func (b *TemplateBuilder) WithDefaultConfig(content string) *TemplateBuilder {
	return b.WithFile("default-conf.yaml", content)
}

// WithFile adds a file relative to the template directory.
func (b *TemplateBuilder) WithFile(rel, content string) *TemplateBuilder {
	b.files[rel] = content
	return b
}

// Build writes the files and returns the template directory.
func (b *TemplateBuilder) Build() string {
	b.env.t.Helper()

	if err := b.env.FS.MkdirAll(b.dir, 0755); err != nil {
		b.env.t.Fatalf("Failed to create template directory: %v", err)
	}
	for rel, content := range b.files {
		b.env.WriteFile(filepath.Join(b.dir, filepath.FromSlash(rel)), content)
	}
	return b.dir
}

// ReportTemplate is a small article template exercising templated, raw and
// main entries.
var ReportTemplate = map[string]string{
	"default-conf.yaml": "title: Untitled\nauthor: Anonymous\n",
	"contents.yaml": `- src: main.tex
  tgt: \EXPR{ .title | lower }.tex
  main: true
- src: logo.png
  raw: true
`,
	"main.tex": `\documentclass{article}
\title{\EXPR{ .title }}
\author{\EXPR{ .author }}
`,
	"logo.png": "PNG",
}

// WithFiles adds every entry of files.
func (b *TemplateBuilder) WithFiles(files map[string]string) *TemplateBuilder {
	for rel, content := range files {
		b.WithFile(rel, content)
	}
	return b
}

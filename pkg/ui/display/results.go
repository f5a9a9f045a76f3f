// Package display holds the result types commands hand to renderers.
package display

import (
	"github.com/arthur-debert/latex-templates/pkg/project"
)

// ListResult is the outcome of list.
type ListResult struct {
	Templates  []string `json:"templates"`
	SearchPath []string `json:"searchPath"`
}

// InfoResult describes one template.
type InfoResult struct {
	Name     string                  `json:"name"`
	Root     string                  `json:"root"`
	LibPath  []string                `json:"libPath"`
	Defaults map[string]interface{}  `json:"defaults"`
	Manifest []project.GeneratedFile `json:"manifest"`
	Readme   string                  `json:"readme,omitempty"`
}

// Action names used in PathResult
const (
	ActionGenerated = "generated"
	ActionWrote     = "wrote"
	ActionBuilt     = "built"
)

// PathResult reports a file or directory a command produced.
type PathResult struct {
	Action   string `json:"action"`
	Template string `json:"template"`
	Path     string `json:"path"`
	// Files lists generated targets, relative to Path.
	Files []string `json:"files,omitempty"`
}

// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/latex-templates/pkg/codec"
	"github.com/arthur-debert/latex-templates/pkg/errors"
	"github.com/arthur-debert/latex-templates/pkg/ui/display"
)

// Renderer provides plain text output, suited to pipes and scripts
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	var b strings.Builder

	switch v := result.(type) {
	case *display.ListResult:
		for _, name := range v.Templates {
			b.WriteString(name + "\n")
		}
	case *display.InfoResult:
		fmt.Fprintf(&b, "name: %s\nroot: %s\n", v.Name, v.Root)
		for _, dir := range v.LibPath {
			fmt.Fprintf(&b, "library: %s\n", dir)
		}
		if data, err := codec.YAML().Marshal(v.Defaults); err == nil && len(v.Defaults) > 0 {
			b.WriteString("defaults:\n")
			for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
				b.WriteString("  " + line + "\n")
			}
		}
		for _, entry := range v.Manifest {
			fmt.Fprintf(&b, "file: %s -> %s", entry.Src, entry.Tgt)
			if entry.IsRaw {
				b.WriteString(" raw")
			}
			if entry.IsMain {
				b.WriteString(" main")
			}
			b.WriteString("\n")
		}
		if v.Readme != "" {
			b.WriteString("\n" + v.Readme)
		}
	case *display.PathResult:
		b.WriteString(v.Path + "\n")
	default:
		fmt.Fprintf(&b, "%+v\n", result)
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	msg := "Error: " + err.Error() + "\n"
	if output, ok := errors.GetErrorDetails(err)["output"].(string); ok && output != "" {
		msg += "\n" + output
	}
	_, writeErr := io.WriteString(r.output, msg)
	return writeErr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

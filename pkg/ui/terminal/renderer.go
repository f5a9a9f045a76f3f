// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/latex-templates/pkg/codec"
	"github.com/arthur-debert/latex-templates/pkg/errors"
	"github.com/arthur-debert/latex-templates/pkg/project"
	"github.com/arthur-debert/latex-templates/pkg/ui/display"
	"github.com/arthur-debert/latex-templates/pkg/ui/styles"
	"github.com/charmbracelet/lipgloss"
)

// readmeWidth is the word wrap width for rendered READMEs
const readmeWidth = 80

// Renderer writes styled output
type Renderer struct {
	output io.Writer
	styles styles.Styles
}

// New creates a terminal renderer whose color profile is detected from w
func New(w io.Writer) *Renderer {
	return &Renderer{output: w, styles: styles.New(lipgloss.NewRenderer(w))}
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.ListResult:
		return r.renderList(v)
	case *display.InfoResult:
		return r.renderInfo(v)
	case *display.PathResult:
		return r.renderPath(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderList(v *display.ListResult) error {
	var b strings.Builder
	if len(v.Templates) == 0 {
		b.WriteString(r.styles.Muted.Render("No templates found. Searched:") + "\n")
		for _, dir := range v.SearchPath {
			b.WriteString("  " + r.styles.Path.Render(dir) + "\n")
		}
	}
	for _, name := range v.Templates {
		b.WriteString(r.styles.Name.Render(name) + "\n")
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) renderInfo(v *display.InfoResult) error {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render(v.Name) + "\n")
	b.WriteString(r.field("Root") + r.styles.Path.Render(v.Root) + "\n")
	for i, dir := range v.LibPath {
		label := r.field("")
		if i == 0 {
			label = r.field("Libraries")
		}
		b.WriteString(label + r.styles.Path.Render(dir) + "\n")
	}

	b.WriteString("\n" + r.styles.Label.Render("Defaults") + "\n")
	if len(v.Defaults) == 0 {
		b.WriteString("  " + r.styles.Muted.Render("(none)") + "\n")
	} else if data, err := codec.YAML().Marshal(v.Defaults); err == nil {
		for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n" + r.styles.Label.Render("Files") + "\n")
	for _, entry := range v.Manifest {
		b.WriteString("  " + r.manifestLine(entry) + "\n")
	}

	if v.Readme != "" {
		b.WriteString("\n" + renderMarkdown(v.Readme, readmeWidth))
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) manifestLine(entry project.GeneratedFile) string {
	line := entry.Src
	if entry.Tgt != entry.Src {
		line += r.styles.Muted.Render(" -> ") + entry.Tgt
	}
	if entry.IsRaw {
		line += " " + r.styles.Tag.Render("[raw]")
	}
	if entry.IsMain {
		line += " " + r.styles.Success.Render("[main]")
	}
	return line
}

func (r *Renderer) renderPath(v *display.PathResult) error {
	var b strings.Builder

	msg := fmt.Sprintf("%s %s %s", capitalize(v.Action), v.Template, r.styles.Path.Render(v.Path))
	if v.Action == display.ActionGenerated {
		msg = fmt.Sprintf("Generated %s in %s", v.Template, r.styles.Path.Render(v.Path))
	}
	b.WriteString(r.styles.Success.Render("✓") + " " + msg + "\n")

	files := append([]string(nil), v.Files...)
	sort.Strings(files)
	for _, f := range files {
		b.WriteString("  " + r.styles.Muted.Render(filepath.ToSlash(f)) + "\n")
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error and, for compiler failures, the captured
// compiler output
func (r *Renderer) RenderError(err error) error {
	msg := r.styles.Error.Render("Error:") + " " + err.Error() + "\n"
	if output, ok := errors.GetErrorDetails(err)["output"].(string); ok && output != "" {
		msg += "\n" + r.styles.Muted.Render(strings.TrimRight(output, "\n")) + "\n"
	}
	_, writeErr := io.WriteString(r.output, msg)
	return writeErr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *Renderer) field(label string) string {
	return r.styles.Label.Render(fmt.Sprintf("%-10s", label)) + " "
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package render

import (
	"path/filepath"
	"strings"
	"text/template"

	"github.com/arthur-debert/latex-templates/pkg/errors"
	"github.com/arthur-debert/latex-templates/pkg/filesystem"
	"github.com/arthur-debert/latex-templates/pkg/logging"
	"github.com/arthur-debert/latex-templates/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// maxIncludeDepth bounds nested include calls.
const maxIncludeDepth = 32

// Engine renders named templates with a data context.
type Engine interface {
	// Render resolves name against the engine roots and returns the
	// instantiated text.
	Render(name string, data any) (string, error)
}

// Option configures a TextEngine.
type Option func(*TextEngine)

// WithFuncs adds template functions, overriding built-ins of the same name.
func WithFuncs(funcs template.FuncMap) Option {
	return func(e *TextEngine) {
		for name, fn := range funcs {
			e.funcs[name] = fn
		}
	}
}

// WithLogger sets the logger used for lookup tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *TextEngine) {
		e.logger = logger
	}
}

// TextEngine is the text/template backed Engine.
type TextEngine struct {
	fs     afero.Fs
	roots  []string
	funcs  template.FuncMap
	logger zerolog.Logger
}

// New creates an engine looking templates up in roots, in order.
func New(fsys afero.Fs, roots []string, opts ...Option) *TextEngine {
	e := &TextEngine{
		fs:     fsys,
		roots:  append([]string(nil), roots...),
		funcs:  builtinFuncs(),
		logger: logging.GetLogger("render"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Roots returns the lookup roots in priority order.
func (e *TextEngine) Roots() []string {
	return append([]string(nil), e.roots...)
}

// Resolve returns the path of the first file named name under the roots.
func (e *TextEngine) Resolve(name string) (string, error) {
	rel := filepath.FromSlash(name)
	if filepath.IsAbs(rel) || !paths.IsWithin(rel) {
		return "", errors.Newf(errors.ErrTemplateRender, "template name %q escapes the lookup roots", name).
			WithDetail("name", name)
	}

	for _, root := range e.roots {
		candidate := filepath.Join(root, rel)
		if filesystem.IsFile(e.fs, candidate) {
			e.logger.Trace().Str("name", name).Str("path", candidate).Msg("resolved template")
			return candidate, nil
		}
	}

	return "", errors.Newf(errors.ErrTemplateRender, "template %q not found", name).
		WithDetail("name", name).
		WithDetail("roots", e.Roots())
}

// Render implements Engine.
func (e *TextEngine) Render(name string, data any) (string, error) {
	return e.render(name, data, 0)
}

// RenderString renders src as a template named name. Includes are still
// resolved against the roots.
func (e *TextEngine) RenderString(name, src string, data any) (string, error) {
	return e.execute(name, src, data, 0)
}

func (e *TextEngine) render(name string, data any, depth int) (string, error) {
	path, err := e.Resolve(name)
	if err != nil {
		return "", err
	}

	content, err := afero.ReadFile(e.fs, path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateRender, "failed to read template %q", name).
			WithDetail("path", path)
	}

	return e.execute(name, string(content), data, depth)
}

func (e *TextEngine) execute(name, src string, data any, depth int) (string, error) {
	translated, err := Translate(src)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateRender, "failed to parse template %q", name).
			WithDetail("name", name)
	}

	funcs := template.FuncMap{}
	for k, v := range e.funcs {
		funcs[k] = v
	}
	// include shares the caller's data unless given its own.
	funcs["include"] = func(inc string, incData ...any) (string, error) {
		if depth+1 > maxIncludeDepth {
			return "", errors.Newf(errors.ErrTemplateRender, "include depth exceeded at %q", inc)
		}
		ctx := data
		if len(incData) > 0 {
			ctx = incData[0]
		}
		return e.render(inc, ctx, depth+1)
	}

	tmpl, err := template.New(name).
		Delims(leftDelim, rightDelim).
		Option("missingkey=error").
		Funcs(funcs).
		Parse(translated)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateRender, "failed to parse template %q", name).
			WithDetail("name", name)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateRender, "failed to render template %q", name).
			WithDetail("name", name)
	}
	return out.String(), nil
}

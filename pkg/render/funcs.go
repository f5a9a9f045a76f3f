package render

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"text/template"
)

func builtinFuncs() template.FuncMap {
	return template.FuncMap{
		"latex":       EscapeLaTeX,
		"default":     defaultValue,
		"get":         getOr,
		"join":        join,
		"upper":       strings.ToUpper,
		"lower":       strings.ToLower,
		"trim":        strings.TrimSpace,
		"cwdRelative": relativeToCurrentWorkingDir,
		// Placeholder so templates parse; replaced per execution.
		"include": func(string, ...any) (string, error) { return "", nil },
	}
}

var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// EscapeLaTeX escapes characters with a special meaning in LaTeX.
func EscapeLaTeX(v any) string {
	return latexReplacer.Replace(fmt.Sprint(v))
}

// defaultValue returns fallback when value is nil or the zero value.
func defaultValue(fallback, value any) any {
	if isEmpty(value) {
		return fallback
	}
	return value
}

// getOr looks key up in a string keyed map, returning fallback when absent.
func getOr(m any, key string, fallback any) any {
	rv := reflect.ValueOf(m)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return fallback
	}
	v := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	if !v.IsValid() {
		return fallback
	}
	return v.Interface()
}

func join(sep string, items any) string {
	rv := reflect.ValueOf(items)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Sprint(items)
	}
	parts := make([]string, rv.Len())
	for i := range parts {
		parts[i] = fmt.Sprint(rv.Index(i).Interface())
	}
	return strings.Join(parts, sep)
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	default:
		return rv.IsZero()
	}
}

// relativeToCurrentWorkingDir returns a path relative to current working dir.
// In case of error, fullpath is returned.
func relativeToCurrentWorkingDir(fullpath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return fullpath
	}
	relPath, err := filepath.Rel(cwd, fullpath)
	if err != nil {
		return fullpath
	}
	return relPath
}

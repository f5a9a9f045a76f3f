// Package paths resolves where project templates and libraries are looked up.
//
// A search path is built from an ordered list of base directories. Each base
// directory contributes two candidates:
//
//   - <base>/templates: directories holding project templates
//   - <base>/libraries: directories holding shared template fragments
//
// The bundled location shipped with the binary is always appended last, so
// user-provided locations take priority. Resolution never touches the
// filesystem; nonexistent directories simply yield no matches later.
//
// # Environment Variables
//
//   - LATEX_TEMPLATE_PATH: colon-separated list of base directories
//
// When unset, the default bases are, in order:
//
//   - ./ (the current directory)
//   - $XDG_DATA_HOME/latex-templates
//   - each entry of $XDG_DATA_DIRS + /latex-templates
//     (by default /usr/local/share/latex-templates and /usr/share/latex-templates)
//
// # Usage
//
//	sp := paths.Resolve(paths.DefaultBases(), paths.DefaultBundledDir())
//	for _, dir := range sp.Templates {
//	    fmt.Println(dir)
//	}
package paths

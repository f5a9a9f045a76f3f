// Package build compiles a project template into a document.
//
// The template is generated into a build directory, either one supplied by
// the caller or a temporary directory removed when Build returns. The
// compiler runs on the manifest's main file and the artifact is copied to
// the requested output path without overwriting existing files unless
// asked to.
package build

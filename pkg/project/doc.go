// Package project implements project templates: directories holding a
// default configuration, a templated manifest and the files it lists.
//
// A directory is a template when it contains the regular files
// default-conf.yaml and contents.yaml. Templates are looked up by name on
// an ordered search path (first match wins) and rendered through
// pkg/render with the template root first, then every library directory.
//
// Generation merges the template defaults with the caller's configuration
// (shallow, top-level keys replace), renders the manifest, then copies raw
// entries and renders the others into the target directory. There is no
// rollback: entries written before a failure stay on disk.
package project

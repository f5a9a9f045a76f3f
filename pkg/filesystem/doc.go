// Package filesystem provides the filesystem helpers shared by discovery,
// generation and compilation.
//
// Everything operates on an afero.Fs so that the pipeline runs unchanged on
// the OS filesystem in production and on an in-memory filesystem in tests.
package filesystem

// Package testutil provides utilities for testing latex-templates components.
//
// Key components:
//   - TestEnvironment: isolated search bases on an afero filesystem
//   - TemplateBuilder: declarative template directory setup
//   - Assert helpers for files and error codes
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly; only compiler and build tests need EnvIsolated
//   - Define template content inline, not in external files
package testutil

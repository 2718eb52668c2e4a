// Package pipeline builds a project's package.json by threading a manifest
// through an ordered list of steps: tooling, framework preset, caller extras,
// license and identity. Steps that add dependencies delegate to a
// DependencyApplier, which either simulates the install (dry run) or performs
// it and reads back the versions npm recorded.
package pipeline

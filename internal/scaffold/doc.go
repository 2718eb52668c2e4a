// Package scaffold creates a TypeScript project on disk. It powers the root
// tsinit command: it builds package.json through the pipeline, then writes
// the compiler configuration, ignore file, license and, for React projects,
// the static page, entry component and bundler configuration. In dry-run mode
// it prints a YAML report of what would be written instead.
package scaffold

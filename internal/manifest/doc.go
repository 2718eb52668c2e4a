// Package manifest models the two JSON documents a scaffolded project starts
// with: the npm package descriptor (package.json) and the TypeScript compiler
// configuration (tsconfig.json). It provides fresh defaults, read/write
// helpers and JSON Schema validation against embedded schemas.
package manifest

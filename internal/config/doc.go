// Package config manages user-level scaffolding defaults stored at
// ~/.tsinit/config.yaml and TSINIT_* environment variables: the default
// license, ECMA target, module format, npm binary and author override.
// Command-line flags always take precedence over these values.
package config

// Package cli defines the Cobra command tree for the tsinit CLI. The root
// command scaffolds a project; the remaining files each register one
// subcommand (version, config, doctor). Commands only handle flag parsing,
// defaults and output formatting and delegate the work to internal packages.
package cli

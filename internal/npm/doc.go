// Package npm wraps the npm package manager. It runs install commands as a
// subprocess, captures their output, and parses the human-readable install
// summary ("+ name@version" lines) back into name/version records.
package npm

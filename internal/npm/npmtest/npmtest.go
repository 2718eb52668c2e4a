// Package npmtest provides an in-memory npm.Runner for tests.
package npmtest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/agentx-labs/tsinit/internal/npm"
)

// Runner fakes npm install. Every requested package is reported as added in
// npm's summary format; real installs also record the package in
// <Dir>/package.json the way npm does.
type Runner struct {
	// Versions maps package name to the version reported. Missing names get
	// DefaultVersion.
	Versions map[string]string
	// Fail makes every install that requests this package exit non-zero.
	Fail string
	// SkipWrite disables the package.json write on real installs.
	SkipWrite bool

	mu       sync.Mutex
	requests []npm.InstallRequest
}

// DefaultVersion is reported for packages absent from Runner.Versions.
const DefaultVersion = "1.0.0"

// Requests returns every request seen so far.
func (r *Runner) Requests() []npm.InstallRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]npm.InstallRequest(nil), r.requests...)
}

// Version returns the version reported for name.
func (r *Runner) Version(name string) string {
	if v, ok := r.Versions[name]; ok {
		return v
	}
	return DefaultVersion
}

// Install implements npm.Runner.
func (r *Runner) Install(_ context.Context, req npm.InstallRequest) (*npm.Output, error) {
	r.mu.Lock()
	r.requests = append(r.requests, req)
	r.mu.Unlock()

	var stdout strings.Builder
	for _, spec := range req.Packages {
		name := npm.PackageName(spec)
		if name == r.Fail {
			return nil, &npm.InstallError{Packages: req.Packages, ExitCode: 1, Stderr: "npm ERR! 404 " + name}
		}
		fmt.Fprintf(&stdout, "+ %s@%s\n", name, r.Version(name))
	}
	fmt.Fprintf(&stdout, "added %d packages in 0.1s\n", len(req.Packages))

	if !req.DryRun && !r.SkipWrite {
		if err := r.record(req); err != nil {
			return nil, err
		}
	}
	return &npm.Output{Stdout: stdout.String()}, nil
}

func (r *Runner) record(req npm.InstallRequest) error {
	path := filepath.Join(req.Dir, "package.json")
	doc := map[string]any{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return err
	}

	key := "dependencies"
	if req.Dev {
		key = "devDependencies"
	}
	deps, _ := doc[key].(map[string]any)
	if deps == nil {
		deps = map[string]any{}
	}
	for _, spec := range req.Packages {
		name := npm.PackageName(spec)
		deps[name] = "^" + r.Version(name)
	}
	doc[key] = deps

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(out, '\n'), 0644)
}

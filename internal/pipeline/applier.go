package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/agentx-labs/tsinit/internal/manifest"
	"github.com/agentx-labs/tsinit/internal/npm"
)

// DependencyApplier adds package specifiers to one dependency map of a
// manifest, resolving their versions through the install tool.
type DependencyApplier interface {
	Apply(ctx context.Context, m *manifest.Manifest, kind manifest.Kind, specs []string) (*manifest.Manifest, error)
}

// NewApplier selects the strategy for the dry-run flag. projectDir is where
// real installs run; workDir is where simulated installs run.
func NewApplier(dryRun bool, runner npm.Runner, projectDir, workDir string, logger *slog.Logger) DependencyApplier {
	if dryRun {
		return &DryRunApplier{Runner: runner, Dir: workDir, Logger: logger}
	}
	return &InstallApplier{Runner: runner, Dir: projectDir, Logger: logger}
}

// DryRunApplier runs `npm install --dry-run` and records the versions npm
// reports without installing anything.
type DryRunApplier struct {
	Runner npm.Runner
	Dir    string
	Logger *slog.Logger
}

// Apply implements DependencyApplier.
func (a *DryRunApplier) Apply(ctx context.Context, m *manifest.Manifest, kind manifest.Kind, specs []string) (*manifest.Manifest, error) {
	out, err := a.Runner.Install(ctx, npm.InstallRequest{
		Dir:      a.Dir,
		Packages: specs,
		DryRun:   true,
		Dev:      kind == manifest.Dev,
	})
	if err != nil {
		return nil, err
	}

	records := npm.ParseInstallOutput(out.Stdout)
	for _, rec := range records {
		m.SetDependency(kind, rec.Name, rec.Version)
	}
	if len(records) == 0 {
		loggerOrDefault(a.Logger).Warn("dry-run install reported no package versions", "kind", kind, "packages", specs)
	}
	return m, nil
}

// InstallApplier runs a real `npm install` inside the project directory and
// then reads back the package.json npm wrote, trusting the versions recorded
// there. Versions parsed from npm's stdout are used for any package the file
// does not list.
type InstallApplier struct {
	Runner npm.Runner
	Dir    string
	Logger *slog.Logger
}

// Apply implements DependencyApplier.
func (a *InstallApplier) Apply(ctx context.Context, m *manifest.Manifest, kind manifest.Kind, specs []string) (*manifest.Manifest, error) {
	out, err := a.Runner.Install(ctx, npm.InstallRequest{
		Dir:      a.Dir,
		Packages: specs,
		Dev:      kind == manifest.Dev,
	})
	if err != nil {
		return nil, err
	}

	path := filepath.Join(a.Dir, manifest.FileName)
	written, err := manifest.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s written by npm: %w", path, err)
	}
	recorded := written.Deps(kind)

	parsed := make(map[string]string)
	for _, rec := range npm.ParseInstallOutput(out.Stdout) {
		parsed[rec.Name] = rec.Version
	}

	for _, spec := range specs {
		name := npm.PackageName(spec)
		if v, ok := recorded[name]; ok {
			m.SetDependency(kind, name, v)
			continue
		}
		if v, ok := parsed[name]; ok {
			m.SetDependency(kind, name, v)
			continue
		}
		loggerOrDefault(a.Logger).Warn("installed package missing from npm output", "package", name, "file", path)
	}
	return m, nil
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

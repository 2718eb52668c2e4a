package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentx-labs/tsinit/internal/manifest"
	"github.com/agentx-labs/tsinit/internal/options"
)

// Step transforms a manifest. The caller hands ownership of m to the step and
// continues with the returned value.
type Step func(ctx context.Context, m *manifest.Manifest) (*manifest.Manifest, error)

// AuthorSource supplies the default author name. It returns "" when no
// identity is configured.
type AuthorSource interface {
	AuthorName(ctx context.Context) string
}

// Notifier receives one line per dependency batch being added.
type Notifier interface {
	Step(msg string)
}

// Builder assembles the manifest for a set of options.
type Builder struct {
	Applier  DependencyApplier
	Identity AuthorSource
	Notify   Notifier
}

// Build runs every step against a fresh manifest in fixed order.
func (b *Builder) Build(ctx context.Context, opts *options.Options) (*manifest.Manifest, error) {
	if b.Applier == nil {
		return nil, fmt.Errorf("pipeline: no dependency applier configured")
	}
	return Run(ctx, manifest.New(), b.Steps(opts)...)
}

// Steps returns the ordered steps for opts.
func (b *Builder) Steps(opts *options.Options) []Step {
	return []Step{
		b.AddTooling(),
		b.ApplyReactPreset(opts),
		b.ApplyExtras(opts),
		SetLicense(opts),
		b.SetIdentity(opts),
	}
}

// Run threads m through steps, stopping at the first error.
func Run(ctx context.Context, m *manifest.Manifest, steps ...Step) (*manifest.Manifest, error) {
	var err error
	for _, step := range steps {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		m, err = step(ctx, m)
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// AddTooling adds the development toolchain every project gets.
func (b *Builder) AddTooling() Step {
	return func(ctx context.Context, m *manifest.Manifest) (*manifest.Manifest, error) {
		return b.apply(ctx, m, manifest.Dev, ToolingDevDependencies())
	}
}

// ApplyReactPreset adds the React dependencies and bundler scripts. It is a
// no-op unless opts.React is set.
func (b *Builder) ApplyReactPreset(opts *options.Options) Step {
	return func(ctx context.Context, m *manifest.Manifest) (*manifest.Manifest, error) {
		if !opts.React {
			return m, nil
		}
		m, err := b.apply(ctx, m, manifest.Runtime, ReactDependencies(opts.Mobx))
		if err != nil {
			return nil, err
		}
		m, err = b.apply(ctx, m, manifest.Dev, ReactDevDependencies(opts.Parcel))
		if err != nil {
			return nil, err
		}
		m.MergeScripts(BundlerScripts(opts.Parcel))
		return m, nil
	}
}

// ApplyExtras adds the caller's extra dependencies, then dev dependencies.
func (b *Builder) ApplyExtras(opts *options.Options) Step {
	return func(ctx context.Context, m *manifest.Manifest) (*manifest.Manifest, error) {
		var err error
		if len(opts.Dependencies) > 0 {
			if m, err = b.apply(ctx, m, manifest.Runtime, opts.Dependencies); err != nil {
				return nil, err
			}
		}
		if len(opts.DevDependencies) > 0 {
			if m, err = b.apply(ctx, m, manifest.Dev, opts.DevDependencies); err != nil {
				return nil, err
			}
		}
		return m, nil
	}
}

// SetLicense records the chosen license identifier.
func SetLicense(opts *options.Options) Step {
	return func(_ context.Context, m *manifest.Manifest) (*manifest.Manifest, error) {
		m.License = string(opts.License)
		return m, nil
	}
}

// SetIdentity records the project name and author. A configured author
// takes precedence over the identity source.
func (b *Builder) SetIdentity(opts *options.Options) Step {
	return func(ctx context.Context, m *manifest.Manifest) (*manifest.Manifest, error) {
		m.Name = opts.ProjectName
		switch {
		case opts.Author != "":
			m.Author = opts.Author
		case b.Identity != nil:
			m.Author = b.Identity.AuthorName(ctx)
		default:
			m.Author = ""
		}
		return m, nil
	}
}

func (b *Builder) apply(ctx context.Context, m *manifest.Manifest, kind manifest.Kind, specs []string) (*manifest.Manifest, error) {
	if b.Notify != nil {
		b.Notify.Step(fmt.Sprintf("Adding %s to %s", strings.Join(specs, ", "), kind))
	}
	m, err := b.Applier.Apply(ctx, m, kind, specs)
	if err != nil {
		return nil, fmt.Errorf("adding %s: %w", kind, err)
	}
	return m, nil
}

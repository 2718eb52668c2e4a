package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/agentx-labs/tsinit/internal/config"
	"github.com/agentx-labs/tsinit/internal/identity"
	"github.com/agentx-labs/tsinit/internal/npm"
	"github.com/agentx-labs/tsinit/internal/options"
	"github.com/agentx-labs/tsinit/internal/scaffold"
	"github.com/agentx-labs/tsinit/internal/ui"
	"github.com/spf13/cobra"
)

// scaffoldFlags holds the values bound to the root command's flags.
type scaffoldFlags struct {
	react   bool
	parcel  bool
	mobx    bool
	es      string
	module  string
	deps    []string
	devDeps []string
	license licenseValue
	dryRun  bool
	npm     string
}

var rootFlags scaffoldFlags

func registerScaffoldFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVarP(&rootFlags.react, "react", "r", false, "Add the React preset")
	f.BoolVarP(&rootFlags.parcel, "parcel", "p", false, "Bundle with parcel instead of webpack")
	f.BoolVarP(&rootFlags.mobx, "mobx", "m", false, "Use mobx instead of redux for state")
	f.StringVar(&rootFlags.es, "es", "", "ECMA target for the compiler (default ES2015)")
	f.StringVar(&rootFlags.module, "module", "", "Module format: commonjs or es2015 (React forces es2015)")
	f.StringArrayVarP(&rootFlags.deps, "dep", "d", nil, "Extra dependency; comma-separated, repeatable")
	f.StringArrayVar(&rootFlags.devDeps, "dev-dep", nil, "Extra dev dependency; comma-separated, repeatable")
	f.VarP(&rootFlags.license, "license", "l", "License: "+strings.Join(options.LicenseChoices, ", ")+" (default Apache-2.0)")
	f.BoolVar(&rootFlags.dryRun, "dry-run", false, "Print what would be generated without writing or installing")
	f.StringVar(&rootFlags.npm, "npm", "", "Path to the npm binary")
	cmd.Args = cobra.ArbitraryArgs
}

// licenseValue is a pflag.Value that rejects unknown licenses at parse time.
type licenseValue struct {
	value string
}

func (l *licenseValue) String() string { return l.value }

func (l *licenseValue) Set(s string) error {
	if !options.ValidLicenseChoice(s) {
		return fmt.Errorf("must be one of %s", strings.Join(options.LicenseChoices, ", "))
	}
	l.value = s
	return nil
}

func (l *licenseValue) Type() string { return "license" }

func runRoot(cmd *cobra.Command, args []string) error {
	defaults := config.Current()
	raw := rootFlags.raw(args, defaults)

	opts, err := options.Resolve(raw)
	if err != nil {
		return err
	}

	npmPath := firstNonEmpty(rootFlags.npm, defaults.NPM)
	return runScaffold(cmd.Context(), opts, npmPath, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// raw merges flag values over config defaults.
func (f *scaffoldFlags) raw(args []string, defaults config.Defaults) options.Raw {
	return options.Raw{
		Args:            args,
		Dependencies:    f.deps,
		DevDependencies: f.devDeps,
		React:           f.react,
		Parcel:          f.parcel,
		Mobx:            f.mobx,
		ES:              firstNonEmpty(f.es, defaults.ES),
		Module:          firstNonEmpty(f.module, defaults.Module),
		DryRun:          f.dryRun,
		License:         firstNonEmpty(f.license.value, defaults.License),
		Author:          defaults.Author,
	}
}

// runScaffold wires the npm runner, identity lookup and printer into a
// scaffolder and runs it for opts.
func runScaffold(ctx context.Context, opts *options.Options, npmPath string, stdout, stderr io.Writer) error {
	logger := slog.Default()
	printer := ui.New(stdout)

	runner := &npm.ExecRunner{Binary: npmPath, Stderr: stderr}
	if opts.DryRun {
		warnDryRunSupport(ctx, runner, printer)
	}

	s := &scaffold.Scaffolder{
		Runner:   runner,
		Identity: &identity.Resolver{Logger: logger},
		Notify:   printer,
		Out:      stdout,
		Logger:   logger,
	}
	result, err := s.Run(ctx, opts)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		printer.Warn(w)
	}
	if result.DryRun {
		printer.Success(fmt.Sprintf("Dry run complete; nothing was written for %s", opts.ProjectName))
		return nil
	}
	printer.Success(fmt.Sprintf("Created %s", result.ProjectDir))
	for _, f := range result.Files {
		printer.Muted(f)
	}
	return nil
}

// warnDryRunSupport prints a warning when the npm version cannot report
// dry-run versions. Failures to query npm are only logged; the install
// itself reports a missing binary.
func warnDryRunSupport(ctx context.Context, runner *npm.ExecRunner, printer *ui.Printer) {
	version, err := runner.Version(ctx)
	if err != nil {
		slog.Debug("could not query npm version", "error", err)
		return
	}
	warning, err := npm.CheckVersion(version)
	if err != nil {
		slog.Debug("unrecognised npm version", "version", version, "error", err)
		return
	}
	if warning != "" {
		printer.Warn(warning)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

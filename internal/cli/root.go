package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/agentx-labs/tsinit/internal/branding"
	"github.com/agentx-labs/tsinit/internal/config"
	"github.com/agentx-labs/tsinit/internal/ui"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " <name>",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates a TypeScript project directory: package.json with the
tooling installed through npm, tsconfig.json, .gitignore and a LICENSE file.
With --react it also adds a React preset bundled by webpack or parcel.

Defaults for --license, --es, --module and --npm, and the package author,
can be stored with '` + branding.CLIName() + ` config set'.`,
	Example: `  ` + branding.CLIName() + ` demo
  ` + branding.CLIName() + ` -r -p demo2
  ` + branding.CLIName() + ` --es ES2017 -d lodash,moment --dev-dep @types/lodash lib
  ` + branding.CLIName() + ` -r --dry-run preview`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd.ErrOrStderr(), verbose)
		config.Load()
	},
	RunE: runRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	registerScaffoldFlags(rootCmd)
}

// setupLogging installs the process-wide slog handler on w.
func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// Execute runs the root command with build info injected via ldflags. Fatal
// errors are printed to stderr before being returned.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		ui.New(os.Stderr).Error(fmt.Sprintf("%s: %v", branding.CLIName(), err))
	}
	return err
}

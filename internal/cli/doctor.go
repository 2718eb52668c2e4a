package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/agentx-labs/tsinit/internal/config"
	"github.com/agentx-labs/tsinit/internal/identity"
	"github.com/agentx-labs/tsinit/internal/manifest"
	"github.com/agentx-labs/tsinit/internal/npm"
	"github.com/spf13/cobra"
)

var checkProject string

func init() {
	doctorCmd.Flags().StringVar(&checkProject, "check-project", "", "Validate package.json and tsconfig.json in the given project directory")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment used for scaffolding",
	Long: `Run diagnostic checks: required binaries, npm version, git identity and
the config file. With --check-project, validate an existing project's
package.json and tsconfig.json instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if checkProject != "" {
			return runProjectCheck(out, checkProject)
		}
		runAllChecks(cmd.Context(), out)
		return nil
	},
}

func runAllChecks(ctx context.Context, w io.Writer) {
	defaults := config.Current()

	fmt.Fprintln(w, "Runtime check:")
	npmBinary := firstNonEmpty(defaults.NPM, npm.DefaultBinary)
	checkBinary(w, npmBinary)
	checkBinary(w, "node")
	checkBinary(w, "git")

	fmt.Fprintln(w, "npm check:")
	runNPMCheck(ctx, w, npmBinary)

	fmt.Fprintln(w, "Identity check:")
	switch {
	case defaults.Author != "":
		fmt.Fprintf(w, "  [ OK ] author from config: %s\n", defaults.Author)
	default:
		if name := (&identity.Resolver{}).AuthorName(ctx); name != "" {
			fmt.Fprintf(w, "  [ OK ] author from git: %s\n", name)
		} else {
			fmt.Fprintln(w, "  [WARN] no author; set git user.name or run 'config set author <name>'")
		}
	}

	fmt.Fprintln(w, "Config check:")
	path := config.FilePath()
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(w, "  [INFO] no config file at %s\n", path)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s\n", path)
}

func checkBinary(w io.Writer, name string) {
	path, err := exec.LookPath(name)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] %s not found\n", name)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s found at %s\n", name, path)
}

func runNPMCheck(ctx context.Context, w io.Writer, binary string) {
	version, err := (&npm.ExecRunner{Binary: binary}).Version(ctx)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return
	}
	warning, err := npm.CheckVersion(version)
	switch {
	case err != nil:
		fmt.Fprintf(w, "  [WARN] %v\n", err)
	case warning != "":
		fmt.Fprintf(w, "  [WARN] %s\n", warning)
	default:
		fmt.Fprintf(w, "  [ OK ] npm %s\n", version)
	}
}

// runProjectCheck validates the generated documents of a project directory.
func runProjectCheck(w io.Writer, dir string) error {
	fmt.Fprintf(w, "Project validation: %s\n", dir)

	docs := []struct {
		doc  manifest.Document
		name string
	}{
		{manifest.PackageDocument, manifest.FileName},
		{manifest.TSConfigDocument, manifest.TSConfigFileName},
	}

	failed := 0
	for _, d := range docs {
		path := filepath.Join(dir, d.name)
		result, err := manifest.ValidateFile(d.doc, path)
		if err != nil {
			fmt.Fprintf(w, "  [FAIL] %v\n", err)
			failed++
			continue
		}
		if result.Valid {
			fmt.Fprintf(w, "  [ OK ] %s\n", d.name)
			continue
		}
		failed++
		fmt.Fprintf(w, "  [FAIL] %s: %d validation issue(s):\n", d.name, len(result.Issues))
		for _, issue := range result.Issues {
			fmt.Fprintf(w, "    - %s\n", issue)
		}
	}

	if failed > 0 {
		return fmt.Errorf("project %s failed validation (%d of %d files)", dir, failed, len(docs))
	}
	return nil
}

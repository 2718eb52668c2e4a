package cli

import (
	"fmt"

	"github.com/agentx-labs/tsinit/internal/branding"
	"github.com/agentx-labs/tsinit/internal/config"
	"github.com/agentx-labs/tsinit/internal/options"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage scaffolding defaults",
	Long: `Read and write defaults stored at ~/` + branding.HomeDir() + `/config.yaml.
Environment variables prefixed with ` + branding.EnvPrefix() + `_ override the file.

Keys: license, es, module, npm, author.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := validateConfigValue(key, value); err != nil {
			return err
		}
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !config.IsKey(args[0]) {
			return fmt.Errorf("unknown config key %q (valid keys: %v)", args[0], config.Keys)
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every configuration value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, key := range config.Keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, config.Get(key))
		}
		return nil
	},
}

// validateConfigValue applies the flag parsing rules to a default before it
// is persisted.
func validateConfigValue(key, value string) error {
	var err error
	switch key {
	case config.KeyLicense:
		_, err = options.ParseLicense(value)
	case config.KeyES:
		_, err = options.ParseTarget(value)
	case config.KeyModule:
		_, err = options.ParseModule(value)
	}
	return err
}

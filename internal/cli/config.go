package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tkarabela/ofxbundle/internal/config"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write defaults stored at ~/.ofxbundle/config.yaml.

Every key can also be set for one run with an OFXBUNDLE_<KEY> environment
variable, e.g. OFXBUNDLE_OUTPUT_DIR=dist.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if !config.IsKnownKey(key) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %q is not used by any command (see '%s list')\n", key, cmd.Parent().CommandPath())
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
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the keys the build command reads",
	RunE: func(cmd *cobra.Command, args []string) error {
		var rows [][]string
		for _, kv := range config.KnownKeys() {
			rows = append(rows, []string{kv[0], config.Get(kv[0]), kv[1]})
		}
		return renderTable(cmd.OutOrStdout(), []string{"Key", "Value", "Description"}, rows)
	},
}

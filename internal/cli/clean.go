package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tkarabela/ofxbundle/internal/bundle"
)

var cleanPlatform string

func init() {
	cleanCmd.Flags().StringVar(&cleanPlatform, "platform", "", "Remove only this architecture directory")
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean <bundle-dir>",
	Short: "Remove a bundle or one platform from it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bundle.Remove(args[0], cleanPlatform); err != nil {
			return err
		}
		if cleanPlatform != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", cleanPlatform, args[0])
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		}
		return nil
	},
}

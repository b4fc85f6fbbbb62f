package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tkarabela/ofxbundle/internal/inspect"
)

func init() {
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify <bundle-dir>",
	Short: "Check a bundle against the OFX layout",
	Long:  `Run layout checks on a bundle. Exits non-zero when any check fails.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		dir := args[0]
		fmt.Fprintf(out, "Bundle verification: %s\n", dir)

		r, issues := inspect.Verify(dir)
		for _, issue := range issues {
			tag := "[WARN]"
			if issue.Severity == inspect.SeverityError {
				tag = "[FAIL]"
			}
			fmt.Fprintf(out, "  %s %s\n", tag, issue.Message)
		}

		if inspect.HasErrors(issues) {
			return fmt.Errorf("bundle %s has %d issue(s)", dir, len(issues))
		}
		if r != nil {
			for _, p := range r.Platforms() {
				fmt.Fprintf(out, "  [ OK ] %s\n", p)
			}
		}
		return nil
	},
}

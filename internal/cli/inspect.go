package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tkarabela/ofxbundle/internal/inspect"
)

var inspectJSON bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <bundle-dir>",
	Short: "Show the manifest and binaries of a bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := inspect.Load(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if inspectJSON {
			return printJSON(out, r)
		}

		fmt.Fprintf(out, "Bundle: %s\n", r.BundleDir)
		if r.Info != nil {
			fmt.Fprintf(out, "Executable: %s\n", r.Info.Executable)
			if r.Info.Identifier != "" {
				fmt.Fprintf(out, "Identifier: %s\n", r.Info.Identifier)
			}
			if r.Info.ShortVersion != "" {
				fmt.Fprintf(out, "Version: %s\n", r.Info.ShortVersion)
			}
			fmt.Fprintf(out, "Bundle version: %s\n", r.Info.Version)
		} else {
			fmt.Fprintf(out, "Info.plist: %s\n", r.InfoErr)
		}
		fmt.Fprintln(out)

		var rows [][]string
		for _, b := range r.Binaries {
			size, mode := "-", "-"
			if b.Present {
				size = fmt.Sprintf("%d", b.Size)
				mode = b.Mode.String()
			}
			known := "yes"
			if !b.Known {
				known = "no"
			}
			rows = append(rows, []string{b.Platform, known, size, mode})
		}
		if err := renderTable(out, []string{"Platform", "Known", "Size", "Mode"}, rows); err != nil {
			return err
		}

		if len(r.Resources) > 0 {
			fmt.Fprintf(out, "\nResources:\n  %s\n", strings.Join(r.Resources, "\n  "))
		}
		return nil
	},
}

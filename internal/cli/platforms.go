package cli

import (
	"github.com/spf13/cobra"
	"github.com/tkarabela/ofxbundle/internal/platform"
)

// platformTargets lists the GOOS/GOARCH pairs shown by the platforms command.
var platformTargets = [][2]string{
	{"darwin", "amd64"},
	{"darwin", "arm64"},
	{"linux", "386"},
	{"linux", "amd64"},
	{"windows", "386"},
	{"windows", "amd64"},
}

func init() {
	rootCmd.AddCommand(platformsCmd)
}

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List OFX architecture directories",
	RunE: func(cmd *cobra.Command, args []string) error {
		current, _ := platform.Current()

		var rows [][]string
		for _, dir := range platform.Known() {
			var targets string
			for _, t := range platformTargets {
				if d, err := platform.ForGOOS(t[0], t[1]); err == nil && d == dir {
					if targets != "" {
						targets += ", "
					}
					targets += t[0] + "/" + t[1]
				}
			}
			marker := ""
			if dir == current {
				marker = "*"
			}
			rows = append(rows, []string{marker, dir, targets})
		}
		return renderTable(cmd.OutOrStdout(), []string{"", "Directory", "Targets"}, rows)
	},
}

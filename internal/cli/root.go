package cli

import (
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tkarabela/ofxbundle/internal/branding"
	"github.com/tkarabela/ofxbundle/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` stages a compiled OpenFX plugin into the <name>.ofx.bundle
directory layout that OFX hosts scan, and writes the Contents/Info.plist manifest.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd.ErrOrStderr(), verbose)
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

// setupLogging installs the default slog logger. OFXBUNDLE_DEBUG=1 has the
// same effect as --verbose.
func setupLogging(w io.Writer, debug bool) {
	if v, err := strconv.ParseBool(os.Getenv(branding.EnvVar("DEBUG"))); err == nil && v {
		debug = true
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

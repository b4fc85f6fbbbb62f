package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/tkarabela/ofxbundle/internal/bundle"
	"github.com/tkarabela/ofxbundle/internal/watch"
)

var (
	wf            buildFlags
	watchDebounce time.Duration
)

func init() {
	addBuildFlags(watchCmd, &wf)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period after a change before rebuilding")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <plugin-file>",
	Short: "Rebuild the bundle whenever the plugin file changes",
	Long: `Build once, then rebuild each time the compiled plugin is rewritten.
Stop with Ctrl-C. Accepts the same flags as build.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]
		opts, err := resolveBuildOptions(&wf, source)
		if err != nil {
			return err
		}

		res, err := bundle.Build(cmd.Context(), opts)
		if err != nil {
			return err
		}
		printBuildResult(cmd, res)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		w, err := watch.New(watch.Config{
			Path:     source,
			Debounce: watchDebounce,
			OnChange: func(ctx context.Context) error {
				res, err := bundle.Build(ctx, opts)
				if err != nil {
					return err
				}
				printBuildResult(cmd, res)
				return nil
			},
			Logger: slog.Default(),
		})
		if err != nil {
			return err
		}
		return w.Run(ctx)
	},
}

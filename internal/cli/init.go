package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"
	"github.com/tkarabela/ofxbundle/internal/branding"
	"github.com/tkarabela/ofxbundle/internal/scaffold"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

var (
	initName       string
	initIdentifier string
	initLabel      string
	initOutputDir  string
	initDir        string
)

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "Bundle name (default: name of the target directory)")
	initCmd.Flags().StringVar(&initIdentifier, "identifier", "", "CFBundleIdentifier, e.g. com.example.myPlugin")
	initCmd.Flags().StringVar(&initLabel, "label", "", "CFBundleName shown by hosts")
	initCmd.Flags().StringVar(&initOutputDir, "output-dir", "", "Directory that receives built bundles")
	initCmd.Flags().StringVar(&initDir, "dir", ".", "Directory to write "+branding.ProjectFile()+" into")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a " + branding.ProjectFile() + " project file",
	Long: `Write a starter ` + branding.ProjectFile() + ` so later builds only need the plugin path.

Examples:
  ofxbundle init --name lic --identifier com.github.tkarabela.licPlugin
  ofxbundle init --dir plugins/lic --output-dir dist`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := filepath.Abs(initDir)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", initDir, err)
		}

		name := initName
		if name == "" {
			name = filepath.Base(dir)
		}
		if err := validateName(name); err != nil {
			return err
		}

		data := scaffold.NewData(name, initIdentifier)
		data.Label = initLabel
		data.OutputDir = initOutputDir

		result, err := scaffold.Generate(dir, data)
		if err != nil {
			if errors.Is(err, scaffold.ErrExists) {
				return fmt.Errorf("%w (remove it or pick another --dir)", err)
			}
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created %s\n", result.Path)
		for _, w := range result.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "  warning: %s\n", w)
		}

		if _, err := os.Stat(filepath.Join(dir, "resources")); err == nil {
			fmt.Fprintln(out, "  found resources/; uncomment the resources section to bundle it")
		}
		return nil
	},
}

func validateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid name %q: must match pattern [A-Za-z0-9][A-Za-z0-9_.-]*", name)
	}
	return nil
}

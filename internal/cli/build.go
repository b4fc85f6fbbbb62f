package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tkarabela/ofxbundle/internal/branding"
	"github.com/tkarabela/ofxbundle/internal/bundle"
	"github.com/tkarabela/ofxbundle/internal/config"
	"github.com/tkarabela/ofxbundle/internal/infoplist"
	"github.com/tkarabela/ofxbundle/internal/project"
)

// buildFlags are shared by build and watch.
type buildFlags struct {
	name          string
	outputDir     string
	platform      string
	identifier    string
	version       string
	bundleVersion string
	label         string
	resources     []string
	projectFile   string
	noProject     bool
}

var bf buildFlags

func addBuildFlags(cmd *cobra.Command, f *buildFlags) {
	cmd.Flags().StringVar(&f.name, "name", "", "Bundle name (default: project name or plugin file stem)")
	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "o", "", "Directory that receives the bundle (default: next to the plugin file)")
	cmd.Flags().StringVar(&f.platform, "platform", "", "Architecture directory, e.g. Linux-x86-64, Win64, MacOS (default: host)")
	cmd.Flags().StringVar(&f.identifier, "identifier", "", "CFBundleIdentifier, e.g. com.example.myPlugin")
	cmd.Flags().StringVar(&f.version, "version", "", "Plugin version (semver), written as CFBundleShortVersionString")
	cmd.Flags().StringVar(&f.bundleVersion, "bundle-version", "", "CFBundleVersion (default: "+infoplist.DefaultBundleVersion+")")
	cmd.Flags().StringVar(&f.label, "label", "", "CFBundleName shown by hosts")
	cmd.Flags().StringArrayVar(&f.resources, "resource", nil, "Glob of files to copy into Contents/Resources (repeatable)")
	cmd.Flags().StringVar(&f.projectFile, "project", "", "Path to "+branding.ProjectFile()+" (default: search cwd, then the plugin's directory)")
	cmd.Flags().BoolVar(&f.noProject, "no-project", false, "Ignore "+branding.ProjectFile())
}

func init() {
	addBuildFlags(buildCmd, &bf)
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build <plugin-file>",
	Short: "Stage a compiled plugin into an .ofx.bundle",
	Long: `Copy a compiled OFX plugin into <name>.ofx.bundle/Contents/<arch>/<name>.ofx
and write Contents/Info.plist.

Values come from flags first, then ` + branding.ProjectFile() + `, then user config.

Examples:
  ofxbundle build build/lic.ofx
  ofxbundle build build/liblic.so --name lic --platform Linux-x86-64 -o dist`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveBuildOptions(&bf, args[0])
		if err != nil {
			return err
		}

		res, err := bundle.Build(cmd.Context(), opts)
		if err != nil {
			return err
		}
		printBuildResult(cmd, res)
		return nil
	},
}

// resolveBuildOptions merges flags, the project file, and user config.
func resolveBuildOptions(f *buildFlags, source string) (bundle.Options, error) {
	p, err := loadProject(f, source)
	if err != nil {
		return bundle.Options{}, err
	}

	opts := bundle.Options{
		Source:    source,
		Name:      first(f.name, p.Name),
		OutputDir: first(f.outputDir, p.ResolvePath(p.OutputDir), config.Get(config.KeyOutputDir)),
		Platform:  first(f.platform, p.Platform, config.Get(config.KeyPlatform)),
		Resources: append(append([]string(nil), f.resources...), p.ResourcePatterns()...),
		Logger:    slog.Default(),
	}

	name := opts.Name
	if name == "" {
		name = bundle.NameFromSource(source)
	}
	info := infoplist.Default(name)
	info.Identifier = first(f.identifier, p.Identifier, config.Get(config.KeyIdentifier))
	info.Name = first(f.label, p.Label)
	info.Version = first(f.bundleVersion, p.BundleVersion, config.Get(config.KeyBundleVersion), info.Version)

	short, err := project.ShortVersion(first(f.version, p.Version))
	if err != nil {
		return bundle.Options{}, err
	}
	info.ShortVersion = short
	opts.Info = &info

	return opts, nil
}

// loadProject finds and loads the project file. It returns an empty project
// when none applies.
func loadProject(f *buildFlags, source string) (*project.Project, error) {
	if f.noProject {
		return &project.Project{}, nil
	}

	path := f.projectFile
	if path == "" {
		if cwd, err := os.Getwd(); err == nil {
			path = project.Find(cwd)
		}
	}
	if path == "" {
		path = project.Find(filepath.Dir(source))
	}
	if path == "" {
		return &project.Project{}, nil
	}

	p, err := project.Load(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded project file", "path", path, "name", p.Name)
	return p, nil
}

func printBuildResult(cmd *cobra.Command, res *bundle.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Bundled %s for %s\n", res.Name, res.Platform)
	fmt.Fprintf(out, "  binary:    %s\n", res.Layout.Binary)
	fmt.Fprintf(out, "  manifest:  %s\n", res.Layout.InfoPlist)
	if len(res.Resources) > 0 {
		fmt.Fprintf(out, "  resources: %d file(s) in %s\n", len(res.Resources), res.Layout.ResourcesDir)
	}
}

// first returns the first non-empty value.
func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

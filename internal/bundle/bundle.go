package bundle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tkarabela/ofxbundle/internal/infoplist"
	"github.com/tkarabela/ofxbundle/internal/platform"
)

// ErrSourceMissing is returned when the plugin file to bundle does not exist.
var ErrSourceMissing = errors.New("plugin binary not found")

// Options configure one Build.
type Options struct {
	// Source is the compiled plugin file. Required.
	Source string
	// Name is the bundle base name. Defaults to NameFromSource(Source).
	Name string
	// OutputDir receives the bundle. Defaults to the directory of Source.
	OutputDir string
	// Platform is the architecture directory. Defaults to the running host.
	Platform string
	// Info is written to Contents/Info.plist. Nil means infoplist.Default.
	// CFBundleExecutable is always forced to match the staged binary.
	Info *infoplist.Info
	// Resources are glob patterns copied into Contents/Resources.
	Resources []string
	// Logger receives progress at debug level. Nil uses slog.Default().
	Logger *slog.Logger
}

// Result describes a finished build.
type Result struct {
	Layout    *Layout
	Name      string
	Platform  string
	Info      infoplist.Info
	Bytes     int64
	Created   []string // directories created by this build
	Resources []string // paths below Contents/Resources
}

// Resolve fills in defaults and validates opts without touching the output
// tree. It returns the layout Build would use.
func Resolve(opts Options) (Options, *Layout, error) {
	if opts.Source == "" {
		return opts, nil, fmt.Errorf("%w: no source given", ErrSourceMissing)
	}

	info, err := os.Stat(opts.Source)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return opts, nil, fmt.Errorf("%w: %s", ErrSourceMissing, opts.Source)
		}
		return opts, nil, fmt.Errorf("stat %s: %w", opts.Source, err)
	}
	if info.IsDir() {
		return opts, nil, fmt.Errorf("plugin source %s is a directory", opts.Source)
	}

	if opts.Name == "" {
		opts.Name = NameFromSource(opts.Source)
	}
	if opts.Name == "" {
		return opts, nil, fmt.Errorf("cannot derive a bundle name from %s", opts.Source)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = filepath.Dir(opts.Source)
	}

	arch, err := platform.Resolve(opts.Platform)
	if err != nil {
		return opts, nil, err
	}
	opts.Platform = arch

	if opts.Info == nil {
		def := infoplist.Default(opts.Name)
		opts.Info = &def
	} else {
		merged := *opts.Info
		merged.Executable = opts.Name + infoplist.BinaryExt
		opts.Info = &merged
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return opts, Plan(opts.OutputDir, opts.Name, opts.Platform), nil
}

// Build stages the plugin binary and writes Info.plist.
func Build(ctx context.Context, opts Options) (*Result, error) {
	opts, layout, err := Resolve(opts)
	if err != nil {
		return nil, err
	}
	log := opts.Logger.With("bundle", layout.BundleDir)

	res := &Result{
		Layout:   layout,
		Name:     opts.Name,
		Platform: opts.Platform,
		Info:     *opts.Info,
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", opts.OutputDir, err)
	}

	for _, dir := range []string{layout.BundleDir, layout.ContentsDir, layout.ArchDir} {
		created, err := ensureDir(dir)
		if err != nil {
			return nil, err
		}
		if created {
			log.Debug("created directory", "path", dir)
			res.Created = append(res.Created, dir)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if sameFile(opts.Source, layout.Binary) {
		log.Debug("source is already the staged binary", "path", layout.Binary)
	} else {
		n, err := copyFile(opts.Source, layout.Binary)
		if err != nil {
			return nil, fmt.Errorf("copying %s to %s: %w", opts.Source, layout.Binary, err)
		}
		res.Bytes = n
		log.Debug("copied plugin binary", "src", opts.Source, "dst", layout.Binary, "bytes", n)
	}
	if err := platform.EnsureReadable(layout.Binary); err != nil {
		return nil, err
	}

	if err := infoplist.Write(layout.InfoPlist, *opts.Info); err != nil {
		return nil, err
	}
	log.Debug("wrote manifest", "path", layout.InfoPlist)

	if len(opts.Resources) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		files, err := expandResources(opts.Resources)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if err := copyInto(layout.ResourcesDir, filepath.FromSlash(f.Rel), f.Src); err != nil {
				return nil, err
			}
			res.Resources = append(res.Resources, f.Rel)
		}
		log.Debug("copied resources", "count", len(files))
	}

	log.Debug("bundle built", "platform", opts.Platform, "binary", layout.Binary)
	return res, nil
}

// Remove deletes one platform's arch directory from a bundle, or the whole
// bundle when arch is empty. arch must be a plain directory name inside
// Contents; Resources is not an arch directory.
func Remove(bundleDir, arch string) error {
	if NameFromBundle(bundleDir) == "" {
		return fmt.Errorf("%s is not an OFX bundle (expected *%s)", bundleDir, BundleExt)
	}

	target := bundleDir
	if arch != "" {
		if arch == "." || arch == ".." || filepath.Base(arch) != arch || arch == ResourcesDir {
			return fmt.Errorf("%q is not an architecture directory name", arch)
		}
		target = filepath.Join(bundleDir, ContentsDir, arch)
	}

	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s is not present: %w", target, err)
		}
		return fmt.Errorf("stat %s: %w", target, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", target)
	}

	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("removing %s: %w", target, err)
	}
	return nil
}

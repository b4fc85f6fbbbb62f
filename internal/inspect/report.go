package inspect

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/tkarabela/ofxbundle/internal/bundle"
	"github.com/tkarabela/ofxbundle/internal/infoplist"
	"github.com/tkarabela/ofxbundle/internal/platform"
)

// Binary is one architecture directory inside Contents.
type Binary struct {
	Platform string      `json:"platform"`
	Known    bool        `json:"known"`
	Path     string      `json:"path"`
	Present  bool        `json:"present"`
	Size     int64       `json:"size"`
	Mode     fs.FileMode `json:"mode"`
}

// Report describes a bundle on disk.
type Report struct {
	BundleDir string          `json:"bundle_dir"`
	Name      string          `json:"name"`
	Info      *infoplist.Info `json:"info,omitempty"`
	InfoErr   string          `json:"info_error,omitempty"`
	Binaries  []Binary        `json:"binaries"`
	Resources []string        `json:"resources,omitempty"`
}

// Load reads bundleDir and describes its contents. A missing or unreadable
// Info.plist is recorded in InfoErr rather than failing the load; a missing
// Contents directory is an error.
func Load(bundleDir string) (*Report, error) {
	contents := filepath.Join(bundleDir, bundle.ContentsDir)
	info, err := os.Stat(contents)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s has no %s directory", bundleDir, bundle.ContentsDir)
		}
		return nil, fmt.Errorf("stat %s: %w", contents, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", contents)
	}

	r := &Report{
		BundleDir: bundleDir,
		Name:      bundle.NameFromBundle(bundleDir),
	}

	plist, err := infoplist.Read(filepath.Join(contents, bundle.InfoPlistFile))
	if err != nil {
		r.InfoErr = err.Error()
	} else {
		r.Info = plist
	}

	executable := r.Name + infoplist.BinaryExt
	if r.Info != nil && r.Info.Executable != "" {
		executable = r.Info.Executable
	}

	entries, err := os.ReadDir(contents)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", contents, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == bundle.ResourcesDir {
			continue
		}
		b := Binary{
			Platform: entry.Name(),
			Known:    platform.IsKnown(entry.Name()),
			Path:     filepath.Join(contents, entry.Name(), executable),
		}
		if fi, err := os.Stat(b.Path); err == nil && fi.Mode().IsRegular() {
			b.Present = true
			b.Size = fi.Size()
			b.Mode = fi.Mode().Perm()
		}
		r.Binaries = append(r.Binaries, b)
	}
	sort.Slice(r.Binaries, func(i, j int) bool { return r.Binaries[i].Platform < r.Binaries[j].Platform })

	resources, err := listResources(filepath.Join(contents, bundle.ResourcesDir))
	if err != nil {
		return nil, err
	}
	r.Resources = resources

	return r, nil
}

// Platforms returns the architecture directories that hold the executable.
func (r *Report) Platforms() []string {
	var out []string
	for _, b := range r.Binaries {
		if b.Present {
			out = append(out, b.Platform)
		}
	}
	return out
}

// listResources returns slash-separated paths of files below dir.
func listResources(dir string) ([]string, error) {
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			out = append(out, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(out)
	return out, nil
}

package bundle

import (
	"path/filepath"
	"strings"

	"github.com/tkarabela/ofxbundle/internal/infoplist"
)

// Directory and file names fixed by the OFX bundle layout.
const (
	BundleExt     = ".ofx.bundle"
	ContentsDir   = "Contents"
	ResourcesDir  = "Resources"
	InfoPlistFile = "Info.plist"
)

// libraryExts are stripped from a source file name when deriving a bundle name.
var libraryExts = []string{".ofx", ".so", ".dll", ".dylib"}

// Layout holds the paths of one bundle build.
type Layout struct {
	BundleDir    string
	ContentsDir  string
	ArchDir      string
	Binary       string
	InfoPlist    string
	ResourcesDir string
}

// Plan computes the layout for a bundle called name under outputDir for the
// given architecture directory. It touches nothing on disk.
func Plan(outputDir, name, arch string) *Layout {
	bundleDir := filepath.Join(outputDir, name+BundleExt)
	contents := filepath.Join(bundleDir, ContentsDir)
	archDir := filepath.Join(contents, arch)
	return &Layout{
		BundleDir:    bundleDir,
		ContentsDir:  contents,
		ArchDir:      archDir,
		Binary:       filepath.Join(archDir, name+infoplist.BinaryExt),
		InfoPlist:    filepath.Join(contents, InfoPlistFile),
		ResourcesDir: filepath.Join(contents, ResourcesDir),
	}
}

// NameFromSource derives a bundle name from the plugin file name by dropping
// its library extension, e.g. "build/lic.ofx" → "lic", "liblic.so" → "liblic".
func NameFromSource(source string) string {
	base := filepath.Base(source)
	for _, ext := range libraryExts {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// NameFromBundle returns the bundle name for a path ending in ".ofx.bundle",
// or "" when the path does not name a bundle.
func NameFromBundle(bundleDir string) string {
	base := filepath.Base(filepath.Clean(bundleDir))
	if !strings.HasSuffix(base, BundleExt) || len(base) == len(BundleExt) {
		return ""
	}
	return strings.TrimSuffix(base, BundleExt)
}

package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// excludedNames are never copied into Contents/Resources.
var excludedNames = map[string]bool{
	".git":      true,
	".DS_Store": true,
	"Thumbs.db": true,
}

// resourceFile is one file matched by a resource glob.
type resourceFile struct {
	Src string // absolute or cwd-relative source path
	Rel string // slash-separated path below Contents/Resources
}

// expandResources resolves the glob patterns to regular files. Each match is
// placed under Resources at its path relative to the pattern's static prefix,
// so "presets/**/*.xml" keeps the sub-directories below presets/.
// A pattern that matches nothing is an error.
func expandResources(patterns []string) ([]resourceFile, error) {
	seen := make(map[string]bool)
	var files []resourceFile

	for _, pattern := range patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("resource pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("resource pattern %q matched no files", pattern)
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			rel, err := filepath.Rel(filepath.FromSlash(base), match)
			if err != nil || rel == "." {
				rel = filepath.Base(match)
			}
			rel = filepath.ToSlash(rel)
			if excluded(rel) {
				continue
			}
			if seen[rel] {
				continue
			}
			seen[rel] = true
			files = append(files, resourceFile{Src: match, Rel: rel})
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Rel < files[j].Rel })
	return files, nil
}

// excluded reports whether any element of the slash-separated rel path is an
// excluded name, so files inside a .git directory are skipped too.
func excluded(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if excludedNames[part] {
			return true
		}
	}
	return false
}

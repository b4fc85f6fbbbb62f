package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/tkarabela/ofxbundle/internal/branding"
	"github.com/tkarabela/ofxbundle/internal/platform"
	"go.yaml.in/yaml/v3"
)

// ErrInvalid is returned by Load when the file fails schema validation.
var ErrInvalid = errors.New("invalid project file")

// InvalidError carries the schema issues that made a project file invalid.
type InvalidError struct {
	Path   string
	Issues []ValidationIssue
}

func (e *InvalidError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msgs = append(msgs, issue.String())
	}
	return fmt.Sprintf("%s: %d validation issue(s): %s", e.Path, len(e.Issues), strings.Join(msgs, "; "))
}

func (e *InvalidError) Unwrap() error { return ErrInvalid }

// Parse unmarshals project YAML without schema validation.
func Parse(data []byte) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project: %w", err)
	}
	return &p, nil
}

// Load reads path, validates it against the schema, and runs Check.
func Load(path string) (*Project, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return nil, &InvalidError{Path: path, Issues: result.Issues}
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolving directory of %s: %w", path, err)
	}
	p.Dir = abs

	if err := p.Check(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Find returns the project file path in dir, or "" when there is none.
func Find(dir string) string {
	path := filepath.Join(dir, branding.ProjectFile())
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return path
	}
	return ""
}

// Check runs the semantic checks the schema cannot express.
func (p *Project) Check() error {
	if p.Version != "" {
		if _, err := ParseVersion(p.Version); err != nil {
			return fmt.Errorf("version %q is not semver: %w", p.Version, err)
		}
	}
	if p.Platform != "" && !platform.IsKnown(p.Platform) {
		return fmt.Errorf("%w: %q", platform.ErrUnsupportedPlatform, p.Platform)
	}
	return nil
}

// ResolvePath resolves a project-relative path against the project directory.
func (p *Project) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) || p.Dir == "" {
		return path
	}
	return filepath.Join(p.Dir, path)
}

// ResourcePatterns returns the resource globs resolved against Dir.
func (p *Project) ResourcePatterns() []string {
	out := make([]string, 0, len(p.Resources))
	for _, r := range p.Resources {
		out = append(out, p.ResolvePath(r))
	}
	return out
}

// ParseVersion strips a leading "v" and parses the version string as semver.
func ParseVersion(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}

// ShortVersion returns the normalized "major.minor.patch" form used for
// CFBundleShortVersionString. Empty input yields an empty string.
func ShortVersion(version string) (string, error) {
	if version == "" {
		return "", nil
	}
	v, err := ParseVersion(version)
	if err != nil {
		return "", fmt.Errorf("parsing version %q: %w", version, err)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch()), nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}

package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/tkarabela/ofxbundle/internal/branding"
	"github.com/tkarabela/ofxbundle/internal/infoplist"
	"github.com/tkarabela/ofxbundle/internal/project"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const projectTemplate = "templates/ofxbundle.yaml.tmpl"

// ErrExists is returned when the target directory already has a project file.
var ErrExists = errors.New("project file already exists")

// Data holds the template variables.
type Data struct {
	Name          string // e.g., "lic"
	Identifier    string // e.g., "com.github.tkarabela.licPlugin"
	Label         string // e.g., "LIC"
	Version       string // semver, e.g., "0.1.0"
	BundleVersion string // CFBundleVersion
	OutputDir     string // optional
	Year          int
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	Path     string
	Warnings []string
}

// NewData creates Data with defaults filled in.
func NewData(name, identifier string) *Data {
	return &Data{
		Name:          name,
		Identifier:    identifier,
		Version:       "0.1.0",
		BundleVersion: infoplist.DefaultBundleVersion,
		Year:          time.Now().Year(),
	}
}

// Generate writes the project file into dir.
func Generate(dir string, data *Data) (*Result, error) {
	path := filepath.Join(dir, branding.ProjectFile())
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, path)
	}

	tmplBytes, err := templateFS.ReadFile(projectTemplate)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", projectTemplate, err)
	}
	tmpl, err := template.New(filepath.Base(projectTemplate)).Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", projectTemplate, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", projectTemplate, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	result := &Result{Path: path}

	valResult, valErr := project.Validate(buf.Bytes())
	if valErr != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not validate project file: %v", valErr))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			result.Warnings = append(result.Warnings, issue.String())
		}
	}

	return result, nil
}

package project

// Project holds the settings read from ofxbundle.yaml.
type Project struct {
	Name          string   `yaml:"name" json:"name"`
	Identifier    string   `yaml:"identifier,omitempty" json:"identifier,omitempty"`
	Label         string   `yaml:"label,omitempty" json:"label,omitempty"`
	Version       string   `yaml:"version,omitempty" json:"version,omitempty"`
	BundleVersion string   `yaml:"bundle_version,omitempty" json:"bundle_version,omitempty"`
	OutputDir     string   `yaml:"output_dir,omitempty" json:"output_dir,omitempty"`
	Platform      string   `yaml:"platform,omitempty" json:"platform,omitempty"`
	Resources     []string `yaml:"resources,omitempty" json:"resources,omitempty"`

	// Dir is the directory the file was loaded from. Relative output_dir and
	// resources entries are resolved against it.
	Dir string `yaml:"-" json:"-"`
}

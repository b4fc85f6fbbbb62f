package project

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/project.schema.json
var projectSchemaJSON []byte

// schemaURL is the resource name the embedded schema is registered under.
const schemaURL = "project.schema.json"

var (
	loadSchema = sync.OnceValues(compileProjectSchema)
	msgPrinter = message.NewPrinter(language.English)
)

// ValidationResult is the outcome of checking a project file against the schema.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one schema violation.
type ValidationIssue struct {
	Path    string // JSON pointer into the document, "" for the root
	Message string
	Keyword string // failing schema keyword, e.g. "pattern"
}

func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

func compileProjectSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(projectSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("reading embedded schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("registering schema: %w", err)
	}
	sch, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return sch, nil
}

// Validate checks a YAML project document against the embedded schema.
// Violations land in the result; the error covers unreadable YAML only.
func Validate(data []byte) (*ValidationResult, error) {
	sch, err := loadSchema()
	if err != nil {
		return nil, err
	}

	inst, err := yamlToInstance(data)
	if err != nil {
		return nil, err
	}

	err = sch.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("validating project: %w", err)
	}
	return &ValidationResult{Issues: issuesFrom(ve)}, nil
}

// ValidateFile is Validate on the contents of path.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

// yamlToInstance decodes YAML into the JSON value model the validator expects.
// An empty document is treated as {} so "required" reports the missing name.
func yamlToInstance(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting YAML to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(js))
	if err != nil {
		return nil, fmt.Errorf("decoding JSON instance: %w", err)
	}
	return inst, nil
}

// issuesFrom flattens the error tree into its leaves, skipping structural
// keywords and repeated entries.
func issuesFrom(root *jsonschema.ValidationError) []ValidationIssue {
	var out []ValidationIssue
	seen := map[ValidationIssue]bool{}

	var walk func(*jsonschema.ValidationError)
	walk = func(ve *jsonschema.ValidationError) {
		for _, c := range ve.Causes {
			walk(c)
		}
		if len(ve.Causes) > 0 || ve.ErrorKind == nil {
			return
		}
		kw := ve.ErrorKind.KeywordPath()
		if len(kw) == 0 {
			return
		}
		issue := ValidationIssue{
			Message: ve.ErrorKind.LocalizedString(msgPrinter),
			Keyword: kw[len(kw)-1],
		}
		switch issue.Keyword {
		case "$ref", "allOf":
			return
		}
		if len(ve.InstanceLocation) > 0 {
			issue.Path = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		if !seen[issue] {
			seen[issue] = true
			out = append(out, issue)
		}
	}
	walk(root)

	if len(out) == 0 {
		out = append(out, ValidationIssue{Message: root.Error()})
	}
	return out
}

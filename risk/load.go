package risk

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed risklist.yaml
var defaultList []byte

//go:embed risklist.schema.json
var listSchema string

const (
	listSchemaURL = "https://scanext.schemas.local/risklist.schema.json"

	// supportedSchema bounds the schema_version values this loader accepts.
	supportedSchema = "^1"
)

// ErrInvalidList is returned when a risk list document fails validation.
var ErrInvalidList = errors.New("invalid risk list")

// ListDocument is the on-disk form of a risk list.
type ListDocument struct {
	SchemaVersion string            `yaml:"schema_version" json:"schema_version"`
	Permissions   map[string]string `yaml:"permissions" json:"permissions"`
}

// loaderConfig holds configuration for the Loader.
type loaderConfig struct {
	path string
}

// LoaderOption configures a Loader instance.
type LoaderOption func(*loaderConfig)

// WithPath points the loader at a risk list file instead of the embedded
// default. An empty path leaves the default in place.
func WithPath(path string) LoaderOption {
	return func(c *loaderConfig) {
		if path != "" {
			c.path = path
		}
	}
}

// Loader reads and validates risk list documents.
type Loader struct {
	config loaderConfig
}

// NewLoader creates a Loader with the given options.
func NewLoader(opts ...LoaderOption) *Loader {
	cfg := loaderConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Loader{config: cfg}
}

// Path returns the configured list file, or "" for the embedded default.
func (l *Loader) Path() string {
	return l.config.path
}

// Load reads the configured risk list, validates it against the list schema,
// checks its schema_version, and returns the resulting table. Any failure
// here means no usable risk list exists and the scan must not proceed.
func (l *Loader) Load() (*Table, error) {
	data := defaultList
	if l.config.path != "" {
		var err error
		data, err = os.ReadFile(l.config.path)
		if err != nil {
			return nil, fmt.Errorf("reading risk list %q: %w", l.config.path, err)
		}
	}
	return Parse(data)
}

// Parse validates and decodes a risk list document.
func Parse(data []byte) (*Table, error) {
	if err := validateListDocument(data); err != nil {
		return nil, err
	}

	var doc ListDocument
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidList, err)
	}

	if err := checkSchemaVersion(doc.SchemaVersion); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidList, err)
	}

	return newTable(doc.SchemaVersion, doc.Permissions), nil
}

// Default returns the table built from the embedded risk list.
func Default() (*Table, error) {
	return Parse(defaultList)
}

// ListSchemaJSON returns the JSON Schema risk list documents are validated
// against.
func ListSchemaJSON() string {
	return listSchema
}

// validateListDocument checks the raw document against the list JSON Schema.
func validateListDocument(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidList, err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(listSchemaURL, strings.NewReader(listSchema)); err != nil {
		return fmt.Errorf("loading risk list schema: %w", err)
	}
	schema, err := compiler.Compile(listSchemaURL)
	if err != nil {
		return fmt.Errorf("compiling risk list schema: %w", err)
	}

	if err := schema.Validate(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidList, err)
	}
	return nil
}

// checkSchemaVersion verifies the document's schema_version is one this
// loader understands.
func checkSchemaVersion(version string) error {
	ver, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid schema_version %q: %w", version, err)
	}

	constraint, err := semver.NewConstraint(supportedSchema)
	if err != nil {
		return fmt.Errorf("parsing schema_version constraint: %w", err)
	}

	if !constraint.Check(ver) {
		return fmt.Errorf("unsupported schema_version %q (supported: %s)", version, supportedSchema)
	}
	return nil
}

package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/zbalkan/scan-browser-extensions/extension"
	"github.com/zbalkan/scan-browser-extensions/risk"
)

// Document kinds served by the default schema registry.
const (
	KindReport    = "report"
	KindExtension = "extension"
	KindRiskList  = "risklist"
)

// SchemaRegistry manages the JSON Schemas describing the documents this
// tool reads and writes.
type SchemaRegistry struct {
	schemas   map[string]string
	mu        sync.RWMutex
	reflector *jsonschema.Reflector
}

// NewSchemaRegistry creates a new, empty schema registry.
func NewSchemaRegistry() *SchemaRegistry {
	r := &SchemaRegistry{
		schemas:   make(map[string]string),
		reflector: new(jsonschema.Reflector),
	}
	r.reflector.ExpandedStruct = true
	return r
}

// Register adds a schema for a document kind. model is either a raw JSON
// Schema (string or bytes) or a Go value to reflect a schema from.
func (r *SchemaRegistry) Register(kind string, model any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[kind]; exists {
		return fmt.Errorf("document kind already registered: %s", kind)
	}

	var schemaStr string
	switch v := model.(type) {
	case string:
		schemaStr = v
	case []byte:
		schemaStr = string(v)
	default:
		s := r.reflector.Reflect(model)
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling generated schema: %w", err)
		}
		schemaStr = string(b)
	}

	r.schemas[kind] = schemaStr
	return nil
}

// Schema retrieves the JSON Schema for a document kind.
func (r *SchemaRegistry) Schema(kind string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[kind]
	return s, ok
}

// Kinds returns all registered document kinds, sorted.
func (r *SchemaRegistry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.schemas))
	for k := range r.schemas {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// DefaultSchemaRegistry describes the run report envelope, the normalized
// extension record, and the risk list document.
func DefaultSchemaRegistry() (*SchemaRegistry, error) {
	r := NewSchemaRegistry()
	if err := r.Register(KindReport, &Envelope{}); err != nil {
		return nil, err
	}
	if err := r.Register(KindExtension, &extension.Record{}); err != nil {
		return nil, err
	}
	if err := r.Register(KindRiskList, risk.ListSchemaJSON()); err != nil {
		return nil, err
	}
	return r, nil
}

// Package risk provides the permission risk list and the classifier that
// matches extension permissions against it. The list maps permission
// identifiers to human-readable risk descriptions; a match is binary, there
// is no severity scale.
package risk

import (
	"sort"

	"github.com/zbalkan/scan-browser-extensions/extension"
)

// Entry is one permission in the risk list.
type Entry struct {
	Permission  string `json:"permission"`
	Description string `json:"description"`
}

// Table is an immutable, loaded risk list. Lookups are exact and
// case-sensitive, matching the casing browsers use in their manifests.
type Table struct {
	version string
	entries map[string]string
}

// newTable copies the given entries so later mutation of the source map
// cannot affect the table.
func newTable(version string, entries map[string]string) *Table {
	copied := make(map[string]string, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return &Table{version: version, entries: copied}
}

// Version returns the schema_version the list was loaded with.
func (t *Table) Version() string {
	return t.version
}

// Len returns the number of permissions in the list.
func (t *Table) Len() int {
	return len(t.entries)
}

// Description looks up the risk description for a permission identifier.
func (t *Table) Description(permission string) (string, bool) {
	desc, ok := t.entries[permission]
	return desc, ok
}

// Entries returns all entries sorted by permission identifier.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for p, d := range t.entries {
		out = append(out, Entry{Permission: p, Description: d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Permission < out[j].Permission })
	return out
}

// Document returns the list in its serializable document form.
func (t *Table) Document() ListDocument {
	perms := make(map[string]string, len(t.entries))
	for k, v := range t.entries {
		perms[k] = v
	}
	return ListDocument{SchemaVersion: t.version, Permissions: perms}
}

// Classify returns a copy of rec with RiskFlags recomputed from its
// permissions. For each declared permission, in declaration order, an exact
// table match appends one flag. The input record is not mutated and
// reclassifying the result yields the same flags.
func (t *Table) Classify(rec extension.Record) extension.Record {
	flags := make([]extension.RiskFlag, 0, len(rec.Permissions))
	for _, p := range rec.Permissions {
		if desc, ok := t.entries[p]; ok {
			flags = append(flags, extension.RiskFlag{Permission: p, Description: desc})
		}
	}
	rec.RiskFlags = flags
	return rec
}

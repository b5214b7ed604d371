package extension

import (
	"fmt"
	"time"
)

// RiskFlag pairs a declared permission with the human-readable risk
// description it matched in the risk list.
type RiskFlag struct {
	Permission  string `json:"permission"`
	Description string `json:"description"`
}

// Record is one installed extension, normalized across browsers.
//
// Permissions holds the extension's required permission identifiers,
// deduplicated and in declaration order. RiskFlags is derived from
// Permissions by classification and is empty until that step runs;
// nothing else writes it. Optional permissions are informational only
// and never contribute flags.
type Record struct {
	Browser     Browser `json:"browser"`
	Profile     string  `json:"profile"`
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Version     string  `json:"version"`
	Type        string  `json:"type,omitempty"`
	Description string  `json:"description,omitempty"`
	Author      string  `json:"author,omitempty"`
	HomepageURL string  `json:"homepage_url,omitempty"`
	Enabled     bool    `json:"enabled"`
	Path        string  `json:"path,omitempty"`

	InstalledAt time.Time `json:"installed_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`

	Permissions         []string `json:"permissions"`
	OptionalPermissions []string `json:"optional_permissions,omitempty"`
	HostPermissions     []string `json:"host_permissions,omitempty"`

	RiskFlags []RiskFlag `json:"risk_flags"`
}

// Validate checks the minimal identity a record must carry to be reported.
func (r Record) Validate() error {
	if !r.Browser.Valid() {
		return fmt.Errorf("invalid browser %q", string(r.Browser))
	}
	if r.ID == "" && r.Name == "" {
		return fmt.Errorf("extension has neither id nor name")
	}
	return nil
}

// Flagged reports whether classification attached at least one risk flag.
func (r Record) Flagged() bool {
	return len(r.RiskFlags) > 0
}

// DedupPermissions removes duplicates and empty entries from a permission
// list while preserving first-occurrence order.
func DedupPermissions(perms []string) []string {
	if len(perms) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(perms))
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zbalkan/scan-browser-extensions/browser"
	"github.com/zbalkan/scan-browser-extensions/extension"
)

// addonsIndex mirrors the slice of a Firefox extensions.json file the
// reader consumes. Install and update dates are Unix milliseconds.
type addonsIndex struct {
	Addons []firefoxAddon `json:"addons"`
}

type firefoxAddon struct {
	ID            string `json:"id"`
	Version       string `json:"version"`
	Type          string `json:"type"`
	Active        bool   `json:"active"`
	Path          string `json:"path"`
	InstallDate   int64  `json:"installDate"`
	UpdateDate    int64  `json:"updateDate"`
	DefaultLocale struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Creator     string `json:"creator"`
		HomepageURL string `json:"homepageURL"`
	} `json:"defaultLocale"`
	UserPermissions     *firefoxPermissions `json:"userPermissions"`
	OptionalPermissions *firefoxPermissions `json:"optionalPermissions"`
}

type firefoxPermissions struct {
	Permissions []string `json:"permissions"`
	Origins     []string `json:"origins"`
}

// FirefoxReader reads the extensions.json index Firefox keeps in each
// profile directory.
type FirefoxReader struct{}

var _ Reader = (*FirefoxReader)(nil)

// NewFirefoxReader creates a reader for Firefox profiles.
func NewFirefoxReader() *FirefoxReader {
	return &FirefoxReader{}
}

// Read parses the profile's add-on index. A profile without the index is
// skipped silently; a malformed index produces a single warning.
func (fr *FirefoxReader) Read(profile browser.ProfileDir) ([]extension.Record, []Warning) {
	indexPath := filepath.Join(profile.Dir, "extensions.json")

	data, err := os.ReadFile(indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, []Warning{{Browser: profile.Browser, Path: indexPath, Reason: err.Error()}}
	}

	var index addonsIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, []Warning{{
			Browser: profile.Browser,
			Path:    indexPath,
			Reason:  fmt.Sprintf("parsing add-on index: %v", err),
		}}
	}

	var (
		records  []extension.Record
		warnings []Warning
	)
	for _, addon := range index.Addons {
		rec := addon.record(profile)
		if err := rec.Validate(); err != nil {
			warnings = append(warnings, Warning{
				Browser: profile.Browser,
				Path:    indexPath,
				Reason:  fmt.Sprintf("skipping add-on entry: %v", err),
			})
			continue
		}
		records = append(records, rec)
	}
	return records, warnings
}

func (a firefoxAddon) record(profile browser.ProfileDir) extension.Record {
	rec := extension.Record{
		Browser:     profile.Browser,
		Profile:     profile.Name,
		ID:          a.ID,
		Name:        a.DefaultLocale.Name,
		Version:     a.Version,
		Type:        a.Type,
		Description: a.DefaultLocale.Description,
		Author:      a.DefaultLocale.Creator,
		HomepageURL: a.DefaultLocale.HomepageURL,
		Enabled:     a.Active,
		Path:        a.Path,
	}
	if rec.Name == "" {
		rec.Name = a.ID
	}
	if a.InstallDate > 0 {
		rec.InstalledAt = time.UnixMilli(a.InstallDate).UTC()
	}
	if a.UpdateDate > 0 {
		rec.UpdatedAt = time.UnixMilli(a.UpdateDate).UTC()
	}
	if a.UserPermissions != nil {
		rec.Permissions = extension.DedupPermissions(a.UserPermissions.Permissions)
		rec.HostPermissions = extension.DedupPermissions(a.UserPermissions.Origins)
	}
	if a.OptionalPermissions != nil {
		rec.OptionalPermissions = extension.DedupPermissions(a.OptionalPermissions.Permissions)
	}
	return rec
}

package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/zbalkan/scan-browser-extensions/browser"
	"github.com/zbalkan/scan-browser-extensions/extension"
)

// chromeManifest mirrors the fields of a Chromium manifest.json the reader
// consumes. Permission arrays may hold non-string entries; those are not
// permission identifiers and are ignored.
type chromeManifest struct {
	Name                string          `json:"name"`
	Version             string          `json:"version"`
	Description         string          `json:"description"`
	DefaultLocale       string          `json:"default_locale"`
	HomepageURL         string          `json:"homepage_url"`
	Author              json.RawMessage `json:"author"`
	Permissions         []any           `json:"permissions"`
	OptionalPermissions []any           `json:"optional_permissions"`
	HostPermissions     []any           `json:"host_permissions"`
}

type versionCandidate struct {
	dir      string
	manifest string
}

// ChromiumReader walks a profile's Extensions tree, reading one
// manifest.json per installed extension. When an extension ships several
// version directories the highest one wins. Chrome and Edge share this
// reader.
type ChromiumReader struct{}

var _ Reader = (*ChromiumReader)(nil)

// NewChromiumReader creates a reader for Chromium-based profiles.
func NewChromiumReader() *ChromiumReader {
	return &ChromiumReader{}
}

// Read enumerates the manifests below <profile>/Extensions. A profile
// without that directory is skipped silently.
func (cr *ChromiumReader) Read(profile browser.ProfileDir) ([]extension.Record, []Warning) {
	root := filepath.Join(profile.Dir, "Extensions")
	if _, err := os.Stat(root); err != nil {
		return nil, nil
	}

	pattern := filepath.ToSlash(root) + "/*/*/manifest.json"
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, []Warning{{
			Browser: profile.Browser,
			Path:    root,
			Reason:  fmt.Sprintf("globbing manifests: %v", err),
		}}
	}
	sort.Strings(matches)

	best := make(map[string]versionCandidate)
	var ids []string
	for _, match := range matches {
		rel, err := filepath.Rel(root, match)
		if err != nil {
			continue
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) != 3 {
			continue
		}
		id, versionDir := parts[0], parts[1]
		if id == "Temp" {
			continue
		}
		prev, seen := best[id]
		if !seen {
			ids = append(ids, id)
			best[id] = versionCandidate{dir: versionDir, manifest: match}
			continue
		}
		if compareVersionDirs(versionDir, prev.dir) > 0 {
			best[id] = versionCandidate{dir: versionDir, manifest: match}
		}
	}

	var (
		records  []extension.Record
		warnings []Warning
	)
	for _, id := range ids {
		rec, warn := cr.readManifest(profile, root, id, best[id])
		if warn != nil {
			warnings = append(warnings, *warn)
			continue
		}
		records = append(records, rec)
	}
	return records, warnings
}

func (cr *ChromiumReader) readManifest(profile browser.ProfileDir, root, id string, cand versionCandidate) (extension.Record, *Warning) {
	data, err := os.ReadFile(cand.manifest)
	if err != nil {
		return extension.Record{}, &Warning{Browser: profile.Browser, Path: cand.manifest, Reason: err.Error()}
	}

	var m chromeManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return extension.Record{}, &Warning{
			Browser: profile.Browser,
			Path:    cand.manifest,
			Reason:  fmt.Sprintf("parsing manifest: %v", err),
		}
	}

	versionDir := filepath.Join(root, id, cand.dir)

	name := m.Name
	if isMessageRef(name) {
		name = resolveMessage(versionDir, name, m.DefaultLocale)
	}
	if name == "" {
		name = id
	}

	description := m.Description
	if isMessageRef(description) {
		description = resolveMessage(versionDir, description, m.DefaultLocale)
	}

	version := m.Version
	if version == "" {
		version = cleanVersionDir(cand.dir)
	}

	rec := extension.Record{
		Browser:             profile.Browser,
		Profile:             profile.Name,
		ID:                  id,
		Name:                name,
		Version:             version,
		Type:                "extension",
		Description:         description,
		Author:              decodeAuthor(m.Author),
		HomepageURL:         m.HomepageURL,
		Enabled:             true,
		Path:                filepath.Join(root, id),
		Permissions:         extension.DedupPermissions(stringsOf(m.Permissions)),
		OptionalPermissions: extension.DedupPermissions(stringsOf(m.OptionalPermissions)),
		HostPermissions:     extension.DedupPermissions(stringsOf(m.HostPermissions)),
	}
	if info, err := os.Stat(versionDir); err == nil {
		rec.UpdatedAt = info.ModTime().UTC()
	}

	if err := rec.Validate(); err != nil {
		return extension.Record{}, &Warning{
			Browser: profile.Browser,
			Path:    cand.manifest,
			Reason:  fmt.Sprintf("skipping extension: %v", err),
		}
	}
	return rec, nil
}

// decodeAuthor accepts both manifest author shapes: a plain string or an
// object carrying an email field.
func decodeAuthor(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Email
	}
	return ""
}

func stringsOf(items []any) []string {
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// cleanVersionDir strips the trailing _N suffix Chromium appends to
// version directory names, turning "1.2.3_0" into "1.2.3".
func cleanVersionDir(dir string) string {
	if i := strings.LastIndex(dir, "_"); i > 0 {
		return dir[:i]
	}
	return dir
}

// compareVersionDirs orders Chromium version directory names. Segments
// compare numerically when both sides are numbers and lexically otherwise.
// Chromium versions may carry four segments, which rules out strict semver
// parsing here.
func compareVersionDirs(a, b string) int {
	as := strings.Split(cleanVersionDir(a), ".")
	bs := strings.Split(cleanVersionDir(b), ".")

	for i := 0; i < len(as) || i < len(bs); i++ {
		var sa, sb string
		if i < len(as) {
			sa = as[i]
		}
		if i < len(bs) {
			sb = bs[i]
		}

		na, errA := strconv.Atoi(sa)
		nb, errB := strconv.Atoi(sb)
		if errA == nil && errB == nil {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			}
			continue
		}
		if sa != sb {
			return strings.Compare(sa, sb)
		}
	}
	return 0
}

func isMessageRef(s string) bool {
	return strings.HasPrefix(s, "__MSG_") && strings.HasSuffix(s, "__")
}

type localeMessages map[string]struct {
	Message string `json:"message"`
}

// resolveMessage resolves a __MSG_key__ placeholder against the
// extension's _locales tree. Candidate locales are the declared default,
// the English variants, then whatever else ships. Keys match exactly
// first, lowercased second. An unresolved placeholder degrades to the
// bare key.
func resolveMessage(extDir, placeholder, defaultLocale string) string {
	key := strings.TrimSuffix(strings.TrimPrefix(placeholder, "__MSG_"), "__")
	localesDir := filepath.Join(extDir, "_locales")

	for _, locale := range localeCandidates(localesDir, defaultLocale) {
		messages, err := loadMessages(filepath.Join(localesDir, locale, "messages.json"))
		if err != nil {
			continue
		}
		if msg, ok := lookupMessage(messages, key); ok {
			return msg
		}
	}
	return key
}

func localeCandidates(localesDir, defaultLocale string) []string {
	seen := make(map[string]bool)
	var candidates []string
	add := func(locale string) {
		if locale == "" || seen[locale] {
			return
		}
		seen[locale] = true
		candidates = append(candidates, locale)
	}

	add(defaultLocale)
	add("en")
	add("en_US")
	add("en-US")

	entries, err := os.ReadDir(localesDir)
	if err != nil {
		return candidates
	}
	for _, entry := range entries {
		if entry.IsDir() {
			add(entry.Name())
		}
	}
	return candidates
}

func loadMessages(path string) (localeMessages, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var messages localeMessages
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func lookupMessage(messages localeMessages, key string) (string, bool) {
	if m, ok := messages[key]; ok && m.Message != "" {
		return m.Message, true
	}
	if m, ok := messages[strings.ToLower(key)]; ok && m.Message != "" {
		return m.Message, true
	}
	return "", false
}

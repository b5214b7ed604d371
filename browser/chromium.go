package browser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zbalkan/scan-browser-extensions/extension"
)

// localState mirrors the slice of a Chromium Local State file the resolver
// needs: the profile directory names and their display names.
type localState struct {
	Profile struct {
		InfoCache map[string]struct {
			Name string `json:"name"`
		} `json:"info_cache"`
	} `json:"profile"`
}

// chromiumProfiles discovers Chromium profiles under base. It prefers the
// Local State index and falls back to scanning for the conventional
// Default and "Profile N" directories.
func chromiumProfiles(b extension.Browser, base string) []ProfileDir {
	if !dirExists(base) {
		return nil
	}

	profiles := localStateProfiles(b, base)
	if len(profiles) == 0 {
		profiles = scanChromiumDirs(b, base)
	}
	return profiles
}

// localStateProfiles reads the profile index kept in the Local State file.
// An unreadable or malformed index yields nothing so the caller can fall
// back to a directory scan.
func localStateProfiles(b extension.Browser, base string) []ProfileDir {
	data, err := os.ReadFile(filepath.Join(base, "Local State"))
	if err != nil {
		return nil
	}

	var state localState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil
	}

	dirs := make([]string, 0, len(state.Profile.InfoCache))
	for dir := range state.Profile.InfoCache {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	var profiles []ProfileDir
	for _, dir := range dirs {
		full := filepath.Join(base, dir)
		if !dirExists(full) {
			continue
		}
		name := state.Profile.InfoCache[dir].Name
		if name == "" {
			name = dir
		}
		profiles = append(profiles, ProfileDir{Browser: b, Name: name, Dir: full})
	}
	return profiles
}

func scanChromiumDirs(b extension.Browser, base string) []ProfileDir {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil
	}

	var profiles []ProfileDir
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name != "Default" && !strings.HasPrefix(name, "Profile ") {
			continue
		}
		profiles = append(profiles, ProfileDir{Browser: b, Name: name, Dir: filepath.Join(base, name)})
	}
	return profiles
}

package browser

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/zbalkan/scan-browser-extensions/extension"
)

// firefoxProfiles discovers Firefox profiles under base. It prefers the
// entries declared in profiles.ini and falls back to scanning the profile
// directories when the index is absent or empty.
func firefoxProfiles(base string) []ProfileDir {
	if !dirExists(base) {
		return nil
	}

	profiles := parseProfilesINI(filepath.Join(base, "profiles.ini"), base)
	if len(profiles) == 0 {
		profiles = scanFirefoxDirs(base)
	}
	return profiles
}

// parseProfilesINI extracts the [Profile*] sections of a Firefox
// profiles.ini file. Path values use forward slashes and are relative to
// base unless IsRelative=0. Entries whose directory no longer exists are
// dropped.
func parseProfilesINI(path, base string) []ProfileDir {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	type profileSection struct {
		name     string
		path     string
		relative bool
	}

	var (
		profiles []ProfileDir
		current  *profileSection
	)

	flush := func() {
		defer func() { current = nil }()
		if current == nil || current.path == "" {
			return
		}
		dir := filepath.FromSlash(current.path)
		if current.relative {
			dir = filepath.Join(base, dir)
		}
		if !dirExists(dir) {
			return
		}
		name := current.name
		if name == "" {
			name = filepath.Base(dir)
		}
		profiles = append(profiles, ProfileDir{Browser: extension.Firefox, Name: name, Dir: dir})
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			flush()
			if strings.HasPrefix(line, "[Profile") {
				current = &profileSection{relative: true}
			}
		case current != nil:
			key, value, found := strings.Cut(line, "=")
			if !found {
				continue
			}
			switch strings.TrimSpace(key) {
			case "Name":
				current.name = strings.TrimSpace(value)
			case "Path":
				current.path = strings.TrimSpace(value)
			case "IsRelative":
				current.relative = strings.TrimSpace(value) != "0"
			}
		}
	}
	flush()

	return profiles
}

// scanFirefoxDirs lists profile directories directly: the Profiles
// subdirectory when present (Windows, macOS), the base directory otherwise
// (Linux keeps profiles next to profiles.ini).
func scanFirefoxDirs(base string) []ProfileDir {
	root := filepath.Join(base, "Profiles")
	if !dirExists(root) {
		root = base
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var profiles []ProfileDir
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		profiles = append(profiles, ProfileDir{
			Browser: extension.Firefox,
			Name:    entry.Name(),
			Dir:     filepath.Join(root, entry.Name()),
		})
	}
	return profiles
}

// Package browser resolves the per-user profile directories in which the
// supported browsers keep their installed extensions.
package browser

import (
	"path/filepath"

	"github.com/zbalkan/scan-browser-extensions/extension"
)

// pathSpec holds the well-known base directory of a browser's user data,
// relative to the user's home directory, per operating system.
type pathSpec struct {
	windows []string
	darwin  []string
	linux   []string
}

var baseDirs = map[extension.Browser]pathSpec{
	extension.Firefox: {
		windows: []string{"AppData", "Roaming", "Mozilla", "Firefox"},
		darwin:  []string{"Library", "Application Support", "Firefox"},
		linux:   []string{".mozilla", "firefox"},
	},
	extension.Chrome: {
		windows: []string{"AppData", "Local", "Google", "Chrome", "User Data"},
		darwin:  []string{"Library", "Application Support", "Google", "Chrome"},
		linux:   []string{".config", "google-chrome"},
	},
	extension.Edge: {
		windows: []string{"AppData", "Local", "Microsoft", "Edge", "User Data"},
		darwin:  []string{"Library", "Application Support", "Microsoft Edge"},
		linux:   []string{".config", "microsoft-edge"},
	},
}

// basePath returns the user-data directory for a browser on the given
// operating system. The second return value is false when the browser or
// the operating system is not supported.
func basePath(b extension.Browser, goos, home string) (string, bool) {
	spec, ok := baseDirs[b]
	if !ok {
		return "", false
	}

	var segments []string
	switch goos {
	case "windows":
		segments = spec.windows
	case "darwin":
		segments = spec.darwin
	case "linux":
		segments = spec.linux
	default:
		return "", false
	}

	return filepath.Join(append([]string{home}, segments...)...), true
}

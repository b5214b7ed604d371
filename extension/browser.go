// Package extension defines the domain model for installed browser
// extensions: the browsers that are inspected, the normalized extension
// record, and the risk flags attached to it by classification.
package extension

import (
	"errors"
	"fmt"
	"strings"
)

// Browser identifies a supported browser family.
type Browser string

const (
	Firefox Browser = "Firefox"
	Chrome  Browser = "Chrome"
	Edge    Browser = "Edge"
)

// ErrUnknownBrowser is returned when a browser name cannot be parsed.
var ErrUnknownBrowser = errors.New("unknown browser")

// AllBrowsers returns the supported browsers in scan order.
func AllBrowsers() []Browser {
	return []Browser{Firefox, Chrome, Edge}
}

// ParseBrowser converts a user-supplied name into a Browser.
// Matching is case-insensitive and accepts both short and vendor names.
func ParseBrowser(name string) (Browser, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "firefox", "mozilla firefox":
		return Firefox, nil
	case "chrome", "google chrome":
		return Chrome, nil
	case "edge", "microsoft edge":
		return Edge, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBrowser, name)
	}
}

// String returns the short browser name.
func (b Browser) String() string {
	return string(b)
}

// VendorName returns the full product name.
func (b Browser) VendorName() string {
	switch b {
	case Firefox:
		return "Mozilla Firefox"
	case Chrome:
		return "Google Chrome"
	case Edge:
		return "Microsoft Edge"
	default:
		return string(b)
	}
}

// Valid reports whether b is one of the supported browsers.
func (b Browser) Valid() bool {
	switch b {
	case Firefox, Chrome, Edge:
		return true
	}
	return false
}

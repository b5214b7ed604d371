// Package manifest reads installed-extension metadata out of browser
// profile directories and normalizes it into extension records. Firefox
// keeps a single per-profile index of add-ons while Chromium browsers keep
// one manifest per extension version directory; both converge on the same
// record shape. Readers tolerate absent files and skip malformed entries
// with a warning instead of failing the scan.
package manifest

import (
	"fmt"
	"sync"

	"github.com/zbalkan/scan-browser-extensions/browser"
	"github.com/zbalkan/scan-browser-extensions/extension"
)

// Warning records one manifest or index entry that could not be turned
// into a record. Warnings are reported, never fatal.
type Warning struct {
	Browser extension.Browser `json:"browser"`
	Path    string            `json:"path"`
	Reason  string            `json:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.Browser, w.Path, w.Reason)
}

// Reader parses the extension metadata of one profile directory.
// Implementations contain browser-specific logic for locating and decoding
// the on-disk manifest layout.
type Reader interface {
	// Read returns the normalized records of a profile along with warnings
	// for entries that had to be skipped. An absent extension store yields
	// empty results without a warning.
	Read(profile browser.ProfileDir) ([]extension.Record, []Warning)
}

// Registry manages the registration and retrieval of manifest readers.
type Registry struct {
	readers map[extension.Browser]Reader
	mu      sync.RWMutex
}

// NewRegistry creates a new, empty reader registry.
func NewRegistry() *Registry {
	return &Registry{
		readers: make(map[extension.Browser]Reader),
	}
}

// Register adds a reader for a specific browser.
func (r *Registry) Register(b extension.Browser, reader Reader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readers[b] = reader
}

// Get retrieves the reader for a given browser.
// Returns nil and false if no reader is registered.
func (r *Registry) Get(b extension.Browser) (Reader, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reader, ok := r.readers[b]
	return reader, ok
}

// DefaultRegistry returns a registry holding the built-in readers for all
// supported browsers. Chrome and Edge share the Chromium reader.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(extension.Firefox, NewFirefoxReader())

	chromium := NewChromiumReader()
	r.Register(extension.Chrome, chromium)
	r.Register(extension.Edge, chromium)
	return r
}

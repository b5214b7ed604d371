package browser

import (
	"fmt"
	"os"
	"runtime"

	"github.com/zbalkan/scan-browser-extensions/extension"
)

// ProfileDir identifies one browser profile and the directory holding its
// extension data.
type ProfileDir struct {
	Browser extension.Browser
	Name    string
	Dir     string
}

// resolverConfig holds configuration for the Resolver.
type resolverConfig struct {
	goos string
	home string
}

// ResolverOption configures a Resolver instance.
type ResolverOption func(*resolverConfig)

// WithOS overrides the operating system the resolver targets.
func WithOS(goos string) ResolverOption {
	return func(c *resolverConfig) {
		if goos != "" {
			c.goos = goos
		}
	}
}

// WithHome overrides the home directory whose profiles are inspected.
func WithHome(dir string) ResolverOption {
	return func(c *resolverConfig) {
		if dir != "" {
			c.home = dir
		}
	}
}

// Resolver locates browser profile directories for one user on one
// operating system.
type Resolver struct {
	goos string
	home string
}

// NewResolver creates a Resolver for the current user and operating system
// unless overridden through options.
func NewResolver(opts ...ResolverOption) (*Resolver, error) {
	cfg := resolverConfig{goos: runtime.GOOS}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving user home directory: %w", err)
		}
		cfg.home = home
	}
	return &Resolver{goos: cfg.goos, home: cfg.home}, nil
}

// Supported reports whether the resolver's operating system has known
// profile locations.
func (r *Resolver) Supported() bool {
	switch r.goos {
	case "windows", "darwin", "linux":
		return true
	}
	return false
}

// OS returns the operating system the resolver targets.
func (r *Resolver) OS() string { return r.goos }

// BasePath returns the user-data directory for a browser. The second
// return value is false when the browser has no known location on the
// resolver's operating system.
func (r *Resolver) BasePath(b extension.Browser) (string, bool) {
	return basePath(b, r.goos, r.home)
}

// Resolve returns the candidate profile directories for a browser. A
// browser that is not installed yields an empty result, never an error.
func (r *Resolver) Resolve(b extension.Browser) []ProfileDir {
	base, ok := r.BasePath(b)
	if !ok {
		return nil
	}

	switch b {
	case extension.Firefox:
		return firefoxProfiles(base)
	case extension.Chrome, extension.Edge:
		return chromiumProfiles(b, base)
	}
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zbalkan/scan-browser-extensions/browser"
	"github.com/zbalkan/scan-browser-extensions/extension"
	"github.com/zbalkan/scan-browser-extensions/manifest"
)

type stubReader struct{}

func (stubReader) Read(browser.ProfileDir) ([]extension.Record, []manifest.Warning) {
	return nil, nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := manifest.NewRegistry()

	_, ok := registry.Get(extension.Firefox)
	assert.False(t, ok)

	stub := stubReader{}
	registry.Register(extension.Firefox, stub)

	got, ok := registry.Get(extension.Firefox)
	require.True(t, ok)
	assert.Equal(t, stub, got)
}

func TestDefaultRegistry(t *testing.T) {
	registry := manifest.DefaultRegistry()

	for _, b := range extension.AllBrowsers() {
		reader, ok := registry.Get(b)
		require.True(t, ok, "missing reader for %s", b)
		require.NotNil(t, reader)
	}

	chrome, _ := registry.Get(extension.Chrome)
	edge, _ := registry.Get(extension.Edge)
	assert.Same(t, chrome, edge, "Chrome and Edge share the Chromium reader")
}

func TestWarning_String(t *testing.T) {
	w := manifest.Warning{
		Browser: extension.Chrome,
		Path:    "/tmp/manifest.json",
		Reason:  "parsing manifest: unexpected EOF",
	}

	assert.Equal(t, "Chrome: /tmp/manifest.json: parsing manifest: unexpected EOF", w.String())
}

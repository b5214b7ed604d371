package risk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zbalkan/scan-browser-extensions/extension"
	"github.com/zbalkan/scan-browser-extensions/risk"
)

func mustTable(t *testing.T, doc string) *risk.Table {
	t.Helper()
	table, err := risk.Parse([]byte(doc))
	require.NoError(t, err)
	return table
}

const sampleList = `
schema_version: "1.0.0"
permissions:
  tabs: "can read all open tabs"
  "<all_urls>": "can access all websites"
  cookies: "can read and modify browser cookies"
`

func TestTable_Classify(t *testing.T) {
	table := mustTable(t, sampleList)

	tests := []struct {
		name        string
		permissions []string
		want        []extension.RiskFlag
	}{
		{
			name:        "matching and non-matching permissions",
			permissions: []string{"tabs", "storage"},
			want: []extension.RiskFlag{
				{Permission: "tabs", Description: "can read all open tabs"},
			},
		},
		{
			name:        "flags follow declaration order",
			permissions: []string{"cookies", "tabs"},
			want: []extension.RiskFlag{
				{Permission: "cookies", Description: "can read and modify browser cookies"},
				{Permission: "tabs", Description: "can read all open tabs"},
			},
		},
		{
			name:        "origin-style identifier matches as plain key",
			permissions: []string{"storage", "<all_urls>"},
			want: []extension.RiskFlag{
				{Permission: "<all_urls>", Description: "can access all websites"},
			},
		},
		{
			name:        "empty permissions produce empty flags",
			permissions: nil,
			want:        []extension.RiskFlag{},
		},
		{
			name:        "matching is case sensitive",
			permissions: []string{"Tabs", "COOKIES"},
			want:        []extension.RiskFlag{},
		},
		{
			name:        "no partial matching",
			permissions: []string{"tab", "tabsextra"},
			want:        []extension.RiskFlag{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := extension.Record{
				Browser:     extension.Chrome,
				ID:          "test",
				Name:        "test",
				Permissions: tt.permissions,
			}
			got := table.Classify(rec)
			assert.Equal(t, tt.want, got.RiskFlags)
		})
	}
}

func TestTable_Classify_DoesNotMutateInput(t *testing.T) {
	table := mustTable(t, sampleList)
	rec := extension.Record{
		Browser:     extension.Firefox,
		ID:          "x@y",
		Permissions: []string{"tabs"},
	}

	got := table.Classify(rec)

	assert.Nil(t, rec.RiskFlags, "input record must stay untouched")
	assert.Len(t, got.RiskFlags, 1)
	assert.Equal(t, rec.Permissions, got.Permissions)
}

func TestTable_Classify_Idempotent(t *testing.T) {
	table := mustTable(t, sampleList)
	rec := extension.Record{
		Browser:     extension.Chrome,
		ID:          "abc",
		Permissions: []string{"tabs", "cookies", "storage"},
	}

	once := table.Classify(rec)
	twice := table.Classify(once)

	assert.Equal(t, once.RiskFlags, twice.RiskFlags)
}

func TestTable_Classify_LeavesOtherFieldsAlone(t *testing.T) {
	table := mustTable(t, sampleList)
	rec := extension.Record{
		Browser:         extension.Edge,
		Profile:         "Default",
		ID:              "abc",
		Name:            "Sample",
		Version:         "1.2.3",
		Enabled:         true,
		Permissions:     []string{"tabs"},
		HostPermissions: []string{"https://example.com/*"},
	}

	got := table.Classify(rec)
	got.RiskFlags = nil

	assert.Equal(t, rec, got)
}

func TestTable_Entries_Sorted(t *testing.T) {
	table := mustTable(t, sampleList)

	entries := table.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "<all_urls>", entries[0].Permission)
	assert.Equal(t, "cookies", entries[1].Permission)
	assert.Equal(t, "tabs", entries[2].Permission)
}

func TestTable_Accessors(t *testing.T) {
	table := mustTable(t, sampleList)

	assert.Equal(t, "1.0.0", table.Version())
	assert.Equal(t, 3, table.Len())

	desc, ok := table.Description("tabs")
	require.True(t, ok)
	assert.Equal(t, "can read all open tabs", desc)

	_, ok = table.Description("storage")
	assert.False(t, ok)

	doc := table.Document()
	assert.Equal(t, "1.0.0", doc.SchemaVersion)
	assert.Len(t, doc.Permissions, 3)
}

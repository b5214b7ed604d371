package report_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zbalkan/scan-browser-extensions/extension"
	"github.com/zbalkan/scan-browser-extensions/manifest"
	"github.com/zbalkan/scan-browser-extensions/report"
)

func sampleSections() []report.Section {
	return []report.Section{
		{
			Browser:  extension.Firefox,
			Profiles: []string{"default"},
			Extensions: []extension.Record{
				{
					Browser:     extension.Firefox,
					Profile:     "default",
					ID:          "ublock@example.com",
					Name:        "uBlock Origin",
					Version:     "1.52.2",
					Enabled:     true,
					Permissions: []string{"tabs", "storage"},
					RiskFlags: []extension.RiskFlag{
						{Permission: "tabs", Description: "can read all open tabs"},
					},
				},
				{
					Browser:     extension.Firefox,
					Profile:     "default",
					ID:          "notes@example.com",
					Name:        "Quiet Notes",
					Version:     "0.3",
					Enabled:     true,
					Permissions: []string{"storage"},
					RiskFlags:   []extension.RiskFlag{},
				},
			},
		},
		{
			Browser:    extension.Chrome,
			Extensions: nil,
		},
	}
}

func warningsFixture() []manifest.Warning {
	return []manifest.Warning{
		{Browser: extension.Edge, Path: "/tmp/manifest.json", Reason: "parsing manifest: unexpected EOF"},
	}
}

func TestNew(t *testing.T) {
	generated := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	rep := report.New(generated, "1.0.0", sampleSections(), warningsFixture())

	_, err := uuid.Parse(rep.RunID)
	require.NoError(t, err)
	assert.Equal(t, generated, rep.GeneratedAt)
	assert.Equal(t, "1.0.0", rep.RiskListVersion)
	assert.Equal(t, 2, rep.Totals.Extensions)
	assert.Equal(t, 1, rep.Totals.Flagged)
	assert.Len(t, rep.Warnings, 1)
}

func TestNew_FreshRunIDs(t *testing.T) {
	a := report.New(time.Now(), "1.0.0", nil, nil)
	b := report.New(time.Now(), "1.0.0", nil, nil)

	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestSection_Flagged(t *testing.T) {
	section := sampleSections()[0]

	flagged := section.Flagged()
	require.Len(t, flagged, 1)
	assert.Equal(t, "uBlock Origin", flagged[0].Name)

	empty := sampleSections()[1]
	assert.Empty(t, empty.Flagged())
}

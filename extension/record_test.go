package extension

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Record_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  Record
		wantErr bool
	}{
		{
			name:    "valid with id and name",
			record:  Record{Browser: Chrome, ID: "abcdef", Name: "uBlock Origin"},
			wantErr: false,
		},
		{
			name:    "valid with only id",
			record:  Record{Browser: Firefox, ID: "uBlock0@raymondhill.net"},
			wantErr: false,
		},
		{
			name:    "valid with only name",
			record:  Record{Browser: Edge, Name: "Dark Reader"},
			wantErr: false,
		},
		{
			name:    "missing both id and name",
			record:  Record{Browser: Chrome},
			wantErr: true,
		},
		{
			name:    "invalid browser",
			record:  Record{Browser: "Opera", ID: "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_Record_Flagged(t *testing.T) {
	unflagged := Record{Browser: Chrome, ID: "a", Permissions: []string{"storage"}}
	assert.False(t, unflagged.Flagged())

	flagged := unflagged
	flagged.RiskFlags = []RiskFlag{{Permission: "tabs", Description: "can read all open tabs"}}
	assert.True(t, flagged.Flagged())
}

func Test_DedupPermissions(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"nil", nil, nil},
		{"empty", []string{}, nil},
		{"no duplicates", []string{"tabs", "storage"}, []string{"tabs", "storage"}},
		{"duplicates keep first", []string{"tabs", "storage", "tabs"}, []string{"tabs", "storage"}},
		{"drops empty strings", []string{"", "tabs", ""}, []string{"tabs"}},
		{"only empty strings", []string{"", ""}, nil},
		{"case sensitive", []string{"Tabs", "tabs"}, []string{"Tabs", "tabs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DedupPermissions(tt.input))
		})
	}
}

func Test_Record_JSON_OmitsZeroTimes(t *testing.T) {
	rec := Record{Browser: Firefox, ID: "x@y", Name: "x", Permissions: []string{"tabs"}}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "installed_at")
	assert.NotContains(t, string(data), "updated_at")
	assert.Contains(t, string(data), `"browser":"Firefox"`)
}

package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zbalkan/scan-browser-extensions/extension"
	"github.com/zbalkan/scan-browser-extensions/report"
)

func viewerReport() *report.Report {
	sections := []report.Section{
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
					Permissions: []string{"tabs"},
					RiskFlags: []extension.RiskFlag{
						{Permission: "tabs", Description: "can read all open tabs"},
					},
				},
				{
					Browser:     extension.Firefox,
					Profile:     "default",
					ID:          "notes@example.com",
					Name:        "Quiet Notes",
					Version:     "0.3.1",
					Enabled:     true,
					Permissions: []string{"storage"},
					RiskFlags:   []extension.RiskFlag{},
				},
			},
		},
		{Browser: extension.Chrome},
	}
	return report.New(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), "1.0.0", sections, nil)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func Test_newModel_FlattensSections(t *testing.T) {
	m := newModel(viewerReport())

	require.Len(t, m.records, 2)
	assert.Equal(t, "uBlock Origin", m.records[0].Name)
	assert.Equal(t, "Quiet Notes", m.records[1].Name)
	assert.False(t, m.showDetail)
}

func Test_model_Update_QuitKeys(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		m := newModel(viewerReport())

		_, cmd := m.Update(key(k))

		require.NotNil(t, cmd, "key %q should quit", k)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func Test_model_Update_EnterOpensDetail(t *testing.T) {
	m := newModel(viewerReport())

	next, _ := m.Update(key("enter"))
	m = next.(model)

	require.True(t, m.showDetail)
	view := m.View()
	assert.Contains(t, view, "uBlock Origin")
	assert.Contains(t, view, "ublock@example.com")
	assert.Contains(t, view, "esc: back")
}

func Test_model_Update_EscClosesDetail(t *testing.T) {
	m := newModel(viewerReport())

	next, _ := m.Update(key("enter"))
	m = next.(model)
	require.True(t, m.showDetail)

	next, cmd := m.Update(key("esc"))
	m = next.(model)

	assert.False(t, m.showDetail)
	assert.Nil(t, cmd)
}

func Test_model_Update_EscAtTableQuits(t *testing.T) {
	m := newModel(viewerReport())

	_, cmd := m.Update(key("esc"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func Test_model_Update_EnterOnEmptyReportIsNoop(t *testing.T) {
	rep := report.New(time.Now(), "1.0.0", nil, nil)
	m := newModel(rep)

	next, _ := m.Update(key("enter"))
	m = next.(model)

	assert.False(t, m.showDetail)
}

func Test_model_View_ListsExtensions(t *testing.T) {
	m := newModel(viewerReport())

	view := m.View()

	assert.Contains(t, view, "2 scanned, 1 flagged")
	assert.Contains(t, view, "uBlock Origin")
	assert.Contains(t, view, "Quiet Notes")
	assert.Contains(t, view, "enter: details")
}

func Test_flagSummary(t *testing.T) {
	flagged := extension.Record{RiskFlags: []extension.RiskFlag{
		{Permission: "tabs", Description: "can read all open tabs"},
		{Permission: "<all_urls>", Description: "can access data on every site"},
	}}

	assert.Equal(t, "tabs, <all_urls>", flagSummary(flagged))
	assert.Equal(t, "-", flagSummary(extension.Record{}))
}

func Test_tableHeight(t *testing.T) {
	assert.Equal(t, 1, tableHeight(0))
	assert.Equal(t, 5, tableHeight(5))
	assert.Equal(t, 20, tableHeight(50))
}

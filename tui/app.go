package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zbalkan/scan-browser-extensions/extension"
	"github.com/zbalkan/scan-browser-extensions/report"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	footerStyle = lipgloss.NewStyle().Faint(true)
	detailStyle = lipgloss.NewStyle().Padding(0, 1)
)

// model drives the two screens of the viewer: the extension table and a
// JSON detail pane for the highlighted row.
type model struct {
	table   table.Model
	records []extension.Record
	rep     *report.Report

	showDetail bool
	selected   int
}

func newModel(rep *report.Report) model {
	var records []extension.Record
	var rows []table.Row
	for _, sec := range rep.Sections {
		for _, rec := range sec.Extensions {
			records = append(records, rec)
			rows = append(rows, table.Row{
				rec.Browser.String(),
				rec.Profile,
				rec.Name,
				rec.Version,
				flagSummary(rec),
			})
		}
	}

	columns := []table.Column{
		{Title: "Browser", Width: 8},
		{Title: "Profile", Width: 14},
		{Title: "Name", Width: 32},
		{Title: "Version", Width: 12},
		{Title: "Risk flags", Width: 28},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(tableHeight(len(rows))),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true)
	styles.Selected = styles.Selected.Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return model{table: t, records: records, rep: rep}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.showDetail {
				m.showDetail = false
				return m, nil
			}
			return m, tea.Quit
		case "enter":
			if !m.showDetail && len(m.records) > 0 {
				m.selected = m.table.Cursor()
				m.showDetail = true
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.showDetail {
		return m.detailView()
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf(
		"Browser extensions (%d scanned, %d flagged)",
		m.rep.Totals.Extensions, m.rep.Totals.Flagged,
	)))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("enter: details  q: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m model) detailView() string {
	rec := m.records[m.selected]
	raw, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		raw = []byte(err.Error())
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%s)", rec.Name, rec.Browser)))
	b.WriteString("\n\n")
	b.WriteString(detailStyle.Render(string(raw)))
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("esc: back  q: quit"))
	b.WriteString("\n")
	return b.String()
}

// Run opens the interactive viewer and blocks until the user quits.
func Run(rep *report.Report) error {
	p := tea.NewProgram(newModel(rep), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running extension viewer: %w", err)
	}
	return nil
}

func flagSummary(rec extension.Record) string {
	if len(rec.RiskFlags) == 0 {
		return "-"
	}
	perms := make([]string, 0, len(rec.RiskFlags))
	for _, f := range rec.RiskFlags {
		perms = append(perms, f.Permission)
	}
	return strings.Join(perms, ", ")
}

func tableHeight(rows int) int {
	const maxVisible = 20
	if rows < 1 {
		return 1
	}
	if rows > maxVisible {
		return maxVisible
	}
	return rows
}

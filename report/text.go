package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/zbalkan/scan-browser-extensions/extension"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	browserStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	flaggedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	riskStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	cleanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// TextEmitter renders a report for human eyes, grouped by browser.
// Flagged extensions stand out; unflagged ones are still listed.
type TextEmitter struct {
	out io.Writer
}

var _ Emitter = (*TextEmitter)(nil)

// NewTextEmitter creates a TextEmitter writing to out.
func NewTextEmitter(out io.Writer) *TextEmitter {
	return &TextEmitter{out: out}
}

// Emit writes the report.
func (e *TextEmitter) Emit(rep *Report) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Browser extension scan"))
	b.WriteString("\n")

	meta := fmt.Sprintf("generated %s", rep.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	if rep.RiskListVersion != "" {
		meta += fmt.Sprintf(" | risk list %s", rep.RiskListVersion)
	}
	b.WriteString(dimStyle.Render(meta))
	b.WriteString("\n\n")

	for _, section := range rep.Sections {
		writeSection(&b, section)
	}

	if len(rep.Warnings) > 0 {
		b.WriteString(flaggedStyle.Render(fmt.Sprintf("%d warning(s) during scan:", len(rep.Warnings))))
		b.WriteString("\n")
		for _, w := range rep.Warnings {
			b.WriteString("  " + dimStyle.Render(w.String()) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("%d extension(s) scanned, %s\n",
		rep.Totals.Extensions, renderFlaggedTotal(rep.Totals.Flagged)))

	_, err := io.WriteString(e.out, b.String())
	return err
}

func writeSection(b *strings.Builder, section Section) {
	b.WriteString(browserStyle.Render(string(section.Browser)))
	b.WriteString("\n")

	if len(section.Extensions) == 0 {
		b.WriteString("  " + dimStyle.Render("no extensions found") + "\n\n")
		return
	}

	for _, rec := range section.Extensions {
		marker := cleanStyle.Render("*")
		if rec.Flagged() {
			marker = flaggedStyle.Render("!")
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n", marker, rec.Name, dimStyle.Render(describeRecord(rec))))

		if rec.Flagged() {
			for _, flag := range rec.RiskFlags {
				b.WriteString("      " + riskStyle.Render(fmt.Sprintf("%s: %s", flag.Permission, flag.Description)) + "\n")
			}
		} else {
			b.WriteString("      " + dimStyle.Render("no risky permissions") + "\n")
		}
	}
	b.WriteString("\n")
}

// describeRecord builds the dim suffix after an extension name: version,
// identifier, profile, and disabled state when applicable.
func describeRecord(rec extension.Record) string {
	parts := []string{}
	if rec.Version != "" {
		parts = append(parts, "v"+rec.Version)
	}
	if rec.ID != "" && rec.ID != rec.Name {
		parts = append(parts, rec.ID)
	}
	if rec.Profile != "" {
		parts = append(parts, "profile "+rec.Profile)
	}
	if !rec.Enabled {
		parts = append(parts, "disabled")
	}
	return strings.Join(parts, ", ")
}

func renderFlaggedTotal(flagged int) string {
	if flagged == 0 {
		return cleanStyle.Render("none flagged")
	}
	return flaggedStyle.Render(fmt.Sprintf("%d flagged", flagged))
}

// Package report assembles the outcome of one scan into a renderable
// document and provides the console, JSON, and schema surfaces for it.
package report

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/zbalkan/scan-browser-extensions/extension"
	"github.com/zbalkan/scan-browser-extensions/manifest"
)

// Section groups the findings of one browser. A browser that was not
// installed, or had no extensions, still gets a section with an empty
// extension list.
type Section struct {
	Browser    extension.Browser  `json:"browser"`
	Profiles   []string           `json:"profiles,omitempty"`
	Extensions []extension.Record `json:"extensions"`
}

// Flagged returns the records carrying at least one risk flag.
func (s Section) Flagged() []extension.Record {
	var out []extension.Record
	for _, rec := range s.Extensions {
		if rec.Flagged() {
			out = append(out, rec)
		}
	}
	return out
}

// Totals summarizes a report.
type Totals struct {
	Extensions int `json:"extensions"`
	Flagged    int `json:"flagged"`
}

// Report is the result of one scan run. Records live only for the run
// that produced them; nothing here is persisted.
type Report struct {
	RunID           string             `json:"run_id"`
	GeneratedAt     time.Time          `json:"generated_at"`
	Host            string             `json:"host,omitempty"`
	RiskListVersion string             `json:"risk_list_version,omitempty"`
	Sections        []Section          `json:"sections"`
	Warnings        []manifest.Warning `json:"warnings,omitempty"`
	Totals          Totals             `json:"totals"`
}

// New assembles a report from classified sections. The run gets a fresh
// identifier, totals are derived from the sections, and the hostname is
// best effort.
func New(generatedAt time.Time, riskListVersion string, sections []Section, warnings []manifest.Warning) *Report {
	rep := &Report{
		RunID:           uuid.NewString(),
		GeneratedAt:     generatedAt.UTC(),
		RiskListVersion: riskListVersion,
		Sections:        sections,
		Warnings:        warnings,
	}
	if host, err := os.Hostname(); err == nil {
		rep.Host = host
	}
	for _, section := range sections {
		rep.Totals.Extensions += len(section.Extensions)
		rep.Totals.Flagged += len(section.Flagged())
	}
	return rep
}

// Emitter renders a report to its output.
type Emitter interface {
	Emit(rep *Report) error
}

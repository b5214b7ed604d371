// Package inventory orchestrates one scan pass: resolve profile
// directories, read manifests, classify permissions, and assemble the
// report. The work is sequential per browser, per profile, per manifest.
package inventory

import (
	"context"
	"log/slog"
	"time"

	"github.com/zbalkan/scan-browser-extensions/browser"
	"github.com/zbalkan/scan-browser-extensions/extension"
	"github.com/zbalkan/scan-browser-extensions/manifest"
	"github.com/zbalkan/scan-browser-extensions/report"
	"github.com/zbalkan/scan-browser-extensions/risk"
)

// Scanner runs the scan pipeline across the selected browsers.
type Scanner struct {
	table    *risk.Table
	resolver *browser.Resolver
	readers  *manifest.Registry
	browsers []extension.Browser
	logger   *slog.Logger
	now      func() time.Time
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// NewScanner creates a scanner classifying against table. The risk table
// and the resolver are required dependencies.
func NewScanner(table *risk.Table, resolver *browser.Resolver, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		table:    table,
		resolver: resolver,
		readers:  manifest.DefaultRegistry(),
		browsers: extension.AllBrowsers(),
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithBrowsers narrows the scan to the given browsers, in the given order.
func WithBrowsers(browsers ...extension.Browser) ScannerOption {
	return func(s *Scanner) {
		if len(browsers) > 0 {
			s.browsers = browsers
		}
	}
}

// WithReaders sets the manifest reader registry.
func WithReaders(readers *manifest.Registry) ScannerOption {
	return func(s *Scanner) {
		if readers != nil {
			s.readers = readers
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ScannerOption {
	return func(s *Scanner) { s.logger = l }
}

// WithNow sets the clock used to timestamp the report.
func WithNow(now func() time.Time) ScannerOption {
	return func(s *Scanner) {
		if now != nil {
			s.now = now
		}
	}
}

// Scan walks the selected browsers and returns the classified report.
// A browser that is not installed yields an empty section. Unreadable or
// malformed manifests are logged and skipped; they never abort the scan.
func (s *Scanner) Scan(ctx context.Context) (*report.Report, error) {
	if !s.resolver.Supported() {
		s.logger.Warn("unsupported operating system, nothing to scan", "os", s.resolver.OS())
	}

	var (
		sections    []report.Section
		allWarnings []manifest.Warning
	)

	for _, b := range s.browsers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		section, warnings := s.scanBrowser(b)
		sections = append(sections, section)
		allWarnings = append(allWarnings, warnings...)
	}

	return report.New(s.now(), s.table.Version(), sections, allWarnings), nil
}

func (s *Scanner) scanBrowser(b extension.Browser) (report.Section, []manifest.Warning) {
	section := report.Section{Browser: b, Extensions: []extension.Record{}}

	reader, ok := s.readers.Get(b)
	if !ok {
		s.logger.Warn("no manifest reader registered", "browser", b)
		return section, nil
	}

	profiles := s.resolver.Resolve(b)
	if len(profiles) == 0 {
		s.logger.Debug("browser not installed", "browser", b)
		return section, nil
	}

	var warnings []manifest.Warning
	for _, profile := range profiles {
		section.Profiles = append(section.Profiles, profile.Name)

		records, warns := reader.Read(profile)
		for _, w := range warns {
			s.logger.Warn("skipping manifest", "browser", w.Browser, "path", w.Path, "reason", w.Reason)
		}
		warnings = append(warnings, warns...)

		for _, rec := range records {
			section.Extensions = append(section.Extensions, s.table.Classify(rec))
		}
	}

	s.logger.Info("scanned browser",
		"browser", b,
		"profiles", len(profiles),
		"extensions", len(section.Extensions))
	return section, warnings
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zbalkan/scan-browser-extensions/browser"
	"github.com/zbalkan/scan-browser-extensions/extension"
	"github.com/zbalkan/scan-browser-extensions/inventory"
	"github.com/zbalkan/scan-browser-extensions/report"
	"github.com/zbalkan/scan-browser-extensions/risk"
	"github.com/zbalkan/scan-browser-extensions/tui"
)

var (
	flagBrowsers    []string
	flagJSON        bool
	flagRiskList    string
	flagHome        string
	flagInteractive bool
	flagVerbose     bool
	flagQuiet       bool
)

var rootCmd = &cobra.Command{
	Use:   "scanext",
	Short: "Scan installed browser extensions and flag risky permissions",
	Long: `scanext inspects the Firefox, Chrome and Edge profiles of the current user,
lists every installed extension and flags the ones requesting permissions
from the risk list. Browsers that are not installed are skipped silently;
unreadable manifests are reported as warnings on stderr.`,
	Args:         cobra.NoArgs,
	RunE:         runScan,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRiskList, "risk-list", "", "Path to a custom risk list (YAML); default is the embedded list")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagQuiet, "quiet", false, "Only log errors")
	rootCmd.Flags().StringArrayVar(&flagBrowsers, "browser", nil, "Browser to scan: firefox, chrome or edge (repeatable; default all)")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "Emit the report as JSON")
	rootCmd.Flags().StringVar(&flagHome, "home", "", "Scan profiles under this home directory instead of the current user's")
	rootCmd.Flags().BoolVar(&flagInteractive, "interactive", false, "Pick browsers and browse results in a terminal UI")
	rootCmd.MarkFlagsMutuallyExclusive("json", "interactive")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// Execute runs the CLI. Fatal errors exit with code 1; scan warnings never
// affect the exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	table, err := loadTable()
	if err != nil {
		return err
	}

	browsers, err := parseBrowsers(flagBrowsers)
	if err != nil {
		return err
	}

	if flagInteractive {
		if !tui.IsInteractive() {
			return tui.NonInteractiveError()
		}
		browsers, err = tui.PickBrowsers(browsers)
		if err != nil {
			return err
		}
	}

	var resolverOpts []browser.ResolverOption
	if flagHome != "" {
		resolverOpts = append(resolverOpts, browser.WithHome(flagHome))
	}
	resolver, err := browser.NewResolver(resolverOpts...)
	if err != nil {
		return err
	}

	var scanOpts []inventory.ScannerOption
	if len(browsers) > 0 {
		scanOpts = append(scanOpts, inventory.WithBrowsers(browsers...))
	}
	scanner := inventory.NewScanner(table, resolver, scanOpts...)

	rep, err := scanner.Scan(cmd.Context())
	if err != nil {
		return err
	}

	if flagInteractive {
		return tui.Run(rep)
	}

	var emitter report.Emitter
	if flagJSON {
		emitter = report.NewJSONEmitter(cmd.OutOrStdout())
	} else {
		emitter = report.NewTextEmitter(cmd.OutOrStdout())
	}
	return emitter.Emit(rep)
}

// loadTable loads the risk list named by --risk-list, falling back to the
// embedded default. Failure here is fatal for every command that classifies.
func loadTable() (*risk.Table, error) {
	table, err := risk.NewLoader(risk.WithPath(flagRiskList)).Load()
	if err != nil {
		return nil, fmt.Errorf("loading risk list: %w", err)
	}
	return table, nil
}

func parseBrowsers(names []string) ([]extension.Browser, error) {
	seen := make(map[extension.Browser]struct{}, len(names))
	browsers := make([]extension.Browser, 0, len(names))
	for _, name := range names {
		b, err := extension.ParseBrowser(name)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		browsers = append(browsers, b)
	}
	return browsers, nil
}

func setupLogging() {
	level := slog.LevelWarn
	switch {
	case flagQuiet:
		level = slog.LevelError
	case flagVerbose:
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// Package tui provides the interactive surfaces of the scanner: a browser
// picker for narrowing the scan and a table view for exploring results.
package tui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/zbalkan/scan-browser-extensions/extension"
)

// IsInteractive reports whether both stdin and stdout are attached to a
// terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// NonInteractiveError explains how to proceed when interactive mode was
// requested without a terminal attached.
func NonInteractiveError() error {
	return errors.New("interactive mode requires a terminal; rerun without --interactive for plain output")
}

// PickBrowsers asks which browsers to scan. The initial selection is
// pre-checked; an empty initial selection pre-checks everything.
// Confirming an empty selection is an error.
func PickBrowsers(initial []extension.Browser) ([]extension.Browser, error) {
	preChecked := make(map[extension.Browser]bool, len(initial))
	for _, b := range initial {
		preChecked[b] = true
	}

	options := make([]huh.Option[extension.Browser], 0, len(extension.AllBrowsers()))
	for _, b := range extension.AllBrowsers() {
		options = append(options, huh.NewOption(b.VendorName(), b).Selected(len(initial) == 0 || preChecked[b]))
	}

	var selected []extension.Browser
	err := huh.NewMultiSelect[extension.Browser]().
		Title("Browsers to scan").
		Description("Space toggles, enter confirms.").
		Options(options...).
		Value(&selected).
		Run()
	if err != nil {
		return nil, fmt.Errorf("picking browsers: %w", err)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no browsers selected")
	}
	return selected, nil
}

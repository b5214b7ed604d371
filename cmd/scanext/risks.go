package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	risksJSON bool
	risksYAML bool
)

var risksCmd = &cobra.Command{
	Use:   "risks",
	Short: "Print the active risk list",
	Long: `Prints the risk list the scanner classifies against: the embedded
default, or the file named by --risk-list. The --yaml form is a valid
risk list document and can serve as the starting point for a custom one.`,
	Args: cobra.NoArgs,
	RunE: runRisks,
}

func init() {
	rootCmd.AddCommand(risksCmd)
	risksCmd.Flags().BoolVar(&risksJSON, "json", false, "Emit the risk list as JSON")
	risksCmd.Flags().BoolVar(&risksYAML, "yaml", false, "Emit the risk list as a YAML document")
	risksCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

func runRisks(cmd *cobra.Command, args []string) error {
	table, err := loadTable()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case risksJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(table.Document())
	case risksYAML:
		data, err := yaml.Marshal(table.Document())
		if err != nil {
			return fmt.Errorf("failed to marshal risk list: %w", err)
		}
		_, err = out.Write(data)
		return err
	}

	fmt.Fprintf(out, "Risk list %s (%d permissions)\n\n", table.Version(), table.Len())
	for _, e := range table.Entries() {
		fmt.Fprintf(out, "  %-28s %s\n", e.Permission, e.Description)
	}
	return nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zbalkan/scan-browser-extensions/report"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [kind]",
	Short: "Print the JSON Schema for a document kind",
	Long: `Without arguments, lists the known document kinds. With a kind
(report, extension or risklist), prints its JSON Schema.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	registry, err := report.DefaultSchemaRegistry()
	if err != nil {
		return fmt.Errorf("building schema registry: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, kind := range registry.Kinds() {
			fmt.Fprintln(out, kind)
		}
		return nil
	}

	schema, ok := registry.Schema(args[0])
	if !ok {
		return fmt.Errorf("unknown document kind %q (known: %s)", args[0], strings.Join(registry.Kinds(), ", "))
	}
	fmt.Fprintln(out, schema)
	return nil
}

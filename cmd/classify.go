package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/grant-verdict/internal/readiness"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Show a grant's readiness buckets without scoring it",
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := cmd.Flags()
		path, _ := f.GetString("input")
		format, _ := f.GetString("format")
		if err := checkFormat(format); err != nil {
			return err
		}
		if err := cfg.Validate("classify"); err != nil {
			return err
		}

		data, err := readInput(cmd.Context(), path, cmd.InOrStdin(), newFetcher(cfg))
		if err != nil {
			return err
		}
		g, err := decodeGrant(data)
		if err != nil {
			return err
		}

		r := readiness.Classify(g)
		if format == formatTable {
			renderReadiness(cmd.OutOrStdout(), r)
			return nil
		}
		return writeStructured(cmd.OutOrStdout(), format, r)
	},
}

func init() {
	f := classifyCmd.Flags()
	f.String("input", "", "grant or request file (YAML or JSON), or - for stdin")
	f.String("format", formatTable, "output format: table, json or yaml")
	rootCmd.AddCommand(classifyCmd)
}

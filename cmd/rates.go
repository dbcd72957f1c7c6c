package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/grant-verdict/internal/currency"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Print the exchange-rate table used for funding fit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("format")
		if err := checkFormat(format); err != nil {
			return err
		}
		if err := cfg.Validate("rates"); err != nil {
			return err
		}

		table, err := currency.NewStaticTable(rateOverrides(cmd.Context(), cfg, newFetcher(cfg)))
		if err != nil {
			return eris.Wrap(err, "rates: build table")
		}

		if format == formatTable {
			renderRates(cmd.OutOrStdout(), table.Pairs())
			return nil
		}
		return writeStructured(cmd.OutOrStdout(), format, table.Pairs())
	},
}

func init() {
	ratesCmd.Flags().String("format", formatTable, "output format: table, json or yaml")
	rootCmd.AddCommand(ratesCmd)
}

package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one grant (free tier) or one grant against a project (paid tier)",
	Long: `Evaluate reads a request document (YAML or JSON) with a grant, an
optional project and a tier, and prints the verdict.

Examples:
  # Free-tier grant quality check
  evaluate --input grant.yaml

  # Paid-tier fit, JSON output
  evaluate --input request.yaml --tier paid --format json

  # Read from stdin
  cat request.json | evaluate --input -`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		f := cmd.Flags()
		path, _ := f.GetString("input")
		tier, _ := f.GetString("tier")
		format, _ := f.GetString("format")
		if err := checkFormat(format); err != nil {
			return err
		}

		fetch := newFetcher(cfg)
		data, err := readInput(ctx, path, cmd.InOrStdin(), fetch)
		if err != nil {
			return err
		}
		req, err := decodeRequest(data, tier)
		if err != nil {
			return err
		}

		eng, err := initEngine(ctx, cfg, "evaluate", fetch, nil)
		if err != nil {
			return err
		}

		v := eng.Evaluate(ctx, req)
		zap.L().Info("evaluate: done",
			zap.String("grant", req.Grant.Name),
			zap.String("recommendation", string(v.Recommendation)),
			zap.Int("composite", v.CompositeScore),
		)

		if format == formatTable {
			renderVerdict(cmd.OutOrStdout(), v)
			return nil
		}
		return writeStructured(cmd.OutOrStdout(), format, v)
	},
}

func init() {
	f := evaluateCmd.Flags()
	f.String("input", "", "request file (YAML or JSON), or - for stdin")
	f.String("tier", "", "override the request tier: free or paid")
	f.String("format", formatTable, "output format: table, json or yaml")
	rootCmd.AddCommand(evaluateCmd)
}

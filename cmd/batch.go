package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate a list of requests concurrently",
	Long: `Batch reads a YAML or JSON list of requests (or a document with a
"requests" key) and evaluates them concurrently. Output keeps input order.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		f := cmd.Flags()
		path, _ := f.GetString("input")
		tier, _ := f.GetString("tier")
		format, _ := f.GetString("format")
		concurrency, _ := f.GetInt("concurrency")
		if err := checkFormat(format); err != nil {
			return err
		}
		if concurrency > 0 {
			cfg.Batch.MaxConcurrent = concurrency
		}

		fetch := newFetcher(cfg)
		data, err := readInput(ctx, path, cmd.InOrStdin(), fetch)
		if err != nil {
			return err
		}
		reqs, err := decodeBatch(data, tier)
		if err != nil {
			return err
		}

		eng, err := initEngine(ctx, cfg, "batch", fetch, nil)
		if err != nil {
			return err
		}

		results, err := eng.EvaluateBatch(ctx, reqs, cfg.Batch.MaxConcurrent)
		if err != nil {
			return err
		}
		zap.L().Info("batch: done", zap.Int("requests", len(reqs)))

		if format == formatTable {
			renderBatch(cmd.OutOrStdout(), reqs, results)
			return nil
		}
		return writeStructured(cmd.OutOrStdout(), format, results)
	},
}

func init() {
	f := batchCmd.Flags()
	f.String("input", "", "batch file (YAML or JSON), or - for stdin")
	f.String("tier", "", "override every request's tier: free or paid")
	f.String("format", formatTable, "output format: table, json or yaml")
	f.Int("concurrency", 0, "max concurrent evaluations (0 = batch.max_concurrent)")
	rootCmd.AddCommand(batchCmd)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/grant-verdict/internal/config"
	"github.com/sells-group/grant-verdict/internal/lexicon"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	cfg     *config.Config
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:     "grant-verdict",
	Short:   "Decide whether a grant is worth applying for",
	Long:    "Classifies grant readiness, scores grant quality (free tier) or project fit (paid tier), and returns an APPLY / CONDITIONAL / PASS verdict with per-dimension reasoning.",
	Version: versionString(),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadFile(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		zap.L().Debug("config loaded",
			zap.String("file", cfgFile),
			zap.Bool("augment", cfg.Augment.Enabled),
			zap.Bool("explain", cfg.Augment.Explain),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// versionString reports the build version and the keyword-table revision
// every verdict's rubric_version starts with.
func versionString() string {
	return fmt.Sprintf("%s (lexicon %s)", version, lexicon.Version)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml if present)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

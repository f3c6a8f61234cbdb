package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/capes-metrics/qualis-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "qualis-cli",
	Short: "Bibliometric indicator collector for venue classification",
	Long:  "Collects H5, CiteScore, and JIF metrics for journals and conferences from their respective sources and computes the Qualis estrato per venue.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

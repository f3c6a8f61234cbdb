package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/capes-metrics/qualis-cli/internal/gate"
	"github.com/capes-metrics/qualis-cli/internal/model"
	"github.com/capes-metrics/qualis-cli/internal/pipeline"
	"github.com/capes-metrics/qualis-cli/internal/report"
	"github.com/capes-metrics/qualis-cli/internal/source"
	"github.com/capes-metrics/qualis-cli/internal/source/scholar"
	"github.com/capes-metrics/qualis-cli/internal/source/scopus"
	"github.com/capes-metrics/qualis-cli/internal/source/wos"
	"github.com/capes-metrics/qualis-cli/internal/venuelist"
)

var (
	collectConferences bool
	collectJournals    bool
	collectListsDir    string
	collectOutputDir   string
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect metrics and compute estratos for the configured venue lists",
	Long: `Reads conference and journal lists, queries each enabled source with
politeness delays, computes per-source and final estratos, and writes
timestamped CSV and JSON results plus a console summary.

Examples:
  # Collect everything
  collect

  # Conferences only
  collect --conferences

  # Journals only, custom list and output locations
  collect --journals --lists ./listas --output ./resultados`,
	RunE: runCollect,
}

func init() {
	f := collectCmd.Flags()
	f.BoolVar(&collectConferences, "conferences", false, "collect conferences only")
	f.BoolVar(&collectJournals, "journals", false, "collect journals only")
	f.StringVar(&collectListsDir, "lists", "", "directory with conferencias.csv / revistas.csv (overrides config)")
	f.StringVar(&collectOutputDir, "output", "", "output directory (overrides config)")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	listsDir := cfg.Collect.ListsDir
	if collectListsDir != "" {
		listsDir = collectListsDir
	}
	outputDir := cfg.Collect.OutputDir
	if collectOutputDir != "" {
		outputDir = collectOutputDir
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return eris.Wrap(err, "create output dir")
	}

	all := !collectConferences && !collectJournals

	p := buildPipeline()
	timestamp := time.Now().Format("20060102_150405")

	if all || collectConferences {
		venues, err := venuelist.LoadConferences(filepath.Join(listsDir, "conferencias.csv"))
		if err != nil {
			return err
		}
		zap.L().Info("conferences loaded", zap.Int("count", len(venues)))

		records := p.CollectConferences(ctx, venues)
		base := filepath.Join(outputDir, "conferencias_"+timestamp)
		if err := writeConferenceOutputs(base, records); err != nil {
			return err
		}
		report.PrintConferenceTable(os.Stdout, records)
	}

	if all || collectJournals {
		venues, err := venuelist.LoadJournals(filepath.Join(listsDir, "revistas.csv"))
		if err != nil {
			return err
		}
		zap.L().Info("journals loaded", zap.Int("count", len(venues)))

		records := p.CollectJournals(ctx, venues)
		base := filepath.Join(outputDir, "revistas_"+timestamp)
		if err := writeJournalOutputs(base, records); err != nil {
			return err
		}
		report.PrintJournalTable(os.Stdout, records)
	}

	summary := p.Summary()
	zap.L().Info("run summary",
		zap.Int("venues", summary.Venues),
		zap.Int("with_tier", summary.WithTier),
		zap.Int("all_failed", summary.AllFailed),
	)
	return nil
}

// buildPipeline wires gates, clients, and breakers from config. The metered
// sources exist only when their credential is set — without one no call is
// ever attempted for that source.
func buildPipeline() *pipeline.Pipeline {
	gsmMin, gsmMax := cfg.Scholar.DelayBounds()
	scrapeClient := scholar.New(
		gate.New(source.NameScholar, gsmMin, gsmMax),
		scholar.WithBaseURL(cfg.Scholar.BaseURL),
	)

	var scopusClient source.Source
	if cfg.Scopus.Key != "" {
		min, max := cfg.Scopus.DelayBounds()
		scopusClient = scopus.New(cfg.Scopus.Key,
			gate.New(source.NameScopus, min, max),
			scopus.WithBaseURL(cfg.Scopus.BaseURL),
			scopus.WithRateLimit(cfg.Scopus.RatePerSecond),
		)
		zap.L().Info("citescore source enabled", zap.String("key", source.MaskKey(cfg.Scopus.Key)))
	} else {
		zap.L().Info("citescore source disabled: no key configured")
	}

	var wosClient source.Source
	if cfg.WoS.Key != "" {
		min, max := cfg.WoS.DelayBounds()
		wosClient = wos.New(cfg.WoS.Key,
			gate.New(source.NameWoS, min, max),
			wos.WithBaseURL(cfg.WoS.BaseURL),
			wos.WithRateLimit(cfg.WoS.RatePerSecond),
		)
		zap.L().Info("jif source enabled", zap.String("key", source.MaskKey(cfg.WoS.Key)))
	} else {
		zap.L().Info("jif source disabled: no key configured")
	}

	return pipeline.New(scrapeClient, scopusClient, wosClient,
		cfg.Collect.BlockThreshold,
		pipeline.WithParallelSources(cfg.Collect.ParallelSources),
	)
}

func writeConferenceOutputs(base string, records []model.ConferenceRecord) error {
	if err := writeFile(base+".csv", func(f *os.File) error {
		return report.WriteConferenceCSV(f, records)
	}); err != nil {
		return err
	}
	return writeFile(base+".json", func(f *os.File) error {
		return report.WriteJSON(f, records)
	})
}

func writeJournalOutputs(base string, records []model.JournalRecord) error {
	if err := writeFile(base+".csv", func(f *os.File) error {
		return report.WriteJournalCSV(f, records)
	}); err != nil {
		return err
	}
	return writeFile(base+".json", func(f *os.File) error {
		return report.WriteJSON(f, records)
	})
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	defer func() { _ = f.Close() }()

	if err := write(f); err != nil {
		return err
	}
	fmt.Println("saved:", path)
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Akash89-eng/StockMarketAnalysis/internal/api"
	"github.com/Akash89-eng/StockMarketAnalysis/internal/charts"
	"github.com/Akash89-eng/StockMarketAnalysis/internal/formatter"
	"github.com/Akash89-eng/StockMarketAnalysis/internal/logger"
	"github.com/Akash89-eng/StockMarketAnalysis/internal/ui"
	"github.com/Akash89-eng/StockMarketAnalysis/internal/view"
)

var (
	analyzeStart      string
	analyzeEnd        string
	analyzeNoTUI      bool
	analyzeOutputFile string
	analyzeChartsDir  string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a PCA analysis over a date range",
		Long: `Request a principal component analysis from the backend for a date range.

By default an interactive terminal UI opens with the range pre-filled to the
last month. With --no-tui the request runs once and the report is printed in
the selected output format.

Examples:
  stockpca analyze
  stockpca analyze --start 2024-01-01 --end 2024-02-01 --no-tui
  stockpca analyze --no-tui --output json
  stockpca analyze --no-tui --charts-dir ./charts`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringVar(&analyzeStart, "start", "", "start date (YYYY-MM-DD, default: one month ago)")
	cmd.Flags().StringVar(&analyzeEnd, "end", "", "end date (YYYY-MM-DD, default: today)")
	cmd.Flags().BoolVar(&analyzeNoTUI, "no-tui", false, "disable terminal UI, print the report to stdout")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")
	cmd.Flags().StringVar(&analyzeChartsDir, "charts-dir", "", "directory for decoded chart images")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	client, err := api.New(&api.Config{
		BaseURL:        cfg.API.BaseURL,
		HealthTimeout:  cfg.API.HealthTimeout,
		AnalyzeTimeout: cfg.API.AnalyzeTimeout,
	})
	if err != nil {
		return err
	}

	r, err := resolveDateRange(cmd)
	if err != nil {
		return err
	}

	chartsDir := resolveChartsDir(cmd)

	if !analyzeNoTUI {
		return ui.Run(ui.Options{
			Backend:   client,
			ChartsDir: chartsDir,
			Logger:    logger.NewWithCallback("ui", isVerbose),
			DateRange: r,
		})
	}

	return runOneShot(client, r, chartsDir)
}

// resolveDateRange applies the default window unless flags override it
func resolveDateRange(cmd *cobra.Command) (api.DateRange, error) {
	if !cmd.Flag("start").Changed && !cmd.Flag("end").Changed {
		return api.DefaultDateRange(time.Now()), nil
	}

	start := analyzeStart
	end := analyzeEnd
	defaults := api.DefaultDateRange(time.Now())
	if start == "" {
		start = defaults.Start.Format(api.DateFormat)
	}
	if end == "" {
		end = defaults.End.Format(api.DateFormat)
	}

	return api.ParseDateRange(start, end)
}

// resolveChartsDir picks the flag value, then the config, then nothing
func resolveChartsDir(cmd *cobra.Command) string {
	if cmd.Flag("charts-dir").Changed {
		return analyzeChartsDir
	}
	cfg := GetGlobalConfig()
	if cfg.Charts.Save {
		return cfg.Charts.Dir
	}
	return ""
}

// runOneShot performs a single analyze request and prints the report
func runOneShot(client *api.Client, r api.DateRange, chartsDir string) error {
	log := logger.NewWithCallback("analyze", isVerbose)

	log.Info("requesting analysis: %s .. %s",
		r.Start.Format(api.DateFormat), r.End.Format(api.DateFormat))

	started := time.Now()
	result, err := client.Analyze(context.Background(), r)
	if err != nil {
		return err
	}
	log.InfoWithFields("analysis received", []logger.Field{
		logger.F("trend_stock", result.MainTrendStock),
		logger.Duration(time.Since(started)),
	})

	vm := view.Build(result)

	if chartsDir != "" {
		paths, err := charts.WriteAll(chartsDir, vm.Charts)
		if err != nil {
			log.Warn("failed to save charts: %v", err)
		} else {
			for _, path := range paths {
				log.Info("chart saved: %s", path)
			}
		}
	}

	f, err := formatter.New(getOutputFormat())
	if err != nil {
		return fmt.Errorf("failed to get formatter: %w", err)
	}

	output, err := f.Format(vm)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return handleOutputDestination(output)
}

// handleOutputDestination writes output to file or stdout
func handleOutputDestination(output []byte) error {
	if analyzeOutputFile == "" {
		fmt.Print(string(output))
		return nil
	}

	cleanPath := filepath.Clean(analyzeOutputFile)
	if err := os.WriteFile(cleanPath, output, 0o644); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Output saved to: %s\n", cleanPath)
	}
	return nil
}

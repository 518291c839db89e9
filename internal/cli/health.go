package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Akash89-eng/StockMarketAnalysis/internal/api"
)

func newHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the analysis backend",
		Long:  "Issue a single health check against the configured backend and report the result.",
		RunE:  runHealth,
	}
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	client, err := api.New(&api.Config{
		BaseURL:        cfg.API.BaseURL,
		HealthTimeout:  cfg.API.HealthTimeout,
		AnalyzeTimeout: cfg.API.AnalyzeTimeout,
	})
	if err != nil {
		return err
	}

	info, err := client.CheckHealth(context.Background())
	if err != nil {
		fmt.Printf("Offline  %s\n", client.BaseURL())
		return err
	}

	fmt.Printf("Online  %s (%s)\n", client.BaseURL(), info.Latency.Round(time.Millisecond))
	if isVerbose() && info.Message != "" {
		fmt.Printf("  status: %s\n  message: %s\n  version: %s\n", info.Status, info.Message, info.Version)
	}
	return nil
}

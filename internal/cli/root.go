package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Akash89-eng/StockMarketAnalysis/internal/config"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	outputFmt string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stockpca",
		Short: "Terminal client for the stock PCA analysis service",
		Long: `stockpca is a terminal client for a remote stock analysis service that runs
principal component analysis over five NSE equities (RELIANCE, TCS, INFY,
HDFCBANK, ITC).

Pick a date range, submit it, and the client renders the summary metrics,
a recent-prices table, the eigenvalue/eigenvector table, and saves the
server-rendered chart images to disk.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			if cmd.Flag("verbose").Changed {
				cfg.Output.Verbose = verbose
			} else {
				verbose = cfg.Output.Verbose
			}
			if !cmd.Flag("output").Changed {
				outputFmt = cfg.Output.DefaultFormat
			}
			// lipgloss and termenv honor the NO_COLOR convention
			if noColor || cfg.Output.ColorMode == "never" {
				_ = os.Setenv("NO_COLOR", "1")
			}
			globalConfig = cfg
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "output format (text, json, markdown, csv)")

	// Add subcommands
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newHealthCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			fmt.Printf("stockpca %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Global helpers

// GetGlobalConfig returns the loaded configuration
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

func isVerbose() bool {
	return verbose
}

func getOutputFormat() string {
	return outputFmt
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Akash89-eng/StockMarketAnalysis/internal/config"
)

// newConfigCommand creates the config command with subcommands
func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage stockpca configuration",
		Long: `Manage stockpca configuration files and settings.

The config command provides subcommands for initializing, viewing,
and locating configuration files.`,
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigPathCommand())

	return configCmd
}

// newConfigInitCommand creates the config init subcommand
func newConfigInitCommand() *cobra.Command {
	var (
		outputPath string
		force      bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new configuration file",
		Long:  "Initialize a new stockpca configuration file with default values.",
		Example: `  # Create config in current directory
  stockpca config init

  # Create config at specific path
  stockpca config init --output ~/.config/stockpca/config.yaml

  # Overwrite existing config
  stockpca config init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				outputPath = ".stockpca.yaml"
			}

			if !force {
				if _, err := os.Stat(outputPath); err == nil {
					return fmt.Errorf("config file already exists at %s (use --force to overwrite)", outputPath)
				}
			}

			dir := filepath.Dir(outputPath)
			if dir != "." && dir != "/" {
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}

			if err := os.WriteFile(outputPath, []byte(config.SampleConfig()), 0o600); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			fmt.Printf("Configuration file created at: %s\n", outputPath)
			return nil
		},
	}

	initCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path for config file (default: .stockpca.yaml)")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing config file")

	return initCmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	var format string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  "Display the current effective configuration after loading from all sources.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetGlobalConfig()

			switch format {
			case "json":
				data, err := json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				fmt.Println(string(data))
			default:
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				fmt.Print(string(data))
			}
			return nil
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json)")

	return showCmd
}

// newConfigPathCommand creates the config path subcommand
func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file search paths",
		Long:  "List the paths searched for configuration files, and which one is in use.",
		Run: func(cmd *cobra.Command, args []string) {
			active, found := config.FindConfigFile()
			for _, path := range config.GetConfigPaths() {
				marker := " "
				if found && path == active {
					marker = "*"
				}
				fmt.Printf("%s %s\n", marker, path)
			}
			if !found {
				fmt.Println("(no config file found; built-in defaults are in effect)")
			}
		},
	}
}

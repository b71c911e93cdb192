package main

import (
	"github.com/meshwup/meshwup/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after applying, in order, the built-in
defaults, the config file and MESHWUP_* environment variables.

Example meshwup.yml:
  source: nt_data/mesh2025.nt.gz
  output: mesh_dataset.csv
  samples: 5000
  seed: 42`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// ConfigResponse is the response for the config command.
type ConfigResponse struct {
	File   string         `json:"file"`
	Config *config.Config `json:"config"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	path, _ := config.ResolvePath(configFlag)
	if !humanOutput {
		return outputJSON(ConfigResponse{File: path, Config: cfg})
	}

	outputHuman("file:               %s\n", path)
	outputHuman("source:             %s\n", cfg.Source)
	outputHuman("output:             %s\n", cfg.Output)
	outputHuman("runs:               %s\n", cfg.Runs)
	outputHuman("samples:            %d\n", cfg.Samples)
	outputHuman("seed:               %d\n", cfg.Seed)
	outputHuman("precision:          %d\n", cfg.Precision)
	outputHuman("attempt_multiplier: %d\n", cfg.AttemptMultiplier)
	outputHuman("root:               %s\n", cfg.Root)
	outputHuman("root_fallback_ref:  %s\n", cfg.RootFallbackRef)
	outputHuman("root_fallback_term: %s\n", cfg.RootFallbackTerm)
	outputHuman("download_url:       %s\n", cfg.DownloadURL)
	outputHuman("log_level:          %s\n", cfg.LogLevel)
	return nil
}

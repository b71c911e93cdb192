// Package main provides the meshwup CLI entry point.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/meshwup/meshwup/internal/config"
	"github.com/meshwup/meshwup/internal/logging"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	configFlag  string
	logLevel    string

	cfg    *config.Config
	logger *slog.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		// SilenceErrors is set, so cobra errors (bad flags, missing args) surface here
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "meshwup",
	Short: "Build Wu-Palmer similarity datasets from the MeSH disease tree",
	Long: `meshwup builds the MeSH Diseases (C) taxonomy from the NLM RDF dump and
samples term pairs scored by Wu-Palmer similarity.

Typical pipeline:
  meshwup download              # fetch mesh2025.nt.gz into nt_data/
  meshwup sample -n 5000        # build the tree, write mesh_dataset.csv
  meshwup inspect               # summarize the dataset

Configuration is read from meshwup.yml (or --config / MESHWUP_CONFIG) and
MESHWUP_* environment variables. All commands output JSON by default.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// A missing .env is fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default: meshwup.yml or $MESHWUP_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Version = Version
}

// setup loads configuration and installs the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadCached(configFlag)
	if err != nil {
		exitWithError(exitCodeFor(err), "loading config: %v", err)
	}
	// Commands adjust their copy with flags; the cached value stays pristine.
	c := *loaded
	cfg = &c

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logger = logging.Init(!humanOutput, logging.ParseLevel(level))
	return nil
}

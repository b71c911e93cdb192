package main

import (
	"github.com/meshwup/meshwup/internal/dataset"
	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded sampling runs",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

var runsLimit int

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.Flags().IntVarP(&runsLimit, "limit", "l", 0, "Show only the most recent N runs (0 = all)")
}

func runRuns(cmd *cobra.Command, args []string) error {
	runs, err := dataset.ReadRuns(cfg.Runs)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	if runsLimit > 0 && len(runs) > runsLimit {
		runs = runs[len(runs)-runsLimit:]
	}
	if runs == nil {
		runs = []dataset.RunRecord{}
	}

	if !humanOutput {
		return outputJSON(runs)
	}
	if len(runs) == 0 {
		outputHuman("No runs recorded in %s\n", cfg.Runs)
		return nil
	}
	for _, r := range runs {
		outputHuman("%s  %s  %d/%d pairs  seed %d  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), shortID(r.ID), r.Produced, r.Requested, r.Seed, r.Output)
	}
	return nil
}

// shortID abbreviates a run UUID to its first group.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

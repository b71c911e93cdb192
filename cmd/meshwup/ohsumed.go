package main

import (
	"log/slog"
	"os"

	"github.com/meshwup/meshwup/internal/ohsumed"
	"github.com/spf13/cobra"
)

var ohsumedCmd = &cobra.Command{
	Use:   "ohsumed <corpus-dir>",
	Short: "Convert the OHSUMED corpus into a labeled CSV",
	Long: `Convert the OHSUMED corpus into a title,abstract,label CSV.

The corpus directory holds one sub-directory per disease category (C01, C02,
...). Each file is one document: the first line is the title, the rest the
abstract. Documents lacking either are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runOhsumed,
}

var ohsumedOut string

func init() {
	rootCmd.AddCommand(ohsumedCmd)

	ohsumedCmd.Flags().StringVarP(&ohsumedOut, "out", "o", "ohsumed_dataset.csv", "Output CSV")
}

// OhsumedResponse is the response for the ohsumed command.
type OhsumedResponse struct {
	Output string        `json:"output"`
	Stats  ohsumed.Stats `json:"stats"`
}

func runOhsumed(cmd *cobra.Command, args []string) error {
	root := args[0]
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		exitWithError(ExitError, "not a directory: %s", root)
	}

	records, stats, err := ohsumed.Scan(os.DirFS(root), logger)
	if err != nil {
		exitWithError(exitCodeFor(err), "scanning %s: %v", root, err)
	}
	if err := ohsumed.WriteFile(ohsumedOut, records); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	logger.Info("wrote corpus", slog.String("path", ohsumedOut), slog.Int("records", stats.Records))

	if !humanOutput {
		return outputJSON(OhsumedResponse{Output: ohsumedOut, Stats: stats})
	}
	outputHuman("Wrote %d records from %d categories to %s\n", stats.Records, stats.Categories, ohsumedOut)
	if stats.Skipped > 0 || stats.Unreadable > 0 {
		outputHuman("Skipped %d incomplete and %d unreadable files\n", stats.Skipped, stats.Unreadable)
	}
	return nil
}

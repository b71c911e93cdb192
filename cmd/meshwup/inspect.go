package main

import (
	"strings"

	"github.com/meshwup/meshwup/internal/dataset"
	"github.com/spf13/cobra"
)

// HistogramWidth is the bar length of the fullest bin in human output.
const HistogramWidth = 40

var inspectCmd = &cobra.Command{
	Use:   "inspect [dataset.csv]",
	Short: "Summarize a sampled dataset",
	Long: `Summarize a word_i,word_j,wup_similarity dataset: row count, unique words,
missing values, similarity statistics, the most frequent word_i values and a
histogram of scores. Defaults to the configured output file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

var (
	inspectTop  int
	inspectBins int
)

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().IntVar(&inspectTop, "top", dataset.DefaultTopWords, "Number of frequent words to list")
	inspectCmd.Flags().IntVar(&inspectBins, "bins", dataset.DefaultBins, "Histogram bins over [0, 1]")
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := cfg.Output
	if len(args) == 1 {
		path = args[0]
	}

	rows, err := dataset.ReadFile(path)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}
	s, err := dataset.Summarize(rows, inspectTop, inspectBins)
	if err != nil {
		exitWithError(ExitError, "summarizing %s: %v", path, err)
	}

	if !humanOutput {
		return outputJSON(s)
	}

	d := s.Similarity
	outputHuman("Rows: %d\n", s.Rows)
	outputHuman("Unique words: %d\n", s.UniqueWords)
	outputHuman("Missing: word_i=%d word_j=%d wup_similarity=%d\n",
		s.Missing["word_i"], s.Missing["word_j"], s.Missing["wup_similarity"])
	outputHuman("\nwup_similarity\n")
	outputHuman("  count %d\n  mean  %.4f\n  std   %.4f\n", d.Count, d.Mean, d.Std)
	outputHuman("  min   %.4f\n  25%%   %.4f\n  50%%   %.4f\n  75%%   %.4f\n  max   %.4f\n",
		d.Min, d.P25, d.P50, d.P75, d.Max)

	outputHuman("\nTop word_i:\n")
	for _, w := range s.TopWordI {
		outputHuman("  %5d  %s\n", w.Count, w.Word)
	}

	peak := 0
	for _, b := range s.Histogram {
		peak = max(peak, b.Count)
	}
	outputHuman("\nHistogram:\n")
	for _, b := range s.Histogram {
		bar := 0
		if peak > 0 {
			bar = b.Count * HistogramWidth / peak
		}
		outputHuman("  [%.2f, %.2f) %6d %s\n", b.Low, b.High, b.Count, strings.Repeat("#", bar))
	}
	return nil
}

package main

import (
	"log/slog"

	"github.com/meshwup/meshwup/internal/dataset"
	"github.com/meshwup/meshwup/internal/sampler"
	"github.com/meshwup/meshwup/internal/similarity"
	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Sample scored term pairs into a CSV dataset",
	Long: `Build the taxonomy and sample distinct term pairs scored by Wu-Palmer
similarity. Pairs are written as word_i,word_j,wup_similarity and the run is
appended to the run ledger.

Sampling stops after N x attempt_multiplier draws; a shorter dataset is
reported but is not an error.`,
	Args: cobra.NoArgs,
	RunE: runSample,
}

var (
	sampleN         int
	sampleOut       string
	sampleSeed      uint64
	samplePrecision int
	sampleNoLedger  bool
)

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().IntVarP(&sampleN, "samples", "n", 0, "Number of pairs (default from config)")
	sampleCmd.Flags().StringVarP(&sampleOut, "out", "o", "", "Output CSV (default from config)")
	sampleCmd.Flags().Uint64Var(&sampleSeed, "seed", 0, "Random seed (0 = time-based)")
	sampleCmd.Flags().IntVar(&samplePrecision, "precision", 0, "Decimal places of scores (default from config)")
	sampleCmd.Flags().BoolVar(&sampleNoLedger, "no-ledger", false, "Do not record the run")
}

// SampleResponse is the response for the sample command.
type SampleResponse struct {
	Run         dataset.RunRecord `json:"run"`
	MaxAttempts int               `json:"max_attempts"`
	Shortfall   int               `json:"shortfall"`
	Unlinked    int               `json:"unlinked"`
}

func runSample(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if flags.Changed("samples") {
		cfg.Samples = sampleN
	}
	if flags.Changed("out") {
		cfg.Output = sampleOut
	}
	if flags.Changed("seed") {
		cfg.Seed = sampleSeed
	}
	if flags.Changed("precision") {
		cfg.Precision = samplePrecision
	}
	if err := cfg.Validate(); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	tax, report := mustBuildTaxonomy(cmd.Context())
	stats := tax.Stats()

	s := sampler.New(similarity.NewScorer(tax.Hierarchy()), cfg.SamplerConfig(), sampler.WithLogger(logger))
	res := s.Sample(tax.TermBearing())

	if err := dataset.WriteFile(cfg.Output, res.Pairs, cfg.Precision); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	logger.Info("wrote dataset", slog.String("path", cfg.Output), slog.Int("pairs", len(res.Pairs)))

	run := dataset.NewRunRecord()
	run.Source = cfg.Source
	run.Root = tax.Root().ID
	run.Output = cfg.Output
	run.Nodes = stats.Nodes
	run.UniqueTerms = stats.UniqueTerms
	run.Requested = res.Requested
	run.Produced = len(res.Pairs)
	run.Attempts = res.Attempts
	run.Seed = res.Seed
	run.Precision = cfg.Precision

	if !sampleNoLedger {
		if err := dataset.AppendRun(cfg.Runs, run); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}

	resp := SampleResponse{
		Run:         run,
		MaxAttempts: res.MaxAttempts,
		Shortfall:   res.Shortfall,
		Unlinked:    len(report.Unlinked()),
	}
	if !humanOutput {
		return outputJSON(resp)
	}

	outputHuman("Wrote %d of %d pairs to %s\n", run.Produced, run.Requested, run.Output)
	outputHuman("Attempts: %d of %d\n", run.Attempts, resp.MaxAttempts)
	outputHuman("Seed: %d\n", run.Seed)
	if resp.Shortfall > 0 {
		outputHuman("Shortfall: %d pairs (attempt budget exhausted)\n", resp.Shortfall)
	}
	outputHuman("Run: %s\n", run.ID)
	return nil
}

package main

import (
	"github.com/meshwup/meshwup/internal/similarity"
	"github.com/meshwup/meshwup/internal/treenum"
	"github.com/spf13/cobra"
)

var similarityCmd = &cobra.Command{
	Use:   "similarity <tree-number> <tree-number>",
	Short: "Explain the Wu-Palmer similarity of two tree numbers",
	Long: `Explain the Wu-Palmer similarity of two tree numbers.

Only the identifiers are needed; no dump is loaded. Depths count the implicit
root, so C01 has depth 2 and C01.123 depth 3:

  meshwup similarity C01.123 C01.456    # LCA C01, score 2*2/(3+3) = 0.67`,
	Args: cobra.ExactArgs(2),
	RunE: runSimilarity,
}

func init() {
	rootCmd.AddCommand(similarityCmd)
}

func runSimilarity(cmd *cobra.Command, args []string) error {
	for _, id := range args {
		mustValidateTreeNumber(id)
	}

	b := similarity.NewScorer(treenum.New(cfg.Root)).Explain(args[0], args[1])
	if !humanOutput {
		return outputJSON(b)
	}

	lca := b.LCA
	if lca == "" {
		lca = "(none)"
	}
	outputHuman("%s  depth %d\n", b.A, b.DepthA)
	outputHuman("%s  depth %d\n", b.B, b.DepthB)
	outputHuman("LCA   %s  depth %d\n", lca, b.LCADepth)
	outputHuman("Wu-Palmer: %.*f\n", cfg.Precision, b.Score)
	return nil
}

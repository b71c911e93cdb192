package main

import (
	"github.com/meshwup/meshwup/internal/taxonomy"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Build the taxonomy and summarize it",
	Long: `Build the taxonomy from the MeSH dump and print its size, the build report
and the nodes at one depth (2 by default: the top-level disease categories).`,
	Args: cobra.NoArgs,
	RunE: runTree,
}

var (
	treeSource string
	treeDepth  int
)

func init() {
	rootCmd.AddCommand(treeCmd)

	treeCmd.Flags().StringVar(&treeSource, "source", "", "MeSH dump (default from config)")
	treeCmd.Flags().IntVar(&treeDepth, "depth", 2, "List nodes at this depth")
}

// TreeResponse is the response for the tree command.
type TreeResponse struct {
	Root   string           `json:"root"`
	Stats  taxonomy.Stats   `json:"stats"`
	Report *taxonomy.Report `json:"report"`
	Depth  int              `json:"depth"`
	Nodes  []NodeSummary    `json:"nodes"`
}

func runTree(cmd *cobra.Command, args []string) error {
	if treeSource != "" {
		cfg.Source = treeSource
	}
	tax, report := mustBuildTaxonomy(cmd.Context())

	resp := TreeResponse{
		Root:   tax.Root().ID,
		Stats:  tax.Stats(),
		Report: report,
		Depth:  treeDepth,
		Nodes:  []NodeSummary{},
	}
	for _, n := range tax.AtDepth(treeDepth) {
		resp.Nodes = append(resp.Nodes, summarizeNode(n))
	}

	if !humanOutput {
		return outputJSON(resp)
	}

	outputHuman("Root: %s\n", resp.Root)
	outputHuman("Nodes: %d (%d implicit)\n", resp.Stats.Nodes, report.Implicit)
	outputHuman("Unique terms: %d\n", resp.Stats.UniqueTerms)
	outputHuman("Possible pairs: %d\n", resp.Stats.MaxPairs)
	if n := len(report.Unlinked()); n > 0 {
		outputHuman("Unlinked nodes: %d\n", n)
	}
	outputHuman("\nDepth %d (%d nodes):\n", treeDepth, len(resp.Nodes))
	for _, n := range resp.Nodes {
		outputHuman("  %-8s %3d children  %s\n", n.ID, n.Children, formatTerms(n.Terms, MaxTermsShown))
	}
	return nil
}

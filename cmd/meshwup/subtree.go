package main

import (
	"strings"

	"github.com/meshwup/meshwup/internal/taxonomy"
	"github.com/spf13/cobra"
)

var subtreeCmd = &cobra.Command{
	Use:   "subtree <tree-number>",
	Short: "Print a node and its descendants",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubtree,
}

var subtreeMaxLevel int

func init() {
	rootCmd.AddCommand(subtreeCmd)

	subtreeCmd.Flags().IntVar(&subtreeMaxLevel, "levels", 0, "Levels below the node to print (0 = all)")
}

// SubtreeEntry is one node of a subtree listing.
type SubtreeEntry struct {
	Level int `json:"level"`
	NodeSummary
}

func runSubtree(cmd *cobra.Command, args []string) error {
	id := args[0]
	mustValidateTreeNumber(id)
	tax, _ := mustBuildTaxonomy(cmd.Context())

	entries := []SubtreeEntry{}
	found := tax.Walk(id, func(n *taxonomy.Node, level int) {
		if subtreeMaxLevel > 0 && level > subtreeMaxLevel {
			return
		}
		entries = append(entries, SubtreeEntry{Level: level, NodeSummary: summarizeNode(n)})
	})
	if !found {
		exitWithError(ExitDataError, "tree number not found: %s", id)
	}

	if !humanOutput {
		return outputJSON(entries)
	}
	for _, e := range entries {
		outputHuman("%s%s (depth %d, %d children)", strings.Repeat("  ", e.Level), e.ID, e.Depth, e.Children)
		if e.Ref != "" {
			outputHuman(" %s", e.Ref)
		}
		outputHuman("\n%s  %s\n", strings.Repeat("  ", e.Level), formatTerms(e.Terms, MaxTermsShown))
	}
	return nil
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/meshwup/meshwup/internal/config"
	"github.com/meshwup/meshwup/internal/dataset"
	"github.com/meshwup/meshwup/internal/download"
	"github.com/meshwup/meshwup/internal/mesh"
	"github.com/meshwup/meshwup/internal/ohsumed"
	"github.com/meshwup/meshwup/internal/taxonomy"
	"github.com/meshwup/meshwup/internal/treenum"
)

// MaxTermsShown caps the terms printed per node in human output.
const MaxTermsShown = 5

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// exitCodeFor maps an error to the exit code of its class.
func exitCodeFor(err error) int {
	var netErr net.Error
	switch {
	case errors.Is(err, config.ErrInvalidValue):
		return ExitConfigError
	case errors.Is(err, taxonomy.ErrNoRoot),
		errors.Is(err, mesh.ErrNoTreeNumbers),
		errors.Is(err, dataset.ErrBadHeader),
		errors.Is(err, ohsumed.ErrNoCategories),
		errors.Is(err, treenum.ErrEmptyIdentifier),
		errors.Is(err, treenum.ErrInvalidIdentifier):
		return ExitDataError
	case errors.Is(err, download.ErrHTTPStatus), errors.As(err, &netErr):
		return ExitNetworkError
	default:
		return ExitError
	}
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NodeSummary describes one taxonomy node.
type NodeSummary struct {
	ID       string   `json:"id"`
	Depth    int      `json:"depth"`
	Parent   string   `json:"parent,omitempty"`
	Children int      `json:"children"`
	Ref      string   `json:"ref,omitempty"`
	Terms    []string `json:"terms"`
}

func summarizeNode(n *taxonomy.Node) NodeSummary {
	return NodeSummary{
		ID:       n.ID,
		Depth:    n.Depth,
		Parent:   n.Parent,
		Children: len(n.Children),
		Ref:      n.Ref,
		Terms:    n.Terms(),
	}
}

// formatTerms joins terms, abbreviating after limit entries.
func formatTerms(terms []string, limit int) string {
	if len(terms) <= limit {
		return strings.Join(terms, "; ")
	}
	return fmt.Sprintf("%s; ... (+%d)", strings.Join(terms[:limit], "; "), len(terms)-limit)
}

// formatBytes formats bytes in a human-readable way.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

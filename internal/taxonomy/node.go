// Package taxonomy builds an in-memory tree from MeSH tree numbers.
//
// The Taxonomy owns every Node through an identifier index. Parent and child
// links are stored as identifiers and resolved through that index, so a
// node never holds a pointer to another node.
package taxonomy

import "sort"

// Node is one position in the hierarchy.
type Node struct {
	ID       string   `json:"id"`
	Ref      string   `json:"ref,omitempty"`
	Parent   string   `json:"parent,omitempty"`
	Children []string `json:"children,omitempty"`
	Depth    int      `json:"depth"`

	terms []string
}

// Terms returns the node's terms, sorted.
func (n *Node) Terms() []string {
	return n.terms
}

// HasTerms reports whether the node carries at least one term.
func (n *Node) HasTerms() bool {
	return len(n.terms) > 0
}

// termSet collects terms for a node during construction.
type termSet map[string]struct{}

func (s termSet) add(terms ...string) {
	for _, t := range terms {
		if t == "" {
			continue
		}
		s[t] = struct{}{}
	}
}

func (s termSet) sorted() []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

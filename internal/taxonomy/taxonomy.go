package taxonomy

import (
	"errors"
	"sort"

	"github.com/meshwup/meshwup/internal/treenum"
)

// ErrNoRoot is returned when a build produced no root; nothing can be sampled.
var ErrNoRoot = errors.New("taxonomy has no root node")

// Taxonomy is the result of one build: a node index plus the designated root.
type Taxonomy struct {
	h     treenum.Hierarchy
	root  string
	nodes map[string]*Node
}

// Stats summarizes the term inventory of a taxonomy.
type Stats struct {
	Nodes       int   `json:"nodes"`
	UniqueTerms int   `json:"unique_terms"`
	MaxPairs    int64 `json:"max_pairs"` // Distinct unordered term pairs
}

// Hierarchy returns the hierarchy the taxonomy was built against.
func (t *Taxonomy) Hierarchy() treenum.Hierarchy {
	return t.h
}

// Root returns the root node, or nil if the build produced none.
func (t *Taxonomy) Root() *Node {
	if t.root == "" {
		return nil
	}
	return t.nodes[t.root]
}

// CheckRoot returns ErrNoRoot when the taxonomy has no root.
func (t *Taxonomy) CheckRoot() error {
	if t.Root() == nil {
		return ErrNoRoot
	}
	return nil
}

// Node returns the node with the given tree number.
func (t *Taxonomy) Node(id string) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Len returns the number of nodes.
func (t *Taxonomy) Len() int {
	return len(t.nodes)
}

// IDs returns every tree number, sorted.
func (t *Taxonomy) IDs() []string {
	ids := make([]string, 0, len(t.nodes))
	for id := range t.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Parent returns the parent of n, or nil for the root and unlinked nodes.
func (t *Taxonomy) Parent(n *Node) *Node {
	if n == nil || n.Parent == "" {
		return nil
	}
	return t.nodes[n.Parent]
}

// Children returns the children of n in tree number order.
func (t *Taxonomy) Children(n *Node) []*Node {
	if n == nil {
		return nil
	}
	out := make([]*Node, 0, len(n.Children))
	for _, id := range n.Children {
		out = append(out, t.nodes[id])
	}
	return out
}

// TermBearing returns the nodes with at least one term, sorted by tree number.
func (t *Taxonomy) TermBearing() []*Node {
	return t.filter(func(n *Node) bool { return n.HasTerms() })
}

// AtDepth returns the nodes at depth d, sorted by tree number.
func (t *Taxonomy) AtDepth(d int) []*Node {
	return t.filter(func(n *Node) bool { return n.Depth == d })
}

func (t *Taxonomy) filter(keep func(*Node) bool) []*Node {
	var out []*Node
	for _, id := range t.IDs() {
		if n := t.nodes[id]; keep(n) {
			out = append(out, n)
		}
	}
	return out
}

// Walk visits the subtree rooted at id depth-first, children in tree number
// order. level is 0 for the starting node. Returns false if id is unknown.
func (t *Taxonomy) Walk(id string, fn func(n *Node, level int)) bool {
	start, ok := t.nodes[id]
	if !ok {
		return false
	}
	var visit func(n *Node, level int)
	visit = func(n *Node, level int) {
		fn(n, level)
		for _, c := range t.Children(n) {
			visit(c, level+1)
		}
	}
	visit(start, 0)
	return true
}

// Stats counts nodes and distinct terms.
func (t *Taxonomy) Stats() Stats {
	terms := make(map[string]struct{})
	for _, n := range t.nodes {
		for _, term := range n.terms {
			terms[term] = struct{}{}
		}
	}
	u := int64(len(terms))
	return Stats{
		Nodes:       len(t.nodes),
		UniqueTerms: len(terms),
		MaxPairs:    u * (u - 1) / 2,
	}
}

// Package similarity scores pairs of tree numbers with the Wu-Palmer measure.
package similarity

import "github.com/meshwup/meshwup/internal/treenum"

// Breakdown records the inputs behind a Wu-Palmer score.
type Breakdown struct {
	A        string  `json:"a"`
	B        string  `json:"b"`
	DepthA   int     `json:"depth_a"`
	DepthB   int     `json:"depth_b"`
	LCA      string  `json:"lca"`
	LCADepth int     `json:"lca_depth"`
	Score    float64 `json:"score"`
}

// Scorer computes Wu-Palmer similarity within one hierarchy.
type Scorer struct {
	h treenum.Hierarchy
}

// NewScorer returns a Scorer for h.
func NewScorer(h treenum.Hierarchy) *Scorer {
	return &Scorer{h: h}
}

// WuPalmer returns 2*depth(lca) / (depth(a)+depth(b)).
// Identical identifiers score 1. A zero depth on either side, or no common
// ancestor, scores 0.
func (s *Scorer) WuPalmer(a, b string) float64 {
	return s.Explain(a, b).Score
}

// Explain computes the score and returns every intermediate value.
func (s *Scorer) Explain(a, b string) Breakdown {
	bd := Breakdown{A: a, B: b}
	if a == b {
		bd.Score = 1.0
		return bd
	}

	bd.DepthA = s.h.Depth(a)
	bd.DepthB = s.h.Depth(b)
	if bd.DepthA == 0 || bd.DepthB == 0 {
		return bd
	}

	bd.LCA, bd.LCADepth = s.h.LowestCommonAncestor(a, b)
	if bd.LCADepth == 0 {
		return bd
	}

	bd.Score = 2.0 * float64(bd.LCADepth) / float64(bd.DepthA+bd.DepthB)
	return bd
}

// WuPalmer scores a and b in the Diseases hierarchy.
func WuPalmer(a, b string) float64 {
	return NewScorer(treenum.Diseases).WuPalmer(a, b)
}

package sampler

import (
	"testing"

	"github.com/meshwup/meshwup/internal/logging"
	"github.com/meshwup/meshwup/internal/similarity"
	"github.com/meshwup/meshwup/internal/taxonomy"
	"github.com/meshwup/meshwup/internal/treenum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() Option {
	return WithLogger(logging.Discard())
}

func buildTaxonomy(t *testing.T, terms map[string][]string) *taxonomy.Taxonomy {
	t.Helper()
	tax, _ := taxonomy.Build(taxonomy.Input{Terms: terms},
		taxonomy.WithLogger(logging.Discard()))
	require.NoError(t, tax.CheckRoot())
	return tax
}

func newSampler(target int, seed uint64) *Sampler {
	cfg := DefaultConfig(target)
	cfg.Seed = seed
	return New(similarity.NewScorer(treenum.Diseases), cfg, quiet())
}

var meshTerms = map[string][]string{
	"C":           {"Diseases"},
	"C01":         {"Infections", "Infection"},
	"C01.123":     {"Abscess", "Abscesses"},
	"C01.123.456": {"Brain Abscess"},
	"C04":         {"Neoplasms", "Tumors", "Cancer"},
	"C04.557":     {"Neoplasms by Histologic Type"},
	"C14":         {"Cardiovascular Diseases"},
	"C14.907":     {"Vascular Diseases"},
}

func TestSample_ReachesTarget(t *testing.T) {
	tax := buildTaxonomy(t, meshTerms)
	res := newSampler(20, 42).Sample(tax.TermBearing())

	assert.Len(t, res.Pairs, 20)
	assert.Zero(t, res.Shortfall)
	assert.Equal(t, 20, res.Requested)
	assert.Equal(t, 400, res.MaxAttempts)
	assert.LessOrEqual(t, res.Attempts, res.MaxAttempts)
}

func TestSample_UniqueUnorderedPairs(t *testing.T) {
	tax := buildTaxonomy(t, meshTerms)
	res := newSampler(50, 7).Sample(tax.TermBearing())

	seen := make(map[termKey]bool)
	for _, p := range res.Pairs {
		assert.NotEqual(t, p.TermI, p.TermJ)
		k := keyOf(p.TermI, p.TermJ)
		assert.False(t, seen[k], "duplicate pair %v", k)
		seen[k] = true
	}
}

func TestSample_ScoresMatchSimilarity(t *testing.T) {
	tax := buildTaxonomy(t, meshTerms)
	scorer := similarity.NewScorer(treenum.Diseases)
	res := newSampler(30, 99).Sample(tax.TermBearing())

	for _, p := range res.Pairs {
		want := scorer.WuPalmer(p.NodeI, p.NodeJ)
		assert.InDelta(t, want, p.Similarity, 0.005+1e-9, "%s / %s", p.NodeI, p.NodeJ)
		assert.GreaterOrEqual(t, p.Similarity, 0.0)
		assert.LessOrEqual(t, p.Similarity, 1.0)
	}
}

func TestSample_ShortfallWhenTermsRunOut(t *testing.T) {
	nodes := []*taxonomy.Node{}
	tax := buildTaxonomy(t, map[string][]string{"C": {"alpha"}, "C01": {"beta"}})
	nodes = append(nodes, tax.TermBearing()...)

	res := newSampler(5, 1).Sample(nodes)

	// Two distinct terms admit exactly one unordered pair.
	assert.Len(t, res.Pairs, 1)
	assert.Equal(t, 4, res.Shortfall)
	assert.Equal(t, res.MaxAttempts, res.Attempts)
}

func TestSample_SingleNodeCanPairWithItself(t *testing.T) {
	n := buildTaxonomy(t, map[string][]string{"C": {"a", "b"}}).Root()
	res := newSampler(1, 3).Sample([]*taxonomy.Node{n})

	require.Len(t, res.Pairs, 1)
	assert.Equal(t, 1.0, res.Pairs[0].Similarity)
	assert.Equal(t, "C", res.Pairs[0].NodeI)
	assert.Equal(t, "C", res.Pairs[0].NodeJ)
}

func TestSample_Empty(t *testing.T) {
	res := newSampler(5, 1).Sample(nil)
	assert.Empty(t, res.Pairs)
	assert.Equal(t, 5, res.Shortfall)
	assert.Zero(t, res.Attempts)

	res = newSampler(0, 1).Sample(buildTaxonomy(t, meshTerms).TermBearing())
	assert.Empty(t, res.Pairs)
	assert.Zero(t, res.Shortfall)
}

func TestSample_Deterministic(t *testing.T) {
	tax := buildTaxonomy(t, meshTerms)
	a := newSampler(15, 2024).Sample(tax.TermBearing())
	b := newSampler(15, 2024).Sample(tax.TermBearing())
	assert.Equal(t, a.Pairs, b.Pairs)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.67, Round(2.0/3.0, 2))
	assert.Equal(t, 0.29, Round(2.0/7.0, 2))
	assert.Equal(t, 1.0, Round(1.0, 2))
	assert.Equal(t, 0.571, Round(4.0/7.0, 3))

	// Exact binary ties round to even.
	assert.Equal(t, 0.12, Round(0.125, 2))
	assert.Equal(t, 0.38, Round(0.375, 2))
	assert.Equal(t, 0.62, Round(0.625, 2))
	assert.Equal(t, 0.88, Round(0.875, 2))
	assert.Equal(t, 0.62, Round(similarity.WuPalmer("C01.001.002.003.004.005.006", "C01.001.002.003.009.008.007"), 2))
}

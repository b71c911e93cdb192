// Package sampler draws random, deduplicated term pairs from a taxonomy and
// scores them with Wu-Palmer similarity.
package sampler

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/meshwup/meshwup/internal/similarity"
	"github.com/meshwup/meshwup/internal/taxonomy"
	"golang.org/x/time/rate"
)

const (
	// DefaultAttemptMultiplier bounds attempts at this many times the target.
	DefaultAttemptMultiplier = 20
	// DefaultPrecision is the number of decimal digits kept in scores.
	DefaultPrecision = 2
	// DefaultDetailLogs is how many accepted pairs are logged with their breakdown.
	DefaultDetailLogs = 20
)

// Pair is one sampled, scored term pair.
type Pair struct {
	TermI      string  `json:"word_i"`
	TermJ      string  `json:"word_j"`
	Similarity float64 `json:"wup_similarity"`
	NodeI      string  `json:"node_i"`
	NodeJ      string  `json:"node_j"`
}

// Result is the outcome of one sampling run. A positive Shortfall means the
// attempt budget ran out first; that is not an error.
type Result struct {
	Pairs       []Pair `json:"pairs"`
	Requested   int    `json:"requested"`
	Attempts    int    `json:"attempts"`
	MaxAttempts int    `json:"max_attempts"`
	Shortfall   int    `json:"shortfall"`
	Seed        uint64 `json:"seed"`
}

// Scorer explains the similarity of two tree numbers.
type Scorer interface {
	Explain(a, b string) similarity.Breakdown
}

// Config controls a sampling run.
type Config struct {
	Target            int
	AttemptMultiplier int    // <= 0 means DefaultAttemptMultiplier
	Precision         int    // negative means DefaultPrecision
	Seed              uint64 // 0 picks a time-based seed
	DetailLogs        int
}

// DefaultConfig returns the reference settings for a target size.
func DefaultConfig(target int) Config {
	return Config{
		Target:            target,
		AttemptMultiplier: DefaultAttemptMultiplier,
		Precision:         DefaultPrecision,
		DetailLogs:        DefaultDetailLogs,
	}
}

// Sampler draws pairs. It is not safe for concurrent use.
type Sampler struct {
	scorer Scorer
	cfg    Config
	log    *slog.Logger
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithLogger sets the progress logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sampler) {
		s.log = l
	}
}

// New creates a Sampler.
func New(scorer Scorer, cfg Config, opts ...Option) *Sampler {
	if cfg.AttemptMultiplier <= 0 {
		cfg.AttemptMultiplier = DefaultAttemptMultiplier
	}
	if cfg.Precision < 0 {
		cfg.Precision = DefaultPrecision
	}
	if cfg.DetailLogs < 0 {
		cfg.DetailLogs = 0
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	s := &Sampler{scorer: scorer, cfg: cfg, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// termKey is an unordered term pair.
type termKey [2]string

func keyOf(a, b string) termKey {
	if b < a {
		a, b = b, a
	}
	return termKey{a, b}
}

// Sample runs one pass over nodes. Nodes are drawn independently and with
// replacement, so the same node may supply both terms; only identical terms
// and repeated term pairs are rejected. Nodes without terms are ignored.
func (s *Sampler) Sample(nodes []*taxonomy.Node) Result {
	res := Result{
		Requested:   s.cfg.Target,
		MaxAttempts: s.cfg.Target * s.cfg.AttemptMultiplier,
		Seed:        s.cfg.Seed,
	}

	pool := make([]*taxonomy.Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil && n.HasTerms() {
			pool = append(pool, n)
		}
	}
	if len(pool) == 0 || s.cfg.Target <= 0 {
		res.Shortfall = max(s.cfg.Target, 0)
		return res
	}

	rng := rand.New(rand.NewPCG(s.cfg.Seed, s.cfg.Seed^0x9e3779b97f4a7c15))
	seen := make(map[termKey]struct{}, s.cfg.Target)
	progress := rate.Sometimes{Every: 100, Interval: 5 * time.Second}

	for len(res.Pairs) < s.cfg.Target && res.Attempts < res.MaxAttempts {
		res.Attempts++

		n1 := pool[rng.IntN(len(pool))]
		n2 := pool[rng.IntN(len(pool))]
		t1 := n1.Terms()[rng.IntN(len(n1.Terms()))]
		t2 := n2.Terms()[rng.IntN(len(n2.Terms()))]

		if t1 == t2 {
			continue
		}
		key := keyOf(t1, t2)
		if _, dup := seen[key]; dup {
			continue
		}

		bd := s.scorer.Explain(n1.ID, n2.ID)
		if len(res.Pairs) < s.cfg.DetailLogs {
			s.log.Debug("sampled pair",
				slog.Int("n", len(res.Pairs)+1),
				slog.String("node_i", n1.ID),
				slog.String("word_i", t1),
				slog.String("node_j", n2.ID),
				slog.String("word_j", t2),
				slog.Int("depth_i", bd.DepthA),
				slog.Int("depth_j", bd.DepthB),
				slog.String("lca", bd.LCA),
				slog.Int("lca_depth", bd.LCADepth),
				slog.Float64("similarity", bd.Score))
		}

		res.Pairs = append(res.Pairs, Pair{
			TermI:      t1,
			TermJ:      t2,
			Similarity: Round(bd.Score, s.cfg.Precision),
			NodeI:      n1.ID,
			NodeJ:      n2.ID,
		})
		seen[key] = struct{}{}

		progress.Do(func() {
			s.log.Info("sampling progress",
				slog.Int("pairs", len(res.Pairs)),
				slog.Int("target", s.cfg.Target),
				slog.Int("attempts", res.Attempts))
		})
	}

	res.Shortfall = s.cfg.Target - len(res.Pairs)
	if res.Shortfall > 0 {
		s.log.Warn("attempt budget exhausted before target",
			slog.Int("pairs", len(res.Pairs)),
			slog.Int("target", s.cfg.Target),
			slog.Int("attempts", res.Attempts))
	}
	return res
}

// Round rounds x to the given number of decimal digits, halves to even.
// Wu-Palmer scores such as 0.625 are exact ties, so 0.625 becomes 0.62.
func Round(x float64, precision int) float64 {
	p := math.Pow10(precision)
	return math.RoundToEven(x*p) / p
}

package taxonomy

import (
	"log/slog"
	"sort"

	"github.com/meshwup/meshwup/internal/treenum"
)

// DefaultRootRef is the MeSH descriptor for Diseases, consulted when the
// root tree number carries no terms of its own.
const DefaultRootRef = "http://id.nlm.nih.gov/mesh/D004194"

// DefaultRootTerm is the last-resort term for the Diseases root.
const DefaultRootTerm = "Diseases"

// Resolver looks up external records (MeSH descriptors) for tree numbers.
type Resolver interface {
	// RefFor returns the primary external record of a tree number.
	RefFor(id string) (string, bool)
	// TermsForRef returns every term attached to an external record.
	TermsForRef(ref string) []string
	// LabelForRef returns a single descriptive label of an external record.
	LabelForRef(ref string) (string, bool)
}

// Input is everything the builder consumes.
type Input struct {
	// Terms maps tree numbers to their terms. Ancestors may be missing.
	Terms map[string][]string
	// Parents optionally overrides the parent derived from a tree number.
	// An override must name a strict ancestor; anything else is reported
	// as AnomalyInvalidParent and ignored.
	Parents map[string]string
	// Resolver is optional.
	Resolver Resolver
}

// Option configures Build.
type Option func(*builder)

// WithHierarchy sets the designated root category.
func WithHierarchy(h treenum.Hierarchy) Option {
	return func(b *builder) {
		b.h = h
	}
}

// WithRootFallback sets the external record and the literal term used when
// the root ends up without terms.
func WithRootFallback(ref, term string) Option {
	return func(b *builder) {
		b.rootRef = ref
		b.rootTerm = term
	}
}

// WithLogger sets the logger anomalies are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(b *builder) {
		b.log = l
	}
}

type builder struct {
	h        treenum.Hierarchy
	rootRef  string
	rootTerm string
	log      *slog.Logger
	report   *Report
}

// Build materializes every required node, backfills terms, then links nodes
// in ascending dot-count order. Anomalies are recorded in the Report and
// never abort the build. When the input holds no tree number of the root
// category the returned Taxonomy has no root.
func Build(in Input, opts ...Option) (*Taxonomy, *Report) {
	b := &builder{
		h:        treenum.Diseases,
		rootRef:  DefaultRootRef,
		rootTerm: DefaultRootTerm,
		log:      slog.Default(),
		report:   &Report{},
	}
	for _, opt := range opts {
		opt(b)
	}

	required := b.collect(in.Terms)
	t := &Taxonomy{h: b.h, nodes: make(map[string]*Node, len(required))}
	if len(required) == 0 {
		b.anomaly(Anomaly{Kind: AnomalyEmptyInput, Detail: "no tree numbers in category " + b.h.Root})
		return t, b.report
	}

	sets := b.materialize(t, required, in)
	b.backfill(t, sets, in.Resolver)
	for id, set := range sets {
		t.nodes[id].terms = set.sorted()
	}
	b.link(t, in.Parents)
	t.root = b.h.Root

	b.log.Info("built taxonomy",
		slog.String("root", t.root),
		slog.Int("nodes", len(t.nodes)),
		slog.Int("explicit", b.report.Explicit),
		slog.Int("implicit", b.report.Implicit),
		slog.Int("anomalies", len(b.report.Anomalies)))
	return t, b.report
}

// collect returns every tree number that must exist: those with terms in
// the root category, all their ancestors, and the root itself.
func (b *builder) collect(terms map[string][]string) map[string]bool {
	required := make(map[string]bool)
	for id := range terms {
		if !b.h.InCategory(id) {
			b.report.OutOfCategory++
			continue
		}
		required[id] = true
		b.report.Explicit++
	}
	if len(required) == 0 {
		return nil
	}

	explicit := make([]string, 0, len(required))
	for id := range required {
		explicit = append(explicit, id)
	}
	for _, id := range explicit {
		for _, anc := range treenum.Ancestors(id) {
			if !required[anc] {
				required[anc] = true
				b.report.Implicit++
			}
		}
	}
	if !required[b.h.Root] {
		required[b.h.Root] = true
		b.report.Implicit++
	}
	return required
}

// materialize creates one node per required tree number.
func (b *builder) materialize(t *Taxonomy, required map[string]bool, in Input) map[string]termSet {
	sets := make(map[string]termSet, len(required))
	for id := range required {
		n := &Node{ID: id, Depth: b.h.Depth(id)}
		if in.Resolver != nil {
			if ref, ok := in.Resolver.RefFor(id); ok {
				n.Ref = ref
			}
		}
		set := make(termSet)
		set.add(in.Terms[id]...)
		sets[id] = set
		t.nodes[id] = n
	}
	return sets
}

// backfill guarantees every node ends with at least one term: root fallback
// record or literal, then a label from the node's own record, then the tree
// number itself.
func (b *builder) backfill(t *Taxonomy, sets map[string]termSet, r Resolver) {
	root := sets[b.h.Root]
	switch {
	case len(root) > 0:
		b.report.RootTermSource = RootTermsFromInput
	default:
		if r != nil && b.rootRef != "" {
			root.add(r.TermsForRef(b.rootRef)...)
		}
		if len(root) > 0 {
			b.report.RootTermSource = RootTermsFromFallbackRef
		} else {
			root.add(b.rootTerm)
			b.report.RootTermSource = RootTermsFromFallbackTerm
		}
		b.log.Info("root has no terms of its own",
			slog.String("root", b.h.Root),
			slog.String("source", string(b.report.RootTermSource)))
	}

	if r != nil {
		for id, set := range sets {
			if len(set) > 0 || t.nodes[id].Ref == "" {
				continue
			}
			if label, ok := r.LabelForRef(t.nodes[id].Ref); ok {
				set.add(label)
				b.report.LabelBackfilled++
			}
		}
	}

	for id, set := range sets {
		if len(set) == 0 {
			set.add(id)
			b.report.IDBackfilled++
		}
	}
}

// link attaches each node to its parent. Tree numbers are processed by
// ascending dot count so parents are always handled before their children.
func (b *builder) link(t *Taxonomy, overrides map[string]string) {
	ids := make([]string, 0, len(t.nodes))
	for id := range t.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		di, dj := treenum.DotCount(ids[i]), treenum.DotCount(ids[j])
		if di != dj {
			return di < dj
		}
		return ids[i] < ids[j]
	})

	for _, id := range ids {
		if b.h.IsRoot(id) {
			continue
		}
		parentID, _ := b.h.Parent(id)
		if o, ok := overrides[id]; ok {
			// Overrides may skip levels but must point up the tree.
			if b.h.IsAncestor(o, id) {
				parentID = o
			} else {
				b.anomaly(Anomaly{Kind: AnomalyInvalidParent, ID: id, Parent: o, Detail: "override is not an ancestor; using " + parentID})
			}
		}
		parent, ok := t.nodes[parentID]
		if !ok {
			b.anomaly(Anomaly{Kind: AnomalyMissingParent, ID: id, Parent: parentID})
			continue
		}
		t.nodes[id].Parent = parentID
		parent.Children = append(parent.Children, id)
	}

	for _, n := range t.nodes {
		sort.Strings(n.Children)
	}
}

func (b *builder) anomaly(a Anomaly) {
	b.report.Anomalies = append(b.report.Anomalies, a)
	b.log.Warn("taxonomy anomaly",
		slog.String("kind", string(a.Kind)),
		slog.String("id", a.ID),
		slog.String("parent", a.Parent),
		slog.String("detail", a.Detail))
}

package mesh

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/knakk/rdf"
	"golang.org/x/time/rate"
)

// checkEvery is how many triples are read between context checks.
const checkEvery = 10000

// ErrNoTreeNumbers is returned when a dump links no descriptor to a tree number.
var ErrNoTreeNumbers = errors.New("no descriptors linked to tree numbers")

// Vocabulary holds the subset of the MeSH graph needed to build a taxonomy.
// It implements taxonomy.Resolver.
type Vocabulary struct {
	triples int

	treeNumbers map[string][]string // tree number -> descriptors, in file order
	concepts    map[string][]string // descriptor -> concepts
	terms       map[string][]string // concept -> terms (term and preferredTerm)
	labels      map[string][]string // subject -> rdfs:label
	prefLabels  map[string][]string // subject -> vocab:prefLabel

	descTerms map[string][]string // memoized descriptor -> sorted terms
}

// Stats describes a loaded vocabulary.
type Stats struct {
	Triples     int `json:"triples"`
	TreeNumbers int `json:"tree_numbers"`
	Descriptors int `json:"descriptors"`
}

func newVocabulary() *Vocabulary {
	return &Vocabulary{
		treeNumbers: make(map[string][]string),
		concepts:    make(map[string][]string),
		terms:       make(map[string][]string),
		labels:      make(map[string][]string),
		prefLabels:  make(map[string][]string),
		descTerms:   make(map[string][]string),
	}
}

// LoadFile opens path, transparently decompressing ".gz" files, and loads it.
func LoadFile(ctx context.Context, path string, logger *slog.Logger) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening MeSH dump: %w", err)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReaderSize(f, 1<<20)
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	return Load(ctx, r, logger)
}

// Load decodes N-Triples from r.
func Load(ctx context.Context, r io.Reader, logger *slog.Logger) (*Vocabulary, error) {
	if logger == nil {
		logger = slog.Default()
	}
	v := newVocabulary()
	dec := rdf.NewTripleDecoder(r, rdf.NTriples)
	progress := rate.Sometimes{Interval: 5 * time.Second}

	for {
		tr, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding triple %d: %w", v.triples+1, err)
		}
		v.triples++
		v.add(tr)

		if v.triples%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			progress.Do(func() {
				logger.Info("parsing MeSH dump", slog.Int("triples", v.triples))
			})
		}
	}

	if len(v.treeNumbers) == 0 {
		return nil, ErrNoTreeNumbers
	}
	s := v.Stats()
	logger.Info("parsed MeSH dump",
		slog.Int("triples", s.Triples),
		slog.Int("tree_numbers", s.TreeNumbers),
		slog.Int("descriptors", s.Descriptors))
	return v, nil
}

func (v *Vocabulary) add(tr rdf.Triple) {
	subj := tr.Subj.String()
	obj := tr.Obj.String()
	switch tr.Pred.String() {
	case PredTreeNumber:
		tn := TreeNumberFromIRI(obj)
		v.treeNumbers[tn] = append(v.treeNumbers[tn], subj)
	case PredConcept:
		v.concepts[subj] = append(v.concepts[subj], obj)
	case PredTerm, PredPreferredTerm:
		v.terms[subj] = append(v.terms[subj], obj)
	case PredLabel:
		if tr.Obj.Type() == rdf.TermLiteral {
			v.labels[subj] = append(v.labels[subj], cleanLabel(obj))
		}
	case PredPrefLabel:
		if tr.Obj.Type() == rdf.TermLiteral {
			v.prefLabels[subj] = append(v.prefLabels[subj], cleanLabel(obj))
		}
	}
}

// Stats returns counts for the loaded vocabulary.
func (v *Vocabulary) Stats() Stats {
	descs := make(map[string]struct{})
	for _, ds := range v.treeNumbers {
		for _, d := range ds {
			descs[d] = struct{}{}
		}
	}
	return Stats{Triples: v.triples, TreeNumbers: len(v.treeNumbers), Descriptors: len(descs)}
}

// RefFor returns the primary (first listed) descriptor of a tree number.
func (v *Vocabulary) RefFor(treeNumber string) (string, bool) {
	ds := v.treeNumbers[treeNumber]
	if len(ds) == 0 {
		return "", false
	}
	return ds[0], true
}

// TermsForRef returns every term label of a descriptor, following
// descriptor -> concept -> term -> label.
func (v *Vocabulary) TermsForRef(desc string) []string {
	if terms, ok := v.descTerms[desc]; ok {
		return terms
	}
	set := make(map[string]struct{})
	for _, c := range v.concepts[desc] {
		for _, term := range v.terms[c] {
			for _, l := range v.labels[term] {
				set[l] = struct{}{}
			}
			for _, l := range v.prefLabels[term] {
				set[l] = struct{}{}
			}
		}
	}
	var terms []string
	for t := range set {
		if t != "" {
			terms = append(terms, t)
		}
	}
	sort.Strings(terms)
	v.descTerms[desc] = terms
	return terms
}

// LabelForRef returns the first rdfs:label of a descriptor.
func (v *Vocabulary) LabelForRef(desc string) (string, bool) {
	ls := v.labels[desc]
	if len(ls) == 0 || ls[0] == "" {
		return "", false
	}
	return ls[0], true
}

// TreeNumberTerms maps each tree number to the terms of its primary descriptor.
// Tree numbers whose descriptor has no terms are omitted.
func (v *Vocabulary) TreeNumberTerms() map[string][]string {
	out := make(map[string][]string, len(v.treeNumbers))
	for tn := range v.treeNumbers {
		desc, _ := v.RefFor(tn)
		if terms := v.TermsForRef(desc); len(terms) > 0 {
			out[tn] = terms
		}
	}
	return out
}

package taxonomy

// AnomalyKind classifies a recoverable build problem.
type AnomalyKind string

const (
	// AnomalyEmptyInput means no tree number of the root category was supplied.
	AnomalyEmptyInput AnomalyKind = "empty_input"
	// AnomalyMissingParent means a node's parent is absent; the node stays unlinked.
	AnomalyMissingParent AnomalyKind = "missing_parent"
	// AnomalyInvalidParent means a parent override was not an ancestor of
	// the node and the derived parent was used instead.
	AnomalyInvalidParent AnomalyKind = "invalid_parent"
)

// RootTermSource records where the root's terms came from.
type RootTermSource string

const (
	RootTermsFromInput        RootTermSource = "input"
	RootTermsFromFallbackRef  RootTermSource = "fallback_ref"
	RootTermsFromFallbackTerm RootTermSource = "fallback_term"
)

// Anomaly is one recoverable problem found while building.
type Anomaly struct {
	Kind   AnomalyKind `json:"kind"`
	ID     string      `json:"id,omitempty"`
	Parent string      `json:"parent,omitempty"`
	Detail string      `json:"detail,omitempty"`
}

// Report summarizes a build.
type Report struct {
	Explicit        int            `json:"explicit"`        // Tree numbers supplied with terms
	Implicit        int            `json:"implicit"`        // Ancestors created to close the tree
	OutOfCategory   int            `json:"out_of_category"` // Supplied tree numbers outside the root category
	RootTermSource  RootTermSource `json:"root_term_source,omitempty"`
	LabelBackfilled int            `json:"label_backfilled"`
	IDBackfilled    int            `json:"id_backfilled"`
	Anomalies       []Anomaly      `json:"anomalies,omitempty"`
}

// Unlinked returns the IDs of nodes left without a parent.
func (r *Report) Unlinked() []string {
	var ids []string
	for _, a := range r.Anomalies {
		if a.Kind == AnomalyMissingParent {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

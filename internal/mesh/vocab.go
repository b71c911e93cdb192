// Package mesh reads the MeSH RDF dump (N-Triples) and extracts what the
// taxonomy builder needs: tree number to descriptor links and the terms of
// every descriptor.
package mesh

import "strings"

// Namespaces used by the MeSH RDF dump.
const (
	Namespace      = "http://id.nlm.nih.gov/mesh/"
	VocabNamespace = "http://id.nlm.nih.gov/mesh/vocab#"
	RDFSNamespace  = "http://www.w3.org/2000/01/rdf-schema#"
)

// Predicates the loader keeps. Everything else in the dump is skipped.
const (
	PredTreeNumber    = VocabNamespace + "treeNumber"
	PredConcept       = VocabNamespace + "concept"
	PredTerm          = VocabNamespace + "term"
	PredPreferredTerm = VocabNamespace + "preferredTerm"
	PredPrefLabel     = VocabNamespace + "prefLabel"
	PredLabel         = RDFSNamespace + "label"
)

// DescriptorIRI returns the IRI of a descriptor UI such as "D004194".
func DescriptorIRI(ui string) string {
	return Namespace + ui
}

// TreeNumberFromIRI returns the tree number at the end of a tree number IRI.
func TreeNumberFromIRI(iri string) string {
	if i := strings.LastIndex(iri, "/"); i >= 0 {
		return iri[i+1:]
	}
	return iri
}

// cleanLabel strips the surrounding quotes some literals keep.
func cleanLabel(s string) string {
	return strings.Trim(s, `"`)
}

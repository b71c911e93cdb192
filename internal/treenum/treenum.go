// Package treenum implements the MeSH tree number model: prefix-encoded
// hierarchical identifiers such as "C01.123.456".
//
// A tree number is a category letter followed by dot-separated numeric groups.
// The designated root (for example "C", Diseases) is never written in the
// tree numbers themselves; it is an implicit ancestor of every identifier in
// its category. Depth and path computations reflect that extra level.
package treenum

import (
	"errors"
	"regexp"
	"strings"
)

// Separator splits a tree number into its groups.
const Separator = "."

// DefaultRoot is the Diseases category of MeSH.
const DefaultRoot = "C"

// Validation errors.
var (
	ErrEmptyIdentifier   = errors.New("tree number is required")
	ErrInvalidIdentifier = errors.New("tree number must be a letter followed by digits, with dot-separated digit groups")
)

// Pattern matches well-formed tree numbers, including a bare category letter.
var Pattern = regexp.MustCompile(`^[A-Z]([0-9]+(\.[0-9]+)*)?$`)

// Hierarchy fixes the designated root category that identifier functions
// are evaluated against.
type Hierarchy struct {
	Root string
}

// Diseases is the hierarchy rooted at the MeSH "C" category.
var Diseases = Hierarchy{Root: DefaultRoot}

// New returns a hierarchy rooted at root, falling back to DefaultRoot.
func New(root string) Hierarchy {
	if root == "" {
		root = DefaultRoot
	}
	return Hierarchy{Root: root}
}

// Validate checks that id is a well-formed tree number.
func Validate(id string) error {
	if id == "" {
		return ErrEmptyIdentifier
	}
	if !Pattern.MatchString(id) {
		return ErrInvalidIdentifier
	}
	return nil
}

// DotCount returns the number of separators in id.
func DotCount(id string) int {
	return strings.Count(id, Separator)
}

// InCategory reports whether id belongs to the root's category.
func (h Hierarchy) InCategory(id string) bool {
	return id != "" && strings.HasPrefix(id, h.Root)
}

// IsRoot reports whether id is the designated root.
func (h Hierarchy) IsRoot(id string) bool {
	return id == h.Root
}

// PathComponents returns every strict ancestor of id followed by id itself,
// root first. Identifiers in the root category start at the root; others
// start at their own top-level segment.
func (h Hierarchy) PathComponents(id string) []string {
	if id == "" {
		return nil
	}

	path := make([]string, 0, DotCount(id)+2)
	if h.InCategory(id) && !h.IsRoot(id) {
		path = append(path, h.Root)
	}

	parts := strings.Split(id, Separator)
	for i := range parts {
		p := strings.Join(parts[:i+1], Separator)
		if len(path) > 0 && path[len(path)-1] == p {
			continue
		}
		path = append(path, p)
	}
	return path
}

// Depth returns the depth of id. The root has depth 1 and a top-level
// category segment depth 2; every dot adds one. Outside the root category
// depth is dots+1. Empty input yields 0, meaning no similarity can be
// computed.
func (h Hierarchy) Depth(id string) int {
	if id == "" {
		return 0
	}
	dots := DotCount(id)
	if !h.InCategory(id) {
		return dots + 1
	}
	if dots == 0 {
		if h.IsRoot(id) {
			return 1
		}
		return 2
	}
	return dots + 2
}

// Parent returns the direct parent of id: the root for a bare top-level
// category, otherwise id with its last group removed.
func (h Hierarchy) Parent(id string) (string, bool) {
	if id == "" || h.IsRoot(id) {
		return "", false
	}
	i := strings.LastIndex(id, Separator)
	if i < 0 {
		return h.Root, true
	}
	return id[:i], true
}

// Ancestors returns the identifiers obtained by stripping trailing groups
// from id, shortest first. The implicit root is not included.
func Ancestors(id string) []string {
	parts := strings.Split(id, Separator)
	if len(parts) < 2 {
		return nil
	}
	out := make([]string, 0, len(parts)-1)
	for i := 1; i < len(parts); i++ {
		out = append(out, strings.Join(parts[:i], Separator))
	}
	return out
}

// IsAncestor reports whether a is a strict ancestor of b.
func (h Hierarchy) IsAncestor(a, b string) bool {
	if a == "" || a == b {
		return false
	}
	pb := h.PathComponents(b)
	for _, p := range pb[:max(len(pb)-1, 0)] {
		if p == a {
			return true
		}
	}
	return false
}

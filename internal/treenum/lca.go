package treenum

// LowestCommonAncestor returns the deepest identifier shared by the paths of
// a and b together with its depth. Two identifiers of the root category with
// no shared segment meet at the root (depth 1). Otherwise, with nothing in
// common, it returns ("", 0).
func (h Hierarchy) LowestCommonAncestor(a, b string) (string, int) {
	pa := h.PathComponents(a)
	pb := h.PathComponents(b)

	var lca string
	for i := 0; i < min(len(pa), len(pb)); i++ {
		if pa[i] != pb[i] {
			break
		}
		lca = pa[i]
	}

	if lca == "" {
		if h.InCategory(a) && h.InCategory(b) {
			return h.Root, 1
		}
		return "", 0
	}
	return lca, h.Depth(lca)
}

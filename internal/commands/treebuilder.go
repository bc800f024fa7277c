// Package commands builds the flat tree a browsing session works on.
package commands

// TreeBuilder builds flat trees from a Lister.
type TreeBuilder struct {
	Lister Lister
}

// NewTreeBuilder returns a builder that lists directories through lister.
func NewTreeBuilder(lister Lister) *TreeBuilder {
	return &TreeBuilder{Lister: lister}
}

package fillet

import "github.com/chazu/lignin/pkg/brep"

// Fillet blends a single shared edge of shell (spec.md §4.F). On success
// it returns a new shell with the edge's two adjacent faces trimmed and
// a new blend face inserted between them; on any failure it returns
// shell unchanged alongside the error.
func Fillet(shell *brep.Shell, edge *brep.Edge, opts FilletOptions) (*brep.Shell, error) {
	return FilletChain(shell, []*brep.Edge{edge}, opts)
}

// FilletChain blends every edge of an explicit edge chain — the edges of
// an open or closed wire, or any ordered run of edges whose consecutive
// endpoints share identity — as one operation (spec.md §4.F "Chains").
// The radius profile's t parameter runs over [0,1] across the whole
// chain, not per edge.
func FilletChain(shell *brep.Shell, edges []*brep.Edge, opts FilletOptions) (*brep.Shell, error) {
	c := &chain{original: shell, opts: opts, edges: edges}
	return c.Run()
}

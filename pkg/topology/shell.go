package topology

import (
	"sync"

	"github.com/chazu/lignin/pkg/identity"
	"github.com/samber/lo"
)

// ShellCondition classifies a shell's manifold/orientation/closedness state
// (spec.md §4.T: "condition() → {disconnected, open, oriented,
// closed_but_not_oriented, regular}").
type ShellCondition int

const (
	// Disconnected reports a non-manifold shell: some edge is shared by
	// more than two face-uses.
	Disconnected ShellCondition = iota
	// Open reports a manifold shell with boundary edges whose face
	// orientations are not everywhere consistent.
	Open
	// Oriented reports a manifold shell whose adjacent faces agree in
	// orientation across every shared edge, open or closed, but (if
	// closed) with at least one singular vertex.
	Oriented
	// ClosedButNotOriented reports a manifold, boundary-free shell whose
	// face orientations are not everywhere consistent.
	ClosedButNotOriented
	// Regular reports a closed, oriented shell with no singular vertex —
	// the strongest condition, required before treating a shell as a
	// Solid boundary.
	Regular
)

func (c ShellCondition) String() string {
	switch c {
	case Disconnected:
		return "disconnected"
	case Open:
		return "open"
	case Oriented:
		return "oriented"
	case ClosedButNotOriented:
		return "closed_but_not_oriented"
	case Regular:
		return "regular"
	default:
		return "unknown"
	}
}

// Shell is a set of faces (spec.md §3 `Shell<P,C,S>`), guarded by a
// reader/writer lock so that parallel iteration (FaceIterPar et al.) can
// run concurrently with each other while a structural mutation (Append,
// AddFace) blocks until every reader finishes.
type Shell[P, C, S any] struct {
	mu    sync.RWMutex
	faces []*Face[P, C, S]
}

// NewShell builds an empty shell.
func NewShell[P, C, S any]() *Shell[P, C, S] { return &Shell[P, C, S]{} }

// ShellOf builds a shell from an existing face slice.
func ShellOf[P, C, S any](faces []*Face[P, C, S]) *Shell[P, C, S] {
	return &Shell[P, C, S]{faces: append([]*Face[P, C, S](nil), faces...)}
}

// Len returns the number of faces.
func (s *Shell[P, C, S]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.faces)
}

// Faces returns a copy of the shell's face handles.
func (s *Shell[P, C, S]) Faces() []*Face[P, C, S] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Face[P, C, S](nil), s.faces...)
}

// AddFace appends a face to the shell.
func (s *Shell[P, C, S]) AddFace(f *Face[P, C, S]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faces = append(s.faces, f)
}

// Append moves every face of other into s, leaving other untouched (unlike
// truck's in-place drain, since Go callers rarely want the source cleared).
func (s *Shell[P, C, S]) Append(other *Shell[P, C, S]) {
	add := other.Faces()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faces = append(s.faces, add...)
}

// FaceIterPar applies fn to every face concurrently, under the shell's
// read lock, returning once every call has completed (spec.md §5's
// "parallel iterators" requirement; guards against a concurrent structural
// mutation by holding the reader lock for the whole pass).
func (s *Shell[P, C, S]) FaceIterPar(fn func(*Face[P, C, S])) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var wg sync.WaitGroup
	for _, f := range s.faces {
		wg.Add(1)
		go func(f *Face[P, C, S]) {
			defer wg.Done()
			fn(f)
		}(f)
	}
	wg.Wait()
}

// EdgeIterPar applies fn to every boundary edge of every face concurrently.
func (s *Shell[P, C, S]) EdgeIterPar(fn func(*Edge[P, C])) {
	s.FaceIterPar(func(f *Face[P, C, S]) {
		for _, e := range f.BoundaryEdges() {
			fn(e)
		}
	})
}

// VertexIterPar applies fn to every boundary vertex of every face
// concurrently (duplicates are not suppressed; callers needing a unique
// set should key by identity.Token).
func (s *Shell[P, C, S]) VertexIterPar(fn func(*Vertex[P])) {
	s.EdgeIterPar(func(e *Edge[P, C]) {
		fn(e.Front())
		fn(e.Back())
	})
}

// innerEdgeExtraction returns (manifold, oriented, closed, innerEdgeIDs):
// manifold is false if any edge is used by more than two face boundary
// occurrences; oriented is false if any edge used twice has the same
// orientation both times; closed is true iff every edge is used exactly
// twice (no boundary edges); innerEdgeIDs is the set of edges used exactly
// twice (the "inner" edges of the shell, per truck_topology's terminology).
func (s *Shell[P, C, S]) innerEdgeExtraction() (manifold, oriented, closed bool, innerEdgeIDs map[identity.Token]bool) {
	type rec struct {
		count    int
		firstOri bool
	}
	seen := make(map[identity.Token]*rec)
	manifold, oriented = true, true
	innerEdgeIDs = make(map[identity.Token]bool)

	for _, f := range s.Faces() {
		for _, e := range f.BoundaryEdges() {
			id := e.ID()
			newOri := e.Orientation()
			if r, ok := seen[id]; ok {
				r.count++
				switch r.count {
				case 2:
					innerEdgeIDs[id] = true
					if newOri == r.firstOri {
						oriented = false
					}
				default:
					manifold = false
				}
			} else {
				seen[id] = &rec{count: 1, firstOri: newOri}
			}
		}
	}
	closed = len(innerEdgeIDs) == len(seen)
	return
}

// Condition computes the shell's ShellCondition (spec.md §4.T).
func (s *Shell[P, C, S]) Condition() ShellCondition {
	manifold, oriented, closed, _ := s.innerEdgeExtraction()
	switch {
	case !manifold:
		return Disconnected
	case closed && oriented && len(s.SingularVertices()) == 0:
		return Regular
	case closed && !oriented:
		return ClosedButNotOriented
	case oriented:
		return Oriented
	default:
		return Open
	}
}

// edgeAdjacency is the per-vertex "which edge-occurrences are consecutive
// in some face's boundary at this vertex" graph truck_topology's
// singular_vertices algorithm builds, keyed by edge identity.
type edgeAdjacency map[identity.Token][]identity.Token

// SingularVertices returns every vertex whose incident face corners do not
// assemble into a single disc (spec.md §4.T: "a vertex has no connected
// star of faces forming a disc in the link").
func (s *Shell[P, C, S]) SingularVertices() []*Vertex[P] {
	vertByID := make(map[identity.Token]*Vertex[P])
	adjacencyByVertex := make(map[identity.Token]edgeAdjacency)

	for _, f := range s.Faces() {
		for _, w := range f.Boundaries() {
			edges := w.Edges()
			if len(edges) == 0 {
				continue
			}
			for i, e := range edges {
				next := edges[(i+1)%len(edges)]
				v := e.Back()
				vertByID[v.ID()] = v
				adj, ok := adjacencyByVertex[v.ID()]
				if !ok {
					adj = make(edgeAdjacency)
					adjacencyByVertex[v.ID()] = adj
				}
				adj[e.ID()] = append(adj[e.ID()], next.ID())
				adj[next.ID()] = append(adj[next.ID()], e.ID())
			}
		}
	}

	var singular []*Vertex[P]
	for id, adj := range adjacencyByVertex {
		if !isSingleComponent(adj) {
			singular = append(singular, vertByID[id])
		}
	}
	return singular
}

// isSingleComponent reports whether adj (an undirected graph given as an
// adjacency list, possibly with duplicate edges) is a single connected
// component spanning every key, via one flood fill from an arbitrary node.
func isSingleComponent(adj edgeAdjacency) bool {
	if len(adj) == 0 {
		return true
	}
	visited := make(map[identity.Token]bool, len(adj))
	start := lo.Keys(adj)[0]
	stack := []identity.Token{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[n] {
			continue
		}
		visited[n] = true
		for _, nb := range adj[n] {
			if !visited[nb] {
				stack = append(stack, nb)
			}
		}
	}
	return len(visited) == len(adj)
}

// ExtractBoundaries returns every boundary edge of the shell (edges used
// by exactly one face occurrence) assembled into wires. Optimized when the
// shell is oriented; if not, the boundary edges are still all extracted,
// but their connected components may be split into more wires than the
// geometrically simple case.
func (s *Shell[P, C, S]) ExtractBoundaries() []*Wire[P, C] {
	_, _, _, innerEdgeIDs := s.innerEdgeExtraction()

	var boundaryEdges []*Edge[P, C]
	for _, f := range s.Faces() {
		for _, e := range f.BoundaryEdges() {
			if !innerEdgeIDs[e.ID()] {
				boundaryEdges = append(boundaryEdges, e)
			}
		}
	}

	byFront := make(map[identity.Token]*Edge[P, C], len(boundaryEdges))
	for _, e := range boundaryEdges {
		byFront[e.Front().ID()] = e
	}
	used := make(map[identity.Token]bool, len(boundaryEdges))

	var wires []*Wire[P, C]
	for _, e := range boundaryEdges {
		if used[e.ID()] {
			continue
		}
		w := NewWire[P, C]()
		cur := e
		for {
			used[cur.ID()] = true
			_ = w.PushBack(cur)
			next, ok := byFront[cur.Back().ID()]
			if !ok || used[next.ID()] {
				break
			}
			cur = next
		}
		wires = append(wires, w)
	}
	return wires
}

// UniqueEdgeIDs returns the distinct edge identities referenced across
// every face's boundary, via samber/lo's dedup helper.
func (s *Shell[P, C, S]) UniqueEdgeIDs() []identity.Token {
	var ids []identity.Token
	for _, f := range s.Faces() {
		for _, e := range f.BoundaryEdges() {
			ids = append(ids, e.ID())
		}
	}
	return lo.Uniq(ids)
}

// UniqueVertexIDs returns the distinct vertex identities referenced across
// every face's boundary.
func (s *Shell[P, C, S]) UniqueVertexIDs() []identity.Token {
	var ids []identity.Token
	for _, f := range s.Faces() {
		for _, w := range f.Boundaries() {
			for _, v := range w.Vertices() {
				ids = append(ids, v.ID())
			}
		}
	}
	return lo.Uniq(ids)
}

// GroupFacesBySurfaceIdentity groups faces by a caller-supplied surface
// identity key, used by the tessellator to batch faces sharing a surface
// (component X benefits when many faces trim the same underlying NURBS
// patch, e.g. a revolved surface split into several trimmed faces).
func GroupFacesBySurfaceIdentity[P, C, S any](faces []*Face[P, C, S], key func(*Face[P, C, S]) identity.Token) map[identity.Token][]*Face[P, C, S] {
	return lo.GroupBy(faces, key)
}

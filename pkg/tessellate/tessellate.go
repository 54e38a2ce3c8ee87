// Package tessellate implements the trimmed-surface tessellator (spec.md
// §4.X): given a Shell and a chord-height tolerance, it produces a
// polymesh.PolygonMesh whose shared edges are welded to a single polyline
// across adjacent faces.
package tessellate

import (
	"sync"

	"github.com/chazu/lignin/pkg/brep"
	"github.com/chazu/lignin/pkg/polymesh"
)

// Options configures a tessellation run.
type Options struct {
	// Tolerance bounds the chord-height sampling error (spec.md §4.X
	// contract: every point on every face is within Tolerance of the
	// nearest mesh vertex). Zero selects a small default.
	Tolerance float64
	// Progress, if non-nil, is invoked once per completed face from a
	// worker goroutine (spec.md §5: "an optional progress callback may be
	// invoked from worker threads and must be thread-safe"). completed
	// counts faces finished so far; total is the shell's face count.
	Progress func(completed, total int)
}

const defaultTolerance = 1e-3

// Tessellate meshes shell per spec.md §4.X: a sequential pass builds the
// edge-polyline map, then faces are tessellated in parallel (a manual
// indexed fan-out, since the result must be assembled back in input order
// for determinism regardless of goroutine scheduling — the "post-join
// assembly... concatenates per-face outputs in input order" rule from
// spec.md §5), matching the two-phase pattern topology.Shell.FaceIterPar
// uses for its own parallel joins.
func Tessellate(shell *brep.Shell, opts Options) (*polymesh.PolygonMesh, error) {
	tol := opts.Tolerance
	if tol <= 0 {
		tol = defaultTolerance
	}

	pool := newPositionPool()
	edgeMap := buildEdgePolylines(shell, tol, pool)

	faces := shell.Faces()
	perFace := make([][]polymesh.TriFace, len(faces))
	errs := make([]error, len(faces))

	var completed int
	var progressMu sync.Mutex
	var wg sync.WaitGroup
	for i, f := range faces {
		wg.Add(1)
		go func(i int, f *brep.Face) {
			defer wg.Done()
			tris, err := tessellateFace(f, edgeMap, tol, pool)
			perFace[i] = tris
			errs[i] = err
			if opts.Progress != nil {
				progressMu.Lock()
				completed++
				opts.Progress(completed, len(faces))
				progressMu.Unlock()
			}
		}(i, f)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	positions, normals, uvs := pool.snapshot()
	var triFaces []polymesh.TriFace
	for _, tris := range perFace {
		triFaces = append(triFaces, tris...)
	}
	return polymesh.NewPolygonMesh(positions, uvs, normals, triFaces, nil)
}

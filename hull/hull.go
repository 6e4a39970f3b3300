// Package hull computes concave hulls of 2D point sets with the
// k-nearest-neighbours heuristic: starting from the lowest point, the
// boundary repeatedly extends to the nearest candidate making the
// hardest right turn that does not cross the boundary built so far.
// Failed attempts retry with a larger k until the result encloses every
// input point; at k = n-1 the construction degenerates to the convex
// hull, which guarantees termination.
package hull

import (
	"errors"
	"log"

	"github.com/geomlab/concave-hull/kdtree"
	"github.com/geomlab/concave-hull/planar"
)

var (
	// ErrDegenerateInput reports fewer than 3 distinct points, or a
	// fully collinear point set with no enclosable area.
	ErrDegenerateInput = errors.New("hull: degenerate input: need at least 3 distinct non-collinear points")

	// ErrHullUnreachable reports that no enclosing polygon was found at
	// any k up to the point-count ceiling.
	ErrHullUnreachable = errors.New("hull: no enclosing polygon found at any k")

	// ErrNumericInstability reports non-finite coordinates or
	// coordinate magnitudes beyond the safe range of the fixed-epsilon
	// geometry tests.
	ErrNumericInstability = errors.New("hull: coordinates are not finite or exceed the safe numeric range")
)

// errNoValidCandidate signals a failed construction attempt. It never
// crosses the public boundary: the retry loop absorbs it and escalates k.
var errNoValidCandidate = errors.New("hull: no candidate produces a non-crossing edge")

// Concave computes the concave hull of the points. k tunes smoothness:
// small k hugs the points tightly, large k approaches the convex hull.
// k below 1 is lifted to 1; k at or above the point count is clamped to
// the convex-hull ceiling n-1.
//
// The returned ring winds counter-clockwise, starts at the minimum-y
// (then minimum-x) input point, does not repeat the first vertex, and
// uses only coordinates present in the input. Duplicate input points are
// collapsed before construction. Fixed input order and fixed k yield an
// identical ring on every call.
func Concave(points []planar.Point, k int) ([]planar.Point, error) {
	pts, err := ingest(points)
	if err != nil {
		return nil, err
	}

	if len(pts) == 3 {
		return orient(seedFirst(pts)), nil
	}

	if k < 1 {
		k = 1
	}
	if k > len(pts)-1 {
		k = len(pts) - 1
	}

	tree := kdtree.New(pts)
	for ; k <= len(pts)-1; k++ {
		tree.Reset()
		b := &builder{pts: pts, tree: tree, k: k}
		ring, err := b.run()
		if err != nil {
			log.Printf("hull: k=%v attempt failed: %v", k, err)
			continue
		}
		if !encloses(pts, ring) {
			log.Printf("hull: k=%v polygon does not enclose all points", k)
			continue
		}
		return orient(resolve(pts, ring)), nil
	}

	return nil, ErrHullUnreachable
}

// encloses reports whether every point not used as a hull vertex lies
// inside or on the boundary of the ring.
func encloses(pts []planar.Point, ring []int) bool {
	onRing := make([]bool, len(pts))
	for _, i := range ring {
		onRing[i] = true
	}
	poly := resolve(pts, ring)
	for i, p := range pts {
		if !onRing[i] && !planar.RingContains(poly, p) {
			return false
		}
	}
	return true
}

// resolve maps ring indices back to coordinates.
func resolve(pts []planar.Point, ring []int) []planar.Point {
	out := make([]planar.Point, len(ring))
	for i, idx := range ring {
		out[i] = pts[idx]
	}
	return out
}

// orient normalizes the ring to counter-clockwise winding, keeping the
// first vertex in place.
func orient(ring []planar.Point) []planar.Point {
	if planar.SignedArea(ring) < 0 {
		for l, r := 1, len(ring)-1; l < r; l, r = l+1, r-1 {
			ring[l], ring[r] = ring[r], ring[l]
		}
	}
	return ring
}

// seedFirst rotates the ring so it starts at the minimum-y (then
// minimum-x) vertex, matching the seed rule of the full construction.
func seedFirst(ring []planar.Point) []planar.Point {
	first := 0
	for i, p := range ring {
		if less(p, ring[first]) {
			first = i
		}
	}
	out := make([]planar.Point, 0, len(ring))
	out = append(out, ring[first:]...)
	out = append(out, ring[:first]...)
	return out
}

// less orders points by y, then x: the seed ordering.
func less(a, b planar.Point) bool {
	if a.Y() != b.Y() {
		return a.Y() < b.Y()
	}
	return a.X() < b.X()
}

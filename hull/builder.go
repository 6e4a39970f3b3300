package hull

import (
	"sort"

	"github.com/geomlab/concave-hull/kdtree"
	"github.com/geomlab/concave-hull/planar"
)

// builder runs a single construction attempt at a fixed k. It owns the
// in-progress ring; point availability lives in the shared tree, which
// the retry loop resets between attempts.
type builder struct {
	pts  []planar.Point
	tree *kdtree.Tree
	k    int

	ring []int
}

// run executes Seeking-Start, Extending and Closing and returns the
// closed ring as indices into b.pts, first vertex not repeated. A ring
// that cannot be closed without a crossing edge, or that exhausts the
// step budget, returns errNoValidCandidate.
func (b *builder) run() ([]int, error) {
	first := b.seek()
	current := first
	prevAngle := 0.0

	// Twice the point count guards against walks that never close on
	// pathological inputs.
	budget := 2 * len(b.pts)

	for step := 1; ; step++ {
		// The start point rejoins the candidate pool once the ring can
		// no longer close degenerately, making the closing edge
		// selectable like any other.
		if step == 4 {
			b.tree.Restore(first)
		}

		if step > budget {
			return b.close(current, first)
		}

		candidates := b.tree.Nearest(b.pts[current], b.k)
		if len(candidates) == 0 {
			return b.close(current, first)
		}
		b.sortByTurn(candidates, current, prevAngle)

		chosen := -1
		for _, c := range candidates {
			if b.admissible(current, c, first) {
				chosen = c
				break
			}
		}
		if chosen < 0 {
			return nil, errNoValidCandidate
		}

		if chosen == first {
			return b.ring, nil
		}

		b.ring = append(b.ring, chosen)
		b.tree.Remove(chosen)
		prevAngle = planar.Bearing(b.pts[chosen], b.pts[current])
		current = chosen
	}
}

// seek selects and consumes the starting vertex: minimum y, ties broken
// by minimum x.
func (b *builder) seek() int {
	first := 0
	for i := range b.pts {
		if less(b.pts[i], b.pts[first]) {
			first = i
		}
	}
	b.ring = append(b.ring, first)
	b.tree.Remove(first)
	return first
}

// sortByTurn orders candidates by decreasing turn angle relative to the
// previous edge bearing, so the hardest right turn is tried first.
// Exact angle ties keep the nearest-first query order (distance, then
// original index), which keeps construction deterministic.
func (b *builder) sortByTurn(candidates []int, current int, prevAngle float64) {
	turns := make(map[int]float64, len(candidates))
	for _, c := range candidates {
		turns[c] = planar.TurnAngle(b.pts[current], b.pts[c], prevAngle)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return turns[candidates[i]] > turns[candidates[j]]
	})
}

// admissible reports whether the edge current->cand crosses no existing
// non-adjacent ring edge. The edge ending at current is always exempt;
// when cand is the start vertex the first ring edge is exempt too, since
// the closing edge shares its start endpoint.
func (b *builder) admissible(current, cand, first int) bool {
	from, to := b.pts[current], b.pts[cand]
	lo := 0
	if cand == first {
		lo = 1
	}
	for i := lo; i < len(b.ring)-2; i++ {
		if planar.SegmentsIntersect(from, to, b.pts[b.ring[i]], b.pts[b.ring[i+1]]) {
			return false
		}
	}
	return true
}

// close attempts the explicit closing edge current->first. It is only
// reached from the guard paths (step budget exhausted or candidate pool
// empty); the normal path closes by selecting the start vertex.
func (b *builder) close(current, first int) ([]int, error) {
	if len(b.ring) < 3 || !b.admissible(current, first, first) {
		return nil, errNoValidCandidate
	}
	return b.ring, nil
}

// Package kdtree implements a bulk-loaded two-dimensional k-d tree over
// a fixed point set. Points are removed logically through an
// availability bitmap, so the tree can be reset between retries without
// rebuilding its topology.
package kdtree

import (
	"sort"
	"sync"

	"github.com/geomlab/concave-hull/planar"
)

// Subtrees at or above this size are built in their own goroutine.
const parallelBuildSize = 4096

// Tree is a static median-split 2-d tree. The node layout is
// pointerless: each subtree occupies a contiguous slice of the index
// permutation with its root at the middle element, splitting on x at
// even depths and y at odd depths.
type Tree struct {
	pts   []planar.Point
	order []int

	alive  []bool
	nAlive int
}

// New bulk-loads a tree over the points. The slice is retained and must
// not be mutated afterwards. All points start available.
func New(pts []planar.Point) *Tree {
	t := &Tree{
		pts:    pts,
		order:  make([]int, len(pts)),
		alive:  make([]bool, len(pts)),
		nAlive: len(pts),
	}
	for i := range t.order {
		t.order[i] = i
		t.alive[i] = true
	}

	var wg sync.WaitGroup
	t.build(t.order, 0, &wg)
	wg.Wait()
	return t
}

func (t *Tree) build(sub []int, axis int, wg *sync.WaitGroup) {
	if len(sub) <= 1 {
		return
	}

	sort.Slice(sub, func(i, j int) bool {
		a, b := t.pts[sub[i]], t.pts[sub[j]]
		if a[axis] != b[axis] {
			return a[axis] < b[axis]
		}
		if a[axis^1] != b[axis^1] {
			return a[axis^1] < b[axis^1]
		}
		return sub[i] < sub[j]
	})

	mid := len(sub) / 2
	left, right := sub[:mid], sub[mid+1:]
	if len(sub) >= parallelBuildSize {
		wg.Add(1)
		go func() {
			defer wg.Done()
			t.build(left, axis^1, wg)
		}()
	} else {
		t.build(left, axis^1, wg)
	}
	t.build(right, axis^1, wg)
}

// Len returns the total number of points in the tree.
func (t *Tree) Len() int { return len(t.pts) }

// Alive returns the number of points currently available.
func (t *Tree) Alive() int { return t.nAlive }

// At returns the point with the given original index.
func (t *Tree) At(i int) planar.Point { return t.pts[i] }

// Remove marks the point with the given index unavailable. Idempotent.
func (t *Tree) Remove(i int) {
	if t.alive[i] {
		t.alive[i] = false
		t.nAlive--
	}
}

// Restore marks the point with the given index available again.
// Idempotent.
func (t *Tree) Restore(i int) {
	if !t.alive[i] {
		t.alive[i] = true
		t.nAlive++
	}
}

// Reset restores every point without touching the tree topology.
func (t *Tree) Reset() {
	for i := range t.alive {
		t.alive[i] = true
	}
	t.nAlive = len(t.alive)
}

// candidate tracks one point under consideration during a query.
type candidate struct {
	index  int
	distSq float64
}

func (c candidate) before(o candidate) bool {
	if c.distSq != o.distSq {
		return c.distSq < o.distSq
	}
	return c.index < o.index
}

// Nearest returns the indices of the k available points nearest q,
// nearest first. Distance ties break on the lower original index, which
// keeps queries deterministic for identical inputs. Fewer than k indices
// are returned only when fewer than k points remain available.
func (t *Tree) Nearest(q planar.Point, k int) []int {
	if k <= 0 || t.nAlive == 0 {
		return nil
	}
	if k > t.nAlive {
		k = t.nAlive
	}

	best := make([]candidate, 0, k)
	t.search(t.order, 0, q, k, &best)

	out := make([]int, len(best))
	for i, c := range best {
		out[i] = c.index
	}
	return out
}

func (t *Tree) search(sub []int, axis int, q planar.Point, k int, best *[]candidate) {
	if len(sub) == 0 {
		return
	}

	mid := len(sub) / 2
	idx := sub[mid]
	if t.alive[idx] {
		offer(best, candidate{index: idx, distSq: planar.DistSq(q, t.pts[idx])}, k)
	}
	if len(sub) == 1 {
		return
	}

	delta := q[axis] - t.pts[idx][axis]
	near, far := sub[:mid], sub[mid+1:]
	if delta > 0 {
		near, far = far, near
	}

	t.search(near, axis^1, q, k, best)

	// The far side can only matter if the splitting plane is closer
	// than the current k-th best.
	if len(*best) < k || delta*delta <= (*best)[len(*best)-1].distSq {
		t.search(far, axis^1, q, k, best)
	}
}

// offer inserts c into the ordered candidate list, keeping at most k
// entries.
func offer(best *[]candidate, c candidate, k int) {
	b := *best
	if len(b) == k && b[len(b)-1].before(c) {
		return
	}

	pos := sort.Search(len(b), func(i int) bool { return c.before(b[i]) })
	if len(b) < k {
		b = append(b, candidate{})
	}
	copy(b[pos+1:], b[pos:])
	b[pos] = c
	*best = b
}

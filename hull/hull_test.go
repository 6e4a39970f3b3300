package hull

import (
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/geomlab/concave-hull/planar"
)

func randomCloud(n int, seed int64) []planar.Point {
	rng := rand.New(rand.NewSource(seed))
	pts := make([]planar.Point, n)
	for i := range pts {
		pts[i] = planar.Point{rng.Float64() * 100, rng.Float64() * 100}
	}
	return pts
}

func gridCloud(w, h int) []planar.Point {
	pts := make([]planar.Point, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pts = append(pts, planar.Point{float64(x), float64(y)})
		}
	}
	return pts
}

// ringIsSimple reports whether no two non-adjacent ring edges intersect.
func ringIsSimple(ring []planar.Point) bool {
	m := len(ring)
	for i := 0; i < m; i++ {
		for j := i + 1; j < m; j++ {
			if j == i+1 || (i == 0 && j == m-1) {
				continue // adjacent edges share a vertex
			}
			if planar.SegmentsIntersect(ring[i], ring[(i+1)%m], ring[j], ring[(j+1)%m]) {
				return false
			}
		}
	}
	return true
}

// ringEncloses reports whether every point is a ring vertex or contained
// by the ring.
func ringEncloses(ring []planar.Point, pts []planar.Point) bool {
	vertex := make(map[planar.Point]bool, len(ring))
	for _, v := range ring {
		vertex[v] = true
	}
	for _, p := range pts {
		if !vertex[p] && !planar.RingContains(ring, p) {
			return false
		}
	}
	return true
}

func TestTriangle(t *testing.T) {
	pts := []planar.Point{{0, 1}, {-1, 0}, {1, 0}}
	want := []planar.Point{{-1, 0}, {1, 0}, {0, 1}}

	for _, k := range []int{1, 2, 3, 100} {
		t.Run(fmt.Sprintf("k=%v", k), func(t *testing.T) {
			got, err := Concave(pts, k)
			if err != nil {
				t.Fatalf("Concave: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Concave = %v, want %v", got, want)
			}
		})
	}
}

func TestDegenerateInput(t *testing.T) {
	tests := []struct {
		desc   string
		points []planar.Point
	}{
		{"empty", nil},
		{"single point", []planar.Point{{1, 2}}},
		{"two points", []planar.Point{{1, 2}, {3, 4}}},
		{"three collinear", []planar.Point{{0, 0}, {1, 1}, {2, 2}}},
		{"many collinear", []planar.Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}}},
		{"duplicates of two points", []planar.Point{{1, 2}, {1, 2}, {3, 4}, {3, 4}}},
		{"all coincident", []planar.Point{{5, 5}, {5, 5}, {5, 5}}},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("test #%v", i), func(t *testing.T) {
			if _, err := Concave(tt.points, 3); err != ErrDegenerateInput {
				t.Errorf("%v: Concave err = %v, want ErrDegenerateInput", tt.desc, err)
			}
			if err := Validate(tt.points); err != ErrDegenerateInput {
				t.Errorf("%v: Validate err = %v, want ErrDegenerateInput", tt.desc, err)
			}
		})
	}
}

func TestNumericInstability(t *testing.T) {
	tests := [][]planar.Point{
		{{0, 0}, {1, 0}, {math.NaN(), 1}},
		{{0, 0}, {1, 0}, {0, math.Inf(1)}},
		{{0, 0}, {1, 0}, {0, math.Inf(-1)}},
		{{0, 0}, {1e18, 0}, {0, 1}},
		{{-1e12, 0}, {1, 0}, {0, 1}},
	}

	for i, pts := range tests {
		t.Run(fmt.Sprintf("test #%v", i), func(t *testing.T) {
			if _, err := Concave(pts, 3); err != ErrNumericInstability {
				t.Errorf("Concave err = %v, want ErrNumericInstability", err)
			}
			if err := Validate(pts); err != ErrNumericInstability {
				t.Errorf("Validate err = %v, want ErrNumericInstability", err)
			}
		})
	}
}

func TestValidateOK(t *testing.T) {
	if err := Validate([]planar.Point{{0, 0}, {10, 0}, {5, 8}}); err != nil {
		t.Errorf("Validate = %v, want nil", err)
	}
}

func TestSquareWithCentre(t *testing.T) {
	pts := []planar.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {5, 5}}

	ring, err := Concave(pts, 3)
	if err != nil {
		t.Fatalf("Concave: %v", err)
	}

	if !ringIsSimple(ring) {
		t.Errorf("ring is not simple: %v", ring)
	}
	if !planar.IsCCW(ring) {
		t.Errorf("ring is not counter-clockwise: %v", ring)
	}
	if ring[0] != (planar.Point{0, 0}) {
		t.Errorf("ring starts at %v, want the min-y point (0,0)", ring[0])
	}
	if !ringEncloses(ring, pts) {
		t.Errorf("ring does not enclose all inputs: %v", ring)
	}

	// The interior point must be accounted for explicitly: either a
	// hull vertex or strictly within the boundary.
	centre := planar.Point{5, 5}
	isVertex := false
	for _, v := range ring {
		if v == centre {
			isVertex = true
		}
	}
	if !isVertex && !planar.RingContains(ring, centre) {
		t.Error("centre point (5,5) neither a vertex nor contained")
	}
}

func TestDenseGrid(t *testing.T) {
	pts := gridCloud(40, 25) // 1,000 points
	ring, err := Concave(pts, 5)
	if err != nil {
		t.Fatalf("Concave: %v", err)
	}

	if !ringIsSimple(ring) {
		t.Error("grid ring is not simple")
	}
	if !ringEncloses(ring, pts) {
		t.Error("grid ring does not enclose all points")
	}
	if !planar.IsCCW(ring) {
		t.Error("grid ring is not counter-clockwise")
	}
}

func TestDeterminism(t *testing.T) {
	pts := randomCloud(200, 7)

	a, err := Concave(pts, 3)
	if err != nil {
		t.Fatalf("Concave: %v", err)
	}
	b, err := Concave(pts, 3)
	if err != nil {
		t.Fatalf("Concave: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical input and k produced different rings")
	}
}

func TestSimplicityAndEnclosure(t *testing.T) {
	for i, seed := range []int64{11, 23, 42} {
		t.Run(fmt.Sprintf("test #%v", i), func(t *testing.T) {
			pts := randomCloud(150, seed)
			ring, err := Concave(pts, 3)
			if err != nil {
				t.Fatalf("Concave: %v", err)
			}
			if !ringIsSimple(ring) {
				t.Error("ring is not simple")
			}
			if !ringEncloses(ring, pts) {
				t.Error("ring does not enclose all points")
			}

			// No synthesized coordinates: every ring vertex is an input.
			input := make(map[planar.Point]bool, len(pts))
			for _, p := range pts {
				input[p] = true
			}
			for _, v := range ring {
				if !input[v] {
					t.Errorf("ring vertex %v is not an input point", v)
				}
			}
		})
	}
}

func TestCeilingMatchesConvexHull(t *testing.T) {
	pts := randomCloud(60, 9)

	ring, err := Concave(pts, len(pts)-1)
	if err != nil {
		t.Fatalf("Concave at ceiling: %v", err)
	}
	if !planar.IsConvex(ring) {
		t.Errorf("ceiling ring is not convex: %v", ring)
	}
	if !ringEncloses(ring, pts) {
		t.Error("ceiling ring does not enclose all points")
	}

	// At the ceiling the vertex set is the convex hull's vertex set.
	want := make(map[planar.Point]bool)
	for _, v := range planar.ConvexHull(pts) {
		want[v] = true
	}
	got := make(map[planar.Point]bool)
	for _, v := range ring {
		got[v] = true
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ceiling vertex set = %v, want convex hull vertex set %v", got, want)
	}

	// A tight k never uses fewer vertices than the convex-hull limit.
	tight, err := Concave(pts, 3)
	if err != nil {
		t.Fatalf("Concave at k=3: %v", err)
	}
	if len(tight) < len(ring) {
		t.Errorf("k=3 ring has %v vertices, fewer than the ceiling's %v", len(tight), len(ring))
	}
}

func TestKOutOfRange(t *testing.T) {
	pts := randomCloud(10, 13)

	for _, k := range []int{-5, 0, 1, 9, 50} {
		t.Run(fmt.Sprintf("k=%v", k), func(t *testing.T) {
			ring, err := Concave(pts, k)
			if err != nil {
				t.Fatalf("Concave: %v", err)
			}
			if !ringEncloses(ring, pts) {
				t.Error("ring does not enclose all points")
			}
		})
	}
}

func TestDuplicatePointsCollapse(t *testing.T) {
	pts := []planar.Point{{0, 0}, {0, 0}, {10, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 10}, {5, 5}}

	ring, err := Concave(pts, 3)
	if err != nil {
		t.Fatalf("Concave: %v", err)
	}
	for i, v := range ring {
		if v == ring[(i+1)%len(ring)] {
			t.Fatalf("zero-length edge at vertex %v", v)
		}
	}
	if !ringEncloses(ring, pts) {
		t.Error("ring does not enclose all points")
	}
}

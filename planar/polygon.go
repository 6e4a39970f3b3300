package planar

import (
	"math"
	"sort"
)

// OnSegment reports whether p lies on the closed segment a-b (within Eps).
func OnSegment(p, a, b Point) bool {
	if math.Abs(Cross(a, b, p)) > Eps {
		return false
	}
	return math.Min(a.X(), b.X())-Eps <= p.X() && p.X() <= math.Max(a.X(), b.X())+Eps &&
		math.Min(a.Y(), b.Y())-Eps <= p.Y() && p.Y() <= math.Max(a.Y(), b.Y())+Eps
}

// RingContains reports whether p is inside or on the boundary of the
// ring. The ring is implicitly closed (first vertex not repeated).
// Interior membership uses an even-odd ray cast; boundary points always
// count as contained.
func RingContains(ring []Point, p Point) bool {
	if len(ring) < 3 {
		return false
	}

	for i := range ring {
		if OnSegment(p, ring[i], ring[(i+1)%len(ring)]) {
			return true
		}
	}

	x, y := p.X(), p.Y()
	var crossings int
	v0 := ring[len(ring)-1]
	for _, v1 := range ring {
		if ((v0.Y() <= y && y < v1.Y()) || (v1.Y() <= y && y < v0.Y())) &&
			math.Abs(v1.Y()-v0.Y()) >= Eps {
			t := (y - v0.Y()) / (v1.Y() - v0.Y())
			if x < v0.X()+t*(v1.X()-v0.X()) {
				crossings++
			}
		}
		v0 = v1
	}
	return crossings%2 != 0
}

// SignedArea returns the shoelace area of the ring: positive for
// counter-clockwise winding, negative for clockwise.
func SignedArea(ring []Point) float64 {
	var sum float64
	for i, a := range ring {
		b := ring[(i+1)%len(ring)]
		sum += a.X()*b.Y() - b.X()*a.Y()
	}
	return sum / 2
}

// IsCCW reports whether the ring winds counter-clockwise.
func IsCCW(ring []Point) bool {
	return SignedArea(ring) > 0
}

// IsConvex reports whether the ring is a convex polygon. Collinear
// triples are tolerated.
func IsConvex(ring []Point) bool {
	if len(ring) < 3 {
		return false
	}
	var sign float64
	for i := range ring {
		c := Cross(ring[i], ring[(i+1)%len(ring)], ring[(i+2)%len(ring)])
		if math.Abs(c) <= Eps {
			continue
		}
		if sign == 0 {
			sign = c
		} else if sign*c < 0 {
			return false
		}
	}
	return true
}

// ConvexHull returns the convex hull of the points using Andrew's
// monotone chain, in counter-clockwise order with the first vertex not
// repeated. The input slice is not modified.
func ConvexHull(points []Point) []Point {
	n := len(points)
	if n <= 2 {
		return append([]Point(nil), points...)
	}

	pts := append([]Point(nil), points...)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X() == pts[j].X() {
			return pts[i].Y() < pts[j].Y()
		}
		return pts[i].X() < pts[j].X()
	})

	var lower []Point
	for _, p := range pts {
		for len(lower) >= 2 && Cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	var upper []Point
	for i := n - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && Cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

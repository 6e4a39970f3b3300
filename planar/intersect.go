package planar

import "math"

// SegmentsIntersect reports whether the closed segments a1-a2 and b1-b2
// intersect. The segment supports are intersected as infinite lines via
// the determinant form and the crossing point is then bounds-checked
// against both segments. Parallel segments (determinant below Eps) never
// intersect, even when they overlap.
func SegmentsIntersect(a1, a2, b1, b2 Point) bool {
	ax1, ay1 := a1.X(), a1.Y()
	ax2, ay2 := a2.X(), a2.Y()
	bx1, by1 := b1.X(), b1.Y()
	bx2, by2 := b2.X(), b2.Y()

	ca1 := ay2 - ay1
	cb1 := ax1 - ax2
	cc1 := ca1*ax1 + cb1*ay1
	ca2 := by2 - by1
	cb2 := bx1 - bx2
	cc2 := ca2*bx1 + cb2*by1

	det := ca1*cb2 - ca2*cb1
	if math.Abs(det) < Eps {
		return false
	}

	x := (cb2*cc1 - cb1*cc2) / det
	y := (ca1*cc2 - ca2*cc1) / det

	return math.Min(ax1, ax2) <= x && x <= math.Max(ax1, ax2) &&
		math.Min(ay1, ay2) <= y && y <= math.Max(ay1, ay2) &&
		math.Min(bx1, bx2) <= x && x <= math.Max(bx1, bx2) &&
		math.Min(by1, by2) <= y && y <= math.Max(by1, by2)
}

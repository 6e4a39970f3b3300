// Package planar provides the stateless 2D numeric primitives used by
// concave hull construction: bearings and turn angles, segment
// intersection, ring containment and winding.
package planar

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Point is a 2D point in the plane.
type Point = mgl64.Vec2

// Eps is the fixed tolerance used for collinearity, intersection and
// containment tests throughout the module.
const Eps = 1e-10

// Bearing returns the direction from a to b as an angle in [0, 2*pi),
// increasing clockwise from the positive x axis.
func Bearing(a, b Point) float64 {
	return NormalizeAngle(-math.Atan2(b.Y()-a.Y(), b.X()-a.X()))
}

// NormalizeAngle maps an angle in radians into [0, 2*pi).
func NormalizeAngle(radians float64) float64 {
	if radians < 0 {
		return radians + 2*math.Pi
	}
	return radians
}

// TurnAngle returns the rotation from the bearing prev to the bearing
// from a to b, in [0, 2*pi). Larger values mean a harder right turn
// under the clockwise bearing convention.
func TurnAngle(a, b Point, prev float64) float64 {
	return NormalizeAngle(Bearing(a, b) - prev)
}

// Cross returns the z component of (b-a) x (c-a). It is positive when
// a,b,c wind counter-clockwise.
func Cross(a, b, c Point) float64 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	return ab.X()*ac.Y() - ab.Y()*ac.X()
}

// DistSq returns the squared Euclidean distance between a and b.
func DistSq(a, b Point) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// Collinear reports whether all points lie on a single line (within Eps).
// Fewer than 3 points are trivially collinear.
func Collinear(points []Point) bool {
	if len(points) < 3 {
		return true
	}

	// Find a second point distinct from the first to anchor the line.
	base := 1
	for base < len(points) && points[base] == points[0] {
		base++
	}
	if base == len(points) {
		return true
	}

	for _, p := range points[base+1:] {
		if math.Abs(Cross(points[0], points[base], p)) > Eps {
			return false
		}
	}
	return true
}

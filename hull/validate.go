package hull

import (
	"math"

	"github.com/jbeda/geom"

	"github.com/geomlab/concave-hull/planar"
)

// maxCoordinate bounds the accepted coordinate magnitude. Beyond it the
// products inside the intersection determinant lose more than the fixed
// planar.Eps tolerance to rounding.
const maxCoordinate = 1e9

// Validate reports whether the points form a usable input, without
// running hull construction. It returns ErrNumericInstability for
// non-finite or oversized coordinates and ErrDegenerateInput when fewer
// than 3 distinct points remain after deduplication or all points are
// collinear.
func Validate(points []planar.Point) error {
	_, err := ingest(points)
	return err
}

// ingest checks the input and returns the deduplicated point set,
// preserving first-occurrence order.
func ingest(points []planar.Point) ([]planar.Point, error) {
	if len(points) == 0 {
		return nil, ErrDegenerateInput
	}

	bounds := geom.Rect{Min: coord(points[0]), Max: coord(points[0])}
	seen := make(map[planar.Point]struct{}, len(points))
	pts := make([]planar.Point, 0, len(points))
	for _, p := range points {
		if !finite(p) {
			return nil, ErrNumericInstability
		}
		bounds.ExpandToContainCoord(coord(p))
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		pts = append(pts, p)
	}

	if math.Max(-bounds.Min.X, bounds.Max.X) > maxCoordinate ||
		math.Max(-bounds.Min.Y, bounds.Max.Y) > maxCoordinate {
		return nil, ErrNumericInstability
	}

	if len(pts) < 3 || planar.Collinear(pts) {
		return nil, ErrDegenerateInput
	}
	return pts, nil
}

func coord(p planar.Point) geom.Coord {
	return geom.Coord{X: p.X(), Y: p.Y()}
}

func finite(p planar.Point) bool {
	return !math.IsNaN(p.X()) && !math.IsInf(p.X(), 0) &&
		!math.IsNaN(p.Y()) && !math.IsInf(p.Y(), 0)
}

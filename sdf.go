package liquidglass

import "math"

// Source is a coordinate pair tagged as a texture-read position: "sample the
// backdrop here" rather than "this pixel is here". Warp functions return a
// Source; the sampler turns it back into a displacement relative to the
// sample's own position.
type Source struct {
	X, Y float64
}

// Texture tags a coordinate pair as a sampled source position.
func Texture(x, y float64) Source {
	return Source{X: x, Y: y}
}

// SmoothStep performs clamped Hermite interpolation between edge0 and edge1.
// It returns 0 at or before edge0, 1 at or after edge1, and t*t*(3-2t) in
// between, where t is the position of x within the range.
//
// The edges may be given in descending order (edge0 > edge1), producing the
// mirrored falloff. A degenerate range (edge0 == edge1) is treated as a hard
// step at the shared edge: 0 below it, 1 at or above it.
func SmoothStep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

// Length returns the Euclidean norm of the 2D vector (x, y).
func Length(x, y float64) float64 {
	return math.Hypot(x, y)
}

// Length3 returns the Euclidean norm of the 3D vector (x, y, z).
// Used by warp variants built on spherical distance fields.
func Length3(x, y, z float64) float64 {
	return math.Sqrt(x*x + y*y + z*z)
}

// RoundedRectSDF returns the signed distance from (x, y) to a rounded
// rectangle centered at the origin with the given half extents and corner
// radius. Negative inside, zero on the boundary, positive outside. Far from
// the rectangle the value approaches Length(x, y) - radius.
func RoundedRectSDF(x, y, halfWidth, halfHeight, radius float64) float64 {
	qx := math.Abs(x) - halfWidth + radius
	qy := math.Abs(y) - halfHeight + radius
	return math.Min(math.Max(qx, qy), 0) +
		Length(math.Max(qx, 0), math.Max(qy, 0)) - radius
}

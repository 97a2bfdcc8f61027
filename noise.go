package liquidglass

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// NoiseFunc produces a small scalar perturbation for the organic-motion term
// of a warp. Implementations must be pure: the same (x, y, t) always yields
// the same value.
type NoiseFunc func(x, y, t float64) float64

// RippleNoise is the default noise source: two crossed trigonometric waves.
// Cheap, periodic, and good enough for the subtle shimmer the glass effect
// needs.
func RippleNoise(x, y, t float64) float64 {
	return math.Sin(x*8+t) * math.Cos(y*6+t*0.7) * 0.08
}

// SimplexNoise returns a NoiseFunc backed by 3D OpenSimplex noise with the
// given seed, using animation time as the third axis. Smoother and less
// obviously periodic than RippleNoise; output amplitude matches it.
func SimplexNoise(seed int64) NoiseFunc {
	n := opensimplex.New(seed)
	return func(x, y, t float64) float64 {
		return n.Eval3(x, y, t) * 0.08
	}
}

package liquidglass

import (
	"errors"
	"math"
)

// ErrInvalidGeometry is returned when a surface has a non-positive width or
// height. No partial buffer is ever produced for degenerate geometry.
var ErrInvalidGeometry = errors.New("liquidglass: geometry width and height must be positive")

// Geometry describes the surface a displacement field is generated for.
// Width and Height are in surface pixels; Density is an optional sample
// multiplier (device pixel ratio), defaulting to 1 when zero or negative.
type Geometry struct {
	Width   int
	Height  int
	Density float64
}

// Validate reports whether the geometry can produce a sample grid.
func (g Geometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return ErrInvalidGeometry
	}
	return nil
}

// Grid returns the sample grid dimensions: the surface extents scaled by
// Density and rounded, never below 1x1 for valid geometry.
func (g Geometry) Grid() (w, h int) {
	d := g.Density
	if d <= 0 {
		d = 1
	}
	w = int(math.Round(float64(g.Width) * d))
	h = int(math.Round(float64(g.Height) * d))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// --- Sampler ---

// Sampler runs the measurement pass of a recomputation: it walks the sample
// grid in row-major order, evaluates the warp once per sample (or once per
// stride block at reduced quality), and records the raw (dx, dy)
// displacement pairs along with the largest absolute component seen.
//
// The raw buffer is owned by the Sampler and reused across passes when the
// grid size is unchanged; it is only valid until the next Sample call.
type Sampler struct {
	// Damping scales the measured maximum before it is used as the
	// normalization divisor. Values below 1 trade headroom for contrast;
	// the encoder clamps the resulting over-range samples.
	Damping float64

	raw    []float64
	gw, gh int
}

// NewSampler creates a Sampler with the given damping factor. A damping of
// zero or below falls back to the stock 0.6.
func NewSampler(damping float64) *Sampler {
	if damping <= 0 {
		damping = 0.6
	}
	return &Sampler{Damping: damping}
}

// Sample performs one full measurement pass and returns the damped maximum
// displacement magnitude. stride > 1 evaluates only every stride-th sample
// in each axis and replicates the result across the stride block — the
// reduced-quality path used during active dragging. The grid is always
// filled completely regardless of stride.
func (s *Sampler) Sample(geo Geometry, warp WarpFunc, env *Env, stride int) (float64, error) {
	if err := geo.Validate(); err != nil {
		return 0, err
	}
	gw, gh := geo.Grid()
	n := gw * gh * 2
	if cap(s.raw) < n {
		s.raw = make([]float64, n)
	}
	s.raw = s.raw[:n]
	s.gw, s.gh = gw, gh

	if stride < 1 {
		stride = 1
	}

	fw := float64(gw)
	fh := float64(gh)
	maxMag := 0.0

	for y := 0; y < gh; y += stride {
		for x := 0; x < gw; x += stride {
			pos := warp(float64(x)/fw, float64(y)/fh, env)
			dx := pos.X*fw - float64(x)
			dy := pos.Y*fh - float64(y)

			if a := math.Abs(dx); a > maxMag {
				maxMag = a
			}
			if a := math.Abs(dy); a > maxMag {
				maxMag = a
			}

			yEnd := min(y+stride, gh)
			xEnd := min(x+stride, gw)
			for by := y; by < yEnd; by++ {
				i := (by*gw + x) * 2
				for bx := x; bx < xEnd; bx++ {
					s.raw[i] = dx
					s.raw[i+1] = dy
					i += 2
				}
			}
		}
	}

	return maxMag * s.Damping, nil
}

// Raw returns the displacement pairs from the most recent pass, two float64s
// per sample in row-major order. The slice is reused by the next pass.
func (s *Sampler) Raw() []float64 {
	return s.raw
}

// Grid returns the grid dimensions of the most recent pass.
func (s *Sampler) Grid() (w, h int) {
	return s.gw, s.gh
}

package liquidglass

import "math"

// Pointer is a normalized pointer position in [0,1] surface coordinates,
// origin top-left. The centered default {0.5, 0.5} means "no pointer".
type Pointer struct {
	X, Y float64
}

// Env is the evaluation environment for one recomputation pass. It carries an
// immutable snapshot of the pointer and the animation clock, and records
// whether any sample actually read the pointer — warps that never call
// [Env.Pointer] do not cause pointer movement to schedule recomputations.
type Env struct {
	// Time is the animation clock in seconds.
	Time float64

	pointer Pointer
	used    bool
}

// NewEnv creates an evaluation environment with the given pointer snapshot
// and animation time.
func NewEnv(p Pointer, time float64) *Env {
	return &Env{Time: time, pointer: p}
}

// Pointer returns the pointer snapshot and marks it as read.
func (e *Env) Pointer() (x, y float64) {
	e.used = true
	return e.pointer.X, e.pointer.Y
}

// PointerUsed reports whether any call read the pointer through this Env.
func (e *Env) PointerUsed() bool {
	return e.used
}

// WarpFunc maps a normalized surface coordinate (u, v) in [0,1]x[0,1] to the
// source position the effect should sample from. Implementations must be
// deterministic for a given (u, v, env) and must not share mutable state
// between invocations; the sampler calls them once per grid sample.
type WarpFunc func(u, v float64, env *Env) Source

// IdentityWarp returns every coordinate unchanged, producing zero
// displacement everywhere.
func IdentityWarp(u, v float64, _ *Env) Source {
	return Texture(u, v)
}

// --- GlassWarp ---

// GlassWarp is the built-in warp: a rounded-rectangle distance field whose
// edge band bends sample positions toward the center, with optional
// pointer-proximity boost, organic noise, perspective, and a slow sway.
// Every term is individually configurable; zeroing a strength disables the
// term (and, for the pointer term, skips the pointer read entirely).
//
// All lengths are in centered normalized coordinates, so a HalfWidth of 0.32
// spans 64% of the surface.
type GlassWarp struct {
	// Rounded-rectangle footprint.
	HalfWidth    float64
	HalfHeight   float64
	CornerRadius float64

	// EdgeMargin offsets the distance field outward before the falloff;
	// EdgeFalloff is the width of the smoothstep band that ramps the
	// displacement in from the edge.
	EdgeMargin  float64
	EdgeFalloff float64

	// Pointer-proximity boost: displacement is multiplied by
	// 1 + PointerStrength within PointerRadius of the pointer.
	PointerRadius   float64
	PointerStrength float64

	// Organic motion. Noise defaults to RippleNoise; NoiseAmp scales it.
	NoiseAmp float64
	Noise    NoiseFunc

	// PerspectiveTilt skews displacement with vertical position, faking a
	// slight 3D lean. SwayAmp drives a slow time-based drift.
	PerspectiveTilt float64
	SwayAmp         float64
}

// NewGlassWarp returns a GlassWarp with the stock liquid-glass shape: a
// rounded rect covering ~64% x 44% of the surface with a soft wide edge band.
func NewGlassWarp() *GlassWarp {
	return &GlassWarp{
		HalfWidth:       0.32,
		HalfHeight:      0.22,
		CornerRadius:    0.6,
		EdgeMargin:      0.08,
		EdgeFalloff:     0.85,
		PointerRadius:   0.25,
		PointerStrength: 0.6,
		NoiseAmp:        0.25,
		Noise:           RippleNoise,
		PerspectiveTilt: 0.15,
		SwayAmp:         0.015,
	}
}

// Warp evaluates the glass warp at (u, v). It satisfies [WarpFunc].
func (w *GlassWarp) Warp(u, v float64, env *Env) Source {
	ix := u - 0.5
	iy := v - 0.5

	distToEdge := RoundedRectSDF(ix, iy, w.HalfWidth, w.HalfHeight, w.CornerRadius)

	boost := 0.0
	if w.PointerStrength != 0 {
		px, py := env.Pointer()
		influence := Length(ix-(px-0.5), iy-(py-0.5))
		boost = SmoothStep(w.PointerRadius, 0, influence) * w.PointerStrength
	}

	var nx, ny float64
	if w.NoiseAmp != 0 && w.Noise != nil {
		nx = w.Noise(ix*1.5, iy*1.5, env.Time*1.5) * w.NoiseAmp
		ny = w.Noise(ix*1.2, iy*1.8, env.Time*1.2) * w.NoiseAmp
	}

	displacement := SmoothStep(w.EdgeFalloff, 0, distToEdge-w.EdgeMargin)
	scaled := SmoothStep(0, 1, displacement*(1+boost))

	perspective := 1 + iy*w.PerspectiveTilt
	var swayX, swayY float64
	if w.SwayAmp != 0 {
		swayX = math.Cos(env.Time*0.4) * w.SwayAmp
		swayY = math.Sin(env.Time*0.25) * w.SwayAmp
	}

	return Texture(
		ix*scaled*perspective+nx+swayX+0.5,
		iy*scaled*perspective+ny+swayY+0.5,
	)
}

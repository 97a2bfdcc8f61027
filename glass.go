package liquidglass

import (
	"sync"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Glass owns one liquid-glass effect instance: a surface geometry, a warp,
// the sampler/encoder pair, a throttled scheduler, and the compositor the
// encoded frames are delivered to.
//
// Recomputation (sample, encode, present) runs as one atomic unit on
// whichever goroutine triggers it — the caller's for immediate runs, the
// scheduler timer's for deferred retries. All state access is serialized
// internally, so the public methods are safe for concurrent use.
type Glass struct {
	mu sync.Mutex

	geo       Geometry
	warp      WarpFunc
	glassWarp *GlassWarp // non-nil while the built-in warp is installed
	sampler   *Sampler
	encoder   *Encoder
	sched     *Scheduler
	comp      Compositor
	profile   Profile

	pointer  Pointer
	time     float64
	dragging bool

	// pointerUsed mirrors whether the previous pass read the pointer.
	// Starts true: until a pass proves otherwise, pointer moves must
	// schedule recomputation.
	pointerUsed bool

	hover  *gween.Tween
	scale  float64
	closed bool
}

// NewGlass creates a Glass with the stock profile. The compositor may be nil,
// in which case completed frames are discarded.
func NewGlass(geo Geometry, comp Compositor) (*Glass, error) {
	return NewGlassWithProfile(geo, comp, DefaultProfile())
}

// NewGlassWithProfile creates a Glass configured by the given profile.
// Degenerate geometry fails fast; nothing is allocated or scheduled.
func NewGlassWithProfile(geo Geometry, comp Compositor, p Profile) (*Glass, error) {
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	warp := p.Warp.NewWarp()
	g := &Glass{
		geo:         geo,
		glassWarp:   warp,
		warp:        warp.Warp,
		sampler:     NewSampler(p.Damping),
		encoder:     NewEncoder(p.Blue),
		comp:        comp,
		profile:     p,
		pointer:     Pointer{X: 0.5, Y: 0.5},
		pointerUsed: true,
	}
	g.sched = NewScheduler(p.Interval(), g.recompute)
	return g, nil
}

// Geometry returns the current surface geometry.
func (g *Glass) Geometry() Geometry {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.geo
}

// SetGeometry replaces the surface geometry and forces an immediate
// recomputation; a stale field under new dimensions is never presented.
func (g *Glass) SetGeometry(geo Geometry) error {
	if err := geo.Validate(); err != nil {
		return err
	}
	g.mu.Lock()
	g.geo = geo
	g.mu.Unlock()
	g.sched.Force()
	return nil
}

// SetWarp installs a custom warp function and forces a recomputation.
// Hover transitions only apply to the built-in warp and are disabled until
// the next NewGlassWithProfile.
func (g *Glass) SetWarp(warp WarpFunc) {
	g.mu.Lock()
	g.warp = warp
	g.glassWarp = nil
	g.hover = nil
	g.pointerUsed = true // unknown again until the next pass
	g.mu.Unlock()
	g.sched.Force()
}

// SetPointer updates the normalized pointer position. A throttled
// recomputation is scheduled only if the previous pass actually read the
// pointer; warps that ignore it cost nothing on pointer movement.
func (g *Glass) SetPointer(x, y float64) {
	g.mu.Lock()
	g.pointer = Pointer{X: x, Y: y}
	used := g.pointerUsed
	g.mu.Unlock()
	if used {
		g.sched.Request()
	}
}

// SetTime sets the animation clock and schedules a throttled recomputation.
func (g *Glass) SetTime(t float64) {
	g.mu.Lock()
	g.time = t
	g.mu.Unlock()
	g.sched.Request()
}

// Advance moves the animation clock forward by dt seconds, steps any active
// hover transition, and schedules a throttled recomputation.
func (g *Glass) Advance(dt float64) {
	g.mu.Lock()
	g.time += dt
	if g.hover != nil && g.glassWarp != nil {
		v, done := g.hover.Update(float32(dt))
		g.glassWarp.PointerStrength = float64(v)
		if done {
			g.hover = nil
		}
	}
	g.mu.Unlock()
	g.sched.Request()
}

// SetDragging toggles the reduced-quality sampling stride used while the
// surface is being actively dragged.
func (g *Glass) SetDragging(dragging bool) {
	g.mu.Lock()
	g.dragging = dragging
	g.mu.Unlock()
}

// SetHovered starts a tween of the pointer-effect strength toward the
// profile's hover target (or back to its resting value). The tween is
// advanced by [Glass.Advance]. No-op while a custom warp is installed.
func (g *Glass) SetHovered(hovered bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.glassWarp == nil {
		return
	}
	target := g.profile.Warp.PointerStrength
	if hovered {
		target = g.profile.Hover.Strength
	}
	g.hover = gween.New(
		float32(g.glassWarp.PointerStrength),
		float32(target),
		float32(g.profile.Hover.Duration),
		ease.OutQuad,
	)
}

// RequestUpdate schedules a throttled recomputation.
func (g *Glass) RequestUpdate() {
	g.sched.Request()
}

// ForceUpdate recomputes immediately, bypassing the throttle. Use for
// configuration changes where staleness is unacceptable.
func (g *Glass) ForceUpdate() {
	g.sched.Force()
}

// Scale returns the scale factor of the most recent completed recomputation.
func (g *Glass) Scale() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale
}

// Close cancels any pending deferred recomputation and detaches the
// compositor; a recomputation racing with Close is discarded rather than
// presented to a torn-down adapter.
func (g *Glass) Close() {
	g.sched.Close()
	g.mu.Lock()
	g.closed = true
	g.comp = nil
	g.mu.Unlock()
}

// recompute is the scheduler's run callback: one full sample + encode +
// present pass under the instance lock.
func (g *Glass) recompute() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}

	env := NewEnv(g.pointer, g.time)
	stride := 1
	if g.dragging {
		stride = 2
	}

	maxMag, err := g.sampler.Sample(g.geo, g.warp, env, stride)
	if err != nil {
		// Geometry is validated on every mutation; this is unreachable
		// short of a caller mutating Geometry fields through a race.
		return
	}
	g.pointerUsed = env.PointerUsed()

	buf := g.encoder.Encode(g.sampler.Raw(), maxMag)
	g.scale = maxMag

	if g.comp != nil {
		w, h := g.sampler.Grid()
		g.comp.Present(buf, w, h, maxMag)
	}
}

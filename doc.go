// Package liquidglass generates per-pixel displacement maps for a
// "liquid glass" refraction effect.
//
// The engine evaluates a signed-distance-field warp function over a sample
// grid, measures the largest displacement, normalizes the field into an
// 8-bit RGBA buffer (R = dx, G = dy), and hands the buffer plus a scale
// factor to a compositor. The compositor multiplies the decoded channels
// back out by the scale factor to recover true pixel offsets.
//
// # Quick start
//
// Create a [Glass] with a [Compositor] and drive it from your frame loop:
//
//	comp := liquidglass.NewDisplacementFilter()
//	glass, err := liquidglass.NewGlass(liquidglass.Geometry{Width: 240, Height: 160}, comp)
//	if err != nil {
//		log.Fatal(err)
//	}
//	// each frame:
//	glass.SetPointer(mx, my) // normalized [0,1]
//	glass.Advance(dt)
//	comp.Apply(background, screen)
//
// Pointer movement and animation time go through a throttled scheduler so
// that bursts of input coalesce into at most one recomputation per frame
// interval. Configuration changes use [Glass.ForceUpdate], which bypasses
// the throttle.
//
// # Custom warps
//
// The built-in [GlassWarp] shapes the distortion with a rounded-rectangle
// distance field. Any [WarpFunc] can be substituted; a warp that never
// reads the pointer through [Env.Pointer] opts out of pointer-driven
// recomputation automatically.
//
// The core computation ([Sampler], [Encoder], [Scheduler]) has no rendering
// dependencies; [DisplacementFilter] is the Ebitengine adapter and
// [BufferCompositor] is a headless sink for tests and custom backends.
package liquidglass

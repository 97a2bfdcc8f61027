package liquidglass

import (
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// Compositor receives each completed recomputation: the encoded RGBA
// displacement map, its grid dimensions, and the scale factor needed to
// decode channel values back into pixel offsets. Present is synchronous and
// must not fail; the core has no error path for adapters.
//
// The buffer is reused by the next recomputation — a Compositor that retains
// pixels past the call must copy them. Present may be invoked from the
// scheduler's timer goroutine.
type Compositor interface {
	Present(buf []byte, width, height int, scale float64)
}

// --- BufferCompositor ---

// BufferCompositor retains the most recent frame in its own storage. It is
// the headless sink: tests, custom backends, and anything that wants the raw
// map without a rendering dependency.
type BufferCompositor struct {
	buf    []byte
	w, h   int
	scale  float64
	frames int
}

// Present copies the frame into the compositor's own buffer.
func (c *BufferCompositor) Present(buf []byte, width, height int, scale float64) {
	if cap(c.buf) < len(buf) {
		c.buf = make([]byte, len(buf))
	}
	c.buf = c.buf[:len(buf)]
	copy(c.buf, buf)
	c.w, c.h = width, height
	c.scale = scale
	c.frames++
}

// Buffer returns the retained frame, valid until the next Present.
func (c *BufferCompositor) Buffer() []byte { return c.buf }

// Size returns the grid dimensions of the retained frame.
func (c *BufferCompositor) Size() (w, h int) { return c.w, c.h }

// Scale returns the scale factor of the retained frame.
func (c *BufferCompositor) Scale() float64 { return c.scale }

// Frames returns how many frames have been presented.
func (c *BufferCompositor) Frames() int { return c.frames }

// --- DisplacementFilter ---

// Filter is the contract for visual effects applied to a rendered image.
type Filter interface {
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
	// Padding returns the extra pixels needed around the source to
	// accommodate the effect. Zero means no padding.
	Padding() int
}

// The shader decodes each map texel back to a pixel offset — the inverse of
// the encoder's (d/scale + 0.5) mapping — and samples the source there.
// The map is fully opaque (A=255), so its premultiplied texels read back as
// straight values. //kage:unit pixels as required by Ebitengine.
const displacementShaderSrc = `//kage:unit pixels
package main

var Scale float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	d := imageSrc1At(src)
	off := (d.rg - 0.5) * Scale
	return imageSrc0At(src + off)
}
`

// Lazy shader compilation (no sync.Once — Apply only ever runs on the
// render goroutine).
var displacementShader *ebiten.Shader

func ensureDisplacementShader() *ebiten.Shader {
	if displacementShader == nil {
		s, err := ebiten.NewShader([]byte(displacementShaderSrc))
		if err != nil {
			panic("liquidglass: failed to compile displacement shader: " + err.Error())
		}
		displacementShader = s
	}
	return displacementShader
}

// DisplacementFilter is the Ebitengine compositor adapter. It implements
// both ends of the pipeline: [Compositor] on the producing side and
// [Filter] on the consuming side (Apply warps src into dst through the map).
//
// Present stages the encoded bytes under a lock; the GPU upload happens in
// Apply, on the render goroutine. Ebiten images are not goroutine-safe, and
// the scheduler's deferred retries present from a timer goroutine.
type DisplacementFilter struct {
	mu       sync.Mutex
	staging  []byte
	stagedW  int
	stagedH  int
	scale    float64
	dirty    bool

	mapImg     *ebiten.Image
	scaledMap  *ebiten.Image
	mapW, mapH int
	uniforms   map[string]any
	shaderOp   ebiten.DrawRectShaderOptions
	imgOp      ebiten.DrawImageOptions
}

// NewDisplacementFilter creates an empty displacement filter. Until the
// first Present it passes the source through unchanged.
func NewDisplacementFilter() *DisplacementFilter {
	return &DisplacementFilter{
		uniforms: make(map[string]any, 1),
	}
}

// Present stages the encoded displacement map for upload on the next Apply.
func (f *DisplacementFilter) Present(buf []byte, width, height int, scale float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cap(f.staging) < len(buf) {
		f.staging = make([]byte, len(buf))
	}
	f.staging = f.staging[:len(buf)]
	copy(f.staging, buf)
	f.stagedW, f.stagedH = width, height
	f.scale = scale
	f.dirty = true
}

// Scale returns the scale factor of the most recently presented map.
func (f *DisplacementFilter) Scale() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scale
}

// Apply warps src into dst through the displacement map. With no map yet, or
// a zero scale (no displacement anywhere), src is copied through untouched.
//
// DrawRectShader requires all source images to share dimensions, so a map
// whose grid differs from src is first rescaled onto an intermediate
// texture with bilinear filtering.
func (f *DisplacementFilter) Apply(src, dst *ebiten.Image) {
	f.upload()

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	f.mu.Lock()
	scale := f.scale
	f.mu.Unlock()

	if f.mapImg == nil || scale == 0 {
		f.imgOp.GeoM.Reset()
		f.imgOp.Filter = ebiten.FilterNearest
		dst.DrawImage(src, &f.imgOp)
		return
	}

	m := f.mapImg
	if f.mapW != w || f.mapH != h {
		m = f.ensureScaledMap(w, h)
	}

	shader := ensureDisplacementShader()
	// Scalar float32 boxing is unavoidable with Ebitengine's uniform API.
	f.uniforms["Scale"] = float32(scale)
	f.shaderOp.Images[0] = src
	f.shaderOp.Images[1] = m
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(w, h, shader, &f.shaderOp)
}

// upload moves staged bytes onto the GPU texture if a new frame arrived
// since the last Apply. The backing texture is reallocated only when the
// grid dimensions change.
func (f *DisplacementFilter) upload() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.dirty {
		return
	}
	if f.mapImg == nil || f.mapW != f.stagedW || f.mapH != f.stagedH {
		if f.mapImg != nil {
			f.mapImg.Deallocate()
		}
		f.mapImg = ebiten.NewImage(f.stagedW, f.stagedH)
		f.mapW, f.mapH = f.stagedW, f.stagedH
	}
	f.mapImg.WritePixels(f.staging)
	f.dirty = false
}

// ensureScaledMap maintains the intermediate texture used when map and
// source dimensions differ, rescaling the current map onto it.
func (f *DisplacementFilter) ensureScaledMap(w, h int) *ebiten.Image {
	if f.scaledMap == nil || f.scaledMap.Bounds().Dx() != w || f.scaledMap.Bounds().Dy() != h {
		if f.scaledMap != nil {
			f.scaledMap.Deallocate()
		}
		f.scaledMap = ebiten.NewImage(w, h)
	}
	f.imgOp.GeoM.Reset()
	f.imgOp.GeoM.Scale(float64(w)/float64(f.mapW), float64(h)/float64(f.mapH))
	f.imgOp.Filter = ebiten.FilterLinear
	f.scaledMap.DrawImage(f.mapImg, &f.imgOp)
	return f.scaledMap
}

// Padding returns the largest pixel offset the current map can produce, so
// offscreen buffers can be expanded to keep displaced reads in bounds.
func (f *DisplacementFilter) Padding() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int(math.Ceil(f.scale))
}

// Dispose releases the filter's GPU textures. The filter must not be used
// afterward.
func (f *DisplacementFilter) Dispose() {
	if f.mapImg != nil {
		f.mapImg.Deallocate()
		f.mapImg = nil
	}
	if f.scaledMap != nil {
		f.scaledMap.Deallocate()
		f.scaledMap = nil
	}
}

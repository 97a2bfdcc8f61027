package liquidglass

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FieldStats summarizes the per-sample displacement magnitudes of a raw
// field pass. Used for tuning profiles and debug overlays; never computed
// on the hot path unless asked for.
type FieldStats struct {
	Samples int
	Max     float64
	Mean    float64
	StdDev  float64
}

// ComputeFieldStats reduces a raw field (dx, dy float64 pairs, as returned
// by [Sampler.Raw]) to its magnitude statistics. An empty field yields the
// zero value.
func ComputeFieldStats(raw []float64) FieldStats {
	n := len(raw) / 2
	if n == 0 {
		return FieldStats{}
	}
	mags := make([]float64, n)
	for i := 0; i < n; i++ {
		mags[i] = math.Hypot(raw[2*i], raw[2*i+1])
	}
	return FieldStats{
		Samples: n,
		Max:     floats.Max(mags),
		Mean:    stat.Mean(mags, nil),
		StdDev:  stat.StdDev(mags, nil),
	}
}

// Log emits the stats as a structured record. A nil logger uses the default.
func (s FieldStats) Log(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("field",
		"samples", s.Samples,
		"max", s.Max,
		"mean", s.Mean,
		"stddev", s.StdDev,
	)
}

// --- FrameMonitor ---

// FrameMonitor keeps a rolling frames-per-second estimate, re-evaluated once
// per second. Timestamps are in milliseconds, matching the clocks of typical
// frame loops.
type FrameMonitor struct {
	frameCount int
	lastCheck  float64
	fps        float64
}

// Tick records one completed frame at the given timestamp (ms) and refreshes
// the FPS estimate when at least a second has elapsed since the last check.
func (m *FrameMonitor) Tick(nowMs float64) {
	m.frameCount++
	if nowMs-m.lastCheck >= 1000 {
		if m.lastCheck != 0 {
			m.fps = float64(m.frameCount) / (nowMs - m.lastCheck) * 1000
		}
		m.frameCount = 0
		m.lastCheck = nowMs
	}
}

// FPS returns the most recent frames-per-second estimate, zero until the
// first full window has elapsed.
func (m *FrameMonitor) FPS() float64 {
	return m.fps
}

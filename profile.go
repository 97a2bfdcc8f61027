package liquidglass

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Profile bundles the tunables of one rendition of the effect: the
// normalization damping, the encoder's blue constant, the scheduler
// interval, the warp shape, and the hover transition. The core does not
// range-check profile values; any finite numbers produce mathematically
// valid (if visually extreme) output.
type Profile struct {
	Damping          float64      `yaml:"damping"`
	Blue             uint8        `yaml:"blue"`
	UpdateIntervalMs float64      `yaml:"update_interval_ms"`
	Warp             WarpProfile  `yaml:"warp"`
	Hover            HoverProfile `yaml:"hover"`
}

// WarpProfile holds the GlassWarp shape parameters of a profile.
type WarpProfile struct {
	HalfWidth       float64 `yaml:"half_width"`
	HalfHeight      float64 `yaml:"half_height"`
	CornerRadius    float64 `yaml:"corner_radius"`
	EdgeMargin      float64 `yaml:"edge_margin"`
	EdgeFalloff     float64 `yaml:"edge_falloff"`
	PointerRadius   float64 `yaml:"pointer_radius"`
	PointerStrength float64 `yaml:"pointer_strength"`
	NoiseAmp        float64 `yaml:"noise_amp"`
	PerspectiveTilt float64 `yaml:"perspective_tilt"`
	SwayAmp         float64 `yaml:"sway_amp"`
}

// HoverProfile describes the pointer-strength transition while hovered:
// Strength is the hovered target, Duration the tween length in seconds.
type HoverProfile struct {
	Strength float64 `yaml:"strength"`
	Duration float64 `yaml:"duration"`
}

// Interval returns the scheduler throttle window, falling back to
// [DefaultInterval] for non-positive values.
func (p Profile) Interval() time.Duration {
	if p.UpdateIntervalMs <= 0 {
		return DefaultInterval
	}
	return time.Duration(p.UpdateIntervalMs * float64(time.Millisecond))
}

// NewWarp builds a GlassWarp from the profile's shape parameters. The noise
// source defaults to [RippleNoise]; swap it on the returned warp if needed.
func (p WarpProfile) NewWarp() *GlassWarp {
	return &GlassWarp{
		HalfWidth:       p.HalfWidth,
		HalfHeight:      p.HalfHeight,
		CornerRadius:    p.CornerRadius,
		EdgeMargin:      p.EdgeMargin,
		EdgeFalloff:     p.EdgeFalloff,
		PointerRadius:   p.PointerRadius,
		PointerStrength: p.PointerStrength,
		NoiseAmp:        p.NoiseAmp,
		Noise:           RippleNoise,
		PerspectiveTilt: p.PerspectiveTilt,
		SwayAmp:         p.SwayAmp,
	}
}

type profileFile struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// DefaultProfiles returns the built-in profiles parsed from the embedded
// defaults. The embedded file is part of the binary; failure to parse it is
// a build defect and panics.
func DefaultProfiles() map[string]Profile {
	var f profileFile
	if err := yaml.Unmarshal(defaultsYAML, &f); err != nil {
		panic("liquidglass: embedded defaults.yaml is malformed: " + err.Error())
	}
	return f.Profiles
}

// DefaultProfile returns the stock "default" profile.
func DefaultProfile() Profile {
	return DefaultProfiles()["default"]
}

// LoadProfiles reads a YAML profile file and merges it over the built-in
// defaults: entries with the same name replace the default wholesale,
// new names are added alongside.
func LoadProfiles(path string) (map[string]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	var f profileFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse profiles %s: %w", path, err)
	}
	merged := DefaultProfiles()
	for name, p := range f.Profiles {
		merged[name] = p
	}
	return merged, nil
}

package liquidglass

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultProfiles(t *testing.T) {
	profiles := DefaultProfiles()

	def, ok := profiles["default"]
	if !ok {
		t.Fatal("missing built-in profile \"default\"")
	}
	assertNear(t, "default damping", def.Damping, 0.6)
	if def.Blue != 120 {
		t.Errorf("default blue = %d, want 120", def.Blue)
	}
	if def.Interval() != 16*time.Millisecond {
		t.Errorf("default interval = %v, want 16ms", def.Interval())
	}
	assertNear(t, "default half width", def.Warp.HalfWidth, 0.32)
	assertNear(t, "default hover strength", def.Hover.Strength, 1.0)

	sub, ok := profiles["subtle"]
	if !ok {
		t.Fatal("missing built-in profile \"subtle\"")
	}
	assertNear(t, "subtle damping", sub.Damping, 0.5)
	if sub.Blue != 0 {
		t.Errorf("subtle blue = %d, want 0", sub.Blue)
	}
	assertNear(t, "subtle noise amp", sub.Warp.NoiseAmp, 0)
}

func TestProfileIntervalFallback(t *testing.T) {
	var p Profile
	if p.Interval() != DefaultInterval {
		t.Errorf("zero-value interval = %v, want %v", p.Interval(), DefaultInterval)
	}
	p.UpdateIntervalMs = 33.4
	want := time.Duration(33.4 * float64(time.Millisecond))
	if p.Interval() != want {
		t.Errorf("interval = %v, want %v", p.Interval(), want)
	}
}

func TestLoadProfilesMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	data := []byte(`profiles:
  default:
    damping: 0.45
    blue: 64
  frosted:
    damping: 0.7
    blue: 200
    update_interval_ms: 32
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	profiles, err := LoadProfiles(path)
	if err != nil {
		t.Fatal(err)
	}

	// Overridden entry replaces the default wholesale.
	assertNear(t, "overridden damping", profiles["default"].Damping, 0.45)
	if profiles["default"].Blue != 64 {
		t.Errorf("overridden blue = %d, want 64", profiles["default"].Blue)
	}

	// New entry added, untouched defaults kept.
	if _, ok := profiles["frosted"]; !ok {
		t.Error("new profile not merged in")
	}
	assertNear(t, "subtle survives merge", profiles["subtle"].Damping, 0.5)
}

func TestLoadProfilesMissingFile(t *testing.T) {
	if _, err := LoadProfiles(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadProfilesMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("profiles: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProfiles(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

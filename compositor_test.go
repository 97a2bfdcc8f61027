package liquidglass

import "testing"

func TestBufferCompositorRetainsCopy(t *testing.T) {
	c := &BufferCompositor{}
	src := []byte{10, 20, 30, 255, 40, 50, 60, 255}
	c.Present(src, 2, 1, 1.5)

	// The producer reuses its buffer; the compositor must have copied.
	src[0] = 99
	if c.Buffer()[0] != 10 {
		t.Error("Present must copy the frame, not alias it")
	}

	if w, h := c.Size(); w != 2 || h != 1 {
		t.Errorf("Size = %dx%d, want 2x1", w, h)
	}
	assertNear(t, "Scale", c.Scale(), 1.5)
	if c.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", c.Frames())
	}

	c.Present(src, 2, 1, 2.0)
	if c.Frames() != 2 {
		t.Errorf("Frames = %d, want 2", c.Frames())
	}
}

func TestDisplacementFilterInitialState(t *testing.T) {
	f := NewDisplacementFilter()
	if f.Padding() != 0 {
		t.Errorf("Padding before first Present = %d, want 0", f.Padding())
	}
	if f.Scale() != 0 {
		t.Errorf("Scale before first Present = %v, want 0", f.Scale())
	}
}

func TestDisplacementFilterPresentStages(t *testing.T) {
	f := NewDisplacementFilter()
	buf := make([]byte, 4*4*4)
	for i := 3; i < len(buf); i += 4 {
		buf[i] = 255
	}

	f.Present(buf, 4, 4, 2.3)
	assertNear(t, "Scale", f.Scale(), 2.3)
	// Padding covers the worst-case displaced read.
	if f.Padding() != 3 {
		t.Errorf("Padding = %d, want ceil(2.3) = 3", f.Padding())
	}
	if !f.dirty {
		t.Error("Present should mark the staged frame dirty")
	}
	if f.stagedW != 4 || f.stagedH != 4 {
		t.Errorf("staged size = %dx%d, want 4x4", f.stagedW, f.stagedH)
	}

	// The producer's buffer is reused; staging must be a copy.
	buf[3] = 0
	if f.staging[3] != 255 {
		t.Error("Present must copy the frame, not alias it")
	}

	f.Present(buf, 4, 4, 1.0)
	if f.Padding() != 1 {
		t.Errorf("Padding = %d, want 1", f.Padding())
	}
}

func TestGlassDrivesDisplacementFilter(t *testing.T) {
	f := NewDisplacementFilter()
	g, err := NewGlass(Geometry{Width: 8, Height: 8}, f)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	g.ForceUpdate()
	if !f.dirty {
		t.Fatal("recomputation should stage a map frame")
	}
	if f.stagedW != 8 || f.stagedH != 8 {
		t.Errorf("staged size = %dx%d, want 8x8", f.stagedW, f.stagedH)
	}
	if len(f.staging) != 8*8*4 {
		t.Errorf("staged bytes = %d, want %d", len(f.staging), 8*8*4)
	}
	assertNear(t, "presented scale", f.Scale(), g.Scale())
}

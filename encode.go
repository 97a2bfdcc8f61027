package liquidglass

// neutralChannel is the encoded value of a zero displacement component:
// byte((0/max + 0.5) * 255). Kept as the explicit constant so the zero-max
// path emits exactly what the general path would.
const neutralChannel = 127

// Encoder packs a raw displacement field into an RGBA byte buffer suitable
// as a displacement map: R = dx, G = dy normalized by the damped maximum and
// biased to the 0.5 midpoint, B = a fixed profile constant, A = 255 (a
// displacement map must never introduce transparency).
//
// The output buffer is owned by the Encoder and reused across passes of the
// same size; consumers must copy it or finish with it before the next pass.
type Encoder struct {
	// Blue is the constant written to every sample's blue channel.
	Blue byte

	buf []byte
}

// NewEncoder creates an Encoder with the given blue-channel constant.
func NewEncoder(blue byte) *Encoder {
	return &Encoder{Blue: blue}
}

// Encode normalizes raw (dx, dy float64 pairs) by maxMag and packs the
// result, returning the 4-bytes-per-sample buffer.
//
// A maxMag of zero means the whole field is displacement-free; both
// channels get the neutral midpoint with no division. Because damping can
// push true extrema past the unit range, channel values are clamped to
// [0, 255] rather than wrapped.
func (e *Encoder) Encode(raw []float64, maxMag float64) []byte {
	n := len(raw) / 2 * 4
	if cap(e.buf) < n {
		e.buf = make([]byte, n)
	}
	e.buf = e.buf[:n]

	if maxMag == 0 {
		for i := 0; i < n; i += 4 {
			e.buf[i] = neutralChannel
			e.buf[i+1] = neutralChannel
			e.buf[i+2] = e.Blue
			e.buf[i+3] = 255
		}
		return e.buf
	}

	j := 0
	for i := 0; i+1 < len(raw); i += 2 {
		e.buf[j] = quantizeChannel(raw[i], maxMag)
		e.buf[j+1] = quantizeChannel(raw[i+1], maxMag)
		e.buf[j+2] = e.Blue
		e.buf[j+3] = 255
		j += 4
	}
	return e.buf
}

// quantizeChannel maps a displacement component to its 8-bit channel value,
// clamping instead of wrapping on overflow.
func quantizeChannel(d, maxMag float64) byte {
	v := (d/maxMag + 0.5) * 255
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v)
}

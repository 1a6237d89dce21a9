package pitch

// Frames slices a sample buffer into fixed-size, fixed-hop analysis frames.
// The sequence is lazy, finite and restartable: Next yields frames starting
// at sample 0 and advancing by the hop size until the buffer is exhausted.
//
// If the final frame would read past the end of the buffer it is still
// emitted at full size, padded by repeating the last available sample.
// Padding with a constant instead of zeros avoids the step discontinuity a
// pitch estimator would read as a transient. After the padded frame the
// sequence ends, regardless of how many hops would arithmetically remain.
type Frames struct {
	samples   []float64
	frameSize int
	hop       int

	pos  int
	done bool
	buf  []float64
}

// NewFrames creates a frame sequence over samples.
func NewFrames(samples []float64, frameSize, hop int) *Frames {
	return &Frames{
		samples:   samples,
		frameSize: frameSize,
		hop:       hop,
		buf:       make([]float64, frameSize),
	}
}

// Next returns the next frame and its start index in the sample buffer.
// The returned slice is reused between calls; callers that retain a frame
// must copy it.
func (f *Frames) Next() (frame []float64, start int, ok bool) {
	if f.done || f.pos >= len(f.samples) {
		return nil, 0, false
	}

	start = f.pos
	end := start + f.frameSize
	if end > len(f.samples) {
		// Final frame: copy what remains, pad with the last sample value.
		n := copy(f.buf, f.samples[start:])
		pad := 0.0
		if n > 0 {
			pad = f.buf[n-1]
		}
		for i := n; i < f.frameSize; i++ {
			f.buf[i] = pad
		}
		f.done = true
		return f.buf, start, true
	}

	copy(f.buf, f.samples[start:end])
	f.pos += f.hop
	return f.buf, start, true
}

// Reset rewinds the sequence to the first frame.
func (f *Frames) Reset() {
	f.pos = 0
	f.done = false
}

// Count returns the number of frames the sequence will produce without
// consuming it.
func (f *Frames) Count() int {
	n := 0
	for pos := 0; pos < len(f.samples); pos += f.hop {
		n++
		if pos+f.frameSize > len(f.samples) {
			break
		}
	}
	return n
}

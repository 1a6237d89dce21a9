package contour

// Segment is the currently analyzed window of a long source, in absolute
// source-time seconds with the safety buffer already stripped.
type Segment struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// segmentBounds is the raw analysis window around a playback position,
// one safety buffer wider than the displayed segment on each side.
type segmentBounds struct {
	rawStart float64
	rawEnd   float64
}

// computeBounds derives the analysis window for a playback position. The
// display window starts displayLead seconds before the position and spans
// windowSpan seconds; the raw window extends it by the safety buffer on
// both sides. At either edge of the source the window is shifted, not
// shrunk, so a full-width window survives whenever the source allows it.
func (c *Config) computeBounds(currentTime, totalDuration float64) segmentBounds {
	rawStart := currentTime - c.DisplayLead - c.SafetyBuffer
	if rawStart < 0 {
		rawStart = 0
	}
	rawEnd := currentTime - c.DisplayLead + c.WindowSpan + c.SafetyBuffer
	if rawEnd > totalDuration {
		rawEnd = totalDuration
	}

	full := c.WindowSpan + 2*c.SafetyBuffer
	if rawStart == 0 {
		rawEnd = min(totalDuration, full)
	} else if rawEnd == totalDuration {
		rawStart = max(0, totalDuration-full)
	}

	return segmentBounds{rawStart: rawStart, rawEnd: rawEnd}
}

// display strips the safety buffer off the raw bounds, clamped to the
// source extent. These are the published segment bounds.
func (b segmentBounds) display(buffer, totalDuration float64) Segment {
	return Segment{
		Start: max(0, b.rawStart+buffer),
		End:   min(totalDuration, b.rawEnd-buffer),
	}
}

// ComputeWindow reports the raw analysis window and the displayed segment
// a playback position would produce, without extracting anything.
func (c *Config) ComputeWindow(currentTime, totalDuration float64) (raw, display Segment) {
	bounds := c.computeBounds(currentTime, totalDuration)
	raw = Segment{Start: bounds.rawStart, End: bounds.rawEnd}
	display = bounds.display(c.SafetyBuffer, totalDuration)
	return raw, display
}

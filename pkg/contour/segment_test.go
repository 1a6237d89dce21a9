package contour

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeWindowPlacement(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		name          string
		currentTime   float64
		totalDuration float64
		wantRaw       Segment
		wantDisplay   Segment
	}{
		{
			name:          "mid source, no clamp",
			currentTime:   5,
			totalDuration: 60,
			wantRaw:       Segment{Start: 3.5, End: 25.5},
			wantDisplay:   Segment{Start: 4.5, End: 24.5},
		},
		{
			name:          "start of source, end re-clamped to full width",
			currentTime:   0,
			totalDuration: 60,
			wantRaw:       Segment{Start: 0, End: 22},
			wantDisplay:   Segment{Start: 1, End: 21},
		},
		{
			name:          "near end of source, start re-clamped to full width",
			currentTime:   59,
			totalDuration: 60,
			wantRaw:       Segment{Start: 38, End: 60},
			wantDisplay:   Segment{Start: 39, End: 59},
		},
		{
			name:          "source narrower than full window",
			currentTime:   10,
			totalDuration: 21,
			wantRaw:       Segment{Start: 0, End: 21},
			wantDisplay:   Segment{Start: 1, End: 20},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, display := cfg.ComputeWindow(tc.currentTime, tc.totalDuration)
			assert.InDelta(t, tc.wantRaw.Start, raw.Start, 1e-9, "raw start")
			assert.InDelta(t, tc.wantRaw.End, raw.End, 1e-9, "raw end")
			assert.InDelta(t, tc.wantDisplay.Start, display.Start, 1e-9, "display start")
			assert.InDelta(t, tc.wantDisplay.End, display.End, 1e-9, "display end")
		})
	}
}

func TestSegmentDuration(t *testing.T) {
	seg := Segment{Start: 4.5, End: 24.5}
	assert.InDelta(t, 20.0, seg.Duration(), 1e-12)
}

func TestDisplaySegmentNeverExceedsSource(t *testing.T) {
	cfg := DefaultConfig()

	for _, total := range []float64{31, 45, 60, 120, 600} {
		for _, pos := range []float64{0, total * 0.1, total / 2, total - 1, total} {
			raw, display := cfg.ComputeWindow(pos, total)
			assert.GreaterOrEqual(t, raw.Start, 0.0)
			assert.LessOrEqual(t, raw.End, total)
			assert.GreaterOrEqual(t, display.Start, 0.0)
			assert.LessOrEqual(t, display.End, total)
			assert.LessOrEqual(t, display.Start, display.End)
		}
	}
}

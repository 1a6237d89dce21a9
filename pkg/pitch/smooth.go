package pitch

import (
	"math"
	"sort"
)

// The raw per-frame pitch sequence is denoised in two passes: a median
// filter rejects the isolated octave jumps and noise spikes monophonic
// trackers produce on noisy input, then a triangular weighted moving
// average removes residual jitter without flattening genuine pitch
// movement. Unvoiced frames are carried as NaN and stay NaN.

// MedianFilter returns the windowed median of values. For each index the
// window [i-w/2, i+w/2], clipped to the slice bounds, is collected; NaN
// entries are skipped. An all-NaN window yields NaN. Even-sized collections
// take the lower-middle element, so every output value is a member of its
// input window.
func MedianFilter(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	half := window / 2
	scratch := make([]float64, 0, window+1)

	for i := range values {
		lo := max(0, i-half)
		hi := min(len(values)-1, i+half)

		scratch = scratch[:0]
		for j := lo; j <= hi; j++ {
			if !math.IsNaN(values[j]) {
				scratch = append(scratch, values[j])
			}
		}
		if len(scratch) == 0 {
			out[i] = math.NaN()
			continue
		}
		sort.Float64s(scratch)
		out[i] = scratch[(len(scratch)-1)/2]
	}
	return out
}

// WeightedMovingAverage smooths values with a triangular kernel of the
// given window size: a contribution at distance d from the center is
// weighted 1 - d/(w/2+1), decaying linearly from 1 at the center to 0 at
// the window edge. NaN inputs produce NaN outputs and NaN neighbors are
// excluded from the average, so every defined output is a convex
// combination of its window.
func WeightedMovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	half := window / 2
	span := float64(half + 1)

	for i := range values {
		if math.IsNaN(values[i]) {
			out[i] = math.NaN()
			continue
		}

		lo := max(0, i-half)
		hi := min(len(values)-1, i+half)

		sum := 0.0
		weight := 0.0
		for j := lo; j <= hi; j++ {
			if math.IsNaN(values[j]) {
				continue
			}
			w := 1.0 - math.Abs(float64(i-j))/span
			sum += values[j] * w
			weight += w
		}
		if weight == 0 {
			// Cannot happen while values[i] itself contributes, but keep
			// the center value rather than dividing by zero.
			out[i] = values[i]
			continue
		}
		out[i] = sum / weight
	}
	return out
}

// Smooth applies the full denoising chain configured in cfg.
func Smooth(values []float64, cfg *Config) []float64 {
	filtered := MedianFilter(values, cfg.MedianWindow)
	return WeightedMovingAverage(filtered, cfg.SmoothingWindow)
}

package pitch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedianFilterRejectsSpike(t *testing.T) {
	// A single octave spike in an otherwise steady contour disappears.
	values := []float64{200, 200, 200, 400, 200, 200, 200}
	out := MedianFilter(values, 4)

	for i, v := range out {
		assert.Equal(t, 200.0, v, "index %d", i)
	}
}

func TestMedianFilterOutputIsWindowMember(t *testing.T) {
	values := []float64{182, 190, math.NaN(), 201, 175, 380, 198, math.NaN(), 187}
	window := 5
	out := MedianFilter(values, window)
	half := window / 2

	for i, v := range out {
		if math.IsNaN(v) {
			continue
		}
		lo := max(0, i-half)
		hi := min(len(values)-1, i+half)
		found := false
		for j := lo; j <= hi; j++ {
			if values[j] == v {
				found = true
				break
			}
		}
		assert.True(t, found, "output %v at index %d is not a member of its window", v, i)
	}
}

func TestMedianFilterEvenCountTakesLowerMiddle(t *testing.T) {
	// Window covers exactly {10, 20} at index 0 with window 2: the lower
	// of the two middles wins, never their average.
	out := MedianFilter([]float64{10, 20}, 2)
	assert.Equal(t, 10.0, out[0])
}

func TestMedianFilterSkipsNaN(t *testing.T) {
	values := []float64{math.NaN(), 150, math.NaN()}
	out := MedianFilter(values, 10)

	// Every window sees exactly one defined value.
	for i := range out {
		assert.Equal(t, 150.0, out[i], "index %d", i)
	}
}

func TestMedianFilterAllNaNWindow(t *testing.T) {
	values := []float64{math.NaN(), math.NaN(), math.NaN()}
	out := MedianFilter(values, 10)

	require.Len(t, out, 3)
	for i := range out {
		assert.True(t, math.IsNaN(out[i]), "index %d", i)
	}
}

func TestWeightedMovingAverageConstantIsFixedPoint(t *testing.T) {
	values := []float64{220, 220, 220, 220, 220, 220}
	out := WeightedMovingAverage(values, 5)

	for i, v := range out {
		assert.InDelta(t, 220.0, v, 1e-12, "index %d", i)
	}
}

func TestWeightedMovingAverageStaysWithinWindowBounds(t *testing.T) {
	values := []float64{180, 210, 195, 240, 170, 205, 225, 190}
	window := 5
	out := WeightedMovingAverage(values, window)
	half := window / 2

	for i, v := range out {
		lo := max(0, i-half)
		hi := min(len(values)-1, i+half)
		lowest, highest := math.Inf(1), math.Inf(-1)
		for j := lo; j <= hi; j++ {
			lowest = math.Min(lowest, values[j])
			highest = math.Max(highest, values[j])
		}
		assert.GreaterOrEqual(t, v, lowest, "index %d", i)
		assert.LessOrEqual(t, v, highest, "index %d", i)
	}
}

func TestWeightedMovingAveragePreservesNaN(t *testing.T) {
	values := []float64{200, math.NaN(), 210, 205, math.NaN()}
	out := WeightedMovingAverage(values, 5)

	assert.True(t, math.IsNaN(out[1]))
	assert.True(t, math.IsNaN(out[4]))
	assert.False(t, math.IsNaN(out[0]))
	assert.False(t, math.IsNaN(out[2]))
	assert.False(t, math.IsNaN(out[3]))
}

func TestWeightedMovingAverageCenterWeighsHeaviest(t *testing.T) {
	// One outlier in a flat contour: the smoothed value at the outlier
	// must stay closer to the outlier than to the background, since the
	// center carries the largest weight.
	values := []float64{200, 200, 300, 200, 200}
	out := WeightedMovingAverage(values, 5)

	assert.Greater(t, out[2], out[1])
	assert.Less(t, out[2], 300.0)
}

func TestSmoothChainsFilters(t *testing.T) {
	cfg := DefaultConfig()

	values := make([]float64, 100)
	for i := range values {
		values[i] = 200
	}
	values[40] = 420 // spike the median pass removes
	values[70] = math.NaN()

	out := Smooth(values, cfg)

	require.Len(t, out, 100)
	// An isolated unvoiced frame is filled in by the median pass from its
	// voiced neighbors; only frames unvoiced after that pass stay NaN.
	assert.InDelta(t, 200.0, out[70], 1e-9)
	assert.InDelta(t, 200.0, out[40], 1e-9)
}

func TestSmoothKeepsLongUnvoicedStretchUnvoiced(t *testing.T) {
	cfg := DefaultConfig()

	// A stretch wider than the median window has all-NaN windows at its
	// center, which survive both passes.
	values := make([]float64, 60)
	for i := range values {
		values[i] = 200
	}
	for i := 20; i < 40; i++ {
		values[i] = math.NaN()
	}

	out := Smooth(values, cfg)
	assert.True(t, math.IsNaN(out[30]))
	assert.False(t, math.IsNaN(out[10]))
	assert.False(t, math.IsNaN(out[50]))
}

func TestSmoothEmptyInput(t *testing.T) {
	out := Smooth(nil, DefaultConfig())
	assert.Empty(t, out)
}

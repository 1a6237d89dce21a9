package pitch

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedEstimator returns one scripted result per frame, in order.
type scriptedEstimator struct {
	results []Estimate
	errs    []error
	calls   int
}

func (s *scriptedEstimator) Estimate(frame []float64, sampleRate int) (Estimate, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return Estimate{}, s.errs[i]
	}
	if i < len(s.results) {
		return s.results[i], nil
	}
	return Estimate{Frequency: 200, Confidence: 1}, nil
}

func scriptedFactory(est Estimator) EstimatorFactory {
	return func(sampleRate int) Estimator { return est }
}

func trackerConfig() *Config {
	cfg := DefaultConfig()
	cfg.FrameSize = 4
	cfg.FineHop = 2
	cfg.FastHop = 4
	return cfg
}

func TestTrackTimestampsAreFrameStarts(t *testing.T) {
	cfg := trackerConfig()
	tracker := NewTracker(cfg, scriptedFactory(&scriptedEstimator{}), nil)

	// 10 samples at 100 Hz, hop 2: frame starts 0, 2, 4, 6, 8.
	curve := tracker.Track(make([]float64, 10), 100, cfg.FineHop)

	require.Equal(t, 5, curve.Len())
	assert.Equal(t, []float64{0, 0.02, 0.04, 0.06, 0.08}, curve.Times)
}

func TestTrackGatesByPitchBand(t *testing.T) {
	cfg := trackerConfig()
	est := &scriptedEstimator{
		results: []Estimate{
			{Frequency: 200, Confidence: 1},   // in band
			{Frequency: 40, Confidence: 1},    // below MinPitch
			{Frequency: 800, Confidence: 1},   // above MaxPitch
			{Frequency: 150, Confidence: 0.3}, // below MinClarity
			{Frequency: 300, Confidence: 0.9}, // in band
		},
	}
	tracker := NewTracker(cfg, scriptedFactory(est), nil)

	curve := tracker.Track(make([]float64, 10), 100, cfg.FineHop)

	require.Equal(t, 5, curve.Len())
	assert.Equal(t, 200.0, curve.Pitches[0])
	assert.True(t, math.IsNaN(curve.Pitches[1]))
	assert.True(t, math.IsNaN(curve.Pitches[2]))
	assert.True(t, math.IsNaN(curve.Pitches[3]))
	assert.Equal(t, 300.0, curve.Pitches[4])
}

func TestTrackBandEdgesAreVoiced(t *testing.T) {
	cfg := trackerConfig()
	est := &scriptedEstimator{
		results: []Estimate{
			{Frequency: cfg.MinPitch, Confidence: cfg.MinClarity},
			{Frequency: cfg.MaxPitch, Confidence: 1},
		},
	}
	tracker := NewTracker(cfg, scriptedFactory(est), nil)

	curve := tracker.Track(make([]float64, 6), 100, cfg.FineHop)

	require.GreaterOrEqual(t, curve.Len(), 2)
	assert.Equal(t, cfg.MinPitch, curve.Pitches[0])
	assert.Equal(t, cfg.MaxPitch, curve.Pitches[1])
}

func TestTrackEstimatorFaultDegradesSingleFrame(t *testing.T) {
	cfg := trackerConfig()
	est := &scriptedEstimator{
		results: []Estimate{
			{Frequency: 200, Confidence: 1},
			{},
			{Frequency: 210, Confidence: 1},
		},
		errs: []error{nil, errors.New("detector blew up"), nil},
	}
	tracker := NewTracker(cfg, scriptedFactory(est), nil)

	curve := tracker.Track(make([]float64, 6), 100, cfg.FineHop)

	require.Equal(t, 3, curve.Len())
	assert.Equal(t, 200.0, curve.Pitches[0])
	assert.True(t, math.IsNaN(curve.Pitches[1]))
	assert.Equal(t, 210.0, curve.Pitches[2])
}

func TestTrackEmptyBuffer(t *testing.T) {
	tracker := NewTracker(trackerConfig(), scriptedFactory(&scriptedEstimator{}), nil)
	curve := tracker.Track(nil, 100, 2)
	assert.Equal(t, 0, curve.Len())
}

func TestTrackTimesAndPitchesStayAligned(t *testing.T) {
	cfg := trackerConfig()
	est := &scriptedEstimator{
		errs: []error{errors.New("x"), nil, errors.New("y"), nil, nil},
	}
	tracker := NewTracker(cfg, scriptedFactory(est), nil)

	curve := tracker.Track(make([]float64, 10), 100, cfg.FineHop)
	assert.Equal(t, len(curve.Times), len(curve.Pitches))
}

package pitch

import (
	"fmt"

	"github.com/RyanBlaney/sonido-sonar/algorithms/tonal"
)

// Estimate is a single-frame estimator result.
type Estimate struct {
	Frequency  float64
	Confidence float64
}

// Estimator is the external pitch-estimation capability: given one frame
// of samples and its sample rate, report the fundamental frequency and a
// confidence score in [0, 1]. Any conforming monophonic estimator is
// substitutable without touching the pipeline.
type Estimator interface {
	Estimate(frame []float64, sampleRate int) (Estimate, error)
}

// EstimatorFactory builds an estimator for a concrete sample rate. The
// rate is only known after decoding, so the pipeline defers construction.
type EstimatorFactory func(sampleRate int) Estimator

// YinEstimator adapts the sonido-sonar YIN pitch detector to the
// Estimator capability. The detector's own temporal smoothing and octave
// correction are disabled: denoising is this pipeline's job, and the
// stateful history would leak between unrelated frames otherwise.
type YinEstimator struct {
	detector *tonal.PitchDetector
	rate     int
}

// NewYinEstimator creates a YIN estimator for the given sample rate and
// frame size, constrained to the [minPitch, maxPitch] band.
func NewYinEstimator(sampleRate, frameSize int, minPitch, maxPitch float64) *YinEstimator {
	params := tonal.PitchDetectionParams{
		Method:         tonal.AutocorrelationYin,
		SampleRate:     sampleRate,
		WindowSize:     frameSize,
		HopSize:        frameSize,
		MinFreq:        minPitch,
		MaxFreq:        maxPitch,
		YinThreshold:   0.15,
		MinConfidence:  0,
		PreEmphasis:    false,
		WindowFunction: "hann",
		ZeroPadding:    2,
	}

	return &YinEstimator{
		detector: tonal.NewPitchDetectorWithParams(params),
		rate:     sampleRate,
	}
}

// Estimate runs the detector on one frame.
func (e *YinEstimator) Estimate(frame []float64, sampleRate int) (Estimate, error) {
	if sampleRate != e.rate {
		return Estimate{}, fmt.Errorf("estimator configured for %d Hz, got %d Hz", e.rate, sampleRate)
	}

	result, err := e.detector.DetectPitch(frame)
	if err != nil {
		return Estimate{}, err
	}
	return Estimate{Frequency: result.Pitch, Confidence: result.Confidence}, nil
}

// DefaultEstimatorFactory builds YIN estimators matching cfg.
func DefaultEstimatorFactory(cfg *Config) EstimatorFactory {
	return func(sampleRate int) Estimator {
		return NewYinEstimator(sampleRate, cfg.FrameSize, cfg.MinPitch, cfg.MaxPitch)
	}
}

package pitch

import (
	"math"

	"github.com/RyanBlaney/sonido-sonar/logging"
)

// Tracker runs the per-frame stages of the pipeline: framing, estimation
// and validity gating. It produces the raw pitch curve; smoothing is a
// separate pass so segment extraction can normalize timestamps in between.
type Tracker struct {
	cfg          *Config
	newEstimator EstimatorFactory
	logger       logging.Logger
}

// NewTracker creates a tracker. A nil factory uses the YIN estimator; a
// nil logger uses the package default.
func NewTracker(cfg *Config, factory EstimatorFactory, logger logging.Logger) *Tracker {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if factory == nil {
		factory = DefaultEstimatorFactory(cfg)
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &Tracker{cfg: cfg, newEstimator: factory, logger: logger}
}

// Config returns the tracker's pipeline configuration.
func (t *Tracker) Config() *Config {
	return t.cfg
}

// Track extracts the raw pitch curve from a sample buffer. Timestamps are
// frame start offsets in seconds from the beginning of the buffer. A frame
// whose estimate falls outside the configured pitch band or below the
// clarity threshold is recorded as NaN; an estimator failure on a single
// frame likewise degrades only that frame and never aborts the run, so
// the curve keeps one aligned entry per frame regardless of estimator
// flakiness.
func (t *Tracker) Track(samples []float64, sampleRate int, hop int) Curve {
	logger := t.logger.WithFields(logging.Fields{
		"component":   "pitch_tracker",
		"sample_rate": sampleRate,
		"hop_size":    hop,
	})

	estimator := t.newEstimator(sampleRate)
	frames := NewFrames(samples, t.cfg.FrameSize, hop)

	curve := Curve{
		Times:   make([]float64, 0, frames.Count()),
		Pitches: make([]float64, 0, frames.Count()),
	}

	faults := 0
	for {
		frame, start, ok := frames.Next()
		if !ok {
			break
		}

		curve.Times = append(curve.Times, float64(start)/float64(sampleRate))

		est, err := estimator.Estimate(frame, sampleRate)
		if err != nil {
			// Isolated fault: keep the timestamp, drop the pitch.
			faults++
			curve.Pitches = append(curve.Pitches, math.NaN())
			continue
		}
		if est.Frequency < t.cfg.MinPitch || est.Frequency > t.cfg.MaxPitch || est.Confidence < t.cfg.MinClarity {
			curve.Pitches = append(curve.Pitches, math.NaN())
			continue
		}
		curve.Pitches = append(curve.Pitches, est.Frequency)
	}

	if faults > 0 {
		logger.Warn("Estimator faults during extraction", logging.Fields{
			"faulted_frames": faults,
			"total_frames":   curve.Len(),
		})
	}

	logger.Debug("Raw pitch curve extracted", logging.Fields{
		"frames": curve.Len(),
	})

	return curve
}

package contour

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/RyanBlaney/sonido-sonar/logging"
	"github.com/yzeal/chorusing-sub001/pkg/media"
	"github.com/yzeal/chorusing-sub001/pkg/pitch"
)

// Decoder is the external decode capability: encoded source bytes to a
// single-channel sample buffer.
type Decoder interface {
	Decode(ctx context.Context, source []byte) (*media.Buffer, error)
}

// DurationProber determines total source duration without a full decode.
type DurationProber interface {
	ProbeDuration(ctx context.Context, source []byte) (float64, error)
}

// Config holds the source classification and segment window parameters.
type Config struct {
	// LongSourceThreshold is the duration in seconds above which a source
	// is analyzed segment-by-segment instead of in one pass.
	LongSourceThreshold float64

	// WindowSpan is the displayed segment width in seconds; the curve of
	// every extracted segment is rescaled to exactly this span.
	WindowSpan float64

	// SafetyBuffer widens the analyzed window beyond the displayed one on
	// both sides, so smoothing has context at the segment edges.
	SafetyBuffer float64

	// DisplayLead places the displayed window start this many seconds
	// before the playback position that triggered extraction.
	DisplayLead float64

	// LoopEndMargin is held back from the source end when proposing the
	// initial practice loop region.
	LoopEndMargin float64
}

// DefaultConfig returns the segment parameters used for practice material.
func DefaultConfig() *Config {
	return &Config{
		LongSourceThreshold: 30,
		WindowSpan:          20,
		SafetyBuffer:        1,
		DisplayLead:         0.5,
		LoopEndMargin:       0.15,
	}
}

// Deps are the injectable collaborators of a Manager.
type Deps struct {
	Decoder Decoder
	Prober  DurationProber
	Tracker *pitch.Tracker
}

// Manager owns the pitch-contour state for one loaded source: the live
// curve, the source classification and, for long sources, the currently
// extracted segment. All state transitions go through Initialize and
// ExtractSegment; consumers only ever observe a complete curve, never a
// half-built one, because new curves are built aside and published in one
// swap. One extraction may run at a time; callers are expected to await
// completion before issuing the next command, and overlapping calls fail
// with EXTRACTION_IN_FLIGHT.
type Manager struct {
	cfg     *Config
	decoder Decoder
	prober  DurationProber
	tracker *pitch.Tracker
	logger  logging.Logger

	inFlight atomic.Bool

	mu            sync.RWMutex
	source        []byte
	totalDuration float64
	longSource    bool
	curve         pitch.Curve
	segment       *Segment
}

// NewManager creates a manager. Nil deps fall back to the ffmpeg-backed
// collaborators and the default YIN tracker.
func NewManager(deps Deps, cfg *Config, logger logging.Logger) *Manager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	if deps.Decoder == nil {
		deps.Decoder = media.NewFFmpegDecoder(nil, logger)
	}
	if deps.Prober == nil {
		deps.Prober = media.NewFFprobeProber(nil, logger)
	}
	if deps.Tracker == nil {
		deps.Tracker = pitch.NewTracker(nil, nil, logger)
	}

	return &Manager{
		cfg:     cfg,
		decoder: deps.Decoder,
		prober:  deps.Prober,
		tracker: deps.Tracker,
		logger:  logger,
	}
}

// Initialize loads a new source: probes its duration, classifies it, and
// for short sources runs the full fine-grained extraction. Long sources
// start with an empty curve and wait for ExtractSegment. On failure the
// manager keeps its pre-call state, so retrying with another source is
// safe.
func (m *Manager) Initialize(ctx context.Context, source []byte) error {
	if !m.inFlight.CompareAndSwap(false, true) {
		return NewError(ErrCodeExtractionInFlight, "an extraction is already running", nil)
	}
	defer m.inFlight.Store(false)

	logger := m.logger.WithFields(logging.Fields{
		"component":    "contour_manager",
		"source_bytes": len(source),
	})

	duration, err := m.prober.ProbeDuration(ctx, source)
	if err != nil {
		return NewError(ErrCodeDurationUnavailable, "failed to probe source duration", err)
	}

	long := duration > m.cfg.LongSourceThreshold
	logger.Debug("Source classified", logging.Fields{
		"duration_s":  duration,
		"long_source": long,
	})

	var curve pitch.Curve
	if !long {
		buf, err := m.decoder.Decode(ctx, source)
		if err != nil {
			return NewError(ErrCodeDecodeFailed, "failed to decode source", err)
		}
		raw := m.tracker.Track(buf.Samples, buf.SampleRate, m.tracker.Config().FineHop)
		curve = pitch.Curve{
			Times:   raw.Times,
			Pitches: pitch.Smooth(raw.Pitches, m.tracker.Config()),
		}
	}

	m.mu.Lock()
	m.source = source
	m.totalDuration = duration
	m.longSource = long
	m.curve = curve
	m.segment = nil
	m.mu.Unlock()

	logger.Debug("Source initialized", logging.Fields{
		"curve_points": curve.Len(),
	})
	return nil
}

// ExtractSegment analyzes a bounded window of a long source around the
// given playback position and replaces the live curve with the segment's
// time-normalized contour. On failure the segment is reset and the curve
// cleared; the error is returned for the caller to surface.
func (m *Manager) ExtractSegment(ctx context.Context, currentTime float64) error {
	if !m.inFlight.CompareAndSwap(false, true) {
		return NewError(ErrCodeExtractionInFlight, "an extraction is already running", nil)
	}
	defer m.inFlight.Store(false)

	m.mu.RLock()
	source := m.source
	totalDuration := m.totalDuration
	long := m.longSource
	m.mu.RUnlock()

	if !long {
		return fmt.Errorf("segment extraction requires a long source")
	}

	bounds := m.cfg.computeBounds(currentTime, totalDuration)
	segment := bounds.display(m.cfg.SafetyBuffer, totalDuration)

	logger := m.logger.WithFields(logging.Fields{
		"component":     "contour_manager",
		"current_time":  currentTime,
		"raw_start":     bounds.rawStart,
		"raw_end":       bounds.rawEnd,
		"display_start": segment.Start,
		"display_end":   segment.End,
	})

	curve, err := m.extractWindow(ctx, source, bounds)
	if err != nil {
		m.mu.Lock()
		m.segment = nil
		m.curve = pitch.Curve{}
		m.mu.Unlock()
		logger.Error(err, "Segment extraction failed")
		return err
	}

	m.mu.Lock()
	m.curve = curve
	m.segment = &segment
	m.mu.Unlock()

	logger.Debug("Segment extracted", logging.Fields{
		"curve_points": curve.Len(),
	})
	return nil
}

// extractWindow runs decode, framing, estimation and smoothing over the
// raw window, producing a curve whose timestamps are normalized to span
// exactly [0, WindowSpan].
func (m *Manager) extractWindow(ctx context.Context, source []byte, bounds segmentBounds) (pitch.Curve, error) {
	buf, err := m.decoder.Decode(ctx, source)
	if err != nil {
		return pitch.Curve{}, NewError(ErrCodeDecodeFailed, "failed to decode source", err)
	}

	rate := float64(buf.SampleRate)
	startSample := int(math.Round(bounds.rawStart * rate))
	endSample := int(math.Round(bounds.rawEnd * rate))
	startSample = max(0, min(startSample, len(buf.Samples)))
	endSample = max(startSample, min(endSample, len(buf.Samples)))

	raw := m.tracker.Track(buf.Samples[startSample:endSample], buf.SampleRate, m.tracker.Config().FastHop)
	if raw.Len() == 0 {
		return pitch.Curve{}, NewError(ErrCodeEmptyExtraction, "no frames in extraction window", nil)
	}

	// Rescale the window-relative timestamps so the displayed curve
	// always spans the same horizontal extent, whatever the true window
	// width at the source edges.
	scale := m.cfg.WindowSpan / (bounds.rawEnd - bounds.rawStart)
	for i := range raw.Times {
		raw.Times[i] *= scale
	}

	return pitch.Curve{
		Times:   raw.Times,
		Pitches: pitch.Smooth(raw.Pitches, m.tracker.Config()),
	}, nil
}

// PitchDataForRange returns the sub-curve with timestamps in the given
// range. The result is empty, never an error, when nothing qualifies.
func (m *Manager) PitchDataForRange(start, end float64) pitch.Curve {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.curve.Range(start, end)
}

// TotalDuration returns the probed source duration in seconds.
func (m *Manager) TotalDuration() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDuration
}

// IsLongSource reports the source classification fixed at Initialize.
func (m *Manager) IsLongSource() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.longSource
}

// CurrentSegment returns a copy of the active segment, or nil when none
// has been extracted (or the last extraction failed).
func (m *Manager) CurrentSegment() *Segment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.segment == nil {
		return nil
	}
	seg := *m.segment
	return &seg
}

// SegmentDuration returns the active segment's length, or the total
// source duration when the whole source is displayed.
func (m *Manager) SegmentDuration() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.segment != nil {
		return m.segment.Duration()
	}
	return m.totalDuration
}

// NormalizedToSourceTime maps a display timestamp to absolute source
// time. Identity when no segment is active.
func (m *Manager) NormalizedToSourceTime(t float64) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.segment == nil {
		return t
	}
	return m.segment.Start + t
}

// SourceToNormalizedTime maps an absolute source time into the display
// window. Identity when no segment is active.
func (m *Manager) SourceToNormalizedTime(t float64) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.segment == nil {
		return t
	}
	return max(0, t-m.segment.Start)
}

// CurveStats summarizes the live curve's voiced frames.
func (m *Manager) CurveStats() pitch.Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.curve.Stats()
}

// DefaultLoopRegion proposes the initial practice loop: nearly the whole
// source for short material, the displayed segment for long material.
func (m *Manager) DefaultLoopRegion() (start, end float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.longSource {
		if m.segment == nil {
			return 0, 0
		}
		return m.segment.Start, m.segment.End
	}
	return 0, max(0, m.totalDuration-m.cfg.LoopEndMargin)
}

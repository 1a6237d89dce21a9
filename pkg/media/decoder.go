package media

import (
	"context"
	"fmt"
	"time"

	"github.com/RyanBlaney/sonido-sonar/logging"
	"github.com/RyanBlaney/sonido-sonar/transcode"
)

// MaxDecodeBytes is the ceiling applied to encoded sources before decode.
// Bytes beyond it are discarded, which may truncate very large sources;
// the Buffer's Truncated flag and a warning inform the caller.
const MaxDecodeBytes = 2_000_000_000

// Buffer is a decoded, single-channel sample buffer. It is owned
// transiently by the extraction run that requested it and is not retained
// once the pipeline finishes.
type Buffer struct {
	Samples    []float64
	SampleRate int

	// Truncated reports that the encoded source exceeded MaxDecodeBytes
	// and was cut before decoding.
	Truncated bool
}

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// DecoderConfig holds decode and probe settings.
type DecoderConfig struct {
	SampleRate  int
	FFmpegPath  string
	FFprobePath string
	Timeout     time.Duration
	MaxBytes    int64
}

// DefaultDecoderConfig returns the decoder configuration used for
// practice material: mono 44.1 kHz with the ffmpeg tools on PATH.
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		SampleRate:  44100,
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
		Timeout:     60 * time.Second,
		MaxBytes:    MaxDecodeBytes,
	}
}

// FFmpegDecoder decodes arbitrary audio/video containers to a mono sample
// buffer via ffmpeg. Only the first audio channel survives: the pipeline
// analyzes one channel and downmixing happens inside the decode.
type FFmpegDecoder struct {
	cfg     *DecoderConfig
	decoder *transcode.Decoder
	logger  logging.Logger
}

// NewFFmpegDecoder creates an ffmpeg-backed decoder.
func NewFFmpegDecoder(cfg *DecoderConfig, logger logging.Logger) *FFmpegDecoder {
	if cfg == nil {
		cfg = DefaultDecoderConfig()
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	decoder := transcode.NewDecoder(&transcode.DecoderConfig{
		TargetSampleRate:    cfg.SampleRate,
		TargetChannels:      1,
		OutputFormat:        "f64le",
		ResampleQuality:     "medium",
		FFmpegPath:          cfg.FFmpegPath,
		FFprobePath:         cfg.FFprobePath,
		Timeout:             cfg.Timeout,
		EnableNormalization: false,
	})

	return &FFmpegDecoder{cfg: cfg, decoder: decoder, logger: logger}
}

// Decode decodes the encoded source into a sample buffer, applying the
// byte ceiling first.
func (d *FFmpegDecoder) Decode(ctx context.Context, source []byte) (*Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source, truncated := clampSource(source, d.cfg.MaxBytes, d.logger)

	decoded, err := d.decoder.DecodeBytes(source)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg decode: %w", err)
	}

	audio, ok := decoded.(*transcode.AudioData)
	if !ok {
		return nil, fmt.Errorf("ffmpeg decode: unexpected result type %T", decoded)
	}

	d.logger.Debug("Source decoded", logging.Fields{
		"component":   "media_decoder",
		"samples":     len(audio.PCM),
		"sample_rate": audio.SampleRate,
		"duration_s":  audio.Duration.Seconds(),
		"truncated":   truncated,
	})

	return &Buffer{
		Samples:    audio.PCM,
		SampleRate: audio.SampleRate,
		Truncated:  truncated,
	}, nil
}

// clampSource enforces the decode byte ceiling.
func clampSource(source []byte, maxBytes int64, logger logging.Logger) ([]byte, bool) {
	if maxBytes <= 0 || int64(len(source)) <= maxBytes {
		return source, false
	}
	logger.Warn("Source exceeds decode ceiling, truncating", logging.Fields{
		"component":    "media_decoder",
		"source_bytes": len(source),
		"max_bytes":    maxBytes,
	})
	return source[:maxBytes], true
}

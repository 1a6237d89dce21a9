package media

import (
	"bytes"
	"context"
	"fmt"

	"github.com/RyanBlaney/sonido-sonar/logging"
	"github.com/go-audio/wav"
)

// WAVDecoder is a pure-Go decode path for WAV sources, used for user
// practice recordings where spawning ffmpeg is unnecessary. It implements
// both the decode and the duration-probe capabilities.
type WAVDecoder struct {
	maxBytes int64
	logger   logging.Logger
}

// NewWAVDecoder creates a WAV decoder with the standard byte ceiling.
func NewWAVDecoder(logger logging.Logger) *WAVDecoder {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &WAVDecoder{maxBytes: MaxDecodeBytes, logger: logger}
}

// Decode decodes WAV bytes into a mono sample buffer. Multi-channel files
// keep only the first channel; the pipeline analyzes a single channel.
func (d *WAVDecoder) Decode(ctx context.Context, source []byte) (*Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source, truncated := clampSource(source, d.maxBytes, d.logger)

	decoder := wav.NewDecoder(bytes.NewReader(source))
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("not a valid WAV file")
	}

	pcm, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav decode: %w", err)
	}
	if pcm.Format == nil || pcm.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("wav decode: missing format information")
	}

	channels := pcm.Format.NumChannels
	if channels <= 0 {
		channels = 1
	}

	bitDepth := int(decoder.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	samples := make([]float64, 0, len(pcm.Data)/channels)
	for i := 0; i < len(pcm.Data); i += channels {
		samples = append(samples, float64(pcm.Data[i])/scale)
	}

	d.logger.Debug("WAV source decoded", logging.Fields{
		"component":   "wav_decoder",
		"samples":     len(samples),
		"sample_rate": pcm.Format.SampleRate,
		"channels":    channels,
		"bit_depth":   bitDepth,
	})

	return &Buffer{
		Samples:    samples,
		SampleRate: pcm.Format.SampleRate,
		Truncated:  truncated,
	}, nil
}

// ProbeDuration reads the duration from the WAV header without decoding
// the sample data.
func (d *WAVDecoder) ProbeDuration(ctx context.Context, source []byte) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	decoder := wav.NewDecoder(bytes.NewReader(source))
	if !decoder.IsValidFile() {
		return 0, fmt.Errorf("not a valid WAV file")
	}

	duration, err := decoder.Duration()
	if err != nil {
		return 0, fmt.Errorf("wav duration: %w", err)
	}
	return duration.Seconds(), nil
}

package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/RyanBlaney/sonido-sonar/logging"
)

// FFprobeProber determines total source duration from container metadata
// without decoding samples. A single probe classifies the source as short
// or long for its entire lifetime.
type FFprobeProber struct {
	cfg    *DecoderConfig
	logger logging.Logger
}

// NewFFprobeProber creates an ffprobe-backed duration prober.
func NewFFprobeProber(cfg *DecoderConfig, logger logging.Logger) *FFprobeProber {
	if cfg == nil {
		cfg = DefaultDecoderConfig()
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &FFprobeProber{cfg: cfg, logger: logger}
}

// ProbeDuration returns the source duration in seconds.
func (p *FFprobeProber) ProbeDuration(ctx context.Context, source []byte) (float64, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-show_format",
		"-select_streams", "a:0",
		"pipe:0",
	}

	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, p.cfg.FFprobePath, args...)
	cmd.Stdin = bytes.NewReader(source)

	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			return 0, fmt.Errorf("ffprobe failed: %w, stderr: %s", err, string(exitError.Stderr))
		}
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	duration, err := parseProbeDuration(output)
	if err != nil {
		return 0, err
	}

	p.logger.Debug("Source duration probed", logging.Fields{
		"component":  "duration_probe",
		"duration_s": duration,
	})

	return duration, nil
}

// parseProbeDuration extracts a duration from ffprobe JSON. Stream
// duration wins; the container duration is the fallback because piped
// input often lacks per-stream timing.
func parseProbeDuration(jsonData []byte) (float64, error) {
	var probe struct {
		Streams []struct {
			CodecType string `json:"codec_type"`
			Duration  string `json:"duration"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}

	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	if len(probe.Streams) > 0 && probe.Streams[0].Duration != "" {
		if d, err := strconv.ParseFloat(probe.Streams[0].Duration, 64); err == nil && d > 0 {
			return d, nil
		}
	}
	if probe.Format.Duration != "" {
		if d, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil && d > 0 {
			return d, nil
		}
	}

	return 0, fmt.Errorf("no usable duration in probe output")
}

package configs

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/yzeal/chorusing-sub001/pkg/contour"
	"github.com/yzeal/chorusing-sub001/pkg/media"
	"github.com/yzeal/chorusing-sub001/pkg/pitch"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`

	// Audio decode configuration
	Audio AudioConfig `mapstructure:"audio"`

	// Pitch extraction configuration
	Pitch PitchConfig `mapstructure:"pitch"`

	// Segment window configuration
	Segment SegmentConfig `mapstructure:"segment"`
}

// AudioConfig contains decode and probe settings
type AudioConfig struct {
	SampleRate     int           `mapstructure:"sample_rate"`
	FFmpegPath     string        `mapstructure:"ffmpeg_path"`
	FFprobePath    string        `mapstructure:"ffprobe_path"`
	DecodeTimeout  time.Duration `mapstructure:"decode_timeout"`
	MaxDecodeBytes int64         `mapstructure:"max_decode_bytes"`
}

// PitchConfig contains the extraction pipeline settings
type PitchConfig struct {
	FrameSize       int     `mapstructure:"frame_size"`
	FineHop         int     `mapstructure:"fine_hop"`
	FastHop         int     `mapstructure:"fast_hop"`
	MinPitch        float64 `mapstructure:"min_pitch"`
	MaxPitch        float64 `mapstructure:"max_pitch"`
	MinClarity      float64 `mapstructure:"min_clarity"`
	MedianWindow    int     `mapstructure:"median_window"`
	SmoothingWindow int     `mapstructure:"smoothing_window"`
}

// SegmentConfig contains source classification and segment window settings
type SegmentConfig struct {
	LongSourceThreshold float64 `mapstructure:"long_source_threshold"`
	WindowSpan          float64 `mapstructure:"window_span"`
	SafetyBuffer        float64 `mapstructure:"safety_buffer"`
	DisplayLead         float64 `mapstructure:"display_lead"`
	LoopEndMargin       float64 `mapstructure:"loop_end_margin"`
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	setDefaults(viper.GetViper())

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio sample rate must be positive")
	}

	if c.Pitch.FrameSize <= 0 {
		return fmt.Errorf("pitch frame size must be positive")
	}

	if c.Pitch.FineHop <= 0 || c.Pitch.FastHop <= 0 {
		return fmt.Errorf("pitch hop sizes must be positive")
	}

	if c.Pitch.MinPitch <= 0 || c.Pitch.MaxPitch <= c.Pitch.MinPitch {
		return fmt.Errorf("pitch band must satisfy 0 < min < max")
	}

	if c.Pitch.MinClarity < 0 || c.Pitch.MinClarity > 1 {
		return fmt.Errorf("minimum clarity must be between 0 and 1")
	}

	if c.Segment.LongSourceThreshold <= 0 {
		return fmt.Errorf("long source threshold must be positive")
	}

	if c.Segment.WindowSpan <= 0 {
		return fmt.Errorf("segment window span must be positive")
	}

	if c.Segment.SafetyBuffer < 0 {
		return fmt.Errorf("segment safety buffer cannot be negative")
	}

	return nil
}

// PitchPipelineConfig maps the configuration onto the extraction pipeline
func (c *Config) PitchPipelineConfig() *pitch.Config {
	return &pitch.Config{
		FrameSize:       c.Pitch.FrameSize,
		FineHop:         c.Pitch.FineHop,
		FastHop:         c.Pitch.FastHop,
		MinPitch:        c.Pitch.MinPitch,
		MaxPitch:        c.Pitch.MaxPitch,
		MinClarity:      c.Pitch.MinClarity,
		MedianWindow:    c.Pitch.MedianWindow,
		SmoothingWindow: c.Pitch.SmoothingWindow,
	}
}

// ContourConfig maps the configuration onto the contour manager
func (c *Config) ContourConfig() *contour.Config {
	return &contour.Config{
		LongSourceThreshold: c.Segment.LongSourceThreshold,
		WindowSpan:          c.Segment.WindowSpan,
		SafetyBuffer:        c.Segment.SafetyBuffer,
		DisplayLead:         c.Segment.DisplayLead,
		LoopEndMargin:       c.Segment.LoopEndMargin,
	}
}

// DecoderConfig maps the configuration onto the media decoder
func (c *Config) DecoderConfig() *media.DecoderConfig {
	return &media.DecoderConfig{
		SampleRate:  c.Audio.SampleRate,
		FFmpegPath:  c.Audio.FFmpegPath,
		FFprobePath: c.Audio.FFprobePath,
		Timeout:     c.Audio.DecodeTimeout,
		MaxBytes:    c.Audio.MaxDecodeBytes,
	}
}

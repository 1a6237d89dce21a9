package configs

import (
	"time"

	"github.com/spf13/viper"
	"github.com/yzeal/chorusing-sub001/pkg/media"
	"github.com/yzeal/chorusing-sub001/pkg/pitch"
)

// setDefaults sets default configuration values for all components
func setDefaults(v *viper.Viper) {
	// Application defaults
	if !v.IsSet("verbose") {
		v.Set("verbose", false)
	}
	if !v.IsSet("log_level") {
		v.Set("log_level", "info")
	}
	if !v.IsSet("output_format") {
		v.Set("output_format", "json")
	}

	// Audio decode defaults
	if !v.IsSet("audio.sample_rate") {
		v.Set("audio.sample_rate", 44100)
	}
	if !v.IsSet("audio.ffmpeg_path") {
		v.Set("audio.ffmpeg_path", "ffmpeg")
	}
	if !v.IsSet("audio.ffprobe_path") {
		v.Set("audio.ffprobe_path", "ffprobe")
	}
	if !v.IsSet("audio.decode_timeout") {
		v.Set("audio.decode_timeout", 60*time.Second)
	}
	if !v.IsSet("audio.max_decode_bytes") {
		v.Set("audio.max_decode_bytes", int64(media.MaxDecodeBytes))
	}

	// Pitch extraction defaults
	if !v.IsSet("pitch.frame_size") {
		v.Set("pitch.frame_size", pitch.DefaultFrameSize)
	}
	if !v.IsSet("pitch.fine_hop") {
		v.Set("pitch.fine_hop", pitch.DefaultFineHop)
	}
	if !v.IsSet("pitch.fast_hop") {
		v.Set("pitch.fast_hop", pitch.DefaultFastHop)
	}
	if !v.IsSet("pitch.min_pitch") {
		v.Set("pitch.min_pitch", pitch.DefaultMinPitch)
	}
	if !v.IsSet("pitch.max_pitch") {
		v.Set("pitch.max_pitch", pitch.DefaultMaxPitch)
	}
	if !v.IsSet("pitch.min_clarity") {
		v.Set("pitch.min_clarity", pitch.DefaultMinClarity)
	}
	if !v.IsSet("pitch.median_window") {
		v.Set("pitch.median_window", pitch.DefaultMedianWindow)
	}
	if !v.IsSet("pitch.smoothing_window") {
		v.Set("pitch.smoothing_window", pitch.DefaultSmoothingWindow)
	}

	// Segment window defaults
	if !v.IsSet("segment.long_source_threshold") {
		v.Set("segment.long_source_threshold", 30.0)
	}
	if !v.IsSet("segment.window_span") {
		v.Set("segment.window_span", 20.0)
	}
	if !v.IsSet("segment.safety_buffer") {
		v.Set("segment.safety_buffer", 1.0)
	}
	if !v.IsSet("segment.display_lead") {
		v.Set("segment.display_lead", 0.5)
	}
	if !v.IsSet("segment.loop_end_margin") {
		v.Set("segment.loop_end_margin", 0.15)
	}
}

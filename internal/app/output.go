package app

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yzeal/chorusing-sub001/pkg/contour"
	"github.com/yzeal/chorusing-sub001/pkg/pitch"
)

// AnalysisResult is the output of one analysis run.
type AnalysisResult struct {
	InputFile         string           `json:"input_file" yaml:"input_file"`
	TotalDuration     float64          `json:"total_duration_s" yaml:"total_duration_s"`
	LongSource        bool             `json:"long_source" yaml:"long_source"`
	Segment           *contour.Segment `json:"segment,omitempty" yaml:"segment,omitempty"`
	SegmentDuration   float64          `json:"segment_duration_s" yaml:"segment_duration_s"`
	CurveStats        pitch.Stats      `json:"curve_stats" yaml:"curve_stats"`
	LoopStart         float64          `json:"loop_start_s" yaml:"loop_start_s"`
	LoopEnd           float64          `json:"loop_end_s" yaml:"loop_end_s"`
	Curve             *pitch.Curve     `json:"curve,omitempty" yaml:"curve,omitempty"`
	AnalysisTime      float64          `json:"analysis_time_s" yaml:"analysis_time_s"`
	AnalysisTimestamp time.Time        `json:"timestamp" yaml:"timestamp"`
}

// formatResult renders the result in the requested output format.
func formatResult(result *AnalysisResult, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(result)
	case "json", "":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

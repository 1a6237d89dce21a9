package app

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yzeal/chorusing-sub001/pkg/contour"
	"github.com/yzeal/chorusing-sub001/pkg/pitch"
)

func sampleResult() *AnalysisResult {
	return &AnalysisResult{
		InputFile:     "lecture.mp4",
		TotalDuration: 60,
		LongSource:    true,
		Segment:       &contour.Segment{Start: 4.5, End: 24.5},
		Curve: &pitch.Curve{
			Times:   []float64{0, 0.2},
			Pitches: []float64{200, math.NaN()},
		},
		AnalysisTimestamp: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
	}
}

func TestFormatResultJSON(t *testing.T) {
	data, err := formatResult(sampleResult(), "json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "lecture.mp4", decoded["input_file"])
	assert.Equal(t, true, decoded["long_source"])

	// Unvoiced frames come through as null, not as an encoding failure.
	curve := decoded["curve"].(map[string]any)
	pitches := curve["pitches"].([]any)
	require.Len(t, pitches, 2)
	assert.Nil(t, pitches[1])
}

func TestFormatResultDefaultsToJSON(t *testing.T) {
	data, err := formatResult(sampleResult(), "")
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestFormatResultYAML(t *testing.T) {
	data, err := formatResult(sampleResult(), "yaml")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "lecture.mp4", decoded["input_file"])
}

func TestFormatResultUnknownFormat(t *testing.T) {
	_, err := formatResult(sampleResult(), "toml")
	assert.Error(t, err)
}

func TestFormatResultOmitsEmptySegment(t *testing.T) {
	result := sampleResult()
	result.Segment = nil
	result.Curve = nil

	data, err := formatResult(result, "json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotContains(t, decoded, "segment")
	assert.NotContains(t, decoded, "curve")
}

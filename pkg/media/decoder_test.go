package media

import (
	"testing"

	"github.com/RyanBlaney/sonido-sonar/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return &logging.NoOpLogger{}
}

func TestClampSource(t *testing.T) {
	source := make([]byte, 100)

	clamped, truncated := clampSource(source, 200, testLogger())
	assert.Len(t, clamped, 100)
	assert.False(t, truncated)

	clamped, truncated = clampSource(source, 100, testLogger())
	assert.Len(t, clamped, 100)
	assert.False(t, truncated)

	clamped, truncated = clampSource(source, 40, testLogger())
	assert.Len(t, clamped, 40)
	assert.True(t, truncated)

	// A non-positive ceiling disables clamping.
	clamped, truncated = clampSource(source, 0, testLogger())
	assert.Len(t, clamped, 100)
	assert.False(t, truncated)
}

func TestBufferDuration(t *testing.T) {
	buf := &Buffer{Samples: make([]float64, 22050), SampleRate: 44100}
	assert.InDelta(t, 0.5, buf.Duration(), 1e-9)

	empty := &Buffer{SampleRate: 0}
	assert.Equal(t, 0.0, empty.Duration())
}

func TestDefaultDecoderConfig(t *testing.T) {
	cfg := DefaultDecoderConfig()
	assert.Equal(t, 44100, cfg.SampleRate)
	assert.Equal(t, int64(MaxDecodeBytes), cfg.MaxBytes)
	assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, "ffprobe", cfg.FFprobePath)
}

func TestParseProbeDuration(t *testing.T) {
	cases := []struct {
		name    string
		json    string
		want    float64
		wantErr bool
	}{
		{
			name: "stream duration wins",
			json: `{"streams":[{"codec_type":"audio","duration":"12.5"}],"format":{"duration":"13.0"}}`,
			want: 12.5,
		},
		{
			name: "format fallback",
			json: `{"streams":[{"codec_type":"audio","duration":""}],"format":{"duration":"42.25"}}`,
			want: 42.25,
		},
		{
			name: "no streams, format only",
			json: `{"format":{"duration":"7.0"}}`,
			want: 7.0,
		},
		{
			name:    "no duration anywhere",
			json:    `{"streams":[{"codec_type":"audio"}],"format":{}}`,
			wantErr: true,
		},
		{
			name:    "zero duration is unusable",
			json:    `{"format":{"duration":"0"}}`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			json:    `not json`,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseProbeDuration([]byte(tc.json))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

package pitch

// Default analysis constants. The frequency band covers the fundamental of
// normal speech; estimates outside it are treated as estimator noise.
const (
	DefaultFrameSize = 2048
	DefaultFineHop   = 256
	DefaultFastHop   = 2048

	DefaultMinPitch   = 60.0
	DefaultMaxPitch   = 500.0
	DefaultMinClarity = 0.6

	DefaultMedianWindow    = 10
	DefaultSmoothingWindow = 25
)

// Config holds the tunable parameters of the extraction pipeline.
type Config struct {
	// FrameSize is the number of samples handed to the estimator per frame.
	FrameSize int

	// FineHop is the frame advance for full-file extraction; FastHop is the
	// coarser advance used for segment extraction, trading temporal
	// resolution for speed.
	FineHop int
	FastHop int

	// MinPitch and MaxPitch bound accepted estimates in Hz.
	MinPitch float64
	MaxPitch float64

	// MinClarity is the minimum estimator confidence for a frame to count
	// as voiced.
	MinClarity float64

	// MedianWindow and SmoothingWindow size the two denoising passes.
	MedianWindow    int
	SmoothingWindow int
}

// DefaultConfig returns the pipeline configuration used for pronunciation
// practice material.
func DefaultConfig() *Config {
	return &Config{
		FrameSize:       DefaultFrameSize,
		FineHop:         DefaultFineHop,
		FastHop:         DefaultFastHop,
		MinPitch:        DefaultMinPitch,
		MaxPitch:        DefaultMaxPitch,
		MinClarity:      DefaultMinClarity,
		MedianWindow:    DefaultMedianWindow,
		SmoothingWindow: DefaultSmoothingWindow,
	}
}

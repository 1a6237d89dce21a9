package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/RyanBlaney/sonido-sonar/logging"
	"github.com/yzeal/chorusing-sub001/configs"
	"github.com/yzeal/chorusing-sub001/pkg/contour"
	"github.com/yzeal/chorusing-sub001/pkg/media"
	"github.com/yzeal/chorusing-sub001/pkg/pitch"
)

// Context holds the application context and configuration
type Context struct {
	// CLI arguments
	ConfigFile   string
	InputFile    string
	OutputFile   string
	OutputFormat string
	SegmentTime  float64
	IncludeCurve bool
	Verbose      bool
	Quiet        bool

	// Runtime context
	Logger logging.Logger
	Config *configs.Config
}

// AnalyzerApp handles one analysis run over a practice source
type AnalyzerApp struct {
	ctx    *Context
	config *configs.Config
	logger logging.Logger
}

// NewAnalyzerApp creates a new analyzer application
func NewAnalyzerApp(ctx *Context) (*AnalyzerApp, error) {
	logger := setupLogging(ctx)
	ctx.Logger = logger

	config, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	ctx.Config = config

	if !ctx.Verbose && !ctx.Quiet {
		logger.SetLevel(parseLogLevel(config.LogLevel))
	}

	logger.Debug("Analyzer application initialized", logging.Fields{
		"config_file":   ctx.ConfigFile,
		"input_file":    ctx.InputFile,
		"output_format": ctx.OutputFormat,
		"segment_time":  ctx.SegmentTime,
	})

	return &AnalyzerApp{
		ctx:    ctx,
		config: config,
		logger: logger,
	}, nil
}

// Run executes the analysis and writes the result
func (app *AnalyzerApp) Run(ctx context.Context) error {
	source, err := os.ReadFile(app.ctx.InputFile)
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}

	manager := app.newManager(app.ctx.InputFile)

	start := time.Now()
	if err := manager.Initialize(ctx, source); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	// Long sources start empty; extract the window around the requested
	// playback position.
	if manager.IsLongSource() {
		if err := manager.ExtractSegment(ctx, app.ctx.SegmentTime); err != nil {
			return fmt.Errorf("segment extraction failed: %w", err)
		}
	}
	elapsed := time.Since(start)

	result := app.buildResult(manager, elapsed)

	formatted, err := formatResult(result, app.ctx.OutputFormat)
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}

	if app.ctx.OutputFile != "" {
		return app.writeToFile(formatted)
	}

	_, err = os.Stdout.Write(formatted)
	return err
}

// newManager wires the contour manager with the decode path that fits
// the source: pure-Go for WAV recordings, ffmpeg for everything else.
func (app *AnalyzerApp) newManager(inputFile string) *contour.Manager {
	tracker := pitch.NewTracker(app.config.PitchPipelineConfig(), nil, app.logger)

	var deps contour.Deps
	deps.Tracker = tracker

	if media.IsWAV(inputFile) {
		wavDecoder := media.NewWAVDecoder(app.logger)
		deps.Decoder = wavDecoder
		deps.Prober = wavDecoder
	} else {
		decoderConfig := app.config.DecoderConfig()
		deps.Decoder = media.NewFFmpegDecoder(decoderConfig, app.logger)
		deps.Prober = media.NewFFprobeProber(decoderConfig, app.logger)
	}

	return contour.NewManager(deps, app.config.ContourConfig(), app.logger)
}

// buildResult collects the analysis output
func (app *AnalyzerApp) buildResult(manager *contour.Manager, elapsed time.Duration) *AnalysisResult {
	loopStart, loopEnd := manager.DefaultLoopRegion()

	result := &AnalysisResult{
		InputFile:         app.ctx.InputFile,
		TotalDuration:     manager.TotalDuration(),
		LongSource:        manager.IsLongSource(),
		Segment:           manager.CurrentSegment(),
		SegmentDuration:   manager.SegmentDuration(),
		CurveStats:        manager.CurveStats(),
		LoopStart:         loopStart,
		LoopEnd:           loopEnd,
		AnalysisTime:      elapsed.Seconds(),
		AnalysisTimestamp: time.Now(),
	}

	if app.ctx.IncludeCurve {
		curve := manager.PitchDataForRange(0, manager.TotalDuration()+1)
		result.Curve = &curve
	}

	return result
}

// writeToFile writes data to the configured output file
func (app *AnalyzerApp) writeToFile(data []byte) error {
	dir := filepath.Dir(app.ctx.OutputFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(app.ctx.OutputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	app.logger.Debug("Results written to file", logging.Fields{
		"output_file": app.ctx.OutputFile,
		"size_bytes":  len(data),
	})

	return nil
}

// setupLogging configures logging based on context
func setupLogging(ctx *Context) logging.Logger {
	if ctx.Quiet {
		return &logging.NoOpLogger{}
	}

	logger := logging.NewDefaultLogger()
	if ctx.Verbose {
		logger.SetLevel(logging.DebugLevel)
	}
	return logger
}

func parseLogLevel(level string) logging.Level {
	switch level {
	case "debug":
		return logging.DebugLevel
	case "warn":
		return logging.WarnLevel
	case "error":
		return logging.ErrorLevel
	default:
		return logging.InfoLevel
	}
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yzeal/chorusing-sub001/configs"
	"github.com/yzeal/chorusing-sub001/pkg/contour"
	"github.com/yzeal/chorusing-sub001/pkg/media"
	"github.com/yzeal/chorusing-sub001/pkg/pitch"
)

var (
	segmentTimeout  time.Duration
	segmentPosition float64
	segmentSweep    bool
)

var segmentTestCmd = &cobra.Command{
	Use:   "segment-test [source-file]",
	Short: "Test segment window computation and extraction",
	Long: `Test segment extraction against a real source file.

This command runs the full contour pipeline and reports how the segment
window is placed for the requested playback position:
- Source classification (short vs long)
- Raw analysis window and displayed segment bounds
- Curve statistics after smoothing
- Display-time round-trip conversions

Examples:
  # Extract the segment around 90s of a long source
  segment-test /path/to/lecture.mp4 --time 90

  # Show window placement across the whole source
  segment-test /path/to/lecture.mp4 --sweep`,
	Args: cobra.ExactArgs(1),
	RunE: runSegmentTest,
}

func init() {
	rootCmd.AddCommand(segmentTestCmd)

	segmentTestCmd.Flags().DurationVar(&segmentTimeout, "timeout", 120*time.Second,
		"operation timeout")
	segmentTestCmd.Flags().Float64Var(&segmentPosition, "time", 0,
		"playback position (seconds) to extract around")
	segmentTestCmd.Flags().BoolVar(&segmentSweep, "sweep", false,
		"report window placement at several positions instead of extracting")
}

func runSegmentTest(cmd *cobra.Command, args []string) error {
	inputFile := args[0]
	verbose := viper.GetBool("verbose")

	printHeader("Segment Extraction Testing", inputFile)

	ctx, cancel := context.WithTimeout(context.Background(), segmentTimeout)
	defer cancel()

	timer := NewPerformanceTimer()
	timer.StartEvent("total_test")

	// Step 1: Configuration
	printStep(1, "Configuration")

	appConfig, err := configs.LoadConfig()
	if err != nil {
		printError("Failed to load application config: %v", err)
		return fmt.Errorf("failed to load application config: %w", err)
	}
	printSuccess("Application configuration loaded")
	printInfo("Window span %.0f s, safety buffer %.1f s, long threshold %.0f s",
		appConfig.Segment.WindowSpan, appConfig.Segment.SafetyBuffer,
		appConfig.Segment.LongSourceThreshold)
	fmt.Println()

	// Step 2: Initialize
	printStep(2, "Source Initialization")
	timer.StartEvent("initialize")

	source, err := os.ReadFile(inputFile)
	if err != nil {
		printError("Failed to read source: %v", err)
		return fmt.Errorf("failed to read source: %w", err)
	}

	manager := newTestManager(inputFile, appConfig)
	if err := manager.Initialize(ctx, source); err != nil {
		printError("Initialization failed: %v", err)
		return fmt.Errorf("initialization failed: %w", err)
	}

	printSuccess("Source initialized (%.3f s)", manager.TotalDuration())
	if manager.IsLongSource() {
		printInfo("Classification: LONG, curve starts empty")
	} else {
		printInfo("Classification: SHORT, full curve extracted")
	}
	timer.EndEvent("initialize")
	fmt.Println()

	if !manager.IsLongSource() {
		printSectionHeader("Short Source Summary")
		displayCurveStats(manager.CurveStats())
		loopStart, loopEnd := manager.DefaultLoopRegion()
		printInfo("Default loop region: [%.3f, %.3f]", loopStart, loopEnd)
		fmt.Printf("\n%sTotal Test Duration: %v%s\n", ColorBold, timer.GetTotalDuration(), ColorReset)
		return nil
	}

	// Step 3: Window placement sweep
	if segmentSweep {
		printStep(3, "Window Placement Sweep")
		displayWindowSweep(appConfig.ContourConfig(), manager.TotalDuration())
		fmt.Println()
	}

	// Step 4: Segment extraction
	printStep(4, "Segment Extraction")
	timer.StartEvent("extract")

	if err := manager.ExtractSegment(ctx, segmentPosition); err != nil {
		printError("Segment extraction failed: %v", err)
		return fmt.Errorf("segment extraction failed: %w", err)
	}

	segment := manager.CurrentSegment()
	printSuccess("Segment extracted around t=%.3f s", segmentPosition)
	printInfo("Displayed segment: [%.3f, %.3f] (%.3f s)",
		segment.Start, segment.End, segment.Duration())
	timer.EndEvent("extract")
	fmt.Println()

	// Step 5: Round-trip conversions
	printStep(5, "Time Conversions")
	for _, t := range []float64{0, 5, appConfig.Segment.WindowSpan} {
		abs := manager.NormalizedToSourceTime(t)
		back := manager.SourceToNormalizedTime(abs)
		printInfo("display %.3f -> source %.3f -> display %.3f", t, abs, back)
	}
	fmt.Println()

	printSectionHeader("Curve Summary")
	displayCurveStats(manager.CurveStats())
	fmt.Println()

	// Performance Summary
	timer.EndEvent("total_test")
	if verbose {
		printSectionHeader("Performance Summary")
		displayPerformanceSummary(timer)
		fmt.Println()
	}

	fmt.Printf("\n%sTotal Test Duration: %v%s\n", ColorBold, timer.GetTotalDuration(), ColorReset)
	return nil
}

// newTestManager wires a manager the same way the analyzer app does.
func newTestManager(inputFile string, appConfig *configs.Config) *contour.Manager {
	tracker := pitch.NewTracker(appConfig.PitchPipelineConfig(), nil, nil)

	deps := contour.Deps{Tracker: tracker}
	if media.IsWAV(inputFile) {
		wavDecoder := media.NewWAVDecoder(nil)
		deps.Decoder = wavDecoder
		deps.Prober = wavDecoder
	} else {
		decoderConfig := appConfig.DecoderConfig()
		deps.Decoder = media.NewFFmpegDecoder(decoderConfig, nil)
		deps.Prober = media.NewFFprobeProber(decoderConfig, nil)
	}

	return contour.NewManager(deps, appConfig.ContourConfig(), nil)
}

func displayCurveStats(stats pitch.Stats) {
	printInfo("Points: %d (%d voiced, %.1f%%)",
		stats.Points, stats.Voiced, stats.VoicedRatio*100)
	if stats.Voiced > 0 {
		printInfo("Pitch range: %.1f - %.1f Hz (mean %.1f Hz)",
			stats.MinPitch, stats.MaxPitch, stats.MeanPitch)
	}
}

func displayWindowSweep(cfg *contour.Config, total float64) {
	positions := []float64{0, total * 0.25, total * 0.5, total * 0.75, total}
	for _, pos := range positions {
		raw, display := cfg.ComputeWindow(pos, total)
		printInfo("t=%7.1f s: raw [%.3f, %.3f], displayed [%.3f, %.3f]",
			pos, raw.Start, raw.End, display.Start, display.End)
	}
}

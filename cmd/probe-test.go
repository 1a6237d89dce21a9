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
)

var (
	probeTimeout time.Duration
	probeDecode  bool
)

var probeTestCmd = &cobra.Command{
	Use:   "probe-test [source-file]",
	Short: "Test source probing and decoding",
	Long: `Test the duration probe and decode path against a source file.

This command exercises the media layer in isolation:
- FFprobe duration extraction (or the pure-Go path for WAV files)
- Optional full decode with sample statistics
- Decode ceiling and truncation reporting

Examples:
  # Probe the duration of a file
  probe-test /path/to/audio.mp3

  # Probe and fully decode, with verbose output
  probe-test /path/to/lecture.mp4 --decode --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: runProbeTest,
}

func init() {
	rootCmd.AddCommand(probeTestCmd)

	probeTestCmd.Flags().DurationVar(&probeTimeout, "timeout", 60*time.Second,
		"operation timeout")
	probeTestCmd.Flags().BoolVar(&probeDecode, "decode", false,
		"decode the full source after probing")
}

func runProbeTest(cmd *cobra.Command, args []string) error {
	inputFile := args[0]
	verbose := viper.GetBool("verbose")

	printHeader("Source Probe Testing", inputFile)

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
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

	decoderConfig := appConfig.DecoderConfig()
	decoderConfig.Timeout = probeTimeout
	printSuccess("Decoder configuration created (sample rate %d)", decoderConfig.SampleRate)
	fmt.Println()

	// Step 2: Read source
	printStep(2, "Source Read")
	timer.StartEvent("read")

	source, err := os.ReadFile(inputFile)
	if err != nil {
		printError("Failed to read source: %v", err)
		return fmt.Errorf("failed to read source: %w", err)
	}
	printSuccess("Read %d bytes", len(source))
	timer.EndEvent("read")
	fmt.Println()

	// WAV recordings use the pure-Go path, everything else goes through
	// ffmpeg/ffprobe.
	var (
		decoder contour.Decoder
		prober  contour.DurationProber
	)
	if media.IsWAV(inputFile) {
		wavDecoder := media.NewWAVDecoder(nil)
		decoder = wavDecoder
		prober = wavDecoder
		printInfo("Using pure-Go WAV decode path")
	} else {
		decoder = media.NewFFmpegDecoder(decoderConfig, nil)
		prober = media.NewFFprobeProber(decoderConfig, nil)
		printInfo("Using ffmpeg decode path")
	}
	fmt.Println()

	// Step 3: Duration probe
	printStep(3, "Duration Probe")
	timer.StartEvent("probe")

	duration, err := prober.ProbeDuration(ctx, source)
	if err != nil {
		printError("Duration probe failed: %v", err)
		return fmt.Errorf("duration probe failed: %w", err)
	}
	printSuccess("Duration: %.3f s", duration)
	if duration > appConfig.Segment.LongSourceThreshold {
		printInfo("Source classifies as LONG (threshold %.0f s)", appConfig.Segment.LongSourceThreshold)
	} else {
		printInfo("Source classifies as SHORT (threshold %.0f s)", appConfig.Segment.LongSourceThreshold)
	}
	timer.EndEvent("probe")
	fmt.Println()

	// Step 4: Full decode
	if probeDecode {
		printStep(4, "Full Decode")
		timer.StartEvent("decode")

		buf, err := decoder.Decode(ctx, source)
		if err != nil {
			printError("Decode failed: %v", err)
			return fmt.Errorf("decode failed: %w", err)
		}
		printSuccess("Decoded %d samples at %d Hz (%.3f s)",
			len(buf.Samples), buf.SampleRate, buf.Duration())
		if buf.Truncated {
			printWarning("Source exceeded the decode ceiling and was truncated")
		}
		timer.EndEvent("decode")
		fmt.Println()
	}

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

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yzeal/chorusing-sub001/internal/app"
	"github.com/yzeal/chorusing-sub001/pkg/media"
)

var (
	analyzeOutputFile   string
	analyzeSegmentTime  float64
	analyzeIncludeCurve bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [source-file]",
	Short: "Extract the pitch contour of an audio or video source",
	Long: `Extract the pitch contour of a practice source.

Sources up to 30 seconds are analyzed in one fine-grained pass. Longer
sources get a bounded segment around --segment-time, with curve
timestamps normalized to a fixed 20-second display span.

Examples:
  # Analyze a short clip and print the summary as JSON
  chorusing analyze clip.mp3

  # Include the full curve in the output
  chorusing analyze clip.wav --curve -o yaml

  # Analyze the segment around 1:30 of a long video
  chorusing analyze lecture.mp4 --segment-time 90 --out result.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeOutputFile, "out", "",
		"write the result to this file instead of stdout")
	analyzeCmd.Flags().Float64Var(&analyzeSegmentTime, "segment-time", 0,
		"playback position (seconds) around which to extract a long source's segment")
	analyzeCmd.Flags().BoolVar(&analyzeIncludeCurve, "curve", false,
		"include the full pitch curve in the output")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	inputFile := args[0]
	if !media.IsSupported(inputFile) {
		return fmt.Errorf("unsupported source format: %s", inputFile)
	}

	appCtx := &app.Context{
		ConfigFile:   configFile,
		InputFile:    inputFile,
		OutputFile:   analyzeOutputFile,
		OutputFormat: outputFormat,
		SegmentTime:  analyzeSegmentTime,
		IncludeCurve: analyzeIncludeCurve,
		Verbose:      verbose,
		Quiet:        quiet,
	}

	analyzer, err := app.NewAnalyzerApp(appCtx)
	if err != nil {
		return err
	}

	return analyzer.Run(context.Background())
}

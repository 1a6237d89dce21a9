package cmd

import (
	"fmt"
	"strings"
	"time"
)

// ANSI color codes for terminal output
const (
	ColorReset  = "\033[0m"
	ColorBold   = "\033[1m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
)

// PerformanceTimer tracks the duration of named events within a test run
type PerformanceTimer struct {
	started   time.Time
	starts    map[string]time.Time
	durations map[string]time.Duration
	order     []string
}

func NewPerformanceTimer() *PerformanceTimer {
	return &PerformanceTimer{
		started:   time.Now(),
		starts:    make(map[string]time.Time),
		durations: make(map[string]time.Duration),
	}
}

func (t *PerformanceTimer) StartEvent(name string) {
	t.starts[name] = time.Now()
	t.order = append(t.order, name)
}

func (t *PerformanceTimer) EndEvent(name string) {
	if start, ok := t.starts[name]; ok {
		t.durations[name] = time.Since(start)
	}
}

func (t *PerformanceTimer) GetTotalDuration() time.Duration {
	return time.Since(t.started)
}

func (t *PerformanceTimer) Events() []string {
	return t.order
}

func (t *PerformanceTimer) Duration(name string) time.Duration {
	return t.durations[name]
}

func printHeader(title, input string) {
	fmt.Printf("%s%s%s%s: %s%s%s\n", ColorBold, ColorBlue, title, ColorReset, ColorCyan, input, ColorReset)
	fmt.Printf("%s%s%s\n\n", ColorBlue, strings.Repeat("═", 80), ColorReset)
}

func printStep(num int, title string) {
	fmt.Printf("%s%s%d%s %s%s%s\n", ColorBold, ColorPurple, num, ColorReset, ColorWhite, title, ColorReset)
}

func printSectionHeader(title string) {
	fmt.Printf("%s%s%s%s\n", ColorBold, ColorBlue, title, ColorReset)
}

func printSuccess(format string, args ...any) {
	fmt.Printf("   %s✓%s %s\n", ColorGreen, ColorReset, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Printf("   %s⚠%s %s\n", ColorYellow, ColorReset, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Printf("   %s✗%s %s\n", ColorRed, ColorReset, fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Printf("   %s•%s %s\n", ColorCyan, ColorReset, fmt.Sprintf(format, args...))
}

func displayPerformanceSummary(timer *PerformanceTimer) {
	for _, name := range timer.Events() {
		fmt.Printf("      %-24s %v\n", name+":", timer.Duration(name))
	}
}

// ABOUTME: Completion bar for the hackathon form's required sections
// ABOUTME: Colours shift from amber to purple to green as the posting fills in

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBarConfig holds configuration for the progress bar
type ProgressBarConfig struct {
	Width      int
	LowBelow   int // Percentage under which the bar is drawn in LowColor (default 50)
	LowColor   lipgloss.Color
	MidColor   lipgloss.Color
	DoneColor  lipgloss.Color
	EmptyColor lipgloss.Color
}

// DefaultProgressBarConfig returns sensible defaults
func DefaultProgressBarConfig() ProgressBarConfig {
	return ProgressBarConfig{
		Width:      20,
		LowBelow:   50,
		LowColor:   lipgloss.Color("#F59E0B"), // Amber
		MidColor:   lipgloss.Color("#7C3AED"), // Purple
		DoneColor:  lipgloss.Color("#10B981"), // Green
		EmptyColor: lipgloss.Color("#374151"), // Dark gray
	}
}

// filledCells returns how many of width cells a percentage fills
func filledCells(percent, width int) int {
	percent = min(max(percent, 0), 100)
	return percent * width / 100
}

// barColor picks the fill colour for percent
func (c ProgressBarConfig) barColor(percent int) lipgloss.Color {
	switch {
	case percent >= 100:
		return c.DoneColor
	case percent < c.LowBelow:
		return c.LowColor
	default:
		return c.MidColor
	}
}

// ProgressBar renders a bracketed completion bar
func ProgressBar(percent int, config ProgressBarConfig) string {
	if config.Width <= 0 {
		config.Width = 20
	}
	filled := filledCells(percent, config.Width)

	var bar strings.Builder
	bar.WriteString("[")
	bar.WriteString(lipgloss.NewStyle().Foreground(config.barColor(percent)).Render(strings.Repeat("█", filled)))
	bar.WriteString(lipgloss.NewStyle().Foreground(config.EmptyColor).Render(strings.Repeat("░", config.Width-filled)))
	bar.WriteString("]")
	return bar.String()
}

// ProgressBarWithLabel renders the bar followed by "NN% complete"
func ProgressBarWithLabel(percent int, config ProgressBarConfig) string {
	label := lipgloss.NewStyle().Foreground(config.barColor(percent)).Render(fmt.Sprintf("%3d%% complete", percent))
	return ProgressBar(percent, config) + " " + label
}

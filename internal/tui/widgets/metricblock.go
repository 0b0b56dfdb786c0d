// ABOUTME: Compact count block widget for the dashboard header
// ABOUTME: Shows an icon, a title in the top border, a count and a short label

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/saarthix/hackctl/internal/tui/icons"
)

// MetricBlockConfig holds configuration for a metric block
type MetricBlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultMetricBlockConfig returns sensible defaults
func DefaultMetricBlockConfig() MetricBlockConfig {
	return MetricBlockConfig{
		Width:       22,
		BorderColor: lipgloss.Color("#6B7280"),
		TitleColor:  lipgloss.Color("#7C3AED"),
		ValueColor:  lipgloss.Color("#F9FAFB"),
	}
}

// CountBlock renders a bordered block with title in the top border, a bold
// count and a muted label
func CountBlock(icon icons.Icon, title string, count int, label string, config MetricBlockConfig) string {
	if config.Width <= 0 {
		config.Width = 22
	}
	inner := config.Width - 4

	titleStr := truncate(icon.String()+" "+title, inner-1)
	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor)
	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)

	top := borderStyle.Render("┌─ ") + titleStyle.Render(titleStr) +
		borderStyle.Render(" "+strings.Repeat("─", max(0, inner-lipgloss.Width(titleStr)-1))+"┐")

	line := func(s string) string {
		pad := max(0, inner-lipgloss.Width(s))
		return borderStyle.Render("│  ") + s + strings.Repeat(" ", pad) + borderStyle.Render("│")
	}
	value := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true).Render(fmt.Sprintf("%d", count))
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Render(truncate(label, inner))
	bottom := borderStyle.Render("└" + strings.Repeat("─", config.Width-2) + "┘")

	return strings.Join([]string{top, line(value), line(sub), bottom}, "\n")
}

// truncate shortens a string to maxLen runes with ellipsis if needed
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:max(0, maxLen)])
	}
	return string(r[:maxLen-3]) + "..."
}

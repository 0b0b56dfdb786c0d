// ABOUTME: Section tab bar for the hackathon form
// ABOUTME: Marks the active tab, completed tabs and required tabs at a glance

package widgets

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/saarthix/hackctl/internal/tabs"
	"github.com/saarthix/hackctl/internal/tui/icons"
	"github.com/saarthix/hackctl/internal/tui/styles"
)

// TabBar renders one tab per section, numbered for the F-key shortcuts.
// Completed sections carry a check, required ones an asterisk.
func TabBar(sections []tabs.Section, activeID string, completed []string, width int) string {
	parts := make([]string, 0, len(sections))
	for i, s := range sections {
		label := fmt.Sprintf("%d %s", i+1, s.Label)
		if s.Required {
			label += "*"
		}
		done := slices.Contains(completed, s.ID)
		if done {
			label += " " + icons.CheckOK.String()
		}

		switch {
		case s.ID == activeID:
			parts = append(parts, styles.TabActive.Render(label))
		case done:
			parts = append(parts, styles.TabDone.Render(label))
		default:
			parts = append(parts, styles.TabInactive.Render(label))
		}
	}

	bar := strings.Join(parts, " ")
	if width > 0 && lipgloss.Width(bar) > width {
		// wrap onto as many lines as needed
		return lipgloss.NewStyle().Width(width).Render(bar)
	}
	return bar
}

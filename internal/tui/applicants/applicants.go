// ABOUTME: Applicants view for one hackathon
// ABOUTME: Lists individual and team applications with their members and when they applied

package applicants

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/saarthix/hackctl/internal/client"
	"github.com/saarthix/hackctl/internal/listing"
	"github.com/saarthix/hackctl/internal/tui/icons"
	"github.com/saarthix/hackctl/internal/tui/styles"
	"github.com/saarthix/hackctl/internal/tui/widgets"
)

// LoadFallbackMessage is shown when applicants cannot be fetched
const LoadFallbackMessage = "Failed to load applicants"

// BackMsg asks the app to return to the dashboard
type BackMsg struct{}

// Loader fetches the applications to a hackathon
type Loader func(ctx context.Context, hackathonID string) ([]client.Applicant, error)

type loadedMsg struct {
	apps []client.Applicant
	err  error
}

// Applicants shows who applied to one hackathon
type Applicants struct {
	hackathon client.Hackathon
	load      Loader

	apps   []client.Applicant
	loaded bool
	err    error
	cursor int
	width  int
	closed bool
}

// New creates the view for h
func New(h client.Hackathon, load Loader, width int) *Applicants {
	return &Applicants{hackathon: h, load: load, width: width}
}

// Close drops any result that arrives afterwards
func (a *Applicants) Close() {
	a.closed = true
}

// Init implements tea.Model
func (a *Applicants) Init() tea.Cmd {
	load, id := a.load, a.hackathon.ID
	return func() tea.Msg {
		apps, err := load(context.Background(), id)
		return loadedMsg{apps: apps, err: err}
	}
}

// Update implements tea.Model
func (a *Applicants) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width

	case loadedMsg:
		if a.closed || errors.Is(msg.err, listing.ErrDisposed) {
			return a, nil
		}
		a.loaded = true
		a.apps, a.err = msg.apps, msg.err
		a.cursor = 0

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "b":
			return a, func() tea.Msg { return BackMsg{} }
		case "r":
			a.loaded = false
			return a, a.Init()
		case "up", "k":
			if a.cursor > 0 {
				a.cursor--
			}
		case "down", "j":
			if a.cursor < len(a.apps)-1 {
				a.cursor++
			}
		}
	}
	return a, nil
}

// View implements tea.Model
func (a *Applicants) View() string {
	var sb strings.Builder

	title := a.hackathon.Title
	if title == "" {
		title = "Untitled hackathon"
	}
	sb.WriteString(lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).
		Render(icons.Team.String() + " Applicants · " + title))
	sb.WriteString("\n\n")

	switch {
	case !a.loaded:
		sb.WriteString(styles.Subtitle.Render("Loading applicants..."))
		return sb.String()
	case a.err != nil:
		sb.WriteString(widgets.StatusText(client.UserMessage(a.err, LoadFallbackMessage), widgets.StatusCritical))
		return sb.String()
	case len(a.apps) == 0:
		sb.WriteString(styles.Subtitle.Render("No one has applied yet."))
		return sb.String()
	}

	teams := 0
	for _, app := range a.apps {
		if app.AsTeam {
			teams++
		}
	}
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s · %s · %s",
		english.Plural(len(a.apps), "application", ""),
		english.Plural(teams, "team", ""),
		english.Plural(len(a.apps)-teams, "individual", ""))))
	sb.WriteString("\n\n")

	for i, app := range a.apps {
		sb.WriteString(a.renderRow(app, i == a.cursor))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (a *Applicants) renderRow(app client.Applicant, selected bool) string {
	marker := "  "
	nameStyle := styles.Row
	if selected {
		marker = lipgloss.NewStyle().Foreground(styles.Primary).Render("▸ ")
		nameStyle = styles.RowSelected
	}

	icon := icons.Person
	name := "Individual applicant"
	if app.AsTeam {
		icon = icons.Team
		name = app.TeamName
		if name == "" {
			name = "Unnamed team"
		}
		if size := max(app.TeamSize, len(app.TeamMembers)); size > 0 {
			name += fmt.Sprintf(" (%d)", size)
		}
	}

	line := marker + icon.String() + " " + nameStyle.Render(name)
	if !app.AppliedAt.IsZero() {
		line += styles.Subtitle.Render("  applied " + humanize.Time(app.AppliedAt))
	}

	if selected && len(app.TeamMembers) > 0 {
		for _, m := range app.TeamMembers {
			member := m.Name
			if m.Email != "" {
				member += " <" + m.Email + ">"
			}
			line += "\n      " + styles.Subtitle.Render(member)
		}
	}
	return line
}

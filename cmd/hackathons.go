// ABOUTME: Hackathon commands for hackctl CLI
// ABOUTME: list, show, delete, toggle and applicants for scripts, plus the TUI entry points

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/saarthix/hackctl/internal/client"
	"github.com/saarthix/hackctl/internal/hackathon"
	"github.com/saarthix/hackctl/internal/listing"
	"github.com/saarthix/hackctl/internal/tui"
)

var (
	listAll    bool
	listSearch string
	deleteYes  bool
)

// confirmDelete asks before deleting; tests replace it
var confirmDelete = func(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Delete %q?", title)).
		Description("This cannot be undone.").
		Affirmative("Delete").
		Negative("Keep").
		Value(&ok).
		Run()
	return ok, err
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your hackathons",
	Long:  `List the hackathons you created, or every hackathon with --all. --search filters by title or company.`,
	Args:  cobra.NoArgs,
	Run:   runCommand(runList),
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one hackathon with its phases",
	Args:  cobra.ExactArgs(1),
	Run:   runCommand(runShow),
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a hackathon",
	Long:  `Delete a hackathon. Asks for confirmation unless --yes is given; refuses when stdin is not a terminal.`,
	Args:  cobra.ExactArgs(1),
	Run:   runCommand(runDelete),
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Switch a hackathon between live and draft",
	Args:  cobra.ExactArgs(1),
	Run:   runCommand(runToggle),
}

var applicantsCmd = &cobra.Command{
	Use:   "applicants <id>",
	Short: "List applications to a hackathon",
	Args:  cobra.ExactArgs(1),
	Run:   runCommand(runApplicants),
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a hackathon in the interactive form",
	Args:  cobra.NoArgs,
	Run: runCommand(func(ctx context.Context, w io.Writer, args []string) int {
		return runTUI(w, tui.StartNew, "", nil)
	}),
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a hackathon in the interactive form",
	Args:  cobra.ExactArgs(1),
	Run: runCommand(func(ctx context.Context, w io.Writer, args []string) int {
		return runTUI(w, tui.StartEdit, args[0], nil)
	}),
}

var tuiCmd = &cobra.Command{
	Use:   "tui [redirect-url]",
	Short: "Open the interactive dashboard",
	Long: `Open the interactive dashboard. A redirect URL carrying ?token=... signs in
before the dashboard opens.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCommand(runDashboard),
}

func init() {
	listCmd.Flags().BoolVar(&listAll, "all", false, "List every hackathon instead of only yours")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Only show hackathons whose title or company contains this text")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking")

	rootCmd.AddCommand(listCmd, showCmd, deleteCmd, toggleCmd, applicantsCmd, createCmd, editCmd, tuiCmd)
}

// listOutput is the JSON shape of list
type listOutput struct {
	Tab        listing.Tab        `json:"tab"`
	Query      string             `json:"query,omitempty"`
	Hackathons []client.Hackathon `json:"hackathons"`
	Warnings   []string           `json:"warnings,omitempty"`
}

func runList(ctx context.Context, w io.Writer, args []string) int {
	return withEnv(w, func(e *env) int {
		if !e.requireIndustry(ctx, w) {
			return exitDenied
		}

		view := listing.New(e.client)
		defer view.Close()
		if err := view.Load(ctx); err != nil {
			return failure(w, err, "Failed to load hackathons")
		}
		if listAll {
			view.SetTab(listing.TabAll)
		}
		view.SetQuery(listSearch)

		out := listOutput{Tab: view.Tab(), Query: view.Query(), Hackathons: view.Visible()}
		mineErr, allErr := view.Errors()
		if mineErr != nil {
			out.Warnings = append(out.Warnings, "Your hackathons could not be loaded: "+client.UserMessage(mineErr, mineErr.Error()))
		}
		if allErr != nil {
			out.Warnings = append(out.Warnings, "All hackathons could not be loaded: "+client.UserMessage(allErr, allErr.Error()))
		}
		if out.Hackathons == nil {
			out.Hackathons = []client.Hackathon{}
		}

		if IsJSONOutput() {
			writeJSON(w, out)
			return exitOK
		}
		for _, warning := range out.Warnings {
			fmt.Fprintf(w, "Warning: %s\n", warning)
		}
		fmt.Fprintln(w, formatList(out))
		return exitOK
	})
}

// formatList renders hackathons as a borderless table
func formatList(out listOutput) string {
	if len(out.Hackathons) == 0 {
		if out.Query != "" {
			return "No hackathons match your search."
		}
		return "No hackathons yet."
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers("ID", "STATUS", "TITLE", "COMPANY", "DATES", "VIEWS").
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().PaddingRight(1)
		})
	for _, h := range out.Hackathons {
		t.Row(h.ID, statusLabel(h.Enabled), h.Title, h.Company, dateRange(h), humanize.Comma(int64(h.Views)))
	}
	return t.String() + "\n" + english.Plural(len(out.Hackathons), "hackathon", "")
}

func statusLabel(enabled bool) string {
	if enabled {
		return "live"
	}
	return "draft"
}

func dateRange(h client.Hackathon) string {
	if h.StartDate == "" && h.EndDate == "" {
		return "-"
	}
	return strings.TrimSpace(h.StartDate + " → " + h.EndDate)
}

// showOutput is the JSON shape of show
type showOutput struct {
	Hackathon *client.Hackathon `json:"hackathon"`
	Skills    []string          `json:"skills"`
	Phases    []hackathon.Phase `json:"phases"`
}

func runShow(ctx context.Context, w io.Writer, args []string) int {
	return withEnv(w, func(e *env) int {
		// signed-in owners see their drafts; anyone else gets the public record
		e.session.Initialize(ctx, nil)

		h, err := e.client.GetHackathon(ctx, args[0])
		if err != nil {
			if rejected(err) {
				fmt.Fprintln(w, client.UserMessage(err, "Hackathon not found"))
				return exitDenied
			}
			return failure(w, err, "Failed to load hackathon")
		}
		d := hackathon.FromRecord(h)
		out := showOutput{Hackathon: h, Skills: d.Skills.Items(), Phases: d.Phases.Items()}

		if IsJSONOutput() {
			writeJSON(w, out)
			return exitOK
		}
		fmt.Fprintln(w, formatShow(out))
		return exitOK
	})
}

// formatShow renders one hackathon for people
func formatShow(out showOutput) string {
	h := out.Hackathon
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]\n", h.Title, statusLabel(h.Enabled))
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&sb, "%-15s %s\n", label+":", value)
		}
	}
	field("ID", h.ID)
	field("Company", h.Company)
	field("Dates", dateRange(*h))
	field("Mode", h.Mode)
	field("Venue", strings.TrimSpace(h.VenueLocation+" "+h.VenueTime))
	field("Participation", h.ParticipationType)
	if h.TeamSize > 0 {
		field("Team size", fmt.Sprintf("up to %d", h.TeamSize))
	}
	if h.ParticipantLimit != nil && *h.ParticipantLimit > 0 {
		field("Limit", english.Plural(*h.ParticipantLimit, "participant", ""))
	}
	field("Prize", h.Prize)
	field("Views", humanize.Comma(int64(h.Views)))
	field("Skills", strings.Join(out.Skills, ", "))

	if h.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", h.Description)
	}
	if h.ProblemStatement != "" {
		fmt.Fprintf(&sb, "\nProblem statement:\n  %s\n", h.ProblemStatement)
	}

	fmt.Fprintf(&sb, "\nPhases:\n")
	for i, p := range out.Phases {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("Phase %d", i+1)
		}
		fmt.Fprintf(&sb, "  %d. %s", i+1, name)
		if p.Deadline != "" {
			fmt.Fprintf(&sb, " (due %s)", p.Deadline)
		}
		if len(p.Formats) > 0 {
			formats := make([]string, len(p.Formats))
			for j, f := range p.Formats {
				formats[j] = string(f)
			}
			fmt.Fprintf(&sb, " · %s", strings.Join(formats, ", "))
		}
		sb.WriteString("\n")
		if p.Description != "" {
			fmt.Fprintf(&sb, "     %s\n", p.Description)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func runDelete(ctx context.Context, w io.Writer, args []string) int {
	id := args[0]
	return withEnv(w, func(e *env) int {
		if !e.requireIndustry(ctx, w) {
			return exitDenied
		}

		view := listing.New(e.client)
		defer view.Close()

		confirmed := deleteYes
		if !confirmed {
			if !interactive() {
				fmt.Fprintln(w, "Refusing to delete without confirmation; pass --yes")
				return exitDenied
			}
			// the title is only for the prompt
			title := id
			if err := view.Load(ctx); err == nil {
				if h, ok := view.Find(id); ok && h.Title != "" {
					title = h.Title
				}
			}
			ok, err := confirmDelete(title)
			if err != nil {
				return failure(w, err, "Confirmation prompt failed")
			}
			confirmed = ok
		}

		err := view.Delete(ctx, id, confirmed)
		switch {
		case errors.Is(err, listing.ErrNotConfirmed):
			fmt.Fprintln(w, "Delete cancelled.")
			return exitDenied
		case err != nil && rejected(err):
			fmt.Fprintln(w, client.UserMessage(err, "Failed to delete hackathon"))
			return exitDenied
		case err != nil:
			return failure(w, err, "Failed to delete hackathon")
		}

		if IsJSONOutput() {
			writeJSON(w, map[string]any{"id": id, "deleted": true})
			return exitOK
		}
		fmt.Fprintf(w, "Deleted %s\n", id)
		return exitOK
	})
}

func runToggle(ctx context.Context, w io.Writer, args []string) int {
	return withEnv(w, func(e *env) int {
		if !e.requireIndustry(ctx, w) {
			return exitDenied
		}

		view := listing.New(e.client)
		defer view.Close()

		h, err := view.Toggle(ctx, args[0])
		if h == nil {
			if rejected(err) {
				fmt.Fprintln(w, client.UserMessage(err, "Failed to update hackathon status"))
				return exitDenied
			}
			return failure(w, err, "Failed to update hackathon status")
		}

		if IsJSONOutput() {
			writeJSON(w, h)
			return exitOK
		}
		fmt.Fprintf(w, "%q is now %s\n", h.Title, statusLabel(h.Enabled))
		return exitOK
	})
}

func runApplicants(ctx context.Context, w io.Writer, args []string) int {
	return withEnv(w, func(e *env) int {
		if !e.requireIndustry(ctx, w) {
			return exitDenied
		}

		view := listing.New(e.client)
		defer view.Close()

		apps, err := view.Applicants(ctx, args[0])
		if err != nil {
			if rejected(err) {
				fmt.Fprintln(w, client.UserMessage(err, "Failed to load applicants"))
				return exitDenied
			}
			return failure(w, err, "Failed to load applicants")
		}

		if IsJSONOutput() {
			if apps == nil {
				apps = []client.Applicant{}
			}
			writeJSON(w, apps)
			return exitOK
		}
		fmt.Fprintln(w, formatApplicants(apps))
		return exitOK
	})
}

// formatApplicants renders one line per application with team members indented
func formatApplicants(apps []client.Applicant) string {
	if len(apps) == 0 {
		return "No one has applied yet."
	}

	teams := 0
	for _, a := range apps {
		if a.AsTeam {
			teams++
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s · %s · %s\n\n",
		english.Plural(len(apps), "application", ""),
		english.Plural(teams, "team", ""),
		english.Plural(len(apps)-teams, "individual", ""))

	for _, a := range apps {
		name := "Individual applicant"
		if a.AsTeam {
			name = a.TeamName
			if name == "" {
				name = "Unnamed team"
			}
			if size := max(a.TeamSize, len(a.TeamMembers)); size > 0 {
				name += fmt.Sprintf(" (%d)", size)
			}
		}
		sb.WriteString(name)
		if !a.AppliedAt.IsZero() {
			sb.WriteString("  applied " + humanize.Time(a.AppliedAt))
		}
		sb.WriteString("\n")
		for _, m := range a.TeamMembers {
			member := m.Name
			if m.Email != "" {
				member += " <" + m.Email + ">"
			}
			fmt.Fprintf(&sb, "    %s\n", member)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func runDashboard(ctx context.Context, w io.Writer, args []string) int {
	var loc *url.URL
	if len(args) == 1 {
		parsed, err := url.Parse(args[0])
		if err != nil {
			fmt.Fprintf(w, "Error: invalid redirect URL: %v\n", err)
			return exitError
		}
		loc = parsed
	}
	return runTUI(w, tui.StartDashboard, "", loc)
}

// runTUI hands the terminal to the interactive app and reports what it published
func runTUI(w io.Writer, start tui.Start, editID string, loc *url.URL) int {
	return withEnv(w, func(e *env) int {
		app, err := tui.Run(tui.Options{
			Session:   e.session,
			Client:    e.client,
			Location:  loc,
			Start:     start,
			EditID:    editID,
			ConfigDir: e.cfg.ConfigDir,
		})
		if err != nil {
			return failure(w, err, "The interactive app failed")
		}

		h := app.Published()
		if h == nil {
			return exitOK
		}
		if IsJSONOutput() {
			writeJSON(w, h)
			return exitOK
		}
		fmt.Fprintf(w, "Published %q (%s)\n", h.Title, h.ID)
		return exitOK
	})
}

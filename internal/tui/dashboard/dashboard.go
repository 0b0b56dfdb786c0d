// ABOUTME: Dashboard listing the industry user's hackathons and all hackathons
// ABOUTME: Search, live/draft toggle, delete with confirmation and entry points to edit and applicants

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/saarthix/hackctl/internal/client"
	"github.com/saarthix/hackctl/internal/listing"
	"github.com/saarthix/hackctl/internal/tui/icons"
	"github.com/saarthix/hackctl/internal/tui/styles"
	"github.com/saarthix/hackctl/internal/tui/widgets"
)

// DeleteFallbackMessage is shown when a delete fails without a server message
const DeleteFallbackMessage = "Failed to delete hackathon"

// ToggleFallbackMessage is shown when a status toggle fails without a server message
const ToggleFallbackMessage = "Failed to update hackathon status"

// NewMsg asks the app to open an empty hackathon form
type NewMsg struct{}

// EditMsg asks the app to open the form for hackathon ID
type EditMsg struct {
	ID string
}

// ApplicantsMsg asks the app to show the applicants of Hackathon
type ApplicantsMsg struct {
	Hackathon client.Hackathon
}

// LogoutMsg asks the app to end the session
type LogoutMsg struct{}

type loadedMsg struct {
	err error
	at  time.Time
}

type deletedMsg struct {
	title string
	err   error
}

type toggledMsg struct {
	rec *client.Hackathon
	err error
}

type unreadMsg struct {
	count int
}

// UnreadCounter returns the number of unread notifications
type UnreadCounter func(ctx context.Context) int

// Dashboard lists hackathons
type Dashboard struct {
	view   *listing.View
	unread UnreadCounter
	search textinput.Model

	cursor     int
	width      int
	height     int
	loading    bool
	lastUpdate time.Time
	loadErr    error
	unreadN    int

	confirm      *huh.Form
	confirmValue bool
	confirmID    string

	flash string
	level widgets.StatusLevel
}

// New creates a dashboard over view. unread may be nil.
func New(view *listing.View, unread UnreadCounter, width, height int) *Dashboard {
	ti := textinput.New()
	ti.Placeholder = "Search by title, company or description"
	ti.Prompt = icons.Search.String() + " "
	ti.CharLimit = 80

	return &Dashboard{
		view:   view,
		unread: unread,
		search: ti,
		width:  width,
		height: height,
	}
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Load fetches both collections and the unread count
func (d *Dashboard) Load() tea.Cmd {
	d.loading = true
	view := d.view
	cmds := []tea.Cmd{func() tea.Msg {
		err := view.Load(context.Background())
		return loadedMsg{err: err, at: time.Now()}
	}}
	if d.unread != nil {
		unread := d.unread
		cmds = append(cmds, func() tea.Msg {
			return unreadMsg{count: unread(context.Background())}
		})
	}
	return tea.Batch(cmds...)
}

// Close disposes the underlying view so late results are dropped
func (d *Dashboard) Close() {
	d.view.Close()
}

// LastUpdate is when the collections were last fetched
func (d *Dashboard) LastUpdate() time.Time {
	return d.lastUpdate
}

// Searching reports whether the search box has focus
func (d *Dashboard) Searching() bool {
	return d.search.Focused()
}

// Confirming reports whether a delete confirmation is open
func (d *Dashboard) Confirming() bool {
	return d.confirm != nil
}

// Flash returns the current status line text
func (d *Dashboard) Flash() string {
	return d.flash
}

// SetStatus shows a success message in the status line
func (d *Dashboard) SetStatus(text string) {
	d.setFlash(text, widgets.StatusOK)
}

// Selected returns the hackathon under the cursor
func (d *Dashboard) Selected() (client.Hackathon, bool) {
	visible := d.view.Visible()
	if len(visible) == 0 {
		return client.Hackathon{}, false
	}
	return visible[min(d.cursor, len(visible)-1)], true
}

// ShortHelp lists the bindings active right now
func (d *Dashboard) ShortHelp() []key.Binding {
	switch {
	case d.confirm != nil:
		return []key.Binding{
			key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "Delete")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "Cancel")),
		}
	case d.search.Focused():
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "Done")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "Clear")),
		}
	}
	return []key.Binding{keys.SwitchTab, keys.Search, keys.New, keys.Edit, keys.Toggle, keys.Delete, keys.Applicants, keys.Refresh, keys.Logout, keys.Quit}
}

// Init implements tea.Model
func (d *Dashboard) Init() tea.Cmd {
	return d.Load()
}

// Update implements tea.Model
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.SetSize(msg.Width, msg.Height)
		return d, nil

	case loadedMsg:
		d.loading = false
		if errors.Is(msg.err, listing.ErrDisposed) {
			return d, nil
		}
		d.loadErr = msg.err
		d.lastUpdate = msg.at
		d.clampCursor()
		return d, nil

	case unreadMsg:
		d.unreadN = msg.count
		return d, nil

	case deletedMsg:
		d.clampCursor()
		if msg.err != nil {
			d.setFlash(client.UserMessage(msg.err, DeleteFallbackMessage), widgets.StatusCritical)
			return d, nil
		}
		d.lastUpdate = time.Now()
		d.setFlash(fmt.Sprintf("Deleted %q", msg.title), widgets.StatusOK)
		return d, nil

	case toggledMsg:
		if msg.err != nil && msg.rec == nil {
			d.setFlash(client.UserMessage(msg.err, ToggleFallbackMessage), widgets.StatusCritical)
			return d, nil
		}
		d.lastUpdate = time.Now()
		state := "draft"
		if msg.rec.Enabled {
			state = "live"
		}
		d.setFlash(fmt.Sprintf("%q is now %s", msg.rec.Title, state), widgets.StatusOK)
		return d, nil

	case tea.KeyMsg:
		switch {
		case d.confirm != nil:
			return d.updateConfirm(msg)
		case d.search.Focused():
			return d.updateSearch(msg)
		}
		return d.updateKeys(msg)
	}

	if d.confirm != nil {
		return d.updateConfirm(msg)
	}
	return d, nil
}

func (d *Dashboard) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return d, tea.Quit
	case key.Matches(msg, keys.Logout):
		return d, func() tea.Msg { return LogoutMsg{} }
	case key.Matches(msg, keys.Up):
		if d.cursor > 0 {
			d.cursor--
		}
	case key.Matches(msg, keys.Down):
		if d.cursor < len(d.view.Visible())-1 {
			d.cursor++
		}
	case key.Matches(msg, keys.SwitchTab):
		if d.view.Tab() == listing.TabMine {
			d.view.SetTab(listing.TabAll)
		} else {
			d.view.SetTab(listing.TabMine)
		}
		d.cursor = 0
	case key.Matches(msg, keys.Search):
		return d, d.search.Focus()
	case key.Matches(msg, keys.Refresh):
		d.flash = ""
		return d, d.Load()
	case key.Matches(msg, keys.New):
		return d, func() tea.Msg { return NewMsg{} }
	case key.Matches(msg, keys.Edit):
		if h, ok := d.Selected(); ok {
			return d, func() tea.Msg { return EditMsg{ID: h.ID} }
		}
	case key.Matches(msg, keys.Applicants):
		if h, ok := d.Selected(); ok {
			return d, func() tea.Msg { return ApplicantsMsg{Hackathon: h} }
		}
	case key.Matches(msg, keys.Toggle):
		if h, ok := d.Selected(); ok {
			return d, d.toggleCmd(h.ID)
		}
	case key.Matches(msg, keys.Delete):
		if h, ok := d.Selected(); ok {
			return d, d.askDelete(h)
		}
	}
	return d, nil
}

func (d *Dashboard) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		d.search.Blur()
		return d, nil
	case tea.KeyEsc:
		d.search.SetValue("")
		d.search.Blur()
		d.view.SetQuery("")
		d.cursor = 0
		return d, nil
	}

	var cmd tea.Cmd
	d.search, cmd = d.search.Update(msg)
	if d.search.Value() != d.view.Query() {
		d.view.SetQuery(d.search.Value())
		d.cursor = 0
	}
	return d, cmd
}

func (d *Dashboard) askDelete(h client.Hackathon) tea.Cmd {
	d.confirmValue = false
	d.confirmID = h.ID
	d.confirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", h.Title)).
				Description("This cannot be undone.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&d.confirmValue),
		),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
	return d.confirm.Init()
}

func (d *Dashboard) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyEsc {
		return d, d.finishConfirm(false)
	}

	form, cmd := d.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.confirm = f
	}
	switch d.confirm.State {
	case huh.StateCompleted:
		return d, d.finishConfirm(d.confirmValue)
	case huh.StateAborted:
		return d, d.finishConfirm(false)
	}
	return d, cmd
}

// finishConfirm closes the confirmation and deletes when confirmed
func (d *Dashboard) finishConfirm(confirmed bool) tea.Cmd {
	id := d.confirmID
	d.confirm = nil
	d.confirmID = ""
	if !confirmed {
		d.setFlash("Delete cancelled", widgets.StatusNeutral)
		return nil
	}
	return d.deleteCmd(id, confirmed)
}

func (d *Dashboard) deleteCmd(id string, confirmed bool) tea.Cmd {
	view := d.view
	h, _ := view.Find(id)
	return func() tea.Msg {
		err := view.Delete(context.Background(), id, confirmed)
		return deletedMsg{title: h.Title, err: err}
	}
}

func (d *Dashboard) toggleCmd(id string) tea.Cmd {
	view := d.view
	return func() tea.Msg {
		rec, err := view.Toggle(context.Background(), id)
		return toggledMsg{rec: rec, err: err}
	}
}

func (d *Dashboard) clampCursor() {
	n := len(d.view.Visible())
	d.cursor = max(0, min(d.cursor, n-1))
}

func (d *Dashboard) setFlash(text string, level widgets.StatusLevel) {
	d.flash = text
	d.level = level
}

// View renders the dashboard
func (d *Dashboard) View() string {
	var sb strings.Builder

	sb.WriteString(d.renderCounts())
	sb.WriteString("\n\n")
	sb.WriteString(d.renderTabs())
	sb.WriteString("\n")
	sb.WriteString(d.search.View())
	sb.WriteString("\n\n")

	switch {
	case d.loading && !d.view.Loaded():
		sb.WriteString(styles.Subtitle.Render("Loading hackathons..."))
	case d.loadErr != nil:
		sb.WriteString(styles.StatusCritical.Render("Failed to load hackathons: " + client.UserMessage(d.loadErr, d.loadErr.Error())))
	default:
		sb.WriteString(d.renderRows())
	}

	if d.confirm != nil {
		sb.WriteString("\n\n")
		sb.WriteString(styles.ActivePanel.Render(d.confirm.View()))
	}
	if d.flash != "" {
		sb.WriteString("\n\n")
		sb.WriteString(widgets.StatusText(d.flash, d.level))
	}

	style := lipgloss.NewStyle()
	if d.width > 0 {
		style = style.Width(d.width)
	}
	return style.Render(sb.String())
}

func (d *Dashboard) renderCounts() string {
	mine, all := d.view.Counts()
	cfg := widgets.DefaultMetricBlockConfig()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		widgets.CountBlock(icons.Hackathon, "Mine", mine, "posted by you", cfg),
		" ",
		widgets.CountBlock(icons.Calendar, "All", all, "on the platform", cfg),
		" ",
		widgets.CountBlock(icons.Bell, "Unread", d.unreadN, "notifications", cfg),
	)
}

func (d *Dashboard) renderTabs() string {
	mine, all := d.view.Counts()
	mineLabel := fmt.Sprintf("My Hackathons (%d)", mine)
	allLabel := fmt.Sprintf("All Hackathons (%d)", all)
	if d.view.Tab() == listing.TabMine {
		return styles.TabActive.Render(mineLabel) + " " + styles.TabInactive.Render(allLabel)
	}
	return styles.TabInactive.Render(mineLabel) + " " + styles.TabActive.Render(allLabel)
}

func (d *Dashboard) renderRows() string {
	mineErr, allErr := d.view.Errors()
	tabErr := mineErr
	if d.view.Tab() == listing.TabAll {
		tabErr = allErr
	}

	visible := d.view.Visible()
	if len(visible) == 0 {
		if tabErr != nil {
			return styles.StatusWarning.Render("Could not load this list: " + client.UserMessage(tabErr, tabErr.Error()))
		}
		if d.view.Query() != "" {
			return styles.Subtitle.Render("No hackathons match your search.")
		}
		return styles.Subtitle.Render("No hackathons yet. Press n to create one.")
	}

	rows := make([]string, 0, len(visible))
	for i, h := range visible {
		rows = append(rows, d.renderRow(h, i == min(d.cursor, len(visible)-1)))
	}
	return strings.Join(rows, "\n")
}

func (d *Dashboard) renderRow(h client.Hackathon, selected bool) string {
	marker := "  "
	titleStyle := styles.Row
	if selected {
		marker = lipgloss.NewStyle().Foreground(styles.Primary).Render("▸ ")
		titleStyle = styles.RowSelected
	}

	title := h.Title
	if title == "" {
		title = "Untitled hackathon"
	}
	line := marker + widgets.LiveBadge(h.Enabled) + " " + titleStyle.Render(title)
	if h.Company != "" {
		line += styles.Subtitle.Render("  " + h.Company)
	}

	var details []string
	if when := describeDates(h.StartDate, h.EndDate, time.Now()); when != "" {
		details = append(details, when)
	}
	if h.Mode != "" {
		details = append(details, h.Mode)
	}
	if h.Views > 0 {
		details = append(details, humanize.Comma(int64(h.Views))+" views")
	}
	if len(details) > 0 {
		line += "\n    " + styles.Subtitle.Render(strings.Join(details, " · "))
	}
	return line
}

// describeDates renders the date range plus a relative hint for the start
func describeDates(start, end string, now time.Time) string {
	if start == "" && end == "" {
		return ""
	}
	span := strings.TrimSpace(start + " → " + end)
	begins, err := time.Parse("2006-01-02", start)
	if err != nil {
		return span
	}
	if begins.After(now) {
		return span + " (starts " + humanize.RelTime(begins, now, "ago", "from now") + ")"
	}
	if ends, err := time.Parse("2006-01-02", end); err == nil && ends.Before(now) {
		return span + " (ended)"
	}
	return span + " (running)"
}

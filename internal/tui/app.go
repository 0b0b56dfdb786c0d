// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Routes between sign-in, dashboard, form and applicants based on the session

package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/saarthix/hackctl/internal/client"
	"github.com/saarthix/hackctl/internal/hackathon"
	"github.com/saarthix/hackctl/internal/listing"
	"github.com/saarthix/hackctl/internal/logger"
	"github.com/saarthix/hackctl/internal/session"
	"github.com/saarthix/hackctl/internal/tui/applicants"
	"github.com/saarthix/hackctl/internal/tui/dashboard"
	"github.com/saarthix/hackctl/internal/tui/form"
	"github.com/saarthix/hackctl/internal/tui/icons"
	"github.com/saarthix/hackctl/internal/tui/login"
	"github.com/saarthix/hackctl/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenLogin
	ScreenDashboard
	ScreenForm
	ScreenApplicants
)

// Start selects the first screen after sign-in
type Start int

const (
	StartDashboard Start = iota
	StartNew
	StartEdit
)

// Layout constants
const (
	minTerminalWidth = 80
	frameOverhead    = 4 // header, footer and the newlines around content
)

// Notices shown on the sign-in screen
const (
	noticeSignIn      = "Sign in with an industry account to manage hackathons."
	noticeEnded       = "Your session has ended. Sign in again."
	noticeIndustry    = "Only industry accounts can manage hackathons."
	noticeUnreachable = "Could not reach the backend. Check the API URL and try again."
)

// Options configures the application
type Options struct {
	Session *session.Session
	Client  *client.Client
	// Location is a login redirect URL carrying ?token=..., may be nil
	Location *url.URL
	Start    Start
	EditID   string
	// ConfigDir receives debug.log while the TUI owns the terminal
	ConfigDir string
}

// sessionChangedMsg is sent whenever the session notifies its subscribers
type sessionChangedMsg struct {
	snap session.Snapshot
}

// sessionReadyMsg is sent when startup validation finishes
type sessionReadyMsg struct {
	err error
}

// editorLoadedMsg is sent when a hackathon has been fetched for editing
type editorLoadedMsg struct {
	editor *hackathon.Editor
	err    error
}

// loggedOutMsg is sent after the session has been cleared
type loggedOutMsg struct{}

// App is the root model for the TUI
type App struct {
	session  *session.Session
	api      *client.Client
	location *url.URL

	screen Screen
	width  int
	height int
	err    error
	fatal  error

	start     Start
	editID    string
	exitAfter bool // the program was started for a single form
	published *client.Hackathon

	// Child models
	list       *listing.View
	dashboard  *dashboard.Dashboard
	form       *form.Form
	applicants *applicants.Applicants
	login      *login.Login
}

// New creates a new TUI application
func New(opts Options) *App {
	a := &App{
		session:   opts.Session,
		api:       opts.Client,
		location:  opts.Location,
		screen:    ScreenLoading,
		start:     opts.Start,
		editID:    opts.EditID,
		exitAfter: opts.Start != StartDashboard,
	}
	a.login = login.New(a.signIn, opts.Client.GoogleLoginURL())
	return a
}

// Published returns the hackathon published while the program ran, if any
func (a *App) Published() *client.Hackathon {
	return a.published
}

// Screen returns the screen being shown
func (a *App) Screen() Screen {
	return a.screen
}

func (a *App) signIn(ctx context.Context, email, password string) error {
	return a.session.LoginWithPassword(ctx, a.api, email, password)
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	s, loc := a.session, a.location
	return func() tea.Msg {
		return sessionReadyMsg{err: s.Initialize(context.Background(), loc)}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		inner := tea.WindowSizeMsg{Width: a.contentWidth(), Height: a.contentHeight()}
		if a.dashboard != nil {
			a.dashboard.SetSize(inner.Width, inner.Height)
		}
		if a.form != nil {
			a.form.Update(inner)
		}
		if a.applicants != nil {
			a.applicants.Update(inner)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.routeKey(msg)

	case sessionReadyMsg:
		a.err = msg.err
		return a, a.route()

	case sessionChangedMsg:
		return a, a.route()

	case loggedOutMsg:
		return a, a.route()

	case login.SignedInMsg:
		a.err = nil
		return a, a.route()

	case dashboard.NewMsg:
		return a, a.openForm(hackathon.NewEditor(a.api))

	case dashboard.EditMsg:
		return a, a.loadEditor(msg.ID)

	case dashboard.ApplicantsMsg:
		a.applicants = applicants.New(msg.Hackathon, a.list.Applicants, a.contentWidth())
		a.screen = ScreenApplicants
		return a, a.applicants.Init()

	case dashboard.LogoutMsg:
		s := a.session
		return a, func() tea.Msg {
			s.Logout(context.Background())
			return loggedOutMsg{}
		}

	case editorLoadedMsg:
		if msg.err != nil {
			slog.Error("Failed to load hackathon for editing", "error", msg.err)
			if a.exitAfter {
				a.fatal = msg.err
				return a, tea.Quit
			}
			a.err = msg.err
			return a, nil
		}
		return a, a.openForm(msg.editor)

	case form.PublishedMsg:
		a.published = msg.Hackathon
		status := "Hackathon published"
		if msg.Hackathon != nil {
			status = fmt.Sprintf("Published %q", msg.Hackathon.Title)
		}
		return a, a.closeForm(true, status)

	case form.CancelledMsg:
		status := ""
		if msg.Saved {
			status = "Draft saved"
		}
		return a, a.closeForm(msg.Saved, status)

	case applicants.BackMsg:
		if a.applicants != nil {
			a.applicants.Close()
		}
		a.applicants = nil
		a.screen = ScreenDashboard
		return a, nil
	}

	return a.forward(msg)
}

// forward hands messages the root does not handle to the active screen.
// huh and the child models rely on their own internal messages.
func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.screen {
	case ScreenLogin:
		_, cmd = a.login.Update(msg)
	case ScreenDashboard:
		if a.dashboard != nil {
			_, cmd = a.dashboard.Update(msg)
		}
		return a, cmd
	case ScreenForm:
		if a.form != nil {
			_, cmd = a.form.Update(msg)
		}
	case ScreenApplicants:
		if a.applicants != nil {
			_, cmd = a.applicants.Update(msg)
		}
	}

	// the dashboard keeps loading behind the form and applicants screens
	if _, isKey := msg.(tea.KeyMsg); !isKey && a.dashboard != nil {
		_, bg := a.dashboard.Update(msg)
		cmd = tea.Batch(cmd, bg)
	}
	return a, cmd
}

func (a *App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.screen == ScreenLoading {
		if msg.String() == "q" {
			return a, tea.Quit
		}
		return a, nil
	}
	if a.screen == ScreenDashboard && a.err != nil {
		// any key dismisses a load error
		a.err = nil
	}
	return a.forward(msg)
}

// route picks the screen the session allows. Signed-in industry users get
// the dashboard (or the requested form); everyone else gets sign-in.
func (a *App) route() tea.Cmd {
	switch a.session.Guard(session.RoleIndustry) {
	case session.Loading:
		// the sign-in screen shows its own progress
		if a.screen != ScreenLogin {
			a.screen = ScreenLoading
		}
		return nil
	case session.Allow:
		if a.screen == ScreenLoading || a.screen == ScreenLogin {
			return a.enter()
		}
		return nil
	}

	a.teardown()
	switch {
	case a.session.Authenticated():
		a.login.SetNotice(noticeIndustry)
	case a.err != nil && !errorRejected(a.err):
		a.login.SetNotice(noticeUnreachable)
	case a.screen != ScreenLoading && a.screen != ScreenLogin:
		a.login.SetNotice(noticeEnded)
	default:
		a.login.SetNotice(noticeSignIn)
	}
	a.screen = ScreenLogin
	return a.login.Init()
}

// errorRejected reports whether the backend refused the token, as opposed to
// being unreachable
func errorRejected(err error) bool {
	var apiErr *client.APIError
	return errors.Is(err, client.ErrUnauthorized) || (errors.As(err, &apiErr) && apiErr.Rejected())
}

// enter shows the first signed-in screen
func (a *App) enter() tea.Cmd {
	a.err = nil
	a.list = listing.New(a.api)
	a.dashboard = dashboard.New(a.list, a.api.UnreadCount, a.contentWidth(), a.contentHeight())
	a.screen = ScreenDashboard

	cmds := []tea.Cmd{a.dashboard.Init()}
	switch a.start {
	case StartNew:
		cmds = append(cmds, a.openForm(hackathon.NewEditor(a.api)))
	case StartEdit:
		cmds = append(cmds, a.loadEditor(a.editID))
	}
	a.start = StartDashboard
	return tea.Batch(cmds...)
}

// teardown disposes every signed-in screen
func (a *App) teardown() {
	if a.dashboard != nil {
		a.dashboard.Close()
	}
	if a.applicants != nil {
		a.applicants.Close()
	}
	a.list = nil
	a.dashboard = nil
	a.form = nil
	a.applicants = nil
}

func (a *App) loadEditor(id string) tea.Cmd {
	api := a.api
	return func() tea.Msg {
		e := hackathon.NewEditor(api)
		if err := e.Load(context.Background(), id); err != nil {
			return editorLoadedMsg{err: err}
		}
		return editorLoadedMsg{editor: e}
	}
}

func (a *App) openForm(e *hackathon.Editor) tea.Cmd {
	a.form = form.New(e)
	a.form.Update(tea.WindowSizeMsg{Width: a.contentWidth(), Height: a.contentHeight()})
	a.screen = ScreenForm
	return a.form.Init()
}

func (a *App) closeForm(reload bool, status string) tea.Cmd {
	a.form = nil
	if a.exitAfter {
		return tea.Quit
	}
	a.screen = ScreenDashboard
	if a.dashboard == nil {
		return nil
	}
	if status != "" {
		a.dashboard.SetStatus(status)
	}
	if reload {
		return a.dashboard.Load()
	}
	return nil
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLoading:
		content = styles.Subtitle.Render("Checking your session...")
	case ScreenLogin:
		content = a.login.View()
	case ScreenDashboard:
		content = a.viewDashboard()
	case ScreenForm:
		if a.form != nil {
			content = a.form.View()
		} else {
			content = styles.Subtitle.Render("Loading hackathon...")
		}
	case ScreenApplicants:
		if a.applicants != nil {
			content = a.applicants.View()
		}
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewDashboard() string {
	if a.dashboard == nil {
		return styles.Subtitle.Render("Loading...")
	}
	view := a.dashboard.View()
	if a.err != nil {
		view = styles.StatusCritical.Render("Error: "+client.UserMessage(a.err, a.err.Error())) + "\n\n" + view
	}
	return view
}

// contentWidth is the width available to the active screen
func (a *App) contentWidth() int {
	return max(a.width, minTerminalWidth) - 2
}

// contentHeight is the height available to the active screen
func (a *App) contentHeight() int {
	return max(a.height-frameOverhead, 0)
}

// frameWidth is the width of the header and footer lines
func (a *App) frameWidth() int {
	// guard against zero width before WindowSizeMsg arrives
	return max(a.width, minTerminalWidth)
}

// renderHeader creates the header bar with app branding and the signed-in user
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("Hackathon Manager"))

	rightText := ""
	if id, ok := a.session.Identity(); ok && a.session.Authenticated() {
		who := id.Name
		if who == "" {
			who = id.Email
		}
		rightText = " " + contextStyle.Render(icons.Person.String()+" "+who) + " "
	}

	fillWidth := max(width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText), 0) // -4 for ╭─ and ─╮
	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// shortcuts returns the key help for the current screen
func (a *App) shortcuts() []key.Binding {
	help := func(k, desc string) key.Binding {
		return key.NewBinding(key.WithKeys(k), key.WithHelp(k, desc))
	}
	switch a.screen {
	case ScreenLogin:
		return []key.Binding{help("↑↓", "Navigate"), help("enter", "Select"), help("esc", "Back"), help("ctrl+c", "Quit")}
	case ScreenDashboard:
		if a.dashboard != nil {
			return a.dashboard.ShortHelp()
		}
	case ScreenForm:
		return []key.Binding{help("ctrl+s", "Save"), help("ctrl+p", "Publish"), help("ctrl+n/b", "Section"), help("esc", "Close")}
	case ScreenApplicants:
		return []key.Binding{help("↑↓", "Select"), help("r", "Refresh"), help("esc", "Back")}
	}
	return []key.Binding{help("q", "Quit")}
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	rightText := ""
	if a.screen == ScreenDashboard && a.dashboard != nil && !a.dashboard.LastUpdate().IsZero() {
		rightText = " " + statusStyle.Render("Updated "+humanize.Time(a.dashboard.LastUpdate())) + " "
	}

	// drop shortcuts from the end until the line fits
	bindings := a.shortcuts()
	var leftText string
	for n := len(bindings); n >= 0; n-- {
		parts := make([]string, 0, n)
		for _, b := range bindings[:n] {
			parts = append(parts, keyStyle.Render(b.Help().Key)+" "+labelStyle.Render(b.Help().Desc))
		}
		leftText = " " + strings.Join(parts, "  ") + " "
		if lipgloss.Width(leftText)+lipgloss.Width(rightText)+4 <= width {
			break
		}
	}

	fillWidth := max(width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText), 0) // -4 for ╰─ and ─╯
	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"
	return borderStyle.Render(footer)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI and returns the final model
func Run(opts Options) (*App, error) {
	if opts.ConfigDir != "" {
		closer, err := logger.InitFile(opts.ConfigDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open debug log: %w", err)
		}
		defer closer.Close()
	}

	app := New(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())

	// session changes arrive from command goroutines; Send must not block them
	unsubscribe := opts.Session.Subscribe(func(snap session.Snapshot) {
		go p.Send(sessionChangedMsg{snap: snap})
	})
	defer unsubscribe()

	start := time.Now()
	_, err := p.Run()
	slog.Debug("TUI exited", "duration", time.Since(start), "error", err)
	if err != nil {
		return app, err
	}
	return app, app.fatal
}

// ABOUTME: Sign-in screen shown when no industry session is active
// ABOUTME: Offers industry email/password login or the Google sign-in URL

package login

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/saarthix/hackctl/internal/client"
	"github.com/saarthix/hackctl/internal/tui/icons"
	"github.com/saarthix/hackctl/internal/tui/styles"
	"github.com/saarthix/hackctl/internal/tui/widgets"
)

// LoginFallbackMessage is shown when sign-in fails without a server message
const LoginFallbackMessage = "Login failed. Check your email and password."

// Method is a way of signing in
type Method int

const (
	MethodPassword Method = iota
	MethodGoogle
	MethodQuit
)

// String returns the string representation of a Method
func (m Method) String() string {
	switch m {
	case MethodPassword:
		return "password"
	case MethodGoogle:
		return "google"
	case MethodQuit:
		return "quit"
	default:
		return "unknown"
	}
}

type stage int

const (
	stageChoose stage = iota
	stageCredentials
	stageGoogle
)

// SignInFunc performs an industry password login
type SignInFunc func(ctx context.Context, email, password string) error

// SignedInMsg is sent after a successful password login
type SignedInMsg struct{}

type signInResultMsg struct {
	err error
}

// Login is the sign-in screen
type Login struct {
	signIn    SignInFunc
	googleURL string
	notice    string

	stage    stage
	form     *huh.Form
	method   Method
	email    string
	password string
	busy     bool
	flash    string
}

// New creates the sign-in screen. googleURL is shown for browser sign-in.
func New(signIn SignInFunc, googleURL string) *Login {
	l := &Login{signIn: signIn, googleURL: googleURL}
	l.showChooser()
	return l
}

// SetNotice sets the line explaining why sign-in is needed
func (l *Login) SetNotice(notice string) {
	l.notice = notice
}

// Flash returns the last error shown to the user
func (l *Login) Flash() string {
	return l.flash
}

// Busy reports whether a sign-in request is outstanding
func (l *Login) Busy() bool {
	return l.busy
}

func (l *Login) showChooser() tea.Cmd {
	l.stage = stageChoose
	l.method = MethodPassword
	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Method]().
				Title("Sign in to manage hackathons").
				Options(
					huh.NewOption("Industry email & password", MethodPassword),
					huh.NewOption("Google account (browser)", MethodGoogle),
					huh.NewOption("Quit", MethodQuit),
				).
				Value(&l.method),
		),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
	return l.form.Init()
}

func (l *Login) showCredentials() tea.Cmd {
	l.stage = stageCredentials
	l.password = ""
	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Email").Value(&l.email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&l.password),
		).Title("Industry login"),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
	return l.form.Init()
}

// choose moves on from the method selection
func (l *Login) choose(m Method) tea.Cmd {
	l.flash = ""
	switch m {
	case MethodPassword:
		return l.showCredentials()
	case MethodGoogle:
		l.stage = stageGoogle
		return nil
	default:
		return tea.Quit
	}
}

func (l *Login) submit() tea.Cmd {
	if l.busy {
		return nil
	}
	l.busy = true
	l.flash = ""
	signIn, email, password := l.signIn, strings.TrimSpace(l.email), l.password
	return func() tea.Msg {
		return signInResultMsg{err: signIn(context.Background(), email, password)}
	}
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case signInResultMsg:
		l.busy = false
		if msg.err != nil {
			l.flash = client.UserMessage(msg.err, LoginFallbackMessage)
			return l, l.showCredentials()
		}
		return l, func() tea.Msg { return SignedInMsg{} }

	case tea.KeyMsg:
		switch l.stage {
		case stageGoogle:
			switch msg.String() {
			case "esc", "b":
				return l, l.showChooser()
			case "q":
				return l, tea.Quit
			}
			return l, nil
		case stageCredentials:
			if msg.Type == tea.KeyEsc {
				return l, l.showChooser()
			}
		}
	}

	if l.stage == stageGoogle || l.busy {
		return l, nil
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}
	if l.form.State == huh.StateCompleted {
		if l.stage == stageChoose {
			return l, l.choose(l.method)
		}
		return l, l.submit()
	}
	return l, cmd
}

// View implements tea.Model
func (l *Login) View() string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).
		Render(icons.Person.String() + " Sign in"))
	sb.WriteString("\n")
	if l.notice != "" {
		sb.WriteString(styles.Subtitle.Render(l.notice))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	switch l.stage {
	case stageGoogle:
		sb.WriteString("Open this URL in a browser and sign in with Google:\n\n")
		sb.WriteString(styles.ValueStyle.Render(l.googleURL))
		sb.WriteString("\n\nThen run " + styles.KeyStyle.Render("hackctl login <redirect-url>") +
			" with the URL you land on.\n\n")
		sb.WriteString(styles.Help.Render("esc back  q quit"))
	default:
		if l.busy {
			sb.WriteString(styles.Subtitle.Render("Signing in..."))
		} else {
			sb.WriteString(l.form.View())
		}
	}

	if l.flash != "" {
		sb.WriteString("\n")
		sb.WriteString(widgets.StatusText(l.flash, widgets.StatusCritical))
	}
	return sb.String()
}

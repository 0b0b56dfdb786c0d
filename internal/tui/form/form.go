// ABOUTME: Tabbed hackathon form as a bubbletea model
// ABOUTME: Wraps a hackathon.Editor with one huh form per section plus save/publish keys

package form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/saarthix/hackctl/internal/client"
	"github.com/saarthix/hackctl/internal/hackathon"
	"github.com/saarthix/hackctl/internal/tui/icons"
	"github.com/saarthix/hackctl/internal/tui/styles"
	"github.com/saarthix/hackctl/internal/tui/widgets"
)

// SaveFallbackMessage is shown when a draft save fails without a server message
const SaveFallbackMessage = "Failed to save hackathon. Please try again."

// PublishedMsg is sent once the hackathon is live
type PublishedMsg struct {
	Hackathon *client.Hackathon
}

// CancelledMsg is sent when the user leaves the form. Saved reports whether
// anything reached the backend while the form was open.
type CancelledMsg struct {
	Saved bool
}

type savedMsg struct {
	rec *client.Hackathon
	err error
}

type publishedMsg struct {
	rec *client.Hackathon
	err error
}

// Form edits one hackathon
type Form struct {
	editor   *hackathon.Editor
	form     *huh.Form
	bound    *bindings
	section  string
	width    int
	flash    string
	level    widgets.StatusLevel
	busy     bool
	anySaved bool
}

// New creates a form over editor, starting at its active section
func New(editor *hackathon.Editor) *Form {
	f := &Form{editor: editor}
	f.rebuild()
	return f
}

// rebuild recreates the huh form for the editor's active section
func (f *Form) rebuild() tea.Cmd {
	f.section = f.editor.Active().ID
	f.form, f.bound = buildSection(f.section, f.editor.Draft(), f.editor.SuggestSkills(""))
	if f.width > 0 {
		f.form = f.form.WithWidth(f.width)
	}
	return f.form.Init()
}

// Editor returns the editor behind the form
func (f *Form) Editor() *hackathon.Editor {
	return f.editor
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
		f.form = f.form.WithWidth(msg.Width)
		return f, nil

	case savedMsg:
		return f.handleSaved(msg)

	case publishedMsg:
		return f.handlePublished(msg)

	case tea.KeyMsg:
		if model, cmd, handled := f.handleKey(msg); handled {
			return model, cmd
		}
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}
	f.bound.push(f.editor)

	// Finishing a section's last field moves on to the next section
	if f.form.State == huh.StateCompleted {
		f.editor.Advance()
		return f, f.rebuild()
	}
	return f, cmd
}

func (f *Form) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch key := msg.String(); key {
	case "esc":
		saved := f.anySaved
		return f, func() tea.Msg { return CancelledMsg{Saved: saved} }, true
	case "ctrl+s":
		return f, f.save(), true
	case "ctrl+p":
		return f, f.publish(), true
	case "ctrl+n":
		f.bound.push(f.editor)
		f.editor.Advance()
		return f, f.rebuild(), true
	case "ctrl+b":
		f.bound.push(f.editor)
		f.editor.Retreat()
		return f, f.rebuild(), true
	case "ctrl+a":
		if f.section != hackathon.SectionPhases {
			return f, nil, false
		}
		f.bound.push(f.editor)
		f.editor.AddPhase()
		return f, f.rebuild(), true
	case "ctrl+x":
		if f.section != hackathon.SectionPhases {
			return f, nil, false
		}
		f.bound.push(f.editor)
		items := f.editor.Draft().Phases.Items()
		if !f.editor.RemovePhase(items[len(items)-1].ID) {
			f.setFlash("A hackathon needs at least one phase", widgets.StatusWarning)
			return f, nil, true
		}
		return f, f.rebuild(), true
	default:
		if n, ok := functionKey(key); ok && n <= len(hackathon.Sections) {
			f.bound.push(f.editor)
			_ = f.editor.JumpTo(hackathon.Sections[n-1].ID)
			return f, f.rebuild(), true
		}
	}
	return f, nil, false
}

// functionKey parses "f1".."f12"
func functionKey(key string) (int, bool) {
	var n int
	if _, err := fmt.Sscanf(key, "f%d", &n); err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func (f *Form) save() tea.Cmd {
	if f.busy {
		return nil
	}
	f.bound.push(f.editor)
	f.busy = true
	f.setFlash("Saving draft...", widgets.StatusInfo)
	editor := f.editor
	return func() tea.Msg {
		rec, err := editor.Save(context.Background())
		return savedMsg{rec: rec, err: err}
	}
}

func (f *Form) publish() tea.Cmd {
	if f.busy {
		return nil
	}
	f.bound.push(f.editor)
	f.busy = true
	f.setFlash("Publishing...", widgets.StatusInfo)
	editor := f.editor
	return func() tea.Msg {
		rec, err := editor.Publish(context.Background())
		return publishedMsg{rec: rec, err: err}
	}
}

func (f *Form) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	f.busy = false
	if msg.err != nil {
		if errors.Is(msg.err, hackathon.ErrSubmitInFlight) {
			f.setFlash(msg.err.Error(), widgets.StatusWarning)
			return f, nil
		}
		f.setFlash(client.UserMessage(msg.err, SaveFallbackMessage), widgets.StatusCritical)
		return f, nil
	}
	f.anySaved = true
	f.setFlash("Draft saved", widgets.StatusOK)
	// a successful save advances the active section
	return f, f.rebuild()
}

func (f *Form) handlePublished(msg publishedMsg) (tea.Model, tea.Cmd) {
	f.busy = false
	var verr *hackathon.ValidationError
	var perr *hackathon.PublishError
	switch {
	case msg.err == nil:
		f.anySaved = true
		f.setFlash("Hackathon published", widgets.StatusOK)
		rec := msg.rec
		return f, func() tea.Msg { return PublishedMsg{Hackathon: rec} }
	case errors.As(msg.err, &verr):
		f.setFlash(verr.Error(), widgets.StatusCritical)
		return f, f.rebuild()
	case errors.As(msg.err, &perr):
		f.setFlash(perr.Message, widgets.StatusCritical)
	default:
		f.setFlash(msg.err.Error(), widgets.StatusWarning)
	}
	return f, nil
}

func (f *Form) setFlash(text string, level widgets.StatusLevel) {
	f.flash = text
	f.level = level
}

// Flash returns the current status line text
func (f *Form) Flash() string {
	return f.flash
}

// Section returns the id of the section being shown
func (f *Form) Section() string {
	return f.section
}

// Busy reports whether a save or publish is outstanding
func (f *Form) Busy() bool {
	return f.busy
}

// View implements tea.Model
func (f *Form) View() string {
	var sb strings.Builder

	sb.WriteString(f.renderTitle())
	sb.WriteString("\n\n")
	sb.WriteString(widgets.TabBar(f.editor.Sections(), f.section, f.editor.Completed(), f.width))
	sb.WriteString("\n")
	sb.WriteString(widgets.ProgressBarWithLabel(f.editor.Progress(), widgets.DefaultProgressBarConfig()))
	sb.WriteString("\n\n")
	sb.WriteString(f.form.View())
	if f.flash != "" {
		sb.WriteString("\n")
		sb.WriteString(widgets.StatusText(f.flash, f.level))
	}
	return sb.String()
}

func (f *Form) renderTitle() string {
	d := f.editor.Draft()
	title := "New hackathon"
	if f.editor.ID() != "" {
		title = "Editing " + d.Title
		if d.Title == "" {
			title = "Editing untitled hackathon"
		}
	}

	var badge string
	switch f.editor.State() {
	case hackathon.StatePublished:
		badge = widgets.LiveBadge(true)
	case hackathon.StateDraftSaved:
		badge = widgets.LiveBadge(false)
	default:
		badge = widgets.Badge("NEW", widgets.StatusInfo)
	}

	heading := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).
		Render(icons.Hackathon.String() + " " + title)
	return heading + "  " + badge
}

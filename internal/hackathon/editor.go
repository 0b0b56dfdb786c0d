// ABOUTME: Save/publish state machine for one hackathon form instance
// ABOUTME: Owns the draft and tab navigator and guards against overlapping submits

package hackathon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/saarthix/hackctl/internal/client"
	"github.com/saarthix/hackctl/internal/observer"
	"github.com/saarthix/hackctl/internal/tabs"
)

// PublishFallbackMessage is shown when publishing fails without a server message
const PublishFallbackMessage = "Failed to publish hackathon. Please try again."

// ErrSubmitInFlight is returned by Save and Publish while another submit is outstanding
var ErrSubmitInFlight = errors.New("a save or publish is already in progress")

// State is the lifecycle state of the edited record
type State int

const (
	StateNew State = iota
	StateDraftSaved
	StatePublished
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateDraftSaved:
		return "draft"
	default:
		return "published"
	}
}

// Event tells subscribers what changed
type Event int

const (
	EventDraftChanged Event = iota
	EventSectionChanged
	EventStateChanged
	EventBusyChanged
)

// API is the subset of the backend client the editor needs
type API interface {
	GetHackathon(ctx context.Context, id string) (*client.Hackathon, error)
	CreateHackathon(ctx context.Context, in client.HackathonInput) (*client.Hackathon, error)
	UpdateHackathon(ctx context.Context, id string, in client.HackathonInput) (*client.Hackathon, error)
}

// PublishError carries the message to show after a failed publish
type PublishError struct {
	Message string
	Err     error
}

func (e *PublishError) Error() string { return e.Message }

func (e *PublishError) Unwrap() error { return e.Err }

// Editor drives one hackathon form
type Editor struct {
	api API

	mu        sync.Mutex
	draft     *Draft
	nav       *tabs.Navigator[*Draft]
	state     State
	savedID   string
	editingID string

	busy      atomic.Bool
	listeners observer.List[Event]
}

// NewEditor starts a NEW hackathon
func NewEditor(api API) *Editor {
	return &Editor{
		api:   api,
		draft: NewDraft(),
		nav:   NewNavigator(),
		state: StateNew,
	}
}

// Load fetches hackathon id and continues editing it
func (e *Editor) Load(ctx context.Context, id string) error {
	rec, err := e.api.GetHackathon(ctx, id)
	if err != nil {
		slog.Error("Failed to load hackathon", "id", id, "error", err)
		return fmt.Errorf("failed to load hackathon details: %w", err)
	}

	e.mu.Lock()
	e.draft = FromRecord(rec)
	e.editingID = id
	if rec.ID != "" {
		e.savedID = rec.ID
	}
	if rec.Enabled {
		e.state = StatePublished
	} else {
		e.state = StateDraftSaved
	}
	e.mu.Unlock()

	e.listeners.Notify(EventDraftChanged)
	e.listeners.Notify(EventStateChanged)
	return nil
}

// Subscribe registers fn to run after every change
func (e *Editor) Subscribe(fn func(Event)) (unsubscribe func()) {
	return e.listeners.Subscribe(fn)
}

// Draft returns a copy of the current draft
func (e *Editor) Draft() *Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.Clone()
}

// State returns the lifecycle state
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// ID returns the id updates go to, or "" for a record not yet created
func (e *Editor) ID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.targetID()
}

func (e *Editor) targetID() string {
	if e.savedID != "" {
		return e.savedID
	}
	return e.editingID
}

// Busy reports whether a save or publish is outstanding
func (e *Editor) Busy() bool {
	return e.busy.Load()
}

// Save stores the draft with enabled=false, or keeps it enabled when it is
// already published. On success the next section becomes active.
func (e *Editor) Save(ctx context.Context) (*client.Hackathon, error) {
	if !e.acquire() {
		return nil, ErrSubmitInFlight
	}
	defer e.release()

	e.mu.Lock()
	payload := e.draft.DraftPayload()
	if e.state == StatePublished {
		payload.Enabled = true
	}
	id := e.targetID()
	e.mu.Unlock()

	rec, err := e.submit(ctx, id, payload)
	if err != nil {
		slog.Error("Error saving hackathon", "id", id, "error", err)
		return nil, fmt.Errorf("failed to save hackathon: %w", err)
	}
	slog.Info("Hackathon saved as draft", "id", rec.ID)

	e.mu.Lock()
	if id == "" && rec.ID != "" {
		e.savedID = rec.ID
	}
	if e.state != StatePublished && e.targetID() != "" {
		e.state = StateDraftSaved
	}
	e.draft.ID = e.targetID()
	e.nav.Advance()
	e.mu.Unlock()

	e.listeners.Notify(EventStateChanged)
	e.listeners.Notify(EventSectionChanged)
	return rec, nil
}

// Publish validates the required fields and stores the draft with
// enabled=true. A validation failure activates the first offending section
// and makes no request.
func (e *Editor) Publish(ctx context.Context) (*client.Hackathon, error) {
	if !e.acquire() {
		return nil, ErrSubmitInFlight
	}
	defer e.release()

	e.mu.Lock()
	if err := ValidateForPublish(e.draft); err != nil {
		var verr *ValidationError
		errors.As(err, &verr)
		_ = e.nav.JumpTo(verr.Section)
		e.mu.Unlock()
		e.listeners.Notify(EventSectionChanged)
		return nil, err
	}
	payload := e.draft.PublishPayload()
	id := e.targetID()
	e.mu.Unlock()

	rec, err := e.submit(ctx, id, payload)
	if err != nil {
		slog.Error("Error publishing hackathon", "id", id, "error", err)
		return nil, &PublishError{
			Message: client.UserMessage(err, PublishFallbackMessage),
			Err:     err,
		}
	}
	slog.Info("Hackathon published", "id", rec.ID)

	e.mu.Lock()
	if id == "" && rec.ID != "" {
		e.savedID = rec.ID
	}
	e.state = StatePublished
	e.draft.Enabled = true
	e.draft.ID = e.targetID()
	e.mu.Unlock()

	e.listeners.Notify(EventStateChanged)
	return rec, nil
}

func (e *Editor) submit(ctx context.Context, id string, payload client.HackathonInput) (*client.Hackathon, error) {
	if id != "" {
		return e.api.UpdateHackathon(ctx, id, payload)
	}
	return e.api.CreateHackathon(ctx, payload)
}

func (e *Editor) acquire() bool {
	if !e.busy.CompareAndSwap(false, true) {
		return false
	}
	e.listeners.Notify(EventBusyChanged)
	return true
}

func (e *Editor) release() {
	e.busy.Store(false)
	e.listeners.Notify(EventBusyChanged)
}

// mutate applies fn to the draft and notifies subscribers when it reports a change
func (e *Editor) mutate(fn func(d *Draft) bool) bool {
	e.mu.Lock()
	changed := fn(e.draft)
	e.mu.Unlock()
	if changed {
		e.listeners.Notify(EventDraftChanged)
	}
	return changed
}

// SetField assigns a scalar field by wire name
func (e *Editor) SetField(name, value string) error {
	var err error
	e.mutate(func(d *Draft) bool {
		err = d.Set(name, value)
		return err == nil
	})
	return err
}

// AddSkill adds a trimmed skill, ignoring blanks and duplicates
func (e *Editor) AddSkill(skill string) bool {
	return e.mutate(func(d *Draft) bool { return d.Skills.Add(skill) })
}

// RemoveSkill removes a skill
func (e *Editor) RemoveSkill(skill string) bool {
	return e.mutate(func(d *Draft) bool { return d.Skills.Remove(skill) })
}

// AddPhase appends an empty phase and returns it
func (e *Editor) AddPhase() Phase {
	var p Phase
	e.mutate(func(d *Draft) bool {
		p = d.Phases.Add()
		return true
	})
	return p
}

// RemovePhase removes phase id; a no-op when it is the only phase
func (e *Editor) RemovePhase(id int) bool {
	return e.mutate(func(d *Draft) bool { return d.Phases.Remove(id) })
}

// UpdatePhase sets the name, description and deadline of phase id
func (e *Editor) UpdatePhase(id int, name, description, deadline string) bool {
	return e.mutate(func(d *Draft) bool {
		return d.Phases.Update(id, func(p *Phase) {
			p.Name = name
			p.Description = description
			p.Deadline = deadline
		})
	})
}

// TogglePhaseFormat flips format f on phase id
func (e *Editor) TogglePhaseFormat(id int, f SubmissionFormat) error {
	if !IsSubmissionFormat(f) {
		return fmt.Errorf("unknown submission format %q", f)
	}
	if !e.mutate(func(d *Draft) bool { return d.Phases.ToggleFormat(id, f) }) {
		return fmt.Errorf("unknown phase %d", id)
	}
	return nil
}

// SuggestSkills returns catalogue skills matching query that are not chosen yet
func (e *Editor) SuggestSkills(query string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return SuggestSkills(query, &e.draft.Skills)
}

// Sections returns the form sections in order
func (e *Editor) Sections() []tabs.Section {
	return e.nav.Sections()
}

// Active returns the active section
func (e *Editor) Active() tabs.Section {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nav.Active()
}

// Completed returns the ids of complete sections
func (e *Editor) Completed() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nav.Completed(e.draft)
}

// IsSectionComplete reports whether section id is complete
func (e *Editor) IsSectionComplete(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nav.IsSectionComplete(id, e.draft)
}

// Progress is the percentage of required sections complete
func (e *Editor) Progress() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nav.Progress(e.draft)
}

// Advance activates the next section
func (e *Editor) Advance() {
	e.moveSection(func(n *tabs.Navigator[*Draft]) { n.Advance() })
}

// Retreat activates the previous section
func (e *Editor) Retreat() {
	e.moveSection(func(n *tabs.Navigator[*Draft]) { n.Retreat() })
}

// JumpTo activates section id
func (e *Editor) JumpTo(id string) error {
	var err error
	e.moveSection(func(n *tabs.Navigator[*Draft]) { err = n.JumpTo(id) })
	return err
}

func (e *Editor) moveSection(fn func(*tabs.Navigator[*Draft])) {
	e.mu.Lock()
	before := e.nav.Index()
	fn(e.nav)
	moved := e.nav.Index() != before
	e.mu.Unlock()
	if moved {
		e.listeners.Notify(EventSectionChanged)
	}
}

// ABOUTME: Tests for the hackathon editor state machine
// ABOUTME: Uses a recording fake backend to check which requests are made

package hackathon

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/saarthix/hackctl/internal/client"
)

type call struct {
	method string
	id     string
	in     client.HackathonInput
}

type fakeAPI struct {
	mu      sync.Mutex
	calls   []call
	err     error
	record  *client.Hackathon
	block   chan struct{}
	started chan struct{}
}

func (f *fakeAPI) respond(method, id string, in client.HackathonInput) (*client.Hackathon, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{method, id, in})
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	out := &client.Hackathon{ID: id, Title: in.Title, Enabled: in.Enabled}
	if id == "" {
		out.ID = "new-1"
	}
	return out, nil
}

func (f *fakeAPI) GetHackathon(ctx context.Context, id string) (*client.Hackathon, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func (f *fakeAPI) CreateHackathon(ctx context.Context, in client.HackathonInput) (*client.Hackathon, error) {
	return f.respond("POST", "", in)
}

func (f *fakeAPI) UpdateHackathon(ctx context.Context, id string, in client.HackathonInput) (*client.Hackathon, error) {
	return f.respond("PUT", id, in)
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func fillRequired(t *testing.T, e *Editor) {
	t.Helper()
	for field, v := range map[string]string{
		FieldTitle:            "Hack",
		FieldCompany:          "Acme",
		FieldDescription:      "Build",
		FieldProblemStatement: "Solve",
		FieldStartDate:        "2026-11-01",
		FieldEndDate:          "2026-11-02",
	} {
		if err := e.SetField(field, v); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSave_CreatesThenUpdates(t *testing.T) {
	api := &fakeAPI{}
	e := NewEditor(api)
	ctx := context.Background()

	if _, err := e.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if e.State() != StateDraftSaved || e.ID() != "new-1" {
		t.Errorf("expected DRAFT_SAVED(new-1), got %s(%s)", e.State(), e.ID())
	}
	if _, err := e.Save(ctx); err != nil {
		t.Fatalf("second save: %v", err)
	}

	if api.calls[0].method != "POST" || api.calls[0].in.Enabled {
		t.Errorf("expected POST with enabled=false, got %+v", api.calls[0])
	}
	if api.calls[1].method != "PUT" || api.calls[1].id != "new-1" || api.calls[1].in.Enabled {
		t.Errorf("expected PUT new-1 with enabled=false, got %+v", api.calls[1])
	}
}

func TestSave_AdvancesSectionOnlyOnSuccess(t *testing.T) {
	api := &fakeAPI{}
	e := NewEditor(api)
	ctx := context.Background()

	e.Save(ctx)
	if e.Active().ID != SectionProblem {
		t.Errorf("expected problem after save, got %s", e.Active().ID)
	}

	api.err = &client.APIError{Status: 500}
	if _, err := e.Save(ctx); err == nil {
		t.Fatal("expected error")
	}
	if e.Active().ID != SectionProblem {
		t.Errorf("failed save should not move section, got %s", e.Active().ID)
	}
}

func TestPublish_ValidationMakesNoRequest(t *testing.T) {
	api := &fakeAPI{}
	e := NewEditor(api)
	fillRequired(t, e)
	e.SetField(FieldProblemStatement, "")

	_, err := e.Publish(context.Background())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if api.count() != 0 {
		t.Errorf("expected no requests, got %d", api.count())
	}
	if e.Active().ID != SectionProblem {
		t.Errorf("expected problem section active, got %s", e.Active().ID)
	}
	if e.State() != StateNew {
		t.Errorf("expected state unchanged, got %s", e.State())
	}
}

func TestPublish_FromDraft(t *testing.T) {
	api := &fakeAPI{}
	e := NewEditor(api)
	fillRequired(t, e)
	ctx := context.Background()

	e.Save(ctx)
	rec, err := e.Publish(ctx)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !rec.Enabled || e.State() != StatePublished {
		t.Errorf("expected published, got %s enabled=%v", e.State(), rec.Enabled)
	}
	last := api.calls[len(api.calls)-1]
	if last.method != "PUT" || last.id != "new-1" || !last.in.Enabled {
		t.Errorf("expected PUT new-1 enabled=true, got %+v", last)
	}

	// saving a published hackathon keeps it enabled
	e.Save(ctx)
	last = api.calls[len(api.calls)-1]
	if !last.in.Enabled || e.State() != StatePublished {
		t.Errorf("expected re-save to keep enabled, got %+v state %s", last, e.State())
	}
}

func TestPublish_ErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", &client.APIError{Status: 400, Message: "End date before start"}, "End date before start"},
		{"no message", &client.APIError{Status: 500}, PublishFallbackMessage},
		{"network", &client.NetworkError{Err: errors.New("refused")}, PublishFallbackMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{err: tt.err}
			e := NewEditor(api)
			fillRequired(t, e)
			_, err := e.Publish(context.Background())
			var perr *PublishError
			if !errors.As(err, &perr) {
				t.Fatalf("expected PublishError, got %v", err)
			}
			if perr.Message != tt.want {
				t.Errorf("expected %q, got %q", tt.want, perr.Message)
			}
			if !errors.Is(err, tt.err) {
				t.Error("expected cause to be wrapped")
			}
			if e.State() != StateNew {
				t.Errorf("expected state unchanged, got %s", e.State())
			}
		})
	}
}

func TestSubmitGuard(t *testing.T) {
	api := &fakeAPI{block: make(chan struct{}), started: make(chan struct{}, 1)}
	e := NewEditor(api)
	fillRequired(t, e)

	done := make(chan error, 1)
	go func() {
		_, err := e.Save(context.Background())
		done <- err
	}()

	select {
	case <-api.started:
	case <-time.After(time.Second):
		t.Fatal("save did not start")
	}
	if !e.Busy() {
		t.Error("expected editor busy")
	}

	if _, err := e.Save(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Errorf("expected ErrSubmitInFlight from save, got %v", err)
	}
	if _, err := e.Publish(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Errorf("expected ErrSubmitInFlight from publish, got %v", err)
	}

	close(api.block)
	if err := <-done; err != nil {
		t.Fatalf("save: %v", err)
	}
	if api.count() != 1 {
		t.Errorf("expected exactly one request, got %d", api.count())
	}
	if e.Busy() {
		t.Error("expected editor idle")
	}
}

func TestLoad(t *testing.T) {
	api := &fakeAPI{record: &client.Hackathon{ID: "h9", Title: "Old", Enabled: true}}
	e := NewEditor(api)
	if err := e.Load(context.Background(), "h9"); err != nil {
		t.Fatal(err)
	}
	if e.State() != StatePublished || e.ID() != "h9" {
		t.Errorf("expected PUBLISHED(h9), got %s(%s)", e.State(), e.ID())
	}
	if e.Draft().Title != "Old" {
		t.Error("expected hydrated title")
	}

	e.Save(context.Background())
	if api.calls[0].method != "PUT" || api.calls[0].id != "h9" {
		t.Errorf("expected update of h9, got %+v", api.calls[0])
	}
}

func TestLoad_DisabledIsDraft(t *testing.T) {
	api := &fakeAPI{record: &client.Hackathon{ID: "h2"}}
	e := NewEditor(api)
	e.Load(context.Background(), "h2")
	if e.State() != StateDraftSaved {
		t.Errorf("expected DRAFT_SAVED, got %s", e.State())
	}
}

func TestMutatorsNotify(t *testing.T) {
	e := NewEditor(&fakeAPI{})
	var events []Event
	e.Subscribe(func(ev Event) { events = append(events, ev) })

	e.SetField(FieldTitle, "Hack")
	e.AddSkill("Go")
	e.AddSkill("Go")
	p := e.AddPhase()
	e.UpdatePhase(p.ID, "Final", "", "2026-12-01")
	if err := e.TogglePhaseFormat(p.ID, "PDF"); err != nil {
		t.Fatal(err)
	}
	e.RemovePhase(p.ID)
	e.RemoveSkill("Go")

	if len(events) != 7 {
		t.Errorf("expected 7 change events, got %d", len(events))
	}
	if err := e.TogglePhaseFormat(p.ID, "Carrier Pigeon"); err == nil {
		t.Error("expected unknown format error")
	}
	if e.RemovePhase(1) {
		t.Error("removing the only phase should be a no-op")
	}
}

func TestNavigationThroughEditor(t *testing.T) {
	e := NewEditor(&fakeAPI{})
	e.Retreat()
	if e.Active().ID != SectionBasic {
		t.Error("retreat on first section should be a no-op")
	}
	if err := e.JumpTo(SectionCapacity); err != nil {
		t.Fatal(err)
	}
	e.Advance()
	if e.Active().ID != SectionCapacity {
		t.Error("advance on last section should be a no-op")
	}
	if err := e.JumpTo("nope"); err == nil {
		t.Error("expected error for unknown section")
	}
}

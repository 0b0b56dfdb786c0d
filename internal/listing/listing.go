// ABOUTME: Hackathon list view with "mine" and "all" collections and client-side search
// ABOUTME: Mutations are followed by a full reload instead of local patching

package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/saarthix/hackctl/internal/client"
	"github.com/saarthix/hackctl/internal/observer"
)

// ErrNotConfirmed is returned by Delete without confirmation
var ErrNotConfirmed = errors.New("delete not confirmed")

// ErrDisposed is returned once the view has been closed
var ErrDisposed = errors.New("list view closed")

// Tab selects the visible collection
type Tab string

const (
	TabMine Tab = "mine"
	TabAll  Tab = "all"
)

// API is the subset of the backend client the list view needs
type API interface {
	ListMine(ctx context.Context) ([]client.Hackathon, error)
	ListAll(ctx context.Context) ([]client.Hackathon, error)
	DeleteHackathon(ctx context.Context, id string) error
	ToggleStatus(ctx context.Context, id string) (*client.Hackathon, error)
	Applicants(ctx context.Context, id string) ([]client.Applicant, error)
}

// entry pairs a record with its lower-cased search text
type entry struct {
	h      client.Hackathon
	search string
}

// View holds both collections and the search state
type View struct {
	api API

	mu       sync.Mutex
	mine     []entry
	all      []entry
	mineErr  error
	allErr   error
	tab      Tab
	query    string
	loaded   bool
	disposed bool

	listeners observer.List[*View]
}

// New creates an empty view on the "mine" tab
func New(api API) *View {
	return &View{api: api, tab: TabMine}
}

// Subscribe registers fn to run after every change
func (v *View) Subscribe(fn func(*View)) (unsubscribe func()) {
	return v.listeners.Subscribe(fn)
}

// Load fetches both collections concurrently. A failing fetch leaves its
// collection empty and records the error without blocking the other one;
// Load returns an error only when both fail.
func (v *View) Load(ctx context.Context) error {
	if v.isDisposed() {
		return ErrDisposed
	}

	var (
		mine, all       []client.Hackathon
		mineErr, allErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		mine, mineErr = v.api.ListMine(gctx)
		return nil
	})
	g.Go(func() error {
		all, allErr = v.api.ListAll(gctx)
		return nil
	})
	_ = g.Wait()

	if mineErr != nil {
		slog.Warn("Failed to fetch my hackathons", "error", mineErr)
	}
	if allErr != nil {
		slog.Warn("Failed to fetch all hackathons", "error", allErr)
	}

	v.mu.Lock()
	if v.disposed {
		v.mu.Unlock()
		return ErrDisposed
	}
	v.mine, v.mineErr = index(mine), mineErr
	v.all, v.allErr = index(all), allErr
	v.loaded = true
	v.mu.Unlock()

	v.listeners.Notify(v)

	if mineErr != nil && allErr != nil {
		return fmt.Errorf("failed to fetch hackathons: %w", errors.Join(mineErr, allErr))
	}
	return nil
}

func index(hs []client.Hackathon) []entry {
	out := make([]entry, len(hs))
	for i, h := range hs {
		out[i] = entry{
			h:      h,
			search: strings.ToLower(h.Title + "\x00" + h.Company + "\x00" + h.Description),
		}
	}
	return out
}

// SetTab switches the visible collection
func (v *View) SetTab(t Tab) {
	v.mu.Lock()
	v.tab = t
	v.mu.Unlock()
	v.listeners.Notify(v)
}

// Tab returns the visible collection
func (v *View) Tab() Tab {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tab
}

// SetQuery sets the search text
func (v *View) SetQuery(q string) {
	v.mu.Lock()
	v.query = q
	v.mu.Unlock()
	v.listeners.Notify(v)
}

// Query returns the search text
func (v *View) Query() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

// Visible returns the active collection filtered by the query on title,
// company and description, case-insensitively
func (v *View) Visible() []client.Hackathon {
	v.mu.Lock()
	defer v.mu.Unlock()

	src := v.mine
	if v.tab == TabAll {
		src = v.all
	}
	q := strings.ToLower(strings.TrimSpace(v.query))
	out := make([]client.Hackathon, 0, len(src))
	for _, e := range src {
		if q == "" || strings.Contains(e.search, q) {
			out = append(out, e.h)
		}
	}
	return out
}

// Counts returns the sizes of both collections
func (v *View) Counts() (mine, all int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.mine), len(v.all)
}

// Errors returns the last fetch error of each collection
func (v *View) Errors() (mine, all error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mineErr, v.allErr
}

// Loaded reports whether a load has completed
func (v *View) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

// Find looks a hackathon up by id in either collection
func (v *View) Find(id string) (client.Hackathon, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, src := range [][]entry{v.mine, v.all} {
		for _, e := range src {
			if e.h.ID == id {
				return e.h, true
			}
		}
	}
	return client.Hackathon{}, false
}

// Delete removes hackathon id after confirmation and reloads both collections
func (v *View) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if v.isDisposed() {
		return ErrDisposed
	}
	if err := v.api.DeleteHackathon(ctx, id); err != nil {
		slog.Error("Error deleting hackathon", "id", id, "error", err)
		return fmt.Errorf("failed to delete hackathon: %w", err)
	}
	slog.Info("Hackathon deleted", "id", id)
	return v.reload(ctx)
}

// Toggle flips the enabled flag server-side, reloads both collections and
// returns the record as the server reports it
func (v *View) Toggle(ctx context.Context, id string) (*client.Hackathon, error) {
	if v.isDisposed() {
		return nil, ErrDisposed
	}
	h, err := v.api.ToggleStatus(ctx, id)
	if err != nil {
		slog.Error("Error toggling hackathon status", "id", id, "error", err)
		return nil, fmt.Errorf("failed to update hackathon status: %w", err)
	}
	slog.Info("Hackathon status toggled", "id", id, "enabled", h.Enabled)
	if err := v.reload(ctx); err != nil {
		return h, err
	}
	return h, nil
}

// Applicants lists applications to hackathon id
func (v *View) Applicants(ctx context.Context, id string) ([]client.Applicant, error) {
	if v.isDisposed() {
		return nil, ErrDisposed
	}
	apps, err := v.api.Applicants(ctx, id)
	if err != nil {
		slog.Error("Error fetching applicants", "id", id, "error", err)
		return nil, fmt.Errorf("failed to load applicants: %w", err)
	}
	if v.isDisposed() {
		return nil, ErrDisposed
	}
	return apps, nil
}

func (v *View) reload(ctx context.Context) error {
	if err := v.Load(ctx); err != nil && !errors.Is(err, ErrDisposed) {
		return err
	}
	return nil
}

// Close disposes the view; results arriving afterwards are dropped
func (v *View) Close() {
	v.mu.Lock()
	v.disposed = true
	v.mu.Unlock()
}

func (v *View) isDisposed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.disposed
}

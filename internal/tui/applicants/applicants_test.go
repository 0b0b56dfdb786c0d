// ABOUTME: Tests for the applicants view
// ABOUTME: Validates team and individual rendering, errors and navigation

package applicants

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saarthix/hackctl/internal/client"
)

func fixed(apps []client.Applicant, err error) Loader {
	return func(context.Context, string) ([]client.Applicant, error) {
		return apps, err
	}
}

func loaded(t *testing.T, a *Applicants) *Applicants {
	t.Helper()
	a.Update(a.Init()())
	return a
}

func TestApplicantsView(t *testing.T) {
	now := time.Now()
	apps := []client.Applicant{
		{
			AsTeam:   true,
			TeamName: "Watt Wizards",
			TeamSize: 3,
			TeamMembers: []client.TeamMember{
				{Name: "Priya", Email: "priya@campus.test"},
				{Name: "Leo"},
			},
			AppliedAt: now.Add(-50 * time.Hour),
		},
		{AppliedAt: now.Add(-3 * time.Hour)},
	}
	a := loaded(t, New(client.Hackathon{ID: "h1", Title: "Green Grid Hack"}, fixed(apps, nil), 100))

	view := a.View()
	for _, want := range []string{
		"Applicants · Green Grid Hack",
		"2 applications · 1 team · 1 individual",
		"Watt Wizards (3)",
		"Priya <priya@campus.test>",
		"Individual applicant",
		"applied 2 days ago",
		"applied 3 hours ago",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q\nView:\n%s", want, view)
		}
	}
}

func TestMembersShownForSelectedRowOnly(t *testing.T) {
	apps := []client.Applicant{
		{AsTeam: true, TeamName: "A", TeamMembers: []client.TeamMember{{Name: "Alice"}}},
		{AsTeam: true, TeamName: "B", TeamMembers: []client.TeamMember{{Name: "Bob"}}},
	}
	a := loaded(t, New(client.Hackathon{ID: "h1"}, fixed(apps, nil), 100))

	if view := a.View(); !strings.Contains(view, "Alice") || strings.Contains(view, "Bob") {
		t.Errorf("expected only the first team's members\n%s", view)
	}
	a.Update(tea.KeyMsg{Type: tea.KeyDown})
	if view := a.View(); strings.Contains(view, "Alice") || !strings.Contains(view, "Bob") {
		t.Errorf("expected only the second team's members\n%s", view)
	}
}

func TestApplicantsEmptyAndError(t *testing.T) {
	a := New(client.Hackathon{ID: "h1"}, fixed(nil, nil), 80)
	if !strings.Contains(a.View(), "Loading applicants") {
		t.Error("expected loading state")
	}
	loaded(t, a)
	if !strings.Contains(a.View(), "No one has applied yet") {
		t.Error("expected empty state")
	}

	failing := loaded(t, New(client.Hackathon{ID: "h1"}, fixed(nil, &client.APIError{Status: 403, Message: "Not your hackathon"}), 80))
	if !strings.Contains(failing.View(), "Not your hackathon") {
		t.Error("expected server message")
	}
}

func TestApplicantsClosedDropsResult(t *testing.T) {
	a := New(client.Hackathon{ID: "h1"}, fixed([]client.Applicant{{}}, nil), 80)
	cmd := a.Init()
	a.Close()
	a.Update(cmd())
	if a.loaded {
		t.Error("result after close must be dropped")
	}
}

func TestBack(t *testing.T) {
	a := New(client.Hackathon{ID: "h1"}, fixed(nil, nil), 80)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(BackMsg); !ok {
		t.Error("expected BackMsg")
	}
}

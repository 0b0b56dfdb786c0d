// ABOUTME: Tests for the sign-in screen
// ABOUTME: Validates method selection, credential submission and error display

package login

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saarthix/hackctl/internal/client"
)

type recorder struct {
	email, password string
	err             error
}

func (r *recorder) signIn(_ context.Context, email, password string) error {
	r.email, r.password = email, password
	return r.err
}

func TestMethodString(t *testing.T) {
	tests := []struct {
		method   Method
		expected string
	}{
		{MethodPassword, "password"},
		{MethodGoogle, "google"},
		{MethodQuit, "quit"},
		{Method(99), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			if got := tc.method.String(); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestStartsWithChooser(t *testing.T) {
	l := New((&recorder{}).signIn, "http://api.test/oauth2/authorization/google")
	l.SetNotice("Your session has ended.")

	view := l.View()
	for _, want := range []string{"Sign in", "Your session has ended.", "Industry email & password", "Google account"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q\nView:\n%s", want, view)
		}
	}
}

func TestChooseGoogleShowsURL(t *testing.T) {
	l := New((&recorder{}).signIn, "http://api.test/oauth2/authorization/google")
	l.choose(MethodGoogle)

	if !strings.Contains(l.View(), "http://api.test/oauth2/authorization/google") {
		t.Error("expected the Google URL on screen")
	}

	l.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if l.stage != stageChoose {
		t.Error("esc should return to the chooser")
	}
}

func TestChooseQuit(t *testing.T) {
	l := New((&recorder{}).signIn, "")
	cmd := l.choose(MethodQuit)
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit")
	}
}

func TestSubmitSuccess(t *testing.T) {
	rec := &recorder{}
	l := New(rec.signIn, "")
	l.choose(MethodPassword)
	l.email = "  industry@acme.test "
	l.password = "pw"

	cmd := l.submit()
	if !l.Busy() || l.submit() != nil {
		t.Error("expected a single outstanding sign-in")
	}
	_, next := l.Update(cmd())
	if _, ok := next().(SignedInMsg); !ok {
		t.Error("expected SignedInMsg")
	}
	if rec.email != "industry@acme.test" || rec.password != "pw" {
		t.Errorf("unexpected credentials %q / %q", rec.email, rec.password)
	}
}

func TestSubmitFailureShowsServerMessage(t *testing.T) {
	rec := &recorder{err: &client.APIError{Status: 401, Message: "Incorrect password"}}
	l := New(rec.signIn, "")
	l.choose(MethodPassword)
	l.email = "industry@acme.test"
	l.password = "bad"

	l.Update(l.submit()())
	if l.Flash() != "Incorrect password" {
		t.Errorf("expected server message, got %q", l.Flash())
	}
	if l.stage != stageCredentials || l.email != "industry@acme.test" || l.password != "" {
		t.Error("expected the credential form again with the email kept and password cleared")
	}
}

func TestSubmitFailureFallback(t *testing.T) {
	rec := &recorder{err: errors.New("dial tcp: refused")}
	l := New(rec.signIn, "")
	l.choose(MethodPassword)

	l.Update(l.submit()())
	if l.Flash() != LoginFallbackMessage {
		t.Errorf("expected fallback, got %q", l.Flash())
	}
}

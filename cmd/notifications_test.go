// ABOUTME: Tests for the notification commands
// ABOUTME: Verifies listing, unread counts and the read/delete actions

package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/saarthix/hackctl/internal/client"
	"github.com/saarthix/hackctl/internal/mockapi"
)

// firstNotification returns the id of the signed-in user's first notification
func firstNotification(t *testing.T, url, token string) string {
	t.Helper()
	c := client.New(url, client.WithTokenSource(func() string { return token }))
	items, err := c.Notifications(context.Background())
	if err != nil || len(items) == 0 {
		t.Fatalf("expected seeded notifications, got %v (%v)", items, err)
	}
	return items[0].ID
}

func TestNotificationsList(t *testing.T) {
	backend, _ := setup(t)
	signIn(t, backend, mockapi.DemoIndustryEmail)

	var buf bytes.Buffer
	if code := runNotificationsList(context.Background(), &buf, nil); code != exitOK {
		t.Fatalf("expected exit code 0, got %d\n%s", code, buf.String())
	}
	out := buf.String()
	for _, want := range []string{"New application", "Watt Wizards applied to Green Grid Hack", "2 notifications, 2 unread"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestNotificationsSignedOut(t *testing.T) {
	setup(t)

	var buf bytes.Buffer
	if code := runNotificationsList(context.Background(), &buf, nil); code != exitDenied {
		t.Errorf("expected exit code %d, got %d", exitDenied, code)
	}
	if !strings.Contains(buf.String(), "Not signed in") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestNotificationsUnread(t *testing.T) {
	backend, _ := setup(t)
	signIn(t, backend, mockapi.DemoIndustryEmail)

	var buf bytes.Buffer
	if code := runNotificationsUnread(context.Background(), &buf, nil); code != exitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if got := strings.TrimSpace(buf.String()); got != "2" {
		t.Errorf("expected 2 unread, got %q", got)
	}
}

func TestNotificationsUnreadFallsBackToZero(t *testing.T) {
	backend, _ := setup(t)
	signIn(t, backend, mockapi.DemoIndustryEmail)
	backend.Fail("GET", "/notifications/unread-count", 500, "down")

	var buf bytes.Buffer
	if code := runNotificationsUnread(context.Background(), &buf, nil); code != exitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if got := strings.TrimSpace(buf.String()); got != "0" {
		t.Errorf("expected 0 on failure, got %q", got)
	}
}

func TestNotificationsReadAll(t *testing.T) {
	backend, _ := setup(t)
	signIn(t, backend, mockapi.DemoIndustryEmail)

	var buf bytes.Buffer
	if code := runNotificationsReadAll(context.Background(), &buf, nil); code != exitOK {
		t.Fatalf("expected exit code 0, got %d\n%s", code, buf.String())
	}
	buf.Reset()
	runNotificationsUnread(context.Background(), &buf, nil)
	if got := strings.TrimSpace(buf.String()); got != "0" {
		t.Errorf("expected 0 unread after read-all, got %q", got)
	}
}

func TestNotificationsReadOne(t *testing.T) {
	backend, url := setup(t)
	token := signIn(t, backend, mockapi.DemoIndustryEmail)
	id := firstNotification(t, url, token)

	var buf bytes.Buffer
	if code := runNotificationsRead(context.Background(), &buf, []string{id}); code != exitOK {
		t.Fatalf("expected exit code 0, got %d\n%s", code, buf.String())
	}
	buf.Reset()
	runNotificationsUnread(context.Background(), &buf, nil)
	if got := strings.TrimSpace(buf.String()); got != "1" {
		t.Errorf("expected 1 unread, got %q", got)
	}
}

func TestNotificationsDelete(t *testing.T) {
	backend, url := setup(t)
	token := signIn(t, backend, mockapi.DemoIndustryEmail)
	id := firstNotification(t, url, token)

	var buf bytes.Buffer
	if code := runNotificationsDelete(context.Background(), &buf, []string{id}); code != exitOK {
		t.Fatalf("expected exit code 0, got %d\n%s", code, buf.String())
	}
	buf.Reset()
	runNotificationsList(context.Background(), &buf, nil)
	if !strings.Contains(buf.String(), "1 notification, 1 unread") {
		t.Errorf("expected one notification left\n%s", buf.String())
	}
}

func TestNotificationsActionFailure(t *testing.T) {
	backend, _ := setup(t)
	signIn(t, backend, mockapi.DemoIndustryEmail)
	backend.Fail("PUT", "/notifications/mark-all-read", 500, "Queue unavailable")

	var buf bytes.Buffer
	if code := runNotificationsReadAll(context.Background(), &buf, nil); code != exitError {
		t.Errorf("expected exit code %d, got %d", exitError, code)
	}
	if !strings.Contains(buf.String(), "Queue unavailable") {
		t.Errorf("expected backend message, got %q", buf.String())
	}
}

func TestFormatNotifications_Empty(t *testing.T) {
	if got := formatNotifications(nil); got != "No notifications." {
		t.Errorf("unexpected output %q", got)
	}
}

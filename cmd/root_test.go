// ABOUTME: Tests for the root command and global flag handling
// ABOUTME: Verifies configuration overrides and the shared test backend helpers

package cmd

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/saarthix/hackctl/internal/client"
	"github.com/saarthix/hackctl/internal/mockapi"
	"github.com/saarthix/hackctl/internal/store"
)

// setup starts a seeded mock backend, points the global flags at it and
// resets every command flag when the test ends
func setup(t *testing.T) (*mockapi.Server, string) {
	t.Helper()
	backend := mockapi.New()
	backend.Seed()
	ts := httptest.NewServer(backend.Handler())
	t.Cleanup(ts.Close)

	t.Setenv("HACKCTL_API_URL", "")
	t.Setenv("HACKCTL_APP_URL", "")
	t.Setenv("HACKCTL_BASENAME", "")
	t.Setenv("HACKCTL_STORE", store.BackendFile)

	apiURL = ts.URL
	configDir = t.TempDir()
	t.Cleanup(resetFlags)
	return backend, ts.URL
}

func resetFlags() {
	apiURL, configDir, jsonOutput = "", "", false
	loginToken, loginEmail, loginPassword = "", "", ""
	registerCompany, registerEmail, registerPassword = "", "", ""
	listAll, listSearch, deleteYes = false, "", false
	mockAddr, mockCORS, mockNoSeed, mockQuiet = "127.0.0.1:8080", "", false, false
}

// signIn stores a token for email where the commands will find it
func signIn(t *testing.T, backend *mockapi.Server, email string) string {
	t.Helper()
	token, err := backend.IssueToken(email)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.NewTokenStore(store.NewFileStore(configDir)).Set(token); err != nil {
		t.Fatal(err)
	}
	return token
}

// findHackathon looks a seeded hackathon up by title
func findHackathon(t *testing.T, url, title string) client.Hackathon {
	t.Helper()
	all, err := client.New(url).ListAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for _, h := range all {
		if h.Title == title {
			return h
		}
	}
	t.Fatalf("hackathon %q not seeded", title)
	return client.Hackathon{}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("HACKCTL_API_URL", "http://backend.example.com")
	t.Setenv("HACKCTL_CONFIG_DIR", t.TempDir())
	apiURL = ""

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIURL != "http://backend.example.com" {
		t.Errorf("expected http://backend.example.com, got %s", cfg.APIURL)
	}
}

func TestLoadConfig_FlagOverridesEnv(t *testing.T) {
	t.Setenv("HACKCTL_API_URL", "http://backend.example.com")
	t.Setenv("HACKCTL_CONFIG_DIR", t.TempDir())
	apiURL = "http://flag-override.example.com/"
	configDir = "/tmp/hackctl-flag"
	defer resetFlags()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIURL != "http://flag-override.example.com" {
		t.Errorf("expected flag to override env, got %s", cfg.APIURL)
	}
	if cfg.ConfigDir != "/tmp/hackctl-flag" {
		t.Errorf("expected config dir from flag, got %s", cfg.ConfigDir)
	}
}

func TestLoadConfig_InvalidStore(t *testing.T) {
	t.Setenv("HACKCTL_STORE", "redis")
	t.Setenv("HACKCTL_CONFIG_DIR", t.TempDir())

	var buf bytes.Buffer
	code := withEnv(&buf, func(e *env) int { return exitOK })
	if code != exitError {
		t.Errorf("expected exit code %d, got %d", exitError, code)
	}
	if !strings.Contains(buf.String(), "invalid configuration") {
		t.Errorf("expected configuration error, got %q", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	if !IsJSONOutput() {
		t.Error("expected IsJSONOutput to return true")
	}
}

func TestFailure(t *testing.T) {
	var buf bytes.Buffer
	code := failure(&buf, &client.APIError{Status: 500, Message: "Database is down"}, "Failed to load")
	if code != exitError {
		t.Errorf("expected exit code %d, got %d", exitError, code)
	}
	if got := buf.String(); got != "Error: Database is down\n" {
		t.Errorf("expected backend message, got %q", got)
	}

	buf.Reset()
	failure(&buf, errors.New("connection refused"), "Failed to load")
	if got := buf.String(); got != "Error: Failed to load: connection refused\n" {
		t.Errorf("expected fallback with cause, got %q", got)
	}
}

func TestRejected(t *testing.T) {
	if !rejected(&client.APIError{Status: 403}) {
		t.Error("expected 403 to be a rejection")
	}
	if rejected(&client.APIError{Status: 502}) {
		t.Error("expected 502 not to be a rejection")
	}
	if rejected(errors.New("plain")) {
		t.Error("expected plain errors not to be rejections")
	}
}

func TestRequireIndustry(t *testing.T) {
	backend, _ := setup(t)
	ctx := context.Background()

	var buf bytes.Buffer
	withEnv(&buf, func(e *env) int {
		if e.requireIndustry(ctx, &buf) {
			t.Error("expected signed-out session to be refused")
		}
		return exitOK
	})
	if !strings.Contains(buf.String(), "Not signed in") {
		t.Errorf("expected sign-in hint, got %q", buf.String())
	}

	signIn(t, backend, mockapi.DemoApplicantEmail)
	buf.Reset()
	withEnv(&buf, func(e *env) int {
		if e.requireIndustry(ctx, &buf) {
			t.Error("expected applicant to be refused")
		}
		return exitOK
	})
	if !strings.Contains(buf.String(), "Only industry accounts") {
		t.Errorf("expected industry-only message, got %q", buf.String())
	}

	signIn(t, backend, mockapi.DemoIndustryEmail)
	buf.Reset()
	withEnv(&buf, func(e *env) int {
		if !e.requireIndustry(ctx, &buf) {
			t.Errorf("expected industry user to be allowed, got %q", buf.String())
		}
		return exitOK
	})
}

// ABOUTME: Tests for configuration loading and URL derivation
// ABOUTME: Covers env precedence, .env loading and the base URL decision table

package config

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HACKCTL_API_URL", "HACKCTL_APP_URL", "HACKCTL_BASENAME", "HACKCTL_TIMEOUT",
		"HACKCTL_STORE",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("HACKCTL_CONFIG_DIR", t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("expected %s, got %s", DefaultAPIURL, cfg.APIURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.Timeout)
	}
	if cfg.StoreBackend != "file" {
		t.Errorf("expected file store, got %s", cfg.StoreBackend)
	}
	if cfg.BasePath != "/" {
		t.Errorf("expected base path /, got %s", cfg.BasePath)
	}
}

func TestLoad_ExplicitAPIURLWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("HACKCTL_API_URL", "api.example.com/")
	t.Setenv("HACKCTL_APP_URL", "https://portal.example.com/jobs/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://api.example.com" {
		t.Errorf("expected explicit URL with scheme, got %s", cfg.APIURL)
	}
	if cfg.BasePath != "/jobs" {
		t.Errorf("expected /jobs base path, got %s", cfg.BasePath)
	}
}

func TestLoad_DotEnvFromConfigDir(t *testing.T) {
	clearEnv(t)
	dir := os.Getenv("HACKCTL_CONFIG_DIR")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("HACKCTL_APP_URL=https://portal.example.com\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("HACKCTL_APP_URL") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "https://portal.example.com/jobs-api" {
		t.Errorf("expected gateway URL from .env, got %s", cfg.APIURL)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"negative timeout", "HACKCTL_TIMEOUT", "-1"},
		{"unknown store", "HACKCTL_STORE", "redis"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.val)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tc.key, tc.val)
			}
		})
	}
}

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		appURL string
		want   string
	}{
		{"", DefaultAPIURL},
		{"http://localhost:2003/", "http://localhost:2003"},
		{"http://localhost/", "http://localhost"},
		{"http://localhost:5173/", "http://localhost:5173/jobs-api"},
		{"http://127.0.0.1:5173", "http://127.0.0.1:5173/jobs-api"},
		{"https://portal.example.com/jobs", "https://portal.example.com/jobs-api"},
		{"portal.example.com", "http://portal.example.com/jobs-api"},
	}
	for _, tc := range tests {
		t.Run(tc.appURL, func(t *testing.T) {
			if got := ResolveBaseURL(tc.appURL); got != tc.want {
				t.Errorf("ResolveBaseURL(%q) = %q, want %q", tc.appURL, got, tc.want)
			}
		})
	}
}

func TestDeriveBasePath(t *testing.T) {
	tests := map[string]string{
		"":                                   "/",
		"https://portal.example.com/":        "/",
		"https://portal.example.com/jobs":    "/jobs",
		"https://portal.example.com/jobs/x":  "/jobs",
		"https://portal.example.com/jobsite": "/",
	}
	for in, want := range tests {
		if got := DeriveBasePath(in); got != want {
			t.Errorf("DeriveBasePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPlatformAndProfilingURL(t *testing.T) {
	if got := PlatformURL("/jobs"); got != "/" {
		t.Errorf("PlatformURL(/jobs) = %q", got)
	}
	if got := PlatformURL("/app/jobs/"); got != "/app" {
		t.Errorf("PlatformURL(/app/jobs/) = %q", got)
	}
	if got := ProfilingURL("/jobs"); got != "/profiling" {
		t.Errorf("ProfilingURL(/jobs) = %q", got)
	}
	if got := ProfilingURL("/"); got != "/profiling" {
		t.Errorf("ProfilingURL(/) = %q", got)
	}
}

func TestBuildRedirectURL(t *testing.T) {
	got, err := BuildRedirectURL("https://portal.example.com", "/", "about-us", "abc",
		&RedirectUser{Email: "a@b.c", UserType: "INDUSTRY"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("invalid URL %q: %v", got, err)
	}
	if u.Path != "/about-us" {
		t.Errorf("expected /about-us path, got %s", u.Path)
	}
	q := u.Query()
	if q.Get("token") != "abc" || q.Get("email") != "a@b.c" || q.Get("userType") != "INDUSTRY" {
		t.Errorf("unexpected query %v", q)
	}
	if q.Has("name") {
		t.Error("expected empty name to be omitted")
	}
}

// ABOUTME: Tests for the mock-server command
// ABOUTME: Starts the seeded backend on a random port and checks graceful shutdown

package cmd

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestServeMock(t *testing.T) {
	defer resetFlags()
	mockQuiet = true

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	url := "http://" + ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var buf bytes.Buffer
	done := make(chan int, 1)
	go func() { done <- serveMock(ctx, &buf, ln) }()

	resp, err := http.Get(url + "/hackathons")
	if err != nil {
		t.Fatalf("mock backend not reachable: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case code := <-done:
		if code != exitOK {
			t.Errorf("expected exit code 0, got %d\n%s", code, buf.String())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("mock backend did not shut down")
	}

	out := buf.String()
	for _, want := range []string{url, "industry@acme.test / acme-demo", "Mock backend stopped"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestRunMockServer_AddressInUse(t *testing.T) {
	defer resetFlags()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	mockAddr = ln.Addr().String()

	var buf bytes.Buffer
	if code := runMockServer(context.Background(), &buf, nil); code != exitError {
		t.Errorf("expected exit code %d, got %d", exitError, code)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" http://a.test, ,http://b.test ")
	want := []string{"http://a.test", "http://b.test"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if splitList("") != nil {
		t.Error("expected nil for an empty list")
	}
}

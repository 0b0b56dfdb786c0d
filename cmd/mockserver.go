// ABOUTME: mock-server command for hackctl CLI
// ABOUTME: Serves the in-memory backend with demo data for local use of the CLI and TUI

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/saarthix/hackctl/internal/mockapi"
)

var (
	mockAddr   string
	mockCORS   string
	mockNoSeed bool
	mockQuiet  bool
)

const mockShutdownTimeout = 10 * time.Second

var mockServerCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Run an in-memory backend with demo data",
	Long: `Run an in-memory backend that speaks the same API as the jobs backend.

Point the CLI at it with --api-url or HACKCTL_API_URL. Data is lost on exit.`,
	Args: cobra.NoArgs,
	Run:  runCommand(runMockServer),
}

func init() {
	mockServerCmd.Flags().StringVar(&mockAddr, "addr", "127.0.0.1:8080", "Address to listen on")
	mockServerCmd.Flags().StringVar(&mockCORS, "cors", "", "Comma-separated origins allowed to call the API from a browser")
	mockServerCmd.Flags().BoolVar(&mockNoSeed, "no-seed", false, "Start without demo accounts and hackathons")
	mockServerCmd.Flags().BoolVar(&mockQuiet, "quiet", false, "Do not write the access log")
	rootCmd.AddCommand(mockServerCmd)
}

func runMockServer(ctx context.Context, w io.Writer, args []string) int {
	ln, err := net.Listen("tcp", mockAddr)
	if err != nil {
		fmt.Fprintf(w, "Error: cannot listen on %s: %v\n", mockAddr, err)
		return exitError
	}
	return serveMock(ctx, w, ln)
}

// serveMock serves the mock backend on ln until ctx is cancelled
func serveMock(ctx context.Context, w io.Writer, ln net.Listener) int {
	var opts []mockapi.Option
	if !mockQuiet {
		opts = append(opts, mockapi.WithAccessLog(os.Stderr))
	}
	if origins := splitList(mockCORS); len(origins) > 0 {
		opts = append(opts, mockapi.WithCORS(origins...))
	}
	backend := mockapi.New(opts...)
	if !mockNoSeed {
		backend.Seed()
	}

	srv := &http.Server{
		Handler:           backend.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	url := "http://" + ln.Addr().String()
	fmt.Fprintf(w, "Mock backend listening on %s\n", url)
	if !mockNoSeed {
		fmt.Fprintf(w, "Industry login: %s / %s\n", mockapi.DemoIndustryEmail, mockapi.DemoIndustryPassword)
		fmt.Fprintf(w, "Google sign-in stand-in: %s/dev/login?email=%s\n", url, mockapi.DemoIndustryEmail)
	}
	fmt.Fprintf(w, "Use it with: hackctl --api-url %s <command>\n", url)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down mock backend")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), mockShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}
	fmt.Fprintln(w, "Mock backend stopped")
	return exitOK
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

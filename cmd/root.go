// ABOUTME: Root command for hackctl CLI
// ABOUTME: Handles global flags and builds the config, token store, API client and session

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/saarthix/hackctl/internal/client"
	"github.com/saarthix/hackctl/internal/config"
	"github.com/saarthix/hackctl/internal/logger"
	"github.com/saarthix/hackctl/internal/session"
	"github.com/saarthix/hackctl/internal/store"
)

var (
	apiURL     string
	jsonOutput bool
	configDir  string
)

// Exit codes shared by every command
const (
	exitOK     = 0
	exitDenied = 1 // not signed in, not allowed, or declined
	exitError  = 2 // backend, network or local failure
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "hackctl",
	Short: "Manage hackathon postings from the terminal",
	Long: `hackctl signs industry users in to the jobs backend and manages their hackathon postings.

Run "hackctl tui" for the interactive dashboard, or use the subcommands in scripts.

Environment Variables:
  HACKCTL_API_URL     Backend API URL (default: derived from HACKCTL_APP_URL, else http://localhost:8080)
  HACKCTL_APP_URL     URL the web app is served from
  HACKCTL_BASENAME    Route prefix of the web app (default: /jobs when the app URL uses it)
  HACKCTL_CONFIG_DIR  Where the token and debug log are kept
  HACKCTL_STORE       file or sqlite (default: file)
  HACKCTL_TIMEOUT     Request timeout in seconds (default: 30)
  LOG_LEVEL           debug, info, warn, error (default: warn)
  LOG_FORMAT          text or json`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides HACKCTL_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Config directory (overrides HACKCTL_CONFIG_DIR)")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// loadConfig reads the environment and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = strings.TrimRight(apiURL, "/")
	}
	if configDir != "" {
		cfg.ConfigDir = configDir
	}
	return cfg, nil
}

// env is everything a command needs to talk to the backend as the stored user
type env struct {
	cfg     *config.Config
	store   store.Store
	tokens  *store.TokenStore
	client  *client.Client
	session *session.Session
}

// newEnv wires config, token store, client and session. The session is
// created unsettled; commands call Initialize when they need an identity.
func newEnv() (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	st, err := store.Open(cfg.StoreBackend, cfg.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}
	tokens := store.NewTokenStore(st)

	c := client.New(cfg.APIURL, client.WithTimeout(cfg.Timeout))
	s := session.New(tokens, c, session.WithLogoutHook(c.Logout))
	s.Bind(c)

	return &env{cfg: cfg, store: st, tokens: tokens, client: c, session: s}, nil
}

// Close releases the token store
func (e *env) Close() {
	if c, ok := e.store.(io.Closer); ok {
		c.Close()
	}
}

// requireIndustry settles the session and reports whether an industry user
// is signed in, printing the reason when not
func (e *env) requireIndustry(ctx context.Context, w io.Writer) bool {
	err := e.session.Initialize(ctx, nil)
	switch e.session.Guard(session.RoleIndustry) {
	case session.Allow:
		return true
	default:
		switch {
		case e.session.Authenticated():
			fmt.Fprintln(w, "Only industry accounts can manage hackathons.")
		case err != nil && !rejected(err):
			fmt.Fprintf(w, "Error: %v\n", err)
		default:
			fmt.Fprintln(w, `Not signed in. Run "hackctl login" first.`)
		}
		return false
	}
}

// rejected reports whether err is the backend refusing the request or the
// token
func rejected(err error) bool {
	if errors.Is(err, client.ErrUnauthorized) {
		return true
	}
	var apiErr *client.APIError
	return errors.As(err, &apiErr) && apiErr.Rejected()
}

// withEnv builds an env, runs fn and maps setup failures to exitError
func withEnv(w io.Writer, fn func(e *env) int) int {
	e, err := newEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}
	defer e.Close()
	return fn(e)
}

// runCommand wraps a run function with a signal-cancelled context and exits
// with its code
func runCommand(run func(ctx context.Context, w io.Writer, args []string) int) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := run(ctx, os.Stdout, args)
		if exitCode != exitOK {
			cancel()
			os.Exit(exitCode)
		}
	}
}

// writeJSON prints v as indented JSON
func writeJSON(w io.Writer, v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(data))
}

// failure prints err with the backend message when there is one
func failure(w io.Writer, err error, fallback string) int {
	msg := client.UserMessage(err, "")
	if msg == "" {
		msg = fmt.Sprintf("%s: %v", fallback, err)
	}
	fmt.Fprintf(w, "Error: %s\n", msg)
	return exitError
}

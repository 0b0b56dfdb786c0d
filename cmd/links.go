// ABOUTME: links command for hackctl CLI
// ABOUTME: Prints the platform and profiling URLs, signed in when a session exists

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/saarthix/hackctl/internal/config"
)

var linksCmd = &cobra.Command{
	Use:   "links [route]",
	Short: "Print links to the rest of the platform",
	Long: `Print the platform root and profiling service URLs for the configured app URL.

When signed in, the profiling link carries the token and identity so the browser
lands signed in. An optional route is appended to the profiling link.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCommand(runLinks),
}

func init() {
	rootCmd.AddCommand(linksCmd)
}

// linksOutput is the JSON shape of links
type linksOutput struct {
	Platform  string `json:"platform"`
	Profiling string `json:"profiling"`
	SignedIn  bool   `json:"signedIn"`
}

func runLinks(ctx context.Context, w io.Writer, args []string) int {
	return withEnv(w, func(e *env) int {
		origin := e.cfg.AppURL
		if origin == "" {
			origin = e.cfg.APIURL
		}
		route := ""
		if len(args) == 1 {
			route = args[0]
		}

		// links work signed out; an unreachable backend only loses the token
		e.session.Initialize(ctx, nil)
		var token string
		var user *config.RedirectUser
		if id, ok := e.session.Identity(); ok && e.session.Authenticated() {
			token = e.session.Token()
			user = &config.RedirectUser{Email: id.Email, Name: id.Name, UserType: string(id.Role)}
		}

		platform, err := config.BuildRedirectURL(origin, config.PlatformURL(e.cfg.BasePath), "", "", nil)
		if err != nil {
			fmt.Fprintf(w, "Error: invalid app URL %q: %v\n", origin, err)
			return exitError
		}
		profiling, err := config.BuildRedirectURL(origin, config.ProfilingURL(e.cfg.BasePath), route, token, user)
		if err != nil {
			fmt.Fprintf(w, "Error: invalid app URL %q: %v\n", origin, err)
			return exitError
		}

		out := linksOutput{Platform: platform, Profiling: profiling, SignedIn: token != ""}
		if IsJSONOutput() {
			writeJSON(w, out)
			return exitOK
		}
		fmt.Fprintf(w, "Platform:   %s\n", out.Platform)
		fmt.Fprintf(w, "Profiling:  %s\n", out.Profiling)
		if !out.SignedIn {
			fmt.Fprintln(w, "Not signed in; links open the sign-in page.")
		}
		return exitOK
	})
}

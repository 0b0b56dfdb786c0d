// ABOUTME: Sign-in commands for hackctl CLI
// ABOUTME: login, register, logout and whoami against the stored session

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/saarthix/hackctl/internal/client"
	"github.com/saarthix/hackctl/internal/session"
)

var (
	loginToken    string
	loginEmail    string
	loginPassword string

	registerCompany  string
	registerEmail    string
	registerPassword string
)

// interactive reports whether prompts can be shown; tests replace it
var interactive = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// promptPassword asks for a password without echoing it
var promptPassword = func(title string) (string, error) {
	var password string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&password).
		Run()
	return password, err
}

var loginCmd = &cobra.Command{
	Use:   "login [redirect-url]",
	Short: "Sign in to the backend",
	Long: `Sign in with one of:

  hackctl login <redirect-url>        the URL the browser landed on after Google sign-in
  hackctl login --token <token>       a token copied from the web app
  hackctl login --email <email>       an industry account password (prompted when omitted)

Without arguments the Google sign-in URL is printed.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCommand(runLogin),
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an industry account",
	Args:  cobra.NoArgs,
	Run:   runCommand(runRegister),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored token",
	Args:  cobra.NoArgs,
	Run:   runCommand(runLogout),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Args:  cobra.NoArgs,
	Run:   runCommand(runWhoami),
}

func init() {
	loginCmd.Flags().StringVar(&loginToken, "token", "", "Token issued by the backend")
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Industry account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Industry account password")

	registerCmd.Flags().StringVar(&registerCompany, "company", "", "Company name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password (prompted when omitted)")
	registerCmd.MarkFlagRequired("company")
	registerCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

// whoamiOutput is the JSON shape of login and whoami
type whoamiOutput struct {
	Status    string            `json:"status"`
	Identity  *session.Identity `json:"identity,omitempty"`
	ExpiresAt string            `json:"expiresAt,omitempty"`
}

func runLogin(ctx context.Context, w io.Writer, args []string) int {
	return withEnv(w, func(e *env) int {
		var err error
		switch {
		case len(args) == 1:
			loc, perr := url.Parse(args[0])
			if perr != nil {
				fmt.Fprintf(w, "Error: invalid redirect URL: %v\n", perr)
				return exitError
			}
			if loc.Query().Get(session.TokenParam) == "" {
				fmt.Fprintln(w, "Error: the redirect URL carries no token")
				return exitError
			}
			err = e.session.Initialize(ctx, loc)
		case loginToken != "":
			err = e.session.Login(ctx, loginToken)
		case loginEmail != "":
			password := loginPassword
			if password == "" {
				if !interactive() {
					fmt.Fprintln(w, "Error: --password is required when stdin is not a terminal")
					return exitError
				}
				if password, err = promptPassword("Password for " + loginEmail); err != nil {
					return failure(w, err, "Password prompt failed")
				}
			}
			err = e.session.LoginWithPassword(ctx, e.client, strings.TrimSpace(loginEmail), password)
		default:
			fmt.Fprintf(w, "Open this URL in a browser to sign in with Google:\n\n  %s\n\n", e.client.GoogleLoginURL())
			fmt.Fprintln(w, `Then run "hackctl login <url>" with the address the browser lands on.`)
			return exitOK
		}

		if err != nil {
			if rejected(err) {
				fmt.Fprintf(w, "Sign in failed: %s\n", client.UserMessage(err, "Invalid credentials"))
				return exitDenied
			}
			return failure(w, err, "Sign in failed")
		}
		return reportIdentity(w, e.session)
	})
}

func runRegister(ctx context.Context, w io.Writer, args []string) int {
	return withEnv(w, func(e *env) int {
		password := registerPassword
		if password == "" {
			if !interactive() {
				fmt.Fprintln(w, "Error: --password is required when stdin is not a terminal")
				return exitError
			}
			var err error
			if password, err = promptPassword("Choose a password"); err != nil {
				return failure(w, err, "Password prompt failed")
			}
		}

		msg, err := e.client.IndustryRegister(ctx, strings.TrimSpace(registerCompany), strings.TrimSpace(registerEmail), password)
		if err != nil {
			if rejected(err) {
				fmt.Fprintf(w, "Registration failed: %s\n", client.UserMessage(err, "Registration was refused"))
				return exitDenied
			}
			return failure(w, err, "Registration failed")
		}

		if IsJSONOutput() {
			writeJSON(w, map[string]string{"message": msg})
			return exitOK
		}
		if msg == "" {
			msg = "Account created."
		}
		fmt.Fprintln(w, msg)
		fmt.Fprintf(w, "Sign in with: hackctl login --email %s\n", registerEmail)
		return exitOK
	})
}

func runLogout(ctx context.Context, w io.Writer, args []string) int {
	return withEnv(w, func(e *env) int {
		e.session.Initialize(ctx, nil)
		e.session.Logout(ctx)
		if IsJSONOutput() {
			writeJSON(w, whoamiOutput{Status: e.session.Status().String()})
			return exitOK
		}
		fmt.Fprintln(w, "Signed out.")
		return exitOK
	})
}

func runWhoami(ctx context.Context, w io.Writer, args []string) int {
	return withEnv(w, func(e *env) int {
		if err := e.session.Initialize(ctx, nil); err != nil && !rejected(err) && !errors.Is(err, context.Canceled) {
			return failure(w, err, "Could not reach the backend")
		}
		return reportIdentity(w, e.session)
	})
}

// reportIdentity prints the settled session and returns exitDenied when
// nobody is signed in
func reportIdentity(w io.Writer, s *session.Session) int {
	out := whoamiOutput{Status: s.Status().String()}
	id, ok := s.Identity()
	if ok && s.Authenticated() {
		out.Identity = &id
	}
	expiry, hasExpiry := s.TokenExpiry()
	if hasExpiry && out.Identity != nil {
		out.ExpiresAt = expiry.UTC().Format("2006-01-02T15:04:05Z")
	}

	if IsJSONOutput() {
		writeJSON(w, out)
	} else if out.Identity == nil {
		fmt.Fprintln(w, `Not signed in. Run "hackctl login" first.`)
	} else {
		fmt.Fprintf(w, "Signed in as %s <%s>\n", id.Name, id.Email)
		fmt.Fprintf(w, "Account:  %s\n", id.Role)
		if hasExpiry {
			fmt.Fprintf(w, "Token:    expires %s\n", humanize.Time(expiry))
		}
		if id.Role != session.RoleIndustry {
			fmt.Fprintln(w, "Only industry accounts can manage hackathons.")
		}
	}

	if out.Identity == nil {
		return exitDenied
	}
	return exitOK
}

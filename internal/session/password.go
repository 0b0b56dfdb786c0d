// ABOUTME: Industry email/password sign-in on top of the session
// ABOUTME: Uses the issued token when the backend returns one, otherwise only records the identity

package session

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/saarthix/hackctl/internal/client"
)

// PasswordAuthenticator performs the industry password login
type PasswordAuthenticator interface {
	IndustryLogin(ctx context.Context, email, password string) (*client.LoginResponse, error)
}

// LoginWithPassword signs an industry user in. A returned token goes through
// Login and is validated; without one the identity is recorded but the
// session stays unauthenticated until a token arrives.
func (s *Session) LoginWithPassword(ctx context.Context, api PasswordAuthenticator, email, password string) error {
	resp, err := api.IndustryLogin(ctx, email, password)
	if err != nil {
		return err
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "Login failed"
		}
		return &client.APIError{Status: http.StatusUnauthorized, Message: msg}
	}

	if resp.Token != "" {
		return s.Login(ctx, resp.Token)
	}

	slog.Info("Industry login returned no token", "email", resp.User.Email)
	s.Update(Identity{
		Name:  resp.User.Name,
		Email: resp.User.Email,
		Role:  Role(resp.User.UserType),
	})
	return nil
}

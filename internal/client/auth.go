// ABOUTME: Authentication endpoints of the jobs backend
// ABOUTME: Identity lookup, industry password login/registration and the Google login URL

package client

import (
	"context"
	"net/http"
)

// Me fetches the identity behind token. An empty token falls back to the
// client's token source.
func (c *Client) Me(ctx context.Context, token string) (*AuthMe, error) {
	var me AuthMe
	// the session handles rejection of its own validation call
	err := c.do(ctx, request{method: http.MethodGet, path: "/auth/me", token: token, skipAuthHook: true}, &me)
	if err != nil {
		return nil, err
	}
	return &me, nil
}

// IndustryLogin signs an industry user in with email and password
func (c *Client) IndustryLogin(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp LoginResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/industry/login", body: body, skipAuthHook: true}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// IndustryRegister creates an industry account and returns the backend's
// confirmation message, which may be plain text
func (c *Client) IndustryRegister(ctx context.Context, companyName, email, password string) (string, error) {
	body := map[string]string{"companyName": companyName, "email": email, "password": password}
	var raw []byte
	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/industry/register", body: body, skipAuthHook: true}, &raw); err != nil {
		return "", err
	}
	return extractMessage(raw), nil
}

// Logout ends the backend's server-side session. The local token is already
// gone by the time this runs, so rejections are not reported to the session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/logout", skipAuthHook: true}, nil)
}

// GoogleLoginURL is where a browser starts the OAuth flow. The backend
// redirects back to the app with ?token=... once it completes.
func (c *Client) GoogleLoginURL() string {
	return c.baseURL + "/oauth2/authorization/google"
}

// ABOUTME: Environment-derived URLs: backend base URL, route base path, platform links
// ABOUTME: Mirrors how the web front end picks its API prefix from the page it is served on

package config

import (
	"net/url"
	"strings"
)

// gatewayPrefix is the path the production gateway routes to the jobs backend
const gatewayPrefix = "/jobs-api"

// dockerPort is the port the bundled nginx serves the front end on
const dockerPort = "2003"

// ResolveBaseURL derives the backend base URL from the app URL.
//
//	localhost:2003 or bare localhost  -> same origin (nginx proxies /api)
//	other localhost ports             -> <origin>/jobs-api
//	anything else                     -> <origin>/jobs-api (gateway)
//	no app URL                        -> DefaultAPIURL
func ResolveBaseURL(appURL string) string {
	if appURL == "" {
		return DefaultAPIURL
	}
	u, err := url.Parse(ensureScheme(appURL))
	if err != nil || u.Host == "" {
		return DefaultAPIURL
	}

	origin := u.Scheme + "://" + u.Host
	host := u.Hostname()
	port := u.Port()

	isLocal := host == "localhost" || host == "127.0.0.1"
	isDocker := port == dockerPort || (port == "" && host == "localhost")

	if isLocal && isDocker {
		return origin
	}
	return origin + gatewayPrefix
}

// DeriveBasePath returns the route prefix the app is mounted under:
// "/jobs" when the app URL path starts with it, "/" otherwise
func DeriveBasePath(appURL string) string {
	if appURL == "" {
		return "/"
	}
	u, err := url.Parse(ensureScheme(appURL))
	if err != nil {
		return "/"
	}
	p := u.Path
	if p == "/jobs" || strings.HasPrefix(p, "/jobs/") {
		return "/jobs"
	}
	return "/"
}

// PlatformURL returns the main platform root for a base path
func PlatformURL(basePath string) string {
	base := strings.TrimRight(basePath, "/")
	if strings.Contains(base, "/jobs") {
		base = strings.Replace(base, "/jobs", "", 1)
	}
	if base == "" {
		return "/"
	}
	return base
}

// ProfilingURL returns the profiling service root for a base path
func ProfilingURL(basePath string) string {
	base := strings.TrimRight(basePath, "/")
	if strings.Contains(base, "/jobs") {
		return strings.Replace(base, "/jobs", "/profiling", 1)
	}
	return base + "/profiling"
}

// RedirectUser carries the identity fields forwarded on cross-service redirects
type RedirectUser struct {
	Email    string
	Name     string
	UserType string
}

// BuildRedirectURL joins origin, base and route and appends token and user
// fields as query parameters. Empty values are omitted.
func BuildRedirectURL(origin, base, route, token string, user *RedirectUser) (string, error) {
	full := strings.TrimRight(base, "/")
	if route != "" {
		if !strings.HasPrefix(route, "/") {
			route = "/" + route
		}
		full += route
	}
	if full == "" {
		full = "/"
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return "", err
	}
	u, err := originURL.Parse(full)
	if err != nil {
		return "", err
	}

	q := u.Query()
	if token != "" {
		q.Set("token", token)
	}
	if user != nil {
		if user.Email != "" {
			q.Set("email", user.Email)
		}
		if user.Name != "" {
			q.Set("name", user.Name)
		}
		if user.UserType != "" {
			q.Set("userType", user.UserType)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

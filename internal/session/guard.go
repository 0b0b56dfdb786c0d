// ABOUTME: Role guard for screens restricted to one kind of user
// ABOUTME: Non-matching sessions are redirected to the root screen

package session

// Decision is the outcome of a role guard
type Decision int

const (
	// Loading means auth is still settling; render a placeholder
	Loading Decision = iota
	// Allow means the screen may render
	Allow
	// Redirect means the screen renders nothing and the user was sent to root
	Redirect
)

func (d Decision) String() string {
	switch d {
	case Loading:
		return "loading"
	case Allow:
		return "allow"
	default:
		return "redirect"
	}
}

// Guard decides whether a screen for role may render. Redirect also
// triggers navigation to root.
func (s *Session) Guard(role Role) Decision {
	switch {
	case s.Status() == StatusLoading:
		return Loading
	case s.hasRole(role):
		return Allow
	default:
		s.nav.NavigateRoot()
		return Redirect
	}
}

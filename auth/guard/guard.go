// Package guard decides whether a request may reach a route. It has no
// side effects: acting on a decision (redirecting, attaching the flash
// message) is the transport layer's job.
package guard

import "memberserver/auth/users"

type Policy int

const (
	// Open lets every request through.
	Open Policy = iota
	// RequireAuth redirects anonymous requests to the login page.
	RequireAuth
	// RequireGuest redirects authenticated requests to the home page.
	RequireGuest
)

type Decision struct {
	Allow      bool
	RedirectTo string
	Flash      string
}

type Guard struct {
	loginPath string
	homePath  string
}

func New(loginPath string, homePath string) Guard {
	return Guard{
		loginPath: loginPath,
		homePath:  homePath,
	}
}

func (g Guard) Check(user users.User, policy Policy) Decision {
	switch policy {
	case RequireAuth:
		if user.IsAnonymous() {
			return Decision{
				RedirectTo: g.loginPath,
				Flash:      "Login to access!",
			}
		}
	case RequireGuest:
		if !user.IsAnonymous() {
			return Decision{
				RedirectTo: g.homePath,
				Flash:      "You are already logged in!",
			}
		}
	}
	return Decision{Allow: true}
}

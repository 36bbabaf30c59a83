package service

import (
	"github.com/parkwise/parking-client/internal/core/domain"
	"github.com/parkwise/parking-client/internal/core/ports"
)

// Well-known console paths used as guard redirect targets.
const (
	LoginPath = "/login"
	AdminHome = "/admin"
	UserHome  = "/user"
)

// Route describes the access requirements attached to a navigable view.
type Route struct {
	Path string
	// RequiresAuth gates the route behind an authenticated session.
	RequiresAuth bool
	// Role, when non-empty, restricts the route to that session role.
	Role string
	// GuestOnly marks login/register style routes that authenticated
	// sessions must not revisit.
	GuestOnly bool
}

// GuardDecision says whether navigation may proceed, and where to send the
// visitor when it may not.
type GuardDecision struct {
	Allow      bool
	RedirectTo string
}

// HomeFor maps a session role to its landing route.
func HomeFor(role string) string {
	if role == domain.RoleAdmin {
		return AdminHome
	}
	return UserHome
}

// CheckRoute applies the navigation guard rules: unauthenticated visitors to
// a guarded route go to login, role mismatches go to the visitor's own home
// (never rendering the requested view), and authenticated visitors to
// guest-only routes go to their home.
func CheckRoute(route Route, state ports.SessionState) GuardDecision {
	if route.RequiresAuth {
		if !state.Authenticated {
			return GuardDecision{RedirectTo: LoginPath}
		}
		if route.Role != "" && state.Role != route.Role {
			return GuardDecision{RedirectTo: HomeFor(state.Role)}
		}
	}
	if route.GuestOnly && state.Authenticated {
		return GuardDecision{RedirectTo: HomeFor(state.Role)}
	}
	return GuardDecision{Allow: true}
}

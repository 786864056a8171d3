package authstate

import "edu-backoffice/internal/model"

const DefaultFallback = "/login"

type Decision int

const (
	DecisionWait Decision = iota
	DecisionRedirect
	DecisionAllow
)

func (d Decision) String() string {
	switch d {
	case DecisionWait:
		return "wait"
	case DecisionRedirect:
		return "redirect"
	default:
		return "allow"
	}
}

type GuardOptions struct {
	RequiredRole         model.Role
	AllowUnauthenticated bool
	Fallback             string
}

type Outcome struct {
	Decision Decision
	Location string
}

// Evaluate decides what a guarded page does with the current view.
func Evaluate(view View, opts GuardOptions) Outcome {
	if view.IsLoading {
		return Outcome{Decision: DecisionWait}
	}

	if opts.AllowUnauthenticated {
		if view.IsLoggedIn {
			return redirect(LandingPath(view.UserRole))
		}
		return Outcome{Decision: DecisionAllow}
	}

	if !view.IsLoggedIn {
		fallback := opts.Fallback
		if fallback == "" {
			fallback = DefaultFallback
		}
		return redirect(fallback)
	}

	if opts.RequiredRole != "" && view.UserRole != opts.RequiredRole {
		return redirect(HomePath(view.UserRole))
	}

	return Outcome{Decision: DecisionAllow}
}

// LandingPath is where a logged-in visitor of a public-only page is sent.
func LandingPath(role model.Role) string {
	switch role {
	case model.RoleSuperAdmin:
		return "/super-admin"
	case model.RoleAdmin:
		return "/admin"
	default:
		return "/"
	}
}

// HomePath is the page a role belongs on when it hits someone else's page.
func HomePath(role model.Role) string {
	switch role {
	case model.RoleSuperAdmin:
		return "/super-admin"
	case model.RoleAdmin:
		return "/admin"
	default:
		return "/dashboard"
	}
}

func redirect(location string) Outcome {
	return Outcome{Decision: DecisionRedirect, Location: location}
}

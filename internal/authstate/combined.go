package authstate

import "edu-backoffice/internal/model"

// Source says which of the two session signals reported a login.
type Source int

const (
	SourceNeither Source = iota
	SourceServerOnly
	SourceLegacyOnly
	SourceBoth
)

func (s Source) String() string {
	switch s {
	case SourceServerOnly:
		return "server-only"
	case SourceLegacyOnly:
		return "legacy-only"
	case SourceBoth:
		return "both"
	default:
		return "neither"
	}
}

// LegacyFlag is the last read of the client-side super-admin flag.
type LegacyFlag struct {
	Loaded bool
	Active bool
}

type View struct {
	IsLoggedIn bool
	UserRole   model.Role
	IsLoading  bool
	Source     Source
}

// Reconciler merges the server session with the legacy flag. The server
// always wins when both report a login. A flag with no server session only
// counts when HonorLegacyFlag is set.
type Reconciler struct {
	HonorLegacyFlag bool
}

func (r Reconciler) Combine(state State, flag LegacyFlag) View {
	if !state.Settled() || !flag.Loaded {
		return View{IsLoading: true}
	}

	principal := state.Principal()
	server := state.Authenticated() && principal != nil

	switch {
	case server && flag.Active:
		return View{IsLoggedIn: true, UserRole: principal.Role, Source: SourceBoth}
	case server:
		return View{IsLoggedIn: true, UserRole: principal.Role, Source: SourceServerOnly}
	case flag.Active:
		if r.HonorLegacyFlag {
			return View{IsLoggedIn: true, UserRole: model.RoleSuperAdmin, Source: SourceLegacyOnly}
		}
		return View{Source: SourceLegacyOnly}
	default:
		return View{Source: SourceNeither}
	}
}

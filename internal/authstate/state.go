// Package authstate tracks a client's view of its session: the reducer that
// owns the auth state, the combined view that folds in the legacy
// super-admin flag, and the page guard built on top of it.
package authstate

import "edu-backoffice/internal/model"

type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseLoading
	PhaseAuthenticated
	PhaseAnonymous
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseLoading:
		return "loading"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// State holds at most one principal, in the slot that matches its role.
type State struct {
	Phase      Phase
	User       *model.Principal
	Admin      *model.Principal
	SuperAdmin *model.Principal
	Error      string
}

// Principal returns whichever slot is filled, or nil.
func (s State) Principal() *model.Principal {
	switch {
	case s.SuperAdmin != nil:
		return s.SuperAdmin
	case s.Admin != nil:
		return s.Admin
	default:
		return s.User
	}
}

func (s State) Authenticated() bool {
	return s.Phase == PhaseAuthenticated
}

// Settled reports whether the state has left Uninitialized and Loading.
func (s State) Settled() bool {
	return s.Phase == PhaseAuthenticated || s.Phase == PhaseAnonymous
}

type Action interface {
	apply(State) State
}

type CheckStarted struct{}

type Initialized struct {
	Principal *model.Principal
}

type LoginStarted struct{}

type LoginSucceeded struct {
	Principal model.Principal
}

type LoginFailed struct {
	Message string
}

type LoggedOut struct{}

func (CheckStarted) apply(s State) State {
	s.Phase = PhaseLoading
	return s
}

func (a Initialized) apply(State) State {
	return withPrincipal(a.Principal)
}

func (LoginStarted) apply(s State) State {
	s.Phase = PhaseLoading
	s.Error = ""
	return s
}

func (a LoginSucceeded) apply(State) State {
	principal := a.Principal
	return withPrincipal(&principal)
}

func (a LoginFailed) apply(State) State {
	return State{Phase: PhaseAnonymous, Error: a.Message}
}

func (LoggedOut) apply(State) State {
	return State{Phase: PhaseAnonymous}
}

// Reduce returns the state that follows s after action. A nil action
// leaves s untouched.
func Reduce(s State, action Action) State {
	if action == nil {
		return s
	}
	return action.apply(s)
}

func withPrincipal(principal *model.Principal) State {
	if principal == nil {
		return State{Phase: PhaseAnonymous}
	}

	p := *principal
	next := State{Phase: PhaseAuthenticated}
	switch p.Role {
	case model.RoleSuperAdmin:
		next.SuperAdmin = &p
	case model.RoleAdmin:
		next.Admin = &p
	default:
		next.User = &p
	}
	return next
}

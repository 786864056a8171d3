package authstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edu-backoffice/internal/model"
)

func principal(role model.Role) *model.Principal {
	return &model.Principal{ID: string(role) + "-1", Role: role, Name: "Someone"}
}

func filledSlots(s State) int {
	n := 0
	for _, slot := range []*model.Principal{s.User, s.Admin, s.SuperAdmin} {
		if slot != nil {
			n++
		}
	}
	return n
}

func TestReduceInitialized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		role model.Role
		slot func(State) *model.Principal
	}{
		{"student goes to user", model.RoleStudent, func(s State) *model.Principal { return s.User }},
		{"admin goes to admin", model.RoleAdmin, func(s State) *model.Principal { return s.Admin }},
		{"super-admin goes to superAdmin", model.RoleSuperAdmin, func(s State) *model.Principal { return s.SuperAdmin }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := Reduce(State{Phase: PhaseLoading}, Initialized{Principal: principal(tt.role)})
			assert.Equal(t, PhaseAuthenticated, s.Phase)
			require.NotNil(t, tt.slot(s))
			assert.Equal(t, tt.role, tt.slot(s).Role)
			assert.Equal(t, 1, filledSlots(s))
		})
	}
}

func TestReduceInitializedWithoutPrincipal(t *testing.T) {
	t.Parallel()

	s := Reduce(State{Phase: PhaseLoading, Error: "stale"}, Initialized{})
	assert.Equal(t, PhaseAnonymous, s.Phase)
	assert.Zero(t, filledSlots(s))
	assert.Empty(t, s.Error)
}

func TestReduceLoginFlow(t *testing.T) {
	t.Parallel()

	s := Reduce(State{}, CheckStarted{})
	assert.Equal(t, PhaseLoading, s.Phase)

	s = Reduce(s, Initialized{})
	s = Reduce(s, LoginStarted{})
	assert.Equal(t, PhaseLoading, s.Phase)

	s = Reduce(s, LoginFailed{Message: "Invalid credentials"})
	assert.Equal(t, PhaseAnonymous, s.Phase)
	assert.Equal(t, "Invalid credentials", s.Error)

	s = Reduce(s, LoginStarted{})
	assert.Empty(t, s.Error)

	s = Reduce(s, LoginSucceeded{Principal: *principal(model.RoleAdmin)})
	assert.Equal(t, PhaseAuthenticated, s.Phase)
	require.NotNil(t, s.Admin)

	s = Reduce(s, LoggedOut{})
	assert.Equal(t, State{Phase: PhaseAnonymous}, s)
}

func TestReduceKeepsAtMostOneSlot(t *testing.T) {
	t.Parallel()

	actions := []Action{
		CheckStarted{},
		Initialized{Principal: principal(model.RoleStudent)},
		LoginStarted{},
		LoginSucceeded{Principal: *principal(model.RoleSuperAdmin)},
		LoginStarted{},
		LoginSucceeded{Principal: *principal(model.RoleAdmin)},
		LoginFailed{Message: "nope"},
		Initialized{Principal: principal(model.RoleSuperAdmin)},
		LoggedOut{},
		LoginSucceeded{Principal: *principal(model.RoleStudent)},
	}

	// Walk every prefix from every starting point of the sequence.
	for start := range actions {
		s := State{}
		for _, action := range actions[start:] {
			s = Reduce(s, action)
			assert.LessOrEqual(t, filledSlots(s), 1)
			if s.Phase == PhaseAuthenticated {
				assert.Equal(t, 1, filledSlots(s))
			}
		}
	}
}

func TestReduceNilAction(t *testing.T) {
	t.Parallel()

	s := State{Phase: PhaseLoading}
	assert.Equal(t, s, Reduce(s, nil))
}

func TestReduceDoesNotAliasPrincipal(t *testing.T) {
	t.Parallel()

	p := principal(model.RoleStudent)
	s := Reduce(State{}, Initialized{Principal: p})
	p.Name = "changed"
	assert.Equal(t, "Someone", s.User.Name)
}

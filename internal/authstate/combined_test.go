package authstate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"edu-backoffice/internal/model"
)

func settled(p *model.Principal) State {
	return Reduce(State{}, Initialized{Principal: p})
}

func TestCombineLoading(t *testing.T) {
	t.Parallel()

	r := Reconciler{}
	assert.True(t, r.Combine(State{}, LegacyFlag{Loaded: true}).IsLoading)
	assert.True(t, r.Combine(State{Phase: PhaseLoading}, LegacyFlag{Loaded: true}).IsLoading)
	assert.True(t, r.Combine(settled(nil), LegacyFlag{}).IsLoading)
	assert.False(t, r.Combine(settled(nil), LegacyFlag{Loaded: true}).IsLoading)
}

func TestCombineSources(t *testing.T) {
	t.Parallel()

	student := principal(model.RoleStudent)

	tests := []struct {
		name       string
		honor      bool
		state      State
		flag       bool
		loggedIn   bool
		role       model.Role
		wantSource Source
	}{
		{"anonymous without flag", false, settled(nil), false, false, "", SourceNeither},
		{"server only", false, settled(student), false, true, model.RoleStudent, SourceServerOnly},
		{"server wins over flag", false, settled(student), true, true, model.RoleStudent, SourceBoth},
		{"server wins over honoured flag", true, settled(student), true, true, model.RoleStudent, SourceBoth},
		{"flag ignored by default", false, settled(nil), true, false, "", SourceLegacyOnly},
		{"flag honoured", true, settled(nil), true, true, model.RoleSuperAdmin, SourceLegacyOnly},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			view := Reconciler{HonorLegacyFlag: tt.honor}.Combine(tt.state, LegacyFlag{Loaded: true, Active: tt.flag})
			assert.False(t, view.IsLoading)
			assert.Equal(t, tt.loggedIn, view.IsLoggedIn)
			assert.Equal(t, tt.role, view.UserRole)
			assert.Equal(t, tt.wantSource, view.Source)
		})
	}
}

func TestCombineAfterFailedLogin(t *testing.T) {
	t.Parallel()

	s := Reduce(State{}, LoginFailed{Message: "bad"})
	view := Reconciler{}.Combine(s, LegacyFlag{Loaded: true})
	assert.False(t, view.IsLoggedIn)
	assert.Equal(t, SourceNeither, view.Source)
}

package authstate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"edu-backoffice/internal/model"
)

func loggedIn(role model.Role) View {
	return View{IsLoggedIn: true, UserRole: role, Source: SourceServerOnly}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		view     View
		opts     GuardOptions
		decision Decision
		location string
	}{
		{"loading waits", View{IsLoading: true}, GuardOptions{}, DecisionWait, ""},
		{"loading waits on public pages too", View{IsLoading: true}, GuardOptions{AllowUnauthenticated: true}, DecisionWait, ""},
		{"anonymous to default fallback", View{}, GuardOptions{}, DecisionRedirect, "/login"},
		{"anonymous to custom fallback", View{}, GuardOptions{Fallback: "/super-admin/login"}, DecisionRedirect, "/super-admin/login"},
		{"anonymous on public page", View{}, GuardOptions{AllowUnauthenticated: true}, DecisionAllow, ""},
		{"super-admin leaves public page", loggedIn(model.RoleSuperAdmin), GuardOptions{AllowUnauthenticated: true}, DecisionRedirect, "/super-admin"},
		{"admin leaves public page", loggedIn(model.RoleAdmin), GuardOptions{AllowUnauthenticated: true}, DecisionRedirect, "/admin"},
		{"student leaves public page", loggedIn(model.RoleStudent), GuardOptions{AllowUnauthenticated: true}, DecisionRedirect, "/"},
		{"matching role", loggedIn(model.RoleAdmin), GuardOptions{RequiredRole: model.RoleAdmin}, DecisionAllow, ""},
		{"no role required", loggedIn(model.RoleStudent), GuardOptions{}, DecisionAllow, ""},
		{"student on admin page", loggedIn(model.RoleStudent), GuardOptions{RequiredRole: model.RoleAdmin, Fallback: "/x"}, DecisionRedirect, "/dashboard"},
		{"admin on super-admin page", loggedIn(model.RoleAdmin), GuardOptions{RequiredRole: model.RoleSuperAdmin}, DecisionRedirect, "/admin"},
		{"super-admin on student page", loggedIn(model.RoleSuperAdmin), GuardOptions{RequiredRole: model.RoleStudent}, DecisionRedirect, "/super-admin"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Evaluate(tt.view, tt.opts)
			assert.Equal(t, tt.decision, got.Decision)
			assert.Equal(t, tt.location, got.Location)
		})
	}
}

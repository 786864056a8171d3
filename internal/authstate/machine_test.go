package authstate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"edu-backoffice/internal/model"
)

type mockSessionAPI struct{ mock.Mock }

func (m *mockSessionAPI) Me(ctx context.Context) (*model.Principal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Principal), args.Error(1)
}

func (m *mockSessionAPI) Login(ctx context.Context, req model.LoginRequest) (model.Principal, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.Principal), args.Error(1)
}

func (m *mockSessionAPI) SuperAdminLogin(ctx context.Context, req model.SuperAdminLoginRequest) (model.Principal, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.Principal), args.Error(1)
}

func (m *mockSessionAPI) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}

type serverError struct{ message string }

func (e serverError) Error() string         { return "request failed: " + e.message }
func (e serverError) ServerMessage() string { return e.message }

func TestMachineStartsUninitialized(t *testing.T) {
	t.Parallel()

	m := NewMachine(&mockSessionAPI{}, NewMemoryFlags(false), &recordingNavigator{})
	assert.Equal(t, PhaseUninitialized, m.State().Phase)
	assert.True(t, m.View().IsLoading)
}

func TestMountCallsMeOnce(t *testing.T) {
	t.Parallel()

	api := &mockSessionAPI{}
	api.On("Me", mock.Anything).Return(principal(model.RoleStudent), nil).Once()

	m := NewMachine(api, NewMemoryFlags(false), &recordingNavigator{})
	m.Mount(context.Background())
	m.Mount(context.Background())

	api.AssertExpectations(t)
	assert.Equal(t, PhaseAuthenticated, m.State().Phase)

	view := m.View()
	assert.True(t, view.IsLoggedIn)
	assert.Equal(t, model.RoleStudent, view.UserRole)
}

type gatedFlags struct {
	read chan struct{}
}

func (f *gatedFlags) Load(context.Context) (bool, error) {
	close(f.read)
	return true, nil
}

func (f *gatedFlags) Clear(context.Context) error { return nil }

type gatedAPI struct {
	mockSessionAPI
	flagRead <-chan struct{}
}

func (a *gatedAPI) Me(ctx context.Context) (*model.Principal, error) {
	select {
	case <-a.flagRead:
		return principal(model.RoleAdmin), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestMountReadsFlagConcurrently(t *testing.T) {
	t.Parallel()

	flags := &gatedFlags{read: make(chan struct{})}
	api := &gatedAPI{flagRead: flags.read}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	m := NewMachine(api, flags, &recordingNavigator{})
	m.Mount(ctx)

	view := m.View()
	assert.False(t, view.IsLoading)
	assert.Equal(t, SourceBoth, view.Source)
	assert.Equal(t, model.RoleAdmin, view.UserRole)
}

func TestMountTreatsErrorsAsAnonymous(t *testing.T) {
	t.Parallel()

	api := &mockSessionAPI{}
	api.On("Me", mock.Anything).Return(nil, errors.New("connection refused"))

	m := NewMachine(api, NewMemoryFlags(false), &recordingNavigator{})
	m.Mount(context.Background())

	assert.Equal(t, PhaseAnonymous, m.State().Phase)
	assert.False(t, m.View().IsLoggedIn)
}

func TestMountStudentWithLegacyFlag(t *testing.T) {
	t.Parallel()

	api := &mockSessionAPI{}
	api.On("Me", mock.Anything).Return(principal(model.RoleStudent), nil)

	m := NewMachine(api, NewMemoryFlags(true), &recordingNavigator{}, WithReconciler(Reconciler{HonorLegacyFlag: true}))
	m.Mount(context.Background())

	view := m.View()
	assert.True(t, view.IsLoggedIn)
	assert.Equal(t, model.RoleStudent, view.UserRole)
	assert.Equal(t, SourceBoth, view.Source)
}

func TestLoginNavigatesByRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role model.Role
		path string
	}{
		{model.RoleAdmin, "/admin"},
		{model.RoleStudent, "/dashboard"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.role), func(t *testing.T) {
			t.Parallel()

			req := model.LoginRequest{Username: "u", Password: "p", Role: string(tt.role)}
			api := &mockSessionAPI{}
			api.On("Login", mock.Anything, req).Return(*principal(tt.role), nil)

			nav := &recordingNavigator{}
			m := NewMachine(api, NewMemoryFlags(false), nav)

			require.NoError(t, m.Login(context.Background(), req))
			assert.Equal(t, tt.path, nav.last())
			assert.Equal(t, tt.role, m.State().Principal().Role)
		})
	}
}

func TestLoginFailureKeepsServerMessage(t *testing.T) {
	t.Parallel()

	api := &mockSessionAPI{}
	api.On("Login", mock.Anything, mock.Anything).Return(model.Principal{}, serverError{message: "Invalid credentials"})
	api.On("SuperAdminLogin", mock.Anything, mock.Anything).Return(model.Principal{}, errors.New("timeout"))

	nav := &recordingNavigator{}
	m := NewMachine(api, NewMemoryFlags(false), nav)

	err := m.Login(context.Background(), model.LoginRequest{})
	require.Error(t, err)
	assert.Equal(t, PhaseAnonymous, m.State().Phase)
	assert.Equal(t, "Invalid credentials", m.State().Error)

	err = m.SuperAdminLogin(context.Background(), model.SuperAdminLoginRequest{})
	require.Error(t, err)
	assert.Equal(t, "Super Admin login failed", m.State().Error)
	assert.Empty(t, nav.last())
}

func TestSuperAdminLogin(t *testing.T) {
	t.Parallel()

	req := model.SuperAdminLoginRequest{Email: "root@example.com", Password: "p"}
	api := &mockSessionAPI{}
	api.On("SuperAdminLogin", mock.Anything, req).Return(*principal(model.RoleSuperAdmin), nil)

	nav := &recordingNavigator{}
	m := NewMachine(api, NewMemoryFlags(false), nav)

	require.NoError(t, m.SuperAdminLogin(context.Background(), req))
	assert.Equal(t, "/super-admin", nav.last())
	assert.NotNil(t, m.State().SuperAdmin)
}

func TestLogoutIgnoresServerFailure(t *testing.T) {
	t.Parallel()

	api := &mockSessionAPI{}
	api.On("Me", mock.Anything).Return(principal(model.RoleSuperAdmin), nil)
	api.On("Logout", mock.Anything).Return(errors.New("network down"))

	flags := NewMemoryFlags(true)
	nav := &recordingNavigator{}
	m := NewMachine(api, flags, nav)
	m.Mount(context.Background())

	m.Logout(context.Background())

	assert.Equal(t, State{Phase: PhaseAnonymous}, m.State())
	assert.Equal(t, "/", nav.last())

	active, err := flags.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, active)
	assert.False(t, m.View().IsLoggedIn)
	api.AssertCalled(t, "Logout", mock.Anything)
}

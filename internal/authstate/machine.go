package authstate

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"edu-backoffice/internal/model"
)

// SessionAPI is the server side of the session. Me returns a nil principal
// and a nil error when there is no session.
type SessionAPI interface {
	Me(ctx context.Context) (*model.Principal, error)
	Login(ctx context.Context, req model.LoginRequest) (model.Principal, error)
	SuperAdminLogin(ctx context.Context, req model.SuperAdminLoginRequest) (model.Principal, error)
	Logout(ctx context.Context) error
}

// FlagStore persists the legacy super-admin flag on the client.
type FlagStore interface {
	Load(ctx context.Context) (bool, error)
	Clear(ctx context.Context) error
}

type Navigator interface {
	Navigate(path string)
}

// Machine drives State through the session lifecycle of one page load.
type Machine struct {
	api        SessionAPI
	flags      FlagStore
	nav        Navigator
	reconciler Reconciler
	logger     *slog.Logger

	mountOnce sync.Once

	mu    sync.Mutex
	state State
	flag  LegacyFlag
}

type Option func(*Machine)

func WithReconciler(r Reconciler) Option {
	return func(m *Machine) { m.reconciler = r }
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) { m.logger = logger }
}

func NewMachine(api SessionAPI, flags FlagStore, nav Navigator, opts ...Option) *Machine {
	m := &Machine{
		api:    api,
		flags:  flags,
		nav:    nav,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reconciler.Combine(m.state, m.flag)
}

func (m *Machine) dispatch(action Action) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Reduce(m.state, action)
	return m.state
}

func (m *Machine) setFlag(flag LegacyFlag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flag = flag
}

// Mount asks the server who is logged in and reads the legacy flag. Both
// reads run concurrently and Mount returns once both are recorded. Calls
// after the first are no-ops.
func (m *Machine) Mount(ctx context.Context) {
	m.mountOnce.Do(func() {
		m.dispatch(CheckStarted{})

		var (
			principal *model.Principal
			active    bool
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			p, err := m.api.Me(gctx)
			if err != nil {
				m.logger.Debug("session check failed", "error", err)
				return nil
			}
			principal = p
			return nil
		})
		g.Go(func() error {
			v, err := m.flags.Load(gctx)
			if err != nil {
				m.logger.Debug("legacy flag read failed", "error", err)
				return nil
			}
			active = v
			return nil
		})
		_ = g.Wait()

		m.setFlag(LegacyFlag{Loaded: true, Active: active})
		m.dispatch(Initialized{Principal: principal})
	})
}

// Login authenticates a student or admin and sends them to their area.
func (m *Machine) Login(ctx context.Context, req model.LoginRequest) error {
	m.dispatch(LoginStarted{})

	principal, err := m.api.Login(ctx, req)
	if err != nil {
		m.dispatch(LoginFailed{Message: failureMessage(err, "Login failed")})
		return err
	}

	m.dispatch(LoginSucceeded{Principal: principal})
	if principal.Role == model.RoleAdmin {
		m.nav.Navigate("/admin")
	} else {
		m.nav.Navigate("/dashboard")
	}
	return nil
}

func (m *Machine) SuperAdminLogin(ctx context.Context, req model.SuperAdminLoginRequest) error {
	m.dispatch(LoginStarted{})

	principal, err := m.api.SuperAdminLogin(ctx, req)
	if err != nil {
		m.dispatch(LoginFailed{Message: failureMessage(err, "Super Admin login failed")})
		return err
	}

	m.dispatch(LoginSucceeded{Principal: principal})
	m.nav.Navigate("/super-admin")
	return nil
}

// Logout always ends in the anonymous state, whatever the server says.
func (m *Machine) Logout(ctx context.Context) {
	if err := m.api.Logout(ctx); err != nil {
		m.logger.Warn("logout request failed, clearing client state anyway", "error", err)
	}

	if err := m.flags.Clear(ctx); err != nil {
		m.logger.Warn("clearing legacy flag failed", "error", err)
	}
	m.setFlag(LegacyFlag{Loaded: true})

	m.dispatch(LoggedOut{})
	m.nav.Navigate("/")
}

// ServerMessager is implemented by errors that carry the server's message.
type ServerMessager interface {
	ServerMessage() string
}

func failureMessage(err error, fallback string) string {
	var sm ServerMessager
	if errors.As(err, &sm) && sm.ServerMessage() != "" {
		return sm.ServerMessage()
	}
	return fallback
}

// MemoryFlags is a FlagStore kept in process memory.
type MemoryFlags struct {
	mu     sync.Mutex
	active bool
}

func NewMemoryFlags(active bool) *MemoryFlags {
	return &MemoryFlags{active: active}
}

func (f *MemoryFlags) Load(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active, nil
}

func (f *MemoryFlags) Set(active bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = active
}

func (f *MemoryFlags) Clear(context.Context) error {
	f.Set(false)
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"edu-backoffice/internal/model"
	"edu-backoffice/internal/repository"
	"edu-backoffice/pkg/apierror"
)

// dummyPasswordHash is compared against when no credential matches so that
// unknown accounts cost the same bcrypt work as known ones.
var dummyPasswordHash, _ = bcrypt.GenerateFromPassword([]byte("unused-placeholder-password"), bcrypt.DefaultCost)

func invalidCredentials() *apierror.APIError {
	return apierror.Unauthorized("Invalid credentials")
}

type AuthService struct {
	credentials   repository.CredentialStore
	tokens        *TokenService
	sessionTTL    time.Duration
	superAdminTTL time.Duration
}

func NewAuthService(credentials repository.CredentialStore, tokens *TokenService, sessionTTL time.Duration, superAdminTTL time.Duration) *AuthService {
	return &AuthService{
		credentials:   credentials,
		tokens:        tokens,
		sessionTTL:    sessionTTL,
		superAdminTTL: superAdminTTL,
	}
}

// Login authenticates a student or admin by username and declared role.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.IssuedSession, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" || strings.TrimSpace(req.Role) == "" {
		return model.IssuedSession{}, apierror.BadRequest("All fields are required", "")
	}

	role, ok := model.ParseRole(req.Role)
	if !ok || role == model.RoleSuperAdmin {
		s.burnComparison(req.Password)
		return model.IssuedSession{}, invalidCredentials()
	}

	credential, err := s.credentials.FindByUsername(ctx, username, role)
	if err != nil {
		return model.IssuedSession{}, s.lookupFailure(err, req.Password)
	}

	return s.authenticate(credential, req.Password, s.sessionTTL)
}

// SuperAdminLogin authenticates the super-admin by email.
func (s *AuthService) SuperAdminLogin(ctx context.Context, req model.SuperAdminLoginRequest) (model.IssuedSession, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return model.IssuedSession{}, apierror.BadRequest("Email and password are required", "")
	}

	credential, err := s.credentials.FindByEmail(ctx, email, model.RoleSuperAdmin)
	if err != nil {
		return model.IssuedSession{}, s.lookupFailure(err, req.Password)
	}

	return s.authenticate(credential, req.Password, s.superAdminTTL)
}

// Me returns the principal encoded in a valid session token.
func (s *AuthService) Me(ctx context.Context, token string) (model.Principal, error) {
	claims, err := s.tokens.Verify(ctx, token)
	if err != nil {
		return model.Principal{}, err
	}
	return claims.Principal, nil
}

// Logout revokes token when it is still valid. Missing or already invalid
// tokens are not an error: the caller clears the cookie either way.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}

	claims, err := s.tokens.Verify(ctx, token)
	if errors.Is(err, model.ErrTokenInvalid) || errors.Is(err, model.ErrTokenRevoked) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.tokens.Revoke(ctx, claims); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	slog.Info("session revoked", "user_id", claims.ID, "role", claims.Role)
	return nil
}

func (s *AuthService) authenticate(credential model.Credential, password string, ttl time.Duration) (model.IssuedSession, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		return model.IssuedSession{}, invalidCredentials()
	}

	session, err := s.tokens.Issue(credential.Principal, ttl)
	if err != nil {
		return model.IssuedSession{}, err
	}

	slog.Info("login succeeded", "user_id", credential.ID, "role", credential.Role)
	return session, nil
}

func (s *AuthService) lookupFailure(err error, password string) error {
	if errors.Is(err, model.ErrCredentialNotFound) {
		s.burnComparison(password)
		return invalidCredentials()
	}
	return fmt.Errorf("lookup credential: %w", err)
}

func (s *AuthService) burnComparison(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"edu-backoffice/internal/model"
	"edu-backoffice/internal/repository"
)

type sessionTokenClaims struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 session tokens and consults the
// revocation list on every verification.
type TokenService struct {
	secret  []byte
	issuer  string
	revoked repository.RevocationStore
	now     func() time.Time
}

func NewTokenService(secret string, issuer string, revoked repository.RevocationStore) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("token secret is required")
	}
	if revoked == nil {
		revoked = repository.NewMemoryRevocationStore()
	}

	return &TokenService{
		secret:  []byte(secret),
		issuer:  issuer,
		revoked: revoked,
		now:     time.Now,
	}, nil
}

func (s *TokenService) Issue(principal model.Principal, ttl time.Duration) (model.IssuedSession, error) {
	if principal.ID == "" || !principal.Role.Valid() {
		return model.IssuedSession{}, fmt.Errorf("issue token: incomplete principal")
	}

	now := s.now().UTC()
	claims := sessionTokenClaims{
		ID:       principal.ID,
		Role:     string(principal.Role),
		Name:     principal.Name,
		Email:    principal.Email,
		Username: principal.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID,
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return model.IssuedSession{}, fmt.Errorf("sign token: %w", err)
	}

	return model.IssuedSession{Token: signed, TTL: ttl, Principal: principal}, nil
}

// Verify rejects expired, tampered, foreign-algorithm, subjectless and
// revoked tokens.
func (s *TokenService) Verify(ctx context.Context, tokenString string) (model.SessionClaims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return model.SessionClaims{}, model.ErrTokenInvalid
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		options = append(options, jwt.WithIssuer(s.issuer))
	}

	claims := &sessionTokenClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, options...)
	if err != nil || !parsed.Valid {
		return model.SessionClaims{}, model.ErrTokenInvalid
	}

	role, ok := model.ParseRole(claims.Role)
	if claims.Subject == "" || !ok {
		return model.SessionClaims{}, model.ErrTokenInvalid
	}

	if claims.RegisteredClaims.ID != "" {
		revoked, err := s.revoked.IsRevoked(ctx, claims.RegisteredClaims.ID)
		if err != nil {
			return model.SessionClaims{}, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return model.SessionClaims{}, model.ErrTokenRevoked
		}
	}

	result := model.SessionClaims{
		Principal: model.Principal{
			ID:       claims.Subject,
			Role:     role,
			Name:     claims.Name,
			Email:    claims.Email,
			Username: claims.Username,
		},
		TokenID: claims.RegisteredClaims.ID,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}

	return result, nil
}

// Revoke puts the token's ID on the revocation list until it expires.
func (s *TokenService) Revoke(ctx context.Context, claims model.SessionClaims) error {
	if claims.TokenID == "" {
		return errors.New("revoke token: missing token id")
	}
	return s.revoked.Revoke(ctx, claims.TokenID, claims.ExpiresAt)
}

package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edu-backoffice/internal/model"
	"edu-backoffice/internal/repository"
)

func newTestTokenService(t *testing.T, secret string) *TokenService {
	t.Helper()
	svc, err := NewTokenService(secret, "edu-backoffice", repository.NewMemoryRevocationStore())
	require.NoError(t, err)
	return svc
}

var testPrincipal = model.Principal{ID: "student-1", Role: model.RoleStudent, Name: "John Doe", Username: "student1"}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService("  ", "edu-backoffice", nil)
	assert.Error(t, err)
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")

	session, err := svc.Issue(testPrincipal, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, session.TTL)

	claims, err := svc.Verify(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, testPrincipal, claims.Principal)
	assert.NotEmpty(t, claims.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestTokenService_VerifyRejects(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService(t, "test-secret")

	t.Run("empty token", func(t *testing.T) {
		_, err := svc.Verify(ctx, "")
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("expired token", func(t *testing.T) {
		past := newTestTokenService(t, "test-secret")
		past.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
		session, err := past.Issue(testPrincipal, time.Hour)
		require.NoError(t, err)

		_, err = svc.Verify(ctx, session.Token)
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := newTestTokenService(t, "other-secret")
		session, err := other.Issue(testPrincipal, time.Hour)
		require.NoError(t, err)

		_, err = svc.Verify(ctx, session.Token)
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("payload swapped under a valid signature", func(t *testing.T) {
		genuine, err := svc.Issue(testPrincipal, time.Hour)
		require.NoError(t, err)
		elevated, err := svc.Issue(model.Principal{ID: "x", Role: model.RoleSuperAdmin, Name: "x"}, time.Hour)
		require.NoError(t, err)

		genuineParts := strings.Split(genuine.Token, ".")
		elevatedParts := strings.Split(elevated.Token, ".")
		forged := genuineParts[0] + "." + elevatedParts[1] + "." + genuineParts[2]

		_, err = svc.Verify(ctx, forged)
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("different signing algorithm", func(t *testing.T) {
		claims := jwt.MapClaims{
			"sub":  "student-1",
			"role": "student",
			"iss":  "edu-backoffice",
			"exp":  time.Now().Add(time.Hour).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.Verify(ctx, token)
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("unsigned token", func(t *testing.T) {
		claims := jwt.MapClaims{"sub": "student-1", "role": "student", "exp": time.Now().Add(time.Hour).Unix()}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Verify(ctx, token)
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("missing subject", func(t *testing.T) {
		claims := jwt.MapClaims{
			"role": "student",
			"iss":  "edu-backoffice",
			"exp":  time.Now().Add(time.Hour).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.Verify(ctx, token)
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("revoked token", func(t *testing.T) {
		session, err := svc.Issue(testPrincipal, time.Hour)
		require.NoError(t, err)
		claims, err := svc.Verify(ctx, session.Token)
		require.NoError(t, err)

		require.NoError(t, svc.Revoke(ctx, claims))

		_, err = svc.Verify(ctx, session.Token)
		assert.ErrorIs(t, err, model.ErrTokenRevoked)
	})
}

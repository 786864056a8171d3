package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"edu-backoffice/internal/model"
)

func TestStaticCredentialStoreLookup(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id":"s-1","role":"student","name":"Sam","username":"sam","password_hash":"$2a$10$hash"},
		{"id":"a-1","role":"admin","name":"Ada","username":"sam","password_hash":"$2a$10$hash"},
		{"id":"sa-1","role":"super-admin","name":"Root","email":"Root@Example.com","password_hash":"$2a$10$hash"}
	]`), 0o600))

	store, err := LoadStaticCredentials(path)
	require.NoError(t, err)

	ctx := context.Background()

	student, err := store.FindByUsername(ctx, "SAM", model.RoleStudent)
	require.NoError(t, err)
	require.Equal(t, "s-1", student.ID)

	admin, err := store.FindByUsername(ctx, "sam", model.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, "a-1", admin.ID)

	_, err = store.FindByUsername(ctx, "sam", model.RoleSuperAdmin)
	require.ErrorIs(t, err, model.ErrCredentialNotFound)

	root, err := store.FindByEmail(ctx, "root@example.com", model.RoleSuperAdmin)
	require.NoError(t, err)
	require.Equal(t, model.RoleSuperAdmin, root.Role)
}

func TestStaticCredentialStoreRejectsBadEntries(t *testing.T) {
	t.Parallel()

	_, err := NewStaticCredentialStore([]model.Credential{{
		Principal: model.Principal{ID: "x", Role: "owner"}, PasswordHash: "h",
	}})
	require.Error(t, err)

	_, err = NewStaticCredentialStore([]model.Credential{{
		Principal: model.Principal{ID: "x", Role: model.RoleAdmin, Username: "a"},
	}})
	require.Error(t, err)

	dup := model.Credential{Principal: model.Principal{ID: "x", Role: model.RoleAdmin, Username: "a"}, PasswordHash: "h"}
	_, err = NewStaticCredentialStore([]model.Credential{dup, dup})
	require.Error(t, err)
}

package repository

import (
	"context"

	"edu-backoffice/internal/model"
)

// CredentialStore looks up stored credentials. Implementations return
// model.ErrCredentialNotFound when nothing matches.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string, role model.Role) (model.Credential, error)
	FindByEmail(ctx context.Context, email string, role model.Role) (model.Credential, error)
}

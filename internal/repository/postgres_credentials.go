package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"edu-backoffice/internal/model"
)

type PostgresCredentialStore struct {
	pool *pgxpool.Pool
}

func NewPostgresCredentialStore(pool *pgxpool.Pool) *PostgresCredentialStore {
	return &PostgresCredentialStore{pool: pool}
}

func (r *PostgresCredentialStore) FindByUsername(ctx context.Context, username string, role model.Role) (model.Credential, error) {
	return r.findOne(ctx,
		`SELECT id, role, coalesce(username, ''), coalesce(email, ''), name, password_hash, created_at
		 FROM credentials WHERE lower(username) = lower($1) AND role = $2`,
		strings.TrimSpace(username), string(role))
}

func (r *PostgresCredentialStore) FindByEmail(ctx context.Context, email string, role model.Role) (model.Credential, error) {
	return r.findOne(ctx,
		`SELECT id, role, coalesce(username, ''), coalesce(email, ''), name, password_hash, created_at
		 FROM credentials WHERE lower(email) = lower($1) AND role = $2`,
		strings.TrimSpace(email), string(role))
}

func (r *PostgresCredentialStore) findOne(ctx context.Context, query string, args ...any) (model.Credential, error) {
	var (
		c    model.Credential
		role string
	)
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&c.ID, &role, &c.Username, &c.Email, &c.Name, &c.PasswordHash, &c.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Credential{}, model.ErrCredentialNotFound
	}
	if err != nil {
		return model.Credential{}, fmt.Errorf("find credential: %w", err)
	}

	c.Role = model.Role(role)
	if c.Name == "" {
		c.Name = c.Username
	}
	return c, nil
}

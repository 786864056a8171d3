package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"edu-backoffice/internal/model"
)

// StaticCredentialStore serves credentials from a JSON file loaded at startup.
// The file is an array of {id, role, name, email, username, password_hash}.
type StaticCredentialStore struct {
	byUsername map[string]model.Credential
	byEmail    map[string]model.Credential
}

func NewStaticCredentialStore(credentials []model.Credential) (*StaticCredentialStore, error) {
	store := &StaticCredentialStore{
		byUsername: make(map[string]model.Credential),
		byEmail:    make(map[string]model.Credential),
	}

	for i, credential := range credentials {
		if !credential.Role.Valid() {
			return nil, fmt.Errorf("credential %d: unknown role %q", i, credential.Role)
		}
		if strings.TrimSpace(credential.PasswordHash) == "" {
			return nil, fmt.Errorf("credential %d: password_hash is required", i)
		}
		if credential.ID == "" {
			return nil, fmt.Errorf("credential %d: id is required", i)
		}

		if credential.Username != "" {
			key := credentialKey(credential.Username, credential.Role)
			if _, dup := store.byUsername[key]; dup {
				return nil, fmt.Errorf("credential %d: duplicate username %q for role %s", i, credential.Username, credential.Role)
			}
			store.byUsername[key] = credential
		}
		if credential.Email != "" {
			key := credentialKey(credential.Email, credential.Role)
			if _, dup := store.byEmail[key]; dup {
				return nil, fmt.Errorf("credential %d: duplicate email %q for role %s", i, credential.Email, credential.Role)
			}
			store.byEmail[key] = credential
		}
	}

	return store, nil
}

// LoadStaticCredentials reads and validates the credentials file at path.
func LoadStaticCredentials(path string) (*StaticCredentialStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	var credentials []model.Credential
	if err := json.Unmarshal(raw, &credentials); err != nil {
		return nil, fmt.Errorf("decode credentials file: %w", err)
	}

	return NewStaticCredentialStore(credentials)
}

func (s *StaticCredentialStore) FindByUsername(_ context.Context, username string, role model.Role) (model.Credential, error) {
	credential, ok := s.byUsername[credentialKey(username, role)]
	if !ok {
		return model.Credential{}, model.ErrCredentialNotFound
	}
	return credential, nil
}

func (s *StaticCredentialStore) FindByEmail(_ context.Context, email string, role model.Role) (model.Credential, error) {
	credential, ok := s.byEmail[credentialKey(email, role)]
	if !ok {
		return model.Credential{}, model.ErrCredentialNotFound
	}
	return credential, nil
}

func credentialKey(identifier string, role model.Role) string {
	return string(role) + "|" + strings.ToLower(strings.TrimSpace(identifier))
}

package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"edu-backoffice/internal/model"
)

// Storage keeps one Markdown file per post under a single root directory.
type Storage struct {
	validator *PathValidator
}

func New(root string) (*Storage, error) {
	validator, err := NewPathValidator(root)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(validator.RootAbs(), 0o755); err != nil {
		return nil, fmt.Errorf("create blog root: %w", err)
	}

	return &Storage{validator: validator}, nil
}

func (s *Storage) RootAbs() string {
	return s.validator.RootAbs()
}

func (s *Storage) Resolve(slug string) (string, error) {
	return s.validator.ResolveSlug(slug)
}

func (s *Storage) Exists(slug string) (bool, error) {
	resolved, err := s.Resolve(slug)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(resolved)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat post %q: %w", slug, err)
	}

	return info.Mode().IsRegular(), nil
}

func (s *Storage) Read(slug string) ([]byte, error) {
	resolved, err := s.Resolve(slug)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolved)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read post %q: %w", slug, err)
	}

	return data, nil
}

// Write replaces the post file through a temp file and rename so readers
// never observe a half-written document.
func (s *Storage) Write(slug string, data []byte) error {
	resolved, err := s.Resolve(slug)
	if err != nil {
		return err
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".post-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write post %q: %w", slug, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close post %q: %w", slug, err)
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod post %q: %w", slug, err)
	}

	if err := os.Rename(tmpName, resolved); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename post %q: %w", slug, err)
	}

	return nil
}

func (s *Storage) Remove(slug string) error {
	resolved, err := s.Resolve(slug)
	if err != nil {
		return err
	}

	err = os.Remove(resolved)
	if errors.Is(err, fs.ErrNotExist) {
		return model.ErrPostNotFound
	}
	if err != nil {
		return fmt.Errorf("remove post %q: %w", slug, err)
	}

	return nil
}

// List returns the slugs of every post file directly under the root, sorted.
func (s *Storage) List() ([]string, error) {
	entries, err := os.ReadDir(s.RootAbs())
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	slugs := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, postExtension) {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(name, postExtension))
	}

	sort.Strings(slugs)
	return slugs, nil
}

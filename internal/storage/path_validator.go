package storage

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"unicode"

	"edu-backoffice/pkg/apierror"
)

const postExtension = ".md"

// PathValidator maps post slugs to files and guarantees the result stays
// inside the posts root.
type PathValidator struct {
	rootAbs string
}

func NewPathValidator(root string) (*PathValidator, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("root path cannot be empty")
	}

	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve blog root: %w", err)
	}

	return &PathValidator{rootAbs: filepath.Clean(rootAbs)}, nil
}

func (v *PathValidator) RootAbs() string {
	return v.rootAbs
}

// ResolveSlug returns the absolute path of the post file for slug. Any ".."
// segment is refused before the filesystem is consulted, so the answer does
// not depend on what exists at the traversal target.
func (v *PathValidator) ResolveSlug(slug string) (string, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(slug), `\`, "/")
	if normalized == "" {
		return "", apierror.New("INVALID_SLUG", "slug is required", "", http.StatusBadRequest)
	}

	if strings.Contains(normalized, "\x00") || hasControlCharacters(normalized) {
		return "", apierror.New("INVALID_SLUG", "slug contains invalid characters", slug, http.StatusBadRequest)
	}

	for _, segment := range strings.Split(normalized, "/") {
		if segment == ".." {
			return "", apierror.Forbidden("PATH_TRAVERSAL", "Forbidden", "path traversal attempt detected")
		}
	}

	cleanRel := filepath.Clean(strings.TrimPrefix(normalized, "/"))
	if cleanRel == "." || cleanRel == "" {
		return "", apierror.New("INVALID_SLUG", "slug is required", slug, http.StatusBadRequest)
	}

	resolvedAbs, err := filepath.Abs(filepath.Join(v.rootAbs, cleanRel+postExtension))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	if !isWithinRoot(v.rootAbs, resolvedAbs) {
		return "", apierror.Forbidden("PATH_TRAVERSAL", "Forbidden", "resolved path is outside the blog root")
	}

	return resolvedAbs, nil
}

func hasControlCharacters(value string) bool {
	for _, char := range value {
		if unicode.IsControl(char) {
			return true
		}
	}

	return false
}

func isWithinRoot(rootAbs string, candidateAbs string) bool {
	if candidateAbs == rootAbs {
		return false
	}

	rootWithSeparator := rootAbs + string(filepath.Separator)
	return strings.HasPrefix(candidateAbs, rootWithSeparator)
}

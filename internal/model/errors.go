package model

import "errors"

var (
	// Credential / session errors
	ErrCredentialNotFound = errors.New("credential not found")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrUnauthorized       = errors.New("unauthorized")

	// Blog related errors
	ErrPostNotFound = errors.New("blog post not found")
)

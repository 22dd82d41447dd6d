package store

import "errors"

var (
	ErrNotAuthenticated = errors.New("no active session")
	ErrLogNotFound      = errors.New("log not found")
)

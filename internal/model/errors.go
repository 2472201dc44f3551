package model

import "errors"

// Error kinds surfaced by the social network operations
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

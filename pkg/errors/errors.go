package cartalk_errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrUpstream      = errors.New("upstream unavailable")
	ErrRateLimited   = errors.New("rate limited")
)

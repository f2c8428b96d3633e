package userinfo

import "errors"

var (
	ErrNotFound    = errors.New("user info not found")
	ErrIDExists    = errors.New("a new user info cannot already have an id")
	ErrIDRequired  = errors.New("user info id is required")
	ErrInvalidSort = errors.New("invalid sort property")
)

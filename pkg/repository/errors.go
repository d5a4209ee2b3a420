package repository

import "errors"

var (
	// ErrNotFound means no account exists for the given key.
	ErrNotFound = errors.New("account not found")

	// ErrDuplicateAccount means an insert collided with an existing account_name.
	ErrDuplicateAccount = errors.New("account_name already exists")

	// ErrUnavailable wraps connection or query failures from the store.
	ErrUnavailable = errors.New("score store unavailable")
)

package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that a user with this email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTaskNotFound indicates that the task does not exist or is not
	// owned by the requesting user. The two cases are deliberately not
	// distinguished.
	ErrTaskNotFound = errors.New("task not found")
)

package services

import "errors"

var (
	// ErrForbidden means the caller is authenticated but does not own the
	// entity it is trying to mutate.
	ErrForbidden = errors.New("forbidden")

	// ErrAlreadyJoined means a join record already exists for the
	// (user, challenge) pair. Joining twice is rejected, not silently
	// accepted.
	ErrAlreadyJoined = errors.New("user already joined this challenge")

	// ErrInvalidProgress means a progress value outside [0, 100].
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
)

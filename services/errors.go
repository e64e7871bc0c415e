package services

import "errors"

var (
	// ErrInvalidInput flags a missing required field.
	ErrInvalidInput = errors.New("username and password are required")
	// ErrUsernameTaken is returned when registration loses the uniqueness race.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials covers both unknown user and wrong password so a
	// login response never reveals which one failed.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidFocusScore rejects focus scores outside 1-10.
	ErrInvalidFocusScore = errors.New("focus score must be between 1 and 10")
	// ErrInvalidStudyTime rejects negative study minutes.
	ErrInvalidStudyTime = errors.New("study time must be zero or more minutes")
)

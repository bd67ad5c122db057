package service

import "errors"

var (
	// ErrTestNotFound is returned when a test id has no matching row or no
	// answer-key record.
	ErrTestNotFound = errors.New("test not found")
	// ErrTestInactive is returned when a test exists but is closed for attempts.
	ErrTestInactive = errors.New("test is not active")
	// ErrAttemptNotFound is returned when an attempt id does not exist.
	ErrAttemptNotFound = errors.New("test attempt not found")
	// ErrNotAttemptOwner is returned when a user requests someone else's attempt.
	ErrNotAttemptOwner = errors.New("attempt belongs to another user")
	// ErrInvalidCredentials is returned for unknown users or wrong passwords.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken is returned when registering with an existing username.
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrUserBanned is returned when a banned user tries to authenticate.
	ErrUserBanned = errors.New("user account is banned")
	// ErrInvalidToken is returned when a token fails verification.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrInvalidTestDefinition wraps test-content validation failures so
	// controllers can tell a bad request from a storage error.
	ErrInvalidTestDefinition = errors.New("invalid test definition")
)

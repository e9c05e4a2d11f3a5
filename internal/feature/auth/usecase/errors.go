// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by id, username or email.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when registering with an email that is already taken.
	ErrEmailAlreadyExists = errors.New("user with this email already exists")

	// ErrUsernameAlreadyExists is returned when registering with a username that is already taken.
	ErrUsernameAlreadyExists = errors.New("user with this username already exists")

	// ErrInvalidCredentials is returned when the email or password does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailNotVerified is returned when a user logs in before confirming their email.
	ErrEmailNotVerified = errors.New("email not verified")

	// ErrInvalidConfirmationToken is returned when a confirmation token is
	// malformed, expired, or names a user that does not exist. The three cases
	// are deliberately indistinguishable to the caller.
	ErrInvalidConfirmationToken = errors.New("email verification failed")

	// ErrInvalidAccessToken is returned when a bearer token cannot be resolved
	// to an existing user.
	ErrInvalidAccessToken = errors.New("invalid access token")
)

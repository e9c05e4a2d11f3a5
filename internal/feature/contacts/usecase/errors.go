// Package usecase implements the business logic for the contacts feature.
package usecase

import "errors"

// ErrContactNotFound is returned when a contact does not exist or belongs to
// another user. The two cases are indistinguishable on purpose.
var ErrContactNotFound = errors.New("contact not found")

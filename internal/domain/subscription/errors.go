package subscription

import "errors"

var (
	// ErrRecordNotFound is returned when no subscription record matches the lookup
	ErrRecordNotFound = errors.New("subscription record not found")

	// ErrInvalidUserID is returned when the user ID is empty
	ErrInvalidUserID = errors.New("user ID is required")
)

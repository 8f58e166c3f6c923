package dream

import "errors"

var (
	// ErrDreamNotFound is returned when the dream does not exist or belongs to another user
	ErrDreamNotFound = errors.New("dream not found")

	ErrInvalidUserID  = errors.New("user ID is required")
	ErrEmptyContent   = errors.New("dream text is required")
	ErrContentTooLong = errors.New("dream text is too long")
	ErrTooManyTags    = errors.New("too many tags")
)

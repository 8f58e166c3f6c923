package entitlement

import "errors"

var (
	// ErrEntitlementNotFound is returned when no profile row exists for the user
	ErrEntitlementNotFound = errors.New("entitlement not found")

	// ErrInsufficientBalance is returned by a debit that found the free balance at zero
	ErrInsufficientBalance = errors.New("insufficient free insight balance")

	// ErrInvalidStatus is returned when an invalid subscription status is provided
	ErrInvalidStatus = errors.New("invalid subscription status")

	// ErrNegativeBalance is returned when reconstructing a row with a negative balance
	ErrNegativeBalance = errors.New("free insight balance cannot be negative")

	// ErrInvalidUserID is returned when the user ID is empty
	ErrInvalidUserID = errors.New("user ID is required")
)

package entitlement

import "context"

// Repository defines persistence of entitlements (the profiles table).
type Repository interface {
	// Create inserts the entitlement of a new account. Creating an existing user is a no-op.
	Create(ctx context.Context, e *Entitlement) error

	// GetByUserID retrieves an entitlement, returning ErrEntitlementNotFound when absent
	GetByUserID(ctx context.Context, userID string) (*Entitlement, error)

	// DebitFreeInsight atomically decrements the free balance by one if it is above zero
	// and returns the new balance. A zero balance yields ErrInsufficientBalance.
	DebitFreeInsight(ctx context.Context, userID string) (int, error)

	// SetSubscriptionStatus overwrites the subscription status
	SetSubscriptionStatus(ctx context.Context, userID string, status SubscriptionStatus) error

	// ResetFreeInsights assigns the initial grant to the free balance
	ResetFreeInsights(ctx context.Context, userID string) error
}

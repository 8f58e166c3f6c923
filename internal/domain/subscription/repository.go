package subscription

import "context"

// Repository defines persistence of subscription records.
type Repository interface {
	// GetByUserID returns ErrRecordNotFound when the user has no record yet
	GetByUserID(ctx context.Context, userID string) (*Record, error)

	// GetByCustomerID resolves a processor customer to its record
	GetByCustomerID(ctx context.Context, customerID string) (*Record, error)

	// Upsert inserts the record or overwrites the existing row for the same user.
	// All fields are written; the last writer wins.
	Upsert(ctx context.Context, r *Record) error

	// UpsertProcessorState inserts the record or overwrites only the columns the
	// processor owns: customer, subscription, plan and period end. The audit payload
	// of an existing row is left untouched.
	UpsertProcessorState(ctx context.Context, r *Record) error

	// EnsureFree creates a free record for the user unless one already exists
	EnsureFree(ctx context.Context, userID string) error
}

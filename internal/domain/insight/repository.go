package insight

import "context"

// Repository persists insights. Insights are immutable, so there is no update or delete.
type Repository interface {
	Create(ctx context.Context, i *Insight) error

	// ListByDream returns the dream's insights, newest first
	ListByDream(ctx context.Context, dreamID string) ([]*Insight, error)
}

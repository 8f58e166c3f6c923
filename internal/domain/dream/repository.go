package dream

import "context"

// Repository defines persistence of dream entries and their metadata.
// Reads are always scoped to the owning user.
type Repository interface {
	// Create stores the entry and, when non-nil, its metadata in one unit of work
	Create(ctx context.Context, entry *Entry, metadata *Metadata) error

	// GetByID returns ErrDreamNotFound when the dream is absent or not owned by userID
	GetByID(ctx context.Context, userID, dreamID string) (*Entry, error)

	// GetMetadata returns nil, nil when the dream has no metadata
	GetMetadata(ctx context.Context, dreamID string) (*Metadata, error)

	// ListByUser returns a page of the user's dreams, newest recorded first
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*Entry, int64, error)
}

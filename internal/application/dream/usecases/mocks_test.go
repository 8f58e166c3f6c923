package usecases

import (
	"context"
	"errors"
	"sort"

	"github.com/dreamlog-app/dreamlog/internal/domain/dream"
	"github.com/dreamlog-app/dreamlog/internal/domain/insight"
)

type mockDreamRepository struct {
	entries   []*dream.Entry
	metadata  map[string]*dream.Metadata
	CreateErr error
}

func newMockDreamRepository() *mockDreamRepository {
	return &mockDreamRepository{metadata: make(map[string]*dream.Metadata)}
}

func (m *mockDreamRepository) Create(ctx context.Context, entry *dream.Entry, metadata *dream.Metadata) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.entries = append(m.entries, entry)
	if metadata != nil {
		m.metadata[entry.ID()] = metadata
	}
	return nil
}

func (m *mockDreamRepository) GetByID(ctx context.Context, userID, dreamID string) (*dream.Entry, error) {
	for _, e := range m.entries {
		if e.ID() == dreamID && e.UserID() == userID {
			return e, nil
		}
	}
	return nil, dream.ErrDreamNotFound
}

func (m *mockDreamRepository) GetMetadata(ctx context.Context, dreamID string) (*dream.Metadata, error) {
	return m.metadata[dreamID], nil
}

func (m *mockDreamRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*dream.Entry, int64, error) {
	var own []*dream.Entry
	for _, e := range m.entries {
		if e.UserID() == userID {
			own = append(own, e)
		}
	}
	sort.Slice(own, func(i, j int) bool { return own[i].RecordedAt().After(own[j].RecordedAt()) })

	start := (page - 1) * pageSize
	if start >= len(own) {
		return []*dream.Entry{}, int64(len(own)), nil
	}
	end := start + pageSize
	if end > len(own) {
		end = len(own)
	}
	return own[start:end], int64(len(own)), nil
}

type mockInsightRepository struct {
	byDream map[string][]*insight.Insight
	ListErr error
}

func (m *mockInsightRepository) Create(ctx context.Context, i *insight.Insight) error {
	return errors.New("not used")
}

func (m *mockInsightRepository) ListByDream(ctx context.Context, dreamID string) ([]*insight.Insight, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.byDream[dreamID], nil
}

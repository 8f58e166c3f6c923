package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/dreamlog-app/dreamlog/internal/application/insight/analyzer"
	"github.com/dreamlog-app/dreamlog/internal/domain/dream"
	"github.com/dreamlog-app/dreamlog/internal/domain/entitlement"
	"github.com/dreamlog-app/dreamlog/internal/domain/insight"
)

type mockGate struct {
	AuthorizeFunc func(ctx context.Context, userID string) (entitlement.Decision, error)
	CommitFunc    func(ctx context.Context, decision entitlement.Decision) (entitlement.Snapshot, error)

	commits int
}

func (m *mockGate) Authorize(ctx context.Context, userID string) (entitlement.Decision, error) {
	if m.AuthorizeFunc != nil {
		return m.AuthorizeFunc(ctx, userID)
	}
	return entitlement.Decision{UserID: userID, Allowed: true, Tier: entitlement.SubscriptionStatusFree, Balance: 5}, nil
}

func (m *mockGate) Commit(ctx context.Context, decision entitlement.Decision) (entitlement.Snapshot, error) {
	m.commits++
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx, decision)
	}
	return entitlement.Snapshot{FreeInsightBalance: decision.Balance - 1, SubscriptionStatus: decision.Tier}, nil
}

type mockDreamRepository struct {
	entries  map[string]*dream.Entry
	metadata map[string]*dream.Metadata
}

func newMockDreamRepository(entries ...*dream.Entry) *mockDreamRepository {
	m := &mockDreamRepository{
		entries:  make(map[string]*dream.Entry),
		metadata: make(map[string]*dream.Metadata),
	}
	for _, e := range entries {
		m.entries[e.ID()] = e
	}
	return m
}

func (m *mockDreamRepository) Create(ctx context.Context, entry *dream.Entry, metadata *dream.Metadata) error {
	m.entries[entry.ID()] = entry
	if metadata != nil {
		m.metadata[entry.ID()] = metadata
	}
	return nil
}

func (m *mockDreamRepository) GetByID(ctx context.Context, userID, dreamID string) (*dream.Entry, error) {
	e, ok := m.entries[dreamID]
	if !ok || e.UserID() != userID {
		return nil, dream.ErrDreamNotFound
	}
	return e, nil
}

func (m *mockDreamRepository) GetMetadata(ctx context.Context, dreamID string) (*dream.Metadata, error) {
	return m.metadata[dreamID], nil
}

func (m *mockDreamRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*dream.Entry, int64, error) {
	var out []*dream.Entry
	for _, e := range m.entries {
		if e.UserID() == userID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

type mockInsightRepository struct {
	mu        sync.Mutex
	CreateErr error
	created   []*insight.Insight
}

func (m *mockInsightRepository) Create(ctx context.Context, i *insight.Insight) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.created = append(m.created, i)
	return nil
}

func (m *mockInsightRepository) ListByDream(ctx context.Context, dreamID string) ([]*insight.Insight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*insight.Insight
	for i := len(m.created) - 1; i >= 0; i-- {
		if m.created[i].DreamID() == dreamID {
			out = append(out, m.created[i])
		}
	}
	return out, nil
}

type mockAnalyzer struct {
	AnalyzeFunc func(ctx context.Context, req analyzer.Request) (*insight.Analysis, error)

	lastRequest analyzer.Request
}

func (m *mockAnalyzer) Analyze(ctx context.Context, req analyzer.Request) (*insight.Analysis, error) {
	m.lastRequest = req
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, req)
	}
	return &insight.Analysis{
		Summary:                "A dream about open water.",
		EmotionalTone:          "calm, curious",
		SymbolicInterpretation: "Water may reflect feeling.",
		FullAnalysis:           "**Open water** invites reflection.",
	}, nil
}

func (m *mockAnalyzer) Model() string { return "gemini-test" }

func newEntry(userID, content string) *dream.Entry {
	e, err := dream.NewEntry(userID, "", content, time.Now())
	if err != nil {
		panic(err)
	}
	return e
}

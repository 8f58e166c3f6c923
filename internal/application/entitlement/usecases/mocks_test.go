package usecases

import (
	"context"

	"github.com/dreamlog-app/dreamlog/internal/domain/entitlement"
	"github.com/dreamlog-app/dreamlog/internal/domain/subscription"
)

type mockEntitlementRepository struct {
	CreateFunc                func(ctx context.Context, e *entitlement.Entitlement) error
	GetByUserIDFunc           func(ctx context.Context, userID string) (*entitlement.Entitlement, error)
	DebitFreeInsightFunc      func(ctx context.Context, userID string) (int, error)
	SetSubscriptionStatusFunc func(ctx context.Context, userID string, status entitlement.SubscriptionStatus) error
	ResetFreeInsightsFunc     func(ctx context.Context, userID string) error
}

func (m *mockEntitlementRepository) Create(ctx context.Context, e *entitlement.Entitlement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	return nil
}

func (m *mockEntitlementRepository) GetByUserID(ctx context.Context, userID string) (*entitlement.Entitlement, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, entitlement.ErrEntitlementNotFound
}

func (m *mockEntitlementRepository) DebitFreeInsight(ctx context.Context, userID string) (int, error) {
	if m.DebitFreeInsightFunc != nil {
		return m.DebitFreeInsightFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockEntitlementRepository) SetSubscriptionStatus(ctx context.Context, userID string, status entitlement.SubscriptionStatus) error {
	if m.SetSubscriptionStatusFunc != nil {
		return m.SetSubscriptionStatusFunc(ctx, userID, status)
	}
	return nil
}

func (m *mockEntitlementRepository) ResetFreeInsights(ctx context.Context, userID string) error {
	if m.ResetFreeInsightsFunc != nil {
		return m.ResetFreeInsightsFunc(ctx, userID)
	}
	return nil
}

type mockSubscriptionRepository struct {
	GetByUserIDFunc     func(ctx context.Context, userID string) (*subscription.Record, error)
	GetByCustomerIDFunc func(ctx context.Context, customerID string) (*subscription.Record, error)
	UpsertFunc          func(ctx context.Context, r *subscription.Record) error
	UpsertStateFunc     func(ctx context.Context, r *subscription.Record) error
	EnsureFreeFunc      func(ctx context.Context, userID string) error
}

func (m *mockSubscriptionRepository) GetByUserID(ctx context.Context, userID string) (*subscription.Record, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, subscription.ErrRecordNotFound
}

func (m *mockSubscriptionRepository) GetByCustomerID(ctx context.Context, customerID string) (*subscription.Record, error) {
	if m.GetByCustomerIDFunc != nil {
		return m.GetByCustomerIDFunc(ctx, customerID)
	}
	return nil, subscription.ErrRecordNotFound
}

func (m *mockSubscriptionRepository) Upsert(ctx context.Context, r *subscription.Record) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, r)
	}
	return nil
}

func (m *mockSubscriptionRepository) UpsertProcessorState(ctx context.Context, r *subscription.Record) error {
	if m.UpsertStateFunc != nil {
		return m.UpsertStateFunc(ctx, r)
	}
	return nil
}

func (m *mockSubscriptionRepository) EnsureFree(ctx context.Context, userID string) error {
	if m.EnsureFreeFunc != nil {
		return m.EnsureFreeFunc(ctx, userID)
	}
	return nil
}

type mockTransactor struct{}

func (mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// balanceRepo returns a mock backed by a single in-memory row.
func balanceRepo(userID string, status entitlement.SubscriptionStatus, balance *int) *mockEntitlementRepository {
	return &mockEntitlementRepository{
		GetByUserIDFunc: func(ctx context.Context, id string) (*entitlement.Entitlement, error) {
			if id != userID {
				return nil, entitlement.ErrEntitlementNotFound
			}
			return entitlement.ReconstructEntitlement(userID, userID+"@example.com", "", *balance, status, fixedTime)
		},
		DebitFreeInsightFunc: func(ctx context.Context, id string) (int, error) {
			if *balance <= 0 {
				return 0, entitlement.ErrInsufficientBalance
			}
			*balance--
			return *balance, nil
		},
	}
}

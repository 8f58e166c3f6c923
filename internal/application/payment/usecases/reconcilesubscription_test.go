package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamlog-app/dreamlog/internal/domain/entitlement"
	"github.com/dreamlog-app/dreamlog/internal/domain/payment"
	"github.com/dreamlog-app/dreamlog/internal/domain/subscription"
	apperrors "github.com/dreamlog-app/dreamlog/internal/shared/errors"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

func newReconcileUseCase(store *memoryStore, gw *mockPaymentGateway) *ReconcileSubscriptionUseCase {
	return NewReconcileSubscriptionUseCase(
		memoryProfiles{store},
		memorySubscriptions{store},
		gw,
		inlineTransactor{},
		"",
		logger.NewNopLogger(),
	)
}

func appErrorCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func TestReconcileSubscription_ActivatesFromProcessor(t *testing.T) {
	periodEnd := time.Date(2026, 11, 17, 0, 0, 0, 0, time.UTC)
	store := newMemoryStore()
	store.addProfile("user-1", "a@example.com", 0, entitlement.SubscriptionStatusFree)
	store.addRecord("user-1", "cus_1", "", subscription.PlanFree)

	gw := &mockPaymentGateway{
		LatestSubscriptionFunc: func(ctx context.Context, customerID string) (*payment.SubscriptionSnapshot, error) {
			assert.Equal(t, "cus_1", customerID)
			return &payment.SubscriptionSnapshot{
				ID:               "sub_9",
				CustomerID:       "cus_1",
				Status:           subscription.ProcessorStatusActive,
				CurrentPeriodEnd: &periodEnd,
			}, nil
		},
	}

	result, err := newReconcileUseCase(store, gw).Execute(context.Background(), ReconcileSubscriptionCommand{AuthUserID: "user-1"})
	require.NoError(t, err)

	assert.Equal(t, "Subscription synced successfully", result.Message)
	assert.Equal(t, "active", result.SubscriptionStatus)
	assert.Equal(t, "sub_9", result.SubscriptionID)
	assert.Equal(t, "cus_1", result.CustomerID)

	assert.Equal(t, entitlement.SubscriptionStatusActive, store.profile("user-1").status)
	rec := store.record("user-1")
	assert.Equal(t, "sub_9", rec.SubscriptionID())
	assert.Equal(t, subscription.PlanUnlimitedPro, rec.PlanName())
	assert.True(t, periodEnd.Equal(*rec.CurrentPeriodEnd()))
}

func TestReconcileSubscription_ResolvesCustomerByEmail(t *testing.T) {
	store := newMemoryStore()
	store.addProfile("user-1", "a@example.com", 5, entitlement.SubscriptionStatusFree)

	gw := &mockPaymentGateway{
		FindCustomerByEmailFunc: func(ctx context.Context, email string) (string, error) {
			assert.Equal(t, "a@example.com", email)
			return "cus_found", nil
		},
		LatestSubscriptionFunc: func(ctx context.Context, customerID string) (*payment.SubscriptionSnapshot, error) {
			return &payment.SubscriptionSnapshot{ID: "sub_1", Status: subscription.ProcessorStatusTrialing}, nil
		},
	}

	result, err := newReconcileUseCase(store, gw).Execute(context.Background(), ReconcileSubscriptionCommand{AuthUserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, "cus_found", result.CustomerID)

	rec := store.record("user-1")
	require.NotNil(t, rec, "record is created when absent")
	assert.Equal(t, "cus_found", rec.CustomerID())
	assert.Equal(t, entitlement.SubscriptionStatusActive, store.profile("user-1").status)
}

func TestReconcileSubscription_NoSubscriptionKeepsBalance(t *testing.T) {
	store := newMemoryStore()
	store.addProfile("user-1", "a@example.com", 2, entitlement.SubscriptionStatusActive)
	store.addRecord("user-1", "cus_1", "sub_old", subscription.PlanUnlimitedPro)

	result, err := newReconcileUseCase(store, &mockPaymentGateway{}).Execute(context.Background(), ReconcileSubscriptionCommand{AuthUserID: "user-1"})
	require.NoError(t, err)

	assert.Equal(t, "free", result.SubscriptionStatus)
	assert.Empty(t, result.SubscriptionID)

	p := store.profile("user-1")
	assert.Equal(t, entitlement.SubscriptionStatusFree, p.status)
	assert.Equal(t, 2, p.balance)

	rec := store.record("user-1")
	assert.Empty(t, rec.SubscriptionID())
	assert.Equal(t, subscription.PlanFree, rec.PlanName())
}

func TestReconcileSubscription_CanceledSubscriptionIsUnlinked(t *testing.T) {
	store := newMemoryStore()
	store.addProfile("user-1", "a@example.com", 0, entitlement.SubscriptionStatusActive)
	store.addRecord("user-1", "cus_1", "sub_1", subscription.PlanUnlimitedPro)

	gw := &mockPaymentGateway{
		LatestSubscriptionFunc: func(ctx context.Context, customerID string) (*payment.SubscriptionSnapshot, error) {
			return &payment.SubscriptionSnapshot{ID: "sub_1", Status: subscription.ProcessorStatusCanceled}, nil
		},
	}

	result, err := newReconcileUseCase(store, gw).Execute(context.Background(), ReconcileSubscriptionCommand{AuthUserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, "free", result.SubscriptionStatus)
	assert.Empty(t, store.record("user-1").SubscriptionID())
	assert.Equal(t, subscription.PlanFree, store.record("user-1").PlanName())
}

func TestReconcileSubscription_Errors(t *testing.T) {
	tests := []struct {
		name         string
		cmd          ReconcileSubscriptionCommand
		gateway      *mockPaymentGateway
		withRecord   bool
		expectedCode int
	}{
		{
			name:         "unauthenticated",
			cmd:          ReconcileSubscriptionCommand{},
			gateway:      &mockPaymentGateway{},
			expectedCode: 401,
		},
		{
			name:         "other user requested",
			cmd:          ReconcileSubscriptionCommand{AuthUserID: "user-1", RequestedUserID: "user-2"},
			gateway:      &mockPaymentGateway{},
			expectedCode: 403,
		},
		{
			name:         "no customer anywhere",
			cmd:          ReconcileSubscriptionCommand{AuthUserID: "user-1"},
			gateway:      &mockPaymentGateway{},
			expectedCode: 404,
		},
		{
			name:         "foreign customer hint",
			cmd:          ReconcileSubscriptionCommand{AuthUserID: "user-1", CustomerID: "cus_other"},
			gateway:      &mockPaymentGateway{},
			withRecord:   true,
			expectedCode: 403,
		},
		{
			name: "processor unavailable",
			cmd:  ReconcileSubscriptionCommand{AuthUserID: "user-1"},
			gateway: &mockPaymentGateway{
				LatestSubscriptionFunc: func(ctx context.Context, customerID string) (*payment.SubscriptionSnapshot, error) {
					return nil, errors.New("connection reset")
				},
			},
			withRecord:   true,
			expectedCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			store.addProfile("user-1", "a@example.com", 5, entitlement.SubscriptionStatusFree)
			if tt.withRecord {
				store.addRecord("user-1", "cus_1", "", subscription.PlanFree)
			}

			result, err := newReconcileUseCase(store, tt.gateway).Execute(context.Background(), tt.cmd)
			assert.Nil(t, result)
			require.Error(t, err)
			assert.Equal(t, tt.expectedCode, appErrorCode(t, err))
			assert.Equal(t, 0, store.writes)
		})
	}
}

func TestReconcileSubscription_NotFoundMessage(t *testing.T) {
	store := newMemoryStore()
	store.addProfile("user-1", "a@example.com", 5, entitlement.SubscriptionStatusFree)

	_, err := newReconcileUseCase(store, &mockPaymentGateway{}).Execute(context.Background(), ReconcileSubscriptionCommand{AuthUserID: "user-1"})
	require.Error(t, err)
	assert.Equal(t, "No Stripe customer found. Please complete checkout first.", err.(*apperrors.AppError).Message)
}

func TestReconcileSubscription_KeepsWebhookPayloadWrittenDuringProcessorCall(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	store.addProfile("user-1", "a@example.com", 5, entitlement.SubscriptionStatusFree)
	subs := memorySubscriptions{store}

	rec, err := subscription.NewRecord("user-1")
	require.NoError(t, err)
	rec.LinkCheckout("cus_1", "sub_1", subscription.PlanUnlimitedPro, []byte(`{"id":"evt_old"}`))
	require.NoError(t, subs.Upsert(ctx, rec))

	periodEnd := time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC)
	gw := &mockPaymentGateway{
		LatestSubscriptionFunc: func(ctx context.Context, customerID string) (*payment.SubscriptionSnapshot, error) {
			// a webhook is applied while the processor call is in flight
			current, err := subs.GetByUserID(ctx, "user-1")
			require.NoError(t, err)
			current.ApplyPeriod(current.CurrentPeriodEnd(), []byte(`{"id":"evt_new"}`))
			require.NoError(t, subs.Upsert(ctx, current))

			return &payment.SubscriptionSnapshot{
				ID:               "sub_1",
				CustomerID:       "cus_1",
				Status:           subscription.ProcessorStatusActive,
				CurrentPeriodEnd: &periodEnd,
			}, nil
		},
	}

	_, err = newReconcileUseCase(store, gw).Execute(ctx, ReconcileSubscriptionCommand{AuthUserID: "user-1"})
	require.NoError(t, err)

	got := store.record("user-1")
	assert.JSONEq(t, `{"id":"evt_new"}`, string(got.LastEventPayload()))
	assert.Equal(t, "sub_1", got.SubscriptionID())
	require.NotNil(t, got.CurrentPeriodEnd())
	assert.True(t, periodEnd.Equal(*got.CurrentPeriodEnd()))
	assert.Equal(t, entitlement.SubscriptionStatusActive, store.profile("user-1").status)
}

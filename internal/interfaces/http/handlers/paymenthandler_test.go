package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamlog-app/dreamlog/internal/application/payment/usecases"
	"github.com/dreamlog-app/dreamlog/internal/domain/payment"
	"github.com/dreamlog-app/dreamlog/internal/interfaces/http/handlers/testutil"
	"github.com/dreamlog-app/dreamlog/internal/shared/constants"
	"github.com/dreamlog-app/dreamlog/internal/shared/errors"
)

type mockHandlePaymentEventUC struct {
	result    *usecases.HandlePaymentEventResult
	err       error
	payload   []byte
	signature string
	calls     int
}

func (m *mockHandlePaymentEventUC) Execute(ctx context.Context, payload []byte, signature string) (*usecases.HandlePaymentEventResult, error) {
	m.calls++
	m.payload = payload
	m.signature = signature
	return m.result, m.err
}

type mockCreateCheckoutSessionUC struct {
	result *usecases.CreateCheckoutSessionResult
	err    error
	got    usecases.CreateCheckoutSessionCommand
}

func (m *mockCreateCheckoutSessionUC) Execute(ctx context.Context, cmd usecases.CreateCheckoutSessionCommand) (*usecases.CreateCheckoutSessionResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockReconcileSubscriptionUC struct {
	result *usecases.ReconcileSubscriptionResult
	err    error
	got    usecases.ReconcileSubscriptionCommand
}

func (m *mockReconcileSubscriptionUC) Execute(ctx context.Context, cmd usecases.ReconcileSubscriptionCommand) (*usecases.ReconcileSubscriptionResult, error) {
	m.got = cmd
	return m.result, m.err
}

func newTestPaymentHandler(
	events *mockHandlePaymentEventUC,
	checkout *mockCreateCheckoutSessionUC,
	reconcile *mockReconcileSubscriptionUC,
) *PaymentHandler {
	if events == nil {
		events = &mockHandlePaymentEventUC{}
	}
	if checkout == nil {
		checkout = &mockCreateCheckoutSessionUC{}
	}
	if reconcile == nil {
		reconcile = &mockReconcileSubscriptionUC{}
	}
	return NewPaymentHandler(events, checkout, reconcile, testutil.NewMockLogger())
}

func TestPaymentHandler_HandleWebhook_Acknowledged(t *testing.T) {
	events := &mockHandlePaymentEventUC{result: &usecases.HandlePaymentEventResult{
		EventID: "evt_1",
		Type:    payment.EventCheckoutCompleted,
		Applied: true,
	}}
	h := newTestPaymentHandler(events, nil, nil)

	body := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	c, w := testutil.NewRawTestContext(http.MethodPost, "/api/stripe/webhook", body)
	c.Request.Header.Set(constants.HeaderStripeSignature, "t=1,v1=abc")

	h.HandleWebhook(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())
	assert.Equal(t, body, events.payload)
	assert.Equal(t, "t=1,v1=abc", events.signature)
}

func TestPaymentHandler_HandleWebhook_InvalidSignature(t *testing.T) {
	events := &mockHandlePaymentEventUC{err: errors.NewSignatureInvalidError("Webhook Error", "signature mismatch")}
	h := newTestPaymentHandler(events, nil, nil)

	c, w := testutil.NewRawTestContext(http.MethodPost, "/api/stripe/webhook", []byte(`{}`))

	h.HandleWebhook(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, string(errors.ErrorTypeSignatureInvalid), resp.ErrorType)
}

func TestPaymentHandler_HandleWebhook_PayloadTooLarge(t *testing.T) {
	events := &mockHandlePaymentEventUC{}
	h := newTestPaymentHandler(events, nil, nil)

	c, w := testutil.NewRawTestContext(http.MethodPost, "/api/stripe/webhook", bytes.Repeat([]byte("a"), maxWebhookBodyBytes+1))

	h.HandleWebhook(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Zero(t, events.calls)
}

func TestPaymentHandler_HandleWebhook_StoreFailure(t *testing.T) {
	events := &mockHandlePaymentEventUC{err: errors.NewInternalError("Failed to apply payment event")}
	h := newTestPaymentHandler(events, nil, nil)

	c, w := testutil.NewRawTestContext(http.MethodPost, "/api/stripe/webhook", []byte(`{}`))

	h.HandleWebhook(c)

	// a non-2xx status makes Stripe redeliver the event
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPaymentHandler_CreateCheckoutSession(t *testing.T) {
	t.Run("uses caller identity and optional price", func(t *testing.T) {
		checkout := &mockCreateCheckoutSessionUC{result: &usecases.CreateCheckoutSessionResult{
			SessionID: "cs_test_1",
			URL:       "https://checkout.stripe.com/c/pay/cs_test_1",
		}}
		h := newTestPaymentHandler(nil, checkout, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/checkout-session", map[string]string{"priceId": "price_123"})
		testutil.SetAuthContext(c, "user-1", "user@example.com")

		h.CreateCheckoutSession(c)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, usecases.CreateCheckoutSessionCommand{
			UserID:  "user-1",
			Email:   "user@example.com",
			PriceID: "price_123",
		}, checkout.got)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		var data usecases.CreateCheckoutSessionResult
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, "cs_test_1", data.SessionID)
	})

	t.Run("empty body falls back to default price", func(t *testing.T) {
		checkout := &mockCreateCheckoutSessionUC{result: &usecases.CreateCheckoutSessionResult{SessionID: "cs_test_2"}}
		h := newTestPaymentHandler(nil, checkout, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/checkout-session", nil)
		testutil.SetAuthContext(c, "user-1", "user@example.com")

		h.CreateCheckoutSession(c)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, checkout.got.PriceID)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		h := newTestPaymentHandler(nil, nil, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/checkout-session", nil)

		h.CreateCheckoutSession(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestPaymentHandler_SyncSubscription(t *testing.T) {
	t.Run("passes hints with the authenticated caller", func(t *testing.T) {
		reconcile := &mockReconcileSubscriptionUC{result: &usecases.ReconcileSubscriptionResult{
			Message:            "Subscription synced successfully",
			SubscriptionStatus: "active",
			CustomerID:         "cus_1",
		}}
		h := newTestPaymentHandler(nil, nil, reconcile)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/sync-subscription", map[string]string{
			"userId":     "user-1",
			"customerId": "cus_1",
		})
		testutil.SetAuthContext(c, "user-1", "")

		h.SyncSubscription(c)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, usecases.ReconcileSubscriptionCommand{
			AuthUserID:      "user-1",
			RequestedUserID: "user-1",
			CustomerID:      "cus_1",
		}, reconcile.got)
	})

	t.Run("foreign user is forbidden", func(t *testing.T) {
		reconcile := &mockReconcileSubscriptionUC{err: errors.NewForbiddenError("Forbidden")}
		h := newTestPaymentHandler(nil, nil, reconcile)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/sync-subscription", map[string]string{"userId": "someone-else"})
		testutil.SetAuthContext(c, "user-1", "")

		h.SyncSubscription(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no customer found", func(t *testing.T) {
		reconcile := &mockReconcileSubscriptionUC{err: errors.NewNotFoundError("No Stripe customer found")}
		h := newTestPaymentHandler(nil, nil, reconcile)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/sync-subscription", nil)
		testutil.SetAuthContext(c, "user-1", "")

		h.SyncSubscription(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

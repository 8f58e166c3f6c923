package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamlog-app/dreamlog/internal/application/payment/paymentgateway"
	"github.com/dreamlog-app/dreamlog/internal/domain/subscription"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

func TestCreateCheckoutSession(t *testing.T) {
	store := newMemoryStore()
	store.addRecord("user-1", "cus_1", "", subscription.PlanFree)

	var captured paymentgateway.CheckoutRequest
	gw := &mockPaymentGateway{
		CreateCheckoutSessionFunc: func(ctx context.Context, req paymentgateway.CheckoutRequest) (*paymentgateway.CheckoutSession, error) {
			captured = req
			return &paymentgateway.CheckoutSession{ID: "cs_1", URL: "https://checkout.example/cs_1"}, nil
		},
	}
	uc := NewCreateCheckoutSessionUseCase(memorySubscriptions{store}, gw, "https://dreamlog.app/", "price_default", logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), CreateCheckoutSessionCommand{UserID: "user-1", Email: "a@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "cs_1", result.SessionID)
	assert.Equal(t, "https://checkout.example/cs_1", result.URL)
	assert.Equal(t, "user-1", captured.UserID)
	assert.Equal(t, "cus_1", captured.CustomerID)
	assert.Equal(t, "price_default", captured.PriceID)
	assert.Equal(t, "https://dreamlog.app/dashboard?subscription=success", captured.SuccessURL)
	assert.Equal(t, "https://dreamlog.app/pricing?subscription=cancelled", captured.CancelURL)
}

func TestCreateCheckoutSession_Errors(t *testing.T) {
	failing := &mockPaymentGateway{
		CreateCheckoutSessionFunc: func(ctx context.Context, req paymentgateway.CheckoutRequest) (*paymentgateway.CheckoutSession, error) {
			return nil, errors.New("card_declined")
		},
	}

	tests := []struct {
		name         string
		defaultPrice string
		gateway      *mockPaymentGateway
		cmd          CreateCheckoutSessionCommand
		expectedCode int
	}{
		{"no user", "price_1", &mockPaymentGateway{}, CreateCheckoutSessionCommand{}, 401},
		{"no price configured", "", &mockPaymentGateway{}, CreateCheckoutSessionCommand{UserID: "user-1"}, 400},
		{"processor failure", "price_1", failing, CreateCheckoutSessionCommand{UserID: "user-1", PriceID: "price_2"}, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewCreateCheckoutSessionUseCase(memorySubscriptions{newMemoryStore()}, tt.gateway, "http://localhost:3000", tt.defaultPrice, logger.NewNopLogger())
			_, err := uc.Execute(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.Equal(t, tt.expectedCode, appErrorCode(t, err))
		})
	}
}

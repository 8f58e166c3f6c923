package handlers

import (
	"context"

	"github.com/dreamlog-app/dreamlog/internal/application/payment/usecases"
)

// Use case interfaces for PaymentHandler

type handlePaymentEventUseCase interface {
	Execute(ctx context.Context, payload []byte, signature string) (*usecases.HandlePaymentEventResult, error)
}

type createCheckoutSessionUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateCheckoutSessionCommand) (*usecases.CreateCheckoutSessionResult, error)
}

type reconcileSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd usecases.ReconcileSubscriptionCommand) (*usecases.ReconcileSubscriptionResult, error)
}

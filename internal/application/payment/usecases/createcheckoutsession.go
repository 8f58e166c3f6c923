package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/dreamlog-app/dreamlog/internal/application/payment/paymentgateway"
	"github.com/dreamlog-app/dreamlog/internal/domain/subscription"
	apperrors "github.com/dreamlog-app/dreamlog/internal/shared/errors"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

type CreateCheckoutSessionCommand struct {
	UserID  string
	Email   string
	PriceID string
}

type CreateCheckoutSessionResult struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// CreateCheckoutSessionUseCase starts a hosted checkout whose completion event
// carries the user ID as client reference.
type CreateCheckoutSessionUseCase struct {
	subscriptions  subscription.Repository
	gateway        paymentgateway.PaymentGateway
	appURL         string
	defaultPriceID string
	logger         logger.Interface
}

func NewCreateCheckoutSessionUseCase(
	subscriptions subscription.Repository,
	gateway paymentgateway.PaymentGateway,
	appURL string,
	defaultPriceID string,
	logger logger.Interface,
) *CreateCheckoutSessionUseCase {
	return &CreateCheckoutSessionUseCase{
		subscriptions:  subscriptions,
		gateway:        gateway,
		appURL:         strings.TrimRight(appURL, "/"),
		defaultPriceID: defaultPriceID,
		logger:         logger,
	}
}

func (uc *CreateCheckoutSessionUseCase) Execute(ctx context.Context, cmd CreateCheckoutSessionCommand) (*CreateCheckoutSessionResult, error) {
	if cmd.UserID == "" {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}
	priceID := cmd.PriceID
	if priceID == "" {
		priceID = uc.defaultPriceID
	}
	if priceID == "" {
		return nil, apperrors.NewValidationError("Price ID is required")
	}

	req := paymentgateway.CheckoutRequest{
		UserID:     cmd.UserID,
		Email:      cmd.Email,
		PriceID:    priceID,
		SuccessURL: uc.appURL + "/dashboard?subscription=success",
		CancelURL:  uc.appURL + "/pricing?subscription=cancelled",
	}

	// reuse the known customer so repeat checkouts do not fork the customer
	rec, err := uc.subscriptions.GetByUserID(ctx, cmd.UserID)
	switch {
	case err == nil:
		req.CustomerID = rec.CustomerID()
	case errors.Is(err, subscription.ErrRecordNotFound):
	default:
		uc.logger.Warnw("failed to load subscription record for checkout", "user_id", cmd.UserID, "error", err)
	}

	session, err := uc.gateway.CreateCheckoutSession(ctx, req)
	if err != nil {
		uc.logger.Errorw("failed to create checkout session", "user_id", cmd.UserID, "error", err)
		return nil, apperrors.NewUpstreamError("Failed to create checkout session")
	}

	uc.logger.Infow("checkout session created", "user_id", cmd.UserID, "session_id", session.ID)
	return &CreateCheckoutSessionResult{SessionID: session.ID, URL: session.URL}, nil
}

package usecases

import (
	"context"
	"errors"

	"github.com/dreamlog-app/dreamlog/internal/application/payment/paymentgateway"
	"github.com/dreamlog-app/dreamlog/internal/domain/entitlement"
	"github.com/dreamlog-app/dreamlog/internal/domain/payment"
	"github.com/dreamlog-app/dreamlog/internal/domain/subscription"
	"github.com/dreamlog-app/dreamlog/internal/shared/db"
	apperrors "github.com/dreamlog-app/dreamlog/internal/shared/errors"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

// HandlePaymentEventResult reports what an acknowledged event did.
type HandlePaymentEventResult struct {
	EventID string
	Type    payment.EventType
	Applied bool
	// Note explains why an acknowledged event was not applied
	Note string
}

// HandlePaymentEventUseCase applies processor lifecycle events to the entitlement store.
// Every write assigns absolute values, so redelivered events converge on the same state.
type HandlePaymentEventUseCase struct {
	profiles      entitlement.Repository
	subscriptions subscription.Repository
	gateway       paymentgateway.PaymentGateway
	txManager     db.Transactor
	paidPlanName  string
	logger        logger.Interface
}

func NewHandlePaymentEventUseCase(
	profiles entitlement.Repository,
	subscriptions subscription.Repository,
	gateway paymentgateway.PaymentGateway,
	txManager db.Transactor,
	paidPlanName string,
	logger logger.Interface,
) *HandlePaymentEventUseCase {
	return &HandlePaymentEventUseCase{
		profiles:      profiles,
		subscriptions: subscriptions,
		gateway:       gateway,
		txManager:     txManager,
		paidPlanName:  subscription.PlanFor(true, paidPlanName),
		logger:        logger,
	}
}

// Execute verifies the signature before anything is decoded or written.
func (uc *HandlePaymentEventUseCase) Execute(ctx context.Context, payload []byte, signature string) (*HandlePaymentEventResult, error) {
	if signature == "" {
		uc.logger.Warnw("payment webhook without signature header")
		return nil, apperrors.NewSignatureInvalidError("No signature")
	}

	event, err := uc.gateway.ParseWebhook(payload, signature)
	if err != nil {
		if errors.Is(err, paymentgateway.ErrInvalidSignature) {
			uc.logger.Warnw("payment webhook signature verification failed", "error", err)
			return nil, apperrors.NewSignatureInvalidError("Invalid signature")
		}
		if errors.Is(err, paymentgateway.ErrWebhookNotConfigured) {
			uc.logger.Errorw("payment webhook received but no signing secret is configured")
			return nil, apperrors.NewMisconfigurationError("Server misconfiguration: webhook secret is not set")
		}
		uc.logger.Warnw("payment webhook payload could not be decoded", "error", err)
		return nil, apperrors.NewBadRequestError("Webhook Error")
	}

	result := &HandlePaymentEventResult{EventID: event.ID, Type: event.Type}
	log := uc.logger.With("event_id", event.ID, "event_type", event.Type)

	switch event.Type {
	case payment.EventCheckoutCompleted:
		err = uc.applyCheckoutCompleted(ctx, log, event, result)
	case payment.EventSubscriptionUpdated:
		err = uc.applySubscriptionUpdated(ctx, log, event, result)
	case payment.EventSubscriptionDeleted:
		err = uc.applySubscriptionDeleted(ctx, log, event, result)
	default:
		log.Debugw("unhandled payment event type")
		result.Note = "event type ignored"
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *HandlePaymentEventUseCase) applyCheckoutCompleted(
	ctx context.Context,
	log logger.Interface,
	event *payment.Event,
	result *HandlePaymentEventResult,
) error {
	if event.UserID == "" {
		// the reference cannot be recovered later, so a retry would fail the same way
		log.Errorw("checkout completed without client reference, event dropped", "customer_id", event.CustomerID)
		result.Note = "missing client reference"
		return nil
	}

	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		rec, err := uc.loadOrNewRecord(ctx, event.UserID)
		if err != nil {
			return err
		}
		rec.LinkCheckout(event.CustomerID, event.SubscriptionID, uc.paidPlanName, event.Payload)
		if err := uc.subscriptions.Upsert(ctx, rec); err != nil {
			return err
		}
		return uc.profiles.SetSubscriptionStatus(ctx, event.UserID, entitlement.SubscriptionStatusActive)
	})
	if err != nil {
		log.Errorw("failed to apply checkout completed", "user_id", event.UserID, "error", err)
		return apperrors.NewInternalError("Failed to apply checkout")
	}

	log.Infow("subscription activated by checkout",
		"user_id", event.UserID,
		"customer_id", event.CustomerID,
		"subscription_id", event.SubscriptionID,
	)
	result.Applied = true
	return nil
}

func (uc *HandlePaymentEventUseCase) applySubscriptionUpdated(
	ctx context.Context,
	log logger.Interface,
	event *payment.Event,
	result *HandlePaymentEventResult,
) error {
	status := entitlement.StatusFromActive(event.ProcessorStatus.GrantsAccess())

	applied, err := uc.withCustomerRecord(ctx, log, event, result, func(ctx context.Context, rec *subscription.Record) error {
		rec.ApplyPeriod(event.CurrentPeriodEnd, event.Payload)
		if err := uc.subscriptions.Upsert(ctx, rec); err != nil {
			return err
		}
		return uc.profiles.SetSubscriptionStatus(ctx, rec.UserID(), status)
	})
	if err != nil {
		return apperrors.NewInternalError("Failed to apply subscription update")
	}
	if applied {
		log.Infow("subscription updated",
			"customer_id", event.CustomerID,
			"processor_status", event.ProcessorStatus,
			"status", status,
		)
	}
	return nil
}

func (uc *HandlePaymentEventUseCase) applySubscriptionDeleted(
	ctx context.Context,
	log logger.Interface,
	event *payment.Event,
	result *HandlePaymentEventResult,
) error {
	applied, err := uc.withCustomerRecord(ctx, log, event, result, func(ctx context.Context, rec *subscription.Record) error {
		rec.Cancel(event.Payload)
		if err := uc.subscriptions.Upsert(ctx, rec); err != nil {
			return err
		}
		if err := uc.profiles.SetSubscriptionStatus(ctx, rec.UserID(), entitlement.SubscriptionStatusFree); err != nil {
			return err
		}
		return uc.profiles.ResetFreeInsights(ctx, rec.UserID())
	})
	if err != nil {
		return apperrors.NewInternalError("Failed to apply subscription cancellation")
	}
	if applied {
		log.Infow("subscription cancelled, free grant restored", "customer_id", event.CustomerID)
	}
	return nil
}

// withCustomerRecord resolves the customer to its record and runs fn in a transaction.
// Unknown customers are logged and acknowledged without error.
func (uc *HandlePaymentEventUseCase) withCustomerRecord(
	ctx context.Context,
	log logger.Interface,
	event *payment.Event,
	result *HandlePaymentEventResult,
	fn func(ctx context.Context, rec *subscription.Record) error,
) (bool, error) {
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		rec, err := uc.subscriptions.GetByCustomerID(ctx, event.CustomerID)
		if err != nil {
			return err
		}
		return fn(ctx, rec)
	})
	switch {
	case err == nil:
		result.Applied = true
		return true, nil
	case errors.Is(err, subscription.ErrRecordNotFound):
		log.Warnw("no subscription record for customer, event dropped", "customer_id", event.CustomerID)
		result.Note = "unknown customer"
		return false, nil
	default:
		log.Errorw("failed to apply payment event", "customer_id", event.CustomerID, "error", err)
		return false, err
	}
}

func (uc *HandlePaymentEventUseCase) loadOrNewRecord(ctx context.Context, userID string) (*subscription.Record, error) {
	rec, err := uc.subscriptions.GetByUserID(ctx, userID)
	if err == nil {
		return rec, nil
	}
	if errors.Is(err, subscription.ErrRecordNotFound) {
		return subscription.NewRecord(userID)
	}
	return nil, err
}

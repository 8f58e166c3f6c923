package usecases

import (
	"context"
	"errors"

	"github.com/dreamlog-app/dreamlog/internal/application/payment/paymentgateway"
	"github.com/dreamlog-app/dreamlog/internal/domain/entitlement"
	"github.com/dreamlog-app/dreamlog/internal/domain/subscription"
	"github.com/dreamlog-app/dreamlog/internal/shared/db"
	apperrors "github.com/dreamlog-app/dreamlog/internal/shared/errors"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

// ReconcileSubscriptionCommand asks to pull the caller's subscription state from the processor.
type ReconcileSubscriptionCommand struct {
	// AuthUserID is the authenticated caller
	AuthUserID string
	// RequestedUserID is the optional userId from the request body; it must match the caller
	RequestedUserID string
	// CustomerID is an optional hint; it must belong to the caller
	CustomerID string
}

// ReconcileSubscriptionResult is returned to the client after a successful sync.
type ReconcileSubscriptionResult struct {
	Message            string `json:"message"`
	SubscriptionStatus string `json:"subscription_status"`
	SubscriptionID     string `json:"subscription_id,omitempty"`
	CustomerID         string `json:"customer_id"`
}

// ReconcileSubscriptionUseCase repairs local state when webhooks were missed or delayed.
type ReconcileSubscriptionUseCase struct {
	profiles      entitlement.Repository
	subscriptions subscription.Repository
	gateway       paymentgateway.PaymentGateway
	txManager     db.Transactor
	paidPlanName  string
	logger        logger.Interface
}

func NewReconcileSubscriptionUseCase(
	profiles entitlement.Repository,
	subscriptions subscription.Repository,
	gateway paymentgateway.PaymentGateway,
	txManager db.Transactor,
	paidPlanName string,
	logger logger.Interface,
) *ReconcileSubscriptionUseCase {
	return &ReconcileSubscriptionUseCase{
		profiles:      profiles,
		subscriptions: subscriptions,
		gateway:       gateway,
		txManager:     txManager,
		paidPlanName:  subscription.PlanFor(true, paidPlanName),
		logger:        logger,
	}
}

func (uc *ReconcileSubscriptionUseCase) Execute(ctx context.Context, cmd ReconcileSubscriptionCommand) (*ReconcileSubscriptionResult, error) {
	if cmd.AuthUserID == "" {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}
	if cmd.RequestedUserID != "" && cmd.RequestedUserID != cmd.AuthUserID {
		uc.logger.Warnw("sync requested for another user",
			"user_id", cmd.AuthUserID,
			"requested_user_id", cmd.RequestedUserID,
		)
		return nil, apperrors.NewForbiddenError("Forbidden")
	}
	userID := cmd.AuthUserID

	profile, err := uc.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, entitlement.ErrEntitlementNotFound) {
			return nil, apperrors.NewNotFoundError("Profile not found")
		}
		uc.logger.Errorw("failed to load profile for sync", "user_id", userID, "error", err)
		return nil, apperrors.NewInternalError("Failed to sync subscription")
	}

	rec, err := uc.subscriptions.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, subscription.ErrRecordNotFound) {
		uc.logger.Errorw("failed to load subscription record for sync", "user_id", userID, "error", err)
		return nil, apperrors.NewInternalError("Failed to sync subscription")
	}

	customerID, err := uc.resolveCustomer(ctx, rec, profile.Email())
	if err != nil {
		return nil, err
	}
	if cmd.CustomerID != "" && cmd.CustomerID != customerID {
		uc.logger.Warnw("sync customer hint does not belong to caller", "user_id", userID)
		return nil, apperrors.NewForbiddenError("Forbidden")
	}

	snapshot, err := uc.gateway.LatestSubscription(ctx, customerID)
	if err != nil {
		uc.logger.Errorw("failed to fetch subscriptions from processor",
			"user_id", userID,
			"customer_id", customerID,
			"error", err,
		)
		return nil, apperrors.NewUpstreamError("Failed to fetch subscription from payment processor")
	}

	result := &ReconcileSubscriptionResult{CustomerID: customerID}
	status := entitlement.SubscriptionStatusFree
	planName := subscription.PlanFree
	subscriptionID := ""
	if snapshot == nil {
		result.Message = "No subscription found"
	} else {
		active := snapshot.Status.GrantsAccess()
		if !snapshot.Status.IsTerminal() {
			subscriptionID = snapshot.ID
		}
		status = entitlement.StatusFromActive(active)
		planName = subscription.PlanFor(active, uc.paidPlanName)
		result.Message = "Subscription synced successfully"
		result.SubscriptionID = subscriptionID
	}

	// the processor call can be slow; re-read so webhook writes made meanwhile survive
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := uc.subscriptions.GetByUserID(ctx, userID)
		if errors.Is(err, subscription.ErrRecordNotFound) {
			current, err = subscription.NewRecord(userID)
		}
		if err != nil {
			return err
		}

		periodEnd := current.CurrentPeriodEnd()
		if snapshot != nil {
			periodEnd = snapshot.CurrentPeriodEnd
		}
		// no subscription ever: link the customer, leave the free balance alone
		current.ApplySnapshot(customerID, subscriptionID, planName, periodEnd)

		if err := uc.subscriptions.UpsertProcessorState(ctx, current); err != nil {
			return err
		}
		return uc.profiles.SetSubscriptionStatus(ctx, userID, status)
	})
	if err != nil {
		uc.logger.Errorw("failed to persist synced subscription", "user_id", userID, "error", err)
		return nil, apperrors.NewInternalError("Failed to sync subscription")
	}

	result.SubscriptionStatus = status.String()
	uc.logger.Infow("subscription synced",
		"user_id", userID,
		"customer_id", customerID,
		"subscription_id", result.SubscriptionID,
		"status", status,
	)
	return result, nil
}

func (uc *ReconcileSubscriptionUseCase) resolveCustomer(ctx context.Context, rec *subscription.Record, email string) (string, error) {
	if rec != nil && rec.CustomerID() != "" {
		return rec.CustomerID(), nil
	}
	if email == "" {
		return "", apperrors.NewNotFoundError("No Stripe customer found. Please complete checkout first.")
	}

	customerID, err := uc.gateway.FindCustomerByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, paymentgateway.ErrCustomerNotFound) {
			return "", apperrors.NewNotFoundError("No Stripe customer found. Please complete checkout first.")
		}
		uc.logger.Errorw("failed to look up processor customer", "error", err)
		return "", apperrors.NewUpstreamError("Failed to look up payment customer")
	}
	return customerID, nil
}

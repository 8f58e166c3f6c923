package usecases

import (
	"context"

	"github.com/dreamlog-app/dreamlog/internal/domain/entitlement"
	"github.com/dreamlog-app/dreamlog/internal/domain/subscription"
	"github.com/dreamlog-app/dreamlog/internal/shared/db"
	apperrors "github.com/dreamlog-app/dreamlog/internal/shared/errors"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

// ProvisionAccountUseCase creates the profile (initial grant, free status) and the free
// subscription record of a new account. Both writes are idempotent, so it can run on
// every signup or login without resetting existing state.
type ProvisionAccountUseCase struct {
	profiles      entitlement.Repository
	subscriptions subscription.Repository
	txManager     db.Transactor
	logger        logger.Interface
}

func NewProvisionAccountUseCase(
	profiles entitlement.Repository,
	subscriptions subscription.Repository,
	txManager db.Transactor,
	logger logger.Interface,
) *ProvisionAccountUseCase {
	return &ProvisionAccountUseCase{
		profiles:      profiles,
		subscriptions: subscriptions,
		txManager:     txManager,
		logger:        logger,
	}
}

func (uc *ProvisionAccountUseCase) Execute(ctx context.Context, userID, email string) error {
	e, err := entitlement.NewEntitlement(userID, email)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.profiles.Create(ctx, e); err != nil {
			return err
		}
		return uc.subscriptions.EnsureFree(ctx, userID)
	})
	if err != nil {
		uc.logger.Errorw("failed to provision account", "user_id", userID, "error", err)
		return apperrors.NewInternalError("Failed to create profile")
	}

	uc.logger.Debugw("account provisioned", "user_id", userID)
	return nil
}

package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/dreamlog-app/dreamlog/internal/domain/entitlement"
	"github.com/dreamlog-app/dreamlog/internal/domain/subscription"
	apperrors "github.com/dreamlog-app/dreamlog/internal/shared/errors"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

// ProfileResult is the account view shown on the dashboard.
type ProfileResult struct {
	UserID             string                         `json:"id"`
	Email              string                         `json:"email"`
	Username           string                         `json:"username,omitempty"`
	FreeInsightBalance int                            `json:"ai_insight_count_free"`
	SubscriptionStatus entitlement.SubscriptionStatus `json:"subscription_status"`
	PlanName           string                         `json:"plan_name"`
	CurrentPeriodEnd   *time.Time                     `json:"current_period_end,omitempty"`
	CreatedAt          time.Time                      `json:"created_at"`
}

type GetProfileUseCase struct {
	profiles      entitlement.Repository
	subscriptions subscription.Repository
	logger        logger.Interface
}

func NewGetProfileUseCase(
	profiles entitlement.Repository,
	subscriptions subscription.Repository,
	logger logger.Interface,
) *GetProfileUseCase {
	return &GetProfileUseCase{
		profiles:      profiles,
		subscriptions: subscriptions,
		logger:        logger,
	}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, userID string) (*ProfileResult, error) {
	e, err := uc.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, entitlement.ErrEntitlementNotFound) {
			return nil, apperrors.NewNotFoundError("Profile not found")
		}
		uc.logger.Errorw("failed to load profile", "user_id", userID, "error", err)
		return nil, apperrors.NewInternalError("Failed to load profile")
	}

	result := &ProfileResult{
		UserID:             e.UserID(),
		Email:              e.Email(),
		Username:           e.Username(),
		FreeInsightBalance: e.FreeInsightBalance(),
		SubscriptionStatus: e.Status(),
		PlanName:           subscription.PlanFree,
		CreatedAt:          e.CreatedAt(),
	}

	rec, err := uc.subscriptions.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		result.PlanName = rec.PlanName()
		result.CurrentPeriodEnd = rec.CurrentPeriodEnd()
	case errors.Is(err, subscription.ErrRecordNotFound):
	default:
		uc.logger.Warnw("failed to load subscription record", "user_id", userID, "error", err)
	}

	return result, nil
}

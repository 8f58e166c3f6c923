package usecases

import (
	"context"
	"errors"

	"github.com/dreamlog-app/dreamlog/internal/domain/entitlement"
	apperrors "github.com/dreamlog-app/dreamlog/internal/shared/errors"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

const quotaExhaustedMessage = "No free insights remaining. Please upgrade."

// MeteredGate authorizes metered operations against a user's entitlement and debits
// the free balance once an authorized operation has succeeded.
//
// Authorize and Commit are separate calls: the operation between them is a slow
// external call that must not run inside a database transaction. Two concurrent requests
// on a balance of one can therefore both be authorized; the conditional debit lets only
// one of them consume the unit and the other is logged as overuse.
type MeteredGate struct {
	repo   entitlement.Repository
	logger logger.Interface
}

func NewMeteredGate(repo entitlement.Repository, logger logger.Interface) *MeteredGate {
	return &MeteredGate{
		repo:   repo,
		logger: logger,
	}
}

// Authorize returns an allowed decision or a quota exhausted error.
func (g *MeteredGate) Authorize(ctx context.Context, userID string) (entitlement.Decision, error) {
	e, err := g.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, entitlement.ErrEntitlementNotFound) {
			return entitlement.Decision{}, apperrors.NewNotFoundError("Profile not found")
		}
		g.logger.Errorw("failed to load entitlement", "user_id", userID, "error", err)
		return entitlement.Decision{}, apperrors.NewInternalError("Failed to load profile")
	}

	decision := e.Authorize()
	if !decision.Allowed {
		g.logger.Infow("metered operation denied",
			"user_id", userID,
			"reason", decision.Reason,
		)
		return decision, apperrors.NewQuotaExhaustedError(quotaExhaustedMessage)
	}
	return decision, nil
}

// Commit debits one free insight for free-tier decisions and returns the resulting
// snapshot. Active-tier decisions are never debited.
func (g *MeteredGate) Commit(ctx context.Context, decision entitlement.Decision) (entitlement.Snapshot, error) {
	if decision.RequiresDebit() {
		balance, err := g.repo.DebitFreeInsight(ctx, decision.UserID)
		switch {
		case err == nil:
			g.logger.Infow("free insight consumed", "user_id", decision.UserID, "balance", balance)
		case errors.Is(err, entitlement.ErrInsufficientBalance):
			// lost a race with a concurrent request; the overuse is accepted
			g.logger.Warnw("free insight overuse after concurrent authorization", "user_id", decision.UserID)
		default:
			g.logger.Errorw("failed to debit free insight", "user_id", decision.UserID, "error", err)
			return entitlement.Snapshot{}, apperrors.NewInternalError("Failed to update insight balance")
		}
	}

	e, err := g.repo.GetByUserID(ctx, decision.UserID)
	if err != nil {
		g.logger.Errorw("failed to reload entitlement", "user_id", decision.UserID, "error", err)
		return entitlement.Snapshot{}, apperrors.NewInternalError("Failed to load profile")
	}
	return e.Snapshot(), nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dreamlog-app/dreamlog/internal/domain/entitlement"
	"github.com/dreamlog-app/dreamlog/internal/infrastructure/persistence/mappers"
	"github.com/dreamlog-app/dreamlog/internal/infrastructure/persistence/models"
	"github.com/dreamlog-app/dreamlog/internal/shared/db"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

// ProfileRepository implements entitlement.Repository on the profiles table.
type ProfileRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB, logger logger.Interface) entitlement.Repository {
	return &ProfileRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a profile row. An existing row for the same user is left untouched,
// so provisioning can be retried safely.
func (r *ProfileRepository) Create(ctx context.Context, e *entitlement.Entitlement) error {
	model := mappers.EntitlementToModel(e)

	result := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(model)
	if result.Error != nil {
		r.logger.Errorw("failed to create profile", "user_id", e.UserID(), "error", result.Error)
		return fmt.Errorf("failed to create profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.Debugw("profile already provisioned", "user_id", e.UserID())
	}
	return nil
}

// GetByUserID retrieves the entitlement of a user
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*entitlement.Entitlement, error) {
	var model models.ProfileModel

	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entitlement.ErrEntitlementNotFound
		}
		r.logger.Errorw("failed to get profile", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return mappers.EntitlementToDomain(&model)
}

// DebitFreeInsight decrements the balance with a single conditional UPDATE so two
// concurrent debits can never both succeed on a balance of one.
func (r *ProfileRepository) DebitFreeInsight(ctx context.Context, userID string) (int, error) {
	var balance int

	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ProfileModel{}).
			Where("id = ? AND ai_insight_count_free > 0", userID).
			Updates(map[string]interface{}{
				"ai_insight_count_free": gorm.Expr("ai_insight_count_free - 1"),
				"updated_at":            time.Now().UTC(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to debit free insight: %w", result.Error)
		}

		var model models.ProfileModel
		if err := tx.Select("id", "ai_insight_count_free").Where("id = ?", userID).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return entitlement.ErrEntitlementNotFound
			}
			return fmt.Errorf("failed to read balance after debit: %w", err)
		}

		if result.RowsAffected == 0 {
			return entitlement.ErrInsufficientBalance
		}
		balance = model.AIInsightCountFree
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.logger.Debugw("free insight debited", "user_id", userID, "balance", balance)
	return balance, nil
}

// SetSubscriptionStatus overwrites the subscription status
func (r *ProfileRepository) SetSubscriptionStatus(ctx context.Context, userID string, status entitlement.SubscriptionStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %s", entitlement.ErrInvalidStatus, status)
	}
	return r.update(ctx, userID, map[string]interface{}{
		"subscription_status": status.String(),
		"updated_at":          time.Now().UTC(),
	})
}

// ResetFreeInsights assigns the initial grant. It is an absolute assignment, never a delta.
func (r *ProfileRepository) ResetFreeInsights(ctx context.Context, userID string) error {
	return r.update(ctx, userID, map[string]interface{}{
		"ai_insight_count_free": entitlement.InitialFreeInsightGrant,
		"updated_at":            time.Now().UTC(),
	})
}

func (r *ProfileRepository) update(ctx context.Context, userID string, fields map[string]interface{}) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ProfileModel{}).
		Where("id = ?", userID).
		Updates(fields)
	if result.Error != nil {
		r.logger.Errorw("failed to update profile", "user_id", userID, "error", result.Error)
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// identical values also report zero rows on some drivers, so confirm the row exists
		var count int64
		if err := db.GetTxFromContext(ctx, r.db).Model(&models.ProfileModel{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check profile: %w", err)
		}
		if count == 0 {
			return entitlement.ErrEntitlementNotFound
		}
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dreamlog-app/dreamlog/internal/domain/subscription"
	"github.com/dreamlog-app/dreamlog/internal/infrastructure/persistence/mappers"
	"github.com/dreamlog-app/dreamlog/internal/infrastructure/persistence/models"
	"github.com/dreamlog-app/dreamlog/internal/shared/db"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

// upsertColumns are overwritten when a row for the same user already exists.
var upsertColumns = []string{
	"stripe_customer_id",
	"stripe_subscription_id",
	"current_period_end",
	"plan_name",
	"last_webhook_event",
	"updated_at",
}

// processorStateColumns are the columns a sync from the processor owns.
var processorStateColumns = []string{
	"stripe_customer_id",
	"stripe_subscription_id",
	"current_period_end",
	"plan_name",
	"updated_at",
}

// SubscriptionRepository implements subscription.Repository on the subscriptions table.
type SubscriptionRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.Repository {
	return &SubscriptionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SubscriptionRepository) GetByUserID(ctx context.Context, userID string) (*subscription.Record, error) {
	return r.first(ctx, "user_id = ?", userID)
}

func (r *SubscriptionRepository) GetByCustomerID(ctx context.Context, customerID string) (*subscription.Record, error) {
	if customerID == "" {
		return nil, subscription.ErrRecordNotFound
	}
	return r.first(ctx, "stripe_customer_id = ?", customerID)
}

func (r *SubscriptionRepository) first(ctx context.Context, query string, arg string) (*subscription.Record, error) {
	var model models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrRecordNotFound
		}
		r.logger.Errorw("failed to get subscription record", "lookup", arg, "error", err)
		return nil, fmt.Errorf("failed to get subscription record: %w", err)
	}

	return mappers.SubscriptionToDomain(&model)
}

// Upsert writes every field of the record keyed by user_id.
func (r *SubscriptionRepository) Upsert(ctx context.Context, rec *subscription.Record) error {
	return r.upsert(ctx, rec, upsertColumns)
}

// UpsertProcessorState writes the processor-owned fields keyed by user_id.
func (r *SubscriptionRepository) UpsertProcessorState(ctx context.Context, rec *subscription.Record) error {
	return r.upsert(ctx, rec, processorStateColumns)
}

func (r *SubscriptionRepository) upsert(ctx context.Context, rec *subscription.Record, columns []string) error {
	model := mappers.SubscriptionToModel(rec)
	// let the database keep the existing primary key on conflict
	model.ID = 0

	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).
		Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert subscription record", "user_id", rec.UserID(), "error", err)
		return fmt.Errorf("failed to upsert subscription record: %w", err)
	}

	r.logger.Debugw("subscription record upserted",
		"user_id", rec.UserID(),
		"plan", rec.PlanName(),
		"has_subscription", rec.HasLiveSubscription(),
	)
	return nil
}

// EnsureFree creates a free record when the user has none.
func (r *SubscriptionRepository) EnsureFree(ctx context.Context, userID string) error {
	rec, err := subscription.NewRecord(userID)
	if err != nil {
		return err
	}

	err = db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(mappers.SubscriptionToModel(rec)).Error
	if err != nil {
		r.logger.Errorw("failed to create free subscription record", "user_id", userID, "error", err)
		return fmt.Errorf("failed to create free subscription record: %w", err)
	}
	return nil
}

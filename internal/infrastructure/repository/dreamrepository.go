package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dreamlog-app/dreamlog/internal/domain/dream"
	"github.com/dreamlog-app/dreamlog/internal/infrastructure/persistence/mappers"
	"github.com/dreamlog-app/dreamlog/internal/infrastructure/persistence/models"
	"github.com/dreamlog-app/dreamlog/internal/shared/db"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

type DreamRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewDreamRepository creates a new dream repository
func NewDreamRepository(db *gorm.DB, logger logger.Interface) dream.Repository {
	return &DreamRepository{
		db:     db,
		logger: logger,
	}
}

func (r *DreamRepository) Create(ctx context.Context, entry *dream.Entry, metadata *dream.Metadata) error {
	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(mappers.DreamEntryToModel(entry)).Error; err != nil {
			return fmt.Errorf("failed to create dream entry: %w", err)
		}
		if metadata == nil {
			return nil
		}
		if err := tx.Create(mappers.DreamMetadataToModel(metadata)).Error; err != nil {
			return fmt.Errorf("failed to create dream metadata: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to save dream", "user_id", entry.UserID(), "dream_id", entry.ID(), "error", err)
		return err
	}
	return nil
}

func (r *DreamRepository) GetByID(ctx context.Context, userID, dreamID string) (*dream.Entry, error) {
	var model models.DreamEntryModel

	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.OwnedBy(userID)).
		Where("id = ?", dreamID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dream.ErrDreamNotFound
		}
		return nil, fmt.Errorf("failed to get dream: %w", err)
	}

	return mappers.DreamEntryToDomain(&model), nil
}

func (r *DreamRepository) GetMetadata(ctx context.Context, dreamID string) (*dream.Metadata, error) {
	var model models.DreamMetadataModel

	err := db.GetTxFromContext(ctx, r.db).Where("dream_id = ?", dreamID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dream metadata: %w", err)
	}

	return mappers.DreamMetadataToDomain(&model), nil
}

func (r *DreamRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*dream.Entry, int64, error) {
	var total int64
	query := db.GetTxFromContext(ctx, r.db).Model(&models.DreamEntryModel{}).Scopes(db.OwnedBy(userID))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count dreams: %w", err)
	}

	var rows []models.DreamEntryModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.OwnedBy(userID), db.Paginate(page, pageSize)).
		Order("recorded_at DESC").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list dreams: %w", err)
	}

	entries := make([]*dream.Entry, len(rows))
	for i := range rows {
		entries[i] = mappers.DreamEntryToDomain(&rows[i])
	}
	return entries, total, nil
}

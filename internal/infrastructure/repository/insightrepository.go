package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/dreamlog-app/dreamlog/internal/domain/insight"
	"github.com/dreamlog-app/dreamlog/internal/infrastructure/persistence/mappers"
	"github.com/dreamlog-app/dreamlog/internal/infrastructure/persistence/models"
	"github.com/dreamlog-app/dreamlog/internal/shared/db"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

type InsightRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewInsightRepository creates a new insight repository
func NewInsightRepository(db *gorm.DB, logger logger.Interface) insight.Repository {
	return &InsightRepository{
		db:     db,
		logger: logger,
	}
}

func (r *InsightRepository) Create(ctx context.Context, i *insight.Insight) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.InsightToModel(i)).Error; err != nil {
		r.logger.Errorw("failed to create insight", "dream_id", i.DreamID(), "error", err)
		return fmt.Errorf("failed to create insight: %w", err)
	}
	return nil
}

func (r *InsightRepository) ListByDream(ctx context.Context, dreamID string) ([]*insight.Insight, error) {
	var rows []models.DreamInsightModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("dream_id = ?", dreamID).
		Order("generated_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list insights: %w", err)
	}

	out := make([]*insight.Insight, len(rows))
	for i := range rows {
		out[i] = mappers.InsightToDomain(&rows[i])
	}
	return out, nil
}

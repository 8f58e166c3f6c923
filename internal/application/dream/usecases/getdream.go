package usecases

import (
	"context"
	"errors"

	insightusecases "github.com/dreamlog-app/dreamlog/internal/application/insight/usecases"
	"github.com/dreamlog-app/dreamlog/internal/domain/dream"
	"github.com/dreamlog-app/dreamlog/internal/domain/insight"
	apperrors "github.com/dreamlog-app/dreamlog/internal/shared/errors"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
	"github.com/dreamlog-app/dreamlog/internal/shared/services/markdown"
)

type DreamDetail struct {
	Dream    *DreamDTO                     `json:"dream"`
	Metadata *MetadataDTO                  `json:"metadata,omitempty"`
	Insights []*insightusecases.InsightDTO `json:"insights"`
}

// GetDreamUseCase loads one of the caller's dreams with its metadata and insights, newest first.
type GetDreamUseCase struct {
	dreams   dream.Repository
	insights insight.Repository
	renderer markdown.Service
	logger   logger.Interface
}

func NewGetDreamUseCase(
	dreams dream.Repository,
	insights insight.Repository,
	renderer markdown.Service,
	logger logger.Interface,
) *GetDreamUseCase {
	return &GetDreamUseCase{
		dreams:   dreams,
		insights: insights,
		renderer: renderer,
		logger:   logger,
	}
}

func (uc *GetDreamUseCase) Execute(ctx context.Context, userID, dreamID string) (*DreamDetail, error) {
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}

	entry, err := uc.dreams.GetByID(ctx, userID, dreamID)
	if err != nil {
		if errors.Is(err, dream.ErrDreamNotFound) {
			return nil, apperrors.NewNotFoundError("Dream not found")
		}
		uc.logger.Errorw("failed to load dream", "dream_id", dreamID, "error", err)
		return nil, apperrors.NewInternalError("Failed to load dream")
	}

	metadata, err := uc.dreams.GetMetadata(ctx, entry.ID())
	if err != nil {
		uc.logger.Errorw("failed to load dream metadata", "dream_id", dreamID, "error", err)
		return nil, apperrors.NewInternalError("Failed to load dream")
	}

	records, err := uc.insights.ListByDream(ctx, entry.ID())
	if err != nil {
		uc.logger.Errorw("failed to load dream insights", "dream_id", dreamID, "error", err)
		return nil, apperrors.NewInternalError("Failed to load dream")
	}

	insights := make([]*insightusecases.InsightDTO, 0, len(records))
	for _, r := range records {
		insights = append(insights, insightusecases.ToInsightDTO(r, uc.renderer))
	}

	return &DreamDetail{
		Dream:    ToDreamDTO(entry),
		Metadata: toMetadataDTO(metadata),
		Insights: insights,
	}, nil
}

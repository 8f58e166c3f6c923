package usecases

import (
	"context"

	"github.com/dreamlog-app/dreamlog/internal/domain/dream"
	apperrors "github.com/dreamlog-app/dreamlog/internal/shared/errors"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

type ListDreamsQuery struct {
	UserID   string
	Page     int
	PageSize int
}

type ListDreamsResult struct {
	Dreams   []*DreamDTO
	Total    int64
	Page     int
	PageSize int
}

type ListDreamsUseCase struct {
	dreams dream.Repository
	logger logger.Interface
}

func NewListDreamsUseCase(dreams dream.Repository, logger logger.Interface) *ListDreamsUseCase {
	return &ListDreamsUseCase{
		dreams: dreams,
		logger: logger,
	}
}

func (uc *ListDreamsUseCase) Execute(ctx context.Context, query ListDreamsQuery) (*ListDreamsResult, error) {
	if query.UserID == "" {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}

	entries, total, err := uc.dreams.ListByUser(ctx, query.UserID, query.Page, query.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list dreams", "user_id", query.UserID, "error", err)
		return nil, apperrors.NewInternalError("Failed to list dreams")
	}

	dtos := make([]*DreamDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, ToDreamDTO(e))
	}

	return &ListDreamsResult{
		Dreams:   dtos,
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}

package handlers

import (
	"context"

	"github.com/dreamlog-app/dreamlog/internal/application/insight/usecases"
)

// Use case interfaces for InsightHandler

type generateInsightUseCase interface {
	Execute(ctx context.Context, cmd usecases.GenerateInsightCommand) (*usecases.GenerateInsightResult, error)
}

package handlers

import (
	"context"

	"github.com/dreamlog-app/dreamlog/internal/application/dream/usecases"
)

// Use case interfaces for DreamHandler

type createDreamUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateDreamCommand) (*usecases.CreateDreamResult, error)
}

type listDreamsUseCase interface {
	Execute(ctx context.Context, query usecases.ListDreamsQuery) (*usecases.ListDreamsResult, error)
}

type getDreamUseCase interface {
	Execute(ctx context.Context, userID, dreamID string) (*usecases.DreamDetail, error)
}

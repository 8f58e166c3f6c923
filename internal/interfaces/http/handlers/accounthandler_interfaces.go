package handlers

import (
	"context"

	"github.com/dreamlog-app/dreamlog/internal/application/account/usecases"
)

// Use case interfaces for AccountHandler

type signupWithDreamUseCase interface {
	Execute(ctx context.Context, cmd usecases.SignupWithDreamCommand) (*usecases.SignupWithDreamResult, error)
}

type exchangeAuthCodeUseCase interface {
	Execute(ctx context.Context, cmd usecases.ExchangeAuthCodeCommand) *usecases.ExchangeAuthCodeResult
}

package usecases

import (
	"context"
	"errors"
	"net/url"

	"github.com/dreamlog-app/dreamlog/internal/application/account/authprovider"
	"github.com/dreamlog-app/dreamlog/internal/shared/constants"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
	"github.com/dreamlog-app/dreamlog/internal/shared/utils"
)

type ExchangeAuthCodeCommand struct {
	Code         string
	CodeVerifier string
	Next         string
}

// ExchangeAuthCodeResult tells the callback handler where to send the browser.
// Session is nil when the exchange failed or no code was given.
type ExchangeAuthCodeResult struct {
	RedirectPath string
	Session      *authprovider.Session
}

// ExchangeAuthCodeUseCase finishes the email-confirmation and magic-link flows
// and makes sure the signed-in account has its profile and free subscription.
// It never fails: every outcome is a redirect.
type ExchangeAuthCodeUseCase struct {
	auth        authprovider.AuthProvider
	provisioner AccountProvisioner
	logger      logger.Interface
}

func NewExchangeAuthCodeUseCase(auth authprovider.AuthProvider, provisioner AccountProvisioner, logger logger.Interface) *ExchangeAuthCodeUseCase {
	return &ExchangeAuthCodeUseCase{
		auth:        auth,
		provisioner: provisioner,
		logger:      logger,
	}
}

func (uc *ExchangeAuthCodeUseCase) Execute(ctx context.Context, cmd ExchangeAuthCodeCommand) *ExchangeAuthCodeResult {
	next := utils.SafeRedirectPath(cmd.Next, constants.DefaultPostLoginPath)
	if cmd.Code == "" {
		return &ExchangeAuthCodeResult{RedirectPath: next}
	}

	session, err := uc.auth.ExchangeCode(ctx, cmd.Code, cmd.CodeVerifier)
	if err != nil {
		message := "Authentication failed"
		var rejected *authprovider.RejectedError
		if errors.As(err, &rejected) && rejected.Message != "" {
			message = rejected.Message
		}
		uc.logger.Warnw("auth code exchange failed", "error", err)
		return &ExchangeAuthCodeResult{
			RedirectPath: constants.LoginPath + "?error=" + url.QueryEscape(message),
		}
	}

	// the session is valid either way; a failed provisioning is retried on the next login
	if err := uc.provisioner.Execute(ctx, session.UserID, session.Email); err != nil {
		uc.logger.Errorw("failed to provision account after code exchange", "user_id", session.UserID, "error", err)
	}

	uc.logger.Infow("auth code exchanged", "user_id", session.UserID)
	return &ExchangeAuthCodeResult{RedirectPath: next, Session: session}
}

package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/dreamlog-app/dreamlog/internal/application/account/authprovider"
	dreamusecases "github.com/dreamlog-app/dreamlog/internal/application/dream/usecases"
	"github.com/dreamlog-app/dreamlog/internal/domain/dream"
	apperrors "github.com/dreamlog-app/dreamlog/internal/shared/errors"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
	"github.com/dreamlog-app/dreamlog/internal/shared/services/markdown"
)

const dreamSaveFailedMessage = "Account created but failed to save dream. Please try adding it from the dashboard."

// AccountProvisioner creates the entitlement and free subscription record of a new account.
type AccountProvisioner interface {
	Execute(ctx context.Context, userID, email string) error
}

type SignupWithDreamCommand struct {
	Email     string
	Password  string
	DreamText string
}

type SignupWithDreamResult struct {
	UserID       string
	DreamID      string
	Session      *authprovider.Session
	CodeVerifier string
}

// SignupWithDreamUseCase registers an account and stores its first dream in one request.
// Provisioning and the dream go through the elevated database role because no session
// exists yet; provisioner and elevatedDreams are nil when that role is not configured.
type SignupWithDreamUseCase struct {
	auth           authprovider.AuthProvider
	provisioner    AccountProvisioner
	elevatedDreams dream.Repository
	sanitizer      markdown.Service
	logger         logger.Interface
}

func NewSignupWithDreamUseCase(
	auth authprovider.AuthProvider,
	provisioner AccountProvisioner,
	elevatedDreams dream.Repository,
	sanitizer markdown.Service,
	logger logger.Interface,
) *SignupWithDreamUseCase {
	return &SignupWithDreamUseCase{
		auth:           auth,
		provisioner:    provisioner,
		elevatedDreams: elevatedDreams,
		sanitizer:      sanitizer,
		logger:         logger,
	}
}

func (uc *SignupWithDreamUseCase) Execute(ctx context.Context, cmd SignupWithDreamCommand) (*SignupWithDreamResult, error) {
	email := strings.TrimSpace(strings.ToLower(cmd.Email))
	if email == "" || cmd.Password == "" || strings.TrimSpace(cmd.DreamText) == "" {
		return nil, apperrors.NewValidationError("Email, password, and dream text are required")
	}
	if uc.provisioner == nil || uc.elevatedDreams == nil {
		uc.logger.Errorw("signup unavailable: elevated database role is not configured")
		return nil, apperrors.NewMisconfigurationError("Server misconfiguration: missing elevated database role")
	}

	signup, err := uc.auth.SignUp(ctx, email, cmd.Password)
	if err != nil {
		var rejected *authprovider.RejectedError
		if errors.As(err, &rejected) {
			uc.logger.Infow("signup rejected by auth provider", "status", rejected.StatusCode, "reason", rejected.Message)
			return nil, apperrors.NewInvalidCredentialsError(rejected.Message)
		}
		uc.logger.Errorw("auth provider signup failed", "error", err)
		return nil, apperrors.NewUpstreamError("Failed to create user")
	}
	if signup.UserID == "" {
		return nil, apperrors.NewInternalError("Failed to create user")
	}

	log := uc.logger.With("user_id", signup.UserID)

	if err := uc.provisioner.Execute(ctx, signup.UserID, email); err != nil {
		log.Errorw("failed to provision account", "error", err)
		return nil, apperrors.NewInternalError(dreamSaveFailedMessage)
	}

	// no explicit title: the first dream is titled from its first words
	entry, metadata, err := dreamusecases.BuildDream(uc.sanitizer, dreamusecases.CreateDreamCommand{
		UserID:  signup.UserID,
		Content: cmd.DreamText,
	})
	if err != nil {
		log.Warnw("first dream rejected", "error", err)
		return nil, apperrors.NewInternalError(dreamSaveFailedMessage)
	}
	if err := uc.elevatedDreams.Create(ctx, entry, metadata); err != nil {
		log.Errorw("failed to save first dream", "error", err)
		return nil, apperrors.NewInternalError(dreamSaveFailedMessage)
	}

	log.Infow("account created with first dream", "dream_id", entry.ID(), "confirmed", signup.Session != nil)
	return &SignupWithDreamResult{
		UserID:       signup.UserID,
		DreamID:      entry.ID(),
		Session:      signup.Session,
		CodeVerifier: signup.CodeVerifier,
	}, nil
}

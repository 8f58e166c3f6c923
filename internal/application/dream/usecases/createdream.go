package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/dreamlog-app/dreamlog/internal/domain/dream"
	apperrors "github.com/dreamlog-app/dreamlog/internal/shared/errors"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
	"github.com/dreamlog-app/dreamlog/internal/shared/services/markdown"
)

type CreateDreamCommand struct {
	UserID     string
	Title      string
	Content    string
	RecordedAt *time.Time
	Mood       string
	Tags       []string
}

type CreateDreamResult struct {
	Dream    *DreamDTO    `json:"dream"`
	Metadata *MetadataDTO `json:"metadata,omitempty"`
}

// CreateDreamUseCase records a dream. Markup is stripped from user text before it is stored.
type CreateDreamUseCase struct {
	dreams    dream.Repository
	sanitizer markdown.Service
	logger    logger.Interface
}

func NewCreateDreamUseCase(dreams dream.Repository, sanitizer markdown.Service, logger logger.Interface) *CreateDreamUseCase {
	return &CreateDreamUseCase{
		dreams:    dreams,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

func (uc *CreateDreamUseCase) Execute(ctx context.Context, cmd CreateDreamCommand) (*CreateDreamResult, error) {
	entry, metadata, err := BuildDream(uc.sanitizer, cmd)
	if err != nil {
		return nil, err
	}

	if err := uc.dreams.Create(ctx, entry, metadata); err != nil {
		uc.logger.Errorw("failed to save dream", "user_id", cmd.UserID, "error", err)
		return nil, apperrors.NewInternalError("Failed to save dream")
	}

	uc.logger.Infow("dream recorded", "user_id", cmd.UserID, "dream_id", entry.ID(), "word_count", entry.WordCount())
	return &CreateDreamResult{
		Dream:    ToDreamDTO(entry),
		Metadata: toMetadataDTO(metadata),
	}, nil
}

// BuildDream sanitizes and validates a dream and its optional metadata.
// Domain validation failures are returned as validation errors.
func BuildDream(sanitizer markdown.Service, cmd CreateDreamCommand) (*dream.Entry, *dream.Metadata, error) {
	content, title, mood := cmd.Content, cmd.Title, cmd.Mood
	if sanitizer != nil {
		content = sanitizer.PlainText(content)
		title = sanitizer.PlainText(title)
		mood = sanitizer.PlainText(mood)
	}

	var recordedAt time.Time
	if cmd.RecordedAt != nil {
		recordedAt = *cmd.RecordedAt
	}

	entry, err := dream.NewEntry(cmd.UserID, title, content, recordedAt)
	if err != nil {
		return nil, nil, dreamValidationError(err)
	}

	metadata, err := dream.NewMetadata(entry.ID(), mood, cmd.Tags)
	if err != nil {
		return nil, nil, dreamValidationError(err)
	}
	return entry, metadata, nil
}

func dreamValidationError(err error) error {
	switch {
	case errors.Is(err, dream.ErrInvalidUserID):
		return apperrors.NewUnauthorizedError("Unauthorized")
	case errors.Is(err, dream.ErrEmptyContent):
		return apperrors.NewValidationError("Dream text is required")
	case errors.Is(err, dream.ErrContentTooLong):
		return apperrors.NewValidationError("Dream text is too long")
	case errors.Is(err, dream.ErrTooManyTags):
		return apperrors.NewValidationError("Too many tags")
	default:
		return apperrors.NewValidationError(err.Error())
	}
}

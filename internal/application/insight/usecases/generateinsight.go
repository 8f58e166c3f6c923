package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dreamlog-app/dreamlog/internal/application/insight/analyzer"
	"github.com/dreamlog-app/dreamlog/internal/domain/dream"
	"github.com/dreamlog-app/dreamlog/internal/domain/entitlement"
	"github.com/dreamlog-app/dreamlog/internal/domain/insight"
	apperrors "github.com/dreamlog-app/dreamlog/internal/shared/errors"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
	"github.com/dreamlog-app/dreamlog/internal/shared/services/markdown"
)

const DefaultAnalyzeTimeout = 60 * time.Second

// Gate is the metering step around insight generation.
type Gate interface {
	Authorize(ctx context.Context, userID string) (entitlement.Decision, error)
	Commit(ctx context.Context, decision entitlement.Decision) (entitlement.Snapshot, error)
}

// GenerateInsightCommand asks for an analysis of one of the caller's dreams.
// DreamText, Mood and Tags override what is stored with the dream.
type GenerateInsightCommand struct {
	UserID    string
	DreamID   string
	DreamText string
	Mood      string
	Tags      []string
}

type GenerateInsightResult struct {
	Insight *InsightDTO          `json:"insight"`
	Profile entitlement.Snapshot `json:"profile"`
}

// GenerateInsightUseCase runs authorize, analyze, persist and debit in that order.
// Nothing is written and nothing is debited unless the analysis succeeded.
type GenerateInsightUseCase struct {
	gate     Gate
	dreams   dream.Repository
	insights insight.Repository
	analyzer analyzer.Analyzer
	renderer markdown.Service
	timeout  time.Duration
	logger   logger.Interface
}

func NewGenerateInsightUseCase(
	gate Gate,
	dreams dream.Repository,
	insights insight.Repository,
	analyzer analyzer.Analyzer,
	renderer markdown.Service,
	timeout time.Duration,
	logger logger.Interface,
) *GenerateInsightUseCase {
	if timeout <= 0 {
		timeout = DefaultAnalyzeTimeout
	}
	return &GenerateInsightUseCase{
		gate:     gate,
		dreams:   dreams,
		insights: insights,
		analyzer: analyzer,
		renderer: renderer,
		timeout:  timeout,
		logger:   logger,
	}
}

func (uc *GenerateInsightUseCase) Execute(ctx context.Context, cmd GenerateInsightCommand) (*GenerateInsightResult, error) {
	if cmd.UserID == "" {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}
	if strings.TrimSpace(cmd.DreamID) == "" {
		return nil, apperrors.NewValidationError("dreamId is required")
	}

	req, err := uc.buildRequest(ctx, cmd)
	if err != nil {
		return nil, err
	}

	decision, err := uc.gate.Authorize(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	analysis, err := uc.analyze(ctx, req)
	if err != nil {
		uc.logger.Errorw("dream analysis failed",
			"user_id", cmd.UserID,
			"dream_id", cmd.DreamID,
			"error", err,
		)
		return nil, apperrors.NewUpstreamError("Failed to generate insight. Please try again later.")
	}

	record, err := insight.NewInsight(cmd.DreamID, cmd.UserID, uc.analyzer.Model(), *analysis)
	if err != nil {
		uc.logger.Warnw("analysis rejected", "dream_id", cmd.DreamID, "error", err)
		return nil, apperrors.NewUpstreamError("Failed to generate insight. Please try again later.")
	}

	if err := uc.insights.Create(ctx, record); err != nil {
		uc.logger.Errorw("failed to persist generated insight",
			"user_id", cmd.UserID,
			"dream_id", cmd.DreamID,
			"error", err,
		)
		return nil, apperrors.NewInternalError("Insight generated but failed to save. Please try again.")
	}

	snapshot, err := uc.gate.Commit(ctx, decision)
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("insight generated",
		"user_id", cmd.UserID,
		"dream_id", cmd.DreamID,
		"insight_id", record.ID(),
		"tier", decision.Tier,
		"balance", snapshot.FreeInsightBalance,
	)

	return &GenerateInsightResult{
		Insight: ToInsightDTO(record, uc.renderer),
		Profile: snapshot,
	}, nil
}

// buildRequest verifies ownership and fills missing text and hints from the stored dream.
func (uc *GenerateInsightUseCase) buildRequest(ctx context.Context, cmd GenerateInsightCommand) (analyzer.Request, error) {
	entry, err := uc.dreams.GetByID(ctx, cmd.UserID, cmd.DreamID)
	if err != nil {
		if errors.Is(err, dream.ErrDreamNotFound) {
			return analyzer.Request{}, apperrors.NewNotFoundError("Dream not found")
		}
		uc.logger.Errorw("failed to load dream", "dream_id", cmd.DreamID, "error", err)
		return analyzer.Request{}, apperrors.NewInternalError("Failed to load dream")
	}

	req := analyzer.Request{
		DreamText: strings.TrimSpace(cmd.DreamText),
		Mood:      strings.TrimSpace(cmd.Mood),
		Tags:      cmd.Tags,
	}
	if req.DreamText == "" {
		req.DreamText = entry.Content()
	}

	if req.Mood == "" && len(req.Tags) == 0 {
		meta, err := uc.dreams.GetMetadata(ctx, entry.ID())
		if err != nil {
			uc.logger.Warnw("failed to load dream metadata", "dream_id", entry.ID(), "error", err)
		} else if meta != nil {
			req.Mood = meta.Mood()
			req.Tags = meta.Tags()
		}
	}

	if req.DreamText == "" {
		return analyzer.Request{}, apperrors.NewValidationError("dreamText is required")
	}
	return req, nil
}

func (uc *GenerateInsightUseCase) analyze(ctx context.Context, req analyzer.Request) (*insight.Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	return uc.analyzer.Analyze(ctx, req)
}

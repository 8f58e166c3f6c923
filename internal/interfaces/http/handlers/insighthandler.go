package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dreamlog-app/dreamlog/internal/application/insight/usecases"
	"github.com/dreamlog-app/dreamlog/internal/interfaces/http/middleware"
	"github.com/dreamlog-app/dreamlog/internal/shared/errors"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
	"github.com/dreamlog-app/dreamlog/internal/shared/utils"
)

type InsightHandler struct {
	generateInsightUC generateInsightUseCase
	logger            logger.Interface
}

func NewInsightHandler(generateInsightUC generateInsightUseCase, logger logger.Interface) *InsightHandler {
	return &InsightHandler{
		generateInsightUC: generateInsightUC,
		logger:            logger,
	}
}

// InsightMetadataRequest overrides the mood and tags stored with the dream.
type InsightMetadataRequest struct {
	UserMood string   `json:"user_mood" binding:"omitempty,max=100"`
	Tags     []string `json:"tags" binding:"omitempty,max=20,dive,max=50"`
}

type GenerateInsightRequest struct {
	DreamID   string                  `json:"dreamId" binding:"required,uuid"`
	DreamText string                  `json:"dreamText" binding:"omitempty,max=20000"`
	Metadata  *InsightMetadataRequest `json:"metadata"`
}

// GenerateInsight handles POST /api/insights/generate
//
//	@Summary		Generate dream insight
//	@Description	Analyze one of the caller's dreams. Free accounts spend one insight credit per success; subscribers are not metered.
//	@Tags			insights
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			request	body		GenerateInsightRequest											true	"Dream to analyze"
//	@Success		200		{object}	utils.APIResponse{data=usecases.GenerateInsightResult}		"Insight generated"
//	@Failure		400		{object}	utils.APIResponse											"Bad request"
//	@Failure		401		{object}	utils.APIResponse											"Unauthorized"
//	@Failure		403		{object}	utils.APIResponse											"No free insights remaining"
//	@Failure		404		{object}	utils.APIResponse											"Dream not found"
//	@Failure		429		{object}	utils.APIResponse											"Too many requests"
//	@Failure		500		{object}	utils.APIResponse											"Analysis or storage failed"
//	@Router			/insights/generate [post]
func (h *InsightHandler) GenerateInsight(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req GenerateInsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for generate insight", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("dreamId is required", err.Error()))
		return
	}

	cmd := usecases.GenerateInsightCommand{
		UserID:    userID,
		DreamID:   req.DreamID,
		DreamText: req.DreamText,
	}
	if req.Metadata != nil {
		cmd.Mood = req.Metadata.UserMood
		cmd.Tags = req.Metadata.Tags
	}

	result, err := h.generateInsightUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

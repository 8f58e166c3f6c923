package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dreamlog-app/dreamlog/internal/application/dream/usecases"
	"github.com/dreamlog-app/dreamlog/internal/interfaces/http/middleware"
	"github.com/dreamlog-app/dreamlog/internal/shared/errors"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
	"github.com/dreamlog-app/dreamlog/internal/shared/utils"
)

type DreamHandler struct {
	createDreamUC createDreamUseCase
	listDreamsUC  listDreamsUseCase
	getDreamUC    getDreamUseCase
	logger        logger.Interface
}

func NewDreamHandler(
	createDreamUC createDreamUseCase,
	listDreamsUC listDreamsUseCase,
	getDreamUC getDreamUseCase,
	logger logger.Interface,
) *DreamHandler {
	return &DreamHandler{
		createDreamUC: createDreamUC,
		listDreamsUC:  listDreamsUC,
		getDreamUC:    getDreamUC,
		logger:        logger,
	}
}

type CreateDreamRequest struct {
	Title      string     `json:"title" binding:"omitempty,max=255"`
	Content    string     `json:"content" binding:"required,max=20000"`
	RecordedAt *time.Time `json:"recorded_at"`
	UserMood   string     `json:"user_mood" binding:"omitempty,max=100"`
	Tags       []string   `json:"tags" binding:"omitempty,max=20,dive,max=50"`
}

// CreateDream handles POST /api/dreams
//
//	@Summary		Record a dream
//	@Tags			dreams
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			request	body		CreateDreamRequest									true	"Dream"
//	@Success		201		{object}	utils.APIResponse{data=usecases.CreateDreamResult}	"Dream recorded"
//	@Failure		400		{object}	utils.APIResponse									"Bad request"
//	@Failure		401		{object}	utils.APIResponse									"Unauthorized"
//	@Router			/dreams [post]
func (h *DreamHandler) CreateDream(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateDreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("content is required", err.Error()))
		return
	}

	result, err := h.createDreamUC.Execute(c.Request.Context(), usecases.CreateDreamCommand{
		UserID:     userID,
		Title:      req.Title,
		Content:    req.Content,
		RecordedAt: req.RecordedAt,
		Mood:       req.UserMood,
		Tags:       req.Tags,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Dream recorded")
}

// ListDreams handles GET /api/dreams
//
//	@Summary		List dreams
//	@Description	The caller's dreams, most recent first
//	@Tags			dreams
//	@Produce		json
//	@Security		Bearer
//	@Param			page		query		int												false	"Page number"	default(1)
//	@Param			page_size	query		int												false	"Page size"		default(20)
//	@Success		200			{object}	utils.APIResponse{data=utils.ListResponse}	"Dreams"
//	@Failure		401			{object}	utils.APIResponse								"Unauthorized"
//	@Router			/dreams [get]
func (h *DreamHandler) ListDreams(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	pagination := utils.ParsePagination(c)
	result, err := h.listDreamsUC.Execute(c.Request.Context(), usecases.ListDreamsQuery{
		UserID:   userID,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Dreams, result.Total, result.Page, result.PageSize)
}

// GetDream handles GET /api/dreams/:id
//
//	@Summary		Get a dream
//	@Description	One of the caller's dreams with its metadata and insights
//	@Tags			dreams
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		string											true	"Dream ID"
//	@Success		200	{object}	utils.APIResponse{data=usecases.DreamDetail}	"Dream"
//	@Failure		401	{object}	utils.APIResponse								"Unauthorized"
//	@Failure		404	{object}	utils.APIResponse								"Dream not found"
//	@Router			/dreams/{id} [get]
func (h *DreamHandler) GetDream(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.getDreamUC.Execute(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

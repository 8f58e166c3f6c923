package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dreamlog-app/dreamlog/internal/application/entitlement/usecases"
	"github.com/dreamlog-app/dreamlog/internal/interfaces/http/middleware"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
	"github.com/dreamlog-app/dreamlog/internal/shared/utils"
)

type getProfileUseCase interface {
	Execute(ctx context.Context, userID string) (*usecases.ProfileResult, error)
}

// ProfileHandler serves the caller's entitlement and plan.
type ProfileHandler struct {
	getProfileUC getProfileUseCase
	logger       logger.Interface
}

func NewProfileHandler(getProfileUC getProfileUseCase, logger logger.Interface) *ProfileHandler {
	return &ProfileHandler{
		getProfileUC: getProfileUC,
		logger:       logger,
	}
}

// GetProfile handles GET /api/profile
//
//	@Summary		Current profile
//	@Description	Free insight balance, subscription status and plan of the caller
//	@Tags			profile
//	@Produce		json
//	@Security		Bearer
//	@Success		200	{object}	utils.APIResponse{data=usecases.ProfileResult}	"Profile"
//	@Failure		401	{object}	utils.APIResponse								"Unauthorized"
//	@Failure		404	{object}	utils.APIResponse								"Profile not found"
//	@Router			/profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.getProfileUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

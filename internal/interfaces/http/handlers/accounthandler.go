package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dreamlog-app/dreamlog/internal/application/account/usecases"
	"github.com/dreamlog-app/dreamlog/internal/shared/errors"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
	"github.com/dreamlog-app/dreamlog/internal/shared/utils"
)

type AccountHandler struct {
	signupUC       signupWithDreamUseCase
	exchangeCodeUC exchangeAuthCodeUseCase
	cookies        SessionCookies
	appURL         string
	logger         logger.Interface
}

func NewAccountHandler(
	signupUC signupWithDreamUseCase,
	exchangeCodeUC exchangeAuthCodeUseCase,
	cookies SessionCookies,
	appURL string,
	logger logger.Interface,
) *AccountHandler {
	return &AccountHandler{
		signupUC:       signupUC,
		exchangeCodeUC: exchangeCodeUC,
		cookies:        cookies,
		appURL:         strings.TrimRight(appURL, "/"),
		logger:         logger,
	}
}

type SignupWithDreamRequest struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
	DreamText string `json:"dreamText" binding:"required,max=20000"`
}

type SignupWithDreamResponse struct {
	UserID string `json:"userId"`
	// DreamID is the first dream, saved during signup
	DreamID string `json:"dreamId"`
	// RequiresEmailConfirmation is true when no session was issued yet
	RequiresEmailConfirmation bool `json:"requiresEmailConfirmation"`
}

// SignupWithDream handles POST /api/auth/signup-with-dream
//
//	@Summary		Sign up with a first dream
//	@Description	Create an account and store the dream the visitor wrote before signing up
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SignupWithDreamRequest								true	"Credentials and dream text"
//	@Success		200		{object}	utils.APIResponse{data=SignupWithDreamResponse}	"Account created"
//	@Failure		400		{object}	utils.APIResponse									"Missing fields or rejected by the auth provider"
//	@Failure		429		{object}	utils.APIResponse									"Too many requests"
//	@Failure		500		{object}	utils.APIResponse									"Account or dream could not be saved"
//	@Router			/auth/signup-with-dream [post]
func (h *AccountHandler) SignupWithDream(c *gin.Context) {
	var req SignupWithDreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Email, password, and dream text are required", err.Error()))
		return
	}

	result, err := h.signupUC.Execute(c.Request.Context(), usecases.SignupWithDreamCommand{
		Email:     req.Email,
		Password:  req.Password,
		DreamText: req.DreamText,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.Session != nil {
		h.cookies.setSession(c, result.Session)
	} else if result.CodeVerifier != "" {
		h.cookies.setCodeVerifier(c, result.CodeVerifier)
	}

	utils.SuccessResponse(c, http.StatusOK, "Account created", SignupWithDreamResponse{
		UserID:                    result.UserID,
		DreamID:                   result.DreamID,
		RequiresEmailConfirmation: result.Session == nil,
	})
}

// AuthCallback handles GET /auth/callback
//
//	@Summary		Auth callback
//	@Description	Exchange the confirmation code for a session and redirect into the app
//	@Tags			auth
//	@Param			code	query	string	false	"PKCE authorization code"
//	@Param			next	query	string	false	"Same-site path to continue to"
//	@Success		302
//	@Router			/auth/callback [get]
func (h *AccountHandler) AuthCallback(c *gin.Context) {
	result := h.exchangeCodeUC.Execute(c.Request.Context(), usecases.ExchangeAuthCodeCommand{
		Code:         c.Query("code"),
		CodeVerifier: h.cookies.codeVerifier(c),
		Next:         c.Query("next"),
	})

	if result.Session != nil {
		h.cookies.setSession(c, result.Session)
		h.cookies.clearCodeVerifier(c)
	}

	c.Redirect(http.StatusFound, h.appURL+result.RedirectPath)
}

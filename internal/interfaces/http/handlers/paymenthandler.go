package handlers

import (
	stderrors "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dreamlog-app/dreamlog/internal/application/payment/usecases"
	"github.com/dreamlog-app/dreamlog/internal/interfaces/http/middleware"
	"github.com/dreamlog-app/dreamlog/internal/shared/constants"
	"github.com/dreamlog-app/dreamlog/internal/shared/errors"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
	"github.com/dreamlog-app/dreamlog/internal/shared/utils"
)

// maxWebhookBodyBytes bounds the raw event body read before signature verification.
const maxWebhookBodyBytes = 1 << 20

type PaymentHandler struct {
	handleEventUC    handlePaymentEventUseCase
	createCheckoutUC createCheckoutSessionUseCase
	reconcileUC      reconcileSubscriptionUseCase
	logger           logger.Interface
}

func NewPaymentHandler(
	handleEventUC handlePaymentEventUseCase,
	createCheckoutUC createCheckoutSessionUseCase,
	reconcileUC reconcileSubscriptionUseCase,
	logger logger.Interface,
) *PaymentHandler {
	return &PaymentHandler{
		handleEventUC:    handleEventUC,
		createCheckoutUC: createCheckoutUC,
		reconcileUC:      reconcileUC,
		logger:           logger,
	}
}

// WebhookAckResponse is the body Stripe receives for an accepted event.
type WebhookAckResponse struct {
	Received bool `json:"received"`
}

// HandleWebhook handles POST /api/stripe/webhook
//
//	@Summary		Stripe webhook
//	@Description	Receive a signed payment lifecycle event. The body must be the raw payload Stripe signed.
//	@Tags			payments
//	@Accept			json
//	@Produce		json
//	@Param			Stripe-Signature	header		string				true	"Stripe signature header"
//	@Success		200					{object}	WebhookAckResponse	"Event acknowledged"
//	@Failure		400					{object}	utils.APIResponse	"Missing or invalid signature"
//	@Failure		500					{object}	utils.APIResponse	"Event could not be applied; Stripe retries"
//	@Router			/stripe/webhook [post]
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Webhook payload too large")
			return
		}
		h.logger.Warnw("failed to read webhook body", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("Webhook Error"))
		return
	}

	result, err := h.handleEventUC.Execute(c.Request.Context(), payload, c.GetHeader(constants.HeaderStripeSignature))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("payment event acknowledged",
		"event_id", result.EventID,
		"type", result.Type,
		"applied", result.Applied,
		"note", result.Note)

	c.JSON(http.StatusOK, WebhookAckResponse{Received: true})
}

type CreateCheckoutSessionRequest struct {
	PriceID string `json:"priceId" binding:"omitempty,max=255"`
}

// CreateCheckoutSession handles POST /api/checkout-session
//
//	@Summary		Start checkout
//	@Description	Create a hosted subscription checkout for the caller
//	@Tags			payments
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			request	body		CreateCheckoutSessionRequest										false	"Price to subscribe to; defaults to the configured plan"
//	@Success		200		{object}	utils.APIResponse{data=usecases.CreateCheckoutSessionResult}	"Checkout session created"
//	@Failure		400		{object}	utils.APIResponse												"No price configured or given"
//	@Failure		401		{object}	utils.APIResponse												"Unauthorized"
//	@Failure		500		{object}	utils.APIResponse												"Payment processor error"
//	@Router			/checkout-session [post]
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateCheckoutSessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
			return
		}
	}

	result, err := h.createCheckoutUC.Execute(c.Request.Context(), usecases.CreateCheckoutSessionCommand{
		UserID:  userID,
		Email:   middleware.GetUserEmail(c),
		PriceID: req.PriceID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

type SyncSubscriptionRequest struct {
	UserID     string `json:"userId" binding:"omitempty,max=64"`
	CustomerID string `json:"customerId" binding:"omitempty,max=255"`
}

// SyncSubscription handles POST /api/sync-subscription
//
//	@Summary		Reconcile subscription
//	@Description	Pull the caller's current subscription from Stripe and store it
//	@Tags			payments
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			request	body		SyncSubscriptionRequest												false	"Optional user and customer hints"
//	@Success		200		{object}	utils.APIResponse{data=usecases.ReconcileSubscriptionResult}	"Subscription synced"
//	@Failure		401		{object}	utils.APIResponse												"Unauthorized"
//	@Failure		403		{object}	utils.APIResponse												"Hint belongs to another user"
//	@Failure		404		{object}	utils.APIResponse												"No Stripe customer found"
//	@Failure		500		{object}	utils.APIResponse												"Payment processor error"
//	@Router			/sync-subscription [post]
func (h *PaymentHandler) SyncSubscription(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SyncSubscriptionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
			return
		}
	}

	result, err := h.reconcileUC.Execute(c.Request.Context(), usecases.ReconcileSubscriptionCommand{
		AuthUserID:      userID,
		RequestedUserID: req.UserID,
		CustomerID:      req.CustomerID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}

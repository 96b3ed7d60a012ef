package rest

import (
	"context"
	"io"
	"net/http"
	"time"

	"shiftHire/domain"
	"shiftHire/internal/middleware"
	"shiftHire/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// maxWebhookBody mirrors the limit Stripe documents for event payloads.
const maxWebhookBody = 65536

type (
	PaymentsService interface {
		CreateCheckout(ctx context.Context, restaurantID, packageID, originURL string) (domain.CheckoutSession, error)
		GetStatus(ctx context.Context, sessionID string) (domain.PaymentStatus, error)
		HandleWebhook(ctx context.Context, payload []byte, signature string) error
	}

	PaymentsHandler struct {
		paymentsService PaymentsService
		validate        *validator.Validate
		timeout         time.Duration
	}

	CheckoutRequest struct {
		PackageID string `json:"package_id"`
		OriginURL string `json:"origin_url" validate:"required,url"`
	}

	WebhookResponse struct {
		Status string `json:"status"`
	}
)

func NewPaymentsHandler(paymentsService PaymentsService) *PaymentsHandler {
	return &PaymentsHandler{
		paymentsService: paymentsService,
		validate:        newValidator(),
		timeout:         10 * time.Second,
	}
}

func (h *PaymentsHandler) CreateCheckout(c echo.Context) error {
	var req CheckoutRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", "error", err)
		return badRequest(c, err)
	}

	if err := h.validate.Struct(&req); err != nil {
		logger.Error("Failed to validate checkout request", "error", err)
		return badRequest(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	session, err := h.paymentsService.CreateCheckout(ctx, middleware.UserID(c), req.PackageID, req.OriginURL)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, session)
}

func (h *PaymentsHandler) GetStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	status, err := h.paymentsService.GetStatus(ctx, c.Param("session_id"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, status)
}

// StripeWebhook reads the raw body since the signature covers exact bytes.
func (h *PaymentsHandler) StripeWebhook(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		logger.Error("Failed to read webhook body", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "Webhook processing failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.paymentsService.HandleWebhook(ctx, payload, c.Request().Header.Get("Stripe-Signature")); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, WebhookResponse{Status: "success"})
}

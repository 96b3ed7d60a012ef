package rest

import (
	"context"
	"net/http"
	"time"

	"shiftHire/business/auth"
	"shiftHire/domain"
	"shiftHire/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	AuthService interface {
		Register(ctx context.Context, in auth.RegisterInput) (domain.TokenResponse, error)
		Login(ctx context.Context, phone, password string) (domain.TokenResponse, error)
	}

	OTPService interface {
		SendOTP(ctx context.Context, phone string) (string, error)
		VerifyOTP(ctx context.Context, phone, code string) error
	}

	AuthHandler struct {
		authService AuthService
		otpService  OTPService
		validator   *validator.Validate
		timeout     time.Duration
	}

	RegisterRequest struct {
		Phone    string  `json:"phone" validate:"required"`
		Password string  `json:"password" validate:"required,min=6,max=72"`
		Role     string  `json:"role" validate:"required,oneof=worker restaurant"`
		Name     string  `json:"name" validate:"required"`
		Email    *string `json:"email" validate:"omitempty,email"`
	}

	LoginRequest struct {
		Phone    string `json:"phone" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	OTPRequest struct {
		Phone string `json:"phone" validate:"required"`
	}

	OTPVerifyRequest struct {
		Phone string `json:"phone" validate:"required"`
		OTP   string `json:"otp" validate:"required"`
	}

	// OTPSentResponse returns the code itself while delivery is a placeholder.
	OTPSentResponse struct {
		Message string `json:"message"`
		OTP     string `json:"otp"`
	}
)

func NewAuthHandler(authService AuthService, otpService OTPService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		otpService:  otpService,
		validator:   newValidator(),
		timeout:     10 * time.Second,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", "error", err)
		return badRequest(c, err)
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate register request", "error", err)
		return badRequest(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, err := h.authService.Register(ctx, auth.RegisterInput{
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
		Name:     req.Name,
		Email:    req.Email,
	})
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, token)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return badRequest(c, err)
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate login request", "error", err)
		return badRequest(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, err := h.authService.Login(ctx, req.Phone, req.Password)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, token)
}

func (h *AuthHandler) SendOTP(c echo.Context) error {
	var req OTPRequest

	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	code, err := h.otpService.SendOTP(ctx, req.Phone)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, OTPSentResponse{Message: "OTP sent successfully", OTP: code})
}

func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req OTPVerifyRequest

	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.otpService.VerifyOTP(ctx, req.Phone, req.OTP); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "OTP verified successfully"})
}

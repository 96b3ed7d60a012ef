package domain

import "errors"

var (
	ErrDuplicateResource   = errors.New("already exists")
	ErrInvalidCredentials  = errors.New("invalid phone or password")
	ErrInvalidToken        = errors.New("invalid authentication")
	ErrForbidden           = errors.New("access denied")
	ErrNotFound            = errors.New("not found")
	ErrPreconditionFailed  = errors.New("precondition failed")
	ErrInvalidPackage      = errors.New("invalid package")
	ErrInvalidOTP          = errors.New("invalid otp")
	ErrInvalidInput        = errors.New("invalid input")
	ErrWebhookVerification = errors.New("webhook processing failed")

	// ErrExternalService marks LLM or gateway failures. Callers degrade instead of surfacing it.
	ErrExternalService = errors.New("external service failure")
)

package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"shiftHire/domain"
	"shiftHire/pkg/logger"
)

// OTPStore is an expiring key-value capability. Take must delete the entry
// atomically and only when it equals expected.
type OTPStore interface {
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Take(ctx context.Context, key, expected string) (bool, error)
}

// NotificationRepository contract interface
type NotificationRepository interface {
	Enabled() bool
	SendSMS(ctx context.Context, toPhone, message string) error
}

type otpService struct {
	store    OTPStore
	notifier NotificationRepository
	ttl      time.Duration
	generate func() (string, error)
}

const smsBody = "Your shiftHire verification code is %s. It expires in %d minutes."

func NewOTPService(store OTPStore, notifier NotificationRepository, ttl time.Duration) *otpService {
	return &otpService{
		store:    store,
		notifier: notifier,
		ttl:      ttl,
		generate: generateCode,
	}
}

// SendOTP stores a fresh code for phone and returns it. SMS delivery is best effort.
func (s *otpService) SendOTP(ctx context.Context, phone string) (string, error) {
	if phone == "" {
		return "", fmt.Errorf("%w: phone is required", domain.ErrInvalidInput)
	}

	code, err := s.generate()
	if err != nil {
		logger.Error("Failed to generate otp", "error", err)
		return "", err
	}

	if err := s.store.Put(ctx, phone, code, s.ttl); err != nil {
		logger.Error("Failed to store otp", "error", err)
		return "", err
	}

	if s.notifier != nil && s.notifier.Enabled() {
		msg := fmt.Sprintf(smsBody, code, int(s.ttl.Minutes()))
		if err := s.notifier.SendSMS(ctx, phone, msg); err != nil {
			logger.Warn("Failed to send otp sms", "error", err)
		}
	}

	return code, nil
}

// VerifyOTP consumes the stored code on an exact match only.
func (s *otpService) VerifyOTP(ctx context.Context, phone, code string) error {
	ok, err := s.store.Take(ctx, phone, code)
	if err != nil {
		logger.Error("Failed to verify otp", "error", err)
		return err
	}

	if !ok {
		return domain.ErrInvalidOTP
	}

	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

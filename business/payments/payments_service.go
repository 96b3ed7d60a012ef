package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shiftHire/domain"
	"shiftHire/pkg/logger"
	"shiftHire/pkg/metrics"

	"gorm.io/datatypes"
)

const DefaultPackage = "commission"

// Packages maps a package id to its price in major currency units.
var Packages = map[string]float64{
	"commission": 1500,
	"monthly":    5000,
	"annual":     50000,
}

// paidEvents are the callbacks that can settle a checkout.
var paidEvents = map[string]bool{
	"checkout.session.completed":               true,
	"checkout.session.async_payment_succeeded": true,
}

// PaymentsRepository contract interface
type PaymentsRepository interface {
	CreateTransaction(ctx context.Context, tx *domain.PaymentTransaction) error
	FindBySessionID(ctx context.Context, sessionID string) (domain.PaymentTransaction, error)
	MarkPaid(ctx context.Context, sessionID string) (bool, error)
}

// PaymentGateway is the hosted checkout provider.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest, productName string) (domain.CheckoutSession, error)
	GetCheckoutStatus(ctx context.Context, sessionID string) (domain.GatewayStatus, error)
	ParseWebhook(payload []byte, signature string) (domain.WebhookEvent, error)
}

type Recorder interface {
	RecordWebhook(result string)
}

type paymentsService struct {
	paymentRepo PaymentsRepository
	gateway     PaymentGateway
	recorder    Recorder
	currency    string
}

func NewPaymentsService(paymentRepo PaymentsRepository, gateway PaymentGateway, recorder Recorder, currency string) *paymentsService {
	return &paymentsService{
		paymentRepo: paymentRepo,
		gateway:     gateway,
		recorder:    recorder,
		currency:    currency,
	}
}

func (s *paymentsService) CreateCheckout(ctx context.Context, restaurantID, packageID, originURL string) (domain.CheckoutSession, error) {
	if packageID == "" {
		packageID = DefaultPackage
	}

	amount, ok := Packages[packageID]
	if !ok {
		return domain.CheckoutSession{}, domain.ErrInvalidPackage
	}

	originURL = strings.TrimRight(strings.TrimSpace(originURL), "/")
	if originURL == "" {
		return domain.CheckoutSession{}, fmt.Errorf("%w: origin_url is required", domain.ErrInvalidInput)
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, domain.CheckoutRequest{
		Amount:     amount,
		Currency:   s.currency,
		SuccessURL: originURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  originURL + "/dashboard",
		Metadata: map[string]string{
			"restaurant_id": restaurantID,
			"package_id":    packageID,
		},
	}, "shiftHire "+packageID+" package")
	if err != nil {
		logger.Error("Failed to create checkout session", "error", err, "restaurant_id", restaurantID)
		return domain.CheckoutSession{}, err
	}

	tx := domain.PaymentTransaction{
		RestaurantID:  restaurantID,
		SessionID:     session.SessionID,
		Amount:        amount,
		Currency:      s.currency,
		PaymentStatus: domain.PaymentPending,
		Metadata:      datatypes.JSONMap{"package_id": packageID},
	}
	if err := s.paymentRepo.CreateTransaction(ctx, &tx); err != nil {
		logger.Error("Failed to persist payment transaction", "error", err, "session_id", session.SessionID)
		return domain.CheckoutSession{}, err
	}

	return session, nil
}

// GetStatus prefers the gateway's view and falls back to the stored
// transaction when the gateway cannot be reached.
func (s *paymentsService) GetStatus(ctx context.Context, sessionID string) (domain.PaymentStatus, error) {
	tx, err := s.paymentRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return domain.PaymentStatus{}, err
	}

	status, err := s.gateway.GetCheckoutStatus(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to query checkout status", "error", err, "session_id", sessionID)
		return domain.PaymentStatus{
			SessionID:     tx.SessionID,
			Status:        tx.PaymentStatus,
			PaymentStatus: tx.PaymentStatus,
			Amount:        tx.Amount,
			Currency:      tx.Currency,
		}, nil
	}

	if status.PaymentStatus == domain.PaymentPaid && tx.PaymentStatus != domain.PaymentPaid {
		if _, err := s.paymentRepo.MarkPaid(ctx, sessionID); err != nil {
			logger.Error("Failed to mark transaction paid", "error", err, "session_id", sessionID)
		}
	}

	return domain.PaymentStatus{
		SessionID:     sessionID,
		Status:        status.Status,
		PaymentStatus: status.PaymentStatus,
		Amount:        float64(status.AmountTotal) / 100,
		Currency:      status.Currency,
	}, nil
}

// HandleWebhook reconciles a signed gateway callback. Only verification
// failures are returned; unknown sessions and redeliveries are acknowledged.
func (s *paymentsService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		logger.Warn("Rejected webhook", "error", err)
		s.record(metrics.WebhookRejected)
		return domain.ErrWebhookVerification
	}

	if !paidEvents[event.Type] || event.SessionID == "" || event.PaymentStatus != domain.PaymentPaid {
		logger.Info("Ignoring webhook event", "type", event.Type, "session_id", event.SessionID)
		s.record(metrics.WebhookIgnored)
		return nil
	}

	updated, err := s.paymentRepo.MarkPaid(ctx, event.SessionID)
	if err != nil {
		logger.Error("Failed to apply webhook", "error", err, "session_id", event.SessionID)
		return err
	}
	if !updated {
		if _, err := s.paymentRepo.FindBySessionID(ctx, event.SessionID); errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Webhook for unknown session", "session_id", event.SessionID)
		} else {
			logger.Info("Duplicate webhook delivery", "session_id", event.SessionID)
		}
		s.record(metrics.WebhookIgnored)
		return nil
	}

	s.record(metrics.WebhookApplied)
	return nil
}

func (s *paymentsService) record(result string) {
	if s.recorder != nil {
		s.recorder.RecordWebhook(result)
	}
}

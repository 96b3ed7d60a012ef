package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"shiftHire/domain"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	// BackendURL overrides the API host; empty means api.stripe.com.
	BackendURL string
}

type StripeRepository struct {
	api           *client.API
	webhookSecret string
}

func NewStripeRepository(cfg StripeConfig) *StripeRepository {
	newBackend := func(kind stripe.SupportedBackend) stripe.Backend {
		bc := &stripe.BackendConfig{
			MaxNetworkRetries: stripe.Int64(0),
			LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
		}
		if cfg.BackendURL != "" {
			bc.URL = stripe.String(cfg.BackendURL)
		}
		return stripe.GetBackendWithConfig(kind, bc)
	}

	api := &client.API{}
	api.Init(cfg.SecretKey, &stripe.Backends{
		API:     newBackend(stripe.APIBackend),
		Connect: newBackend(stripe.ConnectBackend),
		Uploads: newBackend(stripe.UploadsBackend),
	})

	return &StripeRepository{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
	}
}

// CreateCheckoutSession opens a hosted one-item payment page.
func (r *StripeRepository) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest, productName string) (domain.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params:     stripe.Params{Context: ctx},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(toMinorUnits(req.Amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(productName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: req.Metadata,
	}

	session, err := r.api.CheckoutSessions.New(params)
	if err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}

	return domain.CheckoutSession{
		URL:       session.URL,
		SessionID: session.ID,
	}, nil
}

func (r *StripeRepository) GetCheckoutStatus(ctx context.Context, sessionID string) (domain.GatewayStatus, error) {
	params := &stripe.CheckoutSessionParams{Params: stripe.Params{Context: ctx}}
	session, err := r.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return domain.GatewayStatus{}, fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}

	return domain.GatewayStatus{
		Status:        string(session.Status),
		PaymentStatus: string(session.PaymentStatus),
		AmountTotal:   session.AmountTotal,
		Currency:      string(session.Currency),
	}, nil
}

// ParseWebhook verifies the Stripe-Signature header and extracts the
// checkout session carried by the event, if any.
func (r *StripeRepository) ParseWebhook(payload []byte, signature string) (domain.WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, r.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return domain.WebhookEvent{}, fmt.Errorf("%w: %v", domain.ErrWebhookVerification, err)
	}

	out := domain.WebhookEvent{Type: string(event.Type)}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted,
		stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded,
		stripe.EventTypeCheckoutSessionAsyncPaymentFailed,
		stripe.EventTypeCheckoutSessionExpired:
		if event.Data == nil {
			return domain.WebhookEvent{}, fmt.Errorf("%w: event without data", domain.ErrWebhookVerification)
		}

		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return domain.WebhookEvent{}, fmt.Errorf("%w: %v", domain.ErrWebhookVerification, err)
		}
		out.SessionID = session.ID
		out.PaymentStatus = string(session.PaymentStatus)
	}

	return out, nil
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

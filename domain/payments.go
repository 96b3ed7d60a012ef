package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

type PaymentTransaction struct {
	ID            string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RestaurantID  string            `json:"restaurant_id" gorm:"column:restaurant_id;type:varchar(36);index;not null"`
	SessionID     string            `json:"session_id" gorm:"column:session_id;uniqueIndex;not null"`
	Amount        float64           `json:"amount" gorm:"column:amount"`
	Currency      string            `json:"currency" gorm:"column:currency"`
	PaymentStatus string            `json:"payment_status" gorm:"column:payment_status;not null"`
	Metadata      datatypes.JSONMap `json:"metadata" gorm:"column:metadata"`
	CreatedAt     time.Time         `json:"created_at"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}

func (p *PaymentTransaction) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// CheckoutSession is the hosted checkout page created at the gateway.
type CheckoutSession struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

type CheckoutRequest struct {
	Amount     float64
	Currency   string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// GatewayStatus is the gateway's authoritative view of a session.
type GatewayStatus struct {
	Status        string
	PaymentStatus string
	AmountTotal   int64
	Currency      string
}

type PaymentStatus struct {
	SessionID     string  `json:"session_id"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}

// WebhookEvent is a verified gateway callback reduced to what reconciliation needs.
type WebhookEvent struct {
	Type          string
	SessionID     string
	PaymentStatus string
}

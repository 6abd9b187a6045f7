package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pending order statuses. Transitions are one-way: once an order leaves
// "pending" it never comes back.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusFailed    = "failed"
	OrderStatusExpired   = "expired"
)

// PendingOrder tracks a donation intent between PayPal order creation and
// capture. Rows are never deleted; terminal rows stay as an audit trail.
type PendingOrder struct {
	ID            int64            `db:"id" json:"id"`
	PayPalOrderID string           `db:"paypal_order_id" json:"paypal_order_id"`
	DonorName     string           `db:"donor_name" json:"donor_name"`
	DonorEmail    *string          `db:"donor_email" json:"donor_email"`
	Amount        decimal.Decimal  `db:"amount" json:"amount"`
	Currency      string           `db:"currency" json:"currency"`
	LocalAmount   *decimal.Decimal `db:"local_amount" json:"local_amount,omitempty"`
	LocalCurrency *string          `db:"local_currency" json:"local_currency,omitempty"`
	CampaignID    *int64           `db:"campaign_id" json:"campaign_id,omitempty"`
	Status        string           `db:"status" json:"status"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
	ExpiresAt     time.Time        `db:"expires_at" json:"expires_at"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation is a confirmed, captured payment. Created exactly once per
// successful capture and immutable afterwards.
type Donation struct {
	ID            int64            `db:"id" json:"id"`
	DonorName     string           `db:"donor_name" json:"donor_name"`
	DonorEmail    string           `db:"donor_email" json:"donor_email"`
	Amount        decimal.Decimal  `db:"amount" json:"amount"`
	Currency      string           `db:"currency" json:"currency"`
	LocalAmount   *decimal.Decimal `db:"local_amount" json:"local_amount,omitempty"`
	LocalCurrency *string          `db:"local_currency" json:"local_currency,omitempty"`
	PayPalOrderID *string          `db:"paypal_order_id" json:"paypal_order_id,omitempty"`
	CampaignID    *int64           `db:"campaign_id" json:"campaign_id,omitempty"`
	Status        string           `db:"status" json:"status"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campaign is a fundraising target with a running total. CurrentAmount is
// only ever incremented by the capture workflow.
type Campaign struct {
	ID            int64           `db:"id" json:"id"`
	Title         string          `db:"title" json:"title"`
	Description   string          `db:"description" json:"description"`
	GoalAmount    decimal.Decimal `db:"goal_amount" json:"goal_amount"`
	CurrentAmount decimal.Decimal `db:"current_amount" json:"current_amount"`
	StartDate     time.Time       `db:"start_date" json:"start_date"`
	EndDate       *time.Time      `db:"end_date" json:"end_date,omitempty"`
	IsActive      bool            `db:"is_active" json:"is_active"`
	ImageURL      *string         `db:"image_url" json:"image_url,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

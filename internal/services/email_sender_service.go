package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// Mailer sends transactional email. Implemented by external/resend; every
// send is best-effort and never blocks a completed capture.
type Mailer interface {
	SendDonationReceipt(
		ctx context.Context,
		toEmail string,
		donorName string,
		amount decimal.Decimal,
		currency string,
		donationID int64,
		dateLabel string,
	) error
	SendContactNotification(ctx context.Context, name, email, subject, message string) error
}

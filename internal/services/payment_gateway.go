package services

import (
	"context"

	"github.com/giftofhope10-tech/gift-of-hope/external/paypal"

	"github.com/shopspring/decimal"
)

// PaymentGateway is the payment-provider client the donation workflow
// depends on. Implemented by external/paypal.Client.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, currencyCode, description string) (*paypal.OrderResult, error)
	CaptureOrder(ctx context.Context, orderID string) (*paypal.CaptureResult, error)
}

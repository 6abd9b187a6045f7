package services

import "errors"

// Donation workflow error taxonomy. The HTTP layer maps these to statuses
// and response bodies; wrapped detail stays in the logs.
var (
	ErrInvalidAmount           = errors.New("invalid donation amount")
	ErrPaymentProvider         = errors.New("failed to create order")
	ErrOrderPersistence        = errors.New("failed to store order details")
	ErrOrderNotFound           = errors.New("order not found or expired")
	ErrOrderAlreadyProcessed   = errors.New("order already processed")
	ErrOrderExpired            = errors.New("order has expired")
	ErrCaptureFailed           = errors.New("paypal capture failed")
	ErrInvalidProviderResponse = errors.New("invalid paypal response")
	ErrAmountCurrencyMismatch  = errors.New("payment amount/currency mismatch")

	ErrMissingContactFields = errors.New("all fields are required")
)

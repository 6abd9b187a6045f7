package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/giftofhope10-tech/gift-of-hope/external/paypal"
	"github.com/giftofhope10-tech/gift-of-hope/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderTTL is how long a created order stays capturable. Captures past this
// horizon move the order to 'expired' instead of charging the donor.
const orderTTL = 3 * time.Hour

// receiptTimeout bounds the receipt send so a slow mail API cannot hold a
// donor's success response hostage.
const receiptTimeout = 30 * time.Second

type PendingOrderStore interface {
	Create(ctx context.Context, po *model.PendingOrder) error
	GetByPayPalOrderID(ctx context.Context, paypalOrderID string) (*model.PendingOrder, error)
	MarkStatus(ctx context.Context, id int64, status string) (bool, error)
}

type DonationStore interface {
	// FinalizeCapture atomically claims the pending order and inserts the
	// donation. won=false means another request claimed it first.
	FinalizeCapture(ctx context.Context, po *model.PendingOrder) (donationID int64, won bool, err error)
	ListRecent(ctx context.Context, limit int) ([]model.Donation, error)
	DeleteByDonorEmail(ctx context.Context, email string) (int64, error)
}

type CampaignTotals interface {
	AddToCurrentAmount(ctx context.Context, id int64, amount decimal.Decimal) (bool, error)
}

// DonationService owns the order reconciliation workflow: it creates
// provider orders, tracks them as pending records, and converts capture
// confirmations into durable donations exactly once.
type DonationService struct {
	PendingOrders PendingOrderStore
	Donations     DonationStore
	Campaigns     CampaignTotals
	Gateway       PaymentGateway
	Mailer        Mailer

	// Settlement is the single currency every provider order is created
	// in, regardless of the donor's display currency.
	Settlement string

	Log zerolog.Logger
}

func NewDonationService(
	po PendingOrderStore,
	d DonationStore,
	c CampaignTotals,
	gw PaymentGateway,
	m Mailer,
	settlementCurrency string,
	log zerolog.Logger,
) *DonationService {
	return &DonationService{
		PendingOrders: po,
		Donations:     d,
		Campaigns:     c,
		Gateway:       gw,
		Mailer:        m,
		Settlement:    settlementCurrency,
		Log:           log,
	}
}

type CreateOrderInput struct {
	DonorName     string
	DonorEmail    string
	Amount        string
	Currency      string
	LocalAmount   string
	LocalCurrency string
	CampaignID    *int64
}

// CreateOrder creates a provider order in the settlement currency and
// persists a pending record with a 3-hour expiry. The provider payload is
// returned unchanged for the donor's browser to continue the PayPal flow.
func (s *DonationService) CreateOrder(ctx context.Context, in CreateOrderInput) (json.RawMessage, error) {
	donorName := sanitizeText(in.DonorName)
	if donorName == "" {
		donorName = "Anonymous"
	}

	var donorEmail *string
	if e := sanitizeText(in.DonorEmail); e != "" {
		donorEmail = &e
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil || !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = s.Settlement
	}

	var localAmount *decimal.Decimal
	if la, err := decimal.NewFromString(strings.TrimSpace(in.LocalAmount)); err == nil && in.LocalAmount != "" {
		localAmount = &la
	}
	var localCurrency *string
	if lc := strings.ToUpper(strings.TrimSpace(in.LocalCurrency)); lc != "" {
		localCurrency = &lc
	}

	order, err := s.Gateway.CreateOrder(
		ctx,
		amount,
		s.Settlement,
		"Donation to Gift of Hope from "+donorName,
	)
	if err != nil {
		s.Log.Error().Err(err).Msg("paypal order creation failed")
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}
	if order.ID == "" || order.Status == "" {
		return nil, fmt.Errorf("%w: order response missing id or status", ErrPaymentProvider)
	}

	po := &model.PendingOrder{
		PayPalOrderID: order.ID,
		DonorName:     donorName,
		DonorEmail:    donorEmail,
		Amount:        amount,
		Currency:      currency,
		LocalAmount:   localAmount,
		LocalCurrency: localCurrency,
		CampaignID:    in.CampaignID,
		Status:        model.OrderStatusPending,
		ExpiresAt:     time.Now().Add(orderTTL),
	}
	if err := s.PendingOrders.Create(ctx, po); err != nil {
		// The provider-side order already exists at this point; there is no
		// local record tracking it. Surfaced loudly, not hidden.
		s.Log.Error().Err(err).
			Str("paypal_order_id", order.ID).
			Msg("failed to store pending order after paypal order creation")
		return nil, fmt.Errorf("%w: %v", ErrOrderPersistence, err)
	}

	s.Log.Info().
		Str("paypal_order_id", order.ID).
		Str("amount", amount.StringFixed(2)).
		Str("currency", currency).
		Msg("pending order created")

	return order.Raw, nil
}

// CaptureOrder runs the capture state machine for a previously created
// order: status guard, expiry guard, provider capture, amount/currency
// integrity check, then the transactional donation insert. The raw capture
// payload is returned on success.
func (s *DonationService) CaptureOrder(ctx context.Context, paypalOrderID string) (json.RawMessage, error) {
	if paypalOrderID == "" {
		return nil, ErrOrderNotFound
	}

	po, err := s.PendingOrders.GetByPayPalOrderID(ctx, paypalOrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderPersistence, err)
	}
	if po == nil {
		return nil, ErrOrderNotFound
	}

	if po.Status != model.OrderStatusPending {
		return nil, ErrOrderAlreadyProcessed
	}

	if time.Now().After(po.ExpiresAt) {
		s.markOrder(ctx, po.ID, model.OrderStatusExpired)
		return nil, ErrOrderExpired
	}

	// From here on, every exit that has not reached a terminal status moves
	// the order to 'failed' so it never lingers in 'pending' past a hard
	// failure. The write is best-effort: a secondary failure is logged and
	// the caller keeps the original error.
	settled := false
	defer func() {
		if !settled {
			s.markOrder(ctx, po.ID, model.OrderStatusFailed)
		}
	}()

	capture, err := s.Gateway.CaptureOrder(ctx, paypalOrderID)
	if err != nil {
		s.Log.Error().Err(err).
			Str("paypal_order_id", paypalOrderID).
			Msg("paypal capture failed")
		return nil, ErrCaptureFailed
	}

	if capture.Status != paypal.OrderCompleted {
		return nil, ErrInvalidProviderResponse
	}

	captured := capture.FirstCaptureAmount()
	if captured == nil || captured.Value == "" || captured.CurrencyCode == "" {
		return nil, ErrInvalidProviderResponse
	}

	capturedAmount, err := decimal.NewFromString(captured.Value)
	if err != nil {
		return nil, ErrInvalidProviderResponse
	}

	if !capturedAmount.Equal(po.Amount) || captured.CurrencyCode != po.Currency {
		s.Log.Warn().
			Str("paypal_order_id", paypalOrderID).
			Str("captured", captured.Value+" "+captured.CurrencyCode).
			Str("recorded", po.Amount.StringFixed(2)+" "+po.Currency).
			Msg("captured amount/currency does not match recorded order")
		return nil, ErrAmountCurrencyMismatch
	}

	donationID, won, err := s.Donations.FinalizeCapture(ctx, po)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderPersistence, err)
	}
	if !won {
		// A concurrent capture claimed the order between our status read
		// and the conditional update. It is already terminal.
		settled = true
		return nil, ErrOrderAlreadyProcessed
	}
	settled = true

	if po.CampaignID != nil {
		found, err := s.Campaigns.AddToCurrentAmount(ctx, *po.CampaignID, po.Amount)
		if err != nil {
			s.Log.Error().Err(err).
				Int64("campaign_id", *po.CampaignID).
				Msg("campaign total update failed")
		} else if !found {
			// Campaign was deleted between order creation and capture.
			s.Log.Info().
				Int64("campaign_id", *po.CampaignID).
				Msg("campaign gone, skipping total update")
		}
	}

	if po.DonorEmail != nil && *po.DonorEmail != "" {
		sendCtx, cancel := context.WithTimeout(ctx, receiptTimeout)
		if err := s.Mailer.SendDonationReceipt(
			sendCtx,
			*po.DonorEmail,
			po.DonorName,
			po.Amount,
			po.Currency,
			donationID,
			time.Now().Format("January 2, 2006"),
		); err != nil {
			s.Log.Error().Err(err).
				Int64("donation_id", donationID).
				Msg("receipt email failed")
		}
		cancel()
	}

	s.Log.Info().
		Int64("donation_id", donationID).
		Str("paypal_order_id", paypalOrderID).
		Str("amount", po.Amount.StringFixed(2)).
		Str("currency", po.Currency).
		Msg("donation captured")

	return capture.Raw, nil
}

func (s *DonationService) markOrder(ctx context.Context, id int64, status string) {
	if _, err := s.PendingOrders.MarkStatus(ctx, id, status); err != nil {
		s.Log.Error().Err(err).
			Int64("pending_order_id", id).
			Str("status", status).
			Msg("failed to update pending order status")
	}
}

// ListRecent returns full donation rows for the admin dashboard.
func (s *DonationService) ListRecent(ctx context.Context, limit int) ([]model.Donation, error) {
	return s.Donations.ListRecent(ctx, limit)
}

// DeleteDonorData removes every donation tied to a donor email, for
// data-deletion requests.
func (s *DonationService) DeleteDonorData(ctx context.Context, email string) (int64, error) {
	email = strings.ToLower(sanitizeText(email))
	if email == "" {
		return 0, ErrMissingContactFields
	}
	return s.Donations.DeleteByDonorEmail(ctx, email)
}

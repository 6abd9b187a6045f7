package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/giftofhope10-tech/gift-of-hope/external/paypal"
	"github.com/giftofhope10-tech/gift-of-hope/internal/model"

	"github.com/shopspring/decimal"
)

// Common test errors
var (
	errMockStore   = errors.New("mock store error")
	errMockGateway = errors.New("mock gateway error")
	errMockMailer  = errors.New("mock mailer error")
)

type markCall struct {
	ID     int64
	Status string
}

type mockPendingOrders struct {
	Orders    map[string]*model.PendingOrder
	Created   []*model.PendingOrder
	CreateErr error
	GetErr    error
	MarkErr   error
	MarkCalls []markCall
}

func (m *mockPendingOrders) Create(ctx context.Context, po *model.PendingOrder) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	po.ID = int64(len(m.Created) + 1)
	po.CreatedAt = time.Now()
	m.Created = append(m.Created, po)
	return nil
}

func (m *mockPendingOrders) GetByPayPalOrderID(ctx context.Context, id string) (*model.PendingOrder, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Orders[id], nil
}

func (m *mockPendingOrders) MarkStatus(ctx context.Context, id int64, status string) (bool, error) {
	m.MarkCalls = append(m.MarkCalls, markCall{ID: id, Status: status})
	if m.MarkErr != nil {
		return false, m.MarkErr
	}
	return true, nil
}

type mockDonations struct {
	FinalizeCalls []*model.PendingOrder
	FinalizeErr   error
	Lost          bool // simulate losing the conditional claim
	nextID        int64

	Recent     []model.Donation
	DeletedFor []string
}

func (m *mockDonations) FinalizeCapture(ctx context.Context, po *model.PendingOrder) (int64, bool, error) {
	m.FinalizeCalls = append(m.FinalizeCalls, po)
	if m.FinalizeErr != nil {
		return 0, false, m.FinalizeErr
	}
	if m.Lost {
		return 0, false, nil
	}
	m.nextID++
	return m.nextID, true, nil
}

func (m *mockDonations) ListRecent(ctx context.Context, limit int) ([]model.Donation, error) {
	return m.Recent, nil
}

func (m *mockDonations) DeleteByDonorEmail(ctx context.Context, email string) (int64, error) {
	m.DeletedFor = append(m.DeletedFor, email)
	return 1, nil
}

type addCall struct {
	ID     int64
	Amount decimal.Decimal
}

type mockCampaignTotals struct {
	AddCalls []addCall
	AddErr   error
	Missing  bool
}

func (m *mockCampaignTotals) AddToCurrentAmount(ctx context.Context, id int64, amount decimal.Decimal) (bool, error) {
	m.AddCalls = append(m.AddCalls, addCall{ID: id, Amount: amount})
	if m.AddErr != nil {
		return false, m.AddErr
	}
	return !m.Missing, nil
}

type mockGateway struct {
	CreateFunc   func(ctx context.Context, amount decimal.Decimal, currencyCode, description string) (*paypal.OrderResult, error)
	CaptureFunc  func(ctx context.Context, orderID string) (*paypal.CaptureResult, error)
	CreateCalls  int
	CaptureCalls int
	LastCurrency string
	LastAmount   decimal.Decimal
}

func (m *mockGateway) CreateOrder(ctx context.Context, amount decimal.Decimal, currencyCode, description string) (*paypal.OrderResult, error) {
	m.CreateCalls++
	m.LastAmount = amount
	m.LastCurrency = currencyCode
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, amount, currencyCode, description)
	}
	return &paypal.OrderResult{
		ID:     "PP-ORDER-1",
		Status: "CREATED",
		Raw:    json.RawMessage(`{"id":"PP-ORDER-1","status":"CREATED"}`),
	}, nil
}

func (m *mockGateway) CaptureOrder(ctx context.Context, orderID string) (*paypal.CaptureResult, error) {
	m.CaptureCalls++
	if m.CaptureFunc != nil {
		return m.CaptureFunc(ctx, orderID)
	}
	return completedCapture("25.00", "USD"), nil
}

// completedCapture builds the nested provider payload for a successful
// capture of the given amount.
func completedCapture(value, currency string) *paypal.CaptureResult {
	return &paypal.CaptureResult{
		ID:     "PP-ORDER-1",
		Status: paypal.OrderCompleted,
		PurchaseUnits: []paypal.PurchaseUnit{
			{
				Payments: &paypal.Payments{
					Captures: []paypal.Capture{
						{
							Status: paypal.OrderCompleted,
							Amount: &paypal.Amount{Value: value, CurrencyCode: currency},
						},
					},
				},
			},
		},
		Raw: json.RawMessage(`{"status":"COMPLETED"}`),
	}
}

type receiptCall struct {
	To         string
	DonorName  string
	Amount     decimal.Decimal
	Currency   string
	DonationID int64
}

type mockMailer struct {
	ReceiptCalls []receiptCall
	ReceiptErr   error
	NotifyCalls  int
	NotifyErr    error
}

func (m *mockMailer) SendDonationReceipt(
	ctx context.Context,
	toEmail, donorName string,
	amount decimal.Decimal,
	currency string,
	donationID int64,
	dateLabel string,
) error {
	m.ReceiptCalls = append(m.ReceiptCalls, receiptCall{
		To:         toEmail,
		DonorName:  donorName,
		Amount:     amount,
		Currency:   currency,
		DonationID: donationID,
	})
	return m.ReceiptErr
}

func (m *mockMailer) SendContactNotification(ctx context.Context, name, email, subject, message string) error {
	m.NotifyCalls++
	return m.NotifyErr
}

type mockContacts struct {
	Created   []*model.Contact
	CreateErr error
	Statuses  map[int64]string
	Deleted   []string
}

func (m *mockContacts) Create(ctx context.Context, c *model.Contact) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	c.ID = int64(len(m.Created) + 1)
	m.Created = append(m.Created, c)
	return nil
}

func (m *mockContacts) ListRecent(ctx context.Context, limit int) ([]model.Contact, error) {
	out := make([]model.Contact, 0, len(m.Created))
	for _, c := range m.Created {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockContacts) UpdateStatus(ctx context.Context, id int64, status string) error {
	if m.Statuses == nil {
		m.Statuses = map[int64]string{}
	}
	m.Statuses[id] = status
	return nil
}

func (m *mockContacts) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	m.Deleted = append(m.Deleted, email)
	return 1, nil
}

type mockCampaignStore struct {
	Campaigns  map[int64]*model.Campaign
	Created    []*model.Campaign
	ExpiredN   int64
	ExpiredErr error
	SweepCalls int
}

func (m *mockCampaignStore) Create(ctx context.Context, c *model.Campaign) error {
	c.ID = int64(len(m.Created) + 1)
	c.CurrentAmount = decimal.Zero
	c.IsActive = true
	c.StartDate = time.Now()
	c.CreatedAt = time.Now()
	m.Created = append(m.Created, c)
	return nil
}

func (m *mockCampaignStore) GetByID(ctx context.Context, id int64) (*model.Campaign, error) {
	return m.Campaigns[id], nil
}

func (m *mockCampaignStore) Update(ctx context.Context, c *model.Campaign) error {
	if m.Campaigns == nil {
		m.Campaigns = map[int64]*model.Campaign{}
	}
	m.Campaigns[c.ID] = c
	return nil
}

func (m *mockCampaignStore) SetActive(ctx context.Context, id int64, active bool) error {
	if c := m.Campaigns[id]; c != nil {
		c.IsActive = active
	}
	return nil
}

func (m *mockCampaignStore) Delete(ctx context.Context, id int64) error {
	delete(m.Campaigns, id)
	return nil
}

func (m *mockCampaignStore) ListActive(ctx context.Context) ([]model.Campaign, error) {
	var out []model.Campaign
	for _, c := range m.Campaigns {
		if c.IsActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockCampaignStore) ListAll(ctx context.Context) ([]model.Campaign, error) {
	var out []model.Campaign
	for _, c := range m.Campaigns {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockCampaignStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.SweepCalls++
	if m.ExpiredErr != nil {
		return 0, m.ExpiredErr
	}
	return m.ExpiredN, nil
}

package services

import (
	"context"
	"time"

	"github.com/giftofhope10-tech/gift-of-hope/internal/model"

	"github.com/shopspring/decimal"
)

type DonationReader interface {
	RecentCompleted(ctx context.Context, limit int) ([]model.Donation, error)
	CountCompleted(ctx context.Context) (int64, error)
	SumCompleted(ctx context.Context) (decimal.Decimal, error)
}

// StatsService serves the public donation counters and the donor wall.
type StatsService struct {
	Donations DonationReader
}

func NewStatsService(d DonationReader) *StatsService {
	return &StatsService{Donations: d}
}

type Overview struct {
	TotalDonations  int64           `json:"totalDonations"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	RecentDonations []OverviewEntry `json:"recentDonations"`
}

type OverviewEntry struct {
	DonorName string          `json:"donorName"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
}

func (s *StatsService) Overview(ctx context.Context) (*Overview, error) {
	total, err := s.Donations.SumCompleted(ctx)
	if err != nil {
		return nil, err
	}
	count, err := s.Donations.CountCompleted(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.Donations.RecentCompleted(ctx, 10)
	if err != nil {
		return nil, err
	}

	out := &Overview{
		TotalDonations:  count,
		TotalAmount:     total,
		RecentDonations: make([]OverviewEntry, 0, len(recent)),
	}
	for _, d := range recent {
		out.RecentDonations = append(out.RecentDonations, OverviewEntry{
			DonorName: d.DonorName,
			Amount:    d.Amount,
			Date:      d.CreatedAt,
		})
	}
	return out, nil
}

type RecentDonation struct {
	DonorName       string `json:"donorName"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	PayPalReference string `json:"paypalReference"`
	CreatedAt       string `json:"createdAt"`
}

// RecentDonations returns the donor wall entries with the PayPal order id
// masked down to its last four characters.
func (s *StatsService) RecentDonations(ctx context.Context) ([]RecentDonation, int64, error) {
	recent, err := s.Donations.RecentCompleted(ctx, 10)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.Donations.CountCompleted(ctx)
	if err != nil {
		return nil, 0, err
	}

	out := make([]RecentDonation, 0, len(recent))
	for _, d := range recent {
		out = append(out, RecentDonation{
			DonorName:       d.DonorName,
			Amount:          d.Amount.StringFixed(2),
			Currency:        d.Currency,
			PayPalReference: maskOrderID(d.PayPalOrderID),
			CreatedAt:       d.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, count, nil
}

func maskOrderID(id *string) string {
	if id == nil || len(*id) < 4 {
		return "****"
	}
	return "****" + (*id)[len(*id)-4:]
}

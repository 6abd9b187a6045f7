package services

import (
	"context"
	"errors"
	"time"

	"github.com/giftofhope10-tech/gift-of-hope/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type CampaignStore interface {
	Create(ctx context.Context, c *model.Campaign) error
	GetByID(ctx context.Context, id int64) (*model.Campaign, error)
	Update(ctx context.Context, c *model.Campaign) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
	ListActive(ctx context.Context) ([]model.Campaign, error)
	ListAll(ctx context.Context) ([]model.Campaign, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type CampaignService struct {
	Campaigns CampaignStore
	Log       zerolog.Logger
}

func NewCampaignService(cs CampaignStore, log zerolog.Logger) *CampaignService {
	return &CampaignService{Campaigns: cs, Log: log}
}

type CampaignInput struct {
	Title       string
	Description string
	GoalAmount  string
	ImageURL    string
	EndDate     string // RFC 3339 or YYYY-MM-DD, optional
}

func (in CampaignInput) validate() (decimal.Decimal, *time.Time, error) {
	if sanitizeText(in.Title) == "" {
		return decimal.Decimal{}, nil, errors.New("campaign title is required")
	}
	if sanitizeText(in.Description) == "" {
		return decimal.Decimal{}, nil, errors.New("campaign description is required")
	}

	goal, err := decimal.NewFromString(in.GoalAmount)
	if err != nil || !goal.IsPositive() {
		return decimal.Decimal{}, nil, errors.New("goal amount must be a positive number")
	}

	var endDate *time.Time
	if in.EndDate != "" {
		t, err := time.Parse(time.RFC3339, in.EndDate)
		if err != nil {
			t, err = time.Parse("2006-01-02", in.EndDate)
		}
		if err != nil {
			return decimal.Decimal{}, nil, errors.New("invalid end date")
		}
		endDate = &t
	}

	return goal, endDate, nil
}

func (s *CampaignService) Create(ctx context.Context, in CampaignInput) (*model.Campaign, error) {
	goal, endDate, err := in.validate()
	if err != nil {
		return nil, err
	}

	c := &model.Campaign{
		Title:       sanitizeText(in.Title),
		Description: sanitizeText(in.Description),
		GoalAmount:  goal,
		EndDate:     endDate,
	}
	if in.ImageURL != "" {
		u := sanitizeText(in.ImageURL)
		c.ImageURL = &u
	}

	if err := s.Campaigns.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CampaignService) Update(ctx context.Context, id int64, in CampaignInput) (*model.Campaign, error) {
	goal, endDate, err := in.validate()
	if err != nil {
		return nil, err
	}

	c, err := s.Campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.New("campaign not found")
	}

	c.Title = sanitizeText(in.Title)
	c.Description = sanitizeText(in.Description)
	c.GoalAmount = goal
	if endDate != nil {
		c.EndDate = endDate
	}
	if in.ImageURL != "" {
		u := sanitizeText(in.ImageURL)
		c.ImageURL = &u
	} else {
		c.ImageURL = nil
	}

	if err := s.Campaigns.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CampaignService) SetActive(ctx context.Context, id int64, active bool) error {
	return s.Campaigns.SetActive(ctx, id, active)
}

func (s *CampaignService) Delete(ctx context.Context, id int64) error {
	return s.Campaigns.Delete(ctx, id)
}

func (s *CampaignService) Get(ctx context.Context, id int64) (*model.Campaign, error) {
	return s.Campaigns.GetByID(ctx, id)
}

func (s *CampaignService) ListActive(ctx context.Context) ([]model.Campaign, error) {
	return s.Campaigns.ListActive(ctx)
}

func (s *CampaignService) ListAll(ctx context.Context) ([]model.Campaign, error) {
	return s.Campaigns.ListAll(ctx)
}

// DeleteExpired sweeps campaigns whose end date has passed. Wired to the
// hourly ticker in main and to the cron-guarded cleanup endpoint.
func (s *CampaignService) DeleteExpired(ctx context.Context) (int64, error) {
	deleted, err := s.Campaigns.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.Log.Info().Int64("deleted", deleted).Msg("expired campaigns removed")
	}
	return deleted, nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/giftofhope10-tech/gift-of-hope/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type CampaignRepository struct {
	DB *pgxpool.Pool
}

func NewCampaignRepository(db *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

const campaignColumns = `
	id, title, description, goal_amount, current_amount,
	start_date, end_date, is_active, image_url, created_at
`

func scanCampaign(row pgx.Row) (*model.Campaign, error) {
	var c model.Campaign
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.GoalAmount, &c.CurrentAmount,
		&c.StartDate, &c.EndDate, &c.IsActive, &c.ImageURL, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	q := `
		INSERT INTO campaigns
			(title, description, goal_amount, current_amount,
			 start_date, end_date, is_active, image_url)
		VALUES
			($1, $2, $3, 0, NOW(), $4, TRUE, $5)
		RETURNING id, current_amount, start_date, is_active, created_at
	`
	return r.DB.QueryRow(
		ctx, q,
		c.Title, c.Description, c.GoalAmount, c.EndDate, c.ImageURL,
	).Scan(&c.ID, &c.CurrentAmount, &c.StartDate, &c.IsActive, &c.CreatedAt)
}

func (r *CampaignRepository) GetByID(ctx context.Context, id int64) (*model.Campaign, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id=$1`, id)

	c, err := scanCampaign(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *CampaignRepository) list(ctx context.Context, q string, args ...any) ([]model.Campaign, error) {
	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CampaignRepository) ListActive(ctx context.Context) ([]model.Campaign, error) {
	return r.list(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE is_active=TRUE ORDER BY created_at DESC`)
}

func (r *CampaignRepository) ListAll(ctx context.Context) ([]model.Campaign, error) {
	return r.list(ctx,
		`SELECT `+campaignColumns+` FROM campaigns ORDER BY created_at DESC`)
}

// Update replaces the editable fields of a campaign (admin edit form).
func (r *CampaignRepository) Update(ctx context.Context, c *model.Campaign) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE campaigns
		SET title=$2, description=$3, goal_amount=$4, image_url=$5, end_date=$6
		WHERE id=$1
	`, c.ID, c.Title, c.Description, c.GoalAmount, c.ImageURL, c.EndDate)
	return err
}

func (r *CampaignRepository) SetActive(ctx context.Context, id int64, active bool) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE campaigns SET is_active=$2 WHERE id=$1`, id, active)
	return err
}

func (r *CampaignRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM campaigns WHERE id=$1`, id)
	return err
}

// AddToCurrentAmount increments the running total in the database, so
// concurrent captures for the same campaign never lose an increment.
// Returns false when the campaign no longer exists.
func (r *CampaignRepository) AddToCurrentAmount(
	ctx context.Context,
	id int64,
	amount decimal.Decimal,
) (bool, error) {
	ct, err := r.DB.Exec(ctx, `
		UPDATE campaigns
		SET current_amount = current_amount + $2
		WHERE id=$1
	`, id, amount)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// DeleteExpired removes campaigns whose end date has passed.
func (r *CampaignRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ct, err := r.DB.Exec(ctx, `
		DELETE FROM campaigns
		WHERE end_date IS NOT NULL AND end_date < $1
	`, now)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

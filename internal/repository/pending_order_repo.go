package repository

import (
	"context"
	"errors"

	"github.com/giftofhope10-tech/gift-of-hope/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PendingOrderRepository struct {
	DB *pgxpool.Pool
}

func NewPendingOrderRepository(db *pgxpool.Pool) *PendingOrderRepository {
	return &PendingOrderRepository{DB: db}
}

func (r *PendingOrderRepository) Create(ctx context.Context, po *model.PendingOrder) error {
	q := `
		INSERT INTO pending_orders
			(paypal_order_id, donor_name, donor_email, amount, currency,
			 local_amount, local_currency, campaign_id, status, expires_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, 'pending', $9)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(
		ctx, q,
		po.PayPalOrderID,
		po.DonorName,
		po.DonorEmail,
		po.Amount,
		po.Currency,
		po.LocalAmount,
		po.LocalCurrency,
		po.CampaignID,
		po.ExpiresAt,
	).Scan(&po.ID, &po.CreatedAt)
}

func (r *PendingOrderRepository) GetByPayPalOrderID(
	ctx context.Context,
	paypalOrderID string,
) (*model.PendingOrder, error) {

	var po model.PendingOrder

	q := `
		SELECT id, paypal_order_id, donor_name, donor_email, amount, currency,
		       local_amount, local_currency, campaign_id, status,
		       created_at, expires_at
		FROM pending_orders
		WHERE paypal_order_id=$1
	`

	err := r.DB.QueryRow(ctx, q, paypalOrderID).Scan(
		&po.ID,
		&po.PayPalOrderID,
		&po.DonorName,
		&po.DonorEmail,
		&po.Amount,
		&po.Currency,
		&po.LocalAmount,
		&po.LocalCurrency,
		&po.CampaignID,
		&po.Status,
		&po.CreatedAt,
		&po.ExpiresAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &po, nil
}

// MarkStatus moves a pending order into a terminal status. The WHERE guard
// makes the transition conditional: it only succeeds while the row is still
// 'pending', so concurrent writers cannot both claim it.
func (r *PendingOrderRepository) MarkStatus(
	ctx context.Context,
	id int64,
	status string,
) (bool, error) {
	ct, err := r.DB.Exec(ctx, `
		UPDATE pending_orders
		SET status=$2
		WHERE id=$1 AND status='pending'
	`, id, status)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

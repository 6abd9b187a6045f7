package repository

import (
	"context"

	"github.com/giftofhope10-tech/gift-of-hope/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type DonationRepository struct {
	DB *pgxpool.Pool
}

func NewDonationRepository(db *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{DB: db}
}

// FinalizeCapture completes a captured order in a single transaction: the
// pending order is moved pending -> completed with a conditional update, and
// the donation row is inserted only if that update claimed the row. A lost
// claim (won=false) means another request already processed the order.
func (r *DonationRepository) FinalizeCapture(
	ctx context.Context,
	po *model.PendingOrder,
) (int64, bool, error) {

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, false, err
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `
		UPDATE pending_orders
		SET status='completed'
		WHERE id=$1 AND status='pending'
	`, po.ID)
	if err != nil {
		return 0, false, err
	}
	if ct.RowsAffected() == 0 {
		return 0, false, nil
	}

	email := ""
	if po.DonorEmail != nil {
		email = *po.DonorEmail
	}

	var donationID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO donations
			(donor_name, donor_email, amount, currency,
			 local_amount, local_currency, paypal_order_id, campaign_id, status)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, 'completed')
		RETURNING id
	`,
		po.DonorName,
		email,
		po.Amount,
		po.Currency,
		po.LocalAmount,
		po.LocalCurrency,
		po.PayPalOrderID,
		po.CampaignID,
	).Scan(&donationID)
	if err != nil {
		return 0, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, false, err
	}

	return donationID, true, nil
}

// RecentCompleted returns the newest completed donations, trimmed to the
// fields shown on the public donor wall.
func (r *DonationRepository) RecentCompleted(
	ctx context.Context,
	limit int,
) ([]model.Donation, error) {

	q := `
		SELECT id, donor_name, amount, currency, paypal_order_id, created_at
		FROM donations
		WHERE status='completed'
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.DB.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Donation
	for rows.Next() {
		var d model.Donation
		if err := rows.Scan(
			&d.ID, &d.DonorName, &d.Amount, &d.Currency,
			&d.PayPalOrderID, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		d.Status = "completed"
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DonationRepository) CountCompleted(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM donations WHERE status='completed'`,
	).Scan(&n)
	return n, err
}

func (r *DonationRepository) SumCompleted(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM donations WHERE status='completed'`,
	).Scan(&total)
	return total, err
}

// ListRecent returns full donation rows for the admin dashboard.
func (r *DonationRepository) ListRecent(
	ctx context.Context,
	limit int,
) ([]model.Donation, error) {

	q := `
		SELECT id, donor_name, donor_email, amount, currency,
		       local_amount, local_currency, paypal_order_id, campaign_id,
		       status, created_at
		FROM donations
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.DB.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Donation
	for rows.Next() {
		var d model.Donation
		if err := rows.Scan(
			&d.ID, &d.DonorName, &d.DonorEmail, &d.Amount, &d.Currency,
			&d.LocalAmount, &d.LocalCurrency, &d.PayPalOrderID, &d.CampaignID,
			&d.Status, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DeleteByDonorEmail removes every donation tied to the given donor email.
// Used by the data-deletion request endpoint.
func (r *DonationRepository) DeleteByDonorEmail(
	ctx context.Context,
	email string,
) (int64, error) {
	ct, err := r.DB.Exec(ctx,
		`DELETE FROM donations WHERE donor_email=$1`, email)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

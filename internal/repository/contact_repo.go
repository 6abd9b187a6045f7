package repository

import (
	"context"

	"github.com/giftofhope10-tech/gift-of-hope/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ContactRepository struct {
	DB *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) Create(ctx context.Context, c *model.Contact) error {
	q := `
		INSERT INTO contacts (name, email, subject, message, status)
		VALUES ($1, $2, $3, $4, 'unread')
		RETURNING id, created_at
	`
	return r.DB.QueryRow(
		ctx, q,
		c.Name, c.Email, c.Subject, c.Message,
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *ContactRepository) ListRecent(ctx context.Context, limit int) ([]model.Contact, error) {
	q := `
		SELECT id, name, email, subject, message, status, created_at
		FROM contacts
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.DB.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message,
			&c.Status, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ContactRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE contacts SET status=$2 WHERE id=$1`, id, status)
	return err
}

// DeleteByEmail removes every contact message from the given address.
// Used by the admin user-data deletion endpoint.
func (r *ContactRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	ct, err := r.DB.Exec(ctx, `DELETE FROM contacts WHERE email=$1`, email)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

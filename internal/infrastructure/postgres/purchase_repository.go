package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	"github.com/oksasatya/fashion-storefront/internal/domain/repository"
)

// PurchaseRepository is a true append log: one INSERT per record, no
// read-modify-write of a user's history.
type PurchaseRepository struct {
	pool *pgxpool.Pool
}

func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{pool: pool}
}

func (r *PurchaseRepository) Append(ctx context.Context, rec entity.PurchaseRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO purchases (user_id, product_id, quantity, total_spent, purchased_at)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.UserID, rec.ProductID, rec.Quantity, rec.TotalSpent.String(), rec.PurchasedAt)
	return err
}

func (r *PurchaseRepository) History(ctx context.Context, userID int) ([]entity.PurchaseRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, product_id, quantity, total_spent::text, purchased_at
		FROM purchases
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *PurchaseRepository) All(ctx context.Context) ([]entity.PurchaseRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, product_id, quantity, total_spent::text, purchased_at
		FROM purchases
		ORDER BY user_id, id
	`)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func collect(rows pgx.Rows) ([]entity.PurchaseRecord, error) {
	defer rows.Close()
	out := []entity.PurchaseRecord{}
	for rows.Next() {
		var (
			rec   entity.PurchaseRecord
			total string
		)
		if err := rows.Scan(&rec.UserID, &rec.ProductID, &rec.Quantity, &total, &rec.PurchasedAt); err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(total)
		if err != nil {
			return nil, err
		}
		rec.TotalSpent = d
		out = append(out, rec)
	}
	return out, rows.Err()
}

var _ repository.PurchaseRepository = (*PurchaseRepository)(nil)

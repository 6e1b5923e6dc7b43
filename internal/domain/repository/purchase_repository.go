package repository

import (
	"context"

	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
)

// PurchaseRepository records purchase history. Append is per line item;
// there is no multi-record transaction.
type PurchaseRepository interface {
	Append(ctx context.Context, rec entity.PurchaseRecord) error
	// History returns a user's records in insertion order.
	History(ctx context.Context, userID int) ([]entity.PurchaseRecord, error)
	All(ctx context.Context) ([]entity.PurchaseRecord, error)
}

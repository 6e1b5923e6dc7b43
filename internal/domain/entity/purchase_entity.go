package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRecord is one appended line of a user's purchase history.
// Records are immutable once appended.
type PurchaseRecord struct {
	UserID      int             `json:"user_id"`
	ProductID   int             `json:"product_id"`
	Quantity    int             `json:"quantity"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	PurchasedAt time.Time       `json:"purchased_at"`
}

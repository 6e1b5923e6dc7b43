package csvstore

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	"github.com/oksasatya/fashion-storefront/internal/domain/repository"
)

var historyColumns = []string{"user_id", "purchases"}

type purchaseJSON struct {
	ProductID   int     `json:"product_id"`
	Quantity    int     `json:"quantity"`
	TotalSpent  float64 `json:"total_spent"`
	PurchasedAt string  `json:"purchased_at"`
}

// HistoryRepository keeps one row per user holding the JSON-encoded list of
// purchases. Append reads the user's list, adds one record and rewrites the
// whole table.
type HistoryRepository struct {
	table  *table
	logger *logrus.Logger
}

func NewHistoryRepository(path string, logger *logrus.Logger) *HistoryRepository {
	return &HistoryRepository{table: newTable(path, historyColumns...), logger: logger}
}

func (r *HistoryRepository) rows() ([]map[string]string, error) {
	if err := r.table.ensure(); err != nil {
		return nil, err
	}
	return r.table.readAll(historyColumns...)
}

func (r *HistoryRepository) Append(ctx context.Context, rec entity.PurchaseRecord) error {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	rows, err := r.rows()
	if err != nil {
		return err
	}
	uid := strconv.Itoa(rec.UserID)
	entry := purchaseJSON{
		ProductID:   rec.ProductID,
		Quantity:    rec.Quantity,
		TotalSpent:  rec.TotalSpent.InexactFloat64(),
		PurchasedAt: formatTime(rec.PurchasedAt),
	}

	var target map[string]string
	for _, row := range rows {
		if strings.TrimSpace(row["user_id"]) == uid {
			target = row
			break
		}
	}
	if target == nil {
		target = map[string]string{"user_id": uid}
		rows = append(rows, target)
	}
	existing := r.decode(target)
	existing = append(existing, entry)
	b, err := json.Marshal(existing)
	if err != nil {
		return err
	}
	target["purchases"] = string(b)
	return r.table.writeAll(rows)
}

func (r *HistoryRepository) History(ctx context.Context, userID int) ([]entity.PurchaseRecord, error) {
	rows, err := r.rows()
	if err != nil {
		return nil, err
	}
	uid := strconv.Itoa(userID)
	for _, row := range rows {
		if strings.TrimSpace(row["user_id"]) == uid {
			return toRecords(userID, r.decode(row)), nil
		}
	}
	return []entity.PurchaseRecord{}, nil
}

// All returns every record grouped by user id ascending.
func (r *HistoryRepository) All(ctx context.Context) ([]entity.PurchaseRecord, error) {
	rows, err := r.rows()
	if err != nil {
		return nil, err
	}
	out := []entity.PurchaseRecord{}
	for _, row := range rows {
		uid, err := strconv.Atoi(strings.TrimSpace(row["user_id"]))
		if err != nil {
			continue
		}
		out = append(out, toRecords(uid, r.decode(row))...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// decode treats an empty or corrupt blob as an empty history.
func (r *HistoryRepository) decode(row map[string]string) []purchaseJSON {
	raw := strings.TrimSpace(row["purchases"])
	if raw == "" {
		return nil
	}
	var list []purchaseJSON
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		if r.logger != nil {
			r.logger.WithError(err).WithField("user_id", row["user_id"]).Warn("corrupt purchase history, treating as empty")
		}
		return nil
	}
	return list
}

func toRecords(userID int, list []purchaseJSON) []entity.PurchaseRecord {
	out := make([]entity.PurchaseRecord, 0, len(list))
	for _, p := range list {
		out = append(out, entity.PurchaseRecord{
			UserID:      userID,
			ProductID:   p.ProductID,
			Quantity:    p.Quantity,
			TotalSpent:  decimal.NewFromFloat(p.TotalSpent),
			PurchasedAt: parseTime(p.PurchasedAt),
		})
	}
	return out
}

var _ repository.PurchaseRepository = (*HistoryRepository)(nil)

package application_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/fashion-storefront/config"
	"github.com/oksasatya/fashion-storefront/internal/application"
	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	"github.com/oksasatya/fashion-storefront/internal/infrastructure/csvstore"
	"github.com/oksasatya/fashion-storefront/internal/infrastructure/memory"
	"github.com/oksasatya/fashion-storefront/pkg/helpers"
)

var errDiskFull = errors.New("disk full")

type fakeProducts struct {
	mu    sync.Mutex
	items []entity.Product
}

func (f *fakeProducts) LoadCatalog(context.Context) []entity.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Product(nil), f.items...)
}

func (f *fakeProducts) drop(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.items[:0]
	for _, p := range f.items {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.items = kept
}

// fakePurchases fails Append for product ids in failFor.
type fakePurchases struct {
	mu      sync.Mutex
	records []entity.PurchaseRecord
	failFor map[int]bool
}

func (f *fakePurchases) Append(_ context.Context, rec entity.PurchaseRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[rec.ProductID] {
		return errDiskFull
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *fakePurchases) History(_ context.Context, userID int) ([]entity.PurchaseRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []entity.PurchaseRecord{}
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePurchases) All(context.Context) ([]entity.PurchaseRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.PurchaseRecord(nil), f.records...), nil
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []any
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, body)
	return nil
}

func testCatalog() []entity.Product {
	return []entity.Product{
		{ID: 1, Name: "Linen Shirt", Category: "Shirts", Gender: "Men", Color: "White", Size: "M", Price: entity.ParsePrice("39.90")},
		{ID: 2, Name: "Wrap Dress", Category: "Dresses", Gender: "Women", Color: "Red", Size: "S", Price: entity.ParsePrice("59.90")},
		{ID: 3, Name: "Oxford Shirt", Category: "Shirts", Gender: "Men", Color: "Blue", Size: "L", Price: entity.ParsePrice("44.50")},
		{ID: 4, Name: "Denim Jacket", Category: "Jackets", Gender: "Men", Color: "Blue", Size: "L", Price: entity.ParsePrice("89")},
	}
}

func newSessions() *application.SessionService {
	return application.NewSessionService(
		memory.NewSessionRepository(time.Hour),
		helpers.NewJWTManager("test-secret", time.Hour),
		helpers.NewDiscardLogger(),
	)
}

func newAccounts(t *testing.T, purchases *fakePurchases) (*application.AccountService, *csvstore.UserRepository) {
	t.Helper()
	users := csvstore.NewUserRepository(filepath.Join(t.TempDir(), "users.csv"))
	svc := application.NewAccountService(users, purchases, nil, &config.Config{}, helpers.NewDiscardLogger())
	svc.HashCost = bcrypt.MinCost
	return svc, users
}

func discard() *logrus.Logger { return helpers.NewDiscardLogger() }

package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-storefront/config"
	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	repo "github.com/oksasatya/fashion-storefront/internal/domain/repository"
	"github.com/oksasatya/fashion-storefront/pkg/helpers"
	"github.com/oksasatya/fashion-storefront/pkg/mailer"
	tpl "github.com/oksasatya/fashion-storefront/pkg/mailer/templates"
)

// CheckoutResult reports what a checkout did, line by line.
type CheckoutResult struct {
	Recorded []entity.PurchaseRecord `json:"recorded"`
	Skipped  []int                   `json:"skipped,omitempty"` // product ids no longer in the catalog
	Failed   []int                   `json:"failed,omitempty"`  // product ids whose append failed
	Total    decimal.Decimal         `json:"total"`
}

// CheckoutService turns a session cart into purchase history.
//
// Recording is per line item and sequential: a failed append does not undo
// lines already appended, and later lines are still attempted. Recorded and
// vanished lines leave the cart; failed lines stay so the visitor can retry.
type CheckoutService struct {
	Products  repo.ProductRepository
	Purchases repo.PurchaseRepository
	Users     repo.UserRepository
	Sessions  *SessionService
	Publisher JobPublisher // optional
	Cfg       *config.Config
	Logger    *logrus.Logger
	Now       func() time.Time
}

func NewCheckoutService(products repo.ProductRepository, purchases repo.PurchaseRepository, users repo.UserRepository, sessions *SessionService, pub JobPublisher, cfg *config.Config, logger *logrus.Logger) *CheckoutService {
	return &CheckoutService{
		Products:  products,
		Purchases: purchases,
		Users:     users,
		Sessions:  sessions,
		Publisher: pub,
		Cfg:       cfg,
		Logger:    logger,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

// Summary prices the cart without changing anything.
func (s *CheckoutService) Summary(ctx context.Context, sess *entity.Session) CartView {
	return priceCart(s.Products.LoadCatalog(ctx), sess.Cart)
}

// Checkout records every cart line for the session's user. Anonymous
// sessions get ErrNotAuthenticated and are left untouched.
func (s *CheckoutService) Checkout(ctx context.Context, sess *entity.Session) (CheckoutResult, error) {
	res := CheckoutResult{Recorded: []entity.PurchaseRecord{}, Total: decimal.Zero}
	if sess == nil || !sess.Authenticated() {
		return res, ErrNotAuthenticated
	}

	byID := indexByID(s.Products.LoadCatalog(ctx))
	now := s.Now()
	var remaining []entity.CartLine
	names := map[int]string{}

	for _, line := range sess.Cart.Lines {
		p, ok := byID[line.ProductID]
		if !ok {
			res.Skipped = append(res.Skipped, line.ProductID)
			continue
		}
		rec := entity.PurchaseRecord{
			UserID:      sess.UserID,
			ProductID:   p.ID,
			Quantity:    line.Quantity,
			TotalSpent:  p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
			PurchasedAt: now,
		}
		if err := s.Purchases.Append(ctx, rec); err != nil {
			helpers.PurchaseLineErrors.Add(1)
			if s.Logger != nil {
				s.Logger.WithError(err).WithFields(logrus.Fields{
					"user_id":    sess.UserID,
					"product_id": p.ID,
				}).Error("append purchase failed")
			}
			res.Failed = append(res.Failed, line.ProductID)
			remaining = append(remaining, line)
			continue
		}
		helpers.PurchaseLines.Add(1)
		res.Recorded = append(res.Recorded, rec)
		res.Total = res.Total.Add(rec.TotalSpent)
		names[p.ID] = p.Name
	}

	sess.Cart.Lines = remaining
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return res, err
	}
	if len(res.Failed) > 0 {
		return res, ErrCheckoutIncomplete
	}

	helpers.Checkouts.Add(1)
	if len(res.Recorded) > 0 {
		s.notify(ctx, sess.UserID, res, names)
	}
	return res, nil
}

func (s *CheckoutService) notify(ctx context.Context, userID int, res CheckoutResult, names map[int]string) {
	if s.Publisher == nil || s.Cfg == nil || !s.Cfg.MailSendEnabled || s.Users == nil {
		return
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil || u == nil || u.Email == "" {
		return
	}
	lines := make([]tpl.OrderLine, 0, len(res.Recorded))
	for _, rec := range res.Recorded {
		lines = append(lines, tpl.OrderLine{
			ProductID: rec.ProductID,
			Name:      names[rec.ProductID],
			Quantity:  rec.Quantity,
			Subtotal:  rec.TotalSpent.StringFixed(2),
		})
	}
	data := tpl.NewOrderConfirmationData(s.Cfg, u.Username, u.Email,
		tpl.WithTime(s.Now()),
		tpl.WithLines(lines),
		tpl.WithTotal(res.Total.StringFixed(2)),
	)
	job := mailer.EmailJob{To: u.Email, Template: tpl.OrderConfirmation, Data: data}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("failed to enqueue order confirmation")
	}
}

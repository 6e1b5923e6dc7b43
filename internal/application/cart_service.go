package application

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	repo "github.com/oksasatya/fashion-storefront/internal/domain/repository"
)

// CartItem is a cart line priced against the live catalog.
type CartItem struct {
	Product  entity.Product  `json:"product"`
	Quantity int             `json:"qty"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// CartService mutates the session-scoped cart and persists the session.
type CartService struct {
	Products repo.ProductRepository
	Sessions *SessionService
}

func NewCartService(products repo.ProductRepository, sessions *SessionService) *CartService {
	return &CartService{Products: products, Sessions: sessions}
}

// Add puts qty units of productID into the cart. The product must exist.
func (s *CartService) Add(ctx context.Context, sess *entity.Session, productID, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if _, ok := indexByID(s.Products.LoadCatalog(ctx))[productID]; !ok {
		return ErrProductNotFound
	}
	if err := sess.Cart.Add(productID, qty); err != nil {
		if errors.Is(err, entity.ErrNonPositiveQuantity) {
			return ErrInvalidQuantity
		}
		return err
	}
	return s.Sessions.Save(ctx, sess)
}

// Remove drops the line for productID. Absent lines are a no-op.
func (s *CartService) Remove(ctx context.Context, sess *entity.Session, productID int) error {
	if !sess.Cart.Remove(productID) {
		return nil
	}
	return s.Sessions.Save(ctx, sess)
}

// List prices the cart. Lines whose product is gone are left out of both
// the items and the total.
func (s *CartService) List(ctx context.Context, sess *entity.Session) CartView {
	return priceCart(s.Products.LoadCatalog(ctx), sess.Cart)
}

func (s *CartService) Total(ctx context.Context, sess *entity.Session) decimal.Decimal {
	return s.List(ctx, sess).Total
}

func (s *CartService) Clear(ctx context.Context, sess *entity.Session) error {
	sess.Cart.Clear()
	return s.Sessions.Save(ctx, sess)
}

func priceCart(catalog []entity.Product, cart entity.Cart) CartView {
	byID := indexByID(catalog)
	view := CartView{Items: []CartItem{}, Total: decimal.Zero}
	for _, line := range cart.Lines {
		p, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		sub := p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		view.Items = append(view.Items, CartItem{Product: p, Quantity: line.Quantity, Subtotal: sub})
		view.Total = view.Total.Add(sub)
	}
	return view
}

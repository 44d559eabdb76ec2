// Package session ties catalog, cart, account and checkout together into one
// explicitly constructed shopping session, created at session start and
// discarded at session end. It is the surface the HTTP layer talks to.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/storeline/storefront/internal/account"
	"github.com/storeline/storefront/internal/cache"
	"github.com/storeline/storefront/internal/cart"
	"github.com/storeline/storefront/internal/catalog"
	"github.com/storeline/storefront/internal/checkout"
	"github.com/storeline/storefront/internal/domain"
	"github.com/storeline/storefront/internal/shipping"
)

// StockPersister saves committed stock levels after a completed checkout.
type StockPersister interface {
	SaveStockLevels(ctx context.Context, levels map[string]int) error
}

// Config carries the session's collaborators. Cache and Persister are
// optional; without them views are always recomputed and stock lives only in
// memory.
type Config struct {
	Store     *catalog.MemoryStore
	Account   *account.Account
	Notifier  shipping.Notifier
	RatePerKg float64
	Cache     cache.ViewCache
	Persister StockPersister
	Logger    *zap.Logger
}

type Session struct {
	ID        string
	CreatedAt time.Time

	store     *catalog.MemoryStore
	cart      *cart.Cart
	account   *account.Account
	checkout  *checkout.Service
	ratePerKg float64
	cache     cache.ViewCache
	persister StockPersister
	logger    *zap.Logger
	sfg       singleflight.Group // Prevents cache stampede on the view
}

func New(cfg Config) *Session {
	c := cart.New(cfg.Store)
	return &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		store:     cfg.Store,
		cart:      c,
		account:   cfg.Account,
		checkout:  checkout.NewService(c, cfg.Store, cfg.Account, cfg.Notifier, cfg.RatePerKg, cfg.Logger),
		ratePerKg: cfg.RatePerKg,
		cache:     cfg.Cache,
		persister: cfg.Persister,
		logger:    cfg.Logger,
	}
}

// AddToCart reserves qty units of the product into the session cart.
func (s *Session) AddToCart(ctx context.Context, productID string, qty int) error {
	if err := s.cart.Reserve(productID, qty); err != nil {
		return err
	}
	s.invalidateView(ctx)
	return nil
}

// RemoveFromCart releases the product's line back to the catalog.
func (s *Session) RemoveFromCart(ctx context.Context, productID string) error {
	if err := s.cart.Release(productID); err != nil {
		return err
	}
	s.invalidateView(ctx)
	return nil
}

// Checkout runs the checkout transaction. On success the committed stock
// levels are persisted best effort.
func (s *Session) Checkout(ctx context.Context) (*checkout.Receipt, error) {
	receipt, err := s.checkout.Checkout(ctx)
	if err != nil {
		return nil, err
	}
	s.invalidateView(ctx)

	if s.persister != nil {
		if err := s.persister.SaveStockLevels(ctx, s.store.StockLevels()); err != nil {
			s.logger.Warn("failed to persist stock levels", zap.Error(err))
		}
	}
	return receipt, nil
}

// CartView returns the renderer snapshot of the cart, served from cache when
// possible. Cache trouble degrades to a recompute, never to an error.
func (s *Session) CartView(ctx context.Context) (*domain.CartView, error) {
	if s.cache == nil {
		return s.buildView(), nil
	}

	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(s.ID, func() (interface{}, error) {
		view, err := s.cache.Get(ctx, s.ID)
		if err == nil {
			return view, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("cart view cache get failed", zap.Error(err))
		}

		view = s.buildView()

		if errSet := s.cache.Set(ctx, s.ID, view); errSet != nil {
			s.logger.Warn("cart view cache set failed", zap.Error(errSet))
		}
		return view, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.CartView), nil
}

func (s *Session) buildView() *domain.CartView {
	lines := s.cart.Lines()
	items := make([]domain.CartViewItem, 0, len(lines))
	shippingLines := make([]shipping.Line, 0, len(lines))

	for _, line := range lines {
		p, err := s.store.Product(line.ProductID)
		if err != nil {
			continue
		}
		items = append(items, domain.CartViewItem{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  line.Quantity,
			UnitPrice: p.Price,
			LineTotal: p.Price * float64(line.Quantity),
		})
		shippingLines = append(shippingLines, shipping.Line{
			Shippable:   p.Shippable,
			WeightGrams: p.WeightGrams,
			Quantity:    line.Quantity,
		})
	}

	subtotal := s.cart.Subtotal()
	shippingCost := shipping.Cost(shippingLines, s.ratePerKg)
	return &domain.CartView{
		SessionID:    s.ID,
		Items:        items,
		Subtotal:     subtotal,
		ShippingCost: shippingCost,
		Total:        subtotal + shippingCost,
		CapturedAt:   time.Now(),
	}
}

func (s *Session) invalidateView(ctx context.Context) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, s.ID); err != nil {
		s.logger.Warn("cart view cache invalidate failed", zap.Error(err))
	}
}

// Products lists the catalog in display order.
func (s *Session) Products() []domain.Product {
	return s.store.List()
}

// Balance returns the session account's current balance.
func (s *Session) Balance() float64 {
	return s.account.Balance()
}

// AccountName returns the session account holder's name.
func (s *Session) AccountName() string {
	return s.account.Name()
}

// CheckoutStatus exposes the state of the latest checkout cycle.
func (s *Session) CheckoutStatus() checkout.Status {
	return s.checkout.Status()
}

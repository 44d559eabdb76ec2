// Package checkout runs the all-or-nothing checkout transaction: validate
// the cart, price it, deduct the balance, notify the shipment service and
// clear the cart. An aborted attempt leaves cart, stock and balance exactly
// as they were; the reservation made at add-to-cart time stays in place.
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storeline/storefront/internal/account"
	"github.com/storeline/storefront/internal/cart"
	"github.com/storeline/storefront/internal/catalog"
	"github.com/storeline/storefront/internal/domain"
	"github.com/storeline/storefront/internal/shipping"
)

type Service struct {
	cart      *cart.Cart
	store     catalog.Store
	account   *account.Account
	notifier  shipping.Notifier
	ratePerKg float64
	logger    *zap.Logger

	// now is swappable for expiry tests.
	now func() time.Time

	mu     sync.Mutex
	status Status
}

func NewService(c *cart.Cart, store catalog.Store, acc *account.Account, notifier shipping.Notifier, ratePerKg float64, logger *zap.Logger) *Service {
	return &Service{
		cart:      c,
		store:     store,
		account:   acc,
		notifier:  notifier,
		ratePerKg: ratePerKg,
		logger:    logger,
		now:       time.Now,
		status:    StatusIdle,
	}
}

// Status returns the state of the most recent checkout cycle.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Service) transition(to Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !canTransition(s.status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s.status, to)
	}
	s.logger.Debug("checkout status transition",
		zap.String("from", s.status.String()),
		zap.String("to", to.String()))
	s.status = to
	return nil
}

func (s *Service) abort(err error) error {
	if e2 := s.transition(StatusAborted); e2 != nil {
		return e2
	}
	return err
}

// resolvedLine pairs a cart line with its product record as of validation.
type resolvedLine struct {
	product domain.Product
	qty     int
}

// Checkout runs one full transaction cycle and returns the receipt. It is
// not resumable: a failed attempt returns the matching error and a new call
// starts over against whatever cart state exists.
func (s *Service) Checkout(ctx context.Context) (*Receipt, error) {
	if err := s.transition(StatusValidating); err != nil {
		return nil, err
	}

	resolved, err := s.validate()
	if err != nil {
		return nil, s.abort(err)
	}

	subtotal := s.cart.Subtotal()
	shippingCost := shipping.Cost(shippingLines(resolved), s.ratePerKg)
	total := subtotal + shippingCost

	if err := s.transition(StatusCommitting); err != nil {
		return nil, err
	}

	if err := s.account.Deduct(total); err != nil {
		// Nothing has been mutated: stock was reserved at add time and
		// stays reserved for a later retry.
		return nil, s.abort(err)
	}

	s.notifyShippables(ctx, resolved)

	receipt := s.buildReceipt(resolved, subtotal, shippingCost, total)

	// The stock reduction from reservation is now a completed sale.
	s.cart.Clear()

	if err := s.transition(StatusCompleted); err != nil {
		return nil, err
	}
	s.logger.Info("checkout completed",
		zap.String("receipt_id", receipt.ID),
		zap.Float64("total", receipt.Total),
		zap.Float64("remaining_balance", receipt.RemainingBalance))
	return receipt, nil
}

func (s *Service) validate() ([]resolvedLine, error) {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	now := s.now()
	resolved := make([]resolvedLine, 0, len(lines))
	for _, line := range lines {
		p, err := s.store.Product(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", line.ProductID, err)
		}
		if p.IsExpired(now) {
			return nil, fmt.Errorf("%w: %s", ErrExpiredItem, p.Name)
		}
		if p.Stock < 0 {
			// Unreachable through cart reserve/release; a hit means the
			// stock invariant was broken elsewhere.
			return nil, fmt.Errorf("%w: %s has stock %d", ErrNegativeStock, p.Name, p.Stock)
		}
		resolved = append(resolved, resolvedLine{product: p, qty: line.Quantity})
	}
	return resolved, nil
}

func shippingLines(resolved []resolvedLine) []shipping.Line {
	lines := make([]shipping.Line, 0, len(resolved))
	for _, rl := range resolved {
		lines = append(lines, shipping.Line{
			Shippable:   rl.product.Shippable,
			WeightGrams: rl.product.WeightGrams,
			Quantity:    rl.qty,
		})
	}
	return lines
}

// notifyShippables expands quantities into individual package items and
// hands them to the notifier. The notifier is skipped entirely when nothing
// ships, and its failure never unwinds the committed checkout.
func (s *Service) notifyShippables(ctx context.Context, resolved []resolvedLine) {
	var items []shipping.PackageItem
	for _, rl := range resolved {
		if !rl.product.Shippable {
			continue
		}
		for i := 0; i < rl.qty; i++ {
			items = append(items, shipping.PackageItem{
				Name:        rl.product.Name,
				WeightGrams: rl.product.WeightGrams,
			})
		}
	}
	if len(items) == 0 {
		return
	}

	if err := s.notifier.NotifyShipment(ctx, items); err != nil {
		s.logger.Warn("shipment notification failed", zap.Error(err))
	}
}

func (s *Service) buildReceipt(resolved []resolvedLine, subtotal, shippingCost, total float64) *Receipt {
	lines := make([]ReceiptLine, 0, len(resolved))
	for _, rl := range resolved {
		lines = append(lines, ReceiptLine{
			ProductID: rl.product.ID,
			Name:      rl.product.Name,
			Quantity:  rl.qty,
			UnitPrice: rl.product.Price,
			LineTotal: rl.product.Price * float64(rl.qty),
		})
	}
	return &Receipt{
		ID:               uuid.New().String(),
		Lines:            lines,
		Subtotal:         subtotal,
		ShippingCost:     shippingCost,
		Total:            total,
		RemainingBalance: s.account.Balance(),
		CompletedAt:      s.now(),
	}
}

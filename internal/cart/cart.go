// Package cart holds the session cart and its stock-reservation semantics:
// adding a line decrements the product's catalog stock immediately, removing
// a line restores it. Stock is never touched by any other component.
package cart

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/storeline/storefront/internal/catalog"
)

// Line is one cart entry. It references the product by ID only; the catalog
// store stays the single owner of the product record.
type Line struct {
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// Cart is an ordered set of lines, unique per product ID.
type Cart struct {
	mu    sync.Mutex
	store catalog.Store
	lines []Line
}

func New(store catalog.Store) *Cart {
	return &Cart{store: store}
}

// Reserve adds qty units of the product to the cart, taking the stock out of
// the catalog in the same step. A later Reserve for the same product merges
// into the existing line. Quantity below 1 or above the currently available
// stock fails with ErrInvalidQuantity; the stock check and decrement are one
// atomic store operation, so a failed reserve changes nothing.
func (c *Cart) Reserve(productID string, qty int) error {
	if qty < 1 {
		return fmt.Errorf("%w: quantity %d is below 1", ErrInvalidQuantity, qty)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.ReserveStock(productID, qty); err != nil {
		if errors.Is(err, catalog.ErrInsufficientStock) {
			return fmt.Errorf("%w: %w", ErrInvalidQuantity, err)
		}
		return fmt.Errorf("reserve %q: %w", productID, err)
	}

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity += qty
			return nil
		}
	}
	c.lines = append(c.lines, Line{
		ProductID: productID,
		Quantity:  qty,
		AddedAt:   time.Now(),
	})
	return nil
}

// Release removes the product's line and puts its full quantity back onto
// the catalog stock. It is the exact inverse of the reserves that built the
// line.
func (c *Cart) Release(productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}
		if err := c.store.RestoreStock(productID, c.lines[i].Quantity); err != nil {
			return fmt.Errorf("release %q: %w", productID, err)
		}
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrNotInCart, productID)
}

// Clear drops all lines without restoring stock. Only a committed checkout
// may call it: at that point the stock reduction is a completed sale.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Subtotal sums unit price times quantity over all lines. Lines whose
// product has vanished from the catalog contribute nothing; that cannot
// happen through the public API.
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var sum float64
	for _, line := range c.lines {
		p, err := c.store.Product(line.ProductID)
		if err != nil {
			continue
		}
		sum += p.Price * float64(line.Quantity)
	}
	return sum
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return c.Len() == 0
}

package catalog

import (
	"fmt"
	"sync"

	"github.com/storeline/storefront/internal/domain"
)

// MemoryStore implements Store with in-memory storage. It owns the Product
// records: reads copy out, and stock only moves through ReserveStock and
// RestoreStock, so stock can never be observed below zero.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	order    []string // insertion order, for stable catalog listings
}

// NewMemoryStore creates an empty in-memory catalog.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[string]*domain.Product),
	}
}

// SetProduct inserts or replaces a product record after validating it.
func (s *MemoryStore) SetProduct(p domain.Product) error {
	if err := validate(&p); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.products[p.ID] = &p
	return nil
}

func validate(p *domain.Product) error {
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidProduct)
	case p.Price < 0:
		return fmt.Errorf("%w: negative price for %q", ErrInvalidProduct, p.ID)
	case p.Stock < 0:
		return fmt.Errorf("%w: negative stock for %q", ErrInvalidProduct, p.ID)
	case p.WeightGrams < 0:
		return fmt.Errorf("%w: negative weight for %q", ErrInvalidProduct, p.ID)
	case p.Shippable && p.WeightGrams == 0:
		return fmt.Errorf("%w: shippable product %q has no weight", ErrInvalidProduct, p.ID)
	}
	return nil
}

// Product returns a copy of the product record.
func (s *MemoryStore) Product(id string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.products[id]
	if !exists {
		return domain.Product{}, ErrProductNotFound
	}
	return *p, nil
}

// List returns copies of all products in insertion order.
func (s *MemoryStore) List() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Product, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, *s.products[id])
	}
	return result
}

// ReserveStock atomically checks and decrements available stock. The check
// and decrement happen under one lock, so stock never goes negative.
func (s *MemoryStore) ReserveStock(id string, qty int) error {
	if qty <= 0 {
		return ErrInvalidStockDelta
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.products[id]
	if !exists {
		return ErrProductNotFound
	}
	if qty > p.Stock {
		return fmt.Errorf("%w: %q has %d available", ErrInsufficientStock, id, p.Stock)
	}
	p.Stock -= qty
	return nil
}

// RestoreStock returns previously reserved stock to the product.
func (s *MemoryStore) RestoreStock(id string, qty int) error {
	if qty <= 0 {
		return ErrInvalidStockDelta
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.products[id]
	if !exists {
		return ErrProductNotFound
	}
	p.Stock += qty
	return nil
}

// StockLevels returns a snapshot of current stock per product ID, used to
// persist committed stock after a successful checkout.
func (s *MemoryStore) StockLevels() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	levels := make(map[string]int, len(s.products))
	for id, p := range s.products {
		levels[id] = p.Stock
	}
	return levels
}

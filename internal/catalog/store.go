package catalog

import (
	"errors"

	"github.com/storeline/storefront/internal/domain"
)

var (
	ErrProductNotFound   = errors.New("product not found in catalog")
	ErrInsufficientStock = errors.New("insufficient stock for product")
	ErrInvalidProduct    = errors.New("invalid product record")
	ErrInvalidStockDelta = errors.New("stock adjustment must be positive")
)

// Store is the catalog as seen by the cart and checkout. Reads return copies;
// the only writes are the stock adjustments driven by cart reserve/release.
type Store interface {
	Product(id string) (domain.Product, error)
	List() []domain.Product
	ReserveStock(id string, qty int) error
	RestoreStock(id string, qty int) error
}

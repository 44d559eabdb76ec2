package cache

import (
	"context"
	"errors"

	"github.com/storeline/storefront/internal/domain"
)

// ViewCache caches the renderer-facing cart view per session.
type ViewCache interface {
	Get(ctx context.Context, sessionID string) (*domain.CartView, error)
	Set(ctx context.Context, sessionID string, view *domain.CartView) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrCacheMiss = errors.New("cache miss")

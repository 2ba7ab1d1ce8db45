// Package storage persists the reference catalog so it can be imported once and
// loaded at startup.
package storage

import (
	"context"

	"github.com/hyperjump/fitscout/internal/catalog"
	"github.com/hyperjump/fitscout/internal/models"
)

// Storage defines catalog persistence operations.
type Storage interface {
	// SaveCatalog replaces the stored catalog with d.
	SaveCatalog(ctx context.Context, d *catalog.Data) error
	// LoadCatalog returns the stored catalog with products in import order.
	LoadCatalog(ctx context.Context) (*catalog.Data, error)

	ListProducts(ctx context.Context, offset, limit int) ([]*models.Product, error)
	// UpdateEmbeddings sets the embedding of each product id in vectors.
	UpdateEmbeddings(ctx context.Context, vectors map[string][]float32) error

	// Stats
	CountProducts(ctx context.Context) (int64, error)
	CountEmbeddedProducts(ctx context.Context) (int64, error)

	Close() error
}

// Package catalog holds the read-only reference data: brands, size charts and products.
package catalog

import (
	"fmt"

	"github.com/hyperjump/fitscout/internal/models"
)

// Store is the read-only reference data used by the sizing engine and the ranker.
type Store interface {
	ListBrands() []*models.Brand
	GetBrand(id string) (*models.Brand, bool)
	GetSizeChart(brandID, category string) (*models.SizeChart, error)
	ListProducts() []*models.Product
}

// Data is reference data as loaded from seed files or the catalog database.
// SizeCharts is keyed by brand id, then category.
type Data struct {
	Brands     []*models.Brand
	SizeCharts map[string]map[string]*models.SizeChart
	Products   []*models.Product
}

// MemoryStore serves Data from memory. It is never modified after construction,
// so it is safe for concurrent use without locking.
type MemoryStore struct {
	brands   []*models.Brand
	byID     map[string]*models.Brand
	charts   map[string]map[string]*models.SizeChart
	products []*models.Product
}

// NewMemoryStore validates d and builds a store from it.
func NewMemoryStore(d *Data) (*MemoryStore, error) {
	if d == nil {
		d = &Data{}
	}
	s := &MemoryStore{
		brands:   d.Brands,
		byID:     make(map[string]*models.Brand, len(d.Brands)),
		charts:   d.SizeCharts,
		products: d.Products,
	}
	for i, b := range d.Brands {
		if b == nil {
			return nil, fmt.Errorf("brand entry %d is null", i)
		}
		if b.ID == "" {
			return nil, fmt.Errorf("brand %q has no id", b.Name)
		}
		if _, dup := s.byID[b.ID]; dup {
			return nil, fmt.Errorf("duplicate brand id %q", b.ID)
		}
		s.byID[b.ID] = b
	}
	for i, p := range d.Products {
		if p == nil {
			return nil, fmt.Errorf("product entry %d is null", i)
		}
	}
	for brandID, byCategory := range d.SizeCharts {
		for category, chart := range byCategory {
			if chart == nil {
				continue
			}
			if err := chart.Validate(); err != nil {
				return nil, fmt.Errorf("size chart %s/%s: %w", brandID, category, err)
			}
		}
	}
	if s.charts == nil {
		s.charts = map[string]map[string]*models.SizeChart{}
	}
	return s, nil
}

// ListBrands returns brands in load order.
func (s *MemoryStore) ListBrands() []*models.Brand {
	return s.brands
}

// GetBrand returns the brand with the given id.
func (s *MemoryStore) GetBrand(id string) (*models.Brand, bool) {
	b, ok := s.byID[id]
	return b, ok
}

// GetSizeChart returns the chart for brandID and category, or an error wrapping
// models.ErrMissingSizeChart.
func (s *MemoryStore) GetSizeChart(brandID, category string) (*models.SizeChart, error) {
	chart, ok := s.charts[brandID][category]
	if !ok || chart == nil {
		return nil, fmt.Errorf("%w: %s/%s", models.ErrMissingSizeChart, brandID, category)
	}
	return chart, nil
}

// ListProducts returns products in catalog order.
func (s *MemoryStore) ListProducts() []*models.Product {
	return s.products
}

// Check reports reference-data problems that do not prevent serving: brands that
// claim a category without a chart, products of unknown brands, and products whose
// embedding length differs from the first embedded product.
func (d *Data) Check() []string {
	var warnings []string
	brands := make(map[string]bool, len(d.Brands))
	for _, b := range d.Brands {
		if b == nil {
			continue
		}
		brands[b.ID] = true
		for _, c := range b.Categories {
			if d.SizeCharts[b.ID][c] == nil {
				warnings = append(warnings, fmt.Sprintf("brand %s lists %s but has no size chart", b.ID, c))
			}
		}
	}
	dims := 0
	for _, p := range d.Products {
		if p == nil {
			continue
		}
		if !brands[p.BrandID] {
			warnings = append(warnings, fmt.Sprintf("product %s references unknown brand %s", p.ID, p.BrandID))
		}
		if !p.HasEmbedding() {
			continue
		}
		if dims == 0 {
			dims = len(p.Embedding)
		} else if len(p.Embedding) != dims {
			warnings = append(warnings, fmt.Sprintf("product %s embedding has %d dimensions, expected %d", p.ID, len(p.Embedding), dims))
		}
	}
	return warnings
}

// EmbeddedCount returns the number of products that carry an embedding.
func (d *Data) EmbeddedCount() int {
	n := 0
	for _, p := range d.Products {
		if p != nil && p.HasEmbedding() {
			n++
		}
	}
	return n
}

// Package models defines core data structures for brands, size charts, products,
// size suggestions and similarity results.
package models

import "strings"

// Category names used by the reference data.
const (
	CategoryShoes       = "shoes"
	CategoryClothing    = "clothing"
	CategoryAccessories = "accessories"
)

// Brand is an entry in the reference brand list.
type Brand struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
}

// Supports reports whether the brand lists category.
func (b *Brand) Supports(category string) bool {
	for _, c := range b.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Product is a catalog item. Embedding is nil when the product has not been embedded.
type Product struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	BrandID   string    `json:"brandId"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	Tags      []string  `json:"tags"`
	Embedding []float32 `json:"textVec"`
}

// HasEmbedding reports whether the product carries a usable embedding.
func (p *Product) HasEmbedding() bool {
	return len(p.Embedding) > 0
}

// EmbeddingText is the text embedded for a product: its title followed by its tags.
func (p *Product) EmbeddingText() string {
	parts := make([]string, 0, len(p.Tags)+1)
	parts = append(parts, p.Title)
	parts = append(parts, p.Tags...)
	return strings.Join(parts, " ")
}

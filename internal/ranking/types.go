// Package ranking ranks catalog products by similarity to a free-text query.
package ranking

import "github.com/hyperjump/fitscout/internal/models"

// Strategy is the scoring path used for a ranking call.
type Strategy string

const (
	// StrategyEmbedding scores embedded products by cosine similarity with the query embedding.
	StrategyEmbedding Strategy = "embedding"
	// StrategyTags scores every product by tag overlap with the query tokens.
	StrategyTags Strategy = "tags"
)

// Result is the outcome of a ranking call.
type Result struct {
	Items    []*models.RankedItem
	Strategy Strategy
	// Candidates is the number of products that were scored.
	Candidates int
}

// scored is a product with its full-precision score. Rounding happens only on output.
type scored struct {
	product *models.Product
	score   float64
	reason  string
}

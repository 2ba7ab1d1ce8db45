package ranking

import (
	"context"
	"fmt"

	"github.com/hyperjump/fitscout/internal/embedding"
	"github.com/hyperjump/fitscout/internal/models"
	"github.com/hyperjump/fitscout/internal/vector"
)

// EmbeddingScorer scores products by cosine similarity between the query embedding
// and each product embedding.
type EmbeddingScorer struct {
	config   *RankingConfig
	embedder embedding.Embedder
}

// NewEmbeddingScorer creates an EmbeddingScorer. embedder may be nil, in which case
// every Score call fails with models.ErrEmbedderUnavailable.
func NewEmbeddingScorer(config *RankingConfig, embedder embedding.Embedder) *EmbeddingScorer {
	return &EmbeddingScorer{config: config, embedder: embedder}
}

// Score embeds cue once and scores the embedded products. Products without an
// embedding are skipped.
func (s *EmbeddingScorer) Score(ctx context.Context, cue string, products []*models.Product) ([]scored, error) {
	if s.embedder == nil {
		return nil, models.ErrEmbedderUnavailable
	}
	q, err := s.embedder.Embed(ctx, cue)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	out := make([]scored, 0, len(products))
	for _, p := range products {
		if !p.HasEmbedding() {
			continue
		}
		sim, err := vector.Cosine(q, p.Embedding)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", p.ID, err)
		}
		out = append(out, scored{product: p, score: sim, reason: tagReason(p.Tags, s.config.ReasonTags)})
	}
	return out, nil
}

package embedding

import (
	"context"

	"github.com/hyperjump/fitscout/internal/keyword"
	"github.com/hyperjump/fitscout/pkg/utils"
)

// HashEmbedder is a deterministic bag-of-words embedder. Each query token is hashed
// into one of Dimensions buckets and the result is L2-normalized, so texts sharing
// tokens have a positive cosine similarity. It needs no model file and is used in
// tests and offline setups.
type HashEmbedder struct {
	dimensions int
	tokenizer  *keyword.Tokenizer
}

// NewHashEmbedder returns a hash embedder with the given dimensions (384 when <= 0).
func NewHashEmbedder(dimensions int) *HashEmbedder {
	if dimensions <= 0 {
		dimensions = 384
	}
	return &HashEmbedder{dimensions: dimensions, tokenizer: keyword.NewTokenizer()}
}

// Embed returns the normalized token-bucket vector of text. Text without tokens
// embeds to the zero vector.
func (e *HashEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	emb := make([]float32, e.dimensions)
	for _, tok := range e.tokenizer.Tokenize(text) {
		emb[HashToken(tok)%uint32(e.dimensions)]++
	}
	utils.NormalizeL2(emb)
	return emb, nil
}

// EmbedBatch calls Embed for each text.
func (e *HashEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return embedEach(ctx, texts, e.Embed)
}

// Dimensions returns the embedding dimension.
func (e *HashEmbedder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op for HashEmbedder.
func (e *HashEmbedder) Close() error {
	return nil
}

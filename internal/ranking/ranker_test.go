package ranking

import (
	"context"
	"errors"
	"testing"

	"github.com/hyperjump/fitscout/internal/catalog"
	"github.com/hyperjump/fitscout/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedEmbedder returns the same vector for every text.
type fixedEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (f *fixedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	return f.vec, f.err
}

func (f *fixedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vec
	}
	return out, f.err
}

func (f *fixedEmbedder) Dimensions() int { return len(f.vec) }
func (f *fixedEmbedder) Close() error    { return nil }

func seedProducts(t *testing.T) []*models.Product {
	t.Helper()
	d, err := catalog.LoadDir("../../data")
	require.NoError(t, err)
	return d.Products
}

func ids(items []*models.RankedItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Product.ID
	}
	return out
}

func TestRank_TagPathSeed(t *testing.T) {
	r := NewRanker(nil, nil, nil)
	res, err := r.Rank(context.Background(), "running shoes nike", seedProducts(t), 24)
	require.NoError(t, err)

	assert.Equal(t, StrategyTags, res.Strategy)
	require.NotEmpty(t, res.Items)
	top := res.Items[0]
	assert.Equal(t, "nike-pegasus-41", top.Product.ID)
	assert.Equal(t, 0.7, top.Score)
	assert.Equal(t, "Matched tags: running, athletic, nike", top.Reason, "reason lists the first tags on both paths")

	assert.Equal(t, []string{
		"nike-pegasus-41",
		"adidas-ultraboost-5",
		"nike-dri-fit-tee",
		"adidas-essentials-shirt",
		"uniqlo-oxford-shirt",
		"uniqlo-leather-belt",
	}, ids(res.Items))
	assert.Equal(t, 0.3, res.Items[1].Score)
	assert.Equal(t, 0.1, res.Items[2].Score)
	assert.Equal(t, 0.0, res.Items[3].Score)
	assert.Equal(t, "Matched tags: linen, casual, summer", res.Items[3].Reason)
}

func TestRank_TagScoreCapped(t *testing.T) {
	products := []*models.Product{
		{ID: "p", BrandID: "nike", Category: "shoes", Tags: []string{"Running", "Shoes", "Nike"}},
	}
	r := NewRanker(nil, nil, nil)
	res, err := r.Rank(context.Background(), "nike running shoes", products, 5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Items[0].Score)
}

func TestNewRanker_CopiesConfig(t *testing.T) {
	cfg := &RankingConfig{}
	NewRanker(cfg, nil, nil)
	assert.Equal(t, RankingConfig{}, *cfg)
}

func TestRank_ZeroBonusesKept(t *testing.T) {
	products := []*models.Product{
		{ID: "p", BrandID: "nike", Category: "shoes", Tags: []string{"running"}},
	}
	r := NewRanker(&RankingConfig{}, nil, nil)
	res, err := r.Rank(context.Background(), "nike shoes", products, 5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Items[0].Score)
	assert.Equal(t, "Matched tags: running", res.Items[0].Reason)
}

func TestRank_DisjointScoresZero(t *testing.T) {
	products := []*models.Product{
		{ID: "p", BrandID: "acme", Category: "clothing", Tags: []string{"linen"}},
	}
	r := NewRanker(nil, nil, nil)
	res, err := r.Rank(context.Background(), "wool scarf", products, 5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Items[0].Score)
}

func TestRank_LimitAndOrder(t *testing.T) {
	r := NewRanker(nil, nil, nil)
	products := seedProducts(t)
	for _, k := range []int{1, 3, 6, 24} {
		res, err := r.Rank(context.Background(), "adidas running shirt", products, k)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(res.Items), k)
		for i := 1; i < len(res.Items); i++ {
			assert.GreaterOrEqual(t, res.Items[i-1].Score, res.Items[i].Score)
		}
	}
}

func TestRank_EmbeddingPath(t *testing.T) {
	products := []*models.Product{
		{ID: "far", Tags: []string{"a"}, Embedding: []float32{0, 1}},
		{ID: "plain", Tags: []string{"b"}},
		{ID: "near", Tags: []string{"x", "y", "z", "w"}, Embedding: []float32{1, 0.2}},
		{ID: "opposite", Embedding: []float32{-1, 0}},
		{ID: "zero", Embedding: []float32{0, 0}},
	}
	emb := &fixedEmbedder{vec: []float32{1, 0}}
	r := NewRanker(nil, emb, nil)
	res, err := r.Rank(context.Background(), "anything", products, 10)
	require.NoError(t, err)

	assert.Equal(t, StrategyEmbedding, res.Strategy)
	assert.Equal(t, 4, res.Candidates)
	assert.Equal(t, 1, emb.calls, "query is embedded once")
	assert.Equal(t, []string{"near", "far", "zero", "opposite"}, ids(res.Items))
	assert.Equal(t, 0.98, res.Items[0].Score)
	assert.Equal(t, "Matched tags: x, y, z", res.Items[0].Reason)
	assert.Equal(t, 0.0, res.Items[3].Score, "negative cosine is reported as 0")
	for _, it := range res.Items {
		assert.True(t, it.Product.HasEmbedding())
	}
}

func TestRank_EmbeddingFailureDoesNotFallBack(t *testing.T) {
	products := []*models.Product{
		{ID: "e", Embedding: []float32{1, 0}},
		{ID: "t", Tags: []string{"running"}},
	}
	boom := errors.New("model load failed")
	r := NewRanker(nil, &fixedEmbedder{err: boom}, nil)
	_, err := r.Rank(context.Background(), "running", products, 5)
	assert.ErrorIs(t, err, boom)

	r = NewRanker(nil, nil, nil)
	_, err = r.Rank(context.Background(), "running", products, 5)
	assert.ErrorIs(t, err, models.ErrEmbedderUnavailable)
}

func TestRank_DimensionMismatch(t *testing.T) {
	products := []*models.Product{{ID: "e", Embedding: []float32{1, 0, 0}}}
	r := NewRanker(nil, &fixedEmbedder{vec: []float32{1, 0}}, nil)
	_, err := r.Rank(context.Background(), "q", products, 5)
	assert.ErrorIs(t, err, models.ErrDimensionMismatch)
}

func TestRank_InvalidInput(t *testing.T) {
	r := NewRanker(nil, nil, nil)
	_, err := r.Rank(context.Background(), "  ", nil, 5)
	assert.ErrorIs(t, err, models.ErrEmptyQuery)
	_, err = r.Rank(context.Background(), "shoes", nil, 0)
	assert.ErrorIs(t, err, models.ErrInvalidLimit)
}

func TestRank_TiesKeepCatalogOrder(t *testing.T) {
	products := []*models.Product{
		{ID: "a", Tags: []string{"red"}},
		{ID: "b", Tags: []string{"red"}},
		{ID: "c", Tags: []string{"red"}},
	}
	r := NewRanker(nil, nil, nil)
	res, err := r.Rank(context.Background(), "red", products, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(res.Items))
}

func TestSelectStrategy(t *testing.T) {
	assert.Equal(t, StrategyTags, SelectStrategy(nil))
	assert.Equal(t, StrategyTags, SelectStrategy([]*models.Product{{ID: "a"}}))
	assert.Equal(t, StrategyEmbedding, SelectStrategy([]*models.Product{{ID: "a"}, {ID: "b", Embedding: []float32{1}}}))
}

func TestTagReason(t *testing.T) {
	assert.Equal(t, "", tagReason(nil, 3))
	assert.Equal(t, "Matched tags: a, b", tagReason([]string{"a", "b"}, 3))
	assert.Equal(t, "Matched tags: a, b, c", tagReason([]string{"a", "b", "c", "d"}, 3))
}

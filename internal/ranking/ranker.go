package ranking

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hyperjump/fitscout/internal/embedding"
	"github.com/hyperjump/fitscout/internal/keyword"
	"github.com/hyperjump/fitscout/internal/metrics"
	"github.com/hyperjump/fitscout/internal/models"
	"github.com/hyperjump/fitscout/pkg/utils"
	"go.uber.org/zap"
)

// Ranker picks a scoring strategy for the product pool and returns the top-k products.
type Ranker struct {
	config          *RankingConfig
	embeddingScorer *EmbeddingScorer
	tagScorer       *TagScorer
	logger          *zap.Logger
}

// NewRanker creates a Ranker with a copy of config (DefaultRankingConfig when nil).
// embedder may be nil when no product carries an embedding.
func NewRanker(config *RankingConfig, embedder embedding.Embedder, logger *zap.Logger) *Ranker {
	if config == nil {
		config = DefaultRankingConfig()
	}
	cfg := *config
	cfg.ApplyDefaults()
	config = &cfg
	logger = utils.Named(logger, "ranking")
	return &Ranker{
		config:          config,
		embeddingScorer: NewEmbeddingScorer(config, embedder),
		tagScorer:       NewTagScorer(config, keyword.NewTokenizer()),
		logger:          logger,
	}
}

// SelectStrategy returns StrategyEmbedding if any product has an embedding.
func SelectStrategy(products []*models.Product) Strategy {
	for _, p := range products {
		if p.HasEmbedding() {
			return StrategyEmbedding
		}
	}
	return StrategyTags
}

// Rank returns at most k products ordered by descending score, ties in catalog order.
// The strategy is chosen once from the pool; an embedding failure fails the call
// instead of falling back to tags.
func (r *Ranker) Rank(ctx context.Context, cue string, products []*models.Product, k int) (*Result, error) {
	if strings.TrimSpace(cue) == "" {
		return nil, models.ErrEmptyQuery
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: %d", models.ErrInvalidLimit, k)
	}

	start := time.Now()
	strategy := SelectStrategy(products)

	var candidates []scored
	var err error
	switch strategy {
	case StrategyEmbedding:
		candidates, err = r.embeddingScorer.Score(ctx, cue, products)
	default:
		candidates = r.tagScorer.Score(cue, products)
	}
	metrics.RecordRanking(string(strategy), time.Since(start), err)
	if err != nil {
		r.logger.Warn("ranking failed", zap.String("strategy", string(strategy)), zap.Error(err))
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	n := min(k, len(candidates))
	items := make([]*models.RankedItem, n)
	for i := 0; i < n; i++ {
		c := candidates[i]
		items[i] = &models.RankedItem{
			Product: c.product,
			Score:   utils.Round2(utils.Clamp01(c.score)),
			Reason:  c.reason,
		}
	}

	r.logger.Debug("ranked products",
		zap.String("strategy", string(strategy)),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", n),
		zap.Duration("took", time.Since(start)))

	return &Result{Items: items, Strategy: strategy, Candidates: len(candidates)}, nil
}

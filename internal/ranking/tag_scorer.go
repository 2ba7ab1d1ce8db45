package ranking

import (
	"strings"

	"github.com/hyperjump/fitscout/internal/keyword"
	"github.com/hyperjump/fitscout/internal/models"
)

// TagScorer scores products by Jaccard overlap between the query tokens and the
// product tags, plus flat bonuses for brand and category mentions.
type TagScorer struct {
	config    *RankingConfig
	tokenizer *keyword.Tokenizer
}

// NewTagScorer creates a TagScorer.
func NewTagScorer(config *RankingConfig, tokenizer *keyword.Tokenizer) *TagScorer {
	return &TagScorer{config: config, tokenizer: tokenizer}
}

// Score scores every product against cue.
func (s *TagScorer) Score(cue string, products []*models.Product) []scored {
	queryTokens := s.tokenizer.TokenSet(cue)
	lowerCue := strings.ToLower(cue)

	out := make([]scored, 0, len(products))
	for _, p := range products {
		tags := keyword.NewSet(p.Tags)
		score := keyword.Jaccard(queryTokens, tags)
		if p.BrandID != "" && strings.Contains(lowerCue, strings.ToLower(p.BrandID)) {
			score += s.config.BrandBonus
		}
		if p.Category != "" && strings.Contains(lowerCue, strings.ToLower(p.Category)) {
			score += s.config.CategoryBonus
		}
		score = min(score, s.config.MaxScore)

		out = append(out, scored{product: p, score: score, reason: tagReason(p.Tags, s.config.ReasonTags)})
	}
	return out
}

// tagReason lists the first n tags of a product.
func tagReason(tags []string, n int) string {
	if len(tags) == 0 {
		return ""
	}
	if len(tags) > n {
		tags = tags[:n]
	}
	return "Matched tags: " + strings.Join(tags, ", ")
}

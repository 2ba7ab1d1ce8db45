package ranking

// RankingConfig holds the tunable values of the similarity ranker.
type RankingConfig struct {
	// Flat bonuses added to the tag score when the query text mentions the product's
	// brand id or category.
	BrandBonus    float64 `yaml:"brand_bonus"`    // default: 0.1
	CategoryBonus float64 `yaml:"category_bonus"` // default: 0.1

	// MaxScore caps the tag score after bonuses.
	MaxScore float64 `yaml:"max_score"` // default: 1.0

	// ReasonTags is how many product tags a reason string lists.
	ReasonTags int `yaml:"reason_tags"` // default: 3
}

// DefaultRankingConfig returns the standard ranking configuration.
func DefaultRankingConfig() *RankingConfig {
	return &RankingConfig{
		BrandBonus:    0.1,
		CategoryBonus: 0.1,
		MaxScore:      1.0,
		ReasonTags:    3,
	}
}

// ApplyDefaults fills in MaxScore and ReasonTags when unset. A zero bonus is a
// valid setting and is kept.
func (c *RankingConfig) ApplyDefaults() {
	def := DefaultRankingConfig()
	if c.MaxScore == 0 {
		c.MaxScore = def.MaxScore
	}
	if c.ReasonTags == 0 {
		c.ReasonTags = def.ReasonTags
	}
}

// Package sizing suggests a garment or shoe size from body measurements.
//
// A suggestion is resolved in two tiers. The garment tier compares the request with
// the chart's own measurements and is accepted when its confidence clears the
// acceptance threshold. Otherwise the body tier estimates a size from a single
// body measurement, or falls back to a default label.
package sizing

import (
	"fmt"

	"github.com/hyperjump/fitscout/internal/catalog"
	"github.com/hyperjump/fitscout/internal/metrics"
	"github.com/hyperjump/fitscout/internal/models"
	"github.com/hyperjump/fitscout/pkg/utils"
	"go.uber.org/zap"
)

// Config tunes the engine. The zero value is not usable; start from DefaultConfig.
type Config struct {
	// ShoeRegion is the shoe chart region matched against foot length.
	ShoeRegion string
	// DefaultLabel is suggested when no measurement can be used.
	DefaultLabel string
	// AcceptThreshold is the garment-tier confidence that must be exceeded to skip the body tier.
	AcceptThreshold float64
}

// DefaultConfig returns the standard engine settings.
func DefaultConfig() Config {
	return Config{
		ShoeRegion:      "US",
		DefaultLabel:    "M",
		AcceptThreshold: 0.7,
	}
}

// Engine resolves size suggestions against a reference data store.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	store  catalog.Store
	cfg    Config
	logger *zap.Logger
}

// NewEngine creates an engine. Empty config fields take their default values.
func NewEngine(store catalog.Store, cfg Config, logger *zap.Logger) *Engine {
	def := DefaultConfig()
	if cfg.ShoeRegion == "" {
		cfg.ShoeRegion = def.ShoeRegion
	}
	if cfg.DefaultLabel == "" {
		cfg.DefaultLabel = def.DefaultLabel
	}
	if cfg.AcceptThreshold <= 0 {
		cfg.AcceptThreshold = def.AcceptThreshold
	}
	logger = utils.Named(logger, "sizing")
	return &Engine{store: store, cfg: cfg, logger: logger}
}

// Suggest returns the size suggestion for req.
func (e *Engine) Suggest(req *models.SizeRequest) (*models.SizeSuggestion, error) {
	s, err := e.suggest(req)
	if err != nil {
		metrics.RecordSizeSuggestionError(models.IsUserError(err))
		e.logger.Debug("size suggestion failed",
			zap.String("brand", req.Brand),
			zap.String("category", req.Category),
			zap.Error(err))
		return nil, err
	}
	metrics.RecordSizeSuggestion(req.Category, string(s.Tier), s.Confidence)
	e.logger.Debug("size suggested",
		zap.String("brand", req.Brand),
		zap.String("category", req.Category),
		zap.String("size", s.SizeLabel),
		zap.Float64("confidence", s.Confidence),
		zap.String("tier", string(s.Tier)),
		zap.String("subcategory", s.SubCategory))
	return s, nil
}

func (e *Engine) suggest(req *models.SizeRequest) (*models.SizeSuggestion, error) {
	fit, err := req.Fit()
	if err != nil {
		return nil, err
	}
	brand, ok := e.store.GetBrand(req.Brand)
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownBrand, req.Brand)
	}
	if !brand.Supports(req.Category) {
		return nil, fmt.Errorf("%w: %s does not list %s", models.ErrUnsupportedCategory, brand.ID, req.Category)
	}
	chart, err := e.store.GetSizeChart(brand.ID, req.Category)
	if err != nil {
		return nil, err
	}
	if want := models.KindForCategory(req.Category); chart.Kind != want {
		return nil, fmt.Errorf("%w: %s/%s has a %s chart, expected %s",
			models.ErrMissingSizeChart, brand.ID, req.Category, chart.Kind, want)
	}

	if chart.Kind == models.ChartKindShoe {
		return e.suggestShoe(brand.ID, chart.Shoe, req.Measurements)
	}

	m := req.Measurements
	if m.IsEmpty() {
		return e.defaultSuggestion(chart.Clothing), nil
	}
	if best, ok := garmentMatch(chart.Clothing, m, fit); ok && best.confidence > e.cfg.AcceptThreshold {
		return best.suggestion(chart.Clothing, models.TierGarment), nil
	}
	return e.bodyFallback(chart.Clothing, m), nil
}

// suggestShoe picks the size whose foot length is closest to the supplied one.
func (e *Engine) suggestShoe(brandID string, chart *models.ShoeChart, m models.Measurements) (*models.SizeSuggestion, error) {
	foot, ok := m.Foot()
	if !ok {
		return nil, fmt.Errorf("%w: shoes need foot_mm", models.ErrNoUsableMeasurement)
	}
	region, ok := chart.Region(e.cfg.ShoeRegion)
	if !ok || len(region.Sizes) == 0 {
		return nil, fmt.Errorf("%w: %s shoes has no %s sizes", models.ErrMissingSizeChart, brandID, e.cfg.ShoeRegion)
	}

	bestIdx := -1
	minDiff := 0.0
	for i, size := range region.Sizes {
		diff := abs(size.FootMM - foot)
		if bestIdx < 0 || diff < minDiff {
			bestIdx, minDiff = i, diff
		}
	}
	best := region.Sizes[bestIdx]
	return &models.SizeSuggestion{
		SizeLabel:  best.Label,
		Confidence: utils.Clamp01(max(0.8, 1-minDiff/50)),
		Rationale: fmt.Sprintf("Foot length %smm matches closest to %s %s (%smm)",
			formatNumber(foot), region.Region, best.Label, formatNumber(best.FootMM)),
		Alternates:  Alternates(region.Labels(), bestIdx),
		Tier:        models.TierGarment,
		SubCategory: region.Region,
	}, nil
}

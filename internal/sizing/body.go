package sizing

import (
	"fmt"

	"github.com/hyperjump/fitscout/internal/models"
	"github.com/hyperjump/fitscout/pkg/utils"
)

const (
	bodyMinConfidence  = 0.6
	bodyDecayCM        = 20.0
	fallbackConfidence = 0.3
)

// bodyFallback estimates a size from one body measurement per sub-category. Chest is
// used when supplied, waist only when chest is absent. Without either, the default
// label is suggested. Confidence never drops below fallbackConfidence.
func (e *Engine) bodyFallback(chart *models.ClothingChart, m models.Measurements) *models.SizeSuggestion {
	dim, value, ok := bodyDimension(m)
	var best match
	found := false
	if ok {
		for si := range chart.SubCategories {
			size, conf, hit := closestByDimension(&chart.SubCategories[si], dim, value)
			if hit && conf > best.confidence {
				best = match{
					sub:        si,
					size:       size,
					confidence: conf,
					rationale:  fmt.Sprintf("Estimated size based on %s measurement (%scm)", dim.name, formatNumber(value)),
				}
				found = true
			}
		}
	}
	if !found {
		return e.defaultSuggestion(chart)
	}
	s := best.suggestion(chart, models.TierBody)
	s.Confidence = utils.Clamp01(max(s.Confidence, fallbackConfidence))
	return s
}

func bodyDimension(m models.Measurements) (dimension, float64, bool) {
	if v, ok := m.Chest(); ok {
		return garmentDimensions[0], v, true
	}
	if v, ok := m.Waist(); ok {
		return garmentDimensions[1], v, true
	}
	return dimension{}, 0, false
}

// closestByDimension returns the first size of sub whose chart value for dim gives the
// highest confidence. Sizes without that dimension are skipped.
func closestByDimension(sub *models.SubCategory, dim dimension, value float64) (int, float64, bool) {
	bestIdx, bestConf := -1, 0.0
	for i := range sub.Sizes {
		c, ok := dim.query(sub.Sizes[i].Measurements)
		if !ok {
			continue
		}
		conf := max(bodyMinConfidence, 1-abs(value-c)/bodyDecayCM)
		if conf > bestConf {
			bestIdx, bestConf = i, conf
		}
	}
	return bestIdx, bestConf, bestIdx >= 0
}

// defaultSuggestion returns the configured default label from the first sub-category
// that has it, or the middle size of the first non-empty sub-category.
func (e *Engine) defaultSuggestion(chart *models.ClothingChart) *models.SizeSuggestion {
	const rationale = "Default size recommendation due to insufficient measurements"
	pick := func(sub, size int) *models.SizeSuggestion {
		m := match{sub: sub, size: size, confidence: fallbackConfidence, rationale: rationale}
		return m.suggestion(chart, models.TierDefault)
	}
	for si := range chart.SubCategories {
		for i, size := range chart.SubCategories[si].Sizes {
			if size.Label == e.cfg.DefaultLabel {
				return pick(si, i)
			}
		}
	}
	for si := range chart.SubCategories {
		if n := len(chart.SubCategories[si].Sizes); n > 0 {
			return pick(si, (n-1)/2)
		}
	}
	return &models.SizeSuggestion{
		SizeLabel:  e.cfg.DefaultLabel,
		Confidence: fallbackConfidence,
		Rationale:  rationale,
		Alternates: []string{},
		Tier:       models.TierDefault,
	}
}

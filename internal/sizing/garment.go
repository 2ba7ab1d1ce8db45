package sizing

import (
	"fmt"
	"strings"

	"github.com/hyperjump/fitscout/internal/models"
	"github.com/hyperjump/fitscout/pkg/utils"
)

// Tolerances for the garment tier, in centimetres.
const (
	chestTolerance    = 5.0
	waistTolerance    = 5.0
	shoulderTolerance = 3.0
)

// confidence used when no field could be compared
const uncheckedConfidence = 0.5

// fitDamping scales garment-tier confidence for non-regular preferences.
var fitDamping = map[models.FitPreference]float64{
	models.FitSlim:    0.9,
	models.FitRegular: 1.0,
	models.FitLoose:   0.85,
}

// match is a candidate size inside a clothing chart.
type match struct {
	sub        int
	size       int
	confidence float64
	rationale  string
}

func (m match) suggestion(chart *models.ClothingChart, tier models.Tier) *models.SizeSuggestion {
	sub := &chart.SubCategories[m.sub]
	return &models.SizeSuggestion{
		SizeLabel:   sub.Sizes[m.size].Label,
		Confidence:  utils.Clamp01(m.confidence),
		Rationale:   m.rationale,
		Alternates:  Alternates(sub.Labels(), m.size),
		Tier:        tier,
		SubCategory: sub.Name,
	}
}

type dimension struct {
	name      string
	tolerance float64
	query     func(models.Measurements) (float64, bool)
}

var garmentDimensions = []dimension{
	{"chest", chestTolerance, models.Measurements.Chest},
	{"waist", waistTolerance, models.Measurements.Waist},
	{"shoulder", shoulderTolerance, models.Measurements.Shoulder},
}

// garmentScore returns the fraction of comparable dimensions within tolerance and
// the names of the dimensions that matched. Dimensions missing on either side are skipped.
func garmentScore(query, size models.Measurements) (float64, []string) {
	checked := 0
	var matched []string
	for _, d := range garmentDimensions {
		q, ok := d.query(query)
		if !ok {
			continue
		}
		c, ok := d.query(size)
		if !ok {
			continue
		}
		checked++
		if abs(q-c) <= d.tolerance {
			matched = append(matched, d.name)
		}
	}
	if checked == 0 {
		return uncheckedConfidence, nil
	}
	return float64(len(matched)) / float64(checked), matched
}

// garmentMatch scans every size of every sub-category and keeps the first size with
// the highest damped score. ok is false when no size scored above zero.
func garmentMatch(chart *models.ClothingChart, m models.Measurements, fit models.FitPreference) (match, bool) {
	damping, ok := fitDamping[fit]
	if !ok {
		damping = 1
	}
	var best match
	found := false
	for si := range chart.SubCategories {
		sub := &chart.SubCategories[si]
		for i := range sub.Sizes {
			score, matched := garmentScore(m, sub.Sizes[i].Measurements)
			conf := score * damping
			if conf > best.confidence {
				best = match{sub: si, size: i, confidence: conf, rationale: garmentRationale(sub.Name, fit, matched)}
				found = true
			}
		}
	}
	return best, found
}

func garmentRationale(sub string, fit models.FitPreference, matched []string) string {
	r := fmt.Sprintf("Best match for %s based on measurements and %s fit preference", sub, fit)
	if len(matched) > 0 {
		r += fmt.Sprintf(" (%s within tolerance)", strings.Join(matched, ", "))
	}
	return r
}

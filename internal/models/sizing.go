package models

import (
	"fmt"
	"strings"
)

// Measurements is a sparse set of body or garment measurements. Body dimensions are in
// centimetres, foot length in millimetres. A nil or non-positive value means "not supplied".
type Measurements struct {
	ChestCM    *float64 `json:"chest_cm,omitempty" validate:"omitempty,min=50,max=200"`
	WaistCM    *float64 `json:"waist_cm,omitempty" validate:"omitempty,min=50,max=200"`
	ShoulderCM *float64 `json:"shoulder_cm,omitempty" validate:"omitempty,min=30,max=100"`
	InseamCM   *float64 `json:"inseam_cm,omitempty" validate:"omitempty,min=50,max=150"`
	HipCM      *float64 `json:"hip_cm,omitempty" validate:"omitempty,min=50,max=200"`
	FootMM     *float64 `json:"foot_mm,omitempty" validate:"omitempty,min=200,max=400"`
}

// Chest returns the chest measurement if supplied.
func (m Measurements) Chest() (float64, bool) { return present(m.ChestCM) }

// Waist returns the waist measurement if supplied.
func (m Measurements) Waist() (float64, bool) { return present(m.WaistCM) }

// Shoulder returns the shoulder measurement if supplied.
func (m Measurements) Shoulder() (float64, bool) { return present(m.ShoulderCM) }

// Foot returns the foot length if supplied.
func (m Measurements) Foot() (float64, bool) { return present(m.FootMM) }

// IsEmpty reports whether no measurement is supplied.
func (m Measurements) IsEmpty() bool {
	for _, v := range []*float64{m.ChestCM, m.WaistCM, m.ShoulderCM, m.InseamCM, m.HipCM, m.FootMM} {
		if _, ok := present(v); ok {
			return false
		}
	}
	return true
}

func present(v *float64) (float64, bool) {
	if v == nil || *v <= 0 {
		return 0, false
	}
	return *v, true
}

// Float returns a pointer to v, for building Measurements literals.
func Float(v float64) *float64 {
	return &v
}

// FitPreference is one of three ordered fit tiers.
type FitPreference string

const (
	FitSlim    FitPreference = "slim"
	FitRegular FitPreference = "regular"
	FitLoose   FitPreference = "loose"
)

// ParseFitPreference normalizes the names used by different callers (snug/relaxed)
// to the three canonical tiers. An empty value is treated as regular.
func ParseFitPreference(s string) (FitPreference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slim", "snug":
		return FitSlim, nil
	case "regular", "":
		return FitRegular, nil
	case "loose", "relaxed":
		return FitLoose, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFitPreference, s)
	}
}

// SizeRequest is the input of a size suggestion. FitPref is accepted as an alias of
// FitPreference for clients that send the shorter name.
type SizeRequest struct {
	Brand         string       `json:"brand" validate:"required"`
	Category      string       `json:"category" validate:"required"`
	FitPreference string       `json:"fitPreference,omitempty" validate:"omitempty,oneof=slim snug regular loose relaxed"`
	FitPref       string       `json:"fitPref,omitempty" validate:"omitempty,oneof=slim snug regular loose relaxed"`
	Measurements  Measurements `json:"measurements"`
}

// Fit returns the requested fit preference, preferring FitPreference over FitPref.
func (r *SizeRequest) Fit() (FitPreference, error) {
	if r.FitPreference != "" {
		return ParseFitPreference(r.FitPreference)
	}
	return ParseFitPreference(r.FitPref)
}

// Tier records which resolution step produced a suggestion.
type Tier string

const (
	TierGarment Tier = "garment"
	TierBody    Tier = "body"
	TierDefault Tier = "default"
)

// SizeSuggestion is the result of a size suggestion.
type SizeSuggestion struct {
	SizeLabel   string   `json:"sizeLabel"`
	Confidence  float64  `json:"confidence"`
	Rationale   string   `json:"rationale"`
	Alternates  []string `json:"alternates"`
	Tier        Tier     `json:"-"`
	SubCategory string   `json:"-"`
}

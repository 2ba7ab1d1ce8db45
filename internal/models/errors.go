package models

import "errors"

var (
	// ErrUnknownBrand is returned when the brand is not in the reference data.
	ErrUnknownBrand = errors.New("brand not found")

	// ErrUnsupportedCategory is returned when the brand does not list the category.
	ErrUnsupportedCategory = errors.New("category not supported by brand")

	// ErrNoUsableMeasurement is returned when the request has no measurement the category can use.
	ErrNoUsableMeasurement = errors.New("no usable measurement for category")

	// ErrInvalidFitPreference is returned for a fit preference outside the three tiers.
	ErrInvalidFitPreference = errors.New("fit preference must be slim, regular, or loose")

	// ErrEmptyQuery is returned when a find request has no url, caption or text.
	ErrEmptyQuery = errors.New("either url, caption, or text is required")

	// ErrInvalidLimit is returned when a ranking is requested with a non-positive k.
	ErrInvalidLimit = errors.New("limit must be positive")

	// ErrMissingSizeChart is returned when a brand claims a category but has no usable chart for it.
	// It indicates broken reference data, not a bad request.
	ErrMissingSizeChart = errors.New("size chart not available")

	// ErrDimensionMismatch is returned when a product embedding and the query embedding differ in length.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbedderUnavailable is returned when the embedding path is selected but no embedder is configured.
	ErrEmbedderUnavailable = errors.New("embedding provider unavailable")
)

// IsUserError reports whether err was caused by the request and can be fixed by the caller.
func IsUserError(err error) bool {
	for _, target := range []error{
		ErrUnknownBrand,
		ErrUnsupportedCategory,
		ErrNoUsableMeasurement,
		ErrInvalidFitPreference,
		ErrEmptyQuery,
		ErrInvalidLimit,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

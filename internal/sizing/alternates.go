package sizing

import "strconv"

// Alternates returns the labels adjacent to labels[idx], smaller first.
// It never includes labels[idx] itself and has at most two entries.
func Alternates(labels []string, idx int) []string {
	alts := make([]string, 0, 2)
	if idx < 0 || idx >= len(labels) {
		return alts
	}
	if idx > 0 {
		alts = append(alts, labels[idx-1])
	}
	if idx < len(labels)-1 {
		alts = append(alts, labels[idx+1])
	}
	return alts
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// formatNumber prints v without trailing zeros, so 270 prints as "270" and 27.5 as "27.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

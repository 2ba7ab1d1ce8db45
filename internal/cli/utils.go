// Package cli provides output helpers for the FitScout command line.
package cli

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/hyperjump/fitscout/internal/models"
	"github.com/hyperjump/fitscout/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat returns the format named by s. Anything but "json" is text.
func ParseOutputFormat(s string) OutputFormat {
	if strings.EqualFold(strings.TrimSpace(s), string(OutputJSON)) {
		return OutputJSON
	}
	return OutputText
}

// WriteSuggestion writes a size suggestion to w in the given format. The JSON form is
// the API response body.
func WriteSuggestion(w io.Writer, s *models.SizeSuggestion, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, s)
	}
	fmt.Fprintf(w, "\nSize: %s (confidence %.2f)\n", s.SizeLabel, s.Confidence)
	fmt.Fprintf(w, "%s\n", s.Rationale)
	if len(s.Alternates) > 0 {
		fmt.Fprintf(w, "Alternates: %s\n", strings.Join(s.Alternates, ", "))
	}
	if s.Tier != "" {
		source := string(s.Tier)
		if s.SubCategory != "" {
			source += ", " + s.SubCategory
		}
		fmt.Fprintf(w, "Source: %s\n", source)
	}
	return nil
}

// WriteFindResults writes ranked products to w in the given format.
func WriteFindResults(w io.Writer, response *models.FindResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, response)
	}
	fmt.Fprintf(w, "\nFound %d products in %dms (strategy: %s)\n\n",
		len(response.Items), response.QueryTime, response.Strategy)
	for i, item := range response.Items {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "%d. %s | Score: %.2f\n", i+1, utils.Truncate(item.Title, 60), item.Score)
		fmt.Fprintf(w, "ID: %s | Brand: %s | Category: %s | Price: %.2f\n",
			item.ID, item.BrandID, item.Category, item.Price)
		if item.Reason != "" {
			fmt.Fprintf(w, "%s\n", item.Reason)
		}
	}
	if len(response.Items) > 0 {
		fmt.Fprintln(w)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatBytes renders n bytes with a binary unit, e.g. "1.5 MiB".
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

package cli

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/hyperjump/fitscout/internal/models"
)

func TestWriteSuggestion_Text(t *testing.T) {
	s := &models.SizeSuggestion{
		SizeLabel:   "M",
		Confidence:  0.9,
		Rationale:   "Best match for shirts based on measurements and slim fit preference",
		Alternates:  []string{"S", "L"},
		Tier:        models.TierGarment,
		SubCategory: "shirts",
	}
	var buf bytes.Buffer
	if err := WriteSuggestion(&buf, s, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Size: M (confidence 0.90)", "Alternates: S, L", "Source: garment, shirts"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSuggestion_JSON(t *testing.T) {
	s := &models.SizeSuggestion{SizeLabel: "9", Confidence: 1, Rationale: "r", Alternates: []string{"8.5"}, Tier: models.TierGarment}
	var buf bytes.Buffer
	if err := WriteSuggestion(&buf, s, OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if decoded["sizeLabel"] != "9" {
		t.Errorf("sizeLabel: got %v", decoded["sizeLabel"])
	}
	if _, ok := decoded["Tier"]; ok {
		t.Error("tier must not be serialized")
	}
}

func TestWriteFindResults(t *testing.T) {
	resp := &models.FindResponse{
		Strategy:  "tags",
		QueryTime: 3,
		Items: []models.FindItem{
			{ID: "p1", Title: "Pegasus 41", BrandID: "nike", Category: "shoes", Price: 140, Score: 0.7, Reason: "Matched tags: running"},
			{ID: "p2", Title: "Tee", BrandID: "nike", Category: "clothing", Price: 30, Score: 0.1},
		},
	}
	var buf bytes.Buffer
	if err := WriteFindResults(&buf, resp, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Found 2 products in 3ms (strategy: tags)") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "1. Pegasus 41 | Score: 0.70") || !strings.Contains(out, "Matched tags: running") {
		t.Errorf("missing first item:\n%s", out)
	}

	buf.Reset()
	if err := WriteFindResults(&buf, resp, OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.FindResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Items) != 2 || decoded.Items[0].ID != "p1" || decoded.QueryTime != 3 {
		t.Errorf("decoded: %+v", decoded)
	}
}

func TestParseOutputFormat(t *testing.T) {
	if ParseOutputFormat("JSON") != OutputJSON {
		t.Error("JSON should parse as json")
	}
	if ParseOutputFormat("") != OutputText || ParseOutputFormat("yaml") != OutputText {
		t.Error("unknown formats fall back to text")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/hyperjump/fitscout/internal/models"
)

const seedDir = "../../data"

func TestLoadDir_Seed(t *testing.T) {
	d, err := LoadDir(seedDir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(d.Brands) != 3 {
		t.Errorf("brands=%d", len(d.Brands))
	}
	if len(d.Products) == 0 {
		t.Error("expected products")
	}
	if w := d.Check(); len(w) != 0 {
		t.Errorf("seed data should be consistent, got warnings %v", w)
	}

	s, err := NewMemoryStore(d)
	if err != nil {
		t.Fatalf("NewMemoryStore: %v", err)
	}
	chart, err := s.GetSizeChart("nike", models.CategoryShoes)
	if err != nil {
		t.Fatal(err)
	}
	us, ok := chart.Shoe.Region("US")
	if !ok || us.Sizes[0].Label != "7" {
		t.Errorf("unexpected US region %+v", us)
	}
	chart, err = s.GetSizeChart("nike", models.CategoryClothing)
	if err != nil {
		t.Fatal(err)
	}
	if chart.Kind != models.ChartKindClothing || chart.Clothing.SubCategories[0].Name != "shirts" {
		t.Errorf("unexpected clothing chart %+v", chart)
	}
	labels := chart.Clothing.SubCategories[0].Labels()
	if strings.Join(labels, ",") != "XS,S,M,L,XL" {
		t.Errorf("chart order not preserved: %v", labels)
	}
}

func TestMemoryStore_Lookups(t *testing.T) {
	s, err := NewMemoryStore(&Data{
		Brands: []*models.Brand{{ID: "acme", Name: "Acme", Categories: []string{"clothing"}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.GetBrand("acme"); !ok {
		t.Error("expected acme")
	}
	if _, ok := s.GetBrand("nope"); ok {
		t.Error("unexpected brand")
	}
	if _, err := s.GetSizeChart("acme", "clothing"); !errors.Is(err, models.ErrMissingSizeChart) {
		t.Errorf("expected ErrMissingSizeChart, got %v", err)
	}
}

func TestNewMemoryStore_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data *Data
	}{
		{"duplicate brand", &Data{Brands: []*models.Brand{{ID: "a"}, {ID: "a"}}}},
		{"empty brand id", &Data{Brands: []*models.Brand{{Name: "x"}}}},
		{"null brand", &Data{Brands: []*models.Brand{{ID: "a"}, nil}}},
		{"null product", &Data{Products: []*models.Product{nil}}},
		{"invalid chart", &Data{SizeCharts: map[string]map[string]*models.SizeChart{
			"a": {"shoes": {Kind: models.ChartKindShoe}},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMemoryStore(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestData_Check(t *testing.T) {
	d := &Data{
		Brands: []*models.Brand{{ID: "acme", Categories: []string{"clothing"}}},
		Products: []*models.Product{
			{ID: "p1", BrandID: "acme", Embedding: []float32{1, 0}},
			{ID: "p2", BrandID: "ghost", Embedding: []float32{1, 0, 0}},
			{ID: "p3", BrandID: "acme"},
		},
	}
	w := d.Check()
	if len(w) != 3 {
		t.Fatalf("expected 3 warnings, got %v", w)
	}
	if d.EmbeddedCount() != 2 {
		t.Errorf("EmbeddedCount=%d", d.EmbeddedCount())
	}
}

func TestData_Check_NullEntries(t *testing.T) {
	d := &Data{
		Brands:   []*models.Brand{nil, {ID: "acme"}},
		Products: []*models.Product{nil, {ID: "p1", BrandID: "acme"}},
	}
	if w := d.Check(); len(w) != 0 {
		t.Errorf("unexpected warnings %v", w)
	}
	if d.EmbeddedCount() != 0 {
		t.Errorf("EmbeddedCount=%d", d.EmbeddedCount())
	}
}

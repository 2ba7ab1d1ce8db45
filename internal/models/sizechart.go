package models

import "fmt"

// ChartKind tags which variant a SizeChart carries.
type ChartKind string

const (
	// ChartKindShoe charts map region -> ordered sizes with a foot length.
	ChartKindShoe ChartKind = "shoes"
	// ChartKindClothing charts map sub-category -> ordered sizes with garment measurements.
	ChartKindClothing ChartKind = "clothing"
)

// KindForCategory returns the chart kind used for a category. Only shoes use the shoe chart.
func KindForCategory(category string) ChartKind {
	if category == CategoryShoes {
		return ChartKindShoe
	}
	return ChartKindClothing
}

// SizeChart is the size chart of one brand and category.
// Exactly one of Shoe or Clothing is set, matching Kind.
type SizeChart struct {
	Kind     ChartKind      `json:"kind"`
	Shoe     *ShoeChart     `json:"shoe,omitempty"`
	Clothing *ClothingChart `json:"clothing,omitempty"`
}

// Validate checks that the populated variant matches Kind.
func (c *SizeChart) Validate() error {
	switch c.Kind {
	case ChartKindShoe:
		if c.Shoe == nil || len(c.Shoe.Regions) == 0 {
			return fmt.Errorf("shoe chart has no regions")
		}
	case ChartKindClothing:
		if c.Clothing == nil || len(c.Clothing.SubCategories) == 0 {
			return fmt.Errorf("clothing chart has no sub-categories")
		}
	default:
		return fmt.Errorf("unknown chart kind %q", c.Kind)
	}
	return nil
}

// ShoeChart lists sizes per region (e.g. "US").
type ShoeChart struct {
	Regions []ShoeRegion `json:"regions"`
}

// Region returns the region named name.
func (c *ShoeChart) Region(name string) (*ShoeRegion, bool) {
	for i := range c.Regions {
		if c.Regions[i].Region == name {
			return &c.Regions[i], true
		}
	}
	return nil, false
}

// ShoeRegion is the ordered size list of one region, smallest first.
type ShoeRegion struct {
	Region string     `json:"region"`
	Sizes  []ShoeSize `json:"sizes"`
}

// Labels returns the size labels in chart order.
func (r *ShoeRegion) Labels() []string {
	labels := make([]string, len(r.Sizes))
	for i, s := range r.Sizes {
		labels[i] = s.Label
	}
	return labels
}

// ShoeSize is one shoe size and its foot length.
type ShoeSize struct {
	Label  string  `json:"label"`
	FootMM float64 `json:"foot_mm"`
}

// ClothingChart lists sizes per sub-category (e.g. "shirts", "pants").
type ClothingChart struct {
	SubCategories []SubCategory `json:"subcategories"`
}

// SubCategory is the ordered size list of one garment type, smallest first.
type SubCategory struct {
	Name  string        `json:"name"`
	Sizes []GarmentSize `json:"sizes"`
}

// Labels returns the size labels in chart order.
func (s *SubCategory) Labels() []string {
	labels := make([]string, len(s.Sizes))
	for i, g := range s.Sizes {
		labels[i] = g.Label
	}
	return labels
}

// GarmentSize is one garment size. Brands publish different dimensions, so every
// measurement is optional.
type GarmentSize struct {
	Label string `json:"label"`
	Measurements
}

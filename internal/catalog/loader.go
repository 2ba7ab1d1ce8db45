package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/hyperjump/fitscout/internal/models"
)

// Seed file names inside a data directory.
const (
	BrandsFile       = "brands.json"
	SizeChartsFile   = "sizeCharts.json"
	ProductsFile     = "products.json"
	ProductsXLSXFile = "products.xlsx"
)

// LoadDir reads brands, size charts and products from dir. Products come from
// products.json, or from products.xlsx when no JSON file exists.
func LoadDir(dir string) (*Data, error) {
	d := &Data{}
	if err := readJSON(filepath.Join(dir, BrandsFile), &d.Brands); err != nil {
		return nil, err
	}
	charts, err := LoadSizeCharts(filepath.Join(dir, SizeChartsFile))
	if err != nil {
		return nil, err
	}
	d.SizeCharts = charts

	jsonPath := filepath.Join(dir, ProductsFile)
	if _, statErr := os.Stat(jsonPath); statErr == nil {
		if err := readJSON(jsonPath, &d.Products); err != nil {
			return nil, err
		}
	} else if errors.Is(statErr, os.ErrNotExist) {
		xlsxPath := filepath.Join(dir, ProductsXLSXFile)
		if _, err := os.Stat(xlsxPath); err == nil {
			if d.Products, err = LoadProductsXLSX(xlsxPath); err != nil {
				return nil, err
			}
		}
	} else {
		return nil, fmt.Errorf("stat %s: %w", jsonPath, statErr)
	}
	return d, nil
}

// LoadSizeCharts reads a size chart file keyed by brand id then category. A chart
// without an explicit kind gets the kind of its category.
func LoadSizeCharts(path string) (map[string]map[string]*models.SizeChart, error) {
	charts := map[string]map[string]*models.SizeChart{}
	if err := readJSON(path, &charts); err != nil {
		return nil, err
	}
	for _, byCategory := range charts {
		for category, chart := range byCategory {
			if chart != nil && chart.Kind == "" {
				chart.Kind = models.KindForCategory(category)
			}
		}
	}
	return charts, nil
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

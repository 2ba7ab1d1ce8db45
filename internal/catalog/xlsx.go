package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hyperjump/fitscout/internal/models"
	"github.com/xuri/excelize/v2"
)

// productColumns are the header names recognized in a product sheet. Matching is
// case-insensitive; id, title, brandId and category are required.
var productColumns = []string{"id", "title", "brandid", "category", "price", "image", "tags"}

// LoadProductsXLSX reads products from the first sheet of an .xlsx workbook. The first
// row is the header. Tags are separated by commas or pipes.
func LoadProductsXLSX(path string) ([]*models.Product, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("get rows for sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := map[string]int{}
	for i, h := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range productColumns[:4] {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, required)
		}
	}
	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	products := make([]*models.Product, 0, len(rows)-1)
	for n, row := range rows[1:] {
		id := cell(row, "id")
		if id == "" {
			continue
		}
		p := &models.Product{
			ID:       id,
			Title:    cell(row, "title"),
			BrandID:  cell(row, "brandid"),
			Category: cell(row, "category"),
			Image:    cell(row, "image"),
			Tags:     splitTags(cell(row, "tags")),
		}
		if raw := cell(row, "price"); raw != "" {
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: invalid price %q", path, n+2, raw)
			}
			p.Price = price
		}
		products = append(products, p)
	}
	return products, nil
}

// WriteProductsXLSX writes products to a new workbook in the layout LoadProductsXLSX reads.
func WriteProductsXLSX(path string, products []*models.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{"id", "title", "brandId", "category", "price", "image", "tags"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, p := range products {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{p.ID, p.Title, p.BrandID, p.Category, p.Price, p.Image, strings.Join(p.Tags, ",")}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return fmt.Errorf("write product %s: %w", p.ID, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func splitTags(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '|' })
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := strings.TrimSpace(f); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

package models

import "strings"

// FindRequest is a similarity search request. Callers send exactly one of URL, Caption or Text;
// when several are set the first non-empty one in that order wins.
type FindRequest struct {
	URL     string `json:"url,omitempty" validate:"omitempty,url"`
	Caption string `json:"caption,omitempty"`
	Text    string `json:"text,omitempty"`
}

// Cue returns the query text for the request. A URL is not fetched; it becomes a
// placeholder cue that still carries the URL words.
func (q *FindRequest) Cue() (string, error) {
	if u := strings.TrimSpace(q.URL); u != "" {
		return "product from " + u, nil
	}
	if c := strings.TrimSpace(q.Caption); c != "" {
		return c, nil
	}
	if t := strings.TrimSpace(q.Text); t != "" {
		return t, nil
	}
	return "", ErrEmptyQuery
}

// RankedItem is one ranked product. Score is rounded to two decimals and lies in [0,1].
type RankedItem struct {
	Product *Product
	Score   float64
	Reason  string
}

// FindItem is the wire form of a ranked product.
type FindItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	BrandID  string  `json:"brandId"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Score    float64 `json:"score"`
	Reason   string  `json:"reason,omitempty"`
}

// NewFindItem flattens a RankedItem.
func NewFindItem(item *RankedItem) FindItem {
	p := item.Product
	return FindItem{
		ID:       p.ID,
		Title:    p.Title,
		BrandID:  p.BrandID,
		Category: p.Category,
		Price:    p.Price,
		Image:    p.Image,
		Score:    item.Score,
		Reason:   item.Reason,
	}
}

// FindResponse is the response for a find request.
type FindResponse struct {
	Items     []FindItem `json:"items"`
	Strategy  string     `json:"strategy,omitempty"`
	QueryTime int64      `json:"query_time_ms"`
}

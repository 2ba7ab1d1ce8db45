// Package search serves find requests by ranking the catalog against a query cue.
package search

import (
	"context"
	"time"

	"github.com/hyperjump/fitscout/internal/catalog"
	"github.com/hyperjump/fitscout/internal/models"
	"github.com/hyperjump/fitscout/internal/ranking"
)

// Service answers find requests against a catalog.
type Service struct {
	store  catalog.Store
	ranker *ranking.Ranker
	limit  int
}

// NewService creates a find service that returns at most limit products per call.
func NewService(store catalog.Store, ranker *ranking.Ranker, limit int) *Service {
	if limit <= 0 {
		limit = 24
	}
	return &Service{store: store, ranker: ranker, limit: limit}
}

// Limit returns the number of products a find call returns at most.
func (s *Service) Limit() int {
	return s.limit
}

// Find derives the query cue from req and ranks the catalog.
func (s *Service) Find(ctx context.Context, req *models.FindRequest) (*models.FindResponse, error) {
	start := time.Now()
	cue, err := req.Cue()
	if err != nil {
		return nil, err
	}
	res, err := s.ranker.Rank(ctx, cue, s.store.ListProducts(), s.limit)
	if err != nil {
		return nil, err
	}
	items := make([]models.FindItem, len(res.Items))
	for i, it := range res.Items {
		items[i] = models.NewFindItem(it)
	}
	return &models.FindResponse{
		Items:     items,
		Strategy:  string(res.Strategy),
		QueryTime: time.Since(start).Milliseconds(),
	}, nil
}

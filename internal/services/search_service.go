package services

import (
	"context"
	"designer-finder-service/internal/domain"
	"designer-finder-service/internal/ports"
	"fmt"
	"strings"
)

// SearchService runs a ranking over the designers currently in the store.
type SearchService struct {
	store  ports.DesignerStore
	ranker *Ranker
}

func NewSearchService(store ports.DesignerStore, ranker *Ranker) *SearchService {
	return &SearchService{store: store, ranker: ranker}
}

func (s *SearchService) Search(ctx context.Context, address string) (domain.SearchOutcome, error) {
	if strings.TrimSpace(address) == "" {
		return domain.SearchOutcome{}, fmt.Errorf("search: customer address is blank: %w", domain.ErrEmptyInput)
	}

	designers, err := s.store.List(ctx)
	if err != nil {
		return domain.SearchOutcome{}, fmt.Errorf("search: %w", asStoreFailure(err))
	}

	out, err := s.ranker.FindClosest(ctx, address, designers)
	if err != nil {
		return domain.SearchOutcome{}, fmt.Errorf("search: %w", err)
	}
	return out, nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vietanh2810/mesas-api/internal/domain"
)

type CatalogRepository interface {
	Candidates(ctx context.Context) ([]domain.Candidate, error)
	Locations(ctx context.Context, municipality string) ([]domain.PollingLocation, error)
	LocationByID(ctx context.Context, id string) (domain.PollingLocation, error)
}

type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

func (s *CatalogService) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	candidates, err := s.repo.Candidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Candidates -> %w", err)
	}

	return candidates, nil
}

// ListLocations returns the polling locations of municipality, or all of
// them when municipality is blank.
func (s *CatalogService) ListLocations(ctx context.Context, municipality string) ([]domain.PollingLocation, error) {
	locations, err := s.repo.Locations(ctx, strings.TrimSpace(municipality))
	if err != nil {
		return nil, fmt.Errorf("s.repo.Locations -> %w", err)
	}

	return locations, nil
}

func (s *CatalogService) GetLocation(ctx context.Context, id string) (domain.PollingLocation, error) {
	location, err := s.repo.LocationByID(ctx, id)
	if err != nil {
		return domain.PollingLocation{}, fmt.Errorf("s.repo.LocationByID -> %w", err)
	}

	return location, nil
}

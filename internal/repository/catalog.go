package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/vietanh2810/mesas-api/internal/domain"
	"github.com/vietanh2810/mesas-api/internal/repository/dao"
)

var (
	ErrLocationNotFound = dao.ErrLocationNotFound
)

const (
	candidatesKey     = "candidates"
	municipalitiesKey = "municipality_tables"
	locationsKeyFmt   = "locations:%s"
)

type LocationDAO interface {
	FindByID(ctx context.Context, id string) (dao.PollingLocation, error)
	FindByStationCode(ctx context.Context, code string) (dao.PollingLocation, error)
	FindAll(ctx context.Context, municipality string) ([]dao.PollingLocation, error)
	TablesByMunicipality(ctx context.Context) ([]dao.MunicipalityTables, error)
}

type CandidateDAO interface {
	FindAll(ctx context.Context) ([]dao.Candidate, error)
}

// CatalogRepository serves the read-only location and candidate catalogs.
// List results are cached for ttl since the catalogs only change on reload.
type CatalogRepository struct {
	locations  LocationDAO
	candidates CandidateDAO
	cache      *cache.Cache
}

func NewCatalogRepository(locations LocationDAO, candidates CandidateDAO, ttl time.Duration) *CatalogRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &CatalogRepository{
		locations:  locations,
		candidates: candidates,
		cache:      cache.New(ttl, 2*ttl),
	}
}

func (r *CatalogRepository) Candidates(ctx context.Context) ([]domain.Candidate, error) {
	if cached, ok := r.cache.Get(candidatesKey); ok {
		return cached.([]domain.Candidate), nil
	}

	found, err := r.candidates.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.candidates.FindAll -> %w", err)
	}

	out := make([]domain.Candidate, len(found))
	for i, c := range found {
		out[i] = candidateDaoToDomain(c)
	}
	r.cache.SetDefault(candidatesKey, out)

	return out, nil
}

func (r *CatalogRepository) Locations(ctx context.Context, municipality string) ([]domain.PollingLocation, error) {
	key := fmt.Sprintf(locationsKeyFmt, municipality)
	if cached, ok := r.cache.Get(key); ok {
		return cached.([]domain.PollingLocation), nil
	}

	found, err := r.locations.FindAll(ctx, municipality)
	if err != nil {
		return nil, fmt.Errorf("r.locations.FindAll -> %w", err)
	}

	out := make([]domain.PollingLocation, len(found))
	for i, l := range found {
		out[i] = locationDaoToDomain(l)
	}
	r.cache.SetDefault(key, out)

	return out, nil
}

func (r *CatalogRepository) LocationByID(ctx context.Context, id string) (domain.PollingLocation, error) {
	found, err := r.locations.FindByID(ctx, id)
	if err != nil {
		return domain.PollingLocation{}, fmt.Errorf("r.locations.FindByID -> %w", err)
	}

	return locationDaoToDomain(found), nil
}

// MunicipalityTables returns catalog table totals per municipality. Only
// municipalities with a positive total are listed.
func (r *CatalogRepository) MunicipalityTables(ctx context.Context) ([]domain.MunicipalityTally, error) {
	if cached, ok := r.cache.Get(municipalitiesKey); ok {
		return cached.([]domain.MunicipalityTally), nil
	}

	found, err := r.locations.TablesByMunicipality(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.locations.TablesByMunicipality -> %w", err)
	}

	out := make([]domain.MunicipalityTally, len(found))
	for i, m := range found {
		out[i] = domain.MunicipalityTally{
			Department:   m.Department,
			Municipality: m.Municipality,
			TotalTables:  m.TotalTables,
		}
	}
	r.cache.SetDefault(municipalitiesKey, out)

	return out, nil
}

// Flush drops every cached catalog list.
func (r *CatalogRepository) Flush() {
	r.cache.Flush()
}

func locationDaoToDomain(l dao.PollingLocation) domain.PollingLocation {
	return domain.PollingLocation{
		ID:               l.ID,
		StationCode:      l.StationCode,
		DepartmentCode:   l.DepartmentCode,
		Department:       l.Department,
		MunicipalityCode: l.MunicipalityCode,
		Municipality:     l.Municipality,
		Name:             l.Name,
		Address:          l.Address,
		TableCount:       l.TableCount,
		RegisteredVoters: l.RegisteredVoters,
		Latitude:         l.Latitude,
		Longitude:        l.Longitude,
	}
}

func candidateDaoToDomain(c dao.Candidate) domain.Candidate {
	return domain.Candidate{
		ID:           c.ID,
		FullName:     c.FullName,
		Party:        c.Party,
		Position:     c.Position,
		BallotNumber: c.BallotNumber,
		Color:        c.Color,
	}
}

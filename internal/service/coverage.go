package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vietanh2810/mesas-api/internal/domain"
	"github.com/vietanh2810/mesas-api/internal/observability/metrics"
	"github.com/vietanh2810/mesas-api/internal/repository"
)

type CoverageStats interface {
	Totals(ctx context.Context, delegateID string) (domain.CoverageTotals, error)
	CandidateTotals(ctx context.Context, delegateID string) ([]domain.CandidateTotal, error)
	PartyTotals(ctx context.Context, delegateID string) ([]domain.PartyTotal, error)
	ReportedByMunicipality(ctx context.Context, delegateID string) ([]domain.MunicipalityTally, error)
	AssignedByMunicipality(ctx context.Context, delegateID string) ([]domain.MunicipalityTally, error)
	MissingPhotos(ctx context.Context, delegateID string) (int, error)
	Feed(ctx context.Context, delegateID string, limit int) ([]domain.FeedItem, error)
}

type MunicipalityCatalog interface {
	MunicipalityTables(ctx context.Context) ([]domain.MunicipalityTally, error)
}

type CoverageOptions struct {
	FeedSize     int
	Alerts       domain.AlertLimits
	RequirePhoto bool
}

type CoverageService struct {
	stats   CoverageStats
	catalog MunicipalityCatalog
	opts    CoverageOptions
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewCoverageService(stats CoverageStats, catalog MunicipalityCatalog, opts CoverageOptions, m *metrics.Metrics) *CoverageService {
	if opts.FeedSize <= 0 {
		opts.FeedSize = 20
	}
	if opts.Alerts.PerSeverity <= 0 && opts.Alerts.Total <= 0 {
		opts.Alerts = domain.DefaultAlertLimits()
	}

	return &CoverageService{
		stats:   stats,
		catalog: catalog,
		opts:    opts,
		metrics: m,
		now:     time.Now,
	}
}

// GetCoverageSummary builds the war-room view. An empty delegateID means
// every delegate for privileged callers and the caller otherwise.
func (s *CoverageService) GetCoverageSummary(ctx context.Context, caller domain.Identity, delegateID string) (domain.CoverageSummary, error) {
	switch {
	case delegateID == "" && !caller.Privileged():
		if caller.DelegateID == "" {
			return domain.CoverageSummary{}, domain.ErrForbidden
		}
		delegateID = caller.DelegateID
	case delegateID != "" && !caller.CanActFor(delegateID):
		return domain.CoverageSummary{}, domain.ErrForbidden
	}

	var (
		totals        domain.CoverageTotals
		candidates    []domain.CandidateTotal
		parties       []domain.PartyTotal
		reported      []domain.MunicipalityTally
		tableTotals   []domain.MunicipalityTally
		missingPhotos int
		feed          []domain.FeedItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totals, err = s.stats.Totals(gctx, delegateID)
		return s.degrade("totals", err)
	})
	g.Go(func() (err error) {
		candidates, err = s.stats.CandidateTotals(gctx, delegateID)
		return s.degrade("candidates", err)
	})
	g.Go(func() (err error) {
		parties, err = s.stats.PartyTotals(gctx, delegateID)
		return s.degrade("parties", err)
	})
	g.Go(func() (err error) {
		reported, err = s.stats.ReportedByMunicipality(gctx, delegateID)
		return s.degrade("municipalities", err)
	})
	g.Go(func() (err error) {
		// a delegate is measured against its own tables, everyone against the catalog
		if delegateID != "" {
			tableTotals, err = s.stats.AssignedByMunicipality(gctx, delegateID)
		} else {
			tableTotals, err = s.catalog.MunicipalityTables(gctx)
		}
		return s.degrade("table_totals", err)
	})
	if s.opts.RequirePhoto {
		g.Go(func() (err error) {
			missingPhotos, err = s.stats.MissingPhotos(gctx, delegateID)
			return s.degrade("photos", err)
		})
	}
	g.Go(func() (err error) {
		feed, err = s.stats.Feed(gctx, delegateID, s.opts.FeedSize)
		return s.degrade("feed", err)
	})
	if err := g.Wait(); err != nil {
		return domain.CoverageSummary{}, err
	}

	candidates, _ = domain.ApplyCandidatePercentages(candidates)
	munis := domain.BuildMunicipalityCoverage(reported, tableTotals)

	now := s.now()
	for i := range feed {
		feed[i].Ago = humanize.RelTime(feed[i].ReportedAt, now, "ago", "from now")
	}

	return domain.CoverageSummary{
		Totals:         totals,
		Candidates:     nonNil(candidates),
		Parties:        nonNil(domain.ApplyPartyPercentages(parties)),
		Municipalities: nonNil(munis),
		Alerts:         nonNil(domain.BuildAlerts(munis, missingPhotos, s.opts.Alerts)),
		Feed:           nonNil(feed),
	}, nil
}

// degrade swallows errors caused by an older schema so the slice renders
// empty. Any other error fails the whole summary.
func (s *CoverageService) degrade(slice string, err error) error {
	if err == nil {
		return nil
	}
	if repository.IsSchemaUnavailable(err) {
		zap.L().Warn("coverage slice unavailable",
			zap.String("slice", slice),
			zap.Error(err))
		s.metrics.RecordCoverageDegraded(slice)
		return nil
	}

	return fmt.Errorf("coverage %s -> %w", slice, err)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

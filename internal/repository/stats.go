package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/mesas-api/internal/domain"
	"github.com/vietanh2810/mesas-api/internal/repository/dao"
)

type StatsDAO interface {
	Compliance(ctx context.Context, delegateID string) ([]dao.ComplianceRow, error)
	Totals(ctx context.Context, delegateID string) (dao.ReportTotals, error)
	CandidateVotes(ctx context.Context, delegateID string) ([]dao.CandidateVotes, error)
	PartyVotes(ctx context.Context, delegateID string) ([]dao.PartyVotes, error)
	DerivedPartyVotes(ctx context.Context, delegateID string) ([]dao.PartyVotes, error)
	ReportedByMunicipality(ctx context.Context, delegateID string) ([]dao.MunicipalityReported, error)
	AssignedByMunicipality(ctx context.Context, delegateID string) ([]dao.MunicipalityTables, error)
	MissingPhotos(ctx context.Context, delegateID string) (int, error)
	Feed(ctx context.Context, delegateID string, limit int) ([]dao.FeedRow, error)
}

// StatsRepository exposes the aggregate read models. An empty delegateID
// covers every delegate.
type StatsRepository struct {
	dao     StatsDAO
	parties bool
}

func NewStatsRepository(dao StatsDAO, caps domain.Capabilities) *StatsRepository {
	return &StatsRepository{
		dao:     dao,
		parties: caps.PartyRollups,
	}
}

func (r *StatsRepository) Compliance(ctx context.Context, delegateID string) ([]domain.ComplianceItem, error) {
	rows, err := r.dao.Compliance(ctx, delegateID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Compliance -> %w", err)
	}

	items := make([]domain.ComplianceItem, len(rows))
	for i, row := range rows {
		items[i] = domain.ComplianceItem{
			DelegateID:   row.DelegateID,
			Name:         row.Name,
			Department:   row.Department,
			Municipality: row.Municipality,
			Assigned:     row.Assigned,
			Reported:     row.Reported,
		}
	}

	return items, nil
}

func (r *StatsRepository) Totals(ctx context.Context, delegateID string) (domain.CoverageTotals, error) {
	t, err := r.dao.Totals(ctx, delegateID)
	if err != nil {
		return domain.CoverageTotals{}, fmt.Errorf("r.dao.Totals -> %w", err)
	}

	return domain.CoverageTotals{Reports: t.Reports, TotalVotes: t.TotalVotes}, nil
}

func (r *StatsRepository) CandidateTotals(ctx context.Context, delegateID string) ([]domain.CandidateTotal, error) {
	rows, err := r.dao.CandidateVotes(ctx, delegateID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CandidateVotes -> %w", err)
	}

	out := make([]domain.CandidateTotal, len(rows))
	for i, row := range rows {
		out[i] = domain.CandidateTotal{
			CandidateID:  row.CandidateID,
			FullName:     row.FullName,
			Party:        row.Party,
			Position:     row.Position,
			BallotNumber: row.BallotNumber,
			Color:        row.Color,
			Votes:        row.Votes,
		}
	}

	return out, nil
}

// PartyTotals reads the stored rollups, or derives them from candidate
// details when the rollup table is absent.
func (r *StatsRepository) PartyTotals(ctx context.Context, delegateID string) ([]domain.PartyTotal, error) {
	var (
		rows []dao.PartyVotes
		err  error
	)
	if r.parties {
		rows, err = r.dao.PartyVotes(ctx, delegateID)
	} else {
		rows, err = r.dao.DerivedPartyVotes(ctx, delegateID)
	}
	if err != nil {
		return nil, fmt.Errorf("r.dao.PartyVotes -> %w", err)
	}

	out := make([]domain.PartyTotal, len(rows))
	for i, row := range rows {
		out[i] = domain.PartyTotal{Position: row.Position, Party: row.Party, Votes: row.Votes}
	}

	return out, nil
}

func (r *StatsRepository) ReportedByMunicipality(ctx context.Context, delegateID string) ([]domain.MunicipalityTally, error) {
	rows, err := r.dao.ReportedByMunicipality(ctx, delegateID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ReportedByMunicipality -> %w", err)
	}

	out := make([]domain.MunicipalityTally, len(rows))
	for i, row := range rows {
		out[i] = domain.MunicipalityTally{
			Department:     row.Department,
			Municipality:   row.Municipality,
			ReportedTables: row.ReportedTables,
		}
	}

	return out, nil
}

func (r *StatsRepository) AssignedByMunicipality(ctx context.Context, delegateID string) ([]domain.MunicipalityTally, error) {
	rows, err := r.dao.AssignedByMunicipality(ctx, delegateID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.AssignedByMunicipality -> %w", err)
	}

	out := make([]domain.MunicipalityTally, len(rows))
	for i, row := range rows {
		out[i] = domain.MunicipalityTally{
			Department:   row.Department,
			Municipality: row.Municipality,
			TotalTables:  row.TotalTables,
		}
	}

	return out, nil
}

func (r *StatsRepository) MissingPhotos(ctx context.Context, delegateID string) (int, error) {
	n, err := r.dao.MissingPhotos(ctx, delegateID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.MissingPhotos -> %w", err)
	}

	return n, nil
}

func (r *StatsRepository) Feed(ctx context.Context, delegateID string, limit int) ([]domain.FeedItem, error) {
	rows, err := r.dao.Feed(ctx, delegateID, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Feed -> %w", err)
	}

	out := make([]domain.FeedItem, len(rows))
	for i, row := range rows {
		out[i] = domain.FeedItem{
			ReportID:     row.ReportID,
			DelegateID:   row.DelegateID,
			DelegateName: row.DelegateName,
			Department:   row.Department,
			Municipality: row.Municipality,
			StationCode:  row.StationCode,
			TableNumber:  row.TableNumber,
			TotalVotes:   row.TotalVotes,
			HasPhoto:     row.PhotoURL != nil && *row.PhotoURL != "",
			ReportedAt:   row.ReportedAt,
		}
	}

	return out, nil
}

// IsSchemaUnavailable reports whether err was caused by a missing optional
// table or column.
func IsSchemaUnavailable(err error) bool {
	return dao.IsSchemaUnavailable(err)
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vietanh2810/mesas-api/internal/domain"
	"github.com/vietanh2810/mesas-api/internal/repository/dao"
)

var (
	ErrReportNotFound = dao.ErrReportNotFound
)

type ReportRepository struct {
	db   *gorm.DB
	caps domain.Capabilities
}

func NewReportRepository(db *gorm.DB, caps domain.Capabilities) *ReportRepository {
	return &ReportRepository{
		db:   db,
		caps: caps,
	}
}

func (r *ReportRepository) reportDAO(db *gorm.DB) *dao.ReportDAO {
	return dao.NewReportDAO(db, r.caps.PartyRollups, r.caps.ReportPhotos, r.caps.LocationLinkage)
}

// Transaction runs fn with a ReportTx bound to a single database transaction.
func (r *ReportRepository) Transaction(ctx context.Context, fn func(tx *ReportTx) error) error {
	return dao.Transact(ctx, r.db, func(tx *gorm.DB) error {
		return fn(&ReportTx{
			reports:     r.reportDAO(tx),
			assignments: dao.NewAssignmentDAO(tx, r.caps.LocationLinkage),
			delegates:   dao.NewDelegateDAO(tx, r.caps.RosterCount),
			locations:   dao.NewLocationDAO(tx),
			candidates:  dao.NewCandidateDAO(tx),
		})
	})
}

// FindByAssignment loads the report filed for an assignment with its
// candidate and party details.
func (r *ReportRepository) FindByAssignment(ctx context.Context, assignmentID string) (domain.VoteReport, error) {
	d := r.reportDAO(r.db)

	found, err := d.FindByAssignment(ctx, assignmentID)
	if err != nil {
		return domain.VoteReport{}, fmt.Errorf("d.FindByAssignment -> %w", err)
	}

	details, err := d.FindDetails(ctx, found.ID)
	if err != nil {
		return domain.VoteReport{}, fmt.Errorf("d.FindDetails -> %w", err)
	}

	parties, err := d.FindParties(ctx, found.ID)
	if err != nil {
		return domain.VoteReport{}, fmt.Errorf("d.FindParties -> %w", err)
	}

	report := reportDaoToDomain(found)
	report.Details = make([]domain.VoteDetail, len(details))
	for i, vd := range details {
		report.Details[i] = domain.VoteDetail{CandidateID: vd.CandidateID, Votes: vd.Votes}
	}
	for _, p := range parties {
		report.Parties = append(report.Parties, domain.PartyVoteDetail{Position: p.Position, Party: p.Party, Votes: p.Votes})
	}

	return report, nil
}

// FindAssignment reads an assignment outside of a submission, for read
// access checks.
func (r *ReportRepository) FindAssignment(ctx context.Context, id string) (domain.TableAssignment, error) {
	found, err := dao.NewAssignmentDAO(r.db, r.caps.LocationLinkage).FindByID(ctx, id)
	if err != nil {
		return domain.TableAssignment{}, fmt.Errorf("dao.FindByID -> %w", err)
	}

	return assignmentDaoToDomain(found), nil
}

// ReportTx is the set of operations a report submission performs atomically.
type ReportTx struct {
	reports     *dao.ReportDAO
	assignments *dao.AssignmentDAO
	delegates   *dao.DelegateDAO
	locations   *dao.LocationDAO
	candidates  *dao.CandidateDAO
}

func (t *ReportTx) FindAssignment(ctx context.Context, id string) (domain.TableAssignment, error) {
	found, err := t.assignments.FindByID(ctx, id)
	if err != nil {
		return domain.TableAssignment{}, fmt.Errorf("t.assignments.FindByID -> %w", err)
	}

	return assignmentDaoToDomain(found), nil
}

// FindDelegate returns nil when the delegate is unknown.
func (t *ReportTx) FindDelegate(ctx context.Context, id string) (*domain.Delegate, error) {
	found, err := t.delegates.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrDelegateNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("t.delegates.FindByID -> %w", err)
	}

	d := delegateDaoToDomain(found)
	return &d, nil
}

// FindLocationFor returns the catalog entry of the assignment, by location id
// or else by station code, or nil when there is none.
func (t *ReportTx) FindLocationFor(ctx context.Context, a domain.TableAssignment) (*domain.PollingLocation, error) {
	var (
		found dao.PollingLocation
		err   error
	)
	switch {
	case a.LocationID != "":
		found, err = t.locations.FindByID(ctx, a.LocationID)
	case a.StationCode != "":
		found, err = t.locations.FindByStationCode(ctx, a.StationCode)
	default:
		return nil, nil
	}
	if err != nil {
		if errors.Is(err, dao.ErrLocationNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("t.locations.Find -> %w", err)
	}

	loc := locationDaoToDomain(found)
	return &loc, nil
}

// FindCandidates returns the catalog entries for ids, keyed by id. Unknown
// ids are simply absent.
func (t *ReportTx) FindCandidates(ctx context.Context, ids []string) (map[string]domain.Candidate, error) {
	found, err := t.candidates.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("t.candidates.FindByIDs -> %w", err)
	}

	out := make(map[string]domain.Candidate, len(found))
	for _, c := range found {
		out[c.ID] = candidateDaoToDomain(c)
	}

	return out, nil
}

// Upsert stores report under its assignment and returns the stored id and
// whether a previous report was overwritten.
func (t *ReportTx) Upsert(ctx context.Context, report domain.VoteReport) (string, bool, error) {
	stored, updated, err := t.reports.Upsert(ctx, dao.VoteReport{
		ID:           report.ID,
		AssignmentID: report.AssignmentID,
		DelegateID:   report.DelegateID,
		LocationID:   optional(report.LocationID),
		Department:   report.Department,
		Municipality: report.Municipality,
		Address:      report.Address,
		StationCode:  report.StationCode,
		TableNumber:  report.TableNumber,
		TotalVotes:   report.TotalVotes,
		Notes:        report.Notes,
		PhotoURL:     report.PhotoURL,
		ReportedAt:   report.ReportedAt,
	})
	if err != nil {
		return "", false, fmt.Errorf("t.reports.Upsert -> %w", err)
	}

	return stored.ID, updated, nil
}

func (t *ReportTx) ReplaceDetails(ctx context.Context, reportID string, details []domain.VoteDetail, parties []domain.PartyVoteDetail) error {
	rows := make([]dao.VoteDetail, len(details))
	for i, d := range details {
		rows[i] = dao.VoteDetail{ReportID: reportID, CandidateID: d.CandidateID, Votes: d.Votes}
	}

	partyRows := make([]dao.PartyVoteDetail, len(parties))
	for i, p := range parties {
		partyRows[i] = dao.PartyVoteDetail{ReportID: reportID, Position: p.Position, Party: p.Party, Votes: p.Votes}
	}

	if err := t.reports.ReplaceDetails(ctx, reportID, rows, partyRows); err != nil {
		return fmt.Errorf("t.reports.ReplaceDetails -> %w", err)
	}

	return nil
}

func reportDaoToDomain(r dao.VoteReport) domain.VoteReport {
	return domain.VoteReport{
		ID:           r.ID,
		AssignmentID: r.AssignmentID,
		DelegateID:   r.DelegateID,
		LocationID:   deref(r.LocationID),
		Department:   r.Department,
		Municipality: r.Municipality,
		Address:      r.Address,
		StationCode:  r.StationCode,
		TableNumber:  r.TableNumber,
		TotalVotes:   r.TotalVotes,
		Notes:        r.Notes,
		PhotoURL:     r.PhotoURL,
		ReportedAt:   r.ReportedAt,
	}
}

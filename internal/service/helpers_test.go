package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vietanh2810/mesas-api/internal/domain"
	"github.com/vietanh2810/mesas-api/internal/repository"
	"github.com/vietanh2810/mesas-api/internal/repository/dao"
)

var (
	admin = domain.Identity{DelegateID: "admin-1", Role: domain.RoleAdmin}
)

func as(delegateID string) domain.Identity {
	return domain.Identity{DelegateID: delegateID, Role: domain.RoleDelegate}
}

type fixture struct {
	db        *gorm.DB
	caps      domain.Capabilities
	allocator *AllocatorService
	reports   *ReportService
	stats     *repository.StatsRepository
	catalog   *repository.CatalogRepository
}

func newFixture(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()

	caps := dao.DetectCapabilities(db)
	return &fixture{
		db:        db,
		caps:      caps,
		allocator: NewAllocatorService(repository.NewAssignmentRepository(db, caps), caps, nil),
		reports:   NewReportService(repository.NewReportRepository(db, caps), nil, nil),
		stats:     repository.NewStatsRepository(dao.NewStatsDAO(db, caps.ReportPhotos), caps),
		catalog:   repository.NewCatalogRepository(dao.NewLocationDAO(db), dao.NewCandidateDAO(db), 0),
	}
}

func (f *fixture) allocate(t *testing.T, delegateID string, target domain.LocationRef, tables ...int) []domain.TableAssignment {
	t.Helper()

	assigned, err := f.allocator.AllocateTables(context.Background(), admin, domain.Allocation{
		DelegateID: delegateID,
		Target:     target,
		Tables:     tables,
	})
	require.NoError(t, err)

	return assigned
}

func (f *fixture) submit(t *testing.T, delegateID, assignmentID string, details ...domain.DetailInput) domain.ReportReceipt {
	t.Helper()

	receipt, err := f.reports.SubmitVoteReport(context.Background(), as(delegateID), domain.ReportSubmission{
		AssignmentID: assignmentID,
		Details:      details,
	})
	require.NoError(t, err)

	return receipt
}

func (f *fixture) tablesOf(t *testing.T, delegateID string) []int {
	t.Helper()

	assignments, err := f.allocator.ListAssignments(context.Background(), admin, delegateID)
	require.NoError(t, err)

	tables := make([]int, len(assignments))
	for i, a := range assignments {
		tables[i] = a.TableNumber
	}

	return tables
}

func vote(candidateID string, votes int) domain.DetailInput {
	return domain.DetailInput{CandidateID: candidateID, Votes: votes}
}

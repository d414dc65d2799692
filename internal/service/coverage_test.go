package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/mesas-api/internal/domain"
	"github.com/vietanh2810/mesas-api/internal/observability/metrics"
	"github.com/vietanh2810/mesas-api/internal/repository/dao"
	"github.com/vietanh2810/mesas-api/internal/testutil"
)

type coverageSetup struct {
	*fixture
	ana   dao.Delegate
	beto  dao.Delegate
	verde dao.Candidate
	azul  dao.Candidate
}

// newCoverageSetup puts Ana on two of Medellin's four tables and Beto on one
// of Envigado's two. Each files one report and only Beto attaches a photo.
func newCoverageSetup(t *testing.T) coverageSetup {
	t.Helper()

	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)

	medellin := testutil.CreateLocation(t, db, dao.PollingLocation{Municipality: "Medellin", TableCount: 4})
	envigado := testutil.CreateLocation(t, db, dao.PollingLocation{Municipality: "Envigado", TableCount: 2})
	verde := testutil.CreateCandidate(t, db, "Ana Verde", "Verde", "Alcaldia", 1)
	azul := testutil.CreateCandidate(t, db, "Juan Azul", "Azul", "Alcaldia", 2)

	ana := testutil.CreateDelegate(t, db, "Ana")
	beto := testutil.CreateDelegate(t, db, "Beto")

	anaTables := f.allocate(t, ana.ID, domain.LocationRef{LocationID: medellin.ID}, 1, 2)
	betoTables := f.allocate(t, beto.ID, domain.LocationRef{LocationID: envigado.ID}, 1)

	f.submit(t, ana.ID, anaTables[0].ID, vote(verde.ID, 30), vote(azul.ID, 10))
	_, err := f.reports.SubmitVoteReport(context.Background(), as(beto.ID), domain.ReportSubmission{
		AssignmentID: betoTables[0].ID,
		Details:      []domain.DetailInput{vote(verde.ID, 10)},
		PhotoURL:     "https://photos.example/envigado-1.jpg",
	})
	require.NoError(t, err)

	return coverageSetup{fixture: f, ana: ana, beto: beto, verde: verde, azul: azul}
}

func (s coverageSetup) service(m *metrics.Metrics) *CoverageService {
	svc := NewCoverageService(s.stats, s.catalog, CoverageOptions{RequirePhoto: true}, m)
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	return svc
}

func TestGetCoverageSummary_All(t *testing.T) {
	s := newCoverageSetup(t)

	summary, err := s.service(nil).GetCoverageSummary(context.Background(), admin, "")
	require.NoError(t, err)

	assert.Equal(t, domain.CoverageTotals{Reports: 2, TotalVotes: 50}, summary.Totals)

	require.Len(t, summary.Candidates, 2)
	assert.Equal(t, s.verde.ID, summary.Candidates[0].CandidateID)
	assert.Equal(t, 40, summary.Candidates[0].Votes)
	assert.Equal(t, 80.0, summary.Candidates[0].Percentage)
	assert.Equal(t, 20.0, summary.Candidates[1].Percentage)

	assert.Equal(t, []domain.PartyTotal{
		{Position: "Alcaldia", Party: "Verde", Votes: 40, Percentage: 80},
		{Position: "Alcaldia", Party: "Azul", Votes: 10, Percentage: 20},
	}, summary.Parties)

	require.Len(t, summary.Municipalities, 2)
	medellin, envigado := summary.Municipalities[0], summary.Municipalities[1]
	assert.Equal(t, "Medellin", medellin.Municipality)
	assert.Equal(t, 4, medellin.TotalTables)
	assert.Equal(t, 25.0, medellin.Coverage)
	assert.Equal(t, domain.LightRed, medellin.Light)
	assert.Equal(t, "Envigado", envigado.Municipality)
	assert.Equal(t, 50.0, envigado.Coverage)
	assert.Equal(t, domain.LightYellow, envigado.Light)
	assert.False(t, envigado.Estimated)

	require.Len(t, summary.Alerts, 3)
	assert.Equal(t, domain.SeverityCritical, summary.Alerts[0].Severity)
	assert.Equal(t, "Medellin", summary.Alerts[0].Municipality)
	assert.Equal(t, "Envigado", summary.Alerts[1].Municipality)
	assert.Equal(t, "1 reports are missing the tally sheet photo", summary.Alerts[2].Message)

	require.Len(t, summary.Feed, 2)
	for _, item := range summary.Feed {
		assert.Contains(t, item.Ago, "hours ago")
	}
}

func TestGetCoverageSummary_DelegateScope(t *testing.T) {
	s := newCoverageSetup(t)

	for _, caller := range []domain.Identity{as(s.ana.ID), admin} {
		delegateID := ""
		if caller.Privileged() {
			delegateID = s.ana.ID
		}

		summary, err := s.service(nil).GetCoverageSummary(context.Background(), caller, delegateID)
		require.NoError(t, err)

		assert.Equal(t, domain.CoverageTotals{Reports: 1, TotalVotes: 40}, summary.Totals)
		require.Len(t, summary.Municipalities, 1)
		assert.Equal(t, 2, summary.Municipalities[0].TotalTables, "measured against the delegate's own tables")
		assert.Equal(t, 50.0, summary.Municipalities[0].Coverage)
		require.Len(t, summary.Feed, 1)
		assert.Equal(t, "Ana", summary.Feed[0].DelegateName)
		assert.False(t, summary.Feed[0].HasPhoto)
	}
}

func TestGetCoverageSummary_Forbidden(t *testing.T) {
	s := newCoverageSetup(t)

	_, err := s.service(nil).GetCoverageSummary(context.Background(), as(s.ana.ID), s.beto.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = s.service(nil).GetCoverageSummary(context.Background(), domain.Identity{Role: domain.RoleDelegate}, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetCoverageSummary_DegradesMissingTable(t *testing.T) {
	s := newCoverageSetup(t)
	require.NoError(t, s.db.Exec("DROP TABLE vote_details").Error)

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	summary, err := s.service(m).GetCoverageSummary(context.Background(), admin, "")
	require.NoError(t, err)

	assert.NotNil(t, summary.Candidates)
	assert.Empty(t, summary.Candidates)
	assert.Equal(t, 2, summary.Totals.Reports)
	assert.Len(t, summary.Parties, 2)
	assert.Len(t, summary.Municipalities, 2)

	n, err := promtestutil.GatherAndCount(reg, "mesas_coverage_slice_degraded_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGetCoverageSummary_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)

	summary, err := NewCoverageService(f.stats, f.catalog, CoverageOptions{}, nil).GetCoverageSummary(context.Background(), admin, "")
	require.NoError(t, err)

	assert.Zero(t, summary.Totals)
	assert.NotNil(t, summary.Candidates)
	assert.NotNil(t, summary.Parties)
	assert.NotNil(t, summary.Municipalities)
	assert.NotNil(t, summary.Alerts)
	assert.NotNil(t, summary.Feed)
}

func TestGetCoverageSummary_ReassignedTableCountsOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)

	loc := testutil.CreateLocation(t, db, dao.PollingLocation{Municipality: "Medellin", TableCount: 4})
	verde := testutil.CreateCandidate(t, db, "Ana Verde", "Verde", "Alcaldia", 1)
	ana := testutil.CreateDelegate(t, db, "Ana")
	beto := testutil.CreateDelegate(t, db, "Beto")
	target := domain.LocationRef{LocationID: loc.ID}

	first := f.allocate(t, ana.ID, target, 1)
	f.submit(t, ana.ID, first[0].ID, vote(verde.ID, 10))

	f.allocate(t, ana.ID, target, 2)
	moved := f.allocate(t, beto.ID, target, 1)
	f.submit(t, beto.ID, moved[0].ID, vote(verde.ID, 10))

	svc := NewCoverageService(f.stats, f.catalog, CoverageOptions{}, nil)

	summary, err := svc.GetCoverageSummary(context.Background(), admin, "")
	require.NoError(t, err)
	assert.Equal(t, domain.CoverageTotals{Reports: 1, TotalVotes: 10}, summary.Totals)
	require.Len(t, summary.Candidates, 1)
	assert.Equal(t, 10, summary.Candidates[0].Votes)
	assert.Equal(t, []domain.PartyTotal{{Position: "Alcaldia", Party: "Verde", Votes: 10, Percentage: 100}}, summary.Parties)
	require.Len(t, summary.Municipalities, 1)
	assert.Equal(t, 1, summary.Municipalities[0].ReportedTables)
	require.Len(t, summary.Feed, 1)
	assert.Equal(t, beto.ID, summary.Feed[0].DelegateID)

	compliance, err := NewComplianceService(f.stats).GetCompliance(context.Background(), admin, ScopeAll)
	require.NoError(t, err)
	assert.Equal(t, summary.Municipalities[0].ReportedTables, compliance.Summary.Reported)

	anaOnly, err := svc.GetCoverageSummary(context.Background(), as(ana.ID), "")
	require.NoError(t, err)
	assert.Zero(t, anaOnly.Totals)
	assert.Empty(t, anaOnly.Feed)

	var stored int64
	require.NoError(t, db.Model(&dao.VoteReport{}).Count(&stored).Error)
	assert.EqualValues(t, 2, stored, "the earlier tally is kept, only excluded")
}

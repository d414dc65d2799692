package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vietanh2810/mesas-api/internal/config"
	"github.com/vietanh2810/mesas-api/internal/domain"
	"github.com/vietanh2810/mesas-api/internal/observability/metrics"
	"github.com/vietanh2810/mesas-api/internal/repository/dao"
	"github.com/vietanh2810/mesas-api/internal/testutil"
)

var adminIdentity = domain.Identity{DelegateID: "admin-1", Role: domain.RoleAdmin}

type errBody struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Field  string `json:"field"`
	Tables []int  `json:"tables"`
}

func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()

	database := testutil.SetupTestDB(t)
	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)

	conf := &config.AppConfig{
		API:        &config.APIConfig{JWTSigningKey: testutil.SigningKey},
		Gin:        &config.GinConfig{Mode: gin.TestMode},
		Resolution: &config.ResolutionConfig{},
		Dashboard:  &config.DashboardConfig{FeedSize: 5, RequirePhoto: true},
		Cache:      &config.CacheConfig{CatalogTTL: time.Minute},
	}

	s, err := NewServer(conf, database, dao.DetectCapabilities(database), m)
	require.NoError(t, err)

	return s, database
}

func registerDelegate(t *testing.T, s *Server, name string) domain.Delegate {
	t.Helper()

	rec := testutil.MakeRequest(t, s.Router, http.MethodPost, "/api/v1/delegates", testutil.Token(t, adminIdentity), map[string]any{
		"name":         name,
		"department":   "Antioquia",
		"municipality": "Medellin",
	})
	testutil.AssertStatus(t, rec, http.StatusCreated)

	var d domain.Delegate
	testutil.DecodeJSON(t, rec, &d)
	require.NotEmpty(t, d.ID)

	return d
}

func TestHealthcheck(t *testing.T) {
	s, _ := newTestServer(t)

	rec := testutil.MakeRequest(t, s.Router, http.MethodGet, "/", "", nil)
	testutil.AssertStatus(t, rec, http.StatusOK)
}

func TestAuthentication(t *testing.T) {
	s, _ := newTestServer(t)

	rec := testutil.MakeRequest(t, s.Router, http.MethodGet, "/api/v1/compliance", "", nil)
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)

	rec = testutil.MakeRequest(t, s.Router, http.MethodGet, "/api/v1/compliance", "not-a-token", nil)
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
}

func TestFieldReportingFlow(t *testing.T) {
	s, database := newTestServer(t)
	adminToken := testutil.Token(t, adminIdentity)

	loc := testutil.CreateLocation(t, database, dao.PollingLocation{StationCode: "0101", TableCount: 4})
	verde := testutil.CreateCandidate(t, database, "Ana Verde", "Verde", "Alcaldia", 1)
	azul := testutil.CreateCandidate(t, database, "Juan Azul", "Azul", "Alcaldia", 2)

	ana := registerDelegate(t, s, "Ana")
	beto := registerDelegate(t, s, "Beto")
	anaToken := testutil.Token(t, domain.Identity{DelegateID: ana.ID, Role: domain.RoleDelegate})

	// allocation
	rec := testutil.MakeRequest(t, s.Router, http.MethodPut, fmt.Sprintf("/api/v1/delegates/%s/assignments", ana.ID), adminToken,
		map[string]any{"location_id": loc.ID, "tables": []int{2, 1}})
	testutil.AssertStatus(t, rec, http.StatusOK)
	var assigned []domain.TableAssignment
	testutil.DecodeJSON(t, rec, &assigned)
	require.Len(t, assigned, 2)
	assert.Equal(t, 1, assigned[0].TableNumber)

	rec = testutil.MakeRequest(t, s.Router, http.MethodPut, fmt.Sprintf("/api/v1/delegates/%s/assignments", beto.ID), adminToken,
		map[string]any{"location_id": loc.ID, "tables": []int{2, 3}})
	testutil.AssertStatus(t, rec, http.StatusConflict)
	var conflict errBody
	testutil.DecodeJSON(t, rec, &conflict)
	assert.Equal(t, []int{2}, conflict.Tables)

	rec = testutil.MakeRequest(t, s.Router, http.MethodGet, "/api/v1/me/assignments", anaToken, nil)
	testutil.AssertStatus(t, rec, http.StatusOK)
	var mine []domain.TableAssignment
	testutil.DecodeJSON(t, rec, &mine)
	require.Len(t, mine, 2)
	assert.False(t, mine[0].Reported)

	// reporting
	reportPath := fmt.Sprintf("/api/v1/assignments/%s/report", mine[0].ID)

	rec = testutil.MakeRequest(t, s.Router, http.MethodGet, reportPath, anaToken, nil)
	testutil.AssertStatus(t, rec, http.StatusNotFound)

	rec = testutil.MakeRequest(t, s.Router, http.MethodPut, reportPath, anaToken, map[string]any{
		"details": []map[string]any{
			{"candidate_id": verde.ID, "votes": 30},
			{"candidate_id": azul.ID, "votes": 10},
			{"candidate_id": verde.ID, "votes": 5},
		},
	})
	testutil.AssertStatus(t, rec, http.StatusCreated)
	var receipt domain.ReportReceipt
	testutil.DecodeJSON(t, rec, &receipt)
	assert.Equal(t, 45, receipt.TotalVotes)
	assert.False(t, receipt.Updated)

	rec = testutil.MakeRequest(t, s.Router, http.MethodPut, reportPath, anaToken, map[string]any{
		"details": []map[string]any{{"candidate_id": verde.ID, "votes": 31}},
	})
	testutil.AssertStatus(t, rec, http.StatusOK)
	var second domain.ReportReceipt
	testutil.DecodeJSON(t, rec, &second)
	assert.Equal(t, receipt.ReportID, second.ReportID)
	assert.True(t, second.Updated)

	rec = testutil.MakeRequest(t, s.Router, http.MethodGet, reportPath, anaToken, nil)
	testutil.AssertStatus(t, rec, http.StatusOK)
	var report domain.VoteReport
	testutil.DecodeJSON(t, rec, &report)
	assert.Equal(t, 31, report.TotalVotes)
	assert.Equal(t, "0101", report.StationCode)

	// dashboards
	rec = testutil.MakeRequest(t, s.Router, http.MethodGet, "/api/v1/compliance", anaToken, nil)
	testutil.AssertStatus(t, rec, http.StatusOK)
	var compliance domain.ComplianceReport
	testutil.DecodeJSON(t, rec, &compliance)
	assert.Equal(t, domain.ComplianceSummary{Assigned: 2, Reported: 1, Missing: 1, CoveragePct: 50}, compliance.Summary)

	rec = testutil.MakeRequest(t, s.Router, http.MethodGet, "/api/v1/compliance?scope=all", anaToken, nil)
	testutil.AssertStatus(t, rec, http.StatusForbidden)

	rec = testutil.MakeRequest(t, s.Router, http.MethodGet, "/api/v1/compliance?scope=all", adminToken, nil)
	testutil.AssertStatus(t, rec, http.StatusOK)
	testutil.DecodeJSON(t, rec, &compliance)
	assert.Len(t, compliance.Items, 2)

	rec = testutil.MakeRequest(t, s.Router, http.MethodGet, "/api/v1/dashboard/coverage", adminToken, nil)
	testutil.AssertStatus(t, rec, http.StatusOK)
	var coverage domain.CoverageSummary
	testutil.DecodeJSON(t, rec, &coverage)
	assert.Equal(t, domain.CoverageTotals{Reports: 1, TotalVotes: 31}, coverage.Totals)
	require.Len(t, coverage.Municipalities, 1)
	assert.Equal(t, 25.0, coverage.Municipalities[0].Coverage)
	require.Len(t, coverage.Feed, 1)
	assert.Equal(t, "Ana", coverage.Feed[0].DelegateName)

	rec = testutil.MakeRequest(t, s.Router, http.MethodGet, "/api/v1/dashboard/coverage?delegate_id="+beto.ID, anaToken, nil)
	testutil.AssertStatus(t, rec, http.StatusForbidden)

	// metrics
	rec = testutil.MakeRequest(t, s.Router, http.MethodGet, "/metrics", "", nil)
	testutil.AssertStatus(t, rec, http.StatusOK)
	assert.Contains(t, rec.Body.String(), `mesas_allocations_total{outcome="conflict"} 1`)
	assert.Contains(t, rec.Body.String(), `mesas_vote_reports_total{outcome="updated"} 1`)
}

func TestBadRequests(t *testing.T) {
	s, database := newTestServer(t)
	adminToken := testutil.Token(t, adminIdentity)

	loc := testutil.CreateLocation(t, database, dao.PollingLocation{TableCount: 4})
	ana := registerDelegate(t, s, "Ana")
	assignPath := fmt.Sprintf("/api/v1/delegates/%s/assignments", ana.ID)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		field  string
	}{
		{
			name:   "both location id and station code",
			method: http.MethodPut,
			path:   assignPath,
			body:   map[string]any{"location_id": loc.ID, "station_code": "0101", "tables": []int{1}},
			status: http.StatusBadRequest,
		},
		{
			name:   "tables key missing",
			method: http.MethodPut,
			path:   assignPath,
			body:   map[string]any{"location_id": loc.ID},
			status: http.StatusBadRequest,
		},
		{
			name:   "table beyond the location",
			method: http.MethodPut,
			path:   assignPath,
			body:   map[string]any{"location_id": loc.ID, "tables": []int{5}},
			status: http.StatusBadRequest,
			field:  "tables",
		},
		{
			name:   "unknown location",
			method: http.MethodPut,
			path:   assignPath,
			body:   map[string]any{"location_id": "8c3e7a52-1111-4a7e-9d2c-000000000000", "tables": []int{1}},
			status: http.StatusNotFound,
		},
		{
			name:   "malformed json",
			method: http.MethodPut,
			path:   assignPath,
			body:   "tables",
			status: http.StatusBadRequest,
		},
		{
			name:   "register without name",
			method: http.MethodPost,
			path:   "/api/v1/delegates",
			body:   map[string]any{"department": "Antioquia", "municipality": "Medellin"},
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown catalog location",
			method: http.MethodGet,
			path:   "/api/v1/catalog/locations/missing",
			status: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.MakeRequest(t, s.Router, tt.method, tt.path, adminToken, tt.body)
			testutil.AssertStatus(t, rec, tt.status)

			var body errBody
			testutil.DecodeJSON(t, rec, &body)
			assert.NotEmpty(t, body.Status)
			if tt.field != "" {
				assert.Equal(t, tt.field, body.Field)
			}
		})
	}
}

// assignTables allocates tables at loc to delegateID as an admin and returns
// the recorded response.
func assignTables(t *testing.T, s *Server, delegateID, locationID string, tables []int) *httptest.ResponseRecorder {
	t.Helper()

	return testutil.MakeRequest(t, s.Router, http.MethodPut, fmt.Sprintf("/api/v1/delegates/%s/assignments", delegateID),
		testutil.Token(t, adminIdentity), map[string]any{"location_id": locationID, "tables": tables})
}

func TestAllocateTables_EmptySetUnassigns(t *testing.T) {
	s, database := newTestServer(t)

	loc := testutil.CreateLocation(t, database, dao.PollingLocation{})
	ana := registerDelegate(t, s, "Ana")

	testutil.AssertStatus(t, assignTables(t, s, ana.ID, loc.ID, []int{1}), http.StatusOK)

	rec := assignTables(t, s, ana.ID, loc.ID, []int{})
	testutil.AssertStatus(t, rec, http.StatusOK)
	var assigned []domain.TableAssignment
	testutil.DecodeJSON(t, rec, &assigned)
	assert.Empty(t, assigned)

	rec = testutil.MakeRequest(t, s.Router, http.MethodGet, fmt.Sprintf("/api/v1/delegates/%s/assignments", ana.ID), testutil.Token(t, adminIdentity), nil)
	testutil.AssertStatus(t, rec, http.StatusOK)
	var listed []domain.TableAssignment
	testutil.DecodeJSON(t, rec, &listed)
	assert.Empty(t, listed)
}

func TestSubmitReport_OnlyTheAssignedDelegate(t *testing.T) {
	s, database := newTestServer(t)

	loc := testutil.CreateLocation(t, database, dao.PollingLocation{})
	verde := testutil.CreateCandidate(t, database, "Ana Verde", "Verde", "Alcaldia", 1)
	ana := registerDelegate(t, s, "Ana")

	rec := assignTables(t, s, ana.ID, loc.ID, []int{1})
	testutil.AssertStatus(t, rec, http.StatusOK)
	var assigned []domain.TableAssignment
	testutil.DecodeJSON(t, rec, &assigned)
	reportPath := fmt.Sprintf("/api/v1/assignments/%s/report", assigned[0].ID)
	body := map[string]any{"details": []map[string]any{{"candidate_id": verde.ID, "votes": 3}}}

	for _, caller := range []domain.Identity{
		adminIdentity,
		{DelegateID: "coord-1", Role: domain.RoleCoordinator},
	} {
		rec = testutil.MakeRequest(t, s.Router, http.MethodPut, reportPath, testutil.Token(t, caller), body)
		testutil.AssertStatus(t, rec, http.StatusForbidden)
	}

	var reports int64
	require.NoError(t, database.Model(&dao.VoteReport{}).Count(&reports).Error)
	assert.Zero(t, reports)

	anaToken := testutil.Token(t, domain.Identity{DelegateID: ana.ID, Role: domain.RoleDelegate})
	rec = testutil.MakeRequest(t, s.Router, http.MethodPut, reportPath, anaToken, body)
	testutil.AssertStatus(t, rec, http.StatusCreated)

	rec = testutil.MakeRequest(t, s.Router, http.MethodGet, reportPath, testutil.Token(t, adminIdentity), nil)
	testutil.AssertStatus(t, rec, http.StatusOK)
}

func TestSubmitReport_RejectionsNameTheField(t *testing.T) {
	s, database := newTestServer(t)

	loc := testutil.CreateLocation(t, database, dao.PollingLocation{})
	verde := testutil.CreateCandidate(t, database, "Ana Verde", "Verde", "Alcaldia", 1)
	ana := registerDelegate(t, s, "Ana")
	anaToken := testutil.Token(t, domain.Identity{DelegateID: ana.ID, Role: domain.RoleDelegate})

	rec := assignTables(t, s, ana.ID, loc.ID, []int{1})
	testutil.AssertStatus(t, rec, http.StatusOK)
	var assigned []domain.TableAssignment
	testutil.DecodeJSON(t, rec, &assigned)
	reportPath := fmt.Sprintf("/api/v1/assignments/%s/report", assigned[0].ID)

	tests := []struct {
		name    string
		details []map[string]any
		field   string
		message string
	}{
		{
			name:    "unknown candidate",
			details: []map[string]any{{"candidate_id": "5b0c8f1e-2222-4c3b-8e1f-000000000000", "votes": 3}},
			field:   "details",
			message: "unknown candidate",
		},
		{
			name:    "negative votes",
			details: []map[string]any{{"candidate_id": verde.ID, "votes": 2}, {"candidate_id": verde.ID, "votes": -1}},
			field:   "details[1].votes",
			message: "non-negative",
		},
		{
			name:    "votes above the per-table maximum",
			details: []map[string]any{{"candidate_id": verde.ID, "votes": domain.MaxVotesPerCandidate + 1}},
			field:   "details[0].votes",
			message: "at most",
		},
		{
			name:    "no candidates",
			details: []map[string]any{},
			field:   "details",
			message: "no candidates with votes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.MakeRequest(t, s.Router, http.MethodPut, reportPath, anaToken, map[string]any{"details": tt.details})
			testutil.AssertStatus(t, rec, http.StatusBadRequest)

			var body errBody
			testutil.DecodeJSON(t, rec, &body)
			assert.Equal(t, tt.field, body.Field)
			assert.Contains(t, body.Error, tt.message)
		})
	}
}

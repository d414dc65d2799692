package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vietanh2810/mesas-api/internal/db"
	"github.com/vietanh2810/mesas-api/internal/domain"
	"github.com/vietanh2810/mesas-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/mesas-api/internal/repository/dao"
)

// SigningKey signs the tokens produced by Token.
const SigningKey = "testutil-signing-key"

// SetupTestDB opens a fresh sqlite database with the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database := openSQLite(t)
	require.NoError(t, dao.InitTables(database, dao.SchemaOptions{PartyRollups: true, ReportPhotos: true}))

	return database
}

// SetupLegacyDB opens a sqlite database shaped like an older deployment:
// assignments keyed by station code only, no party rollups, no report photos
// and no roster count on delegates.
func SetupLegacyDB(t *testing.T) *gorm.DB {
	t.Helper()

	database := openSQLite(t)
	require.NoError(t, database.AutoMigrate(&dao.PollingLocation{}, &dao.Candidate{}, &dao.VoteDetail{}))

	stmts := []string{
		`CREATE TABLE delegates (
			id VARCHAR(36) PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT,
			email TEXT,
			department TEXT,
			municipality TEXT,
			station_code VARCHAR(32),
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE table_assignments (
			id VARCHAR(36) PRIMARY KEY,
			delegate_id VARCHAR(36) NOT NULL,
			station_code VARCHAR(32),
			table_number INTEGER NOT NULL,
			department TEXT,
			municipality TEXT,
			address TEXT,
			created_at DATETIME NOT NULL
		)`,
		`CREATE UNIQUE INDEX idx_assignment_station_table ON table_assignments (station_code, table_number)`,
		`CREATE TABLE vote_reports (
			id VARCHAR(36) PRIMARY KEY,
			assignment_id VARCHAR(36) NOT NULL UNIQUE,
			delegate_id VARCHAR(36) NOT NULL,
			department TEXT,
			municipality TEXT,
			address TEXT,
			station_code VARCHAR(32),
			table_number INTEGER NOT NULL,
			total_votes INTEGER NOT NULL DEFAULT 0,
			notes TEXT,
			reported_at DATETIME NOT NULL,
			created_at DATETIME NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		require.NoError(t, database.Exec(stmt).Error)
	}

	return database
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "mesas.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return database
}

// CreateLocation inserts a catalog location. Zero fields get usable defaults.
func CreateLocation(t *testing.T, database *gorm.DB, loc dao.PollingLocation) dao.PollingLocation {
	t.Helper()

	if loc.ID == "" {
		loc.ID = uuid.NewString()
	}
	if loc.StationCode == "" {
		loc.StationCode = "ST-" + loc.ID[:8]
	}
	if loc.Name == "" {
		loc.Name = "Escuela " + loc.StationCode
	}
	if loc.Department == "" {
		loc.Department = "Antioquia"
	}
	if loc.Municipality == "" {
		loc.Municipality = "Medellin"
	}
	if loc.TableCount == 0 {
		loc.TableCount = 10
	}

	require.NoError(t, database.Create(&loc).Error)
	return loc
}

func CreateDelegate(t *testing.T, database *gorm.DB, name string) dao.Delegate {
	t.Helper()

	d := dao.Delegate{
		ID:           uuid.NewString(),
		Name:         name,
		Department:   "Antioquia",
		Municipality: "Medellin",
	}
	created, err := dao.NewDelegateDAO(database, dao.DetectCapabilities(database).RosterCount).Insert(context.Background(), d)
	require.NoError(t, err)

	return created
}

func CreateCandidate(t *testing.T, database *gorm.DB, name, party, position string, ballot int) dao.Candidate {
	t.Helper()

	c := dao.Candidate{
		ID:           uuid.NewString(),
		FullName:     name,
		Party:        party,
		Position:     position,
		BallotNumber: ballot,
	}
	require.NoError(t, database.Create(&c).Error)

	return c
}

// Token returns a bearer token for identity signed with SigningKey.
func Token(t *testing.T, identity domain.Identity) string {
	t.Helper()

	token, err := jwthelper.GenerateToken(SigningKey, identity, time.Hour)
	require.NoError(t, err)

	return token
}

// MakeRequest serves one JSON request through router. body may be nil.
func MakeRequest(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

// DecodeJSON unmarshals the recorded body into v.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

// AssertStatus fails the test with the body when the status differs.
func AssertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()

	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}

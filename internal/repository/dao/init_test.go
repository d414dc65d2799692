package dao_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vietanh2810/mesas-api/internal/domain"
	"github.com/vietanh2810/mesas-api/internal/repository/dao"
	"github.com/vietanh2810/mesas-api/internal/testutil"
)

func TestDetectCapabilities(t *testing.T) {
	full := dao.DetectCapabilities(testutil.SetupTestDB(t))
	assert.Equal(t, domain.Capabilities{
		PartyRollups:    true,
		LocationLinkage: true,
		RosterCount:     true,
		ReportPhotos:    true,
	}, full)

	legacy := dao.DetectCapabilities(testutil.SetupLegacyDB(t))
	assert.Equal(t, domain.Capabilities{}, legacy)
}

func TestInitTables_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)

	require.NoError(t, dao.InitTables(db, dao.SchemaOptions{PartyRollups: true, ReportPhotos: true}))
	assert.True(t, dao.DetectCapabilities(db).ReportPhotos)
}

func TestIsSchemaUnavailable(t *testing.T) {
	db := testutil.SetupTestDB(t)

	err := db.Exec("SELECT nope FROM vote_reports").Error
	assert.True(t, dao.IsSchemaUnavailable(err))

	err = db.Exec("SELECT 1 FROM missing_table").Error
	assert.True(t, dao.IsSchemaUnavailable(fmt.Errorf("wrapped -> %w", err)))

	assert.True(t, dao.IsSchemaUnavailable(&pgconn.PgError{Code: pgerrcode.UndefinedTable}))
	assert.True(t, dao.IsSchemaUnavailable(&pgconn.PgError{Code: pgerrcode.UndefinedColumn}))
	assert.False(t, dao.IsSchemaUnavailable(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.False(t, dao.IsSchemaUnavailable(errors.New("connection refused")))
	assert.False(t, dao.IsSchemaUnavailable(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, dao.IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.True(t, dao.IsUniqueViolation(fmt.Errorf("insert -> %w", gorm.ErrDuplicatedKey)))
	assert.False(t, dao.IsUniqueViolation(errors.New("boom")))
}

package dao

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/vietanh2810/mesas-api/internal/domain"
)

var (
	ErrDelegateNotFound   = domain.NotFound("delegate")
	ErrLocationNotFound   = domain.NotFound("polling location")
	ErrAssignmentNotFound = domain.NotFound("assignment")
	ErrReportNotFound     = domain.NotFound("report")
)

// IsUniqueViolation reports whether err comes from a unique index, either
// translated by gorm or raw from postgres.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// IsSchemaUnavailable reports whether err is caused by a missing table or
// column rather than by the data.
func IsSchemaUnavailable(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UndefinedTable || pgErr.Code == pgerrcode.UndefinedColumn
	}

	// sqlite
	msg := err.Error()
	return strings.Contains(msg, "no such table") || strings.Contains(msg, "no such column")
}

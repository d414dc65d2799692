package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type TableAssignment struct {
	ID          string  `gorm:"primaryKey;type:varchar(36)"`
	DelegateID  string  `gorm:"type:varchar(36);not null;index"`
	LocationID  *string `gorm:"type:varchar(36);uniqueIndex:idx_assignment_location_table"`
	StationCode *string `gorm:"type:varchar(32);uniqueIndex:idx_assignment_station_table"`
	TableNumber int     `gorm:"not null;uniqueIndex:idx_assignment_location_table;uniqueIndex:idx_assignment_station_table"`

	Department   string
	Municipality string
	Address      string

	CreatedAt time.Time `gorm:"not null"`
}

func (TableAssignment) TableName() string {
	return "table_assignments"
}

// AssignmentRow is an assignment joined with its report, if any.
type AssignmentRow struct {
	TableAssignment
	ReportID *string
}

// Target identifies the physical place tables belong to. LocationID is nil
// for legacy station-code targets.
type Target struct {
	LocationID  *string
	StationCode *string
}

type AssignmentDAO struct {
	db      *gorm.DB
	linkage bool
}

// NewAssignmentDAO returns a DAO for table_assignments. linkage is false on
// schemas without the location_id column.
func NewAssignmentDAO(db *gorm.DB, linkage bool) *AssignmentDAO {
	return &AssignmentDAO{
		db:      db,
		linkage: linkage,
	}
}

func (d *AssignmentDAO) FindByID(ctx context.Context, id string) (TableAssignment, error) {
	var a TableAssignment

	result := d.db.WithContext(ctx).First(&a, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return TableAssignment{}, ErrAssignmentNotFound
		}

		return TableAssignment{}, result.Error
	}

	return a, nil
}

func (d *AssignmentDAO) FindByDelegate(ctx context.Context, delegateID string) ([]TableAssignment, error) {
	var rows []TableAssignment

	err := d.db.WithContext(ctx).
		Where("delegate_id = ?", delegateID).
		Order("table_number").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// FindByDelegateWithReports lists the delegate's assignments together with
// the id of the report filed for each one.
func (d *AssignmentDAO) FindByDelegateWithReports(ctx context.Context, delegateID string) ([]AssignmentRow, error) {
	var rows []AssignmentRow

	err := d.db.WithContext(ctx).
		Table("table_assignments AS a").
		Select("a.*, r.id AS report_id").
		Joins("LEFT JOIN vote_reports r ON r.assignment_id = a.id").
		Where("a.delegate_id = ?", delegateID).
		Order("a.table_number").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// TakenTables returns the table numbers at target held by delegates other
// than delegateID.
func (d *AssignmentDAO) TakenTables(ctx context.Context, target Target, tables []int, delegateID string) ([]int, error) {
	if len(tables) == 0 {
		return nil, nil
	}

	q := d.db.WithContext(ctx).
		Model(&TableAssignment{}).
		Where("delegate_id <> ?", delegateID).
		Where("table_number IN ?", tables)

	switch {
	case d.linkage && target.LocationID != nil && target.StationCode != nil:
		q = q.Where(d.db.Where("location_id = ?", *target.LocationID).Or("station_code = ?", *target.StationCode))
	case d.linkage && target.LocationID != nil:
		q = q.Where("location_id = ?", *target.LocationID)
	case target.StationCode != nil:
		q = q.Where("station_code = ?", *target.StationCode)
	default:
		return nil, nil
	}

	var taken []int
	if err := q.Distinct("table_number").Order("table_number").Pluck("table_number", &taken).Error; err != nil {
		return nil, err
	}

	return taken, nil
}

func (d *AssignmentDAO) DeleteByDelegate(ctx context.Context, delegateID string) error {
	return d.db.WithContext(ctx).
		Where("delegate_id = ?", delegateID).
		Delete(&TableAssignment{}).Error
}

func (d *AssignmentDAO) InsertBatch(ctx context.Context, rows []TableAssignment) error {
	if len(rows) == 0 {
		return nil
	}

	q := d.db.WithContext(ctx)
	if !d.linkage {
		q = q.Omit("location_id")
	}

	return q.Create(&rows).Error
}

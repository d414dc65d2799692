package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VoteReport struct {
	ID           string  `gorm:"primaryKey;type:varchar(36)"`
	AssignmentID string  `gorm:"type:varchar(36);not null;uniqueIndex"`
	DelegateID   string  `gorm:"type:varchar(36);not null;index"`
	LocationID   *string `gorm:"type:varchar(36)"`

	Department   string `gorm:"index:idx_report_area"`
	Municipality string `gorm:"index:idx_report_area"`
	Address      string
	StationCode  string `gorm:"type:varchar(32)"`
	TableNumber  int    `gorm:"not null"`

	TotalVotes int `gorm:"not null;default:0"`
	Notes      string
	PhotoURL   string `gorm:"-:migration"`

	ReportedAt time.Time `gorm:"not null;index"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (VoteReport) TableName() string {
	return "vote_reports"
}

type VoteDetail struct {
	ReportID    string `gorm:"primaryKey;type:varchar(36)"`
	CandidateID string `gorm:"primaryKey;type:varchar(36);index"`
	Votes       int    `gorm:"not null"`
}

func (VoteDetail) TableName() string {
	return "vote_details"
}

type PartyVoteDetail struct {
	ReportID string `gorm:"primaryKey;type:varchar(36)"`
	Position string `gorm:"primaryKey;type:varchar(128)"`
	Party    string `gorm:"primaryKey;type:varchar(128)"`
	Votes    int    `gorm:"not null"`
}

func (PartyVoteDetail) TableName() string {
	return "party_vote_details"
}

type ReportDAO struct {
	db      *gorm.DB
	parties bool
	photos  bool
	linkage bool
}

// NewReportDAO returns a DAO that only touches party_vote_details, photo_url
// and location_id when the schema has them.
func NewReportDAO(db *gorm.DB, parties, photos, linkage bool) *ReportDAO {
	return &ReportDAO{
		db:      db,
		parties: parties,
		photos:  photos,
		linkage: linkage,
	}
}

func (d *ReportDAO) omitted() []string {
	var cols []string
	if !d.photos {
		cols = append(cols, "photo_url")
	}
	if !d.linkage {
		cols = append(cols, "location_id")
	}

	return cols
}

// Upsert writes report keyed by its assignment. An existing row keeps its id
// and created_at while every other column is overwritten. It returns the
// stored row and whether it already existed.
func (d *ReportDAO) Upsert(ctx context.Context, report VoteReport) (VoteReport, bool, error) {
	updates := []string{
		"delegate_id", "department", "municipality", "address", "station_code",
		"table_number", "total_votes", "notes", "reported_at",
	}
	if d.photos {
		updates = append(updates, "photo_url")
	}
	if d.linkage {
		updates = append(updates, "location_id")
	}

	q := d.db.WithContext(ctx)
	if cols := d.omitted(); len(cols) > 0 {
		q = q.Omit(cols...)
	}
	err := q.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "assignment_id"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(&report).Error
	if err != nil {
		return VoteReport{}, false, err
	}

	stored, err := d.FindByAssignment(ctx, report.AssignmentID)
	if err != nil {
		return VoteReport{}, false, err
	}

	return stored, stored.ID != report.ID, nil
}

func (d *ReportDAO) FindByAssignment(ctx context.Context, assignmentID string) (VoteReport, error) {
	var r VoteReport

	result := d.db.WithContext(ctx).First(&r, "assignment_id = ?", assignmentID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return VoteReport{}, ErrReportNotFound
		}

		return VoteReport{}, result.Error
	}

	return r, nil
}

// ReplaceDetails drops every detail row of the report and writes details and,
// when the table exists, parties in their place.
func (d *ReportDAO) ReplaceDetails(ctx context.Context, reportID string, details []VoteDetail, parties []PartyVoteDetail) error {
	tx := d.db.WithContext(ctx)

	if err := tx.Where("report_id = ?", reportID).Delete(&VoteDetail{}).Error; err != nil {
		return err
	}
	if d.parties {
		if err := tx.Where("report_id = ?", reportID).Delete(&PartyVoteDetail{}).Error; err != nil {
			return err
		}
	}

	if len(details) > 0 {
		if err := tx.Create(&details).Error; err != nil {
			return err
		}
	}
	if d.parties && len(parties) > 0 {
		if err := tx.Create(&parties).Error; err != nil {
			return err
		}
	}

	return nil
}

func (d *ReportDAO) FindDetails(ctx context.Context, reportID string) ([]VoteDetail, error) {
	var details []VoteDetail

	if err := d.db.WithContext(ctx).Where("report_id = ?", reportID).Order("candidate_id").Find(&details).Error; err != nil {
		return nil, err
	}

	return details, nil
}

func (d *ReportDAO) FindParties(ctx context.Context, reportID string) ([]PartyVoteDetail, error) {
	if !d.parties {
		return nil, nil
	}

	var parties []PartyVoteDetail
	if err := d.db.WithContext(ctx).Where("report_id = ?", reportID).Order("position, party").Find(&parties).Error; err != nil {
		return nil, err
	}

	return parties, nil
}

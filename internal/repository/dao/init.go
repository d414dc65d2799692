package dao

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/vietanh2810/mesas-api/internal/domain"
)

// SchemaOptions selects the optional parts of the schema to create.
type SchemaOptions struct {
	PartyRollups bool
	ReportPhotos bool
}

func InitTables(db *gorm.DB, opts SchemaOptions) error {
	if err := db.AutoMigrate(
		&PollingLocation{},
		&Candidate{},
		&Delegate{},
		&TableAssignment{},
		&VoteReport{},
		&VoteDetail{},
	); err != nil {
		return fmt.Errorf("db.AutoMigrate -> %w", err)
	}

	if opts.PartyRollups {
		if err := db.AutoMigrate(&PartyVoteDetail{}); err != nil {
			return fmt.Errorf("db.AutoMigrate(PartyVoteDetail) -> %w", err)
		}
	}

	// photo_url is excluded from AutoMigrate so deployments without photo
	// support keep their table shape.
	if opts.ReportPhotos && !db.Migrator().HasColumn(&VoteReport{}, "photo_url") {
		if err := db.Exec("ALTER TABLE vote_reports ADD COLUMN photo_url VARCHAR(1024)").Error; err != nil {
			return fmt.Errorf("add photo_url -> %w", err)
		}
	}

	return nil
}

// DetectCapabilities inspects the live schema once so the data access code
// knows which optional tables and columns it may touch.
func DetectCapabilities(db *gorm.DB) domain.Capabilities {
	m := db.Migrator()

	return domain.Capabilities{
		PartyRollups:    m.HasTable(&PartyVoteDetail{}),
		LocationLinkage: m.HasColumn(&TableAssignment{}, "location_id"),
		RosterCount:     m.HasColumn(&Delegate{}, "assigned_tables"),
		ReportPhotos:    m.HasColumn(&VoteReport{}, "photo_url"),
	}
}

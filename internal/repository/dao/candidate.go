package dao

import (
	"context"

	"gorm.io/gorm"
)

type Candidate struct {
	ID           string `gorm:"primaryKey;type:varchar(36)"`
	FullName     string `gorm:"not null"`
	Party        string
	Position     string
	BallotNumber int
	Color        string `gorm:"type:varchar(16)"`
}

func (Candidate) TableName() string {
	return "candidates"
}

type CandidateDAO struct {
	db *gorm.DB
}

func NewCandidateDAO(db *gorm.DB) *CandidateDAO {
	return &CandidateDAO{
		db: db,
	}
}

func (d *CandidateDAO) FindAll(ctx context.Context) ([]Candidate, error) {
	var candidates []Candidate

	if err := d.db.WithContext(ctx).Order("position, ballot_number, full_name").Find(&candidates).Error; err != nil {
		return nil, err
	}

	return candidates, nil
}

// FindByIDs returns the subset of ids present in the catalog.
func (d *CandidateDAO) FindByIDs(ctx context.Context, ids []string) ([]Candidate, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var candidates []Candidate
	if err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&candidates).Error; err != nil {
		return nil, err
	}

	return candidates, nil
}

func (d *CandidateDAO) Insert(ctx context.Context, c Candidate) (Candidate, error) {
	if err := d.db.WithContext(ctx).Create(&c).Error; err != nil {
		return Candidate{}, err
	}

	return c, nil
}

package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Delegate struct {
	ID string `gorm:"primaryKey;type:varchar(36)"`

	Name  string `gorm:"not null"`
	Phone string
	Email string `gorm:"index"`

	Department   string
	Municipality string
	StationCode  string `gorm:"type:varchar(32)"`

	AssignedTables int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Delegate) TableName() string {
	return "delegates"
}

type DelegateDAO struct {
	db   *gorm.DB
	omit []string
}

// NewDelegateDAO returns a DAO that never writes the optional roster column
// when rosterCount is false.
func NewDelegateDAO(db *gorm.DB, rosterCount bool) *DelegateDAO {
	d := &DelegateDAO{
		db: db,
	}
	if !rosterCount {
		d.omit = append(d.omit, "assigned_tables")
	}

	return d
}

func (d *DelegateDAO) Insert(ctx context.Context, delegate Delegate) (Delegate, error) {
	q := d.db.WithContext(ctx)
	if len(d.omit) > 0 {
		q = q.Omit(d.omit...)
	}
	if err := q.Create(&delegate).Error; err != nil {
		return Delegate{}, err
	}

	return delegate, nil
}

func (d *DelegateDAO) FindByID(ctx context.Context, id string) (Delegate, error) {
	var delegate Delegate

	result := d.db.WithContext(ctx).First(&delegate, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Delegate{}, ErrDelegateNotFound
		}

		return Delegate{}, result.Error
	}

	return delegate, nil
}

// SetAssignedTables refreshes the roster aggregate. It is a no-op when the
// column does not exist.
func (d *DelegateDAO) SetAssignedTables(ctx context.Context, id string, count int) error {
	if len(d.omit) > 0 {
		return nil
	}

	return d.db.WithContext(ctx).
		Model(&Delegate{}).
		Where("id = ?", id).
		Update("assigned_tables", count).Error
}

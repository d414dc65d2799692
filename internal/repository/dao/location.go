package dao

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type PollingLocation struct {
	ID               string `gorm:"primaryKey;type:varchar(36)"`
	StationCode      string `gorm:"type:varchar(32);not null;uniqueIndex"`
	DepartmentCode   string `gorm:"type:varchar(8)"`
	Department       string `gorm:"index:idx_location_area"`
	MunicipalityCode string `gorm:"type:varchar(8)"`
	Municipality     string `gorm:"index:idx_location_area"`
	Name             string `gorm:"not null"`
	Address          string
	TableCount       int `gorm:"not null;default:0"`
	RegisteredVoters int `gorm:"not null;default:0"`
	Latitude         *float64
	Longitude        *float64
}

func (PollingLocation) TableName() string {
	return "polling_locations"
}

// MunicipalityTables is the catalog's table count for one municipality.
type MunicipalityTables struct {
	Department   string
	Municipality string
	TotalTables  int
}

type LocationDAO struct {
	db *gorm.DB
}

func NewLocationDAO(db *gorm.DB) *LocationDAO {
	return &LocationDAO{
		db: db,
	}
}

func (d *LocationDAO) FindByID(ctx context.Context, id string) (PollingLocation, error) {
	var loc PollingLocation

	result := d.db.WithContext(ctx).First(&loc, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return PollingLocation{}, ErrLocationNotFound
		}

		return PollingLocation{}, result.Error
	}

	return loc, nil
}

func (d *LocationDAO) FindByStationCode(ctx context.Context, code string) (PollingLocation, error) {
	var loc PollingLocation

	result := d.db.WithContext(ctx).First(&loc, "station_code = ?", strings.TrimSpace(code))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return PollingLocation{}, ErrLocationNotFound
		}

		return PollingLocation{}, result.Error
	}

	return loc, nil
}

// FindAll lists the catalog, optionally narrowed to one municipality name.
func (d *LocationDAO) FindAll(ctx context.Context, municipality string) ([]PollingLocation, error) {
	var locs []PollingLocation

	q := d.db.WithContext(ctx).Order("department, municipality, name")
	if municipality = strings.TrimSpace(municipality); municipality != "" {
		q = q.Where("LOWER(municipality) = ?", strings.ToLower(municipality))
	}
	if err := q.Find(&locs).Error; err != nil {
		return nil, err
	}

	return locs, nil
}

// TablesByMunicipality sums table counts per municipality, skipping
// municipalities whose catalog rows carry no count.
func (d *LocationDAO) TablesByMunicipality(ctx context.Context) ([]MunicipalityTables, error) {
	var rows []MunicipalityTables

	err := d.db.WithContext(ctx).
		Model(&PollingLocation{}).
		Select("department, municipality, SUM(table_count) AS total_tables").
		Group("department, municipality").
		Having("SUM(table_count) > 0").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (d *LocationDAO) Insert(ctx context.Context, loc PollingLocation) (PollingLocation, error) {
	if err := d.db.WithContext(ctx).Create(&loc).Error; err != nil {
		return PollingLocation{}, err
	}

	return loc, nil
}

package domain

import "strings"

type PollingLocation struct {
	ID               string   `json:"id"`
	StationCode      string   `json:"station_code"`
	DepartmentCode   string   `json:"department_code"`
	Department       string   `json:"department"`
	MunicipalityCode string   `json:"municipality_code"`
	Municipality     string   `json:"municipality"`
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	TableCount       int      `json:"table_count"`
	RegisteredVoters int      `json:"registered_voters"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
}

// LocationRef targets either a catalog location or, in legacy mode, a free
// text polling-station code. Exactly one of the two is set.
type LocationRef struct {
	LocationID  string `json:"location_id,omitempty"`
	StationCode string `json:"station_code,omitempty"`
}

func (r LocationRef) Legacy() bool {
	return r.LocationID == "" && r.StationCode != ""
}

func (r LocationRef) Validate() error {
	hasID := strings.TrimSpace(r.LocationID) != ""
	hasCode := strings.TrimSpace(r.StationCode) != ""
	switch {
	case hasID && hasCode:
		return NewValidationError("location", "provide either location_id or station_code, not both")
	case !hasID && !hasCode:
		return NewValidationError("location", "location_id or station_code is required")
	}
	return nil
}

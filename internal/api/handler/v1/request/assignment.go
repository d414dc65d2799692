package request

import (
	"errors"
	"strings"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/vietanh2810/mesas-api/internal/domain"
)

const (
	// alphanumeric with inner dashes, never all zeros
	stationCodePattern = `^(?!0+$)[0-9A-Za-z](?:[0-9A-Za-z-]{0,30}[0-9A-Za-z])?$`

	maxTablesPerRequest = 500
)

var (
	stationCodeExp = regexp2.MustCompile(stationCodePattern, regexp2.None)

	errInvalidStationCode = errors.New("station code must be 1-32 letters, digits or inner dashes and not all zeros")
	errTargetRequired     = errors.New("either location_id or station_code is required")
	errTargetAmbiguous    = errors.New("provide either location_id or station_code, not both")
	errTablesMissing      = errors.New("tables is required, send [] to unassign every table")
)

type AllocateTablesRequest struct {
	LocationID  string `json:"location_id,omitempty"`
	StationCode string `json:"station_code,omitempty"`
	Tables      []int  `json:"tables"`
}

func (req *AllocateTablesRequest) Validate() error {
	req.LocationID = strings.TrimSpace(req.LocationID)
	req.StationCode = strings.TrimSpace(req.StationCode)

	err := validation.ValidateStruct(
		req,
		validation.Field(&req.LocationID, is.UUID),
		validation.Field(&req.Tables, validation.Length(0, maxTablesPerRequest)),
	)
	if err != nil {
		return err
	}
	if req.Tables == nil {
		return errTablesMissing
	}

	switch {
	case req.LocationID == "" && req.StationCode == "":
		return errTargetRequired
	case req.LocationID != "" && req.StationCode != "":
		return errTargetAmbiguous
	}

	if req.StationCode != "" {
		ok, err := stationCodeExp.MatchString(req.StationCode)
		if err != nil || !ok {
			return errInvalidStationCode
		}
	}

	return nil
}

func (req *AllocateTablesRequest) ToAllocation(delegateID string) domain.Allocation {
	return domain.Allocation{
		DelegateID: delegateID,
		Target: domain.LocationRef{
			LocationID:  req.LocationID,
			StationCode: req.StationCode,
		},
		Tables: req.Tables,
	}
}

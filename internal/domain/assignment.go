package domain

import (
	"fmt"
	"sort"
	"time"
)

type TableAssignment struct {
	ID           string    `json:"id"`
	DelegateID   string    `json:"delegate_id"`
	LocationID   string    `json:"location_id,omitempty"`
	StationCode  string    `json:"station_code,omitempty"`
	TableNumber  int       `json:"table_number"`
	Department   string    `json:"department,omitempty"`
	Municipality string    `json:"municipality,omitempty"`
	Address      string    `json:"address,omitempty"`
	Reported     bool      `json:"reported"`
	CreatedAt    time.Time `json:"created_at"`
}

// Allocation is a delegate's complete requested table set at one target.
type Allocation struct {
	DelegateID string
	Target     LocationRef
	Tables     []int
}

// NormalizeTables rejects negative numbers and returns the set sorted and
// without duplicates. An empty input is valid and yields an empty set.
func NormalizeTables(tables []int) ([]int, error) {
	seen := make(map[int]struct{}, len(tables))
	out := make([]int, 0, len(tables))
	for i, t := range tables {
		if t < 0 {
			return nil, NewValidationError(fmt.Sprintf("tables[%d]", i), "table number must be a non-negative integer")
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Ints(out)
	return out, nil
}

// CheckTableBounds rejects table numbers above the location's table count.
// A location without a recorded count accepts any number.
func CheckTableBounds(tables []int, loc PollingLocation) error {
	if loc.TableCount <= 0 {
		return nil
	}
	for _, t := range tables {
		if t > loc.TableCount {
			return NewValidationError("tables", fmt.Sprintf("table %d exceeds the %d tables of %s", t, loc.TableCount, loc.Name))
		}
	}
	return nil
}

package domain

import "time"

const (
	RoleDelegate    = "delegate"
	RoleCoordinator = "coordinator"
	RoleAdmin       = "admin"
)

// Identity is the caller as resolved by the session collaborator.
type Identity struct {
	DelegateID string `json:"delegate_id"`
	Role       string `json:"role"`
}

func (i Identity) Privileged() bool {
	return i.Role == RoleAdmin || i.Role == RoleCoordinator
}

// CanActFor reports whether the caller may mutate resources owned by delegateID.
func (i Identity) CanActFor(delegateID string) bool {
	if i.DelegateID == "" {
		return false
	}
	return i.Privileged() || i.DelegateID == delegateID
}

type Delegate struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	Department     string    `json:"department"`
	Municipality   string    `json:"municipality"`
	StationCode    string    `json:"station_code,omitempty"`
	AssignedTables int       `json:"assigned_tables"`
	CreatedAt      time.Time `json:"created_at"`
}

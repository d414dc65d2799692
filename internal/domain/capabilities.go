package domain

// Capabilities describes which optional schema features this deployment
// has. It is resolved once at startup and passed to the repositories.
type Capabilities struct {
	PartyRollups    bool `json:"party_rollups"`
	LocationLinkage bool `json:"location_linkage"`
	RosterCount     bool `json:"roster_count"`
	ReportPhotos    bool `json:"report_photos"`
}

func FullCapabilities() Capabilities {
	return Capabilities{
		PartyRollups:    true,
		LocationLinkage: true,
		RosterCount:     true,
		ReportPhotos:    true,
	}
}

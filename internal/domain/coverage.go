package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

const (
	LightGreen  = "green"
	LightYellow = "yellow"
	LightRed    = "red"

	SeverityCritical = "critical"
	SeverityWarning  = "warning"

	greenThreshold  = 85.0
	yellowThreshold = 50.0
)

type CandidateTotal struct {
	CandidateID  string  `json:"candidate_id"`
	FullName     string  `json:"full_name"`
	Party        string  `json:"party"`
	Position     string  `json:"position"`
	BallotNumber int     `json:"ballot_number"`
	Color        string  `json:"color,omitempty"`
	Votes        int     `json:"votes"`
	Percentage   float64 `json:"percentage"`
}

type PartyTotal struct {
	Position   string  `json:"position"`
	Party      string  `json:"party"`
	Votes      int     `json:"votes"`
	Percentage float64 `json:"percentage"`
}

type MunicipalityCoverage struct {
	Department     string  `json:"department"`
	Municipality   string  `json:"municipality"`
	ReportedTables int     `json:"reported_tables"`
	TotalTables    int     `json:"total_tables"`
	Coverage       float64 `json:"coverage"`
	Light          string  `json:"light"`
	Estimated      bool    `json:"estimated"`
}

type Alert struct {
	Severity     string `json:"severity"`
	Department   string `json:"department,omitempty"`
	Municipality string `json:"municipality,omitempty"`
	Message      string `json:"message"`
}

type FeedItem struct {
	ReportID     string    `json:"report_id"`
	DelegateID   string    `json:"delegate_id"`
	DelegateName string    `json:"delegate_name"`
	Department   string    `json:"department"`
	Municipality string    `json:"municipality"`
	StationCode  string    `json:"station_code"`
	TableNumber  int       `json:"table_number"`
	TotalVotes   int       `json:"total_votes"`
	HasPhoto     bool      `json:"has_photo"`
	ReportedAt   time.Time `json:"reported_at"`
	Ago          string    `json:"ago"`
}

type CoverageTotals struct {
	Reports    int `json:"reports"`
	TotalVotes int `json:"total_votes"`
}

type CoverageSummary struct {
	Totals         CoverageTotals         `json:"totals"`
	Candidates     []CandidateTotal       `json:"candidates"`
	Parties        []PartyTotal           `json:"parties"`
	Municipalities []MunicipalityCoverage `json:"municipalities"`
	Alerts         []Alert                `json:"alerts"`
	Feed           []FeedItem             `json:"feed"`
}

// MunicipalityTally is the raw per-municipality input to coverage.
// TotalTables is zero when the catalog has no table counts for it.
type MunicipalityTally struct {
	Department     string
	Municipality   string
	ReportedTables int
	TotalTables    int
}

type AlertLimits struct {
	PerSeverity int
	Total       int
}

func DefaultAlertLimits() AlertLimits {
	return AlertLimits{PerSeverity: 5, Total: 10}
}

// Percentage returns part/total*100 rounded to two decimals, 0 for an empty total.
func Percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*10000) / 100
}

func TrafficLight(coverage float64) string {
	switch {
	case coverage >= greenThreshold:
		return LightGreen
	case coverage >= yellowThreshold:
		return LightYellow
	default:
		return LightRed
	}
}

// ApplyCandidatePercentages sets each percentage against the grand total and
// orders by votes desc, then ballot number.
func ApplyCandidatePercentages(totals []CandidateTotal) ([]CandidateTotal, int) {
	grand := 0
	for _, t := range totals {
		grand += t.Votes
	}
	out := make([]CandidateTotal, len(totals))
	for i, t := range totals {
		t.Percentage = Percentage(t.Votes, grand)
		out[i] = t
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Votes != out[j].Votes {
			return out[i].Votes > out[j].Votes
		}
		return out[i].BallotNumber < out[j].BallotNumber
	})
	return out, grand
}

// ApplyPartyPercentages folds blank position or party into the sentinels,
// merges the rows that then collide and sets each share of the grand total.
func ApplyPartyPercentages(totals []PartyTotal) []PartyTotal {
	type key struct{ position, party string }
	sums := make(map[key]int, len(totals))
	grand := 0
	for _, t := range totals {
		k := key{position: orDefault(t.Position, NoPosition), party: orDefault(t.Party, NoParty)}
		sums[k] += t.Votes
		grand += t.Votes
	}

	out := make([]PartyTotal, 0, len(sums))
	for k, votes := range sums {
		out = append(out, PartyTotal{
			Position:   k.position,
			Party:      k.party,
			Votes:      votes,
			Percentage: Percentage(votes, grand),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Votes != out[j].Votes {
			return out[i].Votes > out[j].Votes
		}
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Party < out[j].Party
	})
	return out
}

// BuildMunicipalityCoverage merges reported counts with catalog totals.
// Municipalities without a catalog total fall back to treating their
// reported tables as the whole, i.e. 100% coverage, flagged as estimated.
func BuildMunicipalityCoverage(reported, catalog []MunicipalityTally) []MunicipalityCoverage {
	type key struct{ dept, muni string }
	norm := func(dept, muni string) key {
		return key{strings.ToLower(strings.TrimSpace(dept)), strings.ToLower(strings.TrimSpace(muni))}
	}

	merged := make(map[key]*MunicipalityTally)
	var order []key
	add := func(t MunicipalityTally) *MunicipalityTally {
		k := norm(t.Department, t.Municipality)
		if m, ok := merged[k]; ok {
			return m
		}
		m := &MunicipalityTally{Department: t.Department, Municipality: t.Municipality}
		merged[k] = m
		order = append(order, k)
		return m
	}

	for _, c := range catalog {
		m := add(c)
		m.TotalTables += c.TotalTables
	}
	for _, r := range reported {
		m := add(r)
		m.ReportedTables += r.ReportedTables
	}

	out := make([]MunicipalityCoverage, 0, len(order))
	for _, k := range order {
		m := merged[k]
		mc := MunicipalityCoverage{
			Department:     m.Department,
			Municipality:   m.Municipality,
			ReportedTables: m.ReportedTables,
			TotalTables:    m.TotalTables,
		}
		if mc.TotalTables <= 0 {
			mc.TotalTables = mc.ReportedTables
			mc.Estimated = true
		}
		exact := 0.0
		if mc.TotalTables > 0 {
			exact = float64(mc.ReportedTables) / float64(mc.TotalTables) * 100
			if exact > 100 {
				exact = 100
			}
		} else if mc.Estimated {
			exact = 100
		}
		mc.Coverage = math.Round(exact*10) / 10
		mc.Light = TrafficLight(exact)
		out = append(out, mc)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Coverage != out[j].Coverage {
			return out[i].Coverage < out[j].Coverage
		}
		if out[i].Department != out[j].Department {
			return out[i].Department < out[j].Department
		}
		return out[i].Municipality < out[j].Municipality
	})
	return out
}

// BuildAlerts derives dashboard alerts from municipal coverage, worst first.
// missingPhotos is the number of reports without a required photo.
func BuildAlerts(munis []MunicipalityCoverage, missingPhotos int, limits AlertLimits) []Alert {
	sorted := append([]MunicipalityCoverage(nil), munis...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Coverage < sorted[j].Coverage })

	var critical, warning []Alert
	for _, m := range sorted {
		switch m.Light {
		case LightRed:
			if len(critical) < limits.PerSeverity {
				critical = append(critical, Alert{
					Severity:     SeverityCritical,
					Department:   m.Department,
					Municipality: m.Municipality,
					Message:      fmt.Sprintf("%s: coverage %.1f%% (%d/%d tables)", m.Municipality, m.Coverage, m.ReportedTables, m.TotalTables),
				})
			}
		case LightYellow:
			if len(warning) < limits.PerSeverity {
				warning = append(warning, Alert{
					Severity:     SeverityWarning,
					Department:   m.Department,
					Municipality: m.Municipality,
					Message:      fmt.Sprintf("%s: coverage %.1f%% (%d/%d tables)", m.Municipality, m.Coverage, m.ReportedTables, m.TotalTables),
				})
			}
		}
	}

	alerts := make([]Alert, 0, len(critical)+len(warning)+1)
	alerts = append(alerts, critical...)
	alerts = append(alerts, warning...)
	if missingPhotos > 0 {
		alerts = append(alerts, Alert{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%d reports are missing the tally sheet photo", missingPhotos),
		})
	}
	if limits.Total > 0 && len(alerts) > limits.Total {
		alerts = alerts[:limits.Total]
	}
	return alerts
}

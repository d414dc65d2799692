package domain

import (
	"math"
	"sort"
)

type ComplianceItem struct {
	DelegateID   string `json:"delegate_id"`
	Name         string `json:"name"`
	Department   string `json:"department"`
	Municipality string `json:"municipality"`
	Assigned     int    `json:"assigned"`
	Reported     int    `json:"reported"`
	Missing      int    `json:"missing"`
	CoveragePct  int    `json:"coverage_pct"`
}

type ComplianceSummary struct {
	Assigned    int `json:"assigned"`
	Reported    int `json:"reported"`
	Missing     int `json:"missing"`
	CoveragePct int `json:"coverage_pct"`
}

type ComplianceReport struct {
	Summary ComplianceSummary `json:"summary"`
	Items   []ComplianceItem  `json:"items"`
}

// CoveragePct is round(reported/assigned*100), or 0 when nothing is assigned.
func CoveragePct(reported, assigned int) int {
	if assigned <= 0 {
		return 0
	}
	return int(math.Round(float64(reported) / float64(assigned) * 100))
}

func MissingTables(assigned, reported int) int {
	if m := assigned - reported; m > 0 {
		return m
	}
	return 0
}

// BuildCompliance derives missing/coverage for every item, sorts the least
// compliant first and sums the totals.
func BuildCompliance(items []ComplianceItem) ComplianceReport {
	out := make([]ComplianceItem, len(items))
	var sum ComplianceSummary
	for i, it := range items {
		it.Missing = MissingTables(it.Assigned, it.Reported)
		it.CoveragePct = CoveragePct(it.Reported, it.Assigned)
		out[i] = it

		sum.Assigned += it.Assigned
		sum.Reported += it.Reported
	}
	sum.Missing = MissingTables(sum.Assigned, sum.Reported)
	sum.CoveragePct = CoveragePct(sum.Reported, sum.Assigned)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Missing != out[j].Missing {
			return out[i].Missing > out[j].Missing
		}
		if out[i].Assigned != out[j].Assigned {
			return out[i].Assigned > out[j].Assigned
		}
		return out[i].Name < out[j].Name
	})

	return ComplianceReport{Summary: sum, Items: out}
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoveragePct(t *testing.T) {
	assert.Equal(t, 40, CoveragePct(4, 10))
	assert.Equal(t, 0, CoveragePct(0, 0))
	assert.Equal(t, 67, CoveragePct(2, 3))
	assert.Equal(t, 6, MissingTables(10, 4))
	assert.Equal(t, 0, MissingTables(1, 3))
}

func TestBuildCompliance(t *testing.T) {
	report := BuildCompliance([]ComplianceItem{
		{DelegateID: "a", Name: "Ana", Assigned: 10, Reported: 4},
		{DelegateID: "b", Name: "Beto", Assigned: 0, Reported: 0},
		{DelegateID: "c", Name: "Carla", Assigned: 8, Reported: 2},
		{DelegateID: "d", Name: "Dario", Assigned: 6, Reported: 0},
	})

	assert.Equal(t, ComplianceSummary{Assigned: 24, Reported: 6, Missing: 18, CoveragePct: 25}, report.Summary)

	names := make([]string, len(report.Items))
	for i, it := range report.Items {
		names[i] = it.Name
	}
	// missing desc, then assigned desc, then name
	assert.Equal(t, []string{"Ana", "Carla", "Dario", "Beto"}, names)

	assert.Equal(t, 6, report.Items[0].Missing)
	assert.Equal(t, 40, report.Items[0].CoveragePct)
	assert.Equal(t, 0, report.Items[3].CoveragePct)
}

func TestBuildCompliance_Empty(t *testing.T) {
	report := BuildCompliance(nil)

	assert.Equal(t, ComplianceSummary{}, report.Summary)
	assert.Empty(t, report.Items)
}

package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(5, 0))
	assert.Equal(t, 33.33, Percentage(1, 3))
	assert.Equal(t, 100.0, Percentage(7, 7))
}

func TestTrafficLight(t *testing.T) {
	assert.Equal(t, LightGreen, TrafficLight(85))
	assert.Equal(t, LightYellow, TrafficLight(84.99))
	assert.Equal(t, LightYellow, TrafficLight(50))
	assert.Equal(t, LightRed, TrafficLight(49.9))
}

func TestApplyCandidatePercentages(t *testing.T) {
	got, grand := ApplyCandidatePercentages([]CandidateTotal{
		{CandidateID: "a", BallotNumber: 2, Votes: 25},
		{CandidateID: "b", BallotNumber: 1, Votes: 25},
		{CandidateID: "c", BallotNumber: 3, Votes: 50},
	})

	assert.Equal(t, 100, grand)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{got[0].CandidateID, got[1].CandidateID, got[2].CandidateID})
	assert.Equal(t, 50.0, got[0].Percentage)
	assert.Equal(t, 25.0, got[2].Percentage)
}

func TestApplyCandidatePercentages_NoVotes(t *testing.T) {
	got, grand := ApplyCandidatePercentages([]CandidateTotal{{CandidateID: "a"}})

	assert.Equal(t, 0, grand)
	assert.Equal(t, 0.0, got[0].Percentage)
}

func TestApplyPartyPercentages_MergesSentinels(t *testing.T) {
	got := ApplyPartyPercentages([]PartyTotal{
		{Position: "", Party: "", Votes: 2},
		{Position: NoPosition, Party: NoParty, Votes: 3},
		{Position: "Alcaldia", Party: "Verde", Votes: 15},
	})

	assert.Equal(t, []PartyTotal{
		{Position: "Alcaldia", Party: "Verde", Votes: 15, Percentage: 75},
		{Position: NoPosition, Party: NoParty, Votes: 5, Percentage: 25},
	}, got)
}

func TestBuildMunicipalityCoverage(t *testing.T) {
	reported := []MunicipalityTally{
		{Department: "Antioquia", Municipality: "medellin", ReportedTables: 9},
		{Department: "Antioquia", Municipality: "Bello", ReportedTables: 2},
		{Department: "Choco", Municipality: "Quibdo", ReportedTables: 3},
	}
	catalog := []MunicipalityTally{
		{Department: "Antioquia", Municipality: "Medellin", TotalTables: 10},
		{Department: "Antioquia", Municipality: "Bello", TotalTables: 8},
		{Department: "Antioquia", Municipality: "Envigado", TotalTables: 4},
	}

	got := BuildMunicipalityCoverage(reported, catalog)
	require.Len(t, got, 4)

	byName := make(map[string]MunicipalityCoverage, len(got))
	for _, m := range got {
		byName[m.Municipality] = m
	}

	assert.Equal(t, 90.0, byName["Medellin"].Coverage)
	assert.Equal(t, LightGreen, byName["Medellin"].Light)
	assert.Equal(t, 25.0, byName["Bello"].Coverage)
	assert.Equal(t, LightRed, byName["Bello"].Light)
	assert.Equal(t, 0.0, byName["Envigado"].Coverage)

	quibdo := byName["Quibdo"]
	assert.True(t, quibdo.Estimated)
	assert.Equal(t, 3, quibdo.TotalTables)
	assert.Equal(t, 100.0, quibdo.Coverage)

	assert.Equal(t, "Envigado", got[0].Municipality, "worst coverage first")
}

func TestBuildAlerts(t *testing.T) {
	var munis []MunicipalityCoverage
	for i := 0; i < 7; i++ {
		munis = append(munis, MunicipalityCoverage{Municipality: fmt.Sprintf("red-%d", i), Coverage: float64(i), Light: LightRed})
		munis = append(munis, MunicipalityCoverage{Municipality: fmt.Sprintf("yellow-%d", i), Coverage: 60 + float64(i), Light: LightYellow})
	}
	munis = append(munis, MunicipalityCoverage{Municipality: "green", Coverage: 95, Light: LightGreen})

	alerts := BuildAlerts(munis, 4, DefaultAlertLimits())

	require.Len(t, alerts, 10)
	for _, a := range alerts[:5] {
		assert.Equal(t, SeverityCritical, a.Severity)
	}
	for _, a := range alerts[5:] {
		assert.Equal(t, SeverityWarning, a.Severity)
	}
	assert.Equal(t, "red-0", alerts[0].Municipality)
}

func TestBuildAlerts_PhotoWarning(t *testing.T) {
	alerts := BuildAlerts([]MunicipalityCoverage{{Municipality: "x", Coverage: 10, Light: LightRed}}, 2, DefaultAlertLimits())

	require.Len(t, alerts, 2)
	assert.Equal(t, SeverityCritical, alerts[0].Severity)
	assert.Equal(t, SeverityWarning, alerts[1].Severity)
	assert.Contains(t, alerts[1].Message, "2 reports")
}

package missions

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/dmitrijs2005/cosmospt/internal/common"
	"github.com/dmitrijs2005/cosmospt/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadMission(t *testing.T) models.Mission {
	t.Helper()
	b, err := os.ReadFile("testdata/lunar.json")
	require.NoError(t, err)
	var m models.Mission
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func TestPlay(t *testing.T) {
	g, err := NewGraph(loadMission(t))
	require.NoError(t, err)

	tests := []struct {
		name    string
		choices []int
		status  string
		total   int
		award   int
		current string
	}{
		{name: "no choices", choices: nil, status: StatusActive, total: 0, award: 0, current: "approach"},
		{name: "partial run", choices: []int{0, 2}, status: StatusActive, total: 30, award: 0, current: "landing"},
		{name: "success", choices: []int{0, 0, 0}, status: StatusSuccess, total: 95, award: 145},
		{name: "failure with positive total", choices: []int{0, 0, 1}, status: StatusFailed, total: 25, award: 25},
		{name: "failure with negative total", choices: []int{1}, status: StatusFailed, total: -10, award: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run, err := g.Play(tt.choices)
			require.NoError(t, err)
			assert.Equal(t, tt.status, run.Status)
			assert.Equal(t, tt.total, run.TotalPoints)
			assert.Equal(t, tt.award, run.Award())
			assert.Equal(t, tt.current, run.CurrentScenario)
			assert.Len(t, run.Steps, len(tt.choices))
		})
	}
}

func TestPlay_InvalidChoices(t *testing.T) {
	g, err := NewGraph(loadMission(t))
	require.NoError(t, err)

	_, err = g.Play([]int{3})
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = g.Play([]int{-1})
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = g.Play([]int{1, 0})
	assert.ErrorIs(t, err, common.ErrorValidation, "choices after the end are rejected")
}

func TestPlay_ContinueWithoutNextStays(t *testing.T) {
	m := models.Mission{ID: "dock", Scenarios: []models.Scenario{{
		ID: "approach",
		Options: []models.MissionOption{
			{Text: "auto", Outcome: models.OutcomeContinue, Points: 20},
			{Text: "manual", Outcome: models.OutcomeSuccess, Points: 40},
		},
	}}}
	g, err := NewGraph(m)
	require.NoError(t, err)

	run, err := g.Play([]int{0, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, run.Status)
	assert.Equal(t, 80, run.TotalPoints)
	assert.Equal(t, 130, run.Award())
}

func TestNewGraph_Validation(t *testing.T) {
	ok := models.MissionOption{Text: "go", Outcome: models.OutcomeSuccess}

	tests := []struct {
		name string
		m    models.Mission
	}{
		{"no scenarios", models.Mission{ID: "m"}},
		{"duplicate ids", models.Mission{Scenarios: []models.Scenario{
			{ID: "a", Options: []models.MissionOption{ok}},
			{ID: "a", Options: []models.MissionOption{ok}},
		}}},
		{"dangling next", models.Mission{Scenarios: []models.Scenario{
			{ID: "a", Options: []models.MissionOption{{Outcome: models.OutcomeContinue, NextScenario: "b"}}},
		}}},
		{"unknown outcome", models.Mission{Scenarios: []models.Scenario{
			{ID: "a", Options: []models.MissionOption{{Outcome: "explode"}}},
		}}},
		{"no options", models.Mission{Scenarios: []models.Scenario{{ID: "a"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGraph(tt.m)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}
